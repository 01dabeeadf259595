package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
)

// cramersVResult runs a chi-squared test of independence on the
// contingency table of two label columns and reports Cramér's V as the
// coefficient. Rows missing either label are excluded.
func cramersVResult(ds *table.Dataset, columnX, columnY string) (domstats.CorrelationResult, error) {
	labelsX, err := ds.Labels(columnX)
	if err != nil {
		return domstats.CorrelationResult{}, err
	}
	labelsY, err := ds.Labels(columnY)
	if err != nil {
		return domstats.CorrelationResult{}, err
	}

	tab, n := contingencyTable(labelsX, labelsY)
	if len(tab) < 2 || width(tab) < 2 {
		return domstats.CorrelationResult{}, core.NewInsufficientDataError(2, len(tab))
	}

	chiSq, df := chiSquared(tab, n)
	minDim := len(tab) - 1
	if w := width(tab) - 1; w < minDim {
		minDim = w
	}
	v := math.Sqrt(chiSq / (float64(n) * float64(minDim)))

	dist := distuv.ChiSquared{K: float64(df)}
	p := 1 - dist.CDF(chiSq)

	return domstats.CorrelationResult{
		Method:      domstats.MethodCramersV,
		ColumnX:     columnX,
		ColumnY:     columnY,
		Coefficient: v,
		PValue:      p,
		SampleSize:  n,
	}, nil
}

// contingencyTable builds observed counts over paired non-missing labels
func contingencyTable(labelsX, labelsY []string) ([][]int, int) {
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	type cell struct{ r, c int }
	counts := make(map[cell]int)
	n := 0

	for i := range labelsX {
		lx, ly := labelsX[i], labelsY[i]
		if lx == "" || ly == "" {
			continue
		}
		r, ok := rowIdx[lx]
		if !ok {
			r = len(rowIdx)
			rowIdx[lx] = r
		}
		c, ok := colIdx[ly]
		if !ok {
			c = len(colIdx)
			colIdx[ly] = c
		}
		counts[cell{r, c}]++
		n++
	}

	tab := make([][]int, len(rowIdx))
	for r := range tab {
		tab[r] = make([]int, len(colIdx))
	}
	for pos, count := range counts {
		tab[pos.r][pos.c] = count
	}
	return tab, n
}

// chiSquared computes the test statistic and degrees of freedom from an
// observed contingency table.
func chiSquared(tab [][]int, n int) (float64, int) {
	rows := len(tab)
	cols := width(tab)

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rowTotals[r] += float64(tab[r][c])
			colTotals[c] += float64(tab[r][c])
		}
	}

	chiSq := 0.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			expected := rowTotals[r] * colTotals[c] / float64(n)
			if expected == 0 {
				continue
			}
			diff := float64(tab[r][c]) - expected
			chiSq += diff * diff / expected
		}
	}
	return chiSq, (rows - 1) * (cols - 1)
}

func width(tab [][]int) int {
	if len(tab) == 0 {
		return 0
	}
	return len(tab[0])
}
