package correlation

import (
	"sort"

	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
)

// minSpearmanPairs is the smallest sample that defines the rank coefficient
const minSpearmanPairs = 2

// spearmanTApproxFloor is the sample size from which the t-distribution
// p-value approximation is considered reliable. Below it the same
// approximation is still used; that boundary is a known limitation of
// this implementation rather than an exact small-sample treatment.
const spearmanTApproxFloor = 10

func spearmanResult(ds *table.Dataset, columnX, columnY string) (domstats.CorrelationResult, error) {
	x, presentX, err := numericOrRanks(ds, columnX)
	if err != nil {
		return domstats.CorrelationResult{}, err
	}
	y, presentY, err := numericOrRanks(ds, columnY)
	if err != nil {
		return domstats.CorrelationResult{}, err
	}

	xs, ys := pairedValues(x, y, presentX, presentY)
	if len(xs) < minSpearmanPairs {
		return domstats.CorrelationResult{}, core.NewInsufficientDataError(minSpearmanPairs, len(xs))
	}

	// Rank-transform both sides, then Pearson on the ranks. Fractional
	// ranking keeps tied observations comparable across the two columns.
	rho, err := pearsonCoefficient(fractionalRanks(xs), fractionalRanks(ys))
	if err != nil {
		return domstats.CorrelationResult{}, err
	}

	return domstats.CorrelationResult{
		Method:      domstats.MethodSpearman,
		ColumnX:     columnX,
		ColumnY:     columnY,
		Coefficient: rho,
		PValue:      coefficientPValue(rho, len(xs)),
		SampleSize:  len(xs),
	}, nil
}

// fractionalRanks converts values to ranks, giving tied values the
// average of the ranks they would otherwise occupy.
func fractionalRanks(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	type pair struct {
		value float64
		index int
	}
	pairs := make([]pair, n)
	for i, val := range data {
		pairs[i] = pair{value: val, index: i}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}
		avgRank := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avgRank
		}
		i = j
	}
	return ranks
}
