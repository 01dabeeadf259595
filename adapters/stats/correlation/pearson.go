package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
)

// minPearsonPairs is the smallest sample that defines a coefficient
const minPearsonPairs = 2

func pearsonResult(ds *table.Dataset, columnX, columnY string) (domstats.CorrelationResult, error) {
	x, presentX, err := ds.NumericColumn(columnX)
	if err != nil {
		return domstats.CorrelationResult{}, err
	}
	y, presentY, err := ds.NumericColumn(columnY)
	if err != nil {
		return domstats.CorrelationResult{}, err
	}

	xs, ys := pairedValues(x, y, presentX, presentY)
	if len(xs) < minPearsonPairs {
		return domstats.CorrelationResult{}, core.NewInsufficientDataError(minPearsonPairs, len(xs))
	}

	r, err := pearsonCoefficient(xs, ys)
	if err != nil {
		return domstats.CorrelationResult{}, err
	}

	return domstats.CorrelationResult{
		Method:      domstats.MethodPearson,
		ColumnX:     columnX,
		ColumnY:     columnY,
		Coefficient: r,
		PValue:      coefficientPValue(r, len(xs)),
		SampleSize:  len(xs),
	}, nil
}

// pearsonCoefficient computes the linear correlation of two equal-length
// samples. A zero-variance sample leaves the coefficient undefined.
func pearsonCoefficient(x, y []float64) (float64, error) {
	n := float64(len(x))

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, core.ErrDegenerateVariance
	}

	r := cov / math.Sqrt(varX*varY)
	// Clamp floating-point drift
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, nil
}

// coefficientPValue is the two-tailed p-value for r under the null of no
// association, using the t-distribution with n-2 degrees of freedom.
// A perfect coefficient has p of zero; n of 2 always produces a perfect
// coefficient, so its p is 1 (the test carries no information).
func coefficientPValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df < 1 {
		return 1
	}
	if 1-r*r <= 0 {
		return 0
	}
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(math.Abs(t)))
	if p > 1 {
		p = 1
	}
	return p
}
