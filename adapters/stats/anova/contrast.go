package anova

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
)

// weightTolerance bounds floating-point drift when validating that
// contrast weights sum to zero.
const weightTolerance = 1e-9

// ContrastWeights builds a specification that compares the pooled
// positive groups against the pooled negative groups: each positive
// group gets +1/len(positive), each negative group -1/len(negative), so
// the two sides sum to +1 and -1 and the whole contrast sums to zero.
func ContrastWeights(label string, positive, negative []string) (domstats.ContrastSpec, error) {
	if len(positive) == 0 || len(negative) == 0 {
		return domstats.ContrastSpec{}, core.NewInvalidContrastError("both weight sides need at least one group")
	}

	spec := domstats.ContrastSpec{Label: label}
	posWeight := 1.0 / float64(len(positive))
	negWeight := -1.0 / float64(len(negative))
	for _, g := range positive {
		spec.Weights = append(spec.Weights, domstats.ContrastWeight{Group: g, Weight: posWeight})
	}
	for _, g := range negative {
		spec.Weights = append(spec.Weights, domstats.ContrastWeight{Group: g, Weight: negWeight})
	}
	return spec, nil
}

// PlannedContrast tests the a priori linear combination of group means
// defined by spec, using the pooled within-group mean square of the
// corresponding ANOVA model for the standard error. Weights must sum to
// zero and cover every group of the model exactly once; a referenced
// group with zero members fails rather than being treated as mean zero.
func PlannedContrast(ds *table.Dataset, groupColumn, targetColumn string, spec domstats.ContrastSpec, opts Options) (domstats.ContrastResult, error) {
	if err := validateWeights(spec); err != nil {
		return domstats.ContrastResult{}, err
	}

	m, err := fitModel(ds, groupColumn, targetColumn)
	if err != nil {
		return domstats.ContrastResult{}, err
	}

	weightOf := make(map[string]float64, len(spec.Weights))
	for _, w := range spec.Weights {
		weightOf[w.Group] = w.Weight
	}

	for _, w := range spec.Weights {
		if _, ok := m.groups[w.Group]; !ok {
			return domstats.ContrastResult{}, core.NewMissingGroupError(w.Group)
		}
	}
	for _, label := range m.order {
		if _, ok := weightOf[label]; !ok {
			return domstats.ContrastResult{}, core.NewInvalidContrastError(
				fmt.Sprintf("model group %q absent from specification", label))
		}
	}

	// L = sum of w_i * mean_i; SE(L) = sqrt(MSW * sum(w_i^2 / n_i))
	estimate := 0.0
	seSum := 0.0
	for _, label := range m.order {
		w := weightOf[label]
		estimate += w * m.means[label]
		seSum += w * w / float64(len(m.groups[label]))
	}
	se := math.Sqrt(m.msw * seSum)

	t := estimate / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.dfW)}
	p := 2 * (1 - dist.CDF(math.Abs(t)))
	if p > 1 {
		p = 1
	}

	return domstats.ContrastResult{
		Label:        spec.Label,
		GroupColumn:  groupColumn,
		TargetColumn: targetColumn,
		Estimate:     estimate,
		T:            t,
		DF:           m.dfW,
		PValue:       p,
		EffectSize:   contrastCohensD(m, weightOf),
		Alpha:        opts.Alpha,
		Significant:  p < opts.Alpha,
	}, nil
}

func validateWeights(spec domstats.ContrastSpec) error {
	if len(spec.Weights) == 0 {
		return core.NewInvalidContrastError("no weights supplied")
	}
	seen := make(map[string]bool, len(spec.Weights))
	for _, w := range spec.Weights {
		if seen[w.Group] {
			return core.NewInvalidContrastError(fmt.Sprintf("group %q appears more than once", w.Group))
		}
		seen[w.Group] = true
	}
	if sum := spec.WeightSum(); math.Abs(sum) > weightTolerance {
		return core.NewInvalidContrastError(fmt.Sprintf("weights sum to %g, not zero", sum))
	}
	return nil
}

// contrastCohensD collapses the contrast into two sides, pooling the raw
// observations of the positive-weight groups against those of the
// negative-weight groups, and reports d as the difference of the side
// means over the two-side pooled sample standard deviation:
//
//	d = (mean_pos - mean_neg) / sqrt(((nP-1)*sP^2 + (nN-1)*sN^2) / (nP+nN-2))
//
// Zero-weight groups contribute to neither side. The value is NaN when
// the pooled deviation is undefined (too few observations on the sides).
func contrastCohensD(m *model, weightOf map[string]float64) float64 {
	var pos, neg []float64
	for label, obs := range m.groups {
		switch w := weightOf[label]; {
		case w > 0:
			pos = append(pos, obs...)
		case w < 0:
			neg = append(neg, obs...)
		}
	}

	nP, nN := float64(len(pos)), float64(len(neg))
	if nP == 0 || nN == 0 || nP+nN < 3 {
		return domstats.NotComputable()
	}

	meanP, varP := meanAndVariance(pos)
	meanN, varN := meanAndVariance(neg)
	pooled := ((nP-1)*varP + (nN-1)*varN) / (nP + nN - 2)
	if pooled <= 0 {
		return domstats.NotComputable()
	}
	return (meanP - meanN) / math.Sqrt(pooled)
}

// meanAndVariance returns the mean and sample variance of obs
func meanAndVariance(obs []float64) (float64, float64) {
	n := float64(len(obs))
	sum := 0.0
	for _, v := range obs {
		sum += v
	}
	mean := sum / n

	if n < 2 {
		return mean, 0
	}
	sq := 0.0
	for _, v := range obs {
		d := v - mean
		sq += d * d
	}
	return mean, sq / (n - 1)
}
