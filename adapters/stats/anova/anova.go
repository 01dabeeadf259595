// Package anova implements the one-way analysis of variance and a priori
// planned contrast tests through direct sum-of-squares computation, which
// is equivalent to the single-factor OLS formulation without fitting a
// regression model.
package anova

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
)

// Options carries the explicit configuration of a group-difference test
type Options struct {
	// Alpha is the significance level for the interpretation flag.
	Alpha float64
}

// DefaultOptions returns the standard alpha of 0.05
func DefaultOptions() Options {
	return Options{Alpha: 0.05}
}

// model holds the decomposition shared by the omnibus F-test and the
// planned contrasts.
type model struct {
	groups map[string][]float64
	order  []string
	means  map[string]float64
	n      int
	ssb    float64
	ssw    float64
	dfB    int
	dfW    int
	msw    float64
}

// fitModel partitions the non-missing target values by group label and
// computes the sum-of-squares decomposition. Only groups with at least
// one member enter the model.
func fitModel(ds *table.Dataset, groupColumn, targetColumn string) (*model, error) {
	labels, err := ds.Labels(groupColumn)
	if err != nil {
		return nil, err
	}
	values, present, err := ds.NumericColumn(targetColumn)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]float64)
	for i, label := range labels {
		if label == "" || !present[i] {
			continue
		}
		groups[label] = append(groups[label], values[i])
	}

	k := len(groups)
	if k < 2 {
		return nil, core.ErrInsufficientGroups
	}

	order := make([]string, 0, k)
	for label := range groups {
		order = append(order, label)
	}
	sort.Strings(order)

	n := 0
	grandSum := 0.0
	means := make(map[string]float64, k)
	for _, label := range order {
		obs := groups[label]
		sum := 0.0
		for _, v := range obs {
			sum += v
		}
		means[label] = sum / float64(len(obs))
		grandSum += sum
		n += len(obs)
	}

	dfW := n - k
	if dfW < 1 {
		return nil, core.NewInsufficientDataError(k+1, n)
	}

	grand := grandSum / float64(n)
	ssb, ssw := 0.0, 0.0
	for _, label := range order {
		obs := groups[label]
		dm := means[label] - grand
		ssb += float64(len(obs)) * dm * dm
		for _, v := range obs {
			dv := v - means[label]
			ssw += dv * dv
		}
	}

	if ssw == 0 {
		return nil, core.ErrDegenerateVariance
	}

	return &model{
		groups: groups,
		order:  order,
		means:  means,
		n:      n,
		ssb:    ssb,
		ssw:    ssw,
		dfB:    k - 1,
		dfW:    dfW,
		msw:    ssw / float64(dfW),
	}, nil
}

// OneWayANOVA fits a one-way ANOVA of the target column over the groups
// of the grouping column and tests the omnibus null of equal group means.
func OneWayANOVA(ds *table.Dataset, groupColumn, targetColumn string, opts Options) (domstats.ANOVAResult, error) {
	m, err := fitModel(ds, groupColumn, targetColumn)
	if err != nil {
		return domstats.ANOVAResult{}, err
	}

	f := (m.ssb / float64(m.dfB)) / m.msw
	dist := distuv.F{D1: float64(m.dfB), D2: float64(m.dfW)}
	p := 1 - dist.CDF(f)

	return domstats.ANOVAResult{
		GroupColumn:  groupColumn,
		TargetColumn: targetColumn,
		F:            f,
		DFBetween:    m.dfB,
		DFWithin:     m.dfW,
		PValue:       p,
		EtaSquared:   m.ssb / (m.ssb + m.ssw),
		Alpha:        opts.Alpha,
		Significant:  p < opts.Alpha,
	}, nil
}
