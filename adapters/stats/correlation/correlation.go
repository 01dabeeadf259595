// Package correlation implements pairwise association tests between
// dataset columns: Pearson's r for numeric pairs, Spearman's rho for
// ordinal or monotonic relationships, and a chi-squared contingency
// test with Cramér's V for categorical pairs.
package correlation

import (
	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
)

// Correlate computes the association between two columns with the given
// method. Results are deterministic for identical inputs, and symmetric
// in the column arguments.
func Correlate(ds *table.Dataset, columnX, columnY string, method domstats.CorrelationMethod) (domstats.CorrelationResult, error) {
	switch method {
	case domstats.MethodPearson:
		return pearsonResult(ds, columnX, columnY)
	case domstats.MethodSpearman:
		return spearmanResult(ds, columnX, columnY)
	case domstats.MethodCramersV:
		return cramersVResult(ds, columnX, columnY)
	default:
		return domstats.CorrelationResult{}, core.ErrUnsupportedMethod
	}
}

// numericOrRanks extracts a column as floats: numeric columns verbatim,
// ordinal columns through their level ranks.
func numericOrRanks(ds *table.Dataset, name string) ([]float64, []bool, error) {
	col, ok := ds.Schema().Column(name)
	if !ok {
		return nil, nil, core.NewColumnNotFoundError(name)
	}
	if col.Type == table.TypeOrdinal {
		return ds.OrdinalRanks(name)
	}
	return ds.NumericColumn(name)
}

// pairedValues keeps only the observations where both columns are
// present, preserving row order.
func pairedValues(x, y []float64, presentX, presentY []bool) ([]float64, []float64) {
	var xs, ys []float64
	for i := range x {
		if presentX[i] && presentY[i] {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	return xs, ys
}
