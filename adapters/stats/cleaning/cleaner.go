// Package cleaning implements the hybrid cleaning policy: duplicate
// collapse, removal of rows with missing labels, mean imputation of
// missing numeric cells, and 3-sigma outlier removal.
package cleaning

import (
	"math"

	"github.com/montanaflynn/stats"

	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
)

// Options configures a cleaning pass. Thresholds are explicit so tests
// never depend on ambient state.
type Options struct {
	// ZThreshold is the absolute z-score above which a numeric value
	// marks its row as an outlier.
	ZThreshold float64
}

// DefaultOptions returns the standard 3-sigma configuration
func DefaultOptions() Options {
	return Options{ZThreshold: 3.0}
}

// Cleaner applies the hybrid cleaning policy to a raw dataset
type Cleaner struct {
	opts Options
}

// New creates a Cleaner with the given options
func New(opts Options) *Cleaner {
	if opts.ZThreshold <= 0 {
		opts.ZThreshold = DefaultOptions().ZThreshold
	}
	return &Cleaner{opts: opts}
}

// Clean runs the four cleaning steps in their fixed order and returns a
// new dataset plus a report. The raw input is never mutated; a zero-row
// outcome is valid and not an error. Step order matters: it decides
// which rows survive and which counts attribute to which cause.
func (c *Cleaner) Clean(raw *table.Dataset) (*table.Dataset, domstats.CleaningReport) {
	report := domstats.CleaningReport{
		RunID:        core.RunID(core.NewID()),
		InitialRows:  raw.RowCount(),
		FinalColumns: raw.ColumnCount(),
		CreatedAt:    core.Now(),
	}

	ds := c.removeDuplicates(raw, &report)
	ds = c.dropRowsMissingLabels(ds, &report)
	ds = c.imputeNumericMeans(ds, &report)
	ds = c.removeOutliers(ds, &report)

	report.FinalRows = ds.RowCount()
	return ds, report
}

// removeDuplicates collapses rows identical across all columns to their
// first occurrence.
func (c *Cleaner) removeDuplicates(raw *table.Dataset, report *domstats.CleaningReport) *table.Dataset {
	out := table.New(raw.Schema())
	seen := make(map[core.RowFingerprint]bool, raw.RowCount())
	for i := 0; i < raw.RowCount(); i++ {
		row := raw.Row(i)
		fp := row.Fingerprint()
		if seen[fp] {
			report.DuplicatesRemoved++
			continue
		}
		seen[fp] = true
		out.Append(row)
	}
	return out
}

// dropRowsMissingLabels removes any row missing a value in a categorical
// or ordinal column. Imputing a label would invent a group that
// represents no real population, so those rows are dropped instead.
func (c *Cleaner) dropRowsMissingLabels(ds *table.Dataset, report *domstats.CleaningReport) *table.Dataset {
	labelIdx := columnIndexes(ds.Schema(), ds.Schema().LabelColumns())
	out := table.New(ds.Schema())
	for i := 0; i < ds.RowCount(); i++ {
		row := ds.Row(i)
		if rowMissingAny(row, labelIdx) {
			report.LabelRowsDropped++
			continue
		}
		out.Append(row)
	}
	return out
}

// imputeNumericMeans replaces missing numeric cells with their column's
// arithmetic mean over the values remaining after label-row removal.
// A column with no observed values keeps its cells missing; there is no
// mean to impute from.
func (c *Cleaner) imputeNumericMeans(ds *table.Dataset, report *domstats.CleaningReport) *table.Dataset {
	numericIdx := columnIndexes(ds.Schema(), ds.Schema().NumericColumns())

	means := make(map[int]float64, len(numericIdx))
	for _, j := range numericIdx {
		observed := columnValues(ds, j)
		if len(observed) == 0 {
			continue
		}
		mean, err := stats.Mean(observed)
		if err != nil {
			continue
		}
		means[j] = mean
	}

	out := table.New(ds.Schema())
	for i := 0; i < ds.RowCount(); i++ {
		row := ds.Row(i)
		imputed := make(table.Row, len(row))
		copy(imputed, row)
		for _, j := range numericIdx {
			if !imputed[j].Missing {
				continue
			}
			mean, ok := means[j]
			if !ok {
				continue
			}
			imputed[j] = table.NumericCell(mean)
			report.ValuesImputed++
		}
		out.Append(imputed)
	}
	return out
}

// removeOutliers drops every row holding a value with |z| above the
// threshold in any numeric column. Mean and standard deviation are
// computed once per column over the post-imputation data; they are not
// re-derived as rows fall away. A zero-variance column contributes no
// outliers.
func (c *Cleaner) removeOutliers(ds *table.Dataset, report *domstats.CleaningReport) *table.Dataset {
	numericIdx := columnIndexes(ds.Schema(), ds.Schema().NumericColumns())

	flagged := make([]bool, ds.RowCount())
	for _, j := range numericIdx {
		mean, std, ok := columnMoments(ds, j)
		if !ok || std == 0 {
			continue
		}
		for i := 0; i < ds.RowCount(); i++ {
			cell := ds.Row(i)[j]
			if cell.Missing {
				continue
			}
			z := (cell.Num - mean) / std
			if math.Abs(z) > c.opts.ZThreshold {
				flagged[i] = true
			}
		}
	}

	out := table.New(ds.Schema())
	for i := 0; i < ds.RowCount(); i++ {
		if flagged[i] {
			report.OutliersRemoved++
			continue
		}
		out.Append(ds.Row(i))
	}
	return out
}

// DetectOutliers counts, per numeric column, how many values exceed the
// z-threshold without removing anything. Useful for pre-cleaning review.
func (c *Cleaner) DetectOutliers(ds *table.Dataset) map[string]int {
	counts := make(map[string]int)
	for _, name := range ds.Schema().NumericColumns() {
		j, _ := ds.Schema().Index(name)
		mean, std, ok := columnMoments(ds, j)
		counts[name] = 0
		if !ok || std == 0 {
			continue
		}
		for i := 0; i < ds.RowCount(); i++ {
			cell := ds.Row(i)[j]
			if cell.Missing {
				continue
			}
			if math.Abs((cell.Num-mean)/std) > c.opts.ZThreshold {
				counts[name]++
			}
		}
	}
	return counts
}

// columnValues collects the non-missing values of column j
func columnValues(ds *table.Dataset, j int) []float64 {
	var observed []float64
	for i := 0; i < ds.RowCount(); i++ {
		cell := ds.Row(i)[j]
		if !cell.Missing {
			observed = append(observed, cell.Num)
		}
	}
	return observed
}

// columnMoments returns the mean and sample standard deviation of the
// non-missing values of column j.
func columnMoments(ds *table.Dataset, j int) (mean, std float64, ok bool) {
	observed := columnValues(ds, j)
	if len(observed) == 0 {
		return 0, 0, false
	}
	mean, err := stats.Mean(observed)
	if err != nil {
		return 0, 0, false
	}
	if len(observed) < 2 {
		return mean, 0, true
	}
	std, err = stats.StandardDeviationSample(observed)
	if err != nil {
		return 0, 0, false
	}
	return mean, std, true
}

func columnIndexes(schema table.Schema, names []string) []int {
	idx := make([]int, 0, len(names))
	for _, name := range names {
		if j, ok := schema.Index(name); ok {
			idx = append(idx, j)
		}
	}
	return idx
}

func rowMissingAny(row table.Row, idx []int) bool {
	for _, j := range idx {
		if row[j].Missing {
			return true
		}
	}
	return false
}
