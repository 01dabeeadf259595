// Package explore computes descriptive summaries over the cleaned
// dataset: per-column statistics, frequency tables, missingness, and
// per-group aggregates.
package explore

import (
	"sort"

	"github.com/montanaflynn/stats"

	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
)

// Describe summarizes every column of the dataset, in schema order.
// Numeric columns get count/mean/std/min/quartiles/max; categorical and
// ordinal columns get a frequency table.
func Describe(ds *table.Dataset) []domstats.ColumnSummary {
	summaries := make([]domstats.ColumnSummary, 0, ds.Schema().Width())
	for _, col := range ds.Schema().Columns() {
		summaries = append(summaries, describeColumn(ds, col))
	}
	return summaries
}

func describeColumn(ds *table.Dataset, col table.Column) domstats.ColumnSummary {
	j, _ := ds.Schema().Index(col.Name)
	summary := domstats.ColumnSummary{Column: col.Name, Type: col.Type}

	if col.Type == table.TypeNumeric {
		var observed []float64
		for i := 0; i < ds.RowCount(); i++ {
			cell := ds.Row(i)[j]
			if cell.Missing {
				summary.MissingCount++
				continue
			}
			observed = append(observed, cell.Num)
		}
		summary.UniqueCount = uniqueFloats(observed)
		summary.Numeric = numericSummary(observed)
		return summary
	}

	counts := make(map[string]int)
	for i := 0; i < ds.RowCount(); i++ {
		cell := ds.Row(i)[j]
		if cell.Missing {
			summary.MissingCount++
			continue
		}
		counts[cell.Label]++
	}
	summary.UniqueCount = len(counts)
	summary.Frequencies = sortedFrequencies(counts)
	return summary
}

func numericSummary(observed []float64) *domstats.NumericSummary {
	ns := &domstats.NumericSummary{Count: len(observed)}
	if len(observed) == 0 {
		ns.Mean = domstats.NotComputable()
		ns.StdDev = domstats.NotComputable()
		ns.Min = domstats.NotComputable()
		ns.Q25 = domstats.NotComputable()
		ns.Median = domstats.NotComputable()
		ns.Q75 = domstats.NotComputable()
		ns.Max = domstats.NotComputable()
		return ns
	}

	ns.Mean, _ = stats.Mean(observed)
	ns.Min, _ = stats.Min(observed)
	ns.Max, _ = stats.Max(observed)
	ns.Median, _ = stats.Median(observed)
	ns.Q25, _ = stats.Percentile(observed, 25)
	ns.Q75, _ = stats.Percentile(observed, 75)
	if len(observed) >= 2 {
		ns.StdDev, _ = stats.StandardDeviationSample(observed)
	} else {
		ns.StdDev = domstats.NotComputable()
	}
	return ns
}

func sortedFrequencies(counts map[string]int) []domstats.LabelCount {
	freqs := make([]domstats.LabelCount, 0, len(counts))
	for label, count := range counts {
		freqs = append(freqs, domstats.LabelCount{Label: label, Count: count})
	}
	sort.Slice(freqs, func(i, k int) bool {
		if freqs[i].Count != freqs[k].Count {
			return freqs[i].Count > freqs[k].Count
		}
		return freqs[i].Label < freqs[k].Label
	})
	return freqs
}

func uniqueFloats(values []float64) int {
	seen := make(map[float64]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	return len(seen)
}

// MissingnessTable reports per-column missing counts and percentages,
// sorted by descending missing percentage so the worst columns surface
// first.
func MissingnessTable(ds *table.Dataset) []domstats.ColumnMissingness {
	total := ds.RowCount()
	rows := make([]domstats.ColumnMissingness, 0, ds.Schema().Width())
	for _, col := range ds.Schema().Columns() {
		j, _ := ds.Schema().Index(col.Name)
		missing := 0
		uniqueLabels := make(map[string]bool)
		uniqueNums := make(map[float64]bool)
		for i := 0; i < total; i++ {
			cell := ds.Row(i)[j]
			if cell.Missing {
				missing++
				continue
			}
			if col.IsLabel() {
				uniqueLabels[cell.Label] = true
			} else {
				uniqueNums[cell.Num] = true
			}
		}
		percent := 0.0
		if total > 0 {
			percent = 100 * float64(missing) / float64(total)
		}
		unique := len(uniqueLabels)
		if !col.IsLabel() {
			unique = len(uniqueNums)
		}
		rows = append(rows, domstats.ColumnMissingness{
			Column:         col.Name,
			Type:           col.Type,
			MissingCount:   missing,
			MissingPercent: percent,
			UniqueCount:    unique,
		})
	}
	sort.SliceStable(rows, func(i, k int) bool {
		return rows[i].MissingPercent > rows[k].MissingPercent
	})
	return rows
}

// GroupSummary aggregates the numeric target column per label of the
// grouping column. Every label observed in the group column appears in
// the result; a label whose rows all lack the target is an empty group
// with Count 0 and NaN mean/stddev.
func GroupSummary(ds *table.Dataset, groupColumn, targetColumn string) (domstats.GroupSummary, error) {
	labels, err := ds.Labels(groupColumn)
	if err != nil {
		return domstats.GroupSummary{}, err
	}
	values, present, err := ds.NumericColumn(targetColumn)
	if err != nil {
		return domstats.GroupSummary{}, err
	}

	members := make(map[string][]float64)
	for i, label := range labels {
		if label == "" {
			continue
		}
		if _, ok := members[label]; !ok {
			members[label] = nil
		}
		if present[i] {
			members[label] = append(members[label], values[i])
		}
	}

	summary := domstats.GroupSummary{
		GroupColumn:  groupColumn,
		TargetColumn: targetColumn,
		Groups:       make(map[string]domstats.GroupStat, len(members)),
	}
	for label, obs := range members {
		stat := domstats.GroupStat{Count: len(obs)}
		switch {
		case len(obs) == 0:
			stat.Mean = domstats.NotComputable()
			stat.StdDev = domstats.NotComputable()
		case len(obs) == 1:
			stat.Mean = obs[0]
			stat.StdDev = domstats.NotComputable()
		default:
			stat.Mean, _ = stats.Mean(obs)
			stat.StdDev, _ = stats.StandardDeviationSample(obs)
		}
		summary.Groups[label] = stat
		summary.TotalCount += stat.Count
	}
	return summary, nil
}
