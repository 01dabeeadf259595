package stats

import (
	"math"

	"mindwell/domain/core"
	"mindwell/domain/table"
)

// CleaningReport records what a single cleaning pass did to the raw
// dataset. Immutable after creation.
type CleaningReport struct {
	RunID core.RunID `json:"run_id"`

	InitialRows       int `json:"initial_rows"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	// LabelRowsDropped counts rows removed because a categorical or
	// ordinal cell was missing.
	LabelRowsDropped int `json:"label_rows_dropped"`
	// ValuesImputed counts numeric cells replaced by their column mean.
	ValuesImputed   int `json:"values_imputed"`
	OutliersRemoved int `json:"outliers_removed"`

	FinalRows    int `json:"final_rows"`
	FinalColumns int `json:"final_columns"`

	CreatedAt core.Timestamp `json:"created_at"`
}

// NumericSummary holds descriptive statistics for one numeric column
type NumericSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// LabelCount is one entry of a categorical frequency table
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ColumnSummary describes one column of the cleaned dataset. Numeric
// columns carry a NumericSummary; label columns carry a frequency table.
type ColumnSummary struct {
	Column       string           `json:"column"`
	Type         table.ColumnType `json:"type"`
	MissingCount int              `json:"missing_count"`
	UniqueCount  int              `json:"unique_count"`
	Numeric      *NumericSummary  `json:"numeric,omitempty"`
	// Frequencies is sorted by descending count, ties broken by label.
	Frequencies []LabelCount `json:"frequencies,omitempty"`
}

// ColumnMissingness is one row of the per-column missingness table
type ColumnMissingness struct {
	Column         string           `json:"column"`
	Type           table.ColumnType `json:"type"`
	MissingCount   int              `json:"missing_count"`
	MissingPercent float64          `json:"missing_percent"`
	UniqueCount    int              `json:"unique_count"`
}

// GroupStat holds the per-group aggregate of a GroupSummary entry.
// An empty group is a valid entry with Count 0 and NaN mean/stddev.
type GroupStat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// Computable reports whether the group's mean is defined
func (g GroupStat) Computable() bool {
	return g.Count > 0
}

// GroupSummary aggregates a numeric target column per label of a
// grouping column.
// Invariant: the sum of group counts equals the number of rows with
// non-missing values in both the group and target columns.
type GroupSummary struct {
	GroupColumn  string               `json:"group_column"`
	TargetColumn string               `json:"target_column"`
	Groups       map[string]GroupStat `json:"groups"`
	TotalCount   int                  `json:"total_count"`
}

// CorrelationMethod tags which coefficient a CorrelationResult carries
type CorrelationMethod string

const (
	MethodPearson  CorrelationMethod = "pearson"
	MethodSpearman CorrelationMethod = "spearman"
	// MethodCramersV is the categorical-association supplement
	// (chi-squared contingency test with Cramér's V effect size).
	MethodCramersV CorrelationMethod = "cramers_v"
)

// CorrelationResult is the immutable outcome of one correlation test
type CorrelationResult struct {
	Method      CorrelationMethod `json:"method"`
	ColumnX     string            `json:"column_x"`
	ColumnY     string            `json:"column_y"`
	Coefficient float64           `json:"coefficient"`
	PValue      float64           `json:"p_value"`
	SampleSize  int               `json:"sample_size"`
}

// ANOVAResult is the immutable outcome of a one-way ANOVA fit
type ANOVAResult struct {
	GroupColumn  string  `json:"group_column"`
	TargetColumn string  `json:"target_column"`
	F            float64 `json:"f_statistic"`
	DFBetween    int     `json:"df_between"`
	DFWithin     int     `json:"df_within"`
	PValue       float64 `json:"p_value"`
	// EtaSquared is SSB/SST, the proportion of total variance explained
	// by group membership.
	EtaSquared  float64 `json:"eta_squared"`
	Alpha       float64 `json:"alpha"`
	Significant bool    `json:"significant"`
}

// ContrastWeight assigns an a priori weight to one group label
type ContrastWeight struct {
	Group  string  `json:"group"`
	Weight float64 `json:"weight"`
}

// ContrastSpec defines a planned contrast: an ordered sequence of
// (group, weight) pairs fixed before seeing the data.
// Invariant: weights sum to zero and every group of the fitted ANOVA
// model appears exactly once.
type ContrastSpec struct {
	Label   string           `json:"label"`
	Weights []ContrastWeight `json:"weights"`
}

// WeightSum returns the sum of all weights
func (s ContrastSpec) WeightSum() float64 {
	sum := 0.0
	for _, w := range s.Weights {
		sum += w.Weight
	}
	return sum
}

// Groups returns the ordered group labels of the specification
func (s ContrastSpec) Groups() []string {
	groups := make([]string, len(s.Weights))
	for i, w := range s.Weights {
		groups[i] = w.Group
	}
	return groups
}

// ContrastResult is the immutable outcome of one planned contrast test
type ContrastResult struct {
	Label        string  `json:"label"`
	GroupColumn  string  `json:"group_column"`
	TargetColumn string  `json:"target_column"`
	// Estimate is L = sum of weight*mean over the contrast's groups.
	Estimate float64 `json:"estimate"`
	T        float64 `json:"t_statistic"`
	DF       int     `json:"df"`
	PValue   float64 `json:"p_value"`
	// EffectSize is Cohen's d between the pooled positive-weight side
	// and the pooled negative-weight side of the contrast.
	EffectSize  float64 `json:"effect_size"`
	Alpha       float64 `json:"alpha"`
	Significant bool    `json:"significant"`
}

// NotComputable is the marker value for undefined statistics such as
// the mean of an empty group.
func NotComputable() float64 {
	return math.NaN()
}

// IsComputable reports whether v holds a defined statistic
func IsComputable(v float64) bool {
	return !math.IsNaN(v)
}
