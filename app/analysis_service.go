// Package app orchestrates the full analysis pipeline: one cleaning
// pass, descriptive exploration, and the three pre-registered
// hypotheses over the cleaned dataset.
package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mindwell/adapters/stats/anova"
	"mindwell/adapters/stats/cleaning"
	"mindwell/adapters/stats/explore"
	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
	"mindwell/internal"
	"mindwell/internal/config"
)

// AnalysisRun is the complete output of one pipeline invocation
type AnalysisRun struct {
	RunID          core.RunID                   `json:"run_id"`
	Cleaned        *table.Dataset               `json:"-"`
	CleaningReport domstats.CleaningReport      `json:"cleaning_report"`
	Summaries      []domstats.ColumnSummary     `json:"summaries"`
	Missingness    []domstats.ColumnMissingness `json:"missingness"`
	GroupSummaries []domstats.GroupSummary      `json:"group_summaries"`
	Hypotheses     []HypothesisResult           `json:"hypotheses"`
}

// AnalysisService runs the survey inference pipeline
type AnalysisService struct {
	cfg    config.AnalysisConfig
	logger *internal.Logger
}

// NewAnalysisService creates a service with the given thresholds
func NewAnalysisService(cfg config.AnalysisConfig, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &AnalysisService{cfg: cfg, logger: logger}
}

// Run cleans the raw dataset once, explores it, then evaluates the
// three hypotheses concurrently. The cleaned dataset is never mutated
// after cleaning, so the hypothesis goroutines share it without
// synchronization. A failing hypothesis is recorded in its slot and
// never aborts the others.
func (s *AnalysisService) Run(ctx context.Context, raw *table.Dataset) (*AnalysisRun, error) {
	cleaner := cleaning.New(cleaning.Options{ZThreshold: s.cfg.ZThreshold})
	cleaned, report := cleaner.Clean(raw)
	s.logger.Info("cleaning done: %d rows in, %d rows out (%d duplicates, %d label rows, %d outliers removed; %d cells imputed)",
		report.InitialRows, report.FinalRows,
		report.DuplicatesRemoved, report.LabelRowsDropped, report.OutliersRemoved, report.ValuesImputed)

	run := &AnalysisRun{
		RunID:          report.RunID,
		Cleaned:        cleaned,
		CleaningReport: report,
		Summaries:      explore.Describe(cleaned),
		Missingness:    explore.MissingnessTable(cleaned),
		Hypotheses:     make([]HypothesisResult, 3),
	}

	for _, pair := range [][2]string{
		{table.ColDietType, table.ColHappinessScore},
		{table.ColMentalHealthCondition, table.ColSocialInteractionScore},
	} {
		summary, err := explore.GroupSummary(cleaned, pair[0], pair[1])
		if err != nil {
			s.logger.Warn("group summary %s by %s failed: %v", pair[1], pair[0], err)
			continue
		}
		run.GroupSummaries = append(run.GroupSummaries, summary)
	}

	opts := anova.Options{Alpha: s.cfg.Alpha}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		run.Hypotheses[0] = dietHappinessHypothesis(cleaned, opts)
		return nil
	})
	g.Go(func() error {
		run.Hypotheses[1] = stressSleepHypothesis(cleaned)
		return nil
	})
	g.Go(func() error {
		run.Hypotheses[2] = conditionSocialHypothesis(cleaned, opts)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, h := range run.Hypotheses {
		if h.Failed() {
			s.logger.Warn("hypothesis %q skipped: %v", h.Name, h.Err)
		}
	}
	return run, nil
}
