package app

import (
	"sort"

	"mindwell/adapters/stats/anova"
	"mindwell/adapters/stats/correlation"
	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
)

// HypothesisResult bundles everything one pre-registered hypothesis
// produced. Exactly the fields relevant to the hypothesis kind are set;
// Err records a failed computation so the remaining hypotheses are
// unaffected.
type HypothesisResult struct {
	ID           core.HypothesisID           `json:"id"`
	Name         string                      `json:"name"`
	ANOVA        *domstats.ANOVAResult       `json:"anova,omitempty"`
	Contrast     *domstats.ContrastResult    `json:"contrast,omitempty"`
	Correlations []domstats.CorrelationResult `json:"correlations,omitempty"`
	Err          error                       `json:"-"`
}

// Failed reports whether the hypothesis computation was skipped
func (r HypothesisResult) Failed() bool {
	return r.Err != nil
}

// dietHappinessHypothesis tests whether diet type predicts happiness,
// with the a priori contrast of plant-based diets (Vegan, Vegetarian)
// against all remaining diet groups.
func dietHappinessHypothesis(ds *table.Dataset, opts anova.Options) HypothesisResult {
	result := HypothesisResult{
		ID:   core.HypothesisID(core.NewID()),
		Name: "Diet type predicts happiness score",
	}

	anovaResult, err := anova.OneWayANOVA(ds, table.ColDietType, table.ColHappinessScore, opts)
	if err != nil {
		result.Err = err
		return result
	}
	result.ANOVA = &anovaResult

	positive := []string{table.DietVegan, table.DietVegetarian}
	negative := remainingLabels(ds, table.ColDietType, positive)
	spec, err := anova.ContrastWeights("plant-based vs other diets", positive, negative)
	if err != nil {
		result.Err = err
		return result
	}

	contrast, err := anova.PlannedContrast(ds, table.ColDietType, table.ColHappinessScore, spec, opts)
	if err != nil {
		result.Err = err
		return result
	}
	result.Contrast = &contrast
	return result
}

// stressSleepHypothesis tests the monotonic association between stress
// level and sleep hours, plus the supporting lifestyle correlations.
func stressSleepHypothesis(ds *table.Dataset) HypothesisResult {
	result := HypothesisResult{
		ID:   core.HypothesisID(core.NewID()),
		Name: "Stress level is associated with sleep hours",
	}

	pairs := []struct {
		x, y   string
		method domstats.CorrelationMethod
	}{
		{table.ColStressLevel, table.ColSleepHours, domstats.MethodSpearman},
		{table.ColAge, table.ColSleepHours, domstats.MethodPearson},
		{table.ColSocialInteractionScore, table.ColStressLevel, domstats.MethodSpearman},
		{table.ColAge, table.ColSocialInteractionScore, domstats.MethodPearson},
	}

	for i, pair := range pairs {
		corr, err := correlation.Correlate(ds, pair.x, pair.y, pair.method)
		if err != nil {
			// The primary pair decides the hypothesis; supporting pairs
			// are best-effort context.
			if i == 0 {
				result.Err = err
				return result
			}
			continue
		}
		result.Correlations = append(result.Correlations, corr)
	}
	return result
}

// conditionSocialHypothesis tests whether mental-health condition
// predicts social interaction, contrasting the healthy "None" group
// against all diagnosed-condition groups.
func conditionSocialHypothesis(ds *table.Dataset, opts anova.Options) HypothesisResult {
	result := HypothesisResult{
		ID:   core.HypothesisID(core.NewID()),
		Name: "Mental health condition predicts social interaction",
	}

	anovaResult, err := anova.OneWayANOVA(ds, table.ColMentalHealthCondition, table.ColSocialInteractionScore, opts)
	if err != nil {
		result.Err = err
		return result
	}
	result.ANOVA = &anovaResult

	positive := []string{table.ConditionNone}
	negative := remainingLabels(ds, table.ColMentalHealthCondition, positive)
	spec, err := anova.ContrastWeights("healthy vs diagnosed conditions", positive, negative)
	if err != nil {
		result.Err = err
		return result
	}

	contrast, err := anova.PlannedContrast(ds, table.ColMentalHealthCondition, table.ColSocialInteractionScore, spec, opts)
	if err != nil {
		result.Err = err
		return result
	}
	result.Contrast = &contrast
	return result
}

// remainingLabels returns the distinct labels of a column that are not
// in the excluded set, sorted for deterministic weight order.
func remainingLabels(ds *table.Dataset, column string, excluded []string) []string {
	labels, err := ds.Labels(column)
	if err != nil {
		return nil
	}

	skip := make(map[string]bool, len(excluded))
	for _, label := range excluded {
		skip[label] = true
	}

	seen := make(map[string]bool)
	var remaining []string
	for _, label := range labels {
		if label == "" || skip[label] || seen[label] {
			continue
		}
		seen[label] = true
		remaining = append(remaining, label)
	}
	sort.Strings(remaining)
	return remaining
}
