package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell/domain/core"
	domstats "mindwell/domain/stats"
	"mindwell/domain/table"
	"mindwell/internal/config"
)

// respondent is one synthetic survey answer used to build test datasets
type respondent struct {
	age       float64
	diet      string
	sleep     float64
	stress    string
	happiness float64
	condition string
	social    float64
}

func buildSurvey(t *testing.T, people []respondent) *table.Dataset {
	t.Helper()
	schema := table.SurveySchema()
	ds := table.New(schema)
	for i, p := range people {
		cells := map[string]table.Cell{
			table.ColAge:                    table.NumericCell(p.age),
			table.ColGender:                 table.LabelCell("Female"),
			table.ColCountry:                table.LabelCell("USA"),
			table.ColDietType:               table.LabelCell(p.diet),
			table.ColSleepHours:             table.NumericCell(p.sleep),
			table.ColStressLevel:            table.LabelCell(p.stress),
			table.ColExerciseLevel:          table.LabelCell("Moderate"),
			table.ColHappinessScore:         table.NumericCell(p.happiness),
			table.ColMentalHealthCondition:  table.LabelCell(p.condition),
			table.ColSocialInteractionScore: table.NumericCell(p.social),
			table.ColWorkHours:              table.NumericCell(40 + float64(i%3)),
			table.ColCaffeineIntake:         table.NumericCell(float64(i % 4)),
		}
		row := make(table.Row, schema.Width())
		for j, col := range schema.Columns() {
			row[j] = cells[col.Name]
		}
		require.NoError(t, ds.Append(row))
	}
	return ds
}

// fullSurvey covers every group the three hypotheses reference, with a
// clear pattern: plant-based diets happier, higher stress with less
// sleep, diagnosed conditions less social.
func fullSurvey(t *testing.T) *table.Dataset {
	var people []respondent
	kinds := []struct {
		diet      string
		stress    string
		condition string
		happiness float64
		sleep     float64
		social    float64
	}{
		{"Vegan", "Low", "None", 8.0, 8.0, 8.0},
		{"Vegetarian", "Low", "None", 7.5, 7.5, 7.5},
		{"Keto", "Moderate", "Anxiety", 5.0, 6.5, 5.0},
		{"Junk", "High", "Depression", 4.0, 5.5, 4.0},
	}
	for i := 0; i < 5; i++ {
		for _, k := range kinds {
			people = append(people, respondent{
				age:       25 + float64(len(people)),
				diet:      k.diet,
				sleep:     k.sleep + 0.1*float64(i),
				stress:    k.stress,
				happiness: k.happiness + 0.1*float64(i),
				condition: k.condition,
				social:    k.social + 0.1*float64(i),
			})
		}
	}
	return buildSurvey(t, people)
}

func testService() *AnalysisService {
	return NewAnalysisService(config.AnalysisConfig{Alpha: 0.05, ZThreshold: 3.0}, nil)
}

func TestRunFullPipeline(t *testing.T) {
	run, err := testService().Run(context.Background(), fullSurvey(t))
	require.NoError(t, err)

	assert.NotEmpty(t, string(run.RunID))
	assert.Equal(t, 20, run.CleaningReport.InitialRows)
	assert.Equal(t, 20, run.CleaningReport.FinalRows)
	assert.Len(t, run.Summaries, 12)
	assert.Len(t, run.Missingness, 12)
	assert.Len(t, run.GroupSummaries, 2)
	require.Len(t, run.Hypotheses, 3)

	for _, h := range run.Hypotheses {
		assert.Falsef(t, h.Failed(), "hypothesis %q failed: %v", h.Name, h.Err)
	}

	diet := run.Hypotheses[0]
	require.NotNil(t, diet.ANOVA)
	require.NotNil(t, diet.Contrast)
	assert.Greater(t, diet.ANOVA.F, 0.0)
	assert.Greater(t, diet.Contrast.T, 0.0, "Plant-based diets are happier in this data")

	stress := run.Hypotheses[1]
	require.NotEmpty(t, stress.Correlations)
	primary := stress.Correlations[0]
	assert.Equal(t, domstats.MethodSpearman, primary.Method)
	assert.Less(t, primary.Coefficient, 0.0, "Higher stress goes with less sleep in this data")

	condition := run.Hypotheses[2]
	require.NotNil(t, condition.Contrast)
	assert.Greater(t, condition.Contrast.T, 0.0, "The None group is more social in this data")
}

// A hypothesis that cannot be computed is recorded in its slot without
// disturbing the other two.
func TestRunIsolatesHypothesisFailure(t *testing.T) {
	var people []respondent
	// No Vegan respondents, so the diet contrast must fail on its
	// missing reference group while everything else proceeds.
	kinds := []struct {
		diet      string
		stress    string
		condition string
		happiness float64
		sleep     float64
		social    float64
	}{
		{"Vegetarian", "Low", "None", 7.5, 7.5, 7.5},
		{"Keto", "Moderate", "Anxiety", 5.0, 6.5, 5.0},
		{"Junk", "High", "Depression", 4.0, 5.5, 4.0},
	}
	for i := 0; i < 5; i++ {
		for _, k := range kinds {
			people = append(people, respondent{
				age:       25 + float64(len(people)),
				diet:      k.diet,
				sleep:     k.sleep + 0.1*float64(i),
				stress:    k.stress,
				happiness: k.happiness + 0.1*float64(i),
				condition: k.condition,
				social:    k.social + 0.1*float64(i),
			})
		}
	}

	run, err := testService().Run(context.Background(), buildSurvey(t, people))
	require.NoError(t, err, "A failed hypothesis must not fail the run")
	require.Len(t, run.Hypotheses, 3)

	diet := run.Hypotheses[0]
	assert.True(t, diet.Failed())
	assert.True(t, errors.Is(diet.Err, core.ErrMissingGroup), "got %v", diet.Err)
	assert.NotNil(t, diet.ANOVA, "The omnibus test itself succeeded")

	assert.False(t, run.Hypotheses[1].Failed())
	assert.False(t, run.Hypotheses[2].Failed())
}

func TestRunEmptyDataset(t *testing.T) {
	run, err := testService().Run(context.Background(), table.New(table.SurveySchema()))
	require.NoError(t, err)

	assert.Equal(t, 0, run.CleaningReport.FinalRows)
	require.Len(t, run.Hypotheses, 3)
	for _, h := range run.Hypotheses {
		assert.Truef(t, h.Failed(), "hypothesis %q should fail on an empty dataset", h.Name)
		assert.Truef(t, core.IsStatisticalError(h.Err), "hypothesis %q error %v should be statistical", h.Name, h.Err)
	}
	assert.Empty(t, run.GroupSummaries[0].Groups)
}

func TestRemainingLabels(t *testing.T) {
	ds := fullSurvey(t)

	rest := remainingLabels(ds, table.ColDietType, []string{table.DietVegan, table.DietVegetarian})
	assert.Equal(t, []string{"Junk", "Keto"}, rest)

	all := remainingLabels(ds, table.ColDietType, nil)
	assert.Equal(t, []string{"Junk", "Keto", "Vegan", "Vegetarian"}, all)
}

func TestHypothesisResultsHaveDistinctIDs(t *testing.T) {
	run, err := testService().Run(context.Background(), fullSurvey(t))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, h := range run.Hypotheses {
		id := fmt.Sprint(h.ID)
		assert.False(t, seen[id], "duplicate hypothesis id %s", id)
		seen[id] = true
	}
}
