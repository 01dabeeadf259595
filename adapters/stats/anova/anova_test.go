package anova

import (
	"errors"
	"testing"

	"mindwell/domain/core"
	"mindwell/domain/table"
)

func testSchema() table.Schema {
	return table.NewSchema([]table.Column{
		{Name: "Diet Type", Type: table.TypeCategorical},
		{Name: "Happiness Score", Type: table.TypeNumeric},
	})
}

func dietDataset(t *testing.T, rows [][2]interface{}) *table.Dataset {
	t.Helper()
	ds := table.New(testSchema())
	for _, r := range rows {
		var score table.Cell
		switch v := r[1].(type) {
		case float64:
			score = table.NumericCell(v)
		case nil:
			score = table.MissingCell()
		default:
			t.Fatalf("Unsupported cell value %v", v)
		}
		if err := ds.Append(table.Row{table.LabelCell(r[0].(string)), score}); err != nil {
			t.Fatal(err)
		}
	}
	return ds
}

func fourDietRows() [][2]interface{} {
	return [][2]interface{}{
		{"Vegan", 7.0},
		{"Vegan", 8.0},
		{"Vegetarian", 7.5},
		{"Junk", 4.0},
		{"Junk", 3.5},
		{"Keto", 4.5},
	}
}

func TestOneWayANOVAFourGroups(t *testing.T) {
	ds := dietDataset(t, fourDietRows())

	result, err := OneWayANOVA(ds, "Diet Type", "Happiness Score", DefaultOptions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Hand-computed decomposition: SSB 18.75, SSW 0.625,
	// F = (18.75/3)/(0.625/2) = 20.
	if diff := result.F - 20.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("F = %v, want 20", result.F)
	}
	if result.DFBetween != 3 || result.DFWithin != 2 {
		t.Errorf("df = (%d, %d), want (3, 2)", result.DFBetween, result.DFWithin)
	}
	if result.PValue <= 0 || result.PValue >= 1 {
		t.Errorf("p = %v, want a value strictly inside (0, 1)", result.PValue)
	}
	if !result.Significant {
		t.Errorf("p = %v should clear alpha %v", result.PValue, result.Alpha)
	}

	// Eta squared is SSB / (SSB + SSW) = 18.75 / 19.375.
	wantEta := 18.75 / 19.375
	if diff := result.EtaSquared - wantEta; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("eta squared = %v, want %v", result.EtaSquared, wantEta)
	}
}

func TestOneWayANOVAEqualMeans(t *testing.T) {
	ds := dietDataset(t, [][2]interface{}{
		{"Vegan", 5.0},
		{"Vegan", 7.0},
		{"Junk", 5.0},
		{"Junk", 7.0},
	})

	result, err := OneWayANOVA(ds, "Diet Type", "Happiness Score", DefaultOptions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.F != 0 {
		t.Errorf("Equal group means should give F = 0, got %v", result.F)
	}
	if result.PValue < 0.999 {
		t.Errorf("Equal group means should give p near 1, got %v", result.PValue)
	}
	if result.Significant {
		t.Error("Equal means must not be flagged significant")
	}
}

func TestOneWayANOVAInsufficientGroups(t *testing.T) {
	ds := dietDataset(t, [][2]interface{}{
		{"Vegan", 7.0},
		{"Vegan", 8.0},
		{"Vegan", 6.0},
	})

	_, err := OneWayANOVA(ds, "Diet Type", "Happiness Score", DefaultOptions())
	if !errors.Is(err, core.ErrInsufficientGroups) {
		t.Errorf("Expected ErrInsufficientGroups, got %v", err)
	}
}

// A group whose target values are all missing contributes no members, so
// only one populated group remains.
func TestOneWayANOVAMissingTargetEmptiesGroup(t *testing.T) {
	ds := dietDataset(t, [][2]interface{}{
		{"Vegan", 7.0},
		{"Vegan", 8.0},
		{"Junk", nil},
		{"Junk", nil},
	})

	_, err := OneWayANOVA(ds, "Diet Type", "Happiness Score", DefaultOptions())
	if !errors.Is(err, core.ErrInsufficientGroups) {
		t.Errorf("Expected ErrInsufficientGroups, got %v", err)
	}
}

func TestOneWayANOVADegenerateVariance(t *testing.T) {
	ds := dietDataset(t, [][2]interface{}{
		{"Vegan", 7.0},
		{"Vegan", 7.0},
		{"Junk", 4.0},
		{"Junk", 4.0},
	})

	_, err := OneWayANOVA(ds, "Diet Type", "Happiness Score", DefaultOptions())
	if !errors.Is(err, core.ErrDegenerateVariance) {
		t.Errorf("Expected ErrDegenerateVariance, got %v", err)
	}
}

func TestOneWayANOVATooFewObservations(t *testing.T) {
	ds := dietDataset(t, [][2]interface{}{
		{"Vegan", 7.0},
		{"Junk", 4.0},
	})

	_, err := OneWayANOVA(ds, "Diet Type", "Happiness Score", DefaultOptions())
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestOneWayANOVAUnknownColumns(t *testing.T) {
	ds := dietDataset(t, fourDietRows())

	if _, err := OneWayANOVA(ds, "Nope", "Happiness Score", DefaultOptions()); !errors.Is(err, core.ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound for group column, got %v", err)
	}
	if _, err := OneWayANOVA(ds, "Diet Type", "Diet Type", DefaultOptions()); !errors.Is(err, core.ErrColumnType) {
		t.Errorf("Expected ErrColumnType for label target, got %v", err)
	}
}
