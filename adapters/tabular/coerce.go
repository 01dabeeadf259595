package tabular

import (
	"math"
	"strconv"
	"strings"

	"mindwell/domain/table"
)

// coerceCell deterministically converts one raw string to a typed cell.
// Blank and whitespace-only values are missing regardless of column
// type; a numeric cell that fails to parse, and an ordinal label outside
// the column's level set, are likewise treated as missing rather than
// carried through as junk values.
func coerceCell(col table.Column, raw string) table.Cell {
	if raw == "" {
		return table.MissingCell()
	}

	switch col.Type {
	case table.TypeNumeric:
		if v, ok := parseNumeric(raw); ok {
			return table.NumericCell(v)
		}
		return table.MissingCell()
	case table.TypeOrdinal:
		label := canonicalLevel(col, raw)
		if label == "" {
			return table.MissingCell()
		}
		return table.LabelCell(label)
	default:
		return table.LabelCell(raw)
	}
}

// parseNumeric accepts plain decimals plus the common survey-export
// variants: thousands separators and a trailing percent sign.
func parseNumeric(raw string) (float64, bool) {
	clean := strings.ReplaceAll(raw, ",", "")
	clean = strings.TrimSuffix(clean, "%")
	clean = strings.TrimSpace(clean)

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// canonicalLevel matches a raw label to the column's ordinal levels,
// ignoring case. Returns "" for labels outside the level set.
func canonicalLevel(col table.Column, raw string) string {
	for _, lvl := range col.Levels {
		if strings.EqualFold(lvl, raw) {
			return lvl
		}
	}
	return ""
}
