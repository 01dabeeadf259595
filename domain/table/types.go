package table

import (
	"fmt"
	"strconv"
	"strings"

	"mindwell/domain/core"
)

// ColumnType classifies how a column's values participate in statistics
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeOrdinal     ColumnType = "ordinal"
)

// Column describes a single column in the fixed survey schema
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
	// Levels lists the valid ordinal labels in rank order (lowest first).
	// Empty for numeric and categorical columns.
	Levels []string `json:"levels,omitempty"`
}

// IsLabel reports whether the column holds labels rather than numbers
func (c Column) IsLabel() bool {
	return c.Type == TypeCategorical || c.Type == TypeOrdinal
}

// LevelRank maps an ordinal label to its 1-based rank.
// Returns false for unknown labels or non-ordinal columns.
func (c Column) LevelRank(label string) (float64, bool) {
	for i, lvl := range c.Levels {
		if lvl == label {
			return float64(i + 1), true
		}
	}
	return 0, false
}

// Schema is the fixed, ordered column set of a dataset
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a schema from an ordered column list
func NewSchema(columns []Column) Schema {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c.Name] = i
	}
	return Schema{columns: columns, index: idx}
}

// Columns returns the ordered column definitions
func (s Schema) Columns() []Column {
	return s.columns
}

// Width returns the number of columns
func (s Schema) Width() int {
	return len(s.columns)
}

// Column looks up a column definition by name
func (s Schema) Column(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Index returns the positional index of a column
func (s Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// NumericColumns returns the names of all numeric columns in order
func (s Schema) NumericColumns() []string {
	var names []string
	for _, c := range s.columns {
		if c.Type == TypeNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// LabelColumns returns the names of all categorical and ordinal columns in order
func (s Schema) LabelColumns() []string {
	var names []string
	for _, c := range s.columns {
		if c.IsLabel() {
			names = append(names, c.Name)
		}
	}
	return names
}

// Cell is a single typed value; exactly one of Num/Label is meaningful
// unless Missing is set.
type Cell struct {
	Num     float64 `json:"num,omitempty"`
	Label   string  `json:"label,omitempty"`
	Missing bool    `json:"missing,omitempty"`
}

// NumericCell creates a numeric cell
func NumericCell(v float64) Cell {
	return Cell{Num: v}
}

// LabelCell creates a categorical/ordinal cell; blank labels are missing
func LabelCell(label string) Cell {
	label = strings.TrimSpace(label)
	if label == "" {
		return MissingCell()
	}
	return Cell{Label: label}
}

// MissingCell creates a missing-value cell
func MissingCell() Cell {
	return Cell{Missing: true}
}

// Row is one record, cells ordered per schema
type Row []Cell

// Fingerprint returns a content hash of the row. Rows identical across
// every column share a fingerprint; missing cells hash distinctly from
// any real value.
func (r Row) Fingerprint() core.RowFingerprint {
	var b strings.Builder
	for i, cell := range r {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		switch {
		case cell.Missing:
			b.WriteByte(0x00)
		case cell.Label != "":
			b.WriteString(cell.Label)
		default:
			b.WriteString(strconv.FormatFloat(cell.Num, 'g', -1, 64))
		}
	}
	return core.NewRowFingerprint([]byte(b.String()))
}

// Dataset is an ordered collection of rows over a fixed schema.
// A cleaned dataset is treated as immutable by every downstream engine.
type Dataset struct {
	schema Schema
	rows   []Row
}

// New creates an empty dataset over the given schema
func New(schema Schema) *Dataset {
	return &Dataset{schema: schema}
}

// Schema returns the dataset's schema
func (d *Dataset) Schema() Schema {
	return d.schema
}

// RowCount returns the number of rows
func (d *Dataset) RowCount() int {
	return len(d.rows)
}

// ColumnCount returns the number of columns
func (d *Dataset) ColumnCount() int {
	return d.schema.Width()
}

// Append adds a row, enforcing schema arity
func (d *Dataset) Append(row Row) error {
	if len(row) != d.schema.Width() {
		return fmt.Errorf("row has %d cells, schema has %d columns", len(row), d.schema.Width())
	}
	d.rows = append(d.rows, row)
	return nil
}

// Row returns the row at index i
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Cell returns the cell at row i for the named column
func (d *Dataset) Cell(i int, column string) (Cell, error) {
	j, ok := d.schema.Index(column)
	if !ok {
		return Cell{}, core.NewColumnNotFoundError(column)
	}
	return d.rows[i][j], nil
}

// NumericColumn extracts a numeric column as a full-length slice.
// Missing cells are reported through the parallel ok slice.
func (d *Dataset) NumericColumn(name string) ([]float64, []bool, error) {
	col, ok := d.schema.Column(name)
	if !ok {
		return nil, nil, core.NewColumnNotFoundError(name)
	}
	if col.Type != TypeNumeric {
		return nil, nil, core.NewColumnTypeError(name, string(TypeNumeric), string(col.Type))
	}
	j, _ := d.schema.Index(name)
	values := make([]float64, len(d.rows))
	present := make([]bool, len(d.rows))
	for i, row := range d.rows {
		if row[j].Missing {
			continue
		}
		values[i] = row[j].Num
		present[i] = true
	}
	return values, present, nil
}

// OrdinalRanks extracts an ordinal column as 1-based level ranks.
// Missing cells are reported through the parallel ok slice.
func (d *Dataset) OrdinalRanks(name string) ([]float64, []bool, error) {
	col, ok := d.schema.Column(name)
	if !ok {
		return nil, nil, core.NewColumnNotFoundError(name)
	}
	if col.Type != TypeOrdinal {
		return nil, nil, core.NewColumnTypeError(name, string(TypeOrdinal), string(col.Type))
	}
	j, _ := d.schema.Index(name)
	ranks := make([]float64, len(d.rows))
	present := make([]bool, len(d.rows))
	for i, row := range d.rows {
		if row[j].Missing {
			continue
		}
		r, ok := col.LevelRank(row[j].Label)
		if !ok {
			continue
		}
		ranks[i] = r
		present[i] = true
	}
	return ranks, present, nil
}

// Labels extracts a categorical or ordinal column as a full-length slice;
// missing cells yield the empty string.
func (d *Dataset) Labels(name string) ([]string, error) {
	col, ok := d.schema.Column(name)
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	if !col.IsLabel() {
		return nil, core.NewColumnTypeError(name, "categorical or ordinal", string(col.Type))
	}
	j, _ := d.schema.Index(name)
	labels := make([]string, len(d.rows))
	for i, row := range d.rows {
		if !row[j].Missing {
			labels[i] = row[j].Label
		}
	}
	return labels, nil
}
