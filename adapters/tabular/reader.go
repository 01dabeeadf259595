// Package tabular loads the delimited survey file into the in-memory
// dataset the engines operate on. File handling stays outside the
// statistical core; the engines only ever see a *table.Dataset.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"mindwell/domain/table"
)

// Reader loads CSV or XLSX survey files against a fixed schema
type Reader struct {
	filePath  string
	fileType  string // "csv" or "xlsx"
	sheetName string
	schema    table.Schema
}

// NewReader creates a reader for the given file. The extension decides
// the format; everything that is not .csv is treated as a workbook.
func NewReader(filePath, sheetName string, schema table.Schema) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &Reader{filePath: filePath, fileType: fileType, sheetName: sheetName, schema: schema}
}

// Read loads the file into a dataset. The header row must carry every
// schema column by name; column order in the file is free.
func (r *Reader) Read() (*table.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readWorkbookRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 1 {
		return nil, fmt.Errorf("%s file has no header row", strings.ToUpper(r.fileType))
	}
	return r.buildDataset(rows)
}

func (r *Reader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func (r *Reader) readWorkbookRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.sheetName, err)
	}
	return rows, nil
}

// buildDataset maps header names to schema columns and coerces each cell
func (r *Reader) buildDataset(rows [][]string) (*table.Dataset, error) {
	header := rows[0]
	position := make(map[string]int, len(header))
	for i, name := range header {
		position[strings.TrimSpace(name)] = i
	}

	for _, col := range r.schema.Columns() {
		if _, ok := position[col.Name]; !ok {
			return nil, fmt.Errorf("header is missing required column %q", col.Name)
		}
	}

	ds := table.New(r.schema)
	for _, raw := range rows[1:] {
		row := make(table.Row, r.schema.Width())
		for j, col := range r.schema.Columns() {
			value := ""
			if p := position[col.Name]; p < len(raw) {
				value = strings.TrimSpace(raw[p])
			}
			row[j] = coerceCell(col, value)
		}
		if err := ds.Append(row); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
