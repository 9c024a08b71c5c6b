package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// CSVReader reads delimited text exports.
type CSVReader struct{}

// Format returns the reader name.
func (r *CSVReader) Format() string { return "csv" }

// Read returns all rows including the header.
func (r *CSVReader) Read(src io.Reader) ([][]string, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // ragged rows surface as validation errors, not read errors

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return rows, nil
}

// XLSXReader reads the first sheet of a spreadsheet workbook.
type XLSXReader struct{}

// Format returns the reader name.
func (r *XLSXReader) Format() string { return "xlsx" }

// Read returns all rows of the first sheet, header included.
func (r *XLSXReader) Read(src io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
