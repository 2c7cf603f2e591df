package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter writes the table part of a Dataset as comma separated text.
// Merged rows keep their label in the first cell. Notes follow the table
// after an empty record. Titles, fills and signatures are dropped.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("csv"); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	width := len(data.Headers)

	records := make([][]string, 0, len(data.Rows)+len(data.Notes)+2)
	records = append(records, data.Headers)
	for _, row := range data.Rows {
		record := make([]string, width)
		for col := 0; col < width; col++ {
			if row.Merge > 0 && col > 0 && col < row.Merge {
				continue
			}
			record[col] = row.cell(col)
		}
		records = append(records, record)
	}
	if len(data.Notes) > 0 {
		records = append(records, []string{""})
		for _, note := range data.Notes {
			records = append(records, []string{note})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
