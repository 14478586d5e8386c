package api

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/roster-import-api/internal/models"
)

// ParseTable reads a semicolon-separated roster CSV into an in-memory table.
// Headers are trimmed and lowercased before the pipeline sees them; a UTF-8
// BOM on the first header is dropped (spreadsheet exports carry one). Cell
// values are passed through verbatim.
func ParseTable(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.ToLower(strings.TrimSpace(h))
	}

	table := models.NewTable(columns...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		// Malformed rows are skipped; a failing underlying reader (e.g. an
		// aborted upload stream) would return the same error forever.
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		row := make(models.Record, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Append(row)
	}

	return table, nil
}

// WriteTable writes a table as a semicolon-separated CSV file.
func WriteTable(path string, t *models.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
