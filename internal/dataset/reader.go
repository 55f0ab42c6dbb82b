// Package dataset reads the tabular claim input (CSV or XLSX) into
// ClaimRecords. The header row maps columns to field names exactly as
// written; no normalization is applied.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trinitycontents/reportgen/internal/model"
	"github.com/xuri/excelize/v2"
)

// Read parses the dataset at path. The format is chosen by extension:
// .csv is read with the stdlib codec, anything else is treated as a
// spreadsheet and read from its first sheet.
func Read(path string) ([]model.ClaimRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSV(path)
	}
	return readXLSX(path)
}

func readCSV(path string) ([]model.ClaimRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	return recordsFromRows(rows), nil
}

func readXLSX(path string) ([]model.ClaimRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", filepath.Base(path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return recordsFromRows(rows), nil
}

// recordsFromRows maps each data row against the header row. Rows shorter
// than the header leave the remaining fields absent; extra cells beyond the
// header are dropped.
func recordsFromRows(rows [][]string) []model.ClaimRecord {
	if len(rows) == 0 {
		return nil
	}

	header := rows[0]
	records := make([]model.ClaimRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				fields[name] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, model.NewClaimRecord(fields))
	}
	return records
}
