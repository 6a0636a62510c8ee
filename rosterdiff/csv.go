package rosterdiff

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// MissingColumnError reports a CSV input whose header lacks a required
// column. It is fatal for the whole run, never per-row.
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column [%s] not found in file [%s]", e.Column, e.File)
}

// resolveColumn finds a header column by name, ignoring case and
// surrounding whitespace. The schema is resolved once here instead of
// defaulting missing columns to empty strings per row.
func resolveColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

// ParseRecords reads voter-like rows with nim and name columns from r.
// The displayName is only used in error messages.
func ParseRecords(r io.Reader, displayName string) ([]Record, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV [%s]: %q", displayName, err)
	}
	if len(rows) == 0 {
		return nil, &MissingColumnError{File: displayName, Column: "nim"}
	}
	nimIdx := resolveColumn(rows[0], "nim")
	if nimIdx == -1 {
		return nil, &MissingColumnError{File: displayName, Column: "nim"}
	}
	nameIdx := resolveColumn(rows[0], "name")
	if nameIdx == -1 {
		return nil, &MissingColumnError{File: displayName, Column: "name"}
	}
	var records []Record
	for _, row := range rows[1:] {
		record := Record{}
		if nimIdx < len(row) {
			record.NIM = strings.TrimSpace(row[nimIdx])
		}
		if nameIdx < len(row) {
			record.Name = row[nameIdx]
		}
		if record.NIM == "" && strings.TrimSpace(record.Name) == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadRecords reads a roster or store-export CSV from disk.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV [%s]: %q", path, err)
	}
	defer f.Close()
	return ParseRecords(f, path)
}

// LoadColumn reads the values of one named column from a CSV file, trimmed,
// empty values skipped. Used by the scripts that only need the NIM list of
// a mismatch report.
func LoadColumn(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV [%s]: %q", path, err)
	}
	defer f.Close()
	rows, err := readAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV [%s]: %q", path, err)
	}
	if len(rows) == 0 {
		return nil, &MissingColumnError{File: path, Column: column}
	}
	idx := resolveColumn(rows[0], column)
	if idx == -1 {
		return nil, &MissingColumnError{File: path, Column: column}
	}
	var values []string
	for _, row := range rows[1:] {
		if idx >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[idx])
		if value == "" {
			continue
		}
		values = append(values, value)
	}
	return values, nil
}
