package rosterdiff

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRecords(t *testing.T) {
	in := "NIM , Name\n111,Jane Doe\n 222 ,\"Smith, John\"\n"
	records, err := ParseRecords(strings.NewReader(in), "test.csv")
	if err != nil {
		t.Errorf("want error nil, got %q", err)
	}
	if len(records) != 2 {
		t.Errorf("want 2 records, got %d", len(records))
	}
	if records[0].NIM != "111" || records[0].Name != "Jane Doe" {
		t.Errorf("want first record 111/Jane Doe, got %+v", records[0])
	}
	if records[1].NIM != "222" {
		t.Errorf("want trimmed NIM 222, got %q", records[1].NIM)
	}
	if records[1].Name != "Smith, John" {
		t.Errorf("want quoted name preserved, got %q", records[1].Name)
	}
}

func TestParseRecordsResolvesHeadersCaseInsensitively(t *testing.T) {
	in := "extra,NAME,Nim\nx,Jane Doe,111\n"
	records, err := ParseRecords(strings.NewReader(in), "test.csv")
	if err != nil {
		t.Errorf("want error nil, got %q", err)
	}
	if len(records) != 1 || records[0].NIM != "111" || records[0].Name != "Jane Doe" {
		t.Errorf("want columns resolved regardless of case and position, got %+v", records)
	}
}

func TestParseRecordsMissingColumnIsFatal(t *testing.T) {
	in := "id,fullname\n1,Jane Doe\n"
	_, err := ParseRecords(strings.NewReader(in), "test.csv")
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Errorf("want MissingColumnError, got %v", err)
	}
	if missing != nil && missing.Column != "nim" {
		t.Errorf("want missing column nim, got %s", missing.Column)
	}
}

func TestParseRecordsSkipsBlankRows(t *testing.T) {
	in := "nim,name\n111,Jane\n,\n222,Joan\n"
	records, err := ParseRecords(strings.NewReader(in), "test.csv")
	if err != nil {
		t.Errorf("want error nil, got %q", err)
	}
	if len(records) != 2 {
		t.Errorf("want blank row skipped, got %d records", len(records))
	}
}

func TestLoadColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mismatch.csv")
	content := "nim,name_voters_csv,name_database\n111,\"a\",\"b\"\n222,c,d\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Errorf("want error nil when writing test file, got %q", err)
	}
	nims, err := LoadColumn(path, "nim")
	if err != nil {
		t.Errorf("want error nil, got %q", err)
	}
	if len(nims) != 2 || nims[0] != "111" || nims[1] != "222" {
		t.Errorf("want [111 222], got %v", nims)
	}
}

func TestLoadColumnMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mismatch.csv")
	if err := os.WriteFile(path, []byte("name\nJane\n"), 0644); err != nil {
		t.Errorf("want error nil when writing test file, got %q", err)
	}
	_, err := LoadColumn(path, "nim")
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Errorf("want MissingColumnError, got %v", err)
	}
}

func TestLoadRecordsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voters.csv")
	if err := os.WriteFile(path, []byte("nim,name\n111,Jane Doe\n"), 0644); err != nil {
		t.Errorf("want error nil when writing test file, got %q", err)
	}
	records, err := LoadRecords(path)
	if err != nil {
		t.Errorf("want error nil, got %q", err)
	}
	if len(records) != 1 || records[0].NIM != "111" {
		t.Errorf("want one record with NIM 111, got %+v", records)
	}
}
