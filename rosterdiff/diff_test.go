package rosterdiff

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		out  string
	}{
		{"Trims surrounding whitespace", "  Jane Doe ", "jane doe"},
		{"Folds case", "JANE DOE", "jane doe"},
		{"Collapses internal whitespace runs", "Jane   \t Doe", "jane doe"},
		{"Keeps empty string empty", "", ""},
		{"Whitespace only becomes empty", "   ", ""},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.out {
				t.Errorf("want %q, got %q", tt.out, got)
			}
		})
	}
}

func TestDiffMissingInStore(t *testing.T) {
	roster := []Record{{NIM: "111", Name: "Jane Doe"}}
	var store []Record
	res := Diff(roster, store)
	if len(res.MissingInStore) != 1 {
		t.Errorf("want 1 missing record, got %d", len(res.MissingInStore))
	}
	if res.MissingInStore[0].NIM != "111" {
		t.Errorf("want NIM 111 in MissingInStore, got %s", res.MissingInStore[0].NIM)
	}
	if len(res.NameMismatch) != 0 || len(res.ExtraInStore) != 0 {
		t.Errorf("want empty NameMismatch and ExtraInStore, got %d and %d",
			len(res.NameMismatch), len(res.ExtraInStore))
	}
}

func TestDiffNormalizedNamesAreNotMismatches(t *testing.T) {
	roster := []Record{{NIM: "100", Name: "  JANE   DOE "}}
	store := []Record{{NIM: "100", Name: "jane doe"}}
	res := Diff(roster, store)
	if len(res.NameMismatch) != 0 {
		t.Errorf("want no name mismatch for names differing only by case and whitespace, got %d", len(res.NameMismatch))
	}
}

func TestDiffNameMismatchCarriesBothNames(t *testing.T) {
	roster := []Record{{NIM: "200", Name: "Jon Smith"}}
	store := []Record{{NIM: "200", Name: "John Smith"}}
	res := Diff(roster, store)
	if len(res.NameMismatch) != 1 {
		t.Errorf("want 1 name mismatch, got %d", len(res.NameMismatch))
	}
	m := res.NameMismatch[0]
	if m.RosterName != "Jon Smith" || m.StoreName != "John Smith" {
		t.Errorf("want both names carried, got roster %q and store %q", m.RosterName, m.StoreName)
	}
}

func TestDiffEmptyNameComparedLiterally(t *testing.T) {
	roster := []Record{{NIM: "300", Name: ""}}
	store := []Record{{NIM: "300", Name: "Someone"}}
	res := Diff(roster, store)
	if len(res.NameMismatch) != 1 {
		t.Errorf("want empty vs non-empty name to mismatch, got %d mismatches", len(res.NameMismatch))
	}
}

func TestDiffExtraInStore(t *testing.T) {
	roster := []Record{{NIM: "111", Name: "Jane Doe"}}
	store := []Record{
		{NIM: "111", Name: "Jane Doe"},
		{NIM: "999", Name: "Gone Graduate"},
	}
	res := Diff(roster, store)
	if len(res.ExtraInStore) != 1 {
		t.Errorf("want 1 extra record, got %d", len(res.ExtraInStore))
	}
	if res.ExtraInStore[0].NIM != "999" {
		t.Errorf("want NIM 999 in ExtraInStore, got %s", res.ExtraInStore[0].NIM)
	}
}

func TestDiffDuplicateRosterRowsReportOnce(t *testing.T) {
	roster := []Record{
		{NIM: "111", Name: "Jane Doe"},
		{NIM: "111", Name: "Jane D."},
		{NIM: " 111 ", Name: "Jane Doe Again"},
	}
	var store []Record
	res := Diff(roster, store)
	if len(res.MissingInStore) != 1 {
		t.Errorf("want NIM 111 reported exactly once despite duplicates, got %d entries", len(res.MissingInStore))
	}
	// last row wins for the carried value
	if res.MissingInStore[0].Name != "Jane Doe Again" {
		t.Errorf("want last duplicate row to win, got name %q", res.MissingInStore[0].Name)
	}
}

func TestDiffClassesAreDisjoint(t *testing.T) {
	roster := []Record{
		{NIM: "1", Name: "A"},
		{NIM: "2", Name: "B"},
		{NIM: "3", Name: "C"},
	}
	store := []Record{
		{NIM: "2", Name: "B changed"},
		{NIM: "3", Name: "C"},
		{NIM: "4", Name: "D"},
	}
	res := Diff(roster, store)
	seen := map[string]int{}
	for _, r := range res.MissingInStore {
		seen[Normalize(r.NIM)]++
	}
	for _, m := range res.NameMismatch {
		seen[Normalize(m.NIM)]++
	}
	for _, r := range res.ExtraInStore {
		seen[Normalize(r.NIM)]++
	}
	for nim, count := range seen {
		if count > 1 {
			t.Errorf("want NIM %s in at most one class, got %d", nim, count)
		}
	}
	if seen["1"] != 1 || seen["2"] != 1 || seen["4"] != 1 {
		t.Errorf("want NIMs 1, 2 and 4 each classified once, got %v", seen)
	}
	if seen["3"] != 0 {
		t.Errorf("want clean NIM 3 in no class, got %d", seen["3"])
	}
}

func TestDiffIsIdempotent(t *testing.T) {
	roster := []Record{
		{NIM: "1", Name: "A"},
		{NIM: "2", Name: "B"},
	}
	store := []Record{
		{NIM: "2", Name: "Bee"},
		{NIM: "5", Name: "E"},
	}
	first := Diff(roster, store)
	second := Diff(roster, store)
	if len(first.MissingInStore) != len(second.MissingInStore) ||
		len(first.NameMismatch) != len(second.NameMismatch) ||
		len(first.ExtraInStore) != len(second.ExtraInStore) {
		t.Errorf("want identical classification sizes on a second run, got %+v and %+v", first, second)
	}
	for i := range first.MissingInStore {
		if first.MissingInStore[i] != second.MissingInStore[i] {
			t.Errorf("want identical MissingInStore rows, got %+v and %+v",
				first.MissingInStore[i], second.MissingInStore[i])
		}
	}
	for i := range first.NameMismatch {
		if first.NameMismatch[i] != second.NameMismatch[i] {
			t.Errorf("want identical NameMismatch rows, got %+v and %+v",
				first.NameMismatch[i], second.NameMismatch[i])
		}
	}
	for i := range first.ExtraInStore {
		if first.ExtraInStore[i] != second.ExtraInStore[i] {
			t.Errorf("want identical ExtraInStore rows, got %+v and %+v",
				first.ExtraInStore[i], second.ExtraInStore[i])
		}
	}
}
