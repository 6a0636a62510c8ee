// Package rosterdiff compares the canonical voter roster with a snapshot of
// the voter store and classifies every discrepancy between them.
package rosterdiff

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Record is the minimal voter-like row both inputs share.
type Record struct {
	NIM  string `csv:"nim"`
	Name string `csv:"name"`
}

// NameMismatch is a NIM present on both sides whose normalized names differ.
// It carries both spellings so the fix pass can pick the roster one.
type NameMismatch struct {
	NIM        string `csv:"nim"`
	RosterName string `csv:"name_voters_csv"`
	StoreName  string `csv:"name_database"`
}

// Result holds the three discrepancy classes. The classes are disjoint: a
// NIM appears in at most one of them; everything else is clean by
// set-complement.
type Result struct {
	MissingInStore []Record
	NameMismatch   []NameMismatch
	ExtraInStore   []Record
}

// Normalize prepares an identifier or name for comparison: surrounding
// whitespace trimmed, Unicode case folded, internal whitespace runs
// collapsed to a single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(folder.String(s)), " ")
}

// dedupe keys the rows by normalized NIM with last-write-wins on the value,
// preserving first-seen order so every NIM surfaces exactly once.
func dedupe(rows []Record) (map[string]Record, []string) {
	byNIM := make(map[string]Record, len(rows))
	var order []string
	for _, row := range rows {
		nim := Normalize(row.NIM)
		if nim == "" {
			continue
		}
		if _, seen := byNIM[nim]; !seen {
			order = append(order, nim)
		}
		byNIM[nim] = row
	}
	return byNIM, order
}

// Diff matches the roster against the store snapshot purely by normalized
// NIM. Running it twice on unchanged inputs yields identical results.
func Diff(roster, store []Record) Result {
	rosterByNIM, rosterOrder := dedupe(roster)
	storeByNIM, storeOrder := dedupe(store)

	var res Result
	for _, nim := range rosterOrder {
		rosterRow := rosterByNIM[nim]
		storeRow, ok := storeByNIM[nim]
		if !ok {
			res.MissingInStore = append(res.MissingInStore, rosterRow)
			continue
		}
		if Normalize(rosterRow.Name) != Normalize(storeRow.Name) {
			res.NameMismatch = append(res.NameMismatch, NameMismatch{
				NIM:        rosterRow.NIM,
				RosterName: rosterRow.Name,
				StoreName:  storeRow.Name,
			})
		}
	}
	for _, nim := range storeOrder {
		if _, ok := rosterByNIM[nim]; !ok {
			res.ExtraInStore = append(res.ExtraInStore, storeByNIM[nim])
		}
	}
	return res
}
