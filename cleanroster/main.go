// Cleanroster rewrites the roster file, dropping every row whose NIM is
// listed in a missing-NIM report. Used after the committee confirms those
// roster entries are invalid rather than missing store rows.
package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/rosterdiff"
)

func main() {
	rosterFile := flag.String("roster", "voters.csv", "roster CSV to rewrite in place")
	missingFile := flag.String("missing", "mismatch_missing_nim.csv", "CSV with the NIMs to drop from the roster")
	flag.Parse()

	missing, err := rosterdiff.LoadColumn(*missingFile, "nim")
	if err != nil {
		log.Fatalf("failed to load missing-NIM report: %q", err)
	}
	missingSet := make(map[string]bool, len(missing))
	for _, nim := range missing {
		missingSet[rosterdiff.Normalize(nim)] = true
	}

	// The roster may carry columns beyond nim and name, so rows are
	// rewritten verbatim instead of going through the Record schema.
	f, err := os.Open(*rosterFile)
	if err != nil {
		log.Fatalf("failed to open roster [%s]: %q", *rosterFile, err)
	}
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	f.Close()
	if err != nil {
		log.Fatalf("failed to parse roster [%s]: %q", *rosterFile, err)
	}
	if len(rows) == 0 {
		log.Fatalf("roster [%s] is empty", *rosterFile)
	}
	nimIdx := -1
	for i, h := range rows[0] {
		if rosterdiff.Normalize(h) == "nim" {
			nimIdx = i
			break
		}
	}
	if nimIdx == -1 {
		log.Fatalf("%v", &rosterdiff.MissingColumnError{File: *rosterFile, Column: "nim"})
	}

	kept := [][]string{rows[0]}
	for _, row := range rows[1:] {
		if nimIdx < len(row) && missingSet[rosterdiff.Normalize(row[nimIdx])] {
			continue
		}
		kept = append(kept, row)
	}
	removed := len(rows) - len(kept)

	out, err := os.Create(*rosterFile)
	if err != nil {
		log.Fatalf("failed to rewrite roster [%s]: %q", *rosterFile, err)
	}
	writer := csv.NewWriter(out)
	if err := writer.WriteAll(kept); err != nil {
		log.Fatalf("failed to write roster rows: %q", err)
	}
	writer.Flush()
	if err := out.Close(); err != nil {
		log.Fatalf("failed to close roster file: %q", err)
	}

	log.Printf("initial rows [%d], removed [%d], remaining [%d]\n", len(rows)-1, removed, len(kept)-1)
}
