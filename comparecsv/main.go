// Comparecsv matches the canonical roster file against an export of the
// voter store and writes one CSV per discrepancy class, plus a combined
// report. The reports drive the fixnames, deleteextra and cleanroster
// passes; they can optionally be archived to the committee S3 bucket.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gocarina/gocsv"
	"github.com/matryer/try"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/reportstore"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/rosterdiff"
)

const maxAttempts = 5

type missingRow struct {
	Name string `csv:"name"`
	NIM  string `csv:"nim"`
}

type extraRow struct {
	NIM  string `csv:"nim"`
	Name string `csv:"name"`
}

type combinedRow struct {
	NIM  string `csv:"nim"`
	Name string `csv:"name"`
	Type string `csv:"mismatch_type"`
}

func main() {
	rosterFile := flag.String("roster", "voters.csv", "canonical roster CSV (nim, name)")
	exportFile := flag.String("export", "voters_export.csv", "store export CSV (nim, name)")
	outDir := flag.String("outDir", ".", "directory to write the mismatch reports to")
	archiveBucket := flag.String("archiveBucket", "", "S3 bucket to also archive the reports to, empty to skip")
	flag.Parse()

	roster, err := rosterdiff.LoadRecords(*rosterFile)
	if err != nil {
		log.Fatalf("failed to load roster: %q", err)
	}
	export, err := rosterdiff.LoadRecords(*exportFile)
	if err != nil {
		log.Fatalf("failed to load store export: %q", err)
	}
	log.Printf("%s: %d rows\n", *rosterFile, len(roster))
	log.Printf("%s: %d rows\n", *exportFile, len(export))

	res := rosterdiff.Diff(roster, export)
	log.Printf("NIM in roster but not in store : %d\n", len(res.MissingInStore))
	log.Printf("same NIM, different name       : %d\n", len(res.NameMismatch))
	log.Printf("in store but not in roster     : %d\n", len(res.ExtraInStore))

	local := reportstore.NewLocalStorage()
	var written []string

	if len(res.MissingInStore) > 0 {
		rows := make([]*missingRow, 0, len(res.MissingInStore))
		for _, r := range res.MissingInStore {
			log.Printf("  missing in store: NIM %s | %s\n", r.NIM, r.Name)
			rows = append(rows, &missingRow{Name: r.Name, NIM: r.NIM})
		}
		written = append(written, writeReport(local, *outDir, "mismatch_missing_nim.csv", &rows))
	}
	if len(res.NameMismatch) > 0 {
		rows := make([]*rosterdiff.NameMismatch, 0, len(res.NameMismatch))
		for i := range res.NameMismatch {
			m := res.NameMismatch[i]
			log.Printf("  name differs: NIM %s | roster %q | store %q\n", m.NIM, m.RosterName, m.StoreName)
			rows = append(rows, &m)
		}
		written = append(written, writeReport(local, *outDir, "mismatch_name_diff.csv", &rows))
	}
	if len(res.ExtraInStore) > 0 {
		rows := make([]*extraRow, 0, len(res.ExtraInStore))
		for _, r := range res.ExtraInStore {
			log.Printf("  extra in store: NIM %s | %s\n", r.NIM, r.Name)
			rows = append(rows, &extraRow{NIM: r.NIM, Name: r.Name})
		}
		written = append(written, writeReport(local, *outDir, "mismatch_extra_in_db.csv", &rows))
	}

	combined := combine(res)
	if len(combined) == 0 {
		log.Println("all records match, no mismatch found")
		return
	}
	written = append(written, writeReport(local, *outDir, "mismatch_all.csv", &combined))

	if *archiveBucket != "" {
		archive(res, combined, *archiveBucket)
	}
	log.Printf("done, %d reports written\n", len(written))
}

func combine(res rosterdiff.Result) []*combinedRow {
	var combined []*combinedRow
	for _, r := range res.MissingInStore {
		combined = append(combined, &combinedRow{NIM: r.NIM, Name: r.Name, Type: "NIM missing in database"})
	}
	for _, m := range res.NameMismatch {
		combined = append(combined, &combinedRow{
			NIM:  m.NIM,
			Name: m.RosterName,
			Type: fmt.Sprintf("Name differs (db: %s)", m.StoreName),
		})
	}
	for _, r := range res.ExtraInStore {
		combined = append(combined, &combinedRow{NIM: r.NIM, Name: r.Name, Type: "NIM missing in roster (extra in database)"})
	}
	return combined
}

func writeReport(storage reportstore.FileStorage, dir, name string, rows interface{}) string {
	b, err := gocsv.MarshalBytes(rows)
	if err != nil {
		log.Fatalf("failed to marshal report [%s]: %q", name, err)
	}
	path, err := storage.Upload(b, dir, name)
	if err != nil {
		log.Fatalf("failed to write report [%s]: %q", name, err)
	}
	log.Printf("saved to: %s\n", path)
	return path
}

func archive(res rosterdiff.Result, combined []*combinedRow, bucket string) {
	s3 := reportstore.NewAWSClient()
	reports := map[string]interface{}{}
	if len(res.MissingInStore) > 0 {
		rows := make([]*missingRow, 0, len(res.MissingInStore))
		for _, r := range res.MissingInStore {
			rows = append(rows, &missingRow{Name: r.Name, NIM: r.NIM})
		}
		reports["mismatch_missing_nim.csv"] = &rows
	}
	if len(res.NameMismatch) > 0 {
		rows := make([]*rosterdiff.NameMismatch, 0, len(res.NameMismatch))
		for i := range res.NameMismatch {
			m := res.NameMismatch[i]
			rows = append(rows, &m)
		}
		reports["mismatch_name_diff.csv"] = &rows
	}
	if len(res.ExtraInStore) > 0 {
		rows := make([]*extraRow, 0, len(res.ExtraInStore))
		for _, r := range res.ExtraInStore {
			rows = append(rows, &extraRow{NIM: r.NIM, Name: r.Name})
		}
		reports["mismatch_extra_in_db.csv"] = &rows
	}
	reports["mismatch_all.csv"] = &combined
	for name, rows := range reports {
		b, err := gocsv.MarshalBytes(rows)
		if err != nil {
			log.Fatalf("failed to marshal report [%s] for archive: %q", name, err)
		}
		var location string
		err = try.Do(func(attempt int) (bool, error) {
			var uploadErr error
			location, uploadErr = s3.Upload(b, bucket, name)
			return attempt < maxAttempts, uploadErr
		})
		if err != nil {
			log.Fatalf("failed to archive report [%s] to bucket [%s]: %q", name, bucket, err)
		}
		log.Printf("archived to: %s\n", location)
	}
}
