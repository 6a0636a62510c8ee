// Exportmismatch dumps every store column of the voters whose NIMs appear
// in a name-mismatch report, so the committee can audit the affected rows
// before and after a fix pass.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/joho/godotenv"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/reportstore"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/rosterdiff"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/voter"
)

func main() {
	mismatchFile := flag.String("mismatch", "mismatch_name_diff.csv", "CSV with the NIMs to export")
	outDir := flag.String("outDir", ".", "directory to write the export to")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("missing DATABASE_URL environment variable")
	}
	repo, err := voter.NewGormRepository(databaseURL)
	if err != nil {
		log.Fatalf("failed to open voter store: %q", err)
	}

	nims, err := rosterdiff.LoadColumn(*mismatchFile, "nim")
	if err != nil {
		log.Fatalf("failed to load mismatch report: %q", err)
	}

	var rows []*voter.Voter
	var notFound int
	seen := make(map[string]bool, len(nims))
	for _, nim := range nims {
		if seen[nim] {
			continue
		}
		seen[nim] = true
		v, err := repo.FindByNIM(nim)
		if errors.Is(err, voter.ErrNotFound) {
			log.Printf("NIM %s not found in the store, skipping\n", nim)
			notFound++
			continue
		}
		if err != nil {
			log.Fatalf("failed to look up NIM %s: %q", nim, err)
		}
		rows = append(rows, v)
	}
	if len(rows) == 0 {
		log.Println("no matching rows found in the store")
		return
	}

	b, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		log.Fatalf("failed to marshal export: %q", err)
	}
	path, err := reportstore.NewLocalStorage().Upload(b, *outDir, "mismatch_full_export.csv")
	if err != nil {
		log.Fatalf("failed to write export: %q", err)
	}
	log.Printf("exported [%d] row(s) to %s, not found [%d]\n", len(rows), path, notFound)
}
