// Fixnames corrects the store name of every NIM listed in a name-mismatch
// report, taking the roster as the authoritative source. Only the name
// column is touched; the NIM and the issued token are left exactly as they
// are.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/rosterdiff"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/voter"
)

func main() {
	mismatchFile := flag.String("mismatch", "mismatch_name_diff.csv", "CSV with the NIMs to fix")
	rosterFile := flag.String("roster", "voters.csv", "canonical roster CSV with the correct names")
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
	roster, err := rosterdiff.LoadRecords(*rosterFile)
	if err != nil {
		log.Fatalf("failed to load roster: %q", err)
	}
	correctNameByNIM := make(map[string]string, len(roster))
	for _, r := range roster {
		if r.NIM != "" {
			correctNameByNIM[r.NIM] = strings.TrimSpace(r.Name)
		}
	}

	seen := make(map[string]bool, len(nims))
	var updated, alreadyCorrect, missingInRoster, missingInDB, failed int
	for _, nim := range nims {
		if seen[nim] {
			continue
		}
		seen[nim] = true

		correctName, ok := correctNameByNIM[nim]
		if !ok || correctName == "" {
			log.Printf("NIM %s not on roster, skipping\n", nim)
			missingInRoster++
			continue
		}
		existing, err := repo.FindByNIM(nim)
		if errors.Is(err, voter.ErrNotFound) {
			log.Printf("NIM %s not found in the store, skipping\n", nim)
			missingInDB++
			continue
		}
		if err != nil {
			log.Printf("failed to look up NIM %s: %v\n", nim, err)
			failed++
			continue
		}
		if strings.TrimSpace(existing.Name) == correctName {
			alreadyCorrect++
			continue
		}
		if _, err := repo.UpsertByNIM(nim, voter.Fields{Name: &correctName}); err != nil {
			log.Printf("failed to update NIM %s: %v\n", nim, err)
			failed++
			continue
		}
		updated++
		log.Printf("updated NIM %s: %q -> %q\n", nim, existing.Name, correctName)
	}

	log.Printf("mismatch targets [%d], updated [%d], already correct [%d], not on roster [%d], not in store [%d], failed [%d]\n",
		len(seen), updated, alreadyCorrect, missingInRoster, missingInDB, failed)
}
