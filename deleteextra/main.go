// Deleteextra removes the store rows listed in an extra-in-store report:
// voters present in the database but absent from the canonical roster.
// This is the only path that ever deletes a voter row.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/rosterdiff"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/voter"
)

func main() {
	extraFile := flag.String("extra", "mismatch_extra_in_db.csv", "CSV with the NIMs to delete from the store")
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

	nims, err := rosterdiff.LoadColumn(*extraFile, "nim")
	if err != nil {
		log.Fatalf("failed to load extra-in-store report: %q", err)
	}
	log.Printf("found %d NIM(s) to delete from the store\n", len(nims))

	var deleted, notFound, failed int
	for _, nim := range nims {
		existing, err := repo.FindByNIM(nim)
		if errors.Is(err, voter.ErrNotFound) {
			log.Printf("NIM %s not found in the store, skipping\n", nim)
			notFound++
			continue
		}
		if err != nil {
			log.Printf("failed to look up NIM %s: %v\n", nim, err)
			failed++
			continue
		}
		if err := repo.DeleteByNIM(nim); err != nil {
			log.Printf("failed to delete NIM %s: %v\n", nim, err)
			failed++
			continue
		}
		deleted++
		log.Printf("deleted NIM %s - %s\n", nim, existing.Name)
	}

	log.Printf("deleted [%d], not found [%d], failed [%d]\n", deleted, notFound, failed)
}
