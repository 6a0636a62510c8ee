// Exportcsv dumps the whole voter table to a timestamped CSV, newest rows
// first. The export feeds the comparecsv reconciliation pass.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/gocarina/gocsv"
	"github.com/joho/godotenv"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/reportstore"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/voter"
)

func main() {
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

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = " fetching voters from the store..."
	s.Start()
	voters, err := repo.All()
	s.Stop()
	if err != nil {
		log.Fatalf("failed to fetch voters: %q", err)
	}
	if len(voters) == 0 {
		log.Println("no data found in the voter table")
		return
	}

	b, err := gocsv.MarshalBytes(&voters)
	if err != nil {
		log.Fatalf("failed to marshal export: %q", err)
	}
	fileName := fmt.Sprintf("voters_export_%s.csv", time.Now().UTC().Format("2006-01-02T15-04-05"))
	path, err := reportstore.NewLocalStorage().Upload(b, *outDir, fileName)
	if err != nil {
		log.Fatalf("failed to write export: %q", err)
	}
	log.Printf("exported %d voter(s) to %s\n", len(voters), path)
}
