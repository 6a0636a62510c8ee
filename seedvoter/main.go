// Seedvoter upserts a single test voter with a fixed token, without
// sending any email. Handy for verifying the login flow end to end.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/voter"
)

func main() {
	nim := flag.String("nim", "13223010", "NIM of the test voter")
	name := flag.String("name", "Gregorius Yoga Robianto", "name of the test voter")
	token := flag.String("token", "QZ1VNS", "access token to assign")
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

	log.Println("seeding test voter...")
	v, err := repo.UpsertByNIM(*nim, voter.Fields{Name: name, Token: token})
	if err != nil {
		log.Fatalf("failed to seed test voter: %q", err)
	}
	log.Printf("test voter seeded: NIM %s, name %q, token %s\n", v.NIM, v.Name, v.Token)
}
