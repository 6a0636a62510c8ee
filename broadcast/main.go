// Broadcast sends every voter on the target list their access token by
// email. A token already issued in the store is reused and never
// re-persisted; a freshly generated token is written to the store only
// after Gmail confirms delivery, so no voter record ever claims a token its
// owner never received.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/gocarina/gocsv"
	"github.com/joho/godotenv"
	"github.com/matryer/try"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/mailer"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/status"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/voter"
)

const (
	subject     = "[PENTING] Token Voting Pemira HME ITB 2026"
	maxAttempts = 3
)

type failureRow struct {
	NIM   string `csv:"nim"`
	Email string `csv:"email"`
	Error string `csv:"error"`
}

func main() {
	targetsFile := flag.String("targets", "Target.json", "JSON file with the voters to email (nim, name, email)")
	templateFile := flag.String("template", "email-template.html", "email template with the name and token placeholders")
	credentialsFile := flag.String("credentials", "credentials.json", "Gmail OAuth client credentials file")
	oauthTokenFile := flag.String("oauthToken", "token.json", "file with the authorized OAuth token")
	startNIM := flag.String("startNim", "", "NIM to resume from, empty to start at the beginning")
	failuresFile := flag.String("failures", "broadcast_failed.csv", "CSV to write per-voter delivery failures to")
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

	targets, err := mailer.LoadTargets(*targetsFile)
	if err != nil {
		log.Fatalf("failed to load target list: %q", err)
	}
	log.Printf("starting broadcast for %d voters\n", len(targets))
	targets = mailer.ResumeFrom(targets, *startNIM)

	template, err := mailer.LoadTemplate(*templateFile)
	if err != nil {
		log.Fatalf("failed to load email template: %q", err)
	}
	sender, err := mailer.NewGmailSender(*credentialsFile, *oauthTokenFile)
	if err != nil {
		log.Fatalf("failed to create Gmail sender: %q", err)
	}
	log.Printf("sending as %s\n", sender.SenderEmail())

	log.Println("pulling issued tokens from the store...")
	issued, err := repo.TokensByNIM()
	if err != nil {
		log.Fatalf("failed to pull issued tokens: %q", err)
	}
	log.Printf("pulled %d rows from the store\n", len(issued))

	bar := pb.StartNew(len(targets))
	results := mailer.NewDispatcher().Run(targets, func(t mailer.Target) mailer.Result {
		defer bar.Increment()
		if t.Email == "" {
			return mailer.Result{NIM: t.NIM, Status: status.SkippedNoEmail}
		}
		token, isNew := voter.AssignToken(t.NIM, issued)
		body := mailer.Render(template, t.Name, token)
		err := try.Do(func(attempt int) (bool, error) {
			return attempt < maxAttempts, sender.Send(t.Email, subject, body)
		})
		if err != nil {
			return mailer.Result{NIM: t.NIM, Email: t.Email, Status: status.Failed, Err: err}
		}
		if isNew {
			// Delivery confirmed, safe to persist the fresh token now.
			name := t.Name
			if _, err := repo.UpsertByNIM(t.NIM, voter.Fields{Name: &name, Token: &token}); err != nil {
				return mailer.Result{NIM: t.NIM, Email: t.Email, Status: status.Failed, Err: err}
			}
		}
		return mailer.Result{NIM: t.NIM, Email: t.Email, Status: status.Sent}
	})
	bar.Finish()

	summarize(results, *failuresFile)
}

func summarize(results []mailer.Result, failuresFile string) {
	counts := map[status.Status]int{}
	var failures []*failureRow
	for _, r := range results {
		counts[r.Status]++
		if r.Status == status.Failed {
			log.Printf("failed to handle NIM %s: %v\n", r.NIM, r.Err)
			failures = append(failures, &failureRow{NIM: r.NIM, Email: r.Email, Error: r.Err.Error()})
		}
	}
	if len(failures) > 0 {
		f, err := os.Create(failuresFile)
		if err != nil {
			log.Fatalf("failed to create failure report [%s]: %q", failuresFile, err)
		}
		defer f.Close()
		if err := gocsv.MarshalFile(&failures, f); err != nil {
			log.Fatalf("failed to write failure report [%s]: %q", failuresFile, err)
		}
		log.Printf("failure report saved to %s\n", failuresFile)
	}
	log.Printf("sent [%d], failed [%d], skipped without email [%d]\n",
		counts[status.Sent], counts[status.Failed], counts[status.SkippedNoEmail])
}
