// Resendtoken re-delivers the already-issued token emails for the NIMs
// listed in a name-mismatch report, after their store names have been
// fixed. It never generates or persists tokens; a voter without a stored
// token is skipped and counted.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/joho/godotenv"
	"github.com/matryer/try"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/mailer"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/rosterdiff"
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
	mismatchFile := flag.String("mismatch", "mismatch_name_diff.csv", "CSV with the NIMs to resend to")
	targetsFile := flag.String("targets", "Target.json", "JSON file mapping NIMs to email addresses")
	templateFile := flag.String("template", "email-template.html", "email template with the name and token placeholders")
	credentialsFile := flag.String("credentials", "credentials.json", "Gmail OAuth client credentials file")
	oauthTokenFile := flag.String("oauthToken", "token.json", "file with the authorized OAuth token")
	startNIM := flag.String("startNim", "", "NIM to resume from, empty to start at the beginning")
	failuresFile := flag.String("failures", "resend_mismatch_failed.csv", "CSV to write per-voter delivery failures to")
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
	nims = dedupe(nims)

	targetList, err := mailer.LoadTargets(*targetsFile)
	if err != nil {
		log.Fatalf("failed to load target list: %q", err)
	}
	emailByNIM := make(map[string]string, len(targetList))
	for _, t := range targetList {
		emailByNIM[t.NIM] = t.Email
	}

	voters, err := repo.All()
	if err != nil {
		log.Fatalf("failed to fetch voters from the store: %q", err)
	}
	voterByNIM := make(map[string]*voter.Voter, len(voters))
	for _, v := range voters {
		voterByNIM[v.NIM] = v
	}

	template, err := mailer.LoadTemplate(*templateFile)
	if err != nil {
		log.Fatalf("failed to load email template: %q", err)
	}
	sender, err := mailer.NewGmailSender(*credentialsFile, *oauthTokenFile)
	if err != nil {
		log.Fatalf("failed to create Gmail sender: %q", err)
	}
	log.Printf("sending as %s\n", sender.SenderEmail())

	targets := make([]mailer.Target, 0, len(nims))
	for _, nim := range nims {
		targets = append(targets, mailer.Target{NIM: nim, Email: emailByNIM[nim]})
	}
	targets = mailer.ResumeFrom(targets, *startNIM)
	log.Printf("resending to %d voters\n", len(targets))

	results := mailer.NewDispatcher().Run(targets, func(t mailer.Target) mailer.Result {
		if t.Email == "" {
			log.Printf("skip %s: no email on target list\n", t.NIM)
			return mailer.Result{NIM: t.NIM, Status: status.SkippedNoEmail}
		}
		v, ok := voterByNIM[t.NIM]
		if !ok || v.Token == "" {
			log.Printf("skip %s: no token on record\n", t.NIM)
			return mailer.Result{NIM: t.NIM, Email: t.Email, Status: status.SkippedNoToken}
		}
		recipientName := v.Name
		if recipientName == "" {
			recipientName = t.NIM
		}
		body := mailer.Render(template, recipientName, v.Token)
		err := try.Do(func(attempt int) (bool, error) {
			return attempt < maxAttempts, sender.Send(t.Email, subject, body)
		})
		if err != nil {
			log.Printf("failed: %s -> %s | %v\n", t.NIM, t.Email, err)
			return mailer.Result{NIM: t.NIM, Email: t.Email, Status: status.Failed, Err: err}
		}
		log.Printf("sent: %s -> %s\n", t.NIM, t.Email)
		return mailer.Result{NIM: t.NIM, Email: t.Email, Status: status.Sent}
	})

	counts := map[status.Status]int{}
	var failures []*failureRow
	for _, r := range results {
		counts[r.Status]++
		if r.Status == status.Failed {
			failures = append(failures, &failureRow{NIM: r.NIM, Email: r.Email, Error: r.Err.Error()})
		}
	}
	if len(failures) > 0 {
		f, err := os.Create(*failuresFile)
		if err != nil {
			log.Fatalf("failed to create failure report [%s]: %q", *failuresFile, err)
		}
		defer f.Close()
		if err := gocsv.MarshalFile(&failures, f); err != nil {
			log.Fatalf("failed to write failure report [%s]: %q", *failuresFile, err)
		}
		log.Printf("failure report saved to %s\n", *failuresFile)
	}
	log.Printf("targets [%d], sent [%d], failed [%d], no email [%d], no token [%d]\n",
		len(targets), counts[status.Sent], counts[status.Failed],
		counts[status.SkippedNoEmail], counts[status.SkippedNoToken])
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
