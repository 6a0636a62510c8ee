package mailer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/status"
)

const (
	// DefaultBatchSize keeps concurrent sends within what the mail
	// provider tolerates per burst.
	DefaultBatchSize = 10

	// DefaultPause is the gap between batches so the broadcast is not
	// flagged as spam.
	DefaultPause = 2 * time.Second
)

// Target is one row of the broadcast target list file.
type Target struct {
	NIM   string `json:"nim"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Result is the settled outcome of one target. Err is only set for
// status.Failed.
type Result struct {
	NIM    string
	Email  string
	Status status.Status
	Err    error
}

// Dispatcher runs independent per-target work in fixed-size concurrent
// batches with a fixed pause in between. One target's failure never aborts
// its batch or subsequent batches.
type Dispatcher struct {
	BatchSize int
	Pause     time.Duration
}

// NewDispatcher returns a Dispatcher with the rate limits used for every
// committee broadcast.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		BatchSize: DefaultBatchSize,
		Pause:     DefaultPause,
	}
}

// Run handles every target and returns one settled Result per target, in
// target order.
func (d *Dispatcher) Run(targets []Target, handle func(Target) Result) []Result {
	results := make([]Result, len(targets))
	batchSize := d.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	for start := 0; start < len(targets); start += batchSize {
		end := start + batchSize
		if end > len(targets) {
			end = len(targets)
		}
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = handle(targets[i])
			}(i)
		}
		wg.Wait()
		log.Printf("batch %d done\n", start/batchSize+1)
		if end < len(targets) && d.Pause > 0 {
			time.Sleep(d.Pause)
		}
	}
	return results
}

// LoadTargets reads the JSON target list file.
func LoadTargets(path string) ([]Target, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read target list [%s]: %q", path, err)
	}
	var targets []Target
	if err := json.Unmarshal(b, &targets); err != nil {
		return nil, fmt.Errorf("failed to parse target list [%s]: %q", path, err)
	}
	return targets, nil
}

// ResumeFrom slices the target list so a restarted run picks up at the
// given NIM without reprocessing earlier entries. An empty or unknown NIM
// starts from the beginning; the unknown case is logged.
func ResumeFrom(targets []Target, startNIM string) []Target {
	if startNIM == "" {
		return targets
	}
	for i, target := range targets {
		if target.NIM == startNIM {
			log.Printf("found NIM %s at index %d, resuming from there\n", startNIM, i)
			return targets[i:]
		}
	}
	log.Printf("NIM %s not found on target list, starting from index 0\n", startNIM)
	return targets
}
