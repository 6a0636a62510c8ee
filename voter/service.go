package voter

import (
	"fmt"
	"time"
)

// Service implements the ballot workflow on top of a Repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService returns a Service using the wall clock.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceWithClock allows tests to pin the submission time.
func NewServiceWithClock(repo Repository, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

// FormatVotedDate renders a time the way the voting app displays it:
// day/month/year without leading zeros, id-ID style.
func FormatVotedDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// FormatVotedTime renders the id-ID time-of-day form, dots separating the
// hour, minute and second fields.
func FormatVotedTime(t time.Time) string {
	return t.Format("15.04.05")
}

// SubmitVote performs the one-shot NotVoted -> Voted transition for the
// voter and category. It returns ErrNotFound for an unknown NIM and
// ErrAlreadyVoted when the category flag is already set; the repository's
// conditional update guarantees two near-simultaneous submissions cannot
// both succeed.
func (s *Service) SubmitVote(nim string, category Category, choice string) error {
	v, err := s.repo.FindByNIM(nim)
	if err != nil {
		return err
	}
	voted, err := v.HasVoted(category)
	if err != nil {
		return err
	}
	if voted {
		return ErrAlreadyVoted
	}
	now := s.now()
	return s.repo.MarkVoted(nim, category, choice, FormatVotedDate(now), FormatVotedTime(now))
}

// Authenticate succeeds only when a record exists whose NIM and token both
// match exactly. The returned record lets the caller short-circuit on a
// voter that has already used both ballots.
func (s *Service) Authenticate(nim, token string) (*Voter, error) {
	return s.repo.FindByCredential(nim, token)
}
