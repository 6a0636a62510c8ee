package voter

import (
	"errors"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, time.February, 3, 14, 5, 7, 0, time.Local)
}

func seed(t *testing.T, repo Repository, nim, name, token string) {
	t.Helper()
	if _, err := repo.UpsertByNIM(nim, Fields{Name: &name, Token: &token}); err != nil {
		t.Errorf("want error nil when seeding voter, got %q", err)
	}
}

func TestSubmitVoteIsExactlyOncePerCategory(t *testing.T) {
	repo := NewInMemoryRepository()
	seed(t, repo, "222", "Jon Smith", "AB12CD")
	svc := NewServiceWithClock(repo, fixedClock)

	if err := svc.SubmitVote("222", CategoryKahim, "X"); err != nil {
		t.Errorf("want first submission to succeed, got %q", err)
	}
	err := svc.SubmitVote("222", CategoryKahim, "Y")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("want ErrAlreadyVoted on second submission, got %v", err)
	}

	v, err := repo.FindByNIM("222")
	if err != nil {
		t.Errorf("want error nil, got %q", err)
	}
	if !v.IsVoteCakahim {
		t.Errorf("want kahim flag set after voting")
	}
	if v.KahimChoice == nil || *v.KahimChoice != "X" {
		t.Errorf("want choice X preserved against the second submission, got %v", v.KahimChoice)
	}
}

func TestSubmitVoteCategoriesAreIndependent(t *testing.T) {
	repo := NewInMemoryRepository()
	seed(t, repo, "222", "Jon Smith", "AB12CD")
	svc := NewServiceWithClock(repo, fixedClock)

	if err := svc.SubmitVote("222", CategoryKahim, "X"); err != nil {
		t.Errorf("want kahim submission to succeed, got %q", err)
	}
	if err := svc.SubmitVote("222", CategorySenator, "Z"); err != nil {
		t.Errorf("want senator submission to succeed after kahim, got %q", err)
	}
	v, _ := repo.FindByNIM("222")
	if !v.FullyVoted() {
		t.Errorf("want voter fully voted after both categories")
	}
	if v.SenatorChoice == nil || *v.SenatorChoice != "Z" {
		t.Errorf("want senator choice Z, got %v", v.SenatorChoice)
	}
}

func TestSubmitVoteUnknownVoter(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewServiceWithClock(repo, fixedClock)
	err := svc.SubmitVote("404", CategoryKahim, "X")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound for an unknown voter, got %v", err)
	}
}

func TestSubmitVoteUnknownCategory(t *testing.T) {
	repo := NewInMemoryRepository()
	seed(t, repo, "222", "Jon Smith", "AB12CD")
	svc := NewServiceWithClock(repo, fixedClock)
	err := svc.SubmitVote("222", Category("mascot"), "X")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("want ErrUnknownCategory, got %v", err)
	}
}

func TestSubmitVoteStampsLocalDateAndTime(t *testing.T) {
	repo := NewInMemoryRepository()
	seed(t, repo, "222", "Jon Smith", "AB12CD")
	svc := NewServiceWithClock(repo, fixedClock)
	if err := svc.SubmitVote("222", CategoryKahim, "X"); err != nil {
		t.Errorf("want error nil, got %q", err)
	}
	v, _ := repo.FindByNIM("222")
	if v.VotedDate == nil || *v.VotedDate != "3/2/2026" {
		t.Errorf("want voted date 3/2/2026, got %v", v.VotedDate)
	}
	if v.VotedTime == nil || *v.VotedTime != "14.05.07" {
		t.Errorf("want voted time 14.05.07, got %v", v.VotedTime)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := NewInMemoryRepository()
	seed(t, repo, "13223010", "Gregorius Yoga Robianto", "QZ1VNS")
	svc := NewService(repo)

	v, err := svc.Authenticate("13223010", "QZ1VNS")
	if err != nil {
		t.Errorf("want error nil for a matching credential, got %q", err)
	}
	if v.Name != "Gregorius Yoga Robianto" {
		t.Errorf("want voter name returned, got %q", v.Name)
	}

	testCases := []struct {
		name  string
		nim   string
		token string
	}{
		{"Wrong token", "13223010", "WRONG1"},
		{"Unknown NIM", "99999999", "QZ1VNS"},
		{"Token with different case", "13223010", "qz1vns"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(tt.nim, tt.token)
			if !errors.Is(err, ErrInvalidCredential) {
				t.Errorf("want ErrInvalidCredential, got %v", err)
			}
		})
	}
}

func TestFormatVotedDate(t *testing.T) {
	d := FormatVotedDate(time.Date(2026, time.November, 21, 0, 0, 0, 0, time.Local))
	if d != "21/11/2026" {
		t.Errorf("want 21/11/2026, got %s", d)
	}
}
