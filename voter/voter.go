package voter

import (
	"errors"
	"time"
)

// Category is one of the two independent ballots of the election.
type Category string

const (
	// CategoryKahim is the ballot for the association chair.
	CategoryKahim Category = "kahim"

	// CategorySenator is the ballot for the student senator.
	CategorySenator Category = "senator"
)

var (
	// ErrNotFound is returned when no voter row exists for a NIM.
	ErrNotFound = errors.New("voter not found")

	// ErrAlreadyVoted is returned when the category flag is already set.
	ErrAlreadyVoted = errors.New("voter already voted for this category")

	// ErrInvalidCredential is returned when the NIM and token pair does
	// not match a row exactly. It deliberately does not say which of the
	// two fields was wrong.
	ErrInvalidCredential = errors.New("invalid NIM or token")

	// ErrUnknownCategory is returned for a category other than kahim or senator.
	ErrUnknownCategory = errors.New("unknown ballot category")
)

// Voter is the single persistent entity of the system. NIM is the unique
// lookup key everywhere; the vote flags are one-way and each choice is set
// at the same moment as its flag.
type Voter struct {
	ID            uint      `gorm:"primaryKey" json:"-" csv:"id"`
	NIM           string    `gorm:"uniqueIndex;not null" json:"nim" csv:"nim"`
	Name          string    `json:"name" csv:"name"`
	Token         string    `json:"-" csv:"token"`
	IsVoteCakahim bool      `json:"isVoteCakahim" csv:"isVoteCakahim"`
	KahimChoice   *string   `json:"kahimChoice" csv:"kahimChoice"`
	IsVoteCasenat bool      `json:"isVoteCasenat" csv:"isVoteCasenat"`
	SenatorChoice *string   `json:"senatorChoice" csv:"senatorChoice"`
	VotedDate     *string   `json:"votedDate" csv:"votedDate"`
	VotedTime     *string   `json:"votedTime" csv:"votedTime"`
	CloudinaryURL *string   `json:"cloudinaryUrl" csv:"cloudinaryUrl"`
	CreatedAt     time.Time `json:"createdAt" csv:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" csv:"updatedAt"`
}

// HasVoted reports whether the flag for the given category is set.
func (v *Voter) HasVoted(category Category) (bool, error) {
	switch category {
	case CategoryKahim:
		return v.IsVoteCakahim, nil
	case CategorySenator:
		return v.IsVoteCasenat, nil
	default:
		return false, ErrUnknownCategory
	}
}

// FullyVoted reports whether both category flags are set.
func (v *Voter) FullyVoted() bool {
	return v.IsVoteCakahim && v.IsVoteCasenat
}

// Fields carries the subset of voter columns an upsert may write. A nil
// pointer means "leave the stored value alone"; omitted fields are never
// cleared.
type Fields struct {
	Name          *string
	Token         *string
	CloudinaryURL *string
}
