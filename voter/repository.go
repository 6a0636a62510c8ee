package voter

// Repository is the single access path to the persisted voter table. Every
// write is immediately visible to subsequent reads; concurrent writes to the
// same NIM are last-write-wins at the field level. MarkVoted is the only
// operation that must be atomic at the row level (see its doc).
type Repository interface {
	// UpsertByNIM creates the row if absent, otherwise merges only the
	// fields that are set. It returns the resulting record.
	UpsertByNIM(nim string, fields Fields) (*Voter, error)

	// FindByNIM returns the record or ErrNotFound.
	FindByNIM(nim string) (*Voter, error)

	// FindByCredential returns the record only when both NIM and token
	// match exactly (case-sensitive); otherwise ErrInvalidCredential.
	FindByCredential(nim, token string) (*Voter, error)

	// DeleteByNIM hard-deletes the row, returning ErrNotFound when absent.
	// Used only by the roster reconciliation cleanup.
	DeleteByNIM(nim string) error

	// MarkVoted sets the category's choice, flag and timestamps in a single
	// conditional update that only applies while the flag is still false.
	// It returns ErrAlreadyVoted when the flag was already set and
	// ErrNotFound when no row exists for the NIM.
	MarkVoted(nim string, category Category, choice, votedDate, votedTime string) error

	// SaveAttendance stores the attendance proof URL for the voter.
	SaveAttendance(nim, imageURL string) error

	// CountVotes returns vote counts grouped by choice for the category,
	// excluding rows whose choice is null.
	CountVotes(category Category) (map[string]int, error)

	// CountFullyVoted counts voters with both category flags set.
	CountFullyVoted() (int64, error)

	// TokensByNIM returns the already-issued token of every voter.
	TokensByNIM() (map[string]string, error)

	// All returns every voter row, newest first.
	All() ([]*Voter, error)
}
