package voter

import (
	"sort"
	"sync"
	"time"
)

// inMemoryRepository mirrors the Postgres repository semantics on a plain
// map. It backs tests and keeps the MarkVoted check-and-set under one lock,
// matching the conditional update of the real store.
type inMemoryRepository struct {
	mu  sync.Mutex
	db  map[string]*Voter
	seq uint
}

// NewInMemoryRepository returns an empty repository backed by memory.
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		db: make(map[string]*Voter),
	}
}

func (m *inMemoryRepository) UpsertByNIM(nim string, fields Fields) (*Voter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.db[nim]
	if !ok {
		m.seq++
		v = &Voter{ID: m.seq, NIM: nim, CreatedAt: time.Now()}
		m.db[nim] = v
	}
	if fields.Name != nil {
		v.Name = *fields.Name
	}
	if fields.Token != nil {
		v.Token = *fields.Token
	}
	if fields.CloudinaryURL != nil {
		v.CloudinaryURL = fields.CloudinaryURL
	}
	v.UpdatedAt = time.Now()
	copied := *v
	return &copied, nil
}

func (m *inMemoryRepository) FindByNIM(nim string) (*Voter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.db[nim]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (m *inMemoryRepository) FindByCredential(nim, token string) (*Voter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.db[nim]
	if !ok || v.Token != token {
		return nil, ErrInvalidCredential
	}
	copied := *v
	return &copied, nil
}

func (m *inMemoryRepository) DeleteByNIM(nim string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.db[nim]; !ok {
		return ErrNotFound
	}
	delete(m.db, nim)
	return nil
}

func (m *inMemoryRepository) MarkVoted(nim string, category Category, choice, votedDate, votedTime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.db[nim]
	if !ok {
		return ErrNotFound
	}
	switch category {
	case CategoryKahim:
		if v.IsVoteCakahim {
			return ErrAlreadyVoted
		}
		v.IsVoteCakahim = true
		v.KahimChoice = &choice
	case CategorySenator:
		if v.IsVoteCasenat {
			return ErrAlreadyVoted
		}
		v.IsVoteCasenat = true
		v.SenatorChoice = &choice
	default:
		return ErrUnknownCategory
	}
	v.VotedDate = &votedDate
	v.VotedTime = &votedTime
	v.UpdatedAt = time.Now()
	return nil
}

func (m *inMemoryRepository) SaveAttendance(nim, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.db[nim]
	if !ok {
		return ErrNotFound
	}
	v.CloudinaryURL = &imageURL
	v.UpdatedAt = time.Now()
	return nil
}

func (m *inMemoryRepository) CountVotes(category Category) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, v := range m.db {
		var choice *string
		switch category {
		case CategoryKahim:
			choice = v.KahimChoice
		case CategorySenator:
			choice = v.SenatorChoice
		default:
			return nil, ErrUnknownCategory
		}
		if choice != nil {
			counts[*choice]++
		}
	}
	return counts, nil
}

func (m *inMemoryRepository) CountFullyVoted() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, v := range m.db {
		if v.IsVoteCakahim && v.IsVoteCasenat {
			total++
		}
	}
	return total, nil
}

func (m *inMemoryRepository) TokensByNIM() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tokens := make(map[string]string, len(m.db))
	for nim, v := range m.db {
		tokens[nim] = v.Token
	}
	return tokens, nil
}

func (m *inMemoryRepository) All() ([]*Voter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	voters := make([]*Voter, 0, len(m.db))
	for _, v := range m.db {
		copied := *v
		voters = append(voters, &copied)
	}
	sort.Slice(voters, func(i, j int) bool {
		return voters[i].CreatedAt.After(voters[j].CreatedAt)
	})
	return voters, nil
}
