package voter

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository opens a Postgres connection for the given DSN, migrates
// the voter table and returns a repository backed by it.
func NewGormRepository(dsn string) (Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %q", err)
	}
	if err := db.AutoMigrate(&Voter{}); err != nil {
		return nil, fmt.Errorf("failed to migrate voter table: %q", err)
	}
	return &gormRepository{db: db}, nil
}

// NewGormRepositoryWithDB wraps an already-open gorm handle.
func NewGormRepositoryWithDB(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func categoryColumns(category Category) (choiceColumn, flagColumn string, err error) {
	switch category {
	case CategoryKahim:
		return "kahim_choice", "is_vote_cakahim", nil
	case CategorySenator:
		return "senator_choice", "is_vote_casenat", nil
	default:
		return "", "", ErrUnknownCategory
	}
}

func (r *gormRepository) UpsertByNIM(nim string, fields Fields) (*Voter, error) {
	existing := &Voter{}
	err := r.db.Where("nim = ?", nim).First(existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := &Voter{NIM: nim}
		if fields.Name != nil {
			created.Name = *fields.Name
		}
		if fields.Token != nil {
			created.Token = *fields.Token
		}
		created.CloudinaryURL = fields.CloudinaryURL
		if err := r.db.Create(created).Error; err != nil {
			return nil, fmt.Errorf("failed to create voter with NIM [%s]: %q", nim, err)
		}
		return created, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up voter with NIM [%s]: %q", nim, err)
	}
	updates := map[string]interface{}{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Token != nil {
		updates["token"] = *fields.Token
	}
	if fields.CloudinaryURL != nil {
		updates["cloudinary_url"] = *fields.CloudinaryURL
	}
	if len(updates) > 0 {
		if err := r.db.Model(existing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update voter with NIM [%s]: %q", nim, err)
		}
	}
	return existing, nil
}

func (r *gormRepository) FindByNIM(nim string) (*Voter, error) {
	v := &Voter{}
	err := r.db.Where("nim = ?", nim).First(v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up voter with NIM [%s]: %q", nim, err)
	}
	return v, nil
}

func (r *gormRepository) FindByCredential(nim, token string) (*Voter, error) {
	v := &Voter{}
	err := r.db.Where("nim = ? AND token = ?", nim, token).First(v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredential
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up credential for NIM [%s]: %q", nim, err)
	}
	return v, nil
}

func (r *gormRepository) DeleteByNIM(nim string) error {
	res := r.db.Where("nim = ?", nim).Delete(&Voter{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete voter with NIM [%s]: %q", nim, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkVoted relies on the database applying the single-row update
// atomically: the WHERE clause only matches while the flag is still false,
// so two near-simultaneous submissions cannot both succeed.
func (r *gormRepository) MarkVoted(nim string, category Category, choice, votedDate, votedTime string) error {
	choiceColumn, flagColumn, err := categoryColumns(category)
	if err != nil {
		return err
	}
	res := r.db.Model(&Voter{}).
		Where("nim = ? AND "+flagColumn+" = ?", nim, false).
		Updates(map[string]interface{}{
			choiceColumn: choice,
			flagColumn:   true,
			"voted_date": votedDate,
			"voted_time": votedTime,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to record vote for NIM [%s]: %q", nim, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByNIM(nim); err != nil {
			return err
		}
		return ErrAlreadyVoted
	}
	return nil
}

func (r *gormRepository) SaveAttendance(nim, imageURL string) error {
	res := r.db.Model(&Voter{}).Where("nim = ?", nim).Update("cloudinary_url", imageURL)
	if res.Error != nil {
		return fmt.Errorf("failed to save attendance for NIM [%s]: %q", nim, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) CountVotes(category Category) (map[string]int, error) {
	choiceColumn, _, err := categoryColumns(category)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Choice string
		Total  int
	}
	err = r.db.Model(&Voter{}).
		Select(choiceColumn + " AS choice, COUNT(*) AS total").
		Where(choiceColumn + " IS NOT NULL").
		Group(choiceColumn).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count votes for category [%s]: %q", category, err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Choice] = row.Total
	}
	return counts, nil
}

func (r *gormRepository) CountFullyVoted() (int64, error) {
	var total int64
	err := r.db.Model(&Voter{}).
		Where("is_vote_cakahim = ? AND is_vote_casenat = ?", true, true).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count fully voted: %q", err)
	}
	return total, nil
}

func (r *gormRepository) TokensByNIM() (map[string]string, error) {
	var rows []struct {
		NIM   string
		Token string
	}
	if err := r.db.Model(&Voter{}).Select("nim, token").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch issued tokens: %q", err)
	}
	tokens := make(map[string]string, len(rows))
	for _, row := range rows {
		tokens[row.NIM] = row.Token
	}
	return tokens, nil
}

func (r *gormRepository) All() ([]*Voter, error) {
	var voters []*Voter
	if err := r.db.Order("created_at desc").Find(&voters).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch voters: %q", err)
	}
	return voters, nil
}
