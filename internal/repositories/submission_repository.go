package repositories

import (
	"errors"
	"fmt"
	"time"

	"accomform_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// SubmissionFilter narrows the admin listing.
type SubmissionFilter struct {
	Status   models.SubmissionStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// Statistics is the admin dashboard aggregate.
type Statistics struct {
	PeriodDays       int
	TotalSubmissions int64
	TotalAllTime     int64
	StatusBreakdown  map[string]int64
	DailySubmissions map[string]int64
}

type SubmissionRepository interface {
	// CreateWithLog persists a new submission together with its first
	// log entry in one transaction. The parent row commits with the
	// child, so a read immediately after always sees both.
	CreateWithLog(sub *models.Submission, action models.LogAction, details string) error

	FindByID(id string) (*models.Submission, error)
	Update(sub *models.Submission) error

	// UpdateFields writes only the named columns, leaving the rest of
	// the row (the status in particular) untouched.
	UpdateFields(id string, fields map[string]interface{}) error

	// TransitionWithLog advances the status and appends exactly one log
	// entry, transactionally. Enforces the forward-only chain.
	TransitionWithLog(id string, to models.SubmissionStatus, action models.LogAction, details string) error

	// AppendLog records a notable event without a status change.
	AppendLog(id string, action models.LogAction, details string) error

	List(filter SubmissionFilter) ([]models.Submission, int64, error)
	Delete(id string) error
	GetStatistics(days int) (*Statistics, error)
}

type SubmissionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &SubmissionRepositoryImpl{db: db}
}

func (r *SubmissionRepositoryImpl) CreateWithLog(sub *models.Submission, action models.LogAction, details string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return tx.Create(&models.SubmissionLog{
			SubmissionID: sub.ID,
			Action:       action,
			Details:      details,
		}).Error
	})
}

func (r *SubmissionRepositoryImpl) FindByID(id string) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.Preload("Logs", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepositoryImpl) Update(sub *models.Submission) error {
	return r.db.Save(sub).Error
}

func (r *SubmissionRepositoryImpl) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Submission{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepositoryImpl) TransitionWithLog(id string, to models.SubmissionStatus, action models.LogAction, details string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Submission
		if err := tx.First(&sub, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}

		if !models.CanTransition(sub.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sub.Status, to)
		}

		if err := tx.Model(&sub).Update("status", to).Error; err != nil {
			return err
		}
		return tx.Create(&models.SubmissionLog{
			SubmissionID: id,
			Action:       action,
			Details:      details,
		}).Error
	})
}

func (r *SubmissionRepositoryImpl) AppendLog(id string, action models.LogAction, details string) error {
	return r.db.Create(&models.SubmissionLog{
		SubmissionID: id,
		Action:       action,
		Details:      details,
	}).Error
}

func (r *SubmissionRepositoryImpl) List(filter SubmissionFilter) ([]models.Submission, int64, error) {
	query := r.db.Model(&models.Submission{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var subs []models.Submission
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (r *SubmissionRepositoryImpl) Delete(id string) error {
	result := r.db.Select("Logs").Delete(&models.Submission{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepositoryImpl) GetStatistics(days int) (*Statistics, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	stats := &Statistics{
		PeriodDays:       days,
		StatusBreakdown:  make(map[string]int64),
		DailySubmissions: make(map[string]int64),
	}

	if err := r.db.Model(&models.Submission{}).Count(&stats.TotalAllTime).Error; err != nil {
		return nil, err
	}

	var recent []models.Submission
	if err := r.db.Where("created_at >= ?", cutoff).Find(&recent).Error; err != nil {
		return nil, err
	}

	stats.TotalSubmissions = int64(len(recent))
	for _, sub := range recent {
		stats.StatusBreakdown[string(sub.Status)]++
		stats.DailySubmissions[sub.CreatedAt.UTC().Format("2006-01-02")]++
	}

	return stats, nil
}
