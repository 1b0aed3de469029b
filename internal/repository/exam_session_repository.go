package repository

import (
	"time"

	"medexam_backend/internal/model"

	"gorm.io/gorm"
)

type ExamSessionRepository struct {
	DB *gorm.DB
}

func NewExamSessionRepository(db *gorm.DB) *ExamSessionRepository {
	return &ExamSessionRepository{DB: db}
}

func (r *ExamSessionRepository) Create(s *model.ExamSession) error {
	return r.DB.Create(s).Error
}

func (r *ExamSessionRepository) FindByID(id uint) (*model.ExamSession, error) {
	var s model.ExamSession
	err := r.DB.First(&s, id).Error
	return &s, err
}

// FindActiveByUser returns the single in_progress session for a user. The
// one-active-session rule is enforced by this lookup, not by a DB constraint.
func (r *ExamSessionRepository) FindActiveByUser(userID uint) (*model.ExamSession, error) {
	var s model.ExamSession
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.SessionInProgress).
		Order("created_at DESC").
		First(&s).Error
	return &s, err
}

func (r *ExamSessionRepository) Update(s *model.ExamSession) error {
	return r.DB.Save(s).Error
}

// UpdateProgress persists the navigation/timer snapshot and stamps the sync time.
func (r *ExamSessionRepository) UpdateProgress(id uint, currentIndex, timeRemaining int, syncedAt time.Time) error {
	return r.DB.Model(&model.ExamSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_index":          currentIndex,
			"time_remaining_seconds": timeRemaining,
			"last_synced_at":         syncedAt,
		}).Error
}

func (r *ExamSessionRepository) FindCompletedByUser(userID uint) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.SessionCompleted).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *ExamSessionRepository) CountActive() (int64, error) {
	var n int64
	err := r.DB.Model(&model.ExamSession{}).
		Where("status = ?", model.SessionInProgress).
		Count(&n).Error
	return n, err
}

// AbandonStale flips in_progress sessions idle since before cutoff to abandoned.
func (r *ExamSessionRepository) AbandonStale(cutoff time.Time) (int64, error) {
	res := r.DB.Model(&model.ExamSession{}).
		Where("status = ? AND updated_at < ?", model.SessionInProgress, cutoff).
		Update("status", model.SessionAbandoned)
	return res.RowsAffected, res.Error
}
