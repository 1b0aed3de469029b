package repository

import (
	"time"

	"medexam_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizProgressRepository struct {
	DB *gorm.DB
}

func NewQuizProgressRepository(db *gorm.DB) *QuizProgressRepository {
	return &QuizProgressRepository{DB: db}
}

// UpsertAttempt records a practice answer for (user, question) and bumps the
// attempt counter. The flag bit is left untouched here.
func (r *QuizProgressRepository) UpsertAttempt(userID, questionID uint, selected string, isCorrect bool, at time.Time) error {
	rec := model.QuizProgress{
		UserID:        userID,
		QuestionID:    questionID,
		Selected:      selected,
		IsCorrect:     isCorrect,
		Attempts:      1,
		LastAttemptAt: at,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"selected":        selected,
			"is_correct":      isCorrect,
			"attempts":        gorm.Expr("attempts + 1"),
			"last_attempt_at": at,
		}),
	}).Create(&rec).Error
}

func (r *QuizProgressRepository) UpsertFlag(userID, questionID uint, flagged bool) error {
	rec := model.QuizProgress{
		UserID:     userID,
		QuestionID: questionID,
		IsFlagged:  flagged,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_flagged"}),
	}).Create(&rec).Error
}

func (r *QuizProgressRepository) FindByUser(userID uint) ([]model.QuizProgress, error) {
	var recs []model.QuizProgress
	err := r.DB.Where("user_id = ?", userID).Find(&recs).Error
	return recs, err
}

func (r *QuizProgressRepository) FindByUserAndQuestions(userID uint, questionIDs []uint) ([]model.QuizProgress, error) {
	var recs []model.QuizProgress
	if len(questionIDs) == 0 {
		return recs, nil
	}
	err := r.DB.Where("user_id = ? AND question_id IN ?", userID, questionIDs).Find(&recs).Error
	return recs, err
}
