package repository

import (
	"time"

	"medexam_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExamAnswerRepository struct {
	DB *gorm.DB
}

func NewExamAnswerRepository(db *gorm.DB) *ExamAnswerRepository {
	return &ExamAnswerRepository{DB: db}
}

// UpsertSelection records the selected option for a (session, question) pair.
// Each field group (selection, flag, note) is upserted independently, so a
// later call for one group never clobbers the others.
func (r *ExamAnswerRepository) UpsertSelection(sessionID, questionID uint, selected string, isCorrect bool, answeredAt time.Time) error {
	answer := model.ExamAnswer{
		SessionID:  sessionID,
		QuestionID: questionID,
		Selected:   selected,
		IsCorrect:  isCorrect,
		AnsweredAt: answeredAt,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected", "is_correct", "answered_at"}),
	}).Create(&answer).Error
}

func (r *ExamAnswerRepository) UpsertFlag(sessionID, questionID uint, flagged bool) error {
	answer := model.ExamAnswer{
		SessionID:  sessionID,
		QuestionID: questionID,
		IsFlagged:  flagged,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_flagged"}),
	}).Create(&answer).Error
}

func (r *ExamAnswerRepository) UpsertNote(sessionID, questionID uint, note string) error {
	answer := model.ExamAnswer{
		SessionID:  sessionID,
		QuestionID: questionID,
		Note:       note,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"note"}),
	}).Create(&answer).Error
}

// FindBySession returns answers in chronological order, which the results
// aggregator depends on for its time-delta walk.
func (r *ExamAnswerRepository) FindBySession(sessionID uint) ([]model.ExamAnswer, error) {
	var answers []model.ExamAnswer
	err := r.DB.Where("session_id = ?", sessionID).
		Order("answered_at ASC").
		Find(&answers).Error
	return answers, err
}

func (r *ExamAnswerRepository) FindBySessions(sessionIDs []uint) ([]model.ExamAnswer, error) {
	var answers []model.ExamAnswer
	if len(sessionIDs) == 0 {
		return answers, nil
	}
	err := r.DB.Where("session_id IN ?", sessionIDs).Find(&answers).Error
	return answers, err
}
