package model

import "time"

// ExamAnswer is one row per (session, question) pair, upserted idempotently.
// swagger:model ExamAnswer
type ExamAnswer struct {
	BaseModel
	SessionID  uint      `gorm:"uniqueIndex:idx_session_question;not null" json:"sessionId"`
	QuestionID uint      `gorm:"uniqueIndex:idx_session_question;not null" json:"questionId"`
	Selected   string    `gorm:"size:1" json:"selected"`
	IsCorrect  bool      `gorm:"default:false" json:"isCorrect"`
	IsFlagged  bool      `gorm:"default:false" json:"isFlagged"`
	Note       string    `gorm:"type:text" json:"note,omitempty"`
	AnsweredAt time.Time `json:"answeredAt"`
}

func (ExamAnswer) TableName() string {
	return "exam_answers"
}
