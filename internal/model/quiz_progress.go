package model

import "time"

// QuizProgress tracks free-practice attempts per (user, question), outside
// timed exams. It drives the answered/correct/incorrect/flagged filters.
// swagger:model QuizProgress
type QuizProgress struct {
	BaseModel
	UserID        uint      `gorm:"uniqueIndex:idx_user_question;not null" json:"userId"`
	QuestionID    uint      `gorm:"uniqueIndex:idx_user_question;not null" json:"questionId"`
	Selected      string    `gorm:"size:1" json:"selected"`
	IsCorrect     bool      `gorm:"default:false" json:"isCorrect"`
	IsFlagged     bool      `gorm:"default:false" json:"isFlagged"`
	Attempts      int       `gorm:"default:0" json:"attempts"`
	LastAttemptAt time.Time `json:"lastAttemptAt"`
}

func (QuizProgress) TableName() string {
	return "quiz_progress"
}
