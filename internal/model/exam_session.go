package model

import (
	"encoding/json"
	"time"
)

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

// swagger:model ExamSession
type ExamSession struct {
	BaseModel
	UserID               uint          `gorm:"index;not null" json:"userId"`
	Status               SessionStatus `gorm:"type:enum('in_progress','completed','abandoned');default:'in_progress';index" json:"status"`
	QuestionsOrder       string        `gorm:"type:json" json:"-"`
	CurrentIndex         int           `gorm:"default:0" json:"currentIndex"`
	TotalQuestions       int           `gorm:"not null" json:"totalQuestions"`
	TimeLimitSeconds     int           `gorm:"not null" json:"timeLimitSeconds"`
	TimeRemainingSeconds int           `gorm:"not null" json:"timeRemainingSeconds"`
	Score                int           `gorm:"default:0" json:"score"`
	CorrectCount         int           `gorm:"default:0" json:"correctCount"`
	LastSyncedAt         *time.Time    `json:"lastSyncedAt,omitempty"`
	EndedAt              *time.Time    `json:"endedAt,omitempty"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// QuestionOrder decodes the frozen question id list. The order is fixed at
// session start and is the authoritative ordering for the whole attempt.
func (s *ExamSession) QuestionOrder() ([]uint, error) {
	if s.QuestionsOrder == "" {
		return nil, nil
	}
	var ids []uint
	if err := json.Unmarshal([]byte(s.QuestionsOrder), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *ExamSession) SetQuestionOrder(ids []uint) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.QuestionsOrder = string(raw)
	s.TotalQuestions = len(ids)
	return nil
}
