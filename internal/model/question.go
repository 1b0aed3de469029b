package model

import "strings"

// AnswerOption is one selectable alternative of a question. Options are
// exposed as an explicit ordered list so callers never reach into the
// row by field name.
type AnswerOption struct {
	Tag         string `json:"tag"`
	Text        string `json:"text"`
	Explanation string `json:"explanation,omitempty"`
}

// swagger:model Question
type Question struct {
	BaseModel
	Prompt            string `gorm:"type:text;not null" json:"prompt"`
	ImageURL          string `gorm:"size:512" json:"imageUrl,omitempty"`
	OptionA           string `gorm:"type:text" json:"-"`
	OptionB           string `gorm:"type:text" json:"-"`
	OptionC           string `gorm:"type:text" json:"-"`
	OptionD           string `gorm:"type:text" json:"-"`
	ExplanationA      string `gorm:"type:text" json:"-"`
	ExplanationB      string `gorm:"type:text" json:"-"`
	ExplanationC      string `gorm:"type:text" json:"-"`
	ExplanationD      string `gorm:"type:text" json:"-"`
	// Stored values are inconsistently cased upstream; compare via IsCorrectChoice.
	CorrectOption     string `gorm:"size:1;not null" json:"-"`
	ExpandedKnowledge string `gorm:"type:text" json:"expandedKnowledge,omitempty"`
	Topic             string `gorm:"size:120;index;not null" json:"topic"`
}

// The question bank table predates this service and keeps its original name.
func (Question) TableName() string {
	return "Questoes"
}

// Options returns the alternatives in fixed A-D order.
func (q *Question) Options() []AnswerOption {
	return []AnswerOption{
		{Tag: "A", Text: q.OptionA, Explanation: q.ExplanationA},
		{Tag: "B", Text: q.OptionB, Explanation: q.ExplanationB},
		{Tag: "C", Text: q.OptionC, Explanation: q.ExplanationC},
		{Tag: "D", Text: q.OptionD, Explanation: q.ExplanationD},
	}
}

// IsCorrectChoice reports whether the selected letter matches the stored
// correct option, ignoring case and surrounding whitespace.
func (q *Question) IsCorrectChoice(selected string) bool {
	if selected == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(selected), strings.TrimSpace(q.CorrectOption))
}
