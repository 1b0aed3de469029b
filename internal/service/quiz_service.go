package service

import (
	"time"

	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/internal/util"
)

// PracticeFilter selects which questions the free-practice screen shows.
type PracticeFilter string

const (
	FilterAll        PracticeFilter = "all"
	FilterUnanswered PracticeFilter = "unanswered"
	FilterAnswered   PracticeFilter = "answered"
	FilterCorrect    PracticeFilter = "correct"
	FilterIncorrect  PracticeFilter = "incorrect"
	FilterFlagged    PracticeFilter = "flagged"
)

// AttemptState is the merged practice history for one question.
type AttemptState struct {
	Answered  bool `json:"answered"`
	IsCorrect bool `json:"isCorrect"`
	IsFlagged bool `json:"isFlagged"`
}

// TopicProgress is one row of the topic dashboard.
type TopicProgress struct {
	Topic    string `json:"topic"`
	Total    int64  `json:"total"`
	Answered int    `json:"answered"`
	Correct  int    `json:"correct"`
}

// PracticeQuestion is a question plus its merged attempt state.
type PracticeQuestion struct {
	ID       uint                 `json:"id"`
	Prompt   string               `json:"prompt"`
	ImageURL string               `json:"imageUrl,omitempty"`
	Topic    string               `json:"topic"`
	Options  []model.AnswerOption `json:"options"`
	State    AttemptState         `json:"state"`
}

// AnswerFeedback is returned right after a practice answer: correctness plus
// the full explanations, since practice mode teaches immediately.
type AnswerFeedback struct {
	QuestionID        uint                 `json:"questionId"`
	Selected          string               `json:"selected"`
	IsCorrect         bool                 `json:"isCorrect"`
	CorrectOption     string               `json:"correctOption"`
	Options           []model.AnswerOption `json:"options"`
	ExpandedKnowledge string               `json:"expandedKnowledge,omitempty"`
}

type QuizService struct {
	questions *repository.QuestionRepository
	progress  *repository.QuizProgressRepository
	sessions  *repository.ExamSessionRepository
	answers   *repository.ExamAnswerRepository
}

func NewQuizService(
	questions *repository.QuestionRepository,
	progress *repository.QuizProgressRepository,
	sessions *repository.ExamSessionRepository,
	answers *repository.ExamAnswerRepository,
) *QuizService {
	return &QuizService{questions: questions, progress: progress, sessions: sessions, answers: answers}
}

// Topics lists every topic with its size and the user's progress in it.
func (s *QuizService) Topics(userID uint) ([]TopicProgress, error) {
	counts, err := s.questions.TopicCounts()
	if err != nil {
		return nil, err
	}

	recs, err := s.progress.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.QuestionID)
	}
	attempted, err := s.questions.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	topicByQuestion := make(map[uint]string, len(attempted))
	for _, q := range attempted {
		topicByQuestion[q.ID] = q.Topic
	}

	type tally struct{ answered, correct int }
	tallies := make(map[string]*tally)
	for _, rec := range recs {
		topic := topicByQuestion[rec.QuestionID]
		t, ok := tallies[topic]
		if !ok {
			t = &tally{}
			tallies[topic] = t
		}
		t.answered++
		if rec.IsCorrect {
			t.correct++
		}
	}

	result := make([]TopicProgress, 0, len(counts))
	for _, c := range counts {
		row := TopicProgress{Topic: c.Topic, Total: c.Total}
		if t, ok := tallies[c.Topic]; ok {
			row.Answered = t.answered
			row.Correct = t.correct
		}
		result = append(result, row)
	}
	return result, nil
}

// Questions returns a topic's questions filtered by merged attempt history.
func (s *QuizService) Questions(userID uint, topic string, filter PracticeFilter) ([]PracticeQuestion, error) {
	questions, err := s.questions.FindByTopic(topic)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}

	recs, err := s.progress.FindByUserAndQuestions(userID, ids)
	if err != nil {
		return nil, err
	}

	examFlags, err := s.historicalExamFlags(userID)
	if err != nil {
		return nil, err
	}

	states := MergeAttempts(recs, examFlags)

	result := make([]PracticeQuestion, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		state := states[q.ID]
		if !MatchesFilter(state, filter) {
			continue
		}
		options := q.Options()
		bare := make([]model.AnswerOption, len(options))
		for j, o := range options {
			bare[j] = model.AnswerOption{Tag: o.Tag, Text: o.Text}
		}
		result = append(result, PracticeQuestion{
			ID:       q.ID,
			Prompt:   q.Prompt,
			ImageURL: q.ImageURL,
			Topic:    q.Topic,
			Options:  bare,
			State:    state,
		})
	}
	return result, nil
}

// historicalExamFlags collects question ids the user flagged in any past exam
// session.
func (s *QuizService) historicalExamFlags(userID uint) (map[uint]bool, error) {
	sessions, err := s.sessions.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}
	sessionIDs := make([]uint, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.ID)
	}

	answers, err := s.answers.FindBySessions(sessionIDs)
	if err != nil {
		return nil, err
	}

	flags := make(map[uint]bool)
	for _, a := range answers {
		if a.IsFlagged {
			flags[a.QuestionID] = true
		}
	}
	return flags, nil
}

// MergeAttempts folds practice records and historical exam flags into one
// state per question. A question counts as flagged if ANY historical session
// or the practice record flagged it, not just the most recent one; that is
// how the legacy app behaved and it is preserved pending clarification.
func MergeAttempts(recs []model.QuizProgress, examFlags map[uint]bool) map[uint]AttemptState {
	states := make(map[uint]AttemptState, len(recs))
	for _, rec := range recs {
		states[rec.QuestionID] = AttemptState{
			Answered:  rec.Attempts > 0 || rec.Selected != "",
			IsCorrect: rec.IsCorrect,
			IsFlagged: rec.IsFlagged,
		}
	}
	for qid := range examFlags {
		state := states[qid]
		state.IsFlagged = true
		states[qid] = state
	}
	return states
}

// MatchesFilter classifies one merged state against a practice filter.
func MatchesFilter(state AttemptState, filter PracticeFilter) bool {
	switch filter {
	case FilterUnanswered:
		return !state.Answered
	case FilterAnswered:
		return state.Answered
	case FilterCorrect:
		return state.Answered && state.IsCorrect
	case FilterIncorrect:
		return state.Answered && !state.IsCorrect
	case FilterFlagged:
		return state.IsFlagged
	default:
		return true
	}
}

// Answer records a practice attempt and returns immediate feedback with all
// explanations and the expanded knowledge text.
func (s *QuizService) Answer(userID, questionID uint, selected string) (*AnswerFeedback, error) {
	question, err := s.questions.FindByID(questionID)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}

	letter, err := NormalizeOption(selected)
	if err != nil {
		return nil, err
	}

	isCorrect := question.IsCorrectChoice(letter)
	if err := s.progress.UpsertAttempt(userID, questionID, letter, isCorrect, time.Now()); err != nil {
		return nil, err
	}

	return &AnswerFeedback{
		QuestionID:        questionID,
		Selected:          letter,
		IsCorrect:         isCorrect,
		CorrectOption:     question.CorrectOption,
		Options:           question.Options(),
		ExpandedKnowledge: question.ExpandedKnowledge,
	}, nil
}

func (s *QuizService) Flag(userID, questionID uint, flagged bool) error {
	if _, err := s.questions.FindByID(questionID); err != nil {
		return util.ErrQuestionNotFound
	}
	return s.progress.UpsertFlag(userID, questionID, flagged)
}
