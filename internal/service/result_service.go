package service

import (
	"fmt"
	"math"
	"sort"

	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/internal/util"
)

// Clamp policy for derived per-question time. Deltas above the idle ceiling
// are treated as a fixed idle gap, deltas below the floor as near-simultaneous
// duplicates.
const (
	minAnswerDeltaSeconds  = 2
	maxAnswerDeltaSeconds  = 600
	idleGapFallbackSeconds = 60
)

// ProcessedQuestion is one question of the frozen order after classification.
type ProcessedQuestion struct {
	QuestionID       uint   `json:"questionId"`
	Topic            string `json:"topic"`
	Selected         string `json:"selected,omitempty"`
	CorrectOption    string `json:"correctOption"`
	IsCorrect        bool   `json:"isCorrect"`
	IsSkipped        bool   `json:"isSkipped"`
	IsFlagged        bool   `json:"isFlagged"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

// TopicStat aggregates one clinical topic of the exam.
type TopicStat struct {
	Topic               string `json:"topic"`
	Total               int    `json:"total"`
	Correct             int    `json:"correct"`
	Percentage          int    `json:"percentage"`
	AvgTimeSeconds      int    `json:"avgTimeSeconds"`
	RecommendationCount int    `json:"recommendationCount"`
}

// ExamResult is the scored report for a completed session.
type ExamResult struct {
	SessionID  uint                `json:"sessionId"`
	Total      int                 `json:"total"`
	Correct    int                 `json:"correct"`
	Incorrect  int                 `json:"incorrect"`
	Skipped    int                 `json:"skipped"`
	Percentage int                 `json:"percentage"`
	TimeSpent  string              `json:"timeSpent"`
	// Incomplete marks a report built from a session with an empty question
	// order. The legacy app would divide by zero here; until product says
	// otherwise we report zero and flag the report instead.
	Incomplete bool                `json:"incomplete"`
	Topics     []TopicStat         `json:"topics"`
	Questions  []ProcessedQuestion `json:"questions"`
}

type ResultService struct {
	sessions  *repository.ExamSessionRepository
	answers   *repository.ExamAnswerRepository
	questions *repository.QuestionRepository
}

func NewResultService(
	sessions *repository.ExamSessionRepository,
	answers *repository.ExamAnswerRepository,
	questions *repository.QuestionRepository,
) *ResultService {
	return &ResultService{sessions: sessions, answers: answers, questions: questions}
}

// GetExamResult fetches a completed session's rows and builds its report.
func (s *ResultService) GetExamResult(userID, sessionID uint) (*ExamResult, error) {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotOwned
	}

	answers, err := s.answers.FindBySession(sessionID)
	if err != nil {
		return nil, err
	}

	order, err := session.QuestionOrder()
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.FindByIDs(order)
	if err != nil {
		return nil, err
	}

	result := BuildExamResult(session, answers, questions)
	return &result, nil
}

// BuildExamResult turns (session, answer rows, question records) into a scored
// report. Pure and total: any fetch failure happens upstream.
func BuildExamResult(session *model.ExamSession, answers []model.ExamAnswer, questions []model.Question) ExamResult {
	result := ExamResult{
		SessionID: session.ID,
		TimeSpent: FormatTimeSpent(session.TimeLimitSeconds - session.TimeRemainingSeconds),
	}

	order, err := session.QuestionOrder()
	if err != nil || len(order) == 0 {
		result.Incomplete = true
		return result
	}
	result.Total = len(order)

	questionByID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
	}
	answerByQuestion := make(map[uint]*model.ExamAnswer, len(answers))
	for i := range answers {
		answerByQuestion[answers[i].QuestionID] = &answers[i]
	}

	timeSpent := deriveAnswerTimes(session, answers)

	result.Questions = make([]ProcessedQuestion, 0, len(order))
	for _, qid := range order {
		pq := ProcessedQuestion{QuestionID: qid}

		question := questionByID[qid]
		if question != nil {
			pq.Topic = question.Topic
			pq.CorrectOption = question.CorrectOption
		}

		answer := answerByQuestion[qid]
		if answer == nil || answer.Selected == "" {
			pq.IsSkipped = true
			if answer != nil {
				pq.IsFlagged = answer.IsFlagged
			}
			result.Skipped++
		} else {
			pq.Selected = answer.Selected
			pq.IsFlagged = answer.IsFlagged
			pq.TimeSpentSeconds = timeSpent[qid]
			if question != nil && question.IsCorrectChoice(answer.Selected) {
				pq.IsCorrect = true
				result.Correct++
			}
		}

		result.Questions = append(result.Questions, pq)
	}

	result.Incorrect = result.Total - result.Correct - result.Skipped
	result.Percentage = roundPercentage(result.Correct, result.Total)
	result.Topics = aggregateTopics(result.Questions)

	return result
}

// deriveAnswerTimes approximates how long each answered question took by
// walking the answers chronologically and clamping the deltas. The first
// delta is measured from session start. This is an estimate, not a stored
// field; imprecision is accepted so answers need no dedicated timer column.
func deriveAnswerTimes(session *model.ExamSession, answers []model.ExamAnswer) map[uint]int {
	times := make(map[uint]int, len(answers))

	prev := session.CreatedAt
	for _, a := range answers {
		if a.Selected == "" || a.AnsweredAt.IsZero() {
			continue
		}
		delta := int(a.AnsweredAt.Sub(prev).Seconds())
		times[a.QuestionID] = ClampAnswerDelta(delta)
		prev = a.AnsweredAt
	}

	return times
}

// ClampAnswerDelta applies the [2,600]s window: long idle gaps collapse to a
// fixed 60s, sub-2s duplicates are floored at 2s, in-range values pass through.
func ClampAnswerDelta(seconds int) int {
	if seconds > maxAnswerDeltaSeconds {
		return idleGapFallbackSeconds
	}
	if seconds < minAnswerDeltaSeconds {
		return minAnswerDeltaSeconds
	}
	return seconds
}

func aggregateTopics(questions []ProcessedQuestion) []TopicStat {
	type bucket struct {
		total     int
		correct   int
		timeTotal int
		timed     int
	}

	buckets := make(map[string]*bucket)
	topicOrder := make([]string, 0)
	for _, q := range questions {
		b, ok := buckets[q.Topic]
		if !ok {
			b = &bucket{}
			buckets[q.Topic] = b
			topicOrder = append(topicOrder, q.Topic)
		}
		b.total++
		if q.IsCorrect {
			b.correct++
		}
		if q.TimeSpentSeconds > 0 {
			b.timeTotal += q.TimeSpentSeconds
			b.timed++
		}
	}

	stats := make([]TopicStat, 0, len(buckets))
	for _, topic := range topicOrder {
		b := buckets[topic]
		stat := TopicStat{
			Topic:      topic,
			Total:      b.total,
			Correct:    b.correct,
			Percentage: roundPercentage(b.correct, b.total),
		}
		// Average only over questions that produced a usable delta, so
		// skipped items do not drag the topic down.
		if b.timed > 0 {
			stat.AvgTimeSeconds = b.timeTotal / b.timed
		}
		stat.RecommendationCount = RecommendationCount(stat.Percentage)
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Percentage != stats[j].Percentage {
			return stats[i].Percentage > stats[j].Percentage
		}
		return stats[i].Topic < stats[j].Topic
	})

	return stats
}

// RecommendationCount maps topic accuracy to a suggested practice volume.
// The tiers are a product decision, deterministic but otherwise arbitrary.
func RecommendationCount(percentage int) int {
	switch {
	case percentage < 50:
		return 20
	case percentage < 80:
		return 10
	default:
		return 5
	}
}

func roundPercentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// FormatTimeSpent renders total elapsed seconds the way the results screen
// expects: "2h 5min", "45 min" or "40 seg".
func FormatTimeSpent(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	if totalSeconds >= 3600 {
		return fmt.Sprintf("%dh %dmin", totalSeconds/3600, (totalSeconds%3600)/60)
	}
	if totalSeconds >= 60 {
		return fmt.Sprintf("%d min", totalSeconds/60)
	}
	return fmt.Sprintf("%d seg", totalSeconds)
}
