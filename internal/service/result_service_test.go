package service

import (
	"testing"
	"time"

	"medexam_backend/internal/model"
)

func TestFormatTimeSpent(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"hours and minutes", 125 * 60, "2h 5min"},
		{"minutes only", 45 * 60, "45 min"},
		{"seconds only", 40, "40 seg"},
		{"exact hour", 3600, "1h 0min"},
		{"exact minute", 60, "1 min"},
		{"zero", 0, "0 seg"},
		{"negative clock drift", -30, "0 seg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimeSpent(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatTimeSpent(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestClampAnswerDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"idle gap collapses to 60", 601, 60},
		{"huge gap collapses to 60", 7200, 60},
		{"ceiling passes through", 600, 600},
		{"in range passes through", 300, 300},
		{"floor passes through", 2, 2},
		{"sub-floor raised to 2", 1, 2},
		{"zero raised to 2", 0, 2},
		{"negative raised to 2", -5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampAnswerDelta(tt.delta)
			if got != tt.want {
				t.Errorf("ClampAnswerDelta(%d) = %d, want %d", tt.delta, got, tt.want)
			}
		})
	}
}

func TestRecommendationCount(t *testing.T) {
	tests := []struct {
		percentage int
		want       int
	}{
		{0, 20},
		{49, 20},
		{50, 10},
		{67, 10},
		{79, 10},
		{80, 5},
		{100, 5},
	}

	for _, tt := range tests {
		got := RecommendationCount(tt.percentage)
		if got != tt.want {
			t.Errorf("RecommendationCount(%d) = %d, want %d", tt.percentage, got, tt.want)
		}
	}
}

func testQuestion(id uint, topic, correct string) model.Question {
	q := model.Question{
		Prompt:        "enunciado",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectOption: correct,
		Topic:         topic,
	}
	q.ID = id
	return q
}

func testSession(t *testing.T, order []uint, limit, remaining int, startedAt time.Time) *model.ExamSession {
	t.Helper()
	s := &model.ExamSession{
		Status:               model.SessionCompleted,
		TimeLimitSeconds:     limit,
		TimeRemainingSeconds: remaining,
	}
	s.ID = 1
	s.CreatedAt = startedAt
	if order != nil {
		if err := s.SetQuestionOrder(order); err != nil {
			t.Fatalf("SetQuestionOrder: %v", err)
		}
	}
	return s
}

func TestBuildExamResultScoring(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	session := testSession(t, []uint{10, 20, 30}, 18000, 18000-150, start)

	questions := []model.Question{
		testQuestion(10, "Cardiologia", "A"),
		testQuestion(20, "Cardiologia", "B"),
		testQuestion(30, "Pediatria", "C"),
	}

	answers := []model.ExamAnswer{
		{SessionID: 1, QuestionID: 10, Selected: "A", AnsweredAt: start.Add(40 * time.Second)},
		{SessionID: 1, QuestionID: 20, Selected: "b", AnsweredAt: start.Add(95 * time.Second)},
	}

	result := BuildExamResult(session, answers, questions)

	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	if result.Correct != 2 {
		t.Errorf("Correct = %d, want 2", result.Correct)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.Incorrect != 0 {
		t.Errorf("Incorrect = %d, want 0", result.Incorrect)
	}
	if result.Percentage != 67 {
		t.Errorf("Percentage = %d, want 67", result.Percentage)
	}
	if result.Incomplete {
		t.Error("Incomplete should be false for a populated order")
	}
	if result.TimeSpent != "2 min" {
		t.Errorf("TimeSpent = %q, want %q", result.TimeSpent, "2 min")
	}

	if len(result.Questions) != 3 {
		t.Fatalf("Questions length = %d, want 3", len(result.Questions))
	}
	// Report must follow the frozen order, not insertion order.
	for i, wantID := range []uint{10, 20, 30} {
		if result.Questions[i].QuestionID != wantID {
			t.Errorf("Questions[%d].QuestionID = %d, want %d", i, result.Questions[i].QuestionID, wantID)
		}
	}
	if !result.Questions[1].IsCorrect {
		t.Error("lowercase selection should still count as correct")
	}
	if !result.Questions[2].IsSkipped {
		t.Error("unanswered question should be marked skipped")
	}
	if result.Questions[2].TimeSpentSeconds != 0 {
		t.Errorf("skipped question time = %d, want 0", result.Questions[2].TimeSpentSeconds)
	}
}

func TestBuildExamResultAnswerTimes(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	session := testSession(t, []uint{10, 20, 30}, 18000, 0, start)

	questions := []model.Question{
		testQuestion(10, "Cardiologia", "A"),
		testQuestion(20, "Cardiologia", "A"),
		testQuestion(30, "Pediatria", "A"),
	}

	// First delta 40s from start, second 1s (floored to 2), third 20min idle
	// gap (collapsed to 60).
	answers := []model.ExamAnswer{
		{SessionID: 1, QuestionID: 10, Selected: "A", AnsweredAt: start.Add(40 * time.Second)},
		{SessionID: 1, QuestionID: 20, Selected: "A", AnsweredAt: start.Add(41 * time.Second)},
		{SessionID: 1, QuestionID: 30, Selected: "A", AnsweredAt: start.Add(41*time.Second + 20*time.Minute)},
	}

	result := BuildExamResult(session, answers, questions)

	wantTimes := map[uint]int{10: 40, 20: 2, 30: 60}
	for _, q := range result.Questions {
		if q.TimeSpentSeconds != wantTimes[q.QuestionID] {
			t.Errorf("question %d time = %ds, want %ds", q.QuestionID, q.TimeSpentSeconds, wantTimes[q.QuestionID])
		}
	}
}

func TestBuildExamResultEmptyOrder(t *testing.T) {
	start := time.Now()
	session := testSession(t, nil, 18000, 18000, start)

	result := BuildExamResult(session, nil, nil)

	if !result.Incomplete {
		t.Error("empty order should flag the report incomplete")
	}
	if result.Percentage != 0 {
		t.Errorf("Percentage = %d, want 0", result.Percentage)
	}
	if result.Total != 0 {
		t.Errorf("Total = %d, want 0", result.Total)
	}
}

func TestBuildExamResultTopicStats(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	session := testSession(t, []uint{1, 2, 3, 4}, 18000, 0, start)

	questions := []model.Question{
		testQuestion(1, "Cardiologia", "A"),
		testQuestion(2, "Cardiologia", "A"),
		testQuestion(3, "Pediatria", "A"),
		testQuestion(4, "Pediatria", "A"),
	}

	// Cardiologia 1/2, Pediatria 2/2. Pediatria's second answer sits inside
	// the clamp window; the skip in Cardiologia must not drag its average.
	answers := []model.ExamAnswer{
		{SessionID: 1, QuestionID: 1, Selected: "A", AnsweredAt: start.Add(10 * time.Second)},
		{SessionID: 1, QuestionID: 3, Selected: "A", AnsweredAt: start.Add(40 * time.Second)},
		{SessionID: 1, QuestionID: 4, Selected: "A", AnsweredAt: start.Add(60 * time.Second)},
	}
	// Question 2 answered wrong.
	answers = append(answers, model.ExamAnswer{
		SessionID: 1, QuestionID: 2, Selected: "B", AnsweredAt: start.Add(90 * time.Second),
	})

	result := BuildExamResult(session, answers, questions)

	if len(result.Topics) != 2 {
		t.Fatalf("Topics length = %d, want 2", len(result.Topics))
	}

	// Sorted by percentage descending: Pediatria (100) before Cardiologia (50).
	ped, card := result.Topics[0], result.Topics[1]
	if ped.Topic != "Pediatria" || card.Topic != "Cardiologia" {
		t.Fatalf("topic order = [%s, %s], want [Pediatria, Cardiologia]", ped.Topic, card.Topic)
	}

	if ped.Percentage != 100 || ped.Correct != 2 {
		t.Errorf("Pediatria = %d%% (%d correct), want 100%% (2)", ped.Percentage, ped.Correct)
	}
	if card.Percentage != 50 || card.Correct != 1 {
		t.Errorf("Cardiologia = %d%% (%d correct), want 50%% (1)", card.Percentage, card.Correct)
	}

	// Pediatria deltas: 30s and 20s, averaged over the two timed answers.
	if ped.AvgTimeSeconds != 25 {
		t.Errorf("Pediatria avg time = %ds, want 25s", ped.AvgTimeSeconds)
	}

	if ped.RecommendationCount != 5 {
		t.Errorf("Pediatria recommendations = %d, want 5", ped.RecommendationCount)
	}
	if card.RecommendationCount != 10 {
		t.Errorf("Cardiologia recommendations = %d, want 10", card.RecommendationCount)
	}
}

func TestBuildExamResultAllSkippedTopic(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	session := testSession(t, []uint{1, 2}, 18000, 0, start)

	questions := []model.Question{
		testQuestion(1, "Dermatologia", "A"),
		testQuestion(2, "Dermatologia", "A"),
	}

	result := BuildExamResult(session, nil, questions)

	if len(result.Topics) != 1 {
		t.Fatalf("Topics length = %d, want 1", len(result.Topics))
	}
	derm := result.Topics[0]
	if derm.AvgTimeSeconds != 0 {
		t.Errorf("all-skipped topic avg time = %ds, want 0", derm.AvgTimeSeconds)
	}
	if derm.Percentage != 0 || derm.RecommendationCount != 20 {
		t.Errorf("all-skipped topic = %d%% with %d recommendations, want 0%% with 20", derm.Percentage, derm.RecommendationCount)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}
}

func TestBuildExamResultTopicTieBreak(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	session := testSession(t, []uint{1, 2}, 18000, 0, start)

	questions := []model.Question{
		testQuestion(1, "Pediatria", "A"),
		testQuestion(2, "Cardiologia", "A"),
	}
	answers := []model.ExamAnswer{
		{SessionID: 1, QuestionID: 1, Selected: "A", AnsweredAt: start.Add(10 * time.Second)},
		{SessionID: 1, QuestionID: 2, Selected: "A", AnsweredAt: start.Add(20 * time.Second)},
	}

	result := BuildExamResult(session, answers, questions)

	if len(result.Topics) != 2 {
		t.Fatalf("Topics length = %d, want 2", len(result.Topics))
	}
	// Equal percentages tie-break alphabetically.
	if result.Topics[0].Topic != "Cardiologia" {
		t.Errorf("tie-break order starts with %s, want Cardiologia", result.Topics[0].Topic)
	}
}

func TestBuildExamResultFlagOnSkipped(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	session := testSession(t, []uint{1}, 18000, 0, start)

	questions := []model.Question{testQuestion(1, "Cardiologia", "A")}
	// Flag row without a selection: question stays skipped but keeps its flag.
	answers := []model.ExamAnswer{
		{SessionID: 1, QuestionID: 1, IsFlagged: true},
	}

	result := BuildExamResult(session, answers, questions)

	q := result.Questions[0]
	if !q.IsSkipped {
		t.Error("flag-only row should still count as skipped")
	}
	if !q.IsFlagged {
		t.Error("flag should survive on a skipped question")
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
}
