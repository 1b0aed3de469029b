package model

import "testing"

func sampleQuestion() *Question {
	return &Question{
		Prompt:        "Qual conduta inicial?",
		OptionA:       "alternativa A",
		OptionB:       "alternativa B",
		OptionC:       "alternativa C",
		OptionD:       "alternativa D",
		ExplanationA:  "explicação A",
		CorrectOption: "b",
	}
}

func TestQuestionOptionsOrder(t *testing.T) {
	opts := sampleQuestion().Options()

	if len(opts) != 4 {
		t.Fatalf("Options length = %d, want 4", len(opts))
	}
	for i, tag := range []string{"A", "B", "C", "D"} {
		if opts[i].Tag != tag {
			t.Errorf("opts[%d].Tag = %q, want %q", i, opts[i].Tag, tag)
		}
	}
	if opts[0].Explanation != "explicação A" {
		t.Errorf("opts[0].Explanation = %q", opts[0].Explanation)
	}
}

func TestIsCorrectChoice(t *testing.T) {
	q := sampleQuestion()

	tests := []struct {
		selected string
		want     bool
	}{
		{"B", true},
		{"b", true},
		{" b ", true},
		{"A", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := q.IsCorrectChoice(tt.selected); got != tt.want {
			t.Errorf("IsCorrectChoice(%q) = %v, want %v", tt.selected, got, tt.want)
		}
	}
}

func TestSessionQuestionOrderRoundTrip(t *testing.T) {
	s := &ExamSession{}
	ids := []uint{5, 3, 9}

	if err := s.SetQuestionOrder(ids); err != nil {
		t.Fatalf("SetQuestionOrder: %v", err)
	}
	if s.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", s.TotalQuestions)
	}

	got, err := s.QuestionOrder()
	if err != nil {
		t.Fatalf("QuestionOrder: %v", err)
	}
	if len(got) != 3 || got[0] != 5 || got[1] != 3 || got[2] != 9 {
		t.Errorf("QuestionOrder = %v, want %v", got, ids)
	}
}

func TestSessionQuestionOrderEmpty(t *testing.T) {
	s := &ExamSession{}
	got, err := s.QuestionOrder()
	if err != nil {
		t.Fatalf("QuestionOrder: %v", err)
	}
	if got != nil {
		t.Errorf("QuestionOrder on empty column = %v, want nil", got)
	}
}
