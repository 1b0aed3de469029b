package service

import (
	"errors"
	"testing"

	"medexam_backend/internal/model"
	"medexam_backend/internal/util"
)

func TestNormalizeOption(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"A", "A", false},
		{"b", "B", false},
		{" c ", "C", false},
		{"D", "D", false},
		{"E", "", true},
		{"", "", true},
		{"AB", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeOption(tt.in)
		if tt.wantErr {
			if !errors.Is(err, util.ErrInvalidOption) {
				t.Errorf("NormalizeOption(%q) error = %v, want ErrInvalidOption", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeOption(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeOption(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortQuestionsByOrder(t *testing.T) {
	questions := []model.Question{
		testQuestion(30, "Pediatria", "A"),
		testQuestion(10, "Cardiologia", "B"),
		testQuestion(20, "Cardiologia", "C"),
	}
	order := []uint{20, 30, 10}

	views := SortQuestionsByOrder(questions, order)

	if len(views) != 3 {
		t.Fatalf("views length = %d, want 3", len(views))
	}
	for i, wantID := range order {
		if views[i].ID != wantID {
			t.Errorf("views[%d].ID = %d, want %d", i, views[i].ID, wantID)
		}
	}
}

func TestSortQuestionsByOrderDropsUnknownIDs(t *testing.T) {
	questions := []model.Question{
		testQuestion(10, "Cardiologia", "A"),
		testQuestion(99, "Pediatria", "A"),
	}
	order := []uint{10, 20}

	views := SortQuestionsByOrder(questions, order)

	// Question 99 is not in the order, question 20 no longer exists.
	if len(views) != 1 {
		t.Fatalf("views length = %d, want 1", len(views))
	}
	if views[0].ID != 10 {
		t.Errorf("views[0].ID = %d, want 10", views[0].ID)
	}
}

func TestSortQuestionsByOrderHidesAnswers(t *testing.T) {
	q := testQuestion(10, "Cardiologia", "B")
	q.ExplanationA = "porque sim"

	views := SortQuestionsByOrder([]model.Question{q}, []uint{10})

	if len(views) != 1 {
		t.Fatalf("views length = %d, want 1", len(views))
	}
	if len(views[0].Options) != 4 {
		t.Fatalf("options length = %d, want 4", len(views[0].Options))
	}
	// An in-progress exam must never leak explanations to the client.
	for _, o := range views[0].Options {
		if o.Explanation != "" {
			t.Errorf("option %s leaked explanation %q", o.Tag, o.Explanation)
		}
	}
}
