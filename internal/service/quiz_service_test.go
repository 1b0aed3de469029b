package service

import (
	"testing"

	"medexam_backend/internal/model"
)

func progressRec(questionID uint, selected string, correct, flagged bool, attempts int) model.QuizProgress {
	return model.QuizProgress{
		UserID:     1,
		QuestionID: questionID,
		Selected:   selected,
		IsCorrect:  correct,
		IsFlagged:  flagged,
		Attempts:   attempts,
	}
}

func TestMergeAttempts(t *testing.T) {
	recs := []model.QuizProgress{
		progressRec(1, "A", true, false, 2),
		progressRec(2, "B", false, true, 1),
		progressRec(3, "", false, false, 0),
	}
	examFlags := map[uint]bool{2: true, 4: true}

	states := MergeAttempts(recs, examFlags)

	if !states[1].Answered || !states[1].IsCorrect || states[1].IsFlagged {
		t.Errorf("question 1 state = %+v, want answered correct unflagged", states[1])
	}
	if !states[2].Answered || states[2].IsCorrect || !states[2].IsFlagged {
		t.Errorf("question 2 state = %+v, want answered incorrect flagged", states[2])
	}
	if states[3].Answered {
		t.Error("zero-attempt record without selection should not count as answered")
	}
	// Flag known only from an old exam session: the question gains a state.
	if s, ok := states[4]; !ok || !s.IsFlagged || s.Answered {
		t.Errorf("question 4 state = %+v, want flag-only state", s)
	}
}

func TestMergeAttemptsFlagIsSticky(t *testing.T) {
	// Practice record says unflagged, a historical exam flagged it: the merged
	// state stays flagged.
	recs := []model.QuizProgress{progressRec(7, "C", true, false, 1)}
	states := MergeAttempts(recs, map[uint]bool{7: true})

	if !states[7].IsFlagged {
		t.Error("exam flag should override the unflagged practice record")
	}
	if !states[7].Answered || !states[7].IsCorrect {
		t.Errorf("merge must keep answer state, got %+v", states[7])
	}
}

func TestMatchesFilter(t *testing.T) {
	answered := AttemptState{Answered: true, IsCorrect: true}
	wrong := AttemptState{Answered: true, IsCorrect: false}
	flagged := AttemptState{IsFlagged: true}
	untouched := AttemptState{}

	tests := []struct {
		name   string
		state  AttemptState
		filter PracticeFilter
		want   bool
	}{
		{"all matches untouched", untouched, FilterAll, true},
		{"all matches answered", answered, FilterAll, true},
		{"unanswered matches untouched", untouched, FilterUnanswered, true},
		{"unanswered rejects answered", answered, FilterUnanswered, false},
		{"answered matches answered", answered, FilterAnswered, true},
		{"answered rejects untouched", untouched, FilterAnswered, false},
		{"correct matches correct", answered, FilterCorrect, true},
		{"correct rejects wrong", wrong, FilterCorrect, false},
		{"correct rejects untouched", untouched, FilterCorrect, false},
		{"incorrect matches wrong", wrong, FilterIncorrect, true},
		{"incorrect rejects correct", answered, FilterIncorrect, false},
		{"incorrect rejects untouched", untouched, FilterIncorrect, false},
		{"flagged matches flag-only", flagged, FilterFlagged, true},
		{"flagged rejects untouched", untouched, FilterFlagged, false},
		{"unknown filter matches everything", untouched, PracticeFilter("bogus"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchesFilter(tt.state, tt.filter)
			if got != tt.want {
				t.Errorf("MatchesFilter(%+v, %q) = %v, want %v", tt.state, tt.filter, got, tt.want)
			}
		})
	}
}
