package service

import (
	"testing"

	"medexam_backend/internal/model"
)

func rankingRow(userID uint, name string, score int) model.RankingScore {
	return model.RankingScore{UserID: userID, DisplayName: name, Score: score}
}

func TestToEntries(t *testing.T) {
	rows := []model.RankingScore{
		rankingRow(3, "Ana", 420),
		rankingRow(7, "Bruno", 390),
		rankingRow(1, "Clara", 120),
	}

	entries := toEntries(rows)

	if len(entries) != 3 {
		t.Fatalf("entries length = %d, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Position != i+1 {
			t.Errorf("entries[%d].Position = %d, want %d", i, e.Position, i+1)
		}
	}
	if entries[0].UserID != 3 || entries[0].Score != 420 {
		t.Errorf("entries[0] = %+v, want Ana's row first", entries[0])
	}
}

func TestToEntriesEmpty(t *testing.T) {
	entries := toEntries(nil)
	if entries == nil {
		t.Error("toEntries(nil) should return an empty slice, not nil")
	}
	if len(entries) != 0 {
		t.Errorf("entries length = %d, want 0", len(entries))
	}
}

func TestEnqueueScoreDropsWhenFull(t *testing.T) {
	s := NewRankingService(nil, nil, 3)

	// Fill the queue without a running worker; the overflow must not block.
	for i := 0; i < 300; i++ {
		s.EnqueueScore(ScoreUpdate{UserID: uint(i + 1), Points: 10})
	}

	if got := len(s.queue); got != cap(s.queue) {
		t.Errorf("queue length = %d, want %d", got, cap(s.queue))
	}
}
