package service

import (
	"context"
	"strconv"
	"time"

	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/pkg/logger"
	"medexam_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const rankingKey = "ranking:scores"

// ScoreUpdate is one pending leaderboard credit.
type ScoreUpdate struct {
	UserID      uint
	DisplayName string
	Avatar      string
	Points      int
}

// RankingEntry is one leaderboard row as served to the ranking screen.
type RankingEntry struct {
	Position    int    `json:"position"`
	UserID      uint   `json:"userId"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Score       int    `json:"score"`
}

// RankingService keeps the leaderboard in a redis sorted set with MySQL as
// the source of truth. Score credits go through a queue and a worker with
// bounded retries, so a flaky backend never loses a finished exam silently.
type RankingService struct {
	repo     *repository.RankingRepository
	rdb      *redis.Client
	queue    chan ScoreUpdate
	retryMax int
}

func NewRankingService(repo *repository.RankingRepository, rdb *redis.Client, retryMax int) *RankingService {
	if retryMax <= 0 {
		retryMax = 3
	}
	return &RankingService{
		repo:     repo,
		rdb:      rdb,
		queue:    make(chan ScoreUpdate, 256),
		retryMax: retryMax,
	}
}

// EnqueueScore hands a credit to the sync worker. Never blocks the request
// path; a full queue is logged and dropped (the DB row catches up on the
// next finish).
func (s *RankingService) EnqueueScore(update ScoreUpdate) {
	select {
	case s.queue <- update:
	default:
		logger.Log.Warn("ranking queue full, dropping score update",
			zap.Uint("userId", update.UserID), zap.Int("points", update.Points))
		monitoring.RankingSyncFailures.Inc()
	}
}

// Run drains the queue until ctx is cancelled. Started from the app.
func (s *RankingService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-s.queue:
			s.apply(ctx, update)
		}
	}
}

func (s *RankingService) apply(ctx context.Context, update ScoreUpdate) {
	var err error
	for attempt := 1; attempt <= s.retryMax; attempt++ {
		if err = s.applyOnce(ctx, update); err == nil {
			monitoring.RankingLastSync.Set(float64(time.Now().Unix()))
			return
		}
		logger.Log.Warn("ranking score sync failed",
			zap.Uint("userId", update.UserID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	monitoring.RankingSyncFailures.Inc()
	logger.Log.Error("ranking score sync gave up",
		zap.Uint("userId", update.UserID), zap.Int("points", update.Points), zap.Error(err))
}

func (s *RankingService) applyOnce(ctx context.Context, update ScoreUpdate) error {
	if err := s.repo.AddScore(update.UserID, update.DisplayName, update.Avatar, update.Points); err != nil {
		return err
	}

	// The ZSET is a read cache; redis being down degrades reads to MySQL,
	// so a failure here is logged but does not fail the sync.
	if s.rdb != nil {
		member := strconv.FormatUint(uint64(update.UserID), 10)
		if err := s.rdb.ZIncrBy(ctx, rankingKey, float64(update.Points), member).Err(); err != nil {
			logger.Log.Warn("ranking zset update failed", zap.Error(err))
		}
	}
	return nil
}

// Leaderboard serves the top entries, preferring the redis sorted set and
// falling back to MySQL when the cache is unavailable or empty.
func (s *RankingService) Leaderboard(ctx context.Context, limit int) ([]RankingEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	if s.rdb != nil {
		if entries, err := s.leaderboardFromRedis(ctx, limit); err == nil && len(entries) > 0 {
			return entries, nil
		}
	}

	rows, err := s.repo.Top(limit)
	if err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

func (s *RankingService) leaderboardFromRedis(ctx context.Context, limit int) ([]RankingEntry, error) {
	members, err := s.rdb.ZRevRangeWithScores(ctx, rankingKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(members))
	for i, m := range members {
		id, err := strconv.ParseUint(m.Member.(string), 10, 64)
		if err != nil {
			continue
		}
		row, err := s.repo.FindByUser(uint(id))
		if err != nil {
			continue
		}
		entries = append(entries, RankingEntry{
			Position:    i + 1,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Avatar:      row.Avatar,
			Score:       int(m.Score),
		})
	}
	return entries, nil
}

func toEntries(rows []model.RankingScore) []RankingEntry {
	entries := make([]RankingEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, RankingEntry{
			Position:    i + 1,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Avatar:      row.Avatar,
			Score:       row.Score,
		})
	}
	return entries
}
