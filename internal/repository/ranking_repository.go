package repository

import (
	"medexam_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RankingRepository struct {
	DB *gorm.DB
}

func NewRankingRepository(db *gorm.DB) *RankingRepository {
	return &RankingRepository{DB: db}
}

// AddScore accumulates points onto a user's leaderboard row, refreshing the
// denormalized display fields on the way.
func (r *RankingRepository) AddScore(userID uint, displayName, avatar string, points int) error {
	entry := model.RankingScore{
		UserID:      userID,
		DisplayName: displayName,
		Avatar:      avatar,
		Score:       points,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":        gorm.Expr("score + ?", points),
			"display_name": displayName,
			"avatar":       avatar,
		}),
	}).Create(&entry).Error
}

func (r *RankingRepository) Top(limit int) ([]model.RankingScore, error) {
	var entries []model.RankingScore
	err := r.DB.Order("score DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *RankingRepository) FindByUser(userID uint) (*model.RankingScore, error) {
	var entry model.RankingScore
	err := r.DB.Where("user_id = ?", userID).First(&entry).Error
	return &entry, err
}
