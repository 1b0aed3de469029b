package model

// RankingScore is the materialized leaderboard row, denormalized with the
// display fields the ranking screen needs.
// swagger:model RankingScore
type RankingScore struct {
	BaseModel
	UserID      uint   `gorm:"uniqueIndex;not null" json:"userId"`
	DisplayName string `gorm:"size:100" json:"displayName"`
	Avatar      string `gorm:"size:512" json:"avatar"`
	Score       int    `gorm:"default:0;index" json:"score"`
}

func (RankingScore) TableName() string {
	return "ranking_scores"
}
