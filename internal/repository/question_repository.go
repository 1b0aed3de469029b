package repository

import (
	"medexam_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var qs []model.Question
	if len(ids) == 0 {
		return qs, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindByTopic(topic string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("topic = ?", topic).Order("id ASC").Find(&qs).Error
	return qs, err
}

// RandomIDs draws count random question ids, optionally restricted to one topic.
func (r *QuestionRepository) RandomIDs(count int, topic string) ([]uint, error) {
	var ids []uint
	tx := r.DB.Model(&model.Question{})
	if topic != "" {
		tx = tx.Where("topic = ?", topic)
	}
	err := tx.Order("RAND()").Limit(count).Pluck("id", &ids).Error
	return ids, err
}

type TopicCount struct {
	Topic string `json:"topic"`
	Total int64  `json:"total"`
}

func (r *QuestionRepository) TopicCounts() ([]TopicCount, error) {
	var counts []TopicCount
	err := r.DB.Model(&model.Question{}).
		Select("topic, COUNT(*) as total").
		Group("topic").
		Order("topic ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *QuestionRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Question{}).Count(&n).Error
	return n, err
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) List(page, pageSize int, topic string) ([]model.Question, int64, error) {
	var qs []model.Question
	var total int64

	tx := r.DB.Model(&model.Question{})
	if topic != "" {
		tx = tx.Where("topic = ?", topic)
	}
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := tx.Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&qs).Error
	return qs, total, err
}
