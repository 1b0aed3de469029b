package repository

import (
	"time"

	"medexam_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) List() ([]model.Notification, error) {
	var notices []model.Notification
	err := r.DB.Order("created_at DESC").Find(&notices).Error
	return notices, err
}

func (r *NotificationRepository) FindByID(id uint) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.First(&n, id).Error
	return &n, err
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) Update(n *model.Notification) error {
	return r.DB.Save(n).Error
}

func (r *NotificationRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id = ?", id).Delete(&model.NotificationRead{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Notification{}, id).Error
	})
}

// MarkRead is idempotent; re-reading the same notice is a no-op.
func (r *NotificationRepository) MarkRead(notificationID, userID uint) error {
	read := model.NotificationRead{
		NotificationID: notificationID,
		UserID:         userID,
		ReadAt:         time.Now(),
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "notification_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&read).Error
}

func (r *NotificationRepository) ReadIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.NotificationRead{}).
		Where("user_id = ?", userID).
		Pluck("notification_id", &ids).Error
	return ids, err
}

func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Notification{}).
		Where("id NOT IN (?)",
			r.DB.Model(&model.NotificationRead{}).
				Select("notification_id").
				Where("user_id = ?", userID),
		).
		Count(&n).Error
	return n, err
}
