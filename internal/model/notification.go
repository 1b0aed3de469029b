package model

import "time"

// swagger:model Notification
type Notification struct {
	BaseModel
	Title     string `gorm:"size:255;not null" json:"title"`
	Body      string `gorm:"type:text" json:"body"`
	Icon      string `gorm:"size:50" json:"icon"`
	IconColor string `gorm:"size:30" json:"iconColor"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationRead marks a notification as seen by one user.
type NotificationRead struct {
	BaseModel
	NotificationID uint      `gorm:"uniqueIndex:idx_notification_user;not null" json:"notificationId"`
	UserID         uint      `gorm:"uniqueIndex:idx_notification_user;not null" json:"userId"`
	ReadAt         time.Time `json:"readAt"`
}

func (NotificationRead) TableName() string {
	return "notification_reads"
}
