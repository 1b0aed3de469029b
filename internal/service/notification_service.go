package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const unreadCountTTL = time.Minute

// NotificationView is a notice plus the caller's read marker.
type NotificationView struct {
	model.Notification
	Read bool `json:"read"`
}

type NotificationService struct {
	repo *repository.NotificationRepository
	rdb  *redis.Client
}

func NewNotificationService(repo *repository.NotificationRepository, rdb *redis.Client) *NotificationService {
	return &NotificationService{repo: repo, rdb: rdb}
}

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

// List returns all notices newest-first with the user's read flags.
func (s *NotificationService) List(userID uint) ([]NotificationView, error) {
	notices, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	readIDs, err := s.repo.ReadIDsByUser(userID)
	if err != nil {
		return nil, err
	}
	readSet := make(map[uint]bool, len(readIDs))
	for _, id := range readIDs {
		readSet[id] = true
	}

	views := make([]NotificationView, 0, len(notices))
	for _, n := range notices {
		views = append(views, NotificationView{Notification: n, Read: readSet[n.ID]})
	}
	return views, nil
}

// UnreadCount serves from the redis cache when possible; a cold or failing
// cache falls through to MySQL.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, unreadCountKey(userID)).Result(); err == nil {
			if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return n, nil
			}
		}
	}

	n, err := s.repo.UnreadCount(userID)
	if err != nil {
		return 0, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, unreadCountKey(userID), n, unreadCountTTL).Err(); err != nil {
			logger.Log.Debug("unread count cache write failed", zap.Error(err))
		}
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID uint) error {
	if _, err := s.repo.FindByID(notificationID); err != nil {
		return err
	}
	if err := s.repo.MarkRead(notificationID, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationService) invalidateUnread(ctx context.Context, userID uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		logger.Log.Debug("unread count cache invalidation failed", zap.Error(err))
	}
}

// Admin-side management.

func (s *NotificationService) Create(n *model.Notification) error {
	return s.repo.Create(n)
}

func (s *NotificationService) Update(id uint, title, body, icon, iconColor string) (*model.Notification, error) {
	n, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	n.Title = title
	n.Body = body
	n.Icon = icon
	n.IconColor = iconColor
	if err := s.repo.Update(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) Delete(id uint) error {
	return s.repo.Delete(id)
}
