package notification

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"golfclub/internal/domain"
)

// Service persists in-app notifications. Failures here are logged by the
// caller and never fail the booking operation that triggered them.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, userID, bookingID int64, t domain.BookingType, date time.Time) error {
	return s.create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationBookingCreated,
		Title:     "Booking created",
		Body:      fmt.Sprintf("Your %s booking for %s is awaiting payment.", t, date.Format("2006-01-02")),
		BookingID: &bookingID,
	})
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, userID, bookingID int64) error {
	return s.create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationBookingConfirmed,
		Title:     "Booking confirmed",
		Body:      "Your booking is confirmed. See you at the club.",
		BookingID: &bookingID,
	})
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string) error {
	return s.create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationBookingCancelled,
		Title:     "Booking cancelled",
		Body:      fmt.Sprintf("Your booking was cancelled: %s", reason),
		BookingID: &bookingID,
	})
}

func (s *Service) create(ctx context.Context, n *domain.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *Service) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var rows []domain.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (s *Service) MarkRead(ctx context.Context, userID, id int64) error {
	return s.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}
