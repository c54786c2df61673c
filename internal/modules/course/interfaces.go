package course

import (
	"context"
	"time"

	"golfclub/internal/domain"
)

// CourseRepository owns the session rows and the enrollment units of work.
// Enroll and CancelEnrollment are atomic: capacity check, duplicate check
// and the denormalized counter move together inside one transaction.
type CourseRepository interface {
	GetSession(ctx context.Context, id int64) (*domain.CourseSession, error)
	ListUpcomingSessions(ctx context.Context, from time.Time) ([]domain.CourseSession, error)
	Enroll(ctx context.Context, b *domain.Booking) error
	CancelEnrollment(ctx context.Context, bookingID int64, reason string) (bool, error)
}

// BookingReader resolves an enrollment booking for ownership and status
// checks before cancellation.
type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, userID, bookingID int64, t domain.BookingType, date time.Time) error
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string) error
}
