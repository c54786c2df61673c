package booking

import (
	"context"
	"time"

	"golfclub/internal/domain"
	"golfclub/internal/pkg/timeslot"
)

// BookingRepository is the storage side of the coordinator. Reserve and the
// conditional updates are atomic units of work; see internal/repository.
type BookingRepository interface {
	Reserve(ctx context.Context, b *domain.Booking, maxActivePerUser int) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ActiveForResourceDate(ctx context.Context, resourceID int64, date time.Time) ([]domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	CancelIfActive(ctx context.Context, id int64, reason string) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
}

// ResourceRepository is the read-only availability source: resources are
// owned by scheduling/admin collaborators and never written here.
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	ListByKind(ctx context.Context, kind domain.ResourceKind) ([]domain.Resource, error)
	GetScheduleBlock(ctx context.Context, coachID int64, date time.Time) (*domain.CoachScheduleBlock, error)
}

// PricingQuoter resolves the price for a resource and slot. Peak-vs-base
// resolution is delegated entirely to the collaborator.
type PricingQuoter interface {
	Quote(ctx context.Context, resourceID int64, date time.Time, rng timeslot.Range) (*domain.PriceQuote, error)
}

// LoyaltyService reserves coupon/points discounts before the final price is
// fixed and reverses them when a booking is cancelled.
type LoyaltyService interface {
	ReserveDiscount(ctx context.Context, userID int64, couponID *int64, points int64) (*domain.DiscountHold, error)
	CommitHold(ctx context.Context, holdID, bookingID int64) error
	ReleaseHold(ctx context.Context, holdID int64) error
	OnCancelled(ctx context.Context, bookingID int64) error
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, userID, bookingID int64, t domain.BookingType, date time.Time) error
	NotifyBookingConfirmed(ctx context.Context, userID, bookingID int64) error
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string) error
}
