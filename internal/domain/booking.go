package domain

import "time"

type BookingType string

const (
	BookingVenue  BookingType = "venue"
	BookingCoach  BookingType = "coach"
	BookingCourse BookingType = "course"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRefunded  BookingStatus = "refunded"
)

// CanTransitionTo is the single source of truth for the booking lifecycle.
// pending -> confirmed | cancelled
// confirmed -> completed | cancelled | refunded
// completed, cancelled and refunded are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled || next == BookingRefunded
	default:
		return false
	}
}

// IsActive reports whether the booking still holds its slot. Only active
// bookings count toward overlap checks and user quotas.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking is a claim on a resource for a half-open [StartMin, EndMin) range
// on BookingDate. Times are stored as minutes since midnight; EndMin may
// exceed 1440 when the slot runs past midnight.
type Booking struct {
	ID          int64       `json:"id" gorm:"column:id;primaryKey"`
	Type        BookingType `json:"type" gorm:"column:booking_type"`
	ResourceID  int64       `json:"resource_id" gorm:"column:resource_id;index:idx_resource_date"`
	UserID      int64       `json:"user_id" gorm:"column:user_id;index"`
	BookingDate time.Time   `json:"booking_date" gorm:"column:booking_date;index:idx_resource_date"`
	StartMin    int         `json:"-" gorm:"column:start_min"`
	EndMin      int         `json:"-" gorm:"column:end_min"`

	Status        BookingStatus `json:"status" gorm:"column:status"`
	OriginalPrice float64       `json:"original_price" gorm:"column:original_price"`
	DiscountPrice float64       `json:"discount_price,omitempty" gorm:"column:discount_price"`
	FinalPrice    float64       `json:"final_price" gorm:"column:final_price"`
	PlayerCount   int           `json:"player_count" gorm:"column:player_count"`

	CancelReason string     `json:"cancel_reason,omitempty" gorm:"column:cancel_reason;type:text"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty" gorm:"column:cancelled_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// PriceQuote is what the pricing collaborator resolves for a slot.
type PriceQuote struct {
	BaseHourly float64 `json:"base_hourly"`
	PeakHourly float64 `json:"peak_hourly"`
	Peak       bool    `json:"peak"`
	Total      float64 `json:"total"`
}

// DiscountHold is a loyalty-side reservation of a discount (coupon claim
// and/or points) made before the final price is fixed. It is committed to a
// booking once the booking row exists, or released if the reservation fails.
type DiscountHold struct {
	ID     int64
	Amount float64
}
