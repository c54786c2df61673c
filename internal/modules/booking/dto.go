package booking

import (
	"time"

	"golfclub/internal/domain"
	"golfclub/internal/pkg/timeslot"
)

type ReserveRequest struct {
	ResourceID  int64  `json:"resource_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	PlayerCount int    `json:"player_count"`
	CouponID    *int64 `json:"coupon_id"`
	Points      int64  `json:"points"`

	UserID int64 `json:"-"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BookingDetails struct {
	ID            int64                `json:"id"`
	Type          domain.BookingType   `json:"type"`
	ResourceID    int64                `json:"resource_id"`
	Date          string               `json:"date"`
	StartTime     string               `json:"start_time"`
	EndTime       string               `json:"end_time"`
	Status        domain.BookingStatus `json:"status"`
	OriginalPrice float64              `json:"original_price"`
	DiscountPrice float64              `json:"discount_price,omitempty"`
	FinalPrice    float64              `json:"final_price"`
	PlayerCount   int                  `json:"player_count"`
	CancelReason  string               `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func toDetails(b *domain.Booking) BookingDetails {
	return BookingDetails{
		ID:            b.ID,
		Type:          b.Type,
		ResourceID:    b.ResourceID,
		Date:          b.BookingDate.Format("2006-01-02"),
		StartTime:     timeslot.TimeOfDay(b.StartMin).String(),
		EndTime:       timeslot.TimeOfDay(b.EndMin).String(),
		Status:        b.Status,
		OriginalPrice: b.OriginalPrice,
		DiscountPrice: b.DiscountPrice,
		FinalPrice:    b.FinalPrice,
		PlayerCount:   b.PlayerCount,
		CancelReason:  b.CancelReason,
		CreatedAt:     b.CreatedAt,
	}
}

// ResourceSummary is the public catalog view of a bookable resource.
// Coaches carry no static hours; their days come from the schedule.
type ResourceSummary struct {
	ID          int64                 `json:"id"`
	Kind        domain.ResourceKind   `json:"kind"`
	Name        string                `json:"name"`
	Open        string                `json:"open,omitempty"`
	Close       string                `json:"close,omitempty"`
	MinDuration int                   `json:"min_duration_min"`
	MaxDuration int                   `json:"max_duration_min,omitempty"`
	SlotStep    int                   `json:"slot_step_min"`
	Status      domain.ResourceStatus `json:"status"`
}

func toSummary(r *domain.Resource) ResourceSummary {
	s := ResourceSummary{
		ID:          r.ID,
		Kind:        r.Kind,
		Name:        r.Name,
		MinDuration: r.MinDuration,
		MaxDuration: r.MaxDuration,
		SlotStep:    r.SlotStep,
		Status:      r.Status,
	}
	if r.Kind == domain.ResourceVenue {
		s.Open = timeslot.TimeOfDay(r.OpenMin).String()
		s.Close = timeslot.TimeOfDay(r.CloseMin).String()
	}
	return s
}

type SlotWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityResponse struct {
	ResourceID  int64        `json:"resource_id"`
	Date        string       `json:"date"`
	Bookable    bool         `json:"bookable"`
	Open        string       `json:"open,omitempty"`
	Close       string       `json:"close,omitempty"`
	FreeWindows []SlotWindow `json:"free_windows"`
	SlotStarts  []string     `json:"slot_starts"`
}
