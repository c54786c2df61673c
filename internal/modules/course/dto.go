package course

import (
	"golfclub/internal/domain"
	"golfclub/internal/pkg/timeslot"
)

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type SessionDetails struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	CoachID        int64   `json:"coach_id"`
	StartDate      string  `json:"start_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Capacity       int     `json:"capacity"`
	SeatsLeft      int     `json:"seats_left"`
	EnrollDeadline string  `json:"enroll_deadline,omitempty"`
	SeatPrice      float64 `json:"seat_price"`
	Status         string  `json:"status"`
}

func toSessionDetails(s *domain.CourseSession) SessionDetails {
	d := SessionDetails{
		ID:        s.ID,
		Title:     s.Title,
		CoachID:   s.CoachID,
		StartDate: s.StartDate.Format("2006-01-02"),
		StartTime: timeslot.TimeOfDay(s.StartMin).String(),
		EndTime:   timeslot.TimeOfDay(s.EndMin).String(),
		Capacity:  s.Capacity,
		SeatsLeft: s.Capacity - s.EnrolledCount,
		SeatPrice: s.SeatPrice,
		Status:    string(s.Status),
	}
	if d.SeatsLeft < 0 {
		d.SeatsLeft = 0
	}
	if !s.EnrollDeadline.IsZero() {
		d.EnrollDeadline = s.EnrollDeadline.Format("2006-01-02T15:04:05Z07:00")
	}
	return d
}

type EnrollmentDetails struct {
	BookingID int64   `json:"booking_id"`
	SessionID int64   `json:"session_id"`
	Status    string  `json:"status"`
	SeatPrice float64 `json:"seat_price"`
}
