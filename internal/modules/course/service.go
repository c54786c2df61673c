package course

import (
	"context"
	"time"

	"golfclub/internal/config"
	"golfclub/internal/domain"
	"golfclub/internal/pkg/timeslot"
)

// Service enforces group-course capacity: many bookings share one session
// subject to enrolled_count < capacity, instead of exclusive time ownership.
type Service struct {
	courses  CourseRepository
	bookings BookingReader
	notifs   NotificationSender
	policy   config.Policy

	now func() time.Time
}

func NewService(courses CourseRepository, bookings BookingReader, notifs NotificationSender, policy config.Policy) *Service {
	return &Service{
		courses:  courses,
		bookings: bookings,
		notifs:   notifs,
		policy:   policy,
		now:      time.Now,
	}
}

func (s *Service) ListSessions(ctx context.Context) ([]domain.CourseSession, error) {
	return s.courses.ListUpcomingSessions(ctx, s.now())
}

// Enroll books one seat on a session. The deadline is checked against the
// session row up front; capacity and duplicate enrollment are re-checked by
// the repository under the session lock, so two concurrent enrollments for
// the last seat cannot both succeed.
func (s *Service) Enroll(ctx context.Context, sessionID, userID int64) (*domain.Booking, error) {
	sess, err := s.courses.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.EnrollDeadline.IsZero() && s.now().After(sess.EnrollDeadline) {
		return nil, ErrEnrollDeadlinePassed
	}

	b := &domain.Booking{
		Type:          domain.BookingCourse,
		ResourceID:    sess.ID,
		UserID:        userID,
		BookingDate:   sess.StartDate,
		StartMin:      sess.StartMin,
		EndMin:        sess.EndMin,
		Status:        domain.BookingPending,
		OriginalPrice: sess.SeatPrice,
		FinalPrice:    sess.SeatPrice,
		PlayerCount:   1,
	}
	if err := s.courses.Enroll(ctx, b); err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, userID, b.ID, domain.BookingCourse, sess.StartDate)
	}
	return b, nil
}

// CancelEnrollment releases a seat. The free-cancel window is measured
// against the session start; confirmed enrollments inside the window are
// rejected, pending ones may always be cancelled.
func (s *Service) CancelEnrollment(ctx context.Context, bookingID, userID int64, reason string) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrForbidden
	}
	if b.Type != domain.BookingCourse {
		return ErrValidation
	}
	if !b.Status.CanTransitionTo(domain.BookingCancelled) {
		return ErrInvalidTransition
	}
	if b.Status == domain.BookingConfirmed {
		start := timeslot.StartInstant(b.BookingDate, timeslot.TimeOfDay(b.StartMin))
		if start.Sub(s.now()) < s.policy.FreeCancelFor(domain.BookingCourse) {
			return ErrCancelWindowClosed
		}
	}

	ok, err := s.courses.CancelEnrollment(ctx, b.ID, reason)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b.UserID, b.ID, reason)
	}
	return nil
}
