package booking

import (
	"context"
	"log"
	"time"

	"golfclub/internal/config"
	"golfclub/internal/domain"
	"golfclub/internal/pkg/timeslot"
	"golfclub/internal/repository"
)

// Service is the reservation coordinator: it validates a requested window
// with pure time arithmetic, consults the availability view, and delegates
// the atomic check-then-insert to the repository. All durable state lives in
// storage; the service itself holds no mutable state and is safe for
// concurrent use.
type Service struct {
	bookings     BookingRepository
	resources    ResourceRepository
	pricing      PricingQuoter
	loyalty      LoyaltyService
	notifs       NotificationSender
	availability *AvailabilityView
	policy       config.Policy

	// now is injected so every validation sees one explicit clock value.
	now func() time.Time
}

func NewService(
	bookings BookingRepository,
	resources ResourceRepository,
	pricing PricingQuoter,
	loyalty LoyaltyService,
	notifs NotificationSender,
	policy config.Policy,
) *Service {
	return &Service{
		bookings:     bookings,
		resources:    resources,
		pricing:      pricing,
		loyalty:      loyalty,
		notifs:       notifs,
		availability: NewAvailabilityView(resources, bookings),
		policy:       policy,
		now:          time.Now,
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

func bookingTypeFor(kind domain.ResourceKind) domain.BookingType {
	if kind == domain.ResourceCoach {
		return domain.BookingCoach
	}
	return domain.BookingVenue
}

// Reserve validates the requested window and creates a pending booking.
// Validation order follows the request path: resource and day availability,
// business hours, duration, past-slot check, then price resolution and the
// atomic insert. Conflict, quota and resource-status races are detected
// inside the repository transaction and surface as repository errors.
func (s *Service) Reserve(ctx context.Context, req ReserveRequest) (*domain.Booking, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	res, err := s.resources.GetByID(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	bookable, err := s.availability.IsBookable(ctx, res, date)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return nil, repository.ErrResourceUnavailable
	}
	block, err := s.availability.Load(ctx, res, date)
	if err != nil {
		return nil, err
	}

	rng, err := timeslot.ParseRange(req.StartTime, req.EndTime, res.CrossMidnight)
	if err != nil {
		return nil, ErrValidation
	}
	hours := timeslot.Hours(timeslot.TimeOfDay(block.OpenMin), timeslot.TimeOfDay(block.CloseMin), block.CrossMidnight)
	// Keep the normalized form: an early-morning range on a wrapping window
	// is shifted a day forward here, so the stored minutes, the overlap
	// query, the past-slot check and the cancel window all agree on the
	// slot's absolute instants.
	rng, ok := timeslot.NormalizeToHours(rng, hours)
	if !ok {
		return nil, ErrOutOfBusinessHours
	}
	if !timeslot.DurationValid(rng, res.MinDuration, res.MaxDuration) {
		return nil, ErrInvalidDuration
	}
	if timeslot.IsPast(date, rng.Start, s.now()) {
		return nil, ErrSlotInPast
	}

	quote, err := s.pricing.Quote(ctx, res.ID, date, rng)
	if err != nil {
		return nil, err
	}

	var hold *domain.DiscountHold
	if s.loyalty != nil && (req.CouponID != nil || req.Points > 0) {
		hold, err = s.loyalty.ReserveDiscount(ctx, req.UserID, req.CouponID, req.Points)
		if err != nil {
			return nil, err
		}
	}

	playerCount := req.PlayerCount
	if playerCount <= 0 {
		playerCount = 1
	}
	final := quote.Total
	var discount float64
	if hold != nil {
		discount = hold.Amount
		final -= discount
		if final < 0 {
			final = 0
		}
	}

	b := &domain.Booking{
		Type:          bookingTypeFor(res.Kind),
		ResourceID:    res.ID,
		UserID:        req.UserID,
		BookingDate:   date,
		StartMin:      int(rng.Start),
		EndMin:        int(rng.End),
		Status:        domain.BookingPending,
		OriginalPrice: quote.Total,
		DiscountPrice: discount,
		FinalPrice:    final,
		PlayerCount:   playerCount,
	}
	if err := s.bookings.Reserve(ctx, b, s.policy.MaxActiveBookings); err != nil {
		if hold != nil {
			// The reserve error is what the caller acts on; a failed
			// release leaves the hold for the expiry sweep, but must be
			// visible in the logs.
			if relErr := s.loyalty.ReleaseHold(ctx, hold.ID); relErr != nil {
				log.Printf("booking: release hold %d after failed reserve: %v", hold.ID, relErr)
			}
		}
		return nil, err
	}
	if hold != nil {
		if err := s.loyalty.CommitHold(ctx, hold.ID, b.ID); err != nil {
			log.Printf("booking: commit hold %d for booking %d: %v", hold.ID, b.ID, err)
		}
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b.UserID, b.ID, b.Type, date)
	}
	return b, nil
}

// Cancel applies the free-cancellation policy and flips the booking to
// cancelled. Pending (unpaid) bookings may always be cancelled; confirmed
// ones only while the lead time for the resource class has not run out.
// The repository update is conditional on the booking still being active,
// so a repeated cancel reports ErrInvalidTransition without side effects.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64, reason string) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrForbidden
	}
	if !b.Status.CanTransitionTo(domain.BookingCancelled) {
		return ErrInvalidTransition
	}
	if b.Status == domain.BookingConfirmed {
		start := timeslot.StartInstant(b.BookingDate, timeslot.TimeOfDay(b.StartMin))
		if start.Sub(s.now()) < s.policy.FreeCancelFor(b.Type) {
			return ErrCancelWindowClosed
		}
	}

	ok, err := s.bookings.CancelIfActive(ctx, b.ID, reason)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}

	if s.loyalty != nil {
		if err := s.loyalty.OnCancelled(ctx, b.ID); err != nil {
			log.Printf("booking: reverse loyalty for booking %d: %v", b.ID, err)
		}
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b.UserID, b.ID, reason)
	}
	return nil
}

// Confirm transitions pending -> confirmed. Only the payment-completion
// path calls this.
func (s *Service) Confirm(ctx context.Context, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !b.Status.CanTransitionTo(domain.BookingConfirmed) {
		return ErrInvalidTransition
	}
	ok, err := s.bookings.UpdateStatusIf(ctx, b.ID, domain.BookingPending, domain.BookingConfirmed)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyBookingConfirmed(ctx, b.UserID, b.ID)
	}
	return nil
}

// Complete transitions confirmed -> completed once the slot has elapsed.
// Called by the background sweep owner.
func (s *Service) Complete(ctx context.Context, bookingID int64) error {
	return s.transition(ctx, bookingID, domain.BookingConfirmed, domain.BookingCompleted)
}

// Refund transitions confirmed -> refunded after payment reversal.
func (s *Service) Refund(ctx context.Context, bookingID int64) error {
	return s.transition(ctx, bookingID, domain.BookingConfirmed, domain.BookingRefunded)
}

func (s *Service) transition(ctx context.Context, bookingID int64, from, to domain.BookingStatus) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status != from || !from.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	ok, err := s.bookings.UpdateStatusIf(ctx, b.ID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

// ListResources returns the bookable catalog, optionally narrowed to one
// kind. An unknown kind string is a validation error, not an empty list.
func (s *Service) ListResources(ctx context.Context, kind string) ([]ResourceSummary, error) {
	kinds := []domain.ResourceKind{domain.ResourceVenue, domain.ResourceCoach}
	switch domain.ResourceKind(kind) {
	case domain.ResourceVenue:
		kinds = kinds[:1]
	case domain.ResourceCoach:
		kinds = kinds[1:]
	default:
		if kind != "" {
			return nil, ErrValidation
		}
	}

	out := []ResourceSummary{}
	for _, k := range kinds {
		rows, err := s.resources.ListByKind(ctx, k)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			out = append(out, toSummary(&rows[i]))
		}
	}
	return out, nil
}

func (s *Service) MyBookings(ctx context.Context, userID int64, limit, offset int) ([]BookingDetails, error) {
	rows, err := s.bookings.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]BookingDetails, 0, len(rows))
	for i := range rows {
		out = append(out, toDetails(&rows[i]))
	}
	return out, nil
}

// Availability returns the free windows and candidate slot starts for a
// resource on a date. Slot starts already in the past are dropped.
func (s *Service) Availability(ctx context.Context, resourceID int64, dateStr string) (*AvailabilityResponse, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	resp := &AvailabilityResponse{
		ResourceID:  res.ID,
		Date:        dateStr,
		FreeWindows: []SlotWindow{},
		SlotStarts:  []string{},
	}

	bookable, err := s.availability.IsBookable(ctx, res, date)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return resp, nil
	}
	block, err := s.availability.Load(ctx, res, date)
	if err != nil {
		return nil, err
	}
	resp.Bookable = true
	resp.Open = timeslot.TimeOfDay(block.OpenMin).String()
	resp.Close = timeslot.TimeOfDay(block.CloseMin).String()

	free, err := s.availability.FreeWindows(ctx, res, date, block)
	if err != nil {
		return nil, err
	}

	step := res.SlotStep
	if step <= 0 {
		step = res.MinDuration
	}
	if step <= 0 {
		step = 60
	}
	now := s.now()
	for _, w := range free {
		resp.FreeWindows = append(resp.FreeWindows, SlotWindow{Start: w.Start.String(), End: w.End.String()})
		for _, t := range timeslot.GenerateSlots(w, step) {
			if timeslot.IsPast(date, t, now) {
				continue
			}
			resp.SlotStarts = append(resp.SlotStarts, t.String())
		}
	}
	return resp, nil
}
