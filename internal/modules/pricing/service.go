package pricing

import (
	"context"
	"math"
	"time"

	"golfclub/internal/config"
	"golfclub/internal/domain"
	"golfclub/internal/pkg/timeslot"
)

type RateRepository interface {
	GetByResourceID(ctx context.Context, resourceID int64) (*domain.ResourceRate, error)
}

// Service resolves slot prices from per-resource hourly rates. A slot is
// billed at the peak rate when it falls on a weekend (if enabled) or
// overlaps the configured evening peak window.
type Service struct {
	rates  RateRepository
	policy config.Policy

	peak timeslot.Range
}

func NewService(rates RateRepository, policy config.Policy) *Service {
	s := &Service{rates: rates, policy: policy}
	if r, err := timeslot.ParseRange(policy.PeakStart, policy.PeakEnd, false); err == nil {
		s.peak = r
	}
	return s
}

func (s *Service) Quote(ctx context.Context, resourceID int64, date time.Time, rng timeslot.Range) (*domain.PriceQuote, error) {
	rate, err := s.rates.GetByResourceID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	peak := s.isPeak(date, rng)
	hourly := rate.BaseHourly
	if peak && rate.PeakHourly > 0 {
		hourly = rate.PeakHourly
	}
	hours := float64(rng.Minutes()) / 60

	return &domain.PriceQuote{
		BaseHourly: rate.BaseHourly,
		PeakHourly: rate.PeakHourly,
		Peak:       peak,
		Total:      roundCents(hourly * hours),
	}, nil
}

func (s *Service) isPeak(date time.Time, rng timeslot.Range) bool {
	if s.policy.PeakWeekends {
		switch date.Weekday() {
		case time.Saturday, time.Sunday:
			return true
		}
	}
	if s.peak.Minutes() == 0 {
		return false
	}
	return timeslot.Overlaps(rng, s.peak)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
