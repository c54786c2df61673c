package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"golfclub/internal/domain"
	"golfclub/internal/pkg/timeslot"
	"golfclub/internal/repository"
)

// AvailabilityView is the read-only projection of a resource's bookable
// window for a date. Venues expose their static business hours every day;
// coaches expose the schedule row they opened for that date, if any.
type AvailabilityView struct {
	resources ResourceRepository
	bookings  BookingRepository
}

func NewAvailabilityView(resources ResourceRepository, bookings BookingRepository) *AvailabilityView {
	return &AvailabilityView{resources: resources, bookings: bookings}
}

// Load returns the availability block for the resource and date, or nil when
// the resource has no bookable window that day.
func (v *AvailabilityView) Load(ctx context.Context, res *domain.Resource, date time.Time) (*domain.AvailabilityBlock, error) {
	switch res.Kind {
	case domain.ResourceCoach:
		block, err := v.resources.GetScheduleBlock(ctx, res.ID, date)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &domain.AvailabilityBlock{
			Date:          date,
			OpenMin:       block.StartMin,
			CloseMin:      block.EndMin,
			CrossMidnight: block.EndMin > timeslot.MinutesPerDay,
			Booked:        block.IsBooked,
		}, nil
	default:
		return &domain.AvailabilityBlock{
			Date:          date,
			OpenMin:       res.OpenMin,
			CloseMin:      res.CloseMin,
			CrossMidnight: res.CrossMidnight,
		}, nil
	}
}

// IsBookable applies the availability rules that do not depend on the
// requested time range: resource status, presence of a window, and (coach)
// the whole-day booked flag.
func (v *AvailabilityView) IsBookable(ctx context.Context, res *domain.Resource, date time.Time) (bool, error) {
	if res.Status != domain.ResourceActive {
		return false, nil
	}
	block, err := v.Load(ctx, res, date)
	if err != nil {
		return false, err
	}
	return block != nil && !block.Booked, nil
}

// FreeWindows subtracts the active bookings for the date from the operating
// window and returns the remaining free ranges in start order.
func (v *AvailabilityView) FreeWindows(ctx context.Context, res *domain.Resource, date time.Time, block *domain.AvailabilityBlock) ([]timeslot.Range, error) {
	hours := timeslot.Hours(timeslot.TimeOfDay(block.OpenMin), timeslot.TimeOfDay(block.CloseMin), block.CrossMidnight)

	rows, err := v.bookings.ActiveForResourceDate(ctx, res.ID, date)
	if err != nil {
		return nil, err
	}
	busy := make([]timeslot.Range, 0, len(rows))
	for _, b := range rows {
		busy = append(busy, timeslot.Range{Start: timeslot.TimeOfDay(b.StartMin), End: timeslot.TimeOfDay(b.EndMin)})
	}
	return subtractBusy(hours, busy), nil
}

// subtractBusy clips the busy ranges to the operating window, merges the
// overlapping ones and returns the gaps.
func subtractBusy(hours timeslot.Range, busy []timeslot.Range) []timeslot.Range {
	if len(busy) == 0 {
		return []timeslot.Range{hours}
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].Start < busy[j].Start })

	merged := make([]timeslot.Range, 0, len(busy))
	for _, b := range busy {
		if b.End <= hours.Start || b.Start >= hours.End {
			continue
		}
		if b.Start < hours.Start {
			b.Start = hours.Start
		}
		if b.End > hours.End {
			b.End = hours.End
		}
		if len(merged) > 0 && b.Start <= merged[len(merged)-1].End {
			if b.End > merged[len(merged)-1].End {
				merged[len(merged)-1].End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}

	out := make([]timeslot.Range, 0, len(merged)+1)
	cur := hours.Start
	for _, b := range merged {
		if b.Start > cur {
			out = append(out, timeslot.Range{Start: cur, End: b.Start})
		}
		if b.End > cur {
			cur = b.End
		}
	}
	if cur < hours.End {
		out = append(out, timeslot.Range{Start: cur, End: hours.End})
	}
	return out
}
