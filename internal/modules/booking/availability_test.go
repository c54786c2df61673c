package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"golfclub/internal/domain"
	"golfclub/internal/pkg/timeslot"
)

func rng(start, end int) timeslot.Range {
	return timeslot.Range{Start: timeslot.TimeOfDay(start), End: timeslot.TimeOfDay(end)}
}

func TestSubtractBusyEmpty(t *testing.T) {
	out := subtractBusy(rng(360, 1320), nil)
	require.Len(t, out, 1)
	assert.Equal(t, rng(360, 1320), out[0])
}

func TestSubtractBusyGaps(t *testing.T) {
	hours := rng(6*60, 22*60)
	busy := []timeslot.Range{
		rng(10*60, 12*60),
		rng(15*60, 16*60),
	}
	out := subtractBusy(hours, busy)
	require.Len(t, out, 3)
	assert.Equal(t, rng(6*60, 10*60), out[0])
	assert.Equal(t, rng(12*60, 15*60), out[1])
	assert.Equal(t, rng(16*60, 22*60), out[2])
}

func TestSubtractBusyMergesAndClips(t *testing.T) {
	hours := rng(6*60, 22*60)
	busy := []timeslot.Range{
		rng(5*60, 7*60),   // clipped to the opening
		rng(9*60, 11*60),  // overlaps the next one
		rng(10*60, 12*60), // merged
		rng(21*60, 23*60), // clipped to the close
	}
	out := subtractBusy(hours, busy)
	require.Len(t, out, 2)
	assert.Equal(t, rng(7*60, 9*60), out[0])
	assert.Equal(t, rng(12*60, 21*60), out[1])
}

func TestSubtractBusyFullyBooked(t *testing.T) {
	hours := rng(6*60, 22*60)
	out := subtractBusy(hours, []timeslot.Range{rng(0, 24*60)})
	assert.Empty(t, out)
}

func TestSubtractBusyBackToBack(t *testing.T) {
	hours := rng(6*60, 10*60)
	busy := []timeslot.Range{
		rng(6*60, 8*60),
		rng(8*60, 9*60),
	}
	out := subtractBusy(hours, busy)
	require.Len(t, out, 1)
	assert.Equal(t, rng(9*60, 10*60), out[0])
}

func TestService_Availability_Shape(t *testing.T) {
	bookings := new(mockBookingRepo)
	resources := new(mockResourceRepo)
	pricing := new(mockPricing)

	res := testVenue()
	res.OpenMin = 8 * 60
	res.CloseMin = 12 * 60
	res.SlotStep = 60
	resources.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	bookings.On("ActiveForResourceDate", mock.Anything, int64(1), mock.Anything).
		Return([]domain.Booking{
			{ResourceID: 1, StartMin: 9 * 60, EndMin: 10 * 60, Status: domain.BookingConfirmed},
		}, nil)

	svc := newTestService(bookings, resources, pricing, nil)
	resp, err := svc.Availability(context.Background(), 1, "2026-09-02")
	require.NoError(t, err)

	assert.True(t, resp.Bookable)
	assert.Equal(t, "08:00", resp.Open)
	assert.Equal(t, "12:00", resp.Close)
	require.Len(t, resp.FreeWindows, 2)
	assert.Equal(t, SlotWindow{Start: "08:00", End: "09:00"}, resp.FreeWindows[0])
	assert.Equal(t, SlotWindow{Start: "10:00", End: "12:00"}, resp.FreeWindows[1])
	assert.Equal(t, []string{"08:00", "10:00", "11:00"}, resp.SlotStarts)
}

func TestService_Availability_MaintenanceNotBookable(t *testing.T) {
	bookings := new(mockBookingRepo)
	resources := new(mockResourceRepo)

	res := testVenue()
	res.Status = domain.ResourceMaintenance
	resources.On("GetByID", mock.Anything, int64(1)).Return(res, nil)

	svc := newTestService(bookings, resources, new(mockPricing), nil)
	resp, err := svc.Availability(context.Background(), 1, "2026-09-02")
	require.NoError(t, err)
	assert.False(t, resp.Bookable)
	assert.Empty(t, resp.FreeWindows)
	assert.Empty(t, resp.SlotStarts)
}

func TestService_Availability_CoachBookedDay(t *testing.T) {
	bookings := new(mockBookingRepo)
	resources := new(mockResourceRepo)

	coach := &domain.Resource{ID: 2, Kind: domain.ResourceCoach, Status: domain.ResourceActive}
	resources.On("GetByID", mock.Anything, int64(2)).Return(coach, nil)
	resources.On("GetScheduleBlock", mock.Anything, int64(2), mock.Anything).
		Return(&domain.CoachScheduleBlock{CoachID: 2, StartMin: 9 * 60, EndMin: 18 * 60, IsBooked: true}, nil)

	svc := newTestService(bookings, resources, new(mockPricing), nil)
	resp, err := svc.Availability(context.Background(), 2, "2026-09-02")
	require.NoError(t, err)
	assert.False(t, resp.Bookable)
}

func TestService_Availability_DropsPastStarts(t *testing.T) {
	bookings := new(mockBookingRepo)
	resources := new(mockResourceRepo)

	res := testVenue()
	res.OpenMin = 10 * 60
	res.CloseMin = 14 * 60
	res.SlotStep = 60
	resources.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	bookings.On("ActiveForResourceDate", mock.Anything, int64(1), mock.Anything).
		Return([]domain.Booking{}, nil)

	svc := newTestService(bookings, resources, new(mockPricing), nil)
	// fixedNow is 12:00 on this date: 10:00, 11:00 and 12:00 are gone.
	resp, err := svc.Availability(context.Background(), 1, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"13:00"}, resp.SlotStarts)
	require.Len(t, resp.FreeWindows, 1)
}
