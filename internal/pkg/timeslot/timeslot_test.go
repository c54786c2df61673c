package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string, crossDay bool) Range {
	t.Helper()
	r, err := ParseRange(start, end, crossDay)
	require.NoError(t, err)
	return r
}

func TestParseClock(t *testing.T) {
	tod, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(570), tod)
	assert.Equal(t, "09:30", tod.String())

	for _, bad := range []string{"9:30", "24:00", "12:60", "noon", "12-30", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestNewRangeRejectsInvertedRange(t *testing.T) {
	_, err := ParseRange("14:00", "13:00", false)
	assert.Error(t, err)

	_, err = ParseRange("10:00", "10:00", false)
	assert.Error(t, err)
}

func TestNewRangeNormalizesCrossDay(t *testing.T) {
	r := mustRange(t, "23:00", "01:30", true)
	assert.Equal(t, TimeOfDay(23*60), r.Start)
	assert.Equal(t, TimeOfDay(25*60+30), r.End)
	assert.Equal(t, 150, r.Minutes())
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Range
		want bool
	}{
		{"touching boundary is not overlap", mustRange(t, "09:00", "10:00", false), mustRange(t, "10:00", "11:00", false), false},
		{"partial overlap", mustRange(t, "09:00", "10:30", false), mustRange(t, "10:00", "11:00", false), true},
		{"containment", mustRange(t, "09:00", "12:00", false), mustRange(t, "10:00", "11:00", false), true},
		{"identical", mustRange(t, "09:00", "10:00", false), mustRange(t, "09:00", "10:00", false), true},
		{"disjoint", mustRange(t, "06:00", "07:00", false), mustRange(t, "20:00", "21:00", false), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.a, tc.b))
			assert.Equal(t, tc.want, Overlaps(tc.b, tc.a))
		})
	}
}

func TestWithinBusinessHours(t *testing.T) {
	day := Hours(mustParse(t, "06:00"), mustParse(t, "22:00"), false)
	assert.True(t, WithinBusinessHours(mustRange(t, "06:00", "07:00", false), day))
	assert.True(t, WithinBusinessHours(mustRange(t, "21:00", "22:00", false), day))
	assert.False(t, WithinBusinessHours(mustRange(t, "05:30", "06:30", false), day))
	assert.False(t, WithinBusinessHours(mustRange(t, "21:30", "22:30", false), day))
}

func TestWithinBusinessHoursWrapsPastMidnight(t *testing.T) {
	// Night driving range: 22:00-02:00.
	night := Hours(mustParse(t, "22:00"), mustParse(t, "02:00"), true)

	assert.True(t, WithinBusinessHours(mustRange(t, "23:00", "01:30", true), night))
	assert.True(t, WithinBusinessHours(mustRange(t, "22:00", "23:00", false), night))
	// Early-morning form shifts onto the tail of the window.
	assert.True(t, WithinBusinessHours(mustRange(t, "00:30", "01:30", false), night))
	assert.False(t, WithinBusinessHours(mustRange(t, "01:30", "02:30", false), night))
	assert.False(t, WithinBusinessHours(mustRange(t, "12:00", "13:00", false), night))
}

func TestNormalizeToHours(t *testing.T) {
	night := Hours(mustParse(t, "22:00"), mustParse(t, "02:00"), true)

	// Already in normalized cross-day form: kept as-is.
	r, ok := NormalizeToHours(mustRange(t, "23:00", "01:30", true), night)
	require.True(t, ok)
	assert.Equal(t, TimeOfDay(23*60), r.Start)
	assert.Equal(t, TimeOfDay(25*60+30), r.End)

	// Early-morning clock form: only fits shifted one day forward, and the
	// shifted minutes are what comes back.
	r, ok = NormalizeToHours(mustRange(t, "00:30", "01:30", false), night)
	require.True(t, ok)
	assert.Equal(t, TimeOfDay(24*60+30), r.Start)
	assert.Equal(t, TimeOfDay(25*60+30), r.End)
	assert.Equal(t, 60, r.Minutes())

	// The shifted form overlaps the tail of the first range.
	assert.True(t, Overlaps(mustRange(t, "23:00", "01:30", true), r))

	_, ok = NormalizeToHours(mustRange(t, "01:30", "02:30", false), night)
	assert.False(t, ok)

	// A plain daytime window never shifts anything.
	day := Hours(mustParse(t, "06:00"), mustParse(t, "22:00"), false)
	r, ok = NormalizeToHours(mustRange(t, "09:00", "10:00", false), day)
	require.True(t, ok)
	assert.Equal(t, TimeOfDay(9*60), r.Start)
}

func TestDurationValid(t *testing.T) {
	r := mustRange(t, "09:00", "09:45", false)
	assert.False(t, DurationValid(r, 60, 180), "45min below 60min floor")
	assert.True(t, DurationValid(mustRange(t, "09:00", "10:00", false), 60, 180))
	assert.False(t, DurationValid(mustRange(t, "09:00", "12:30", false), 60, 180))
	assert.True(t, DurationValid(mustRange(t, "09:00", "12:30", false), 60, 0), "zero max is unbounded")
}

func TestGenerateSlots(t *testing.T) {
	hours := Hours(mustParse(t, "06:00"), mustParse(t, "08:00"), false)
	slots := GenerateSlots(hours, 30)
	require.Len(t, slots, 4)
	assert.Equal(t, "06:00", slots[0].String())
	assert.Equal(t, "07:30", slots[3].String())

	// Restartable: a second call yields the same sequence.
	assert.Equal(t, slots, GenerateSlots(hours, 30))

	assert.Empty(t, GenerateSlots(Range{Start: 600, End: 600}, 30))
	assert.Empty(t, GenerateSlots(hours, 0))
}

func TestGenerateSlotsCrossMidnight(t *testing.T) {
	night := Hours(mustParse(t, "22:00"), mustParse(t, "02:00"), true)
	slots := GenerateSlots(night, 60)
	require.Len(t, slots, 4)
	assert.Equal(t, "22:00", slots[0].String())
	assert.Equal(t, "01:00", slots[3].String())
}

func TestIsPast(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	start := mustParse(t, "09:00")

	before := time.Date(2024, 6, 1, 8, 59, 0, 0, time.UTC)
	assert.False(t, IsPast(date, start, before))

	exact := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	assert.True(t, IsPast(date, start, exact), "start <= now is past")

	after := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsPast(date, start, after))
}

func TestStartInstantCrossDay(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	// 25:30 lands on June 2nd, 01:30.
	got := StartInstant(date, TimeOfDay(25*60+30))
	assert.Equal(t, time.Date(2024, 6, 2, 1, 30, 0, 0, time.UTC), got)
}

func mustParse(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseClock(s)
	require.NoError(t, err)
	return tod
}
