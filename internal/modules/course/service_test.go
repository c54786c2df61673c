package course

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"golfclub/internal/config"
	"golfclub/internal/domain"
	"golfclub/internal/repository"
)

type mockCourseRepo struct {
	mock.Mock
}

func (m *mockCourseRepo) GetSession(ctx context.Context, id int64) (*domain.CourseSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CourseSession), args.Error(1)
}

func (m *mockCourseRepo) ListUpcomingSessions(ctx context.Context, from time.Time) ([]domain.CourseSession, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CourseSession), args.Error(1)
}

func (m *mockCourseRepo) Enroll(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockCourseRepo) CancelEnrollment(ctx context.Context, bookingID int64, reason string) (bool, error) {
	args := m.Called(ctx, bookingID, reason)
	return args.Bool(0), args.Error(1)
}

type mockBookingReader struct {
	mock.Mock
}

func (m *mockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

var fixedNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func sessionFixture() *domain.CourseSession {
	return &domain.CourseSession{
		ID:             5,
		Title:          "Short Game Clinic",
		CoachID:        2,
		StartDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartMin:       10 * 60,
		EndMin:         12 * 60,
		Capacity:       6,
		EnrolledCount:  3,
		EnrollDeadline: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		SeatPrice:      180,
		Status:         domain.ResourceActive,
	}
}

func newTestService(courses *mockCourseRepo, bookings *mockBookingReader) *Service {
	svc := NewService(courses, bookings, nil, config.Policy{FreeCancelCourse: 48 * time.Hour})
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestService_Enroll_Success(t *testing.T) {
	courses := new(mockCourseRepo)
	courses.On("GetSession", mock.Anything, int64(5)).Return(sessionFixture(), nil)
	courses.On("Enroll", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(courses, new(mockBookingReader))
	b, err := svc.Enroll(context.Background(), 5, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCourse, b.Type)
	assert.Equal(t, int64(5), b.ResourceID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 180.0, b.FinalPrice)
	assert.Equal(t, 10*60, b.StartMin)
}

func TestService_Enroll_DeadlinePassed(t *testing.T) {
	courses := new(mockCourseRepo)
	sess := sessionFixture()
	sess.EnrollDeadline = fixedNow.Add(-time.Hour)
	courses.On("GetSession", mock.Anything, int64(5)).Return(sess, nil)

	svc := newTestService(courses, new(mockBookingReader))
	_, err := svc.Enroll(context.Background(), 5, 7)
	assert.ErrorIs(t, err, ErrEnrollDeadlinePassed)
	courses.AssertNotCalled(t, "Enroll", mock.Anything, mock.Anything)
}

func TestService_Enroll_CourseFull(t *testing.T) {
	courses := new(mockCourseRepo)
	courses.On("GetSession", mock.Anything, int64(5)).Return(sessionFixture(), nil)
	courses.On("Enroll", mock.Anything, mock.Anything).Return(repository.ErrCourseFull)

	svc := newTestService(courses, new(mockBookingReader))
	_, err := svc.Enroll(context.Background(), 5, 7)
	assert.ErrorIs(t, err, repository.ErrCourseFull)
}

func TestService_Enroll_AlreadyEnrolled(t *testing.T) {
	courses := new(mockCourseRepo)
	courses.On("GetSession", mock.Anything, int64(5)).Return(sessionFixture(), nil)
	courses.On("Enroll", mock.Anything, mock.Anything).Return(repository.ErrAlreadyEnrolled)

	svc := newTestService(courses, new(mockBookingReader))
	_, err := svc.Enroll(context.Background(), 5, 7)
	assert.ErrorIs(t, err, repository.ErrAlreadyEnrolled)
}

func enrollmentFixture(status domain.BookingStatus, start time.Time) *domain.Booking {
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:          20,
		Type:        domain.BookingCourse,
		ResourceID:  5,
		UserID:      7,
		BookingDate: date,
		StartMin:    start.Hour()*60 + start.Minute(),
		EndMin:      start.Hour()*60 + start.Minute() + 120,
		Status:      status,
	}
}

func TestService_CancelEnrollment_Success(t *testing.T) {
	courses := new(mockCourseRepo)
	bookings := new(mockBookingReader)

	// 72 hours out against a 48 hour window.
	bookings.On("GetByID", mock.Anything, int64(20)).
		Return(enrollmentFixture(domain.BookingConfirmed, fixedNow.Add(72*time.Hour)), nil)
	courses.On("CancelEnrollment", mock.Anything, int64(20), "conflict").Return(true, nil)

	svc := newTestService(courses, bookings)
	require.NoError(t, svc.CancelEnrollment(context.Background(), 20, 7, "conflict"))
}

func TestService_CancelEnrollment_WindowClosed(t *testing.T) {
	courses := new(mockCourseRepo)
	bookings := new(mockBookingReader)

	bookings.On("GetByID", mock.Anything, int64(20)).
		Return(enrollmentFixture(domain.BookingConfirmed, fixedNow.Add(24*time.Hour)), nil)

	svc := newTestService(courses, bookings)
	err := svc.CancelEnrollment(context.Background(), 20, 7, "conflict")
	assert.ErrorIs(t, err, ErrCancelWindowClosed)
	courses.AssertNotCalled(t, "CancelEnrollment", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelEnrollment_PendingInsideWindow(t *testing.T) {
	courses := new(mockCourseRepo)
	bookings := new(mockBookingReader)

	bookings.On("GetByID", mock.Anything, int64(20)).
		Return(enrollmentFixture(domain.BookingPending, fixedNow.Add(24*time.Hour)), nil)
	courses.On("CancelEnrollment", mock.Anything, int64(20), "conflict").Return(true, nil)

	svc := newTestService(courses, bookings)
	require.NoError(t, svc.CancelEnrollment(context.Background(), 20, 7, "conflict"))
}

func TestService_CancelEnrollment_WrongUser(t *testing.T) {
	bookings := new(mockBookingReader)
	bookings.On("GetByID", mock.Anything, int64(20)).
		Return(enrollmentFixture(domain.BookingPending, fixedNow.Add(72*time.Hour)), nil)

	svc := newTestService(new(mockCourseRepo), bookings)
	err := svc.CancelEnrollment(context.Background(), 20, 99, "not mine")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_CancelEnrollment_NotACourseBooking(t *testing.T) {
	bookings := new(mockBookingReader)
	b := enrollmentFixture(domain.BookingPending, fixedNow.Add(72*time.Hour))
	b.Type = domain.BookingVenue
	bookings.On("GetByID", mock.Anything, int64(20)).Return(b, nil)

	svc := newTestService(new(mockCourseRepo), bookings)
	err := svc.CancelEnrollment(context.Background(), 20, 7, "wrong endpoint")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CancelEnrollment_AlreadyCancelled(t *testing.T) {
	bookings := new(mockBookingReader)
	bookings.On("GetByID", mock.Anything, int64(20)).
		Return(enrollmentFixture(domain.BookingCancelled, fixedNow.Add(72*time.Hour)), nil)

	svc := newTestService(new(mockCourseRepo), bookings)
	err := svc.CancelEnrollment(context.Background(), 20, 7, "again")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
