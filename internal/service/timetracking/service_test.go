package timetracking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtorque/appointment-service/internal/domain"
	appointmentRepo "github.com/techtorque/appointment-service/internal/infra/storage/appointment"
	sessionRepo "github.com/techtorque/appointment-service/internal/infra/storage/session"
)

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// stubTxManager выполняет функцию без реальной транзакции
type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (stubTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	statusCalls  []string
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *apt
	return &copied, nil
}

func (f *fakeAppointmentRepo) UpdateStatusFrom(_ context.Context, id string, from, to domain.AppointmentStatus) error {
	apt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	if apt.Status != from {
		return appointmentRepo.ErrStatusConflict
	}
	apt.Status = to
	f.statusCalls = append(f.statusCalls, fmt.Sprintf("%s:%s->%s", id, from, to))
	return nil
}

type fakeSessionRepo struct {
	sessions   map[string]*domain.TimeSession
	nextID     int
	timeLogIDs map[string]string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions:   map[string]*domain.TimeSession{},
		timeLogIDs: map[string]string{},
	}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.TimeSession) (*domain.TimeSession, error) {
	for _, existing := range f.sessions {
		if existing.Active && existing.AppointmentID == s.AppointmentID && existing.EmployeeID == s.EmployeeID {
			return nil, sessionRepo.ErrSessionExists
		}
	}
	f.nextID++
	created := *s
	created.ID = fmt.Sprintf("session-%d", f.nextID)
	created.Active = true
	f.sessions[created.ID] = &created
	result := created
	return &result, nil
}

func (f *fakeSessionRepo) GetActive(_ context.Context, appointmentID, employeeID string) (*domain.TimeSession, error) {
	for _, s := range f.sessions {
		if s.Active && s.AppointmentID == appointmentID && s.EmployeeID == employeeID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, sessionRepo.ErrSessionNotFound
}

func (f *fakeSessionRepo) Close(_ context.Context, id string, clockOut time.Time, timeLogID *string) error {
	s, ok := f.sessions[id]
	if !ok || !s.Active {
		return sessionRepo.ErrSessionNotFound
	}
	s.ClockOutTime = &clockOut
	s.Active = false
	if timeLogID != nil {
		s.TimeLogID = timeLogID
	}
	return nil
}

func (f *fakeSessionRepo) SetTimeLogID(_ context.Context, id, timeLogID string) error {
	s, ok := f.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	s.TimeLogID = &timeLogID
	f.timeLogIDs[id] = timeLogID
	return nil
}

func (f *fakeSessionRepo) ListByAppointment(_ context.Context, appointmentID string) ([]*domain.TimeSession, error) {
	result := make([]*domain.TimeSession, 0)
	for _, s := range f.sessions {
		if s.AppointmentID == appointmentID {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeSessionRepo) ListByEmployee(_ context.Context, employeeID string) ([]*domain.TimeSession, error) {
	result := make([]*domain.TimeSession, 0)
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakeTimeLogClient struct {
	openErr     error
	closeErr    error
	opened      int
	closedIDs   []string
	closedHours []float64
}

func (f *fakeTimeLogClient) OpenEntry(_ context.Context, appointmentID, employeeID string, _ time.Time) (string, error) {
	if f.openErr != nil {
		return "", f.openErr
	}
	f.opened++
	return fmt.Sprintf("entry-%s-%s", appointmentID, employeeID), nil
}

func (f *fakeTimeLogClient) CloseEntry(_ context.Context, entryID string, _ time.Time, hoursWorked float64) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	f.closedIDs = append(f.closedIDs, entryID)
	f.closedHours = append(f.closedHours, hoursWorked)
	return nil
}

func confirmedAppointment(id string, employees ...string) *domain.Appointment {
	return &domain.Appointment{
		ID:                  id,
		CustomerID:          "customer-1",
		AssignedEmployeeIDs: employees,
		Status:              domain.StatusConfirmed,
	}
}

type testEnv struct {
	service      *Service
	appointments *fakeAppointmentRepo
	sessions     *fakeSessionRepo
	timeLog      *fakeTimeLogClient
	now          time.Time
}

func newTestEnv(appointments ...*domain.Appointment) *testEnv {
	aptRepo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{}}
	for _, apt := range appointments {
		aptRepo.appointments[apt.ID] = apt
	}

	sessions := newFakeSessionRepo()
	timeLog := &fakeTimeLogClient{}
	now := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

	return &testEnv{
		service:      NewService(aptRepo, sessions, timeLog, stubTxManager{}, fixedClock{now: now}, nopLogger{}),
		appointments: aptRepo,
		sessions:     sessions,
		timeLog:      timeLog,
		now:          now,
	}
}

func TestClockIn_FirstClockInStartsWork(t *testing.T) {
	env := newTestEnv(confirmedAppointment("apt-1", "emp-1"))

	session, err := env.service.ClockIn(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)

	assert.True(t, session.Active)
	assert.Equal(t, "apt-1", session.AppointmentID)
	assert.Equal(t, "emp-1", session.EmployeeID)
	assert.Equal(t, env.now, session.ClockInTime)

	assert.Equal(t, domain.StatusInProgress, env.appointments.appointments["apt-1"].Status)
	assert.Equal(t, 1, env.timeLog.opened)
	assert.Equal(t, "entry-apt-1-emp-1", env.sessions.timeLogIDs[session.ID])
}

func TestClockIn_Idempotent(t *testing.T) {
	env := newTestEnv(confirmedAppointment("apt-1", "emp-1"))

	first, err := env.service.ClockIn(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)

	second, err := env.service.ClockIn(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, env.sessions.sessions, 1)

	// Повторный clock-in не открывает вторую проводку учёта времени
	// и не затирает ссылку на уже открытую
	assert.Equal(t, 1, env.timeLog.opened)
	assert.Equal(t, "entry-apt-1-emp-1", env.sessions.timeLogIDs[first.ID])
}

func TestClockIn_SecondEmployeeDoesNotChangeStatus(t *testing.T) {
	env := newTestEnv(confirmedAppointment("apt-1", "emp-1", "emp-2"))

	_, err := env.service.ClockIn(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)

	_, err = env.service.ClockIn(context.Background(), "apt-1", "emp-2")
	require.NoError(t, err)

	// Только первый clock-in переводит запись в работу
	assert.Len(t, env.appointments.statusCalls, 1)
	assert.Equal(t, domain.StatusInProgress, env.appointments.appointments["apt-1"].Status)
	assert.Len(t, env.sessions.sessions, 2)
}

func TestClockIn_NotAssigned(t *testing.T) {
	env := newTestEnv(confirmedAppointment("apt-1", "emp-1"))

	_, err := env.service.ClockIn(context.Background(), "apt-1", "emp-2")
	assert.ErrorIs(t, err, ErrNotAssigned)
}

func TestClockIn_AppointmentNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.ClockIn(context.Background(), "missing", "emp-1")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestClockIn_InvalidState(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusPending, domain.StatusCompleted, domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			apt := confirmedAppointment("apt-1", "emp-1")
			apt.Status = status
			env := newTestEnv(apt)

			_, err := env.service.ClockIn(context.Background(), "apt-1", "emp-1")
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestClockIn_TimeLogFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(confirmedAppointment("apt-1", "emp-1"))
	env.timeLog.openErr = errors.New("service unavailable")

	session, err := env.service.ClockIn(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)
	assert.True(t, session.Active)
	assert.Empty(t, env.sessions.timeLogIDs)
}

func TestClockOut_LastSessionCompletesAppointment(t *testing.T) {
	env := newTestEnv(confirmedAppointment("apt-1", "emp-1"))

	_, err := env.service.ClockIn(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)

	result, err := env.service.ClockOut(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)

	assert.False(t, result.Session.Active)
	assert.Equal(t, domain.StatusCompleted, result.AppointmentStatus)
	assert.Equal(t, domain.StatusCompleted, env.appointments.appointments["apt-1"].Status)

	// Закрытая проводка уходит во внешний сервис учёта времени
	require.Len(t, env.timeLog.closedIDs, 1)
	assert.Equal(t, "entry-apt-1-emp-1", env.timeLog.closedIDs[0])
}

func TestClockOut_OtherActiveSessionKeepsInProgress(t *testing.T) {
	env := newTestEnv(confirmedAppointment("apt-1", "emp-1", "emp-2"))

	_, err := env.service.ClockIn(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)
	_, err = env.service.ClockIn(context.Background(), "apt-1", "emp-2")
	require.NoError(t, err)

	result, err := env.service.ClockOut(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, result.AppointmentStatus)
	assert.Equal(t, domain.StatusInProgress, env.appointments.appointments["apt-1"].Status)
}

func TestClockOut_NoActiveSession(t *testing.T) {
	env := newTestEnv(confirmedAppointment("apt-1", "emp-1"))

	_, err := env.service.ClockOut(context.Background(), "apt-1", "emp-1")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestClockOut_AppointmentNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.ClockOut(context.Background(), "missing", "emp-1")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetActiveSession(t *testing.T) {
	env := newTestEnv(confirmedAppointment("apt-1", "emp-1"))

	// Отсутствие активной сессии — не ошибка
	got, err := env.service.GetActiveSession(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = env.service.ClockIn(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)

	got, err = env.service.GetActiveSession(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Active)
	assert.Equal(t, int64(0), got.ElapsedSeconds)
}

func TestListEmployeeSessions(t *testing.T) {
	env := newTestEnv(
		confirmedAppointment("apt-1", "emp-1"),
		confirmedAppointment("apt-2", "emp-1"),
	)

	_, err := env.service.ClockIn(context.Background(), "apt-1", "emp-1")
	require.NoError(t, err)
	_, err = env.service.ClockIn(context.Background(), "apt-2", "emp-1")
	require.NoError(t, err)

	sessions, err := env.service.ListEmployeeSessions(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}
