package appointments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtorque/appointment-service/internal/domain"
	appointmentRepo "github.com/techtorque/appointment-service/internal/infra/storage/appointment"
	servicetypeRepo "github.com/techtorque/appointment-service/internal/infra/storage/servicetype"
	"github.com/techtorque/appointment-service/internal/integrations/notification"
	"github.com/techtorque/appointment-service/internal/service/appointments/models"
	"github.com/techtorque/appointment-service/internal/service/timetracking"
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
}

func newFakeAppointmentRepo(appointments ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{}}
	for _, apt := range appointments {
		repo.appointments[apt.ID] = apt
	}
	return repo
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *apt
	copied.AssignedEmployeeIDs = append([]string(nil), apt.AssignedEmployeeIDs...)
	return &copied, nil
}

func (f *fakeAppointmentRepo) ListByCustomer(_ context.Context, customerID string) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, apt := range f.appointments {
		if apt.CustomerID == customerID {
			result = append(result, apt)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, apt := range f.appointments {
		if apt.HasEmployee(employeeID) && !apt.RequestedDateTime.Before(from) && !apt.RequestedDateTime.After(to) {
			result = append(result, apt)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) ListByRange(_ context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, apt := range f.appointments {
		if !apt.RequestedDateTime.Before(from) && !apt.RequestedDateTime.After(to) {
			result = append(result, apt)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) ListWithFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, apt := range f.appointments {
		if filter.CustomerID != nil && apt.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.VehicleID != nil && apt.VehicleID != *filter.VehicleID {
			continue
		}
		if filter.Status != nil && apt.Status != *filter.Status {
			continue
		}
		result = append(result, apt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, apt *domain.Appointment) error {
	if _, ok := f.appointments[apt.ID]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	copied := *apt
	f.appointments[apt.ID] = &copied
	return nil
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
	return nil
}

func (f *fakeAppointmentRepo) SetAssignedEmployees(_ context.Context, id string, employeeIDs []string) error {
	apt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	apt.AssignedEmployeeIDs = append([]string(nil), employeeIDs...)
	return nil
}

func (f *fakeAppointmentRepo) SetVehicleArrival(_ context.Context, id, employeeID string, arrivedAt time.Time) error {
	apt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	if apt.VehicleArrivedAt != nil {
		return appointmentRepo.ErrAppointmentNotFound
	}
	apt.VehicleArrivedAt = &arrivedAt
	apt.VehicleAcceptedByEmployeeID = &employeeID
	return nil
}

type fakeScheduleRepo struct {
	holidays []*domain.Holiday
}

func (f *fakeScheduleRepo) ListHolidaysInRange(_ context.Context, from, to time.Time) ([]*domain.Holiday, error) {
	result := make([]*domain.Holiday, 0)
	for _, h := range f.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			result = append(result, h)
		}
	}
	return result, nil
}

type fakeServiceTypeRepo struct {
	types map[string]*domain.ServiceType
}

func (f *fakeServiceTypeRepo) GetByName(_ context.Context, name string) (*domain.ServiceType, error) {
	st, ok := f.types[name]
	if !ok {
		return nil, servicetypeRepo.ErrServiceTypeNotFound
	}
	return st, nil
}

type fakeValidator struct {
	err   error
	calls int
}

func (f *fakeValidator) ValidateBookingTime(_ context.Context, _ time.Time, _ int) error {
	f.calls++
	return f.err
}

type fakeBayResolver struct {
	bay   *domain.ServiceBay
	err   error
	calls int
}

func (f *fakeBayResolver) ResolveBay(_ context.Context, _, _ time.Time, _ *string) (*domain.ServiceBay, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.bay, nil
}

type fakeTimeTracker struct {
	clockIns []string
	err      error
}

func (f *fakeTimeTracker) ClockIn(_ context.Context, appointmentID, employeeID string) (*timetracking.SessionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.clockIns = append(f.clockIns, fmt.Sprintf("%s:%s", appointmentID, employeeID))
	return &timetracking.SessionResponse{
		ID:            "session-1",
		AppointmentID: appointmentID,
		EmployeeID:    employeeID,
		Active:        true,
	}, nil
}

type fakeNotifier struct {
	sent []notification.Notification
}

func (f *fakeNotifier) Dispatch(n notification.Notification) {
	f.sent = append(f.sent, n)
}

var (
	customer = domain.Principal{UserID: "customer-1", Roles: []domain.Role{domain.RoleCustomer}}
	stranger = domain.Principal{UserID: "customer-2", Roles: []domain.Role{domain.RoleCustomer}}
	employee = domain.Principal{UserID: "emp-1", Roles: []domain.Role{domain.RoleEmployee}}
	admin    = domain.Principal{UserID: "admin-1", Roles: []domain.Role{domain.RoleAdmin}}
)

func testAppointment(id string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:                  id,
		CustomerID:          "customer-1",
		VehicleID:           "vehicle-1",
		AssignedEmployeeIDs: []string{},
		ConfirmationNumber:  "APT-2026-001000",
		ServiceType:         "Oil Change",
		RequestedDateTime:   time.Date(2026, time.March, 9, 10, 0, 0, 0, time.Local),
		Status:              status,
	}
}

type testEnv struct {
	service      *Service
	appointments *fakeAppointmentRepo
	schedule     *fakeScheduleRepo
	validator    *fakeValidator
	resolver     *fakeBayResolver
	timeTracker  *fakeTimeTracker
	notifier     *fakeNotifier
	now          time.Time
}

func newTestEnv(appointments ...*domain.Appointment) *testEnv {
	aptRepo := newFakeAppointmentRepo(appointments...)
	schedule := &fakeScheduleRepo{}
	serviceTypes := &fakeServiceTypeRepo{types: map[string]*domain.ServiceType{
		"Oil Change": {Name: "Oil Change", EstimatedDurationMinutes: 30, Active: true},
	}}
	validator := &fakeValidator{}
	resolver := &fakeBayResolver{bay: &domain.ServiceBay{ID: "bay-2", BayNumber: "BAY-02", Name: "Bay 2"}}
	timeTracker := &fakeTimeTracker{}
	notifier := &fakeNotifier{}
	now := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.Local)

	return &testEnv{
		service: NewService(
			aptRepo, serviceTypes, schedule, validator, resolver,
			timeTracker, notifier, stubTxManager{}, fixedClock{now: now}, nopLogger{},
		),
		appointments: aptRepo,
		schedule:     schedule,
		validator:    validator,
		resolver:     resolver,
		timeTracker:  timeTracker,
		notifier:     notifier,
		now:          now,
	}
}

func TestGetByID_Access(t *testing.T) {
	env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

	tests := []struct {
		name      string
		principal domain.Principal
		wantErr   error
	}{
		{name: "owner", principal: customer},
		{name: "employee", principal: employee},
		{name: "admin", principal: admin},
		{name: "other customer", principal: stranger, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.service.GetByID(context.Background(), "apt-1", tt.principal)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "apt-1", got.ID)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.GetByID(context.Background(), "missing", admin)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_CustomerSeesOnlyOwn(t *testing.T) {
	other := testAppointment("apt-2", domain.StatusPending)
	other.CustomerID = "customer-2"
	env := newTestEnv(testAppointment("apt-1", domain.StatusPending), other)

	// Фильтр по чужому клиенту для не-сотрудника игнорируется
	otherID := "customer-2"
	got, err := env.service.List(context.Background(), &models.ListAppointmentsRequest{CustomerID: &otherID}, customer)
	require.NoError(t, err)

	require.Len(t, got.Appointments, 1)
	assert.Equal(t, "apt-1", got.Appointments[0].ID)
}

func TestList_StaffUsesFilter(t *testing.T) {
	confirmed := testAppointment("apt-2", domain.StatusConfirmed)
	env := newTestEnv(testAppointment("apt-1", domain.StatusPending), confirmed)

	status := string(domain.StatusConfirmed)
	got, err := env.service.List(context.Background(), &models.ListAppointmentsRequest{Status: &status}, employee)
	require.NoError(t, err)

	require.Len(t, got.Appointments, 1)
	assert.Equal(t, "apt-2", got.Appointments[0].ID)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	env := newTestEnv()

	status := "IN_LIMBO"
	_, err := env.service.List(context.Background(), &models.ListAppointmentsRequest{Status: &status}, admin)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_RoleGating(t *testing.T) {
	tests := []struct {
		name      string
		from      domain.AppointmentStatus
		target    string
		principal domain.Principal
		wantErr   error
	}{
		{name: "admin confirms pending", from: domain.StatusPending, target: "CONFIRMED", principal: admin},
		{name: "customer cannot confirm", from: domain.StatusPending, target: "CONFIRMED", principal: customer, wantErr: ErrInvalidTransition},
		{name: "employee starts work", from: domain.StatusConfirmed, target: "IN_PROGRESS", principal: employee},
		{name: "customer cancels pending", from: domain.StatusPending, target: "CANCELLED", principal: customer},
		{name: "customer cannot cancel confirmed", from: domain.StatusConfirmed, target: "CANCELLED", principal: customer, wantErr: ErrInvalidTransition},
		{name: "admin marks no-show", from: domain.StatusConfirmed, target: "NO_SHOW", principal: admin},
		{name: "unknown status", from: domain.StatusPending, target: "LOST", principal: admin, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(testAppointment("apt-1", tt.from))

			got, err := env.service.UpdateStatus(context.Background(), "apt-1", tt.target, tt.principal)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, got.Status)
		})
	}
}

func TestUpdateStatus_AutoAssignsActingEmployee(t *testing.T) {
	t.Run("first employee is assigned on start of work", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusConfirmed))

		got, err := env.service.UpdateStatus(context.Background(), "apt-1", "IN_PROGRESS", employee)
		require.NoError(t, err)

		assert.Equal(t, []string{"emp-1"}, got.AssignedEmployeeIDs)
		assert.Equal(t, []string{"emp-1"}, env.appointments.appointments["apt-1"].AssignedEmployeeIDs)
	})

	t.Run("existing assignment is kept", func(t *testing.T) {
		apt := testAppointment("apt-1", domain.StatusConfirmed)
		apt.AssignedEmployeeIDs = []string{"emp-9"}
		env := newTestEnv(apt)

		got, err := env.service.UpdateStatus(context.Background(), "apt-1", "IN_PROGRESS", employee)
		require.NoError(t, err)
		assert.Equal(t, []string{"emp-9"}, got.AssignedEmployeeIDs)
	})

	t.Run("customer cancel does not assign anyone", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

		got, err := env.service.UpdateStatus(context.Background(), "apt-1", "CANCELLED", customer)
		require.NoError(t, err)
		assert.Empty(t, got.AssignedEmployeeIDs)
	})
}

func TestUpdateStatus_Notifications(t *testing.T) {
	t.Run("work start notifies customer", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusConfirmed))

		_, err := env.service.UpdateStatus(context.Background(), "apt-1", "IN_PROGRESS", employee)
		require.NoError(t, err)

		require.Len(t, env.notifier.sent, 1)
		assert.Equal(t, "customer-1", env.notifier.sent[0].UserID)
		assert.Equal(t, "Work started", env.notifier.sent[0].Title)
		assert.Equal(t, notification.SeverityInfo, env.notifier.sent[0].Severity)
	})

	t.Run("customer confirmation is acknowledged", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusCompleted))

		_, err := env.service.UpdateStatus(context.Background(), "apt-1", "CUSTOMER_CONFIRMED", customer)
		require.NoError(t, err)

		require.Len(t, env.notifier.sent, 1)
		assert.Equal(t, "Completion confirmed", env.notifier.sent[0].Title)
		assert.Equal(t, notification.SeveritySuccess, env.notifier.sent[0].Severity)
	})
}

func TestUpdateStatus_OtherCustomerDenied(t *testing.T) {
	env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

	_, err := env.service.UpdateStatus(context.Background(), "apt-1", "CANCELLED", stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_SendsNotification(t *testing.T) {
	env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

	got, err := env.service.Cancel(context.Background(), "apt-1", customer)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "customer-1", env.notifier.sent[0].UserID)
	assert.Equal(t, notification.SeverityWarning, env.notifier.sent[0].Severity)
}

func TestConfirmCompletion(t *testing.T) {
	t.Run("owner confirms completed work", func(t *testing.T) {
		apt := testAppointment("apt-1", domain.StatusCompleted)
		apt.AssignedEmployeeIDs = []string{"emp-1", "emp-2"}
		env := newTestEnv(apt)

		got, err := env.service.ConfirmCompletion(context.Background(), "apt-1", customer)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCustomerConfirmed), got.Status)

		// Каждый работавший сотрудник узнаёт о подтверждении
		require.Len(t, env.notifier.sent, 2)
		recipients := []string{env.notifier.sent[0].UserID, env.notifier.sent[1].UserID}
		assert.ElementsMatch(t, []string{"emp-1", "emp-2"}, recipients)
		assert.Equal(t, "Completion confirmed", env.notifier.sent[0].Title)
		assert.Equal(t, notification.SeveritySuccess, env.notifier.sent[0].Severity)
	})

	t.Run("other customer denied", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusCompleted))

		_, err := env.service.ConfirmCompletion(context.Background(), "apt-1", stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not completed yet", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusInProgress))

		_, err := env.service.ConfirmCompletion(context.Background(), "apt-1", customer)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAssignEmployees(t *testing.T) {
	t.Run("assignment confirms pending appointment", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

		got, err := env.service.AssignEmployees(context.Background(), "apt-1", []string{"emp-1", "emp-2"}, admin)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"emp-1", "emp-2"}, got.AssignedEmployeeIDs)
		assert.Equal(t, string(domain.StatusConfirmed), got.Status)

		// Клиент узнаёт о подтверждении, каждый сотрудник — о назначении
		require.Len(t, env.notifier.sent, 3)
		assert.Equal(t, "customer-1", env.notifier.sent[0].UserID)
		assert.Equal(t, "Appointment confirmed", env.notifier.sent[0].Title)

		recipients := []string{env.notifier.sent[1].UserID, env.notifier.sent[2].UserID}
		assert.ElementsMatch(t, []string{"emp-1", "emp-2"}, recipients)
		assert.Equal(t, "New assignment", env.notifier.sent[1].Title)
		assert.Equal(t, "New assignment", env.notifier.sent[2].Title)
	})

	t.Run("set semantics on repeat assignment", func(t *testing.T) {
		apt := testAppointment("apt-1", domain.StatusConfirmed)
		apt.AssignedEmployeeIDs = []string{"emp-1"}
		env := newTestEnv(apt)

		got, err := env.service.AssignEmployees(context.Background(), "apt-1", []string{"emp-1", "emp-2"}, admin)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"emp-1", "emp-2"}, got.AssignedEmployeeIDs)
	})

	t.Run("admin only", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

		_, err := env.service.AssignEmployees(context.Background(), "apt-1", []string{"emp-1"}, employee)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("empty employee list", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

		_, err := env.service.AssignEmployees(context.Background(), "apt-1", nil, admin)
		assert.ErrorIs(t, err, ErrNoEmployees)
	})

	t.Run("terminal status", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusCancelled))

		_, err := env.service.AssignEmployees(context.Background(), "apt-1", []string{"emp-1"}, admin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAcceptVehicleArrival(t *testing.T) {
	t.Run("employee accepts and work starts", func(t *testing.T) {
		apt := testAppointment("apt-1", domain.StatusConfirmed)
		env := newTestEnv(apt)

		got, err := env.service.AcceptVehicleArrival(context.Background(), "apt-1", employee)
		require.NoError(t, err)

		assert.Contains(t, got.AssignedEmployeeIDs, "emp-1")
		require.NotNil(t, got.VehicleArrivedAt)
		require.NotNil(t, got.VehicleAcceptedByEmployeeID)
		assert.Equal(t, "emp-1", *got.VehicleAcceptedByEmployeeID)

		assert.Equal(t, []string{"apt-1:emp-1"}, env.timeTracker.clockIns)
		require.Len(t, env.notifier.sent, 1)
		assert.Equal(t, "Vehicle received", env.notifier.sent[0].Title)
	})

	t.Run("customer denied", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusConfirmed))

		_, err := env.service.AcceptVehicleArrival(context.Background(), "apt-1", customer)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("arrival is set once", func(t *testing.T) {
		arrived := time.Date(2026, time.March, 9, 9, 55, 0, 0, time.Local)
		apt := testAppointment("apt-1", domain.StatusConfirmed)
		apt.VehicleArrivedAt = &arrived
		env := newTestEnv(apt)

		_, err := env.service.AcceptVehicleArrival(context.Background(), "apt-1", employee)
		assert.ErrorIs(t, err, ErrVehicleAlreadyAccepted)
	})

	t.Run("only confirmed appointments", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

		_, err := env.service.AcceptVehicleArrival(context.Background(), "apt-1", employee)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("instructions only change skips revalidation", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

		note := "Please check the brakes too"
		got, err := env.service.Update(context.Background(), "apt-1", &models.UpdateAppointmentRequest{SpecialInstructions: &note}, customer)
		require.NoError(t, err)

		require.NotNil(t, got.SpecialInstructions)
		assert.Equal(t, note, *got.SpecialInstructions)
		assert.Equal(t, 0, env.validator.calls)
		assert.Equal(t, 0, env.resolver.calls)
	})

	t.Run("time change revalidates and reassigns bay", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusConfirmed))

		newTime := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local)
		got, err := env.service.Update(context.Background(), "apt-1", &models.UpdateAppointmentRequest{RequestedDateTime: &newTime}, customer)
		require.NoError(t, err)

		assert.Equal(t, newTime.Format(domain.DateTimeFormat), got.RequestedDateTime)
		require.NotNil(t, got.AssignedBayID)
		assert.Equal(t, "bay-2", *got.AssignedBayID)
		assert.Equal(t, 1, env.validator.calls)
		assert.Equal(t, 1, env.resolver.calls)
	})

	t.Run("in progress cannot be updated", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusInProgress))

		note := "too late"
		_, err := env.service.Update(context.Background(), "apt-1", &models.UpdateAppointmentRequest{SpecialInstructions: &note}, customer)
		assert.ErrorIs(t, err, ErrCannotUpdate)
	})

	t.Run("other customer denied", func(t *testing.T) {
		env := newTestEnv(testAppointment("apt-1", domain.StatusPending))

		note := "not yours"
		_, err := env.service.Update(context.Background(), "apt-1", &models.UpdateAppointmentRequest{SpecialInstructions: &note}, stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetEmployeeSchedule(t *testing.T) {
	apt := testAppointment("apt-1", domain.StatusConfirmed)
	apt.AssignedEmployeeIDs = []string{"emp-1"}
	outside := testAppointment("apt-2", domain.StatusConfirmed)
	outside.AssignedEmployeeIDs = []string{"emp-1"}
	outside.RequestedDateTime = time.Date(2026, time.April, 1, 10, 0, 0, 0, time.Local)

	env := newTestEnv(apt, outside)

	t.Run("employee sees own schedule within range", func(t *testing.T) {
		got, err := env.service.GetEmployeeSchedule(context.Background(), "emp-1", "2026-03-09", "2026-03-15", employee)
		require.NoError(t, err)

		assert.Equal(t, "emp-1", got.EmployeeID)
		require.Len(t, got.Appointments, 1)
		assert.Equal(t, "apt-1", got.Appointments[0].ID)
	})

	t.Run("admin sees any schedule", func(t *testing.T) {
		got, err := env.service.GetEmployeeSchedule(context.Background(), "emp-1", "2026-03-09", "2026-03-15", admin)
		require.NoError(t, err)
		assert.Len(t, got.Appointments, 1)
	})

	t.Run("employee cannot see others", func(t *testing.T) {
		_, err := env.service.GetEmployeeSchedule(context.Background(), "emp-2", "2026-03-09", "2026-03-15", employee)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := env.service.GetEmployeeSchedule(context.Background(), "emp-1", "2026-03-15", "2026-03-09", employee)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetMonthlyCalendar(t *testing.T) {
	apt := testAppointment("apt-1", domain.StatusConfirmed)
	second := testAppointment("apt-2", domain.StatusPending)
	second.RequestedDateTime = time.Date(2026, time.March, 9, 15, 0, 0, 0, time.Local)

	env := newTestEnv(apt, second)
	env.schedule.holidays = []*domain.Holiday{
		{Date: time.Date(2026, time.March, 8, 0, 0, 0, 0, time.Local), Name: "International Women's Day"},
	}

	t.Run("staff only", func(t *testing.T) {
		_, err := env.service.GetMonthlyCalendar(context.Background(), 2026, 3, customer)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("month bounds", func(t *testing.T) {
		_, err := env.service.GetMonthlyCalendar(context.Background(), 2026, 13, admin)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("builds days and statistics", func(t *testing.T) {
		got, err := env.service.GetMonthlyCalendar(context.Background(), 2026, 3, employee)
		require.NoError(t, err)

		assert.Equal(t, 2026, got.Year)
		assert.Equal(t, 3, got.Month)
		require.Len(t, got.Days, 31)

		ninth := got.Days[8]
		assert.Equal(t, "2026-03-09", ninth.Date)
		assert.Equal(t, 2, ninth.AppointmentCount)

		eighth := got.Days[7]
		assert.True(t, eighth.IsHoliday)
		require.NotNil(t, eighth.HolidayName)
		assert.Equal(t, "International Women's Day", *eighth.HolidayName)
		assert.Equal(t, 0, eighth.AppointmentCount)

		assert.Equal(t, 2, got.Statistics.TotalAppointments)
		assert.Equal(t, 1, got.Statistics.ByStatus[string(domain.StatusConfirmed)])
		assert.Equal(t, 1, got.Statistics.ByStatus[string(domain.StatusPending)])
	})
}
