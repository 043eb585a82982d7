package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtorque/appointment-service/internal/domain"
)

func newTestResolver(bays *fakeBayRepo, appointments *fakeAppointmentRepo) *BayResolver {
	return NewBayResolver(bays, appointments, nopLogger{})
}

func TestResolveBay_FirstFreeBayWins(t *testing.T) {
	start := mondayAt(10, 0)
	end := start.Add(time.Hour)

	bays := &fakeBayRepo{bays: []*domain.ServiceBay{
		bay("bay-1", "BAY-01", "Bay 1"),
		bay("bay-2", "BAY-02", "Bay 2"),
	}}
	appointments := &fakeAppointmentRepo{byBay: map[string][]*domain.Appointment{}}

	r := newTestResolver(bays, appointments)

	got, err := r.ResolveBay(context.Background(), start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, "bay-1", got.ID)
}

func TestResolveBay_SkipsOccupiedBay(t *testing.T) {
	start := mondayAt(10, 0)
	end := start.Add(time.Hour)

	bays := &fakeBayRepo{bays: []*domain.ServiceBay{
		bay("bay-1", "BAY-01", "Bay 1"),
		bay("bay-2", "BAY-02", "Bay 2"),
	}}
	appointments := &fakeAppointmentRepo{byBay: map[string][]*domain.Appointment{
		"bay-1": {bookedAt("apt-1", "bay-1", mondayAt(10, 30))},
	}}

	r := newTestResolver(bays, appointments)

	got, err := r.ResolveBay(context.Background(), start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, "bay-2", got.ID)
}

func TestResolveBay_NoBayAvailable(t *testing.T) {
	start := mondayAt(10, 0)
	end := start.Add(time.Hour)

	bays := &fakeBayRepo{bays: []*domain.ServiceBay{bay("bay-1", "BAY-01", "Bay 1")}}
	appointments := &fakeAppointmentRepo{byBay: map[string][]*domain.Appointment{
		"bay-1": {bookedAt("apt-1", "bay-1", mondayAt(9, 30))},
	}}

	r := newTestResolver(bays, appointments)

	_, err := r.ResolveBay(context.Background(), start, end, nil)
	assert.ErrorIs(t, err, ErrNoBayAvailable)
}

func TestResolveBay_BoundaryTouchingDoesNotConflict(t *testing.T) {
	// Существующая запись занимает 09:00-10:00; окно 10:00-11:00 не конфликтует
	start := mondayAt(10, 0)
	end := start.Add(time.Hour)

	bays := &fakeBayRepo{bays: []*domain.ServiceBay{bay("bay-1", "BAY-01", "Bay 1")}}
	appointments := &fakeAppointmentRepo{byBay: map[string][]*domain.Appointment{
		"bay-1": {bookedAt("apt-1", "bay-1", mondayAt(9, 0))},
	}}

	r := newTestResolver(bays, appointments)

	got, err := r.ResolveBay(context.Background(), start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, "bay-1", got.ID)
}

func TestResolveBay_ExcludesOwnAppointment(t *testing.T) {
	// Перенос записи не должен конфликтовать с её же текущим окном
	start := mondayAt(10, 0)
	end := start.Add(time.Hour)
	ownID := "apt-own"

	bays := &fakeBayRepo{bays: []*domain.ServiceBay{bay("bay-1", "BAY-01", "Bay 1")}}
	appointments := &fakeAppointmentRepo{byBay: map[string][]*domain.Appointment{
		"bay-1": {bookedAt(ownID, "bay-1", mondayAt(10, 0))},
	}}

	r := newTestResolver(bays, appointments)

	got, err := r.ResolveBay(context.Background(), start, end, &ownID)
	require.NoError(t, err)
	assert.Equal(t, "bay-1", got.ID)
}

func TestIsBayFree(t *testing.T) {
	start := mondayAt(14, 0)
	end := start.Add(time.Hour)

	bays := &fakeBayRepo{bays: []*domain.ServiceBay{bay("bay-1", "BAY-01", "Bay 1")}}
	appointments := &fakeAppointmentRepo{byBay: map[string][]*domain.Appointment{
		"bay-1": {bookedAt("apt-1", "bay-1", mondayAt(14, 30))},
	}}

	r := newTestResolver(bays, appointments)

	free, err := r.IsBayFree(context.Background(), "bay-1", start, end, nil)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = r.IsBayFree(context.Background(), "bay-1", mondayAt(16, 0), mondayAt(17, 0), nil)
	require.NoError(t, err)
	assert.True(t, free)
}
