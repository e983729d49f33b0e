package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1122padelclub/padel-app-sub002/internal/availability"
	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	"github.com/1122padelclub/padel-app-sub002/internal/infra/lock"
	"github.com/1122padelclub/padel-app-sub002/internal/integrations/events"
	"github.com/1122padelclub/padel-app-sub002/pkg/ptr"
	"github.com/1122padelclub/padel-app-sub002/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeTables struct {
	tables []*domain.Table
	err    error
}

func (f *fakeTables) ListByVenue(_ context.Context, _ string) ([]*domain.Table, error) {
	return f.tables, f.err
}

type fakeReservations struct {
	records []*domain.Reservation
	created []*domain.Reservation
	listed  int
}

func (f *fakeReservations) ListByWindow(_ context.Context, _ domain.ReservationWindow) ([]*domain.Reservation, error) {
	f.listed++
	return f.records, nil
}

func (f *fakeReservations) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	copied := *r
	copied.ID = fmt.Sprintf("r-%d", len(f.created)+1)
	f.created = append(f.created, &copied)
	return &copied, nil
}

type fakeSettings struct {
	settings availability.Settings
	venue    *domain.VenueSettings
}

func (f fakeSettings) Settings(_ context.Context, _ string) (availability.Settings, *domain.VenueSettings, error) {
	return f.settings, f.venue, nil
}

type fakeLocker struct {
	acquired int
	released int
	err      error
}

func (f *fakeLocker) Acquire(_ context.Context, _, _ string) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	f.acquired++
	return func() { f.released++ }, nil
}

type fakePublisher struct {
	published []events.ReservationChanged
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, event events.ReservationChanged) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

type fixture struct {
	uc           *UseCase
	reservations *fakeReservations
	locker       *fakeLocker
	publisher    *fakePublisher
}

// понедельник 2024-01-01 10:00 UTC
var now = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func testTables() []*domain.Table {
	return []*domain.Table{
		{ID: "t1", VenueID: "venue-1", Number: "1", Capacity: 2},
		{ID: "t2", VenueID: "venue-1", Number: "2", Capacity: 4},
		{ID: "t3", VenueID: "venue-1", Number: "3", Capacity: 6},
	}
}

func newFixture(venue *domain.VenueSettings, records ...*domain.Reservation) *fixture {
	settings := availability.DefaultSettings()
	if venue == nil {
		venue = &domain.VenueSettings{VenueID: "venue-1"}
	}
	settings, err := settings.WithVenue(venue)
	if err != nil {
		panic(err)
	}

	f := &fixture{
		reservations: &fakeReservations{records: records},
		locker:       &fakeLocker{},
		publisher:    &fakePublisher{},
	}
	f.uc = NewUseCase(
		&fakeTables{tables: testTables()},
		f.reservations,
		fakeSettings{settings: settings, venue: venue},
		f.locker,
		f.publisher,
		txmanager.Passthrough{},
		nil,
		nopLogger{},
	)
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func validRequest() *Request {
	return &Request{
		VenueID:      "venue-1",
		Date:         "2024-01-01",
		Time:         "19:00",
		PartySize:    3,
		CustomerName: "  Ana  ",
	}
}

func bound(id, tableID string, party int) *domain.Reservation {
	start := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ID:        id,
		VenueID:   "venue-1",
		TableID:   ptr.Ptr(tableID),
		PartySize: party,
		StartAt:   &start,
		Status:    domain.StatusConfirmed,
	}
}

func TestExecute_AssignsBestTable(t *testing.T) {
	f := newFixture(nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	r := resp.Reservation
	assert.Equal(t, domain.AdmissionTable, resp.Path)
	require.NotNil(t, r.TableID)
	assert.Equal(t, "t2", *r.TableID)
	assert.Equal(t, "2", r.TableNumber)
	assert.Equal(t, "Ana", r.CustomerName)
	assert.Equal(t, domain.StatusPending, r.Status)
	assert.Equal(t, 120, r.DurationMinutes)
	assert.True(t, r.StartAt.Equal(time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)))
	assert.True(t, r.EndAt.Equal(time.Date(2024, 1, 1, 21, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-01", r.ReservationDate)
	assert.Equal(t, "19:00", r.ReservationTime)

	assert.Equal(t, 1, f.locker.acquired)
	assert.Equal(t, 1, f.locker.released)
	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, "r-1", f.publisher.published[0].ReservationID)
	assert.Equal(t, "2024-01-01", f.publisher.published[0].Date)
}

func TestExecute_AutoConfirmAndCustomDuration(t *testing.T) {
	f := newFixture(&domain.VenueSettings{VenueID: "venue-1", AutoConfirm: true})

	req := validRequest()
	req.DurationMinutes = 90
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
	assert.Equal(t, 90, resp.Reservation.DurationMinutes)
}

func TestExecute_RequestedTable(t *testing.T) {
	f := newFixture(nil)

	req := validRequest()
	req.TableID = ptr.Ptr("t3")
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "t3", *resp.Reservation.TableID)

	req.TableID = ptr.Ptr("t1")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTableNotAvailable)
	assert.Len(t, f.reservations.created, 1)
}

func TestExecute_PooledWhenNoTableFits(t *testing.T) {
	f := newFixture(nil)

	req := validRequest()
	req.PartySize = 8
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.AdmissionPool, resp.Path)
	assert.Nil(t, resp.Reservation.TableID)
	assert.Equal(t, domain.UnassignedTableLabel, resp.Reservation.TableNumber)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	f := newFixture(nil, bound("a", "t1", 2), bound("b", "t2", 4), bound("c", "t3", 6))

	req := validRequest()
	req.PartySize = 2
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Empty(t, f.reservations.created)
	assert.Empty(t, f.publisher.published)
	assert.Equal(t, 1, f.locker.released)
}

func TestExecute_RequireSpecificTable(t *testing.T) {
	f := newFixture(&domain.VenueSettings{VenueID: "venue-1", RequireSpecificTable: true})

	req := validRequest()
	req.PartySize = 8
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"missing venue", func(r *Request) { r.VenueID = " " }},
		{"zero party", func(r *Request) { r.PartySize = 0 }},
		{"huge party", func(r *Request) { r.PartySize = domain.MaxPartySize + 1 }},
		{"bad date", func(r *Request) { r.Date = "01/01/2024" }},
		{"bad time", func(r *Request) { r.Time = "25:00" }},
		{"short duration", func(r *Request) { r.DurationMinutes = 10 }},
		{"missing name", func(r *Request) { r.CustomerName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.locker.acquired)
		})
	}
}

func TestExecute_DateAndTimeRules(t *testing.T) {
	tests := []struct {
		name    string
		venue   *domain.VenueSettings
		date    string
		time    string
		wantErr error
	}{
		{"past date", nil, "2023-12-31", "19:00", ErrInvalidDate},
		{"beyond advance limit", &domain.VenueSettings{AdvanceBookingDays: 7}, "2024-01-10", "19:00", ErrDateTooFarInFuture},
		{"closed weekday", &domain.VenueSettings{ClosedWeekdays: []time.Weekday{time.Monday}}, "2024-01-01", "19:00", ErrVenueClosed},
		{"before opening", nil, "2024-01-02", "11:00", ErrOutsideServiceHours},
		{"after closing", nil, "2024-01-02", "23:30", ErrOutsideServiceHours},
		{"already started", nil, "2024-01-01", "09:30", ErrOutsideServiceHours},
		{"min notice", &domain.VenueSettings{MinBookingNoticeMinutes: 180}, "2024-01-01", "12:30", ErrTooLateToBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.venue)
			req := validRequest()
			req.Date = tt.date
			req.Time = tt.time

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.reservations.created)
		})
	}
}

func TestExecute_AfterMidnightBelongsToPreviousService(t *testing.T) {
	f := newFixture(&domain.VenueSettings{VenueID: "venue-1", OpenTime: "19:00", CloseTime: "01:00"})

	// 00:30 смены 1 января - это ночь на 2 января
	req := validRequest()
	req.Date = "2024-01-01"
	req.Time = "00:30"
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Reservation.StartAt.Equal(time.Date(2024, 1, 2, 0, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-01", resp.Reservation.ReservationDate)

	// после закрытия смены
	req = validRequest()
	req.Date = "2024-01-01"
	req.Time = "03:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideServiceHours)
}

func TestExecute_VenueTimezone(t *testing.T) {
	f := newFixture(&domain.VenueSettings{VenueID: "venue-1", Timezone: "America/Bogota"})

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	// 19:00 в Боготе = 00:00 UTC следующего дня
	assert.True(t, resp.Reservation.StartAt.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestExecute_LockBusy(t *testing.T) {
	f := newFixture(nil)
	f.locker.err = fmt.Errorf("%w: key", lock.ErrLockBusy)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Zero(t, f.reservations.listed)

	f.locker.err = fmt.Errorf("%w: down", lock.ErrLockBackend)
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(nil)
	f.publisher.err = errors.New("nats down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp.Reservation)
	assert.Len(t, f.reservations.created, 1)
}

func TestExecute_SequentialBookingsFillTables(t *testing.T) {
	f := newFixture(&domain.VenueSettings{VenueID: "venue-1", RequireSpecificTable: true})

	req := validRequest()
	req.PartySize = 4
	var assigned []string
	for i := 0; i < 3; i++ {
		// созданные брони видны следующему запросу
		f.reservations.records = f.reservations.created
		resp, err := f.uc.Execute(context.Background(), req)
		if err != nil {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			break
		}
		assigned = append(assigned, *resp.Reservation.TableID)
	}

	assert.Equal(t, []string{"t2", "t3"}, assigned)
}

// sharedReservations хранилище, общее для параллельных запросов
type sharedReservations struct {
	mu      sync.Mutex
	created []*domain.Reservation
}

func (s *sharedReservations) ListByWindow(_ context.Context, _ domain.ReservationWindow) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Reservation(nil), s.created...), nil
}

func (s *sharedReservations) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	// задержка между проверкой и записью расширяет окно гонки
	time.Sleep(5 * time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *r
	copied.ID = fmt.Sprintf("r-%d", len(s.created)+1)
	s.created = append(s.created, &copied)
	return &copied, nil
}

func TestExecute_ConcurrentRequestsDoNotShareLastTable(t *testing.T) {
	venue := &domain.VenueSettings{VenueID: "venue-1", RequireSpecificTable: true}
	settings, err := availability.DefaultSettings().WithVenue(venue)
	require.NoError(t, err)

	repo := &sharedReservations{}
	uc := NewUseCase(
		&fakeTables{tables: []*domain.Table{{ID: "t1", VenueID: "venue-1", Number: "1", Capacity: 4}}},
		repo,
		fakeSettings{settings: settings, venue: venue},
		lock.NewLocalLocker(),
		&fakePublisher{},
		txmanager.Passthrough{},
		nil,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: now}

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.PartySize = 4
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotNotAvailable):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "t1", *repo.created[0].TableID)
}
