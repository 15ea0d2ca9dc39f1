package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/catalog"
	professionalRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/professional"
	"github.com/m04kA/SMC-BoxScheduler/pkg/civilclock"
	"github.com/m04kA/SMC-BoxScheduler/pkg/logger"
	"github.com/m04kA/SMC-BoxScheduler/pkg/ptr"
	"github.com/m04kA/SMC-BoxScheduler/pkg/txmanager"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// memAppointments хранилище записей в памяти с уникальностью активной ячейки
type memAppointments struct {
	items     []*domain.Appointment
	nextID    int64
	createErr error
}

func (m *memAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.items {
		if existing.IsActive() && existing.Cell() == a.Cell() {
			return nil, appointmentRepo.ErrCellOccupied
		}
	}
	m.nextID++
	stored := *a
	stored.ID = m.nextID
	m.items = append(m.items, &stored)
	return &stored, nil
}

func (m *memAppointments) GetActiveByCell(_ context.Context, cell domain.Cell, excludeID int64) (*domain.Appointment, error) {
	for _, a := range m.items {
		if a.IsActive() && a.ID != excludeID && a.Cell() == cell {
			return a, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (m *memAppointments) ListActiveByDate(_ context.Context, date types.Date, box string) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range m.items {
		if a.IsActive() && a.Date == date && (box == "" || a.Box == box) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeOfferings struct{ items []*domain.Offering }

func (f *fakeOfferings) List(context.Context) ([]*domain.Offering, error) { return f.items, nil }

type fakeProfessionals struct{ ids map[int64]bool }

func (f *fakeProfessionals) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	if !f.ids[id] {
		return nil, professionalRepo.ErrProfessionalNotFound
	}
	return &domain.Professional{ID: id, Name: "Ana"}, nil
}

type fakeClients struct{ ids map[int64]bool }

func (f *fakeClients) GetClientByID(_ context.Context, id int64) (*domain.Client, error) {
	if !f.ids[id] {
		return nil, catalogRepo.ErrClientNotFound
	}
	return &domain.Client{ID: id, Name: "Client"}, nil
}

type fakeTx struct{ err error }

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakePublisher struct{ keys []string }

func (f *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	f.keys = append(f.keys, key)
	return nil
}

type fakeMetrics struct {
	created   int
	conflicts int
}

func (f *fakeMetrics) AppointmentCreated(string) { f.created++ }
func (f *fakeMetrics) BookingConflict(string)    { f.conflicts++ }

type fixture struct {
	uc           *UseCase
	appointments *memAppointments
	tx           *fakeTx
	publisher    *fakePublisher
	metrics      *fakeMetrics
}

// now: 2025-06-10 09:00 по гражданскому времени UTC-3
func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	clock := civilclock.New(civilclock.FixedClock{At: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}, -180)
	offerings := &fakeOfferings{items: []*domain.Offering{
		{ID: 10, Name: "Massage", Kind: domain.OfferingTopLevel, DurationMinutes: 60, Price: 5000, Windows: []domain.AvailabilityWindow{{
			StartDate: types.MustDate(2025, 6, 1), EndDate: types.MustDate(2025, 6, 30),
			StartTime: "09:00", EndTime: "12:00", Box: "Box 1",
		}}},
		{ID: 11, Name: "Hot stones", Kind: domain.OfferingSub, ParentID: ptr.Ptr(int64(10)), DurationMinutes: 30, Price: 1500},
	}}

	if opts.Boxes == nil {
		opts.Boxes = []string{"Box 1", "Box 2"}
	}

	f := &fixture{
		appointments: &memAppointments{},
		tx:           &fakeTx{},
		publisher:    &fakePublisher{},
		metrics:      &fakeMetrics{},
	}
	f.uc = NewUseCase(
		f.appointments,
		offerings,
		&fakeProfessionals{ids: map[int64]bool{1: true}},
		&fakeClients{ids: map[int64]bool{100: true}},
		f.tx,
		clock,
		f.publisher,
		f.metrics,
		opts,
		logger.NewNop(),
	)
	return f
}

func request(date types.Date, t types.TimeString, box string) *Request {
	return &Request{Date: date, Time: t, Box: box}
}

var june11 = types.MustDate(2025, 6, 11)

func TestExecute_CreatesReservedWithDefaults(t *testing.T) {
	f := newFixture(t, Options{DefaultDurationMinutes: 45})

	a, err := f.uc.Execute(context.Background(), request(june11, "10:00", "Box 1"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, domain.StatusReserved, a.Status)
	assert.Equal(t, 45, a.DurationMinutes)
	assert.Equal(t, 1, f.metrics.created)
	assert.Equal(t, []string{domain.EventAppointmentCreated}, f.publisher.keys)
}

func TestExecute_SameCellConflicts(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, request(june11, "10:00", "Box 1"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(june11, "10:00", "Box 1"))
	require.Error(t, err)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.ExistingID)
	assert.Equal(t, 1, f.metrics.conflicts)

	_, err = f.uc.Execute(ctx, request(june11, "10:30", "Box 1"))
	assert.NoError(t, err, "adjacent time in the same box is a different cell")

	_, err = f.uc.Execute(ctx, request(june11, "10:00", "Box 2"))
	assert.NoError(t, err, "same time in another box is a different cell")
}

func TestExecute_CancelledAppointmentFreesCell(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, request(june11, "10:00", "Box 1"))
	require.NoError(t, err)
	f.appointments.items[0].Status = domain.StatusCancelled

	second, err := f.uc.Execute(ctx, request(june11, "10:00", "Box 1"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestExecute_PastIsRejected(t *testing.T) {
	tests := []struct {
		name string
		date types.Date
		time types.TimeString
		past bool
	}{
		{name: "yesterday", date: types.MustDate(2025, 6, 9), time: "23:00", past: true},
		{name: "today earlier", date: types.MustDate(2025, 6, 10), time: "08:30", past: true},
		{name: "today now", date: types.MustDate(2025, 6, 10), time: "09:00", past: false},
		{name: "today later", date: types.MustDate(2025, 6, 10), time: "11:00", past: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})

			_, err := f.uc.Execute(context.Background(), request(tt.date, tt.time, "Box 1"))
			if tt.past {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "date", verr.Field)
				assert.Empty(t, f.appointments.items)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecute_OfferingEligibility(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	req := request(june11, "10:00", "Box 1")
	req.OfferingID = ptr.Ptr(int64(10))
	a, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 60, a.DurationMinutes)
	assert.Equal(t, domain.Money(5000), a.Price)

	sub := request(june11, "11:00", "Box 1")
	sub.OfferingID = ptr.Ptr(int64(11))
	sub.Price = ptr.Ptr(domain.Money(1200))
	a, err = f.uc.Execute(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(1200), a.Price)

	outside := request(june11, "10:00", "Box 2")
	outside.OfferingID = ptr.Ptr(int64(10))
	_, err = f.uc.Execute(ctx, outside)
	var notAvailable *domain.NotAvailableError
	require.ErrorAs(t, err, &notAvailable)
	assert.Equal(t, int64(10), notAvailable.OfferingID)

	missing := request(june11, "12:00", "Box 1")
	missing.OfferingID = ptr.Ptr(int64(99))
	_, err = f.uc.Execute(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_OccupiedCellWinsOverUnavailableOffering(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, request(june11, "10:00", "Box 2"))
	require.NoError(t, err)

	req := request(june11, "10:00", "Box 2")
	req.OfferingID = ptr.Ptr(int64(10))
	_, err = f.uc.Execute(ctx, req)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.ExistingID)
	assert.NotErrorIs(t, err, domain.ErrNotAvailable)
	assert.Len(t, f.appointments.items, 1)
}

func TestExecute_References(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	req := request(june11, "10:00", "Box 1")
	req.ProfessionalID = ptr.Ptr(int64(2))
	_, err := f.uc.Execute(ctx, req)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "professional", nf.Entity)

	req = request(june11, "10:00", "Box 1")
	req.ClientID = ptr.Ptr(int64(101))
	_, err = f.uc.Execute(ctx, req)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "client", nf.Entity)

	req = request(june11, "10:00", "Box 1")
	req.ProfessionalID = ptr.Ptr(int64(1))
	req.ClientID = ptr.Ptr(int64(100))
	_, err = f.uc.Execute(ctx, req)
	assert.NoError(t, err)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   func() *Request
		field string
	}{
		{name: "unknown box", req: func() *Request { return request(june11, "10:00", "Box 9") }, field: "box"},
		{name: "bad time", req: func() *Request { return request(june11, "10:61", "Box 1") }, field: "time"},
		{name: "terminal status", field: "status", req: func() *Request {
			r := request(june11, "10:00", "Box 1")
			r.Status = ptr.Ptr(domain.StatusCompleted)
			return r
		}},
		{name: "negative deposit", field: "deposit", req: func() *Request {
			r := request(june11, "10:00", "Box 1")
			r.Deposit = -1
			return r
		}},
		{name: "price above limit", field: "price", req: func() *Request {
			r := request(june11, "10:00", "Box 1")
			r.Price = ptr.Ptr(domain.MaxAmount + 1)
			return r
		}},
		{name: "duration too short", field: "durationMinutes", req: func() *Request {
			r := request(june11, "10:00", "Box 1")
			r.DurationMinutes = ptr.Ptr(1)
			return r
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})

			_, err := f.uc.Execute(context.Background(), tt.req())
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestExecute_StrictOverlap(t *testing.T) {
	f := newFixture(t, Options{StrictOverlap: true})
	ctx := context.Background()

	req := request(june11, "10:00", "Box 1")
	req.DurationMinutes = ptr.Ptr(60)
	first, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(june11, "10:30", "Box 1"))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.ExistingID)

	_, err = f.uc.Execute(ctx, request(june11, "11:00", "Box 1"))
	assert.NoError(t, err, "touching intervals do not overlap")
}

func TestExecute_InitialStatus(t *testing.T) {
	f := newFixture(t, Options{})

	req := request(june11, "10:00", "Box 1")
	req.Status = ptr.Ptr(domain.StatusAvailable)
	a, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, a.Status)
}

func TestExecute_UniqueIndexViolationIsConflict(t *testing.T) {
	f := newFixture(t, Options{})
	f.appointments.createErr = appointmentRepo.ErrCellOccupied

	_, err := f.uc.Execute(context.Background(), request(june11, "10:00", "Box 1"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_SerializationFailureIsConflict(t *testing.T) {
	f := newFixture(t, Options{})
	f.tx.err = txmanager.ErrSerialization

	_, err := f.uc.Execute(context.Background(), request(june11, "10:00", "Box 1"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_InfrastructureFailure(t *testing.T) {
	f := newFixture(t, Options{})
	f.tx.err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), request(june11, "10:00", "Box 1"))
	require.ErrorIs(t, err, ErrInternal)
	assert.False(t, domain.IsDomainError(err))
	assert.Empty(t, f.publisher.keys)
}
