package update_appointment

import (
	"context"
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
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

type memAppointments struct {
	items map[int64]*domain.Appointment
}

func (m *memAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
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

func (m *memAppointments) Update(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if _, ok := m.items[a.ID]; !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	stored := *a
	m.items[a.ID] = &stored
	return &stored, nil
}

type fakeOfferings struct{ items []*domain.Offering }

func (f *fakeOfferings) List(context.Context) ([]*domain.Offering, error) { return f.items, nil }

type fakeProfessionals struct{}

func (fakeProfessionals) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	if id != 1 {
		return nil, professionalRepo.ErrProfessionalNotFound
	}
	return &domain.Professional{ID: 1}, nil
}

type fakeClients struct{}

func (fakeClients) GetClientByID(_ context.Context, id int64) (*domain.Client, error) {
	if id != 100 {
		return nil, catalogRepo.ErrClientNotFound
	}
	return &domain.Client{ID: 100}, nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct{ conflicts int }

func (f *fakeMetrics) BookingConflict(string) { f.conflicts++ }

var june11 = types.MustDate(2025, 6, 11)

func newUseCase(opts Options, appointments ...*domain.Appointment) (*UseCase, *memAppointments, *fakeMetrics) {
	store := &memAppointments{items: make(map[int64]*domain.Appointment)}
	for _, a := range appointments {
		store.items[a.ID] = a
	}
	opts.Boxes = []string{"Box 1", "Box 2"}

	offerings := &fakeOfferings{items: []*domain.Offering{
		{ID: 10, Name: "Massage", Kind: domain.OfferingTopLevel, DurationMinutes: 60, Windows: []domain.AvailabilityWindow{{
			StartDate: types.MustDate(2025, 6, 1), EndDate: types.MustDate(2025, 6, 30),
			StartTime: "09:00", EndTime: "12:00", Box: "Box 1",
		}}},
	}}

	clock := civilclock.New(civilclock.FixedClock{At: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}, -180)
	metrics := &fakeMetrics{}
	uc := NewUseCase(store, offerings, fakeProfessionals{}, fakeClients{}, fakeTx{}, clock, metrics, opts, logger.NewNop())
	return uc, store, metrics
}

func appointment(id int64, t types.TimeString, box string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{ID: id, Date: june11, Time: t, Box: box, DurationMinutes: 30, Status: status}
}

func TestExecute_MoveToFreeCell(t *testing.T) {
	uc, store, _ := newUseCase(Options{}, appointment(1, "10:00", "Box 1", domain.StatusReserved))

	a, err := uc.Execute(context.Background(), &Request{ID: 1, Time: ptr.Ptr(types.TimeString("11:00"))})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), a.Time)
	assert.Equal(t, types.TimeString("11:00"), store.items[1].Time)
}

func TestExecute_MoveIntoOccupiedCell(t *testing.T) {
	uc, _, metrics := newUseCase(Options{},
		appointment(1, "10:00", "Box 1", domain.StatusReserved),
		appointment(2, "11:00", "Box 1", domain.StatusConfirmed),
	)

	_, err := uc.Execute(context.Background(), &Request{ID: 1, Time: ptr.Ptr(types.TimeString("11:00"))})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(2), conflict.ExistingID)
	assert.Equal(t, 1, metrics.conflicts)
}

func TestExecute_UnchangedCellDoesNotConflictWithSelf(t *testing.T) {
	uc, _, _ := newUseCase(Options{}, appointment(1, "10:00", "Box 1", domain.StatusReserved))

	a, err := uc.Execute(context.Background(), &Request{ID: 1, Note: ptr.Ptr("bring towel"), DurationMinutes: ptr.Ptr(45)})
	require.NoError(t, err)
	require.NotNil(t, a.Note)
	assert.Equal(t, "bring towel", *a.Note)
	assert.Equal(t, 45, a.DurationMinutes)
}

func TestExecute_MoveIntoPast(t *testing.T) {
	uc, _, _ := newUseCase(Options{}, appointment(1, "10:00", "Box 1", domain.StatusReserved))

	_, err := uc.Execute(context.Background(), &Request{ID: 1, Date: ptr.Ptr(types.MustDate(2025, 6, 9))})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_PastAppointmentEditableInPlace(t *testing.T) {
	past := appointment(1, "10:00", "Box 1", domain.StatusConfirmed)
	past.Date = types.MustDate(2025, 6, 1)
	uc, _, _ := newUseCase(Options{}, past)

	_, err := uc.Execute(context.Background(), &Request{ID: 1, Deposit: ptr.Ptr(domain.Money(1000))})
	assert.NoError(t, err)
}

func TestExecute_ReactivationChecksCell(t *testing.T) {
	uc, _, _ := newUseCase(Options{},
		appointment(1, "10:00", "Box 1", domain.StatusCancelled),
		appointment(2, "10:00", "Box 1", domain.StatusReserved),
	)

	_, err := uc.Execute(context.Background(), &Request{ID: 1, Status: ptr.Ptr(domain.StatusReserved)})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_StatusWrites(t *testing.T) {
	tests := []struct {
		name    string
		enforce bool
		from    domain.AppointmentStatus
		to      domain.AppointmentStatus
		wantErr bool
	}{
		{name: "permissive backwards", from: domain.StatusConfirmed, to: domain.StatusAvailable},
		{name: "permissive out of cancelled", from: domain.StatusCancelled, to: domain.StatusReserved},
		{name: "completed is final", from: domain.StatusCompleted, to: domain.StatusConfirmed, wantErr: true},
		{name: "completed to completed", from: domain.StatusCompleted, to: domain.StatusCompleted},
		{name: "enforced forward", enforce: true, from: domain.StatusReserved, to: domain.StatusConfirmed},
		{name: "enforced backwards", enforce: true, from: domain.StatusConfirmed, to: domain.StatusReserved, wantErr: true},
		{name: "enforced out of cancelled", enforce: true, from: domain.StatusCancelled, to: domain.StatusReserved, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newUseCase(Options{EnforceTransitions: tt.enforce}, appointment(1, "10:00", "Box 1", tt.from))

			a, err := uc.Execute(context.Background(), &Request{ID: 1, Status: ptr.Ptr(tt.to)})
			if tt.wantErr {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "status", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, a.Status)
		})
	}
}

func TestExecute_OfferingRechecked(t *testing.T) {
	withOffering := appointment(1, "10:00", "Box 1", domain.StatusReserved)
	withOffering.OfferingID = ptr.Ptr(int64(10))
	uc, _, _ := newUseCase(Options{}, withOffering)

	_, err := uc.Execute(context.Background(), &Request{ID: 1, Box: ptr.Ptr("Box 2")})
	assert.ErrorIs(t, err, domain.ErrNotAvailable)

	a, err := uc.Execute(context.Background(), &Request{ID: 1, Box: ptr.Ptr("Box 2"), OfferingID: ptr.Ptr(int64(0))})
	require.NoError(t, err)
	assert.Nil(t, a.OfferingID)
	assert.Equal(t, "Box 2", a.Box)
}

func TestExecute_References(t *testing.T) {
	uc, _, _ := newUseCase(Options{}, appointment(1, "10:00", "Box 1", domain.StatusReserved))

	_, err := uc.Execute(context.Background(), &Request{ID: 1, ProfessionalID: ptr.Ptr(int64(7))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{ID: 1, ClientID: ptr.Ptr(int64(7))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	a, err := uc.Execute(context.Background(), &Request{ID: 1, ProfessionalID: ptr.Ptr(int64(1)), ClientID: ptr.Ptr(int64(100))})
	require.NoError(t, err)
	assert.Equal(t, int64(1), *a.ProfessionalID)
	assert.Equal(t, int64(100), *a.ClientID)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := newUseCase(Options{})

	_, err := uc.Execute(context.Background(), &Request{ID: 42, Note: ptr.Ptr("x")})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(42), nf.ID)
}

func TestExecute_StrictOverlapIgnoresSelf(t *testing.T) {
	uc, _, _ := newUseCase(Options{StrictOverlap: true},
		appointment(1, "10:00", "Box 1", domain.StatusReserved),
		appointment(2, "11:00", "Box 1", domain.StatusReserved),
	)

	_, err := uc.Execute(context.Background(), &Request{ID: 1, DurationMinutes: ptr.Ptr(60)})
	assert.NoError(t, err, "10:00+60 touches 11:00")

	_, err = uc.Execute(context.Background(), &Request{ID: 1, DurationMinutes: ptr.Ptr(90)})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
