package complete_settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/catalog"
	offeringRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/offering"
	saleRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/sale"
	"github.com/m04kA/SMC-BoxScheduler/internal/usecase/open_cart"
	"github.com/m04kA/SMC-BoxScheduler/pkg/logger"
	"github.com/m04kA/SMC-BoxScheduler/pkg/ptr"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

type memAppointments struct{ items map[int64]*domain.Appointment }

func (m *memAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memAppointments) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	a, ok := m.items[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

type fakeOfferings struct{}

func (fakeOfferings) GetByID(_ context.Context, id int64) (*domain.Offering, error) {
	if id != 10 {
		return nil, offeringRepo.ErrOfferingNotFound
	}
	return &domain.Offering{ID: 10, Name: "Massage", Kind: domain.OfferingTopLevel, Price: 5000}, nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	if id != 30 {
		return nil, catalogRepo.ErrProductNotFound
	}
	return &domain.Product{ID: 30, Name: "Oil", Price: 1000}, nil
}

func (fakeCatalog) GetPaymentMethodByID(_ context.Context, id int64) (*domain.PaymentMethod, error) {
	return &domain.PaymentMethod{ID: id, Name: "cash", Active: true}, nil
}

type memSales struct {
	items []*domain.Sale
	err   error
}

func (m *memSales) Create(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, existing := range m.items {
		if existing.AppointmentID == s.AppointmentID {
			return nil, saleRepo.ErrSaleExists
		}
	}
	stored := *s
	stored.ID = int64(len(m.items) + 1)
	m.items = append(m.items, &stored)
	return &stored, nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakePublisher struct{ keys []string }

func (f *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	f.keys = append(f.keys, key)
	return nil
}

type fakeMetrics struct {
	completed  int
	unbalanced int
	amount     int64
}

func (f *fakeMetrics) SettlementCompleted(total int64) { f.completed++; f.amount += total }
func (f *fakeMetrics) SettlementUnbalanced()           { f.unbalanced++ }

type fixture struct {
	uc           *UseCase
	appointments *memAppointments
	sales        *memSales
	publisher    *fakePublisher
	metrics      *fakeMetrics
}

func newFixture(status domain.AppointmentStatus) *fixture {
	f := &fixture{
		appointments: &memAppointments{items: map[int64]*domain.Appointment{
			1: {ID: 1, Date: types.MustDate(2025, 6, 11), Time: "10:00", Box: "Box 1",
				Status: status, OfferingID: ptr.Ptr(int64(10)), Price: 5000},
		}},
		sales:     &memSales{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	opener := open_cart.NewUseCase(f.appointments, fakeOfferings{}, fakeCatalog{}, logger.NewNop())
	f.uc = NewUseCase(opener, f.sales, f.appointments, fakeTx{}, f.publisher, f.metrics, logger.NewNop())
	return f
}

func pay(amount domain.Money) open_cart.Operation {
	return open_cart.Operation{Type: open_cart.OpAddPayment, MethodID: 1, Amount: amount}
}

func TestExecute_UnbalancedIsRejected(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Operations: []open_cart.Operation{pay(4999)}})

	var unbalanced *domain.UnbalancedSettlementError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, domain.Money(5000), unbalanced.CartTotal)
	assert.Equal(t, domain.Money(4999), unbalanced.PaymentsTotal)

	assert.Empty(t, f.sales.items)
	assert.Equal(t, domain.StatusConfirmed, f.appointments.items[1].Status)
	assert.Equal(t, 1, f.metrics.unbalanced)
	assert.Empty(t, f.publisher.keys)
}

func TestExecute_BalancedCompletes(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Operations: []open_cart.Operation{pay(5000)}})
	require.NoError(t, err)

	require.Len(t, f.sales.items, 1)
	sale := f.sales.items[0]
	assert.Equal(t, domain.Money(5000), sale.Total)
	assert.Equal(t, int64(1), sale.AppointmentID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, domain.LineOffering, sale.Items[0].Kind)
	require.Len(t, sale.Payments, 1)

	_, err = uuid.Parse(sale.ReceiptNumber)
	assert.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, f.appointments.items[1].Status)
	assert.Equal(t, domain.StatusCompleted, resp.Status)
	assert.Equal(t, 1, f.metrics.completed)
	assert.Equal(t, int64(5000), f.metrics.amount)
	assert.Equal(t, []string{domain.EventSaleCompleted}, f.publisher.keys)
}

func TestExecute_SplitPaymentsWithExtraItems(t *testing.T) {
	f := newFixture(domain.StatusReserved)

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Operations: []open_cart.Operation{
		{Type: open_cart.OpAddItem, Kind: domain.LineProduct, RefID: 30},
		{Type: open_cart.OpSetQuantity, Index: 1, Quantity: 2},
		pay(4000),
		pay(3000),
	}})
	require.NoError(t, err)
	require.Len(t, f.sales.items, 1)
	assert.Equal(t, domain.Money(7000), f.sales.items[0].Total)
	assert.Len(t, f.sales.items[0].Payments, 2)
}

func TestExecute_TerminalAppointmentsCannotBeSettled(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(status)

			_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Operations: []open_cart.Operation{pay(5000)}})
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "status", verr.Field)
			assert.Empty(t, f.sales.items)
		})
	}
}

func TestExecute_SecondSettlementRejected(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	f.sales.items = append(f.sales.items, &domain.Sale{ID: 1, AppointmentID: 1})

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Operations: []open_cart.Operation{pay(5000)}})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.StatusConfirmed, f.appointments.items[1].Status)
}

func TestExecute_StorageFailure(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	f.sales.err = errors.New("disk full")

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Operations: []open_cart.Operation{pay(5000)}})
	require.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.publisher.keys)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
