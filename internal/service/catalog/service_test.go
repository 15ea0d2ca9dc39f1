package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	offeringRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/offering"
	professionalRepo "github.com/m04kA/SMC-BoxScheduler/internal/infra/storage/professional"
	"github.com/m04kA/SMC-BoxScheduler/internal/service/catalog/models"
	"github.com/m04kA/SMC-BoxScheduler/pkg/logger"
	"github.com/m04kA/SMC-BoxScheduler/pkg/ptr"
)

type memOfferings struct{ items []*domain.Offering }

func (m *memOfferings) Create(_ context.Context, o *domain.Offering) (*domain.Offering, error) {
	o.ID = int64(len(m.items) + 1)
	m.items = append(m.items, o)
	return o, nil
}

func (m *memOfferings) GetByID(_ context.Context, id int64) (*domain.Offering, error) {
	for _, o := range m.items {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, offeringRepo.ErrOfferingNotFound
}

func (m *memOfferings) List(context.Context) ([]*domain.Offering, error) { return m.items, nil }

type memProfessionals struct {
	items []*domain.Professional
	inUse map[int64]bool
}

func (m *memProfessionals) Create(_ context.Context, p *domain.Professional) (*domain.Professional, error) {
	p.ID = int64(len(m.items) + 1)
	m.items = append(m.items, p)
	return p, nil
}

func (m *memProfessionals) List(context.Context) ([]*domain.Professional, error) { return m.items, nil }

func (m *memProfessionals) Delete(_ context.Context, id int64) error {
	if m.inUse[id] {
		return fmt.Errorf("%w: Delete - professional id=%d", professionalRepo.ErrProfessionalInUse, id)
	}
	for i, p := range m.items {
		if p.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return professionalRepo.ErrProfessionalNotFound
}

type memCatalog struct {
	clients  []*domain.Client
	products []*domain.Product
	methods  []*domain.PaymentMethod
}

func (m *memCatalog) CreateClient(_ context.Context, c *domain.Client) (*domain.Client, error) {
	c.ID = int64(len(m.clients) + 1)
	m.clients = append(m.clients, c)
	return c, nil
}

func (m *memCatalog) ListClients(context.Context) ([]*domain.Client, error) { return m.clients, nil }

func (m *memCatalog) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	p.ID = int64(len(m.products) + 1)
	m.products = append(m.products, p)
	return p, nil
}

func (m *memCatalog) ListProducts(context.Context) ([]*domain.Product, error) { return m.products, nil }

func (m *memCatalog) ListPaymentMethods(_ context.Context, activeOnly bool) ([]*domain.PaymentMethod, error) {
	var out []*domain.PaymentMethod
	for _, pm := range m.methods {
		if !activeOnly || pm.Active {
			out = append(out, pm)
		}
	}
	return out, nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newService() (*Service, *memOfferings, *memProfessionals, *memCatalog) {
	offerings := &memOfferings{}
	professionals := &memProfessionals{inUse: map[int64]bool{}}
	catalog := &memCatalog{methods: []*domain.PaymentMethod{
		{ID: 1, Name: "cash", Active: true},
		{ID: 2, Name: "voucher", Active: false},
	}}
	svc := NewService(offerings, professionals, catalog, fakeTx{}, []string{"Box 1", "Box 2"}, logger.NewNop())
	return svc, offerings, professionals, catalog
}

func topLevel() *models.CreateOfferingRequest {
	return &models.CreateOfferingRequest{
		Name: "Massage", DurationMinutes: 60, Price: 5000, Kind: "top_level",
		Windows: []models.WindowDTO{{
			StartDate: "2025-06-01", EndDate: "2025-06-30", StartTime: "09:00", EndTime: "12:00", Box: "Box 1",
		}},
	}
}

func TestCreateOffering_TopLevelAndSub(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	parent, err := svc.CreateOffering(ctx, topLevel())
	require.NoError(t, err)
	require.Len(t, parent.Windows, 1)
	assert.Equal(t, "Box 1", parent.Windows[0].Box)

	sub, err := svc.CreateOffering(ctx, &models.CreateOfferingRequest{
		Name: "Hot stones", DurationMinutes: 30, Price: 1500, Kind: "sub", ParentID: ptr.Ptr(parent.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *sub.ParentID)

	_, err = svc.CreateOffering(ctx, &models.CreateOfferingRequest{
		Name: "Nested", DurationMinutes: 30, Kind: "sub", ParentID: ptr.Ptr(sub.ID),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "parentId", verr.Field)
}

func TestCreateOffering_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateOfferingRequest)
		target error
	}{
		{name: "unknown box", mutate: func(r *models.CreateOfferingRequest) { r.Windows[0].Box = "Box 9" }, target: domain.ErrValidation},
		{name: "bad date", mutate: func(r *models.CreateOfferingRequest) { r.Windows[0].StartDate = "2025-13-01" }, target: domain.ErrValidation},
		{name: "reversed dates", mutate: func(r *models.CreateOfferingRequest) { r.Windows[0].EndDate = "2025-05-01" }, target: domain.ErrValidation},
		{name: "sub without parent", mutate: func(r *models.CreateOfferingRequest) {
			r.Kind = "sub"
			r.Windows = nil
		}, target: domain.ErrValidation},
		{name: "sub with windows", mutate: func(r *models.CreateOfferingRequest) {
			r.Kind = "sub"
			r.ParentID = ptr.Ptr(int64(1))
		}, target: domain.ErrValidation},
		{name: "missing parent", mutate: func(r *models.CreateOfferingRequest) {
			r.Kind = "sub"
			r.ParentID = ptr.Ptr(int64(42))
			r.Windows = nil
		}, target: domain.ErrNotFound},
		{name: "unknown kind", mutate: func(r *models.CreateOfferingRequest) { r.Kind = "bundle" }, target: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, offerings, _, _ := newService()
			req := topLevel()
			tt.mutate(req)

			_, err := svc.CreateOffering(context.Background(), req)
			assert.ErrorIs(t, err, tt.target)
			assert.Empty(t, offerings.items)
		})
	}
}

func TestProfessionals(t *testing.T) {
	svc, _, professionals, _ := newService()
	ctx := context.Background()

	created, err := svc.CreateProfessional(ctx, &models.CreateProfessionalRequest{
		Name: "Ana", Specialty: "massage",
		Availability: &models.WindowDTO{StartDate: "2025-06-01", EndDate: "2025-06-30", StartTime: "09:00", EndTime: "18:00"},
	})
	require.NoError(t, err)
	require.NotNil(t, created.Availability)

	noWindow, err := svc.CreateProfessional(ctx, &models.CreateProfessionalRequest{Name: "Bo"})
	require.NoError(t, err)
	assert.Nil(t, noWindow.Availability)

	_, err = svc.CreateProfessional(ctx, &models.CreateProfessionalRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := svc.ListProfessionals(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Professionals, 2)

	professionals.inUse[created.ID] = true
	assert.ErrorIs(t, svc.DeleteProfessional(ctx, created.ID), ErrProfessionalInUse)
	assert.NoError(t, svc.DeleteProfessional(ctx, noWindow.ID))
	assert.ErrorIs(t, svc.DeleteProfessional(ctx, noWindow.ID), domain.ErrNotFound)
}

func TestClientsProductsPaymentMethods(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, &models.CreateClientRequest{Name: "Maria", Phone: ptr.Ptr("+5491100000000")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), client.ID)

	_, err = svc.CreateProduct(ctx, &models.CreateProductRequest{Name: "Oil", Price: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	product, err := svc.CreateProduct(ctx, &models.CreateProductRequest{Name: "Oil", Price: 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), product.Price)

	active, err := svc.ListPaymentMethods(ctx, true)
	require.NoError(t, err)
	require.Len(t, active.PaymentMethods, 1)
	assert.Equal(t, "cash", active.PaymentMethods[0].Name)

	all, err := svc.ListPaymentMethods(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all.PaymentMethods, 2)
}
