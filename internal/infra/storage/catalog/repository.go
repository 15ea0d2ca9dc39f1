package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BoxScheduler/pkg/psqlbuilder"
)

// Repository репозиторий справочников: клиенты, товары, способы оплаты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateClient создает клиента
func (r *Repository) CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("name", "phone", "email").
		Values(c.Name, c.Phone, c.Email).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateClient - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateClient - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// GetClientByID получает клиента по ID
func (r *Repository) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "phone", "email").
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClientByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Phone, &c.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetClientByID - scan client: %v", ErrScanRow, err)
	}

	return &c, nil
}

// ListClients получает всех клиентов по имени
func (r *Repository) ListClients(ctx context.Context) ([]*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "phone", "email").
		From("clients").
		OrderBy("name ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListClients - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClients - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email); err != nil {
			return nil, fmt.Errorf("%w: ListClients - scan row: %v", ErrScanRow, err)
		}
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClients - rows error: %v", ErrScanRow, err)
	}

	return clients, nil
}

// CreateProduct создает товар
func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("products").
		Columns("name", "price").
		Values(p.Name, p.Price).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateProduct - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateProduct - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetProductByID получает товар по ID
func (r *Repository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price").
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProductByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Product
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProductByID - scan product: %v", ErrScanRow, err)
	}

	return &p, nil
}

// ListProducts получает все товары
func (r *Repository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price").
		From("products").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListProducts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProducts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("%w: ListProducts - scan row: %v", ErrScanRow, err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProducts - rows error: %v", ErrScanRow, err)
	}

	return products, nil
}

// GetPaymentMethodByID получает способ оплаты по ID
func (r *Repository) GetPaymentMethodByID(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "active").
		From("payment_methods").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentMethodByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.PaymentMethod
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.Name, &m.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentMethodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentMethodByID - scan payment method: %v", ErrScanRow, err)
	}

	return &m, nil
}

// ListPaymentMethods получает способы оплаты
// activeOnly = true - только активные
func (r *Repository) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]*domain.PaymentMethod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "name", "active").
		From("payment_methods").
		OrderBy("id ASC")

	if activeOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPaymentMethods - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPaymentMethods - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	methods := make([]*domain.PaymentMethod, 0)
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Active); err != nil {
			return nil, fmt.Errorf("%w: ListPaymentMethods - scan row: %v", ErrScanRow, err)
		}
		methods = append(methods, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPaymentMethods - rows error: %v", ErrScanRow, err)
	}

	return methods, nil
}
