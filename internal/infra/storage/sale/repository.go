package sale

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BoxScheduler/pkg/pgerr"
	"github.com/m04kA/SMC-BoxScheduler/pkg/psqlbuilder"
)

const appointmentIndex = "sales_appointment_id_key"

// Repository репозиторий продаж
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория продаж
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет продажу вместе с позициями и платежами
// Вызывать внутри транзакции
func (r *Repository) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sales").
		Columns("receipt_number", "client_id", "appointment_id", "total").
		Values(s.ReceiptNumber, s.ClientID, s.AppointmentID, s.Total).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt)
	if pgerr.IsUniqueViolation(err, appointmentIndex) {
		return nil, fmt.Errorf("%w: appointment id=%d", ErrSaleExists, s.AppointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if len(s.Items) > 0 {
		insert := psqlbuilder.Insert("sale_items").
			Columns("sale_id", "position", "kind", "ref_id", "name", "quantity", "unit_price", "subtotal")
		for i, item := range s.Items {
			insert = insert.Values(s.ID, i, item.Kind, item.RefID, item.Name, item.Quantity, item.UnitPrice, item.Subtotal)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build items insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - execute items insert: %v", ErrExecQuery, err)
		}
	}

	if len(s.Payments) > 0 {
		insert := psqlbuilder.Insert("sale_payments").
			Columns("sale_id", "position", "method_id", "amount", "reference")
		for i, p := range s.Payments {
			insert = insert.Values(s.ID, i, p.MethodID, p.Amount, p.Reference)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build payments insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - execute payments insert: %v", ErrExecQuery, err)
		}
	}

	return s, nil
}

// GetByAppointmentID получает продажу по ID записи
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Sale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "receipt_number", "client_id", "appointment_id", "total", "created_at").
		From("sales").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Sale
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.ReceiptNumber, &s.ClientID, &s.AppointmentID, &s.Total, &s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan sale: %v", ErrScanRow, err)
	}

	if s.Items, err = r.items(ctx, s.ID); err != nil {
		return nil, err
	}
	if s.Payments, err = r.payments(ctx, s.ID); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *Repository) items(ctx context.Context, saleID int64) ([]domain.SaleItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("kind", "ref_id", "name", "quantity", "unit_price", "subtotal").
		From("sale_items").
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: items - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: items - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.SaleItem, 0)
	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(&item.Kind, &item.RefID, &item.Name, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("%w: items - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: items - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

func (r *Repository) payments(ctx context.Context, saleID int64) ([]domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("method_id", "amount", "reference").
		From("sale_payments").
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: payments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: payments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.MethodID, &p.Amount, &p.Reference); err != nil {
			return nil, fmt.Errorf("%w: payments - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: payments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
