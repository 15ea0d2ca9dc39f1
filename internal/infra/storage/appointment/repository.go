package appointment

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
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

const (
	tableName = "appointments"

	// cellIndex частичный уникальный индекс (date, time, box) WHERE status <> 'cancelled'
	cellIndex = "appointments_active_cell_uidx"
)

var columns = []string{
	"id",
	"date",
	"time",
	"duration_minutes",
	"status",
	"box",
	"professional_id",
	"offering_id",
	"client_id",
	"deposit",
	"price",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Занятая ячейка (date, time, box) возвращает ErrCellOccupied
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"date",
			"time",
			"duration_minutes",
			"status",
			"box",
			"professional_id",
			"offering_id",
			"client_id",
			"deposit",
			"price",
			"note",
		).
		Values(
			a.Date,
			a.Time,
			a.DurationMinutes,
			a.Status,
			a.Box,
			a.ProfessionalID,
			a.OfferingID,
			a.ClientID,
			a.Deposit,
			a.Price,
			a.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	return a, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// GetActiveByCell получает активную (не отмененную) запись в ячейке
// excludeID исключает саму запись при переносе (0 = не исключать)
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetActiveByCell(ctx context.Context, cell domain.Cell, excludeID int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"date": cell.Date, "time": cell.Time, "box": cell.Box}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Limit(1)

	if excludeID != 0 {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCell - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCell - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// ListActiveByDate получает активные записи на дату
// box = "" - по всем боксам. Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListActiveByDate(ctx context.Context, date types.Date, box string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("time ASC", "box ASC")

	if box != "" {
		builder = builder.Where(squirrel.Eq{"box": box})
	}
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// List получает записи с фильтрацией
// Без фильтра по статусу отмененные записи исключаются, если не задан IncludeCancelled
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("date ASC", "time ASC", "box ASC")

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": *filter.To})
	}
	if filter.Box != nil {
		builder = builder.Where(squirrel.Eq{"box": *filter.Box})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update сохраняет все изменяемые поля записи
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("date", a.Date).
		Set("time", a.Time).
		Set("duration_minutes", a.DurationMinutes).
		Set("status", a.Status).
		Set("box", a.Box).
		Set("professional_id", a.ProfessionalID).
		Set("offering_id", a.OfferingID).
		Set("client_id", a.ClientID).
		Set("deposit", a.Deposit).
		Set("price", a.Price).
		Set("note", a.Note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	return a, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("UpdateStatus", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete физически удаляет запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// mapWriteError переводит ошибки ограничений PostgreSQL в ошибки репозитория
func mapWriteError(op string, err error) error {
	switch {
	case pgerr.IsUniqueViolation(err, cellIndex):
		return fmt.Errorf("%w: %s: %v", ErrCellOccupied, op, err)
	case pgerr.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrReferenceNotFound, op, err)
	default:
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var note sql.NullString

	err := row.Scan(
		&a.ID,
		&a.Date,
		&a.Time,
		&a.DurationMinutes,
		&a.Status,
		&a.Box,
		&a.ProfessionalID,
		&a.OfferingID,
		&a.ClientID,
		&a.Deposit,
		&a.Price,
		&note,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if note.Valid {
		a.Note = &note.String
	}

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
