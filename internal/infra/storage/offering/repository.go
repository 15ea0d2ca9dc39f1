package offering

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

var columns = []string{
	"id",
	"name",
	"duration_minutes",
	"price",
	"kind",
	"parent_id",
	"always_available",
}

// Repository репозиторий услуг и их окон доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает услугу вместе с окнами доступности
// Вызывать внутри транзакции, чтобы услуга и окна записались атомарно
func (r *Repository) Create(ctx context.Context, o *domain.Offering) (*domain.Offering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("offerings").
		Columns("name", "duration_minutes", "price", "kind", "parent_id", "always_available").
		Values(o.Name, o.DurationMinutes, o.Price, o.Kind, o.ParentID, o.AlwaysAvailable).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if len(o.Windows) == 0 {
		return o, nil
	}

	insert := psqlbuilder.Insert("offering_windows").
		Columns("offering_id", "position", "start_date", "end_date", "start_time", "end_time", "box")
	for i, w := range o.Windows {
		insert = insert.Values(o.ID, i, w.StartDate, w.EndDate, w.StartTime, w.EndTime, w.Box)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build windows insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute windows insert: %v", ErrExecQuery, err)
	}

	return o, nil
}

// GetByID получает услугу с окнами доступности
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("offerings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOffering(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan offering: %v", ErrScanRow, err)
	}

	if err := r.attachWindows(ctx, []*domain.Offering{o}); err != nil {
		return nil, err
	}

	return o, nil
}

// List получает все услуги в порядке создания (id), с окнами доступности
func (r *Repository) List(ctx context.Context) ([]*domain.Offering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("offerings").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	offerings := make([]*domain.Offering, 0)
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachWindows(ctx, offerings); err != nil {
		return nil, err
	}

	return offerings, nil
}

// attachWindows подгружает окна доступности одним запросом
func (r *Repository) attachWindows(ctx context.Context, offerings []*domain.Offering) error {
	if len(offerings) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Offering, len(offerings))
	ids := make([]int64, 0, len(offerings))
	for _, o := range offerings {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query, args, err := psqlbuilder.Select("offering_id", "start_date", "end_date", "start_time", "end_time", "box").
		From("offering_windows").
		Where(squirrel.Eq{"offering_id": ids}).
		OrderBy("offering_id ASC", "position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var offeringID int64
		var w domain.AvailabilityWindow
		if err := rows.Scan(&offeringID, &w.StartDate, &w.EndDate, &w.StartTime, &w.EndTime, &w.Box); err != nil {
			return fmt.Errorf("%w: attachWindows - scan row: %v", ErrScanRow, err)
		}
		if o, ok := byID[offeringID]; ok {
			o.Windows = append(o.Windows, w)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachWindows - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffering(row rowScanner) (*domain.Offering, error) {
	var o domain.Offering
	err := row.Scan(
		&o.ID,
		&o.Name,
		&o.DurationMinutes,
		&o.Price,
		&o.Kind,
		&o.ParentID,
		&o.AlwaysAvailable,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
