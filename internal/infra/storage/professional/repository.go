package professional

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

var columns = []string{
	"id",
	"name",
	"specialty",
	"avail_start_date",
	"avail_end_date",
	"avail_start_time",
	"avail_end_time",
}

// Repository репозиторий профессионалов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профессионалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает профессионала
func (r *Repository) Create(ctx context.Context, p *domain.Professional) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var startDate, endDate *types.Date
	var startTime, endTime *types.TimeString
	if w := p.Availability; w != nil {
		startDate, endDate = &w.StartDate, &w.EndDate
		startTime, endTime = &w.StartTime, &w.EndTime
	}

	query, args, err := psqlbuilder.Insert("professionals").
		Columns("name", "specialty", "avail_start_date", "avail_end_date", "avail_start_time", "avail_end_time").
		Values(p.Name, p.Specialty, startDate, endDate, startTime, endTime).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает профессионала по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan professional: %v", ErrScanRow, err)
	}

	return p, nil
}

// List получает всех профессионалов в порядке создания (id)
func (r *Repository) List(ctx context.Context) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("professionals").
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

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		professionals = append(professionals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return professionals, nil
}

// Delete удаляет профессионала
// Если на него ссылаются записи, возвращает ErrProfessionalInUse (ON DELETE RESTRICT)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: Delete - professional id=%d", ErrProfessionalInUse, id)
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProfessionalNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	var p domain.Professional
	var startDate, endDate *types.Date
	var startTime, endTime *types.TimeString

	err := row.Scan(&p.ID, &p.Name, &p.Specialty, &startDate, &endDate, &startTime, &endTime)
	if err != nil {
		return nil, err
	}

	// Окно хранится целиком или не хранится вовсе (CHECK в схеме)
	if startDate != nil && endDate != nil && startTime != nil && endTime != nil {
		p.Availability = &domain.ProfessionalWindow{
			StartDate: *startDate,
			EndDate:   *endDate,
			StartTime: *startTime,
			EndTime:   *endTime,
		}
	}

	return &p, nil
}
