package servicetype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/pkg/dbmetrics"
	"github.com/techtorque/appointment-service/pkg/psqlbuilder"
)

// pqUniqueViolation код ошибки PostgreSQL "duplicate key value"
const pqUniqueViolation = "23505"

var serviceTypeColumns = []string{
	"id",
	"name",
	"category",
	"base_price",
	"estimated_duration_minutes",
	"description",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с каталогом типов обслуживания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов обслуживания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тип обслуживания.
// Дубликат имени возвращается как ErrServiceTypeExists
func (r *Repository) Create(ctx context.Context, st *domain.ServiceType) (*domain.ServiceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	st.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("service_types").
		Columns("id", "name", "category", "base_price", "estimated_duration_minutes", "description", "active").
		Values(st.ID, st.Name, st.Category, st.BasePrice, st.EstimatedDurationMinutes, st.Description, st.Active).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrServiceTypeExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return st, nil
}

// GetByID получает тип обслуживания по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ServiceType, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByName получает тип обслуживания по имени
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.ServiceType, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.ServiceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceTypeColumns...).
		From("service_types").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	st, err := scanServiceType(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan row: %v", ErrScanRow, err)
	}

	return st, nil
}

// ListActive получает активные типы обслуживания, упорядоченные по категории и имени
func (r *Repository) ListActive(ctx context.Context) ([]*domain.ServiceType, error) {
	return r.list(ctx, psqlbuilder.Select(serviceTypeColumns...).
		From("service_types").
		Where(squirrel.Eq{"active": true}).
		OrderBy("category ASC", "name ASC"))
}

// ListAll получает все типы обслуживания, включая деактивированные
func (r *Repository) ListAll(ctx context.Context) ([]*domain.ServiceType, error) {
	return r.list(ctx, psqlbuilder.Select(serviceTypeColumns...).
		From("service_types").
		OrderBy("category ASC", "name ASC"))
}

// Update обновляет атрибуты типа обслуживания
func (r *Repository) Update(ctx context.Context, st *domain.ServiceType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_types").
		Set("name", st.Name).
		Set("category", st.Category).
		Set("base_price", st.BasePrice).
		Set("estimated_duration_minutes", st.EstimatedDurationMinutes).
		Set("description", st.Description).
		Set("active", st.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": st.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// Deactivate убирает тип обслуживания из каталога, не удаляя его
func (r *Repository) Deactivate(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_types").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Deactivate")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrServiceTypeNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, selectBuilder squirrel.SelectBuilder) ([]*domain.ServiceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ServiceType, 0)
	for rows.Next() {
		st, err := scanServiceType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}
		result = append(result, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanServiceType(row rowScanner) (*domain.ServiceType, error) {
	var st domain.ServiceType

	err := row.Scan(
		&st.ID,
		&st.Name,
		&st.Category,
		&st.BasePrice,
		&st.EstimatedDurationMinutes,
		&st.Description,
		&st.Active,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &st, nil
}
