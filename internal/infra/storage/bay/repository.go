package bay

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/pkg/dbmetrics"
	"github.com/techtorque/appointment-service/pkg/psqlbuilder"
)

var bayColumns = []string{
	"id",
	"bay_number",
	"name",
	"description",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сервисными боксами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория боксов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive получает активные боксы в порядке возрастания номера.
// Порядок фиксирован: подбор бокса детерминированно берет первый подходящий
func (r *Repository) ListActive(ctx context.Context) ([]*domain.ServiceBay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bayColumns...).
		From("service_bays").
		Where(squirrel.Eq{"active": true}).
		OrderBy("bay_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bays := make([]*domain.ServiceBay, 0)
	for rows.Next() {
		var b domain.ServiceBay
		err := rows.Scan(
			&b.ID,
			&b.BayNumber,
			&b.Name,
			&b.Description,
			&b.Active,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		bays = append(bays, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return bays, nil
}

// GetByID получает бокс по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ServiceBay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bayColumns...).
		From("service_bays").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.ServiceBay
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.BayNumber,
		&b.Name,
		&b.Description,
		&b.Active,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return &b, nil
}
