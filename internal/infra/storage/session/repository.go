package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/pkg/dbmetrics"
	"github.com/techtorque/appointment-service/pkg/psqlbuilder"
)

// pqUniqueViolation код ошибки PostgreSQL "duplicate key value"
const pqUniqueViolation = "23505"

var sessionColumns = []string{
	"id",
	"appointment_id",
	"employee_id",
	"clock_in_time",
	"clock_out_time",
	"active",
	"time_log_id",
	"created_at",
}

// Repository репозиторий для работы с рабочими сессиями сотрудников.
// Уникальность активной сессии на пару (запись, сотрудник) обеспечивает
// частичный уникальный индекс в БД
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую активную сессию.
// Нарушение частичного уникального индекса (конкурентный clock-in)
// возвращается как ErrSessionExists
func (r *Repository) Create(ctx context.Context, s *domain.TimeSession) (*domain.TimeSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	s.ID = uuid.NewString()
	s.Active = true

	query, args, err := psqlbuilder.Insert("time_sessions").
		Columns(
			"id",
			"appointment_id",
			"employee_id",
			"clock_in_time",
			"active",
			"time_log_id",
		).
		Values(
			s.ID,
			s.AppointmentID,
			s.EmployeeID,
			s.ClockInTime,
			s.Active,
			s.TimeLogID,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrSessionExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetActive получает активную сессию для пары (запись, сотрудник).
// Возвращает ErrSessionNotFound, если активной сессии нет
func (r *Repository) GetActive(ctx context.Context, appointmentID, employeeID string) (*domain.TimeSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("time_sessions").
		Where(squirrel.Eq{
			"appointment_id": appointmentID,
			"employee_id":    employeeID,
			"active":         true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - scan row: %v", ErrScanRow, err)
	}

	return s, nil
}

// Close закрывает активную сессию, фиксируя время clock-out и ссылку
// на проводку в сервисе учёта времени. Уже закрытую сессию не трогает
func (r *Repository) Close(ctx context.Context, id string, clockOut time.Time, timeLogID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("time_sessions").
		Set("clock_out_time", clockOut).
		Set("active", false).
		Where(squirrel.Eq{"id": id, "active": true})

	if timeLogID != nil {
		updateBuilder = updateBuilder.Set("time_log_id", *timeLogID)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Close - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Close - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Close - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// SetTimeLogID дописывает ссылку на проводку в сервисе учёта времени.
// Вызывается вне основной транзакции clock-in: проводка открывается best-effort
func (r *Repository) SetTimeLogID(ctx context.Context, id, timeLogID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_sessions").
		Set("time_log_id", timeLogID).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetTimeLogID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetTimeLogID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetTimeLogID - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ListByAppointment получает все сессии по записи, сначала ранние
func (r *Repository) ListByAppointment(ctx context.Context, appointmentID string) ([]*domain.TimeSession, error) {
	return r.list(ctx, squirrel.Eq{"appointment_id": appointmentID})
}

// ListByEmployee получает все сессии сотрудника, сначала ранние
func (r *Repository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TimeSession, error) {
	return r.list(ctx, squirrel.Eq{"employee_id": employeeID})
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq) ([]*domain.TimeSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("time_sessions").
		Where(where).
		OrderBy("clock_in_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.TimeSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.TimeSession, error) {
	var s domain.TimeSession

	err := row.Scan(
		&s.ID,
		&s.AppointmentID,
		&s.EmployeeID,
		&s.ClockInTime,
		&s.ClockOutTime,
		&s.Active,
		&s.TimeLogID,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
