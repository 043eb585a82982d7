package appointment

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

// appointmentColumns полный набор колонок таблицы appointments
var appointmentColumns = []string{
	"id",
	"customer_id",
	"vehicle_id",
	"assigned_employee_ids",
	"assigned_bay_id",
	"confirmation_number",
	"service_type",
	"requested_date_time",
	"status",
	"special_instructions",
	"vehicle_arrived_at",
	"vehicle_accepted_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на обслуживание
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись; ID генерируется репозиторием
// Нарушение уникальности номера подтверждения возвращается как
// ErrDuplicateConfirmation (защита от гонки генератора последовательности)
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	apt.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"customer_id",
			"vehicle_id",
			"assigned_employee_ids",
			"assigned_bay_id",
			"confirmation_number",
			"service_type",
			"requested_date_time",
			"status",
			"special_instructions",
		).
		Values(
			apt.ID,
			apt.CustomerID,
			apt.VehicleID,
			pq.Array(apt.AssignedEmployeeIDs),
			apt.AssignedBayID,
			apt.ConfirmationNumber,
			apt.ServiceType,
			apt.RequestedDateTime,
			apt.Status,
			apt.SpecialInstructions,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateConfirmation, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	return apt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByIDAndCustomer получает запись по ID, только если она принадлежит клиенту
func (r *Repository) GetByIDAndCustomer(ctx context.Context, id, customerID string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id, "customer_id": customerID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where)

	// Внутри транзакции блокируем строку: переходы статуса конкурируют между собой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	apt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan appointment: %v", ErrScanRow, err)
	}

	return apt, nil
}

// ListByCustomer получает записи клиента, сначала новые
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Appointment, error) {
	return r.list(ctx, psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("requested_date_time DESC"))
}

// ListByEmployeeAndRange получает записи, назначенные сотруднику, в интервале времени
func (r *Repository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]*domain.Appointment, error) {
	return r.list(ctx, psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Expr("? = ANY(assigned_employee_ids)", employeeID)).
		Where(squirrel.GtOrEq{"requested_date_time": from}).
		Where(squirrel.LtOrEq{"requested_date_time": to}).
		OrderBy("requested_date_time ASC"))
}

// ListByRange получает все записи в интервале времени
func (r *Repository) ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	return r.list(ctx, psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.GtOrEq{"requested_date_time": from}).
		Where(squirrel.LtOrEq{"requested_date_time": to}).
		OrderBy("requested_date_time ASC"))
}

// ListAll получает все записи, сначала новые
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Appointment, error) {
	return r.list(ctx, psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		OrderBy("requested_date_time DESC"))
}

// ListWithFilter получает записи с гибкой фильтрацией
// по клиенту, автомобилю, статусу и периоду (все поля опциональны)
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.VehicleID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vehicle_id": *filter.VehicleID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"requested_date_time": *filter.FromDate})
	}
	if filter.ToDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"requested_date_time": *filter.ToDate})
	}

	return r.list(ctx, selectBuilder.OrderBy("requested_date_time DESC"))
}

// ListByBayAndRange получает занимающие бокс записи на боксе в интервале времени
// Отменённые и no-show записи не учитываются
// В транзакции выборка блокируется (FOR UPDATE) для атомарного check-and-reserve
func (r *Repository) ListByBayAndRange(ctx context.Context, bayID string, from, to time.Time) ([]*domain.Appointment, error) {
	nonOccupying := make([]string, len(domain.NonOccupyingStatuses))
	for i, s := range domain.NonOccupyingStatuses {
		nonOccupying[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"assigned_bay_id": bayID}).
		Where(squirrel.GtOrEq{"requested_date_time": from}).
		Where(squirrel.LtOrEq{"requested_date_time": to}).
		Where(squirrel.NotEq{"status": nonOccupying}).
		OrderBy("requested_date_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, selectBuilder)
}

// GetMaxConfirmationNumber возвращает максимальный номер подтверждения
// с указанным префиксом, либо nil, если таких номеров ещё нет
func (r *Repository) GetMaxConfirmationNumber(ctx context.Context, prefix string) (*string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("MAX(confirmation_number)").
		From("appointments").
		Where(squirrel.Like{"confirmation_number": prefix + "%"}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetMaxConfirmationNumber - build select query: %v", ErrBuildQuery, err)
	}

	var maxNumber sql.NullString
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxNumber); err != nil {
		return nil, fmt.Errorf("%w: GetMaxConfirmationNumber - scan: %v", ErrScanRow, err)
	}

	if !maxNumber.Valid {
		return nil, nil
	}
	return &maxNumber.String, nil
}

// Update обновляет изменяемые клиентом поля записи (время, инструкции, бокс)
func (r *Repository) Update(ctx context.Context, apt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("requested_date_time", apt.RequestedDateTime).
		Set("special_instructions", apt.SpecialInstructions).
		Set("assigned_bay_id", apt.AssignedBayID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": apt.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// UpdateStatusFrom обновляет статус записи по принципу compare-and-set:
// обновление проходит, только если текущий статус равен from.
// Если статус уже изменился конкурентным запросом, возвращает ErrStatusConflict
func (r *Repository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "записи нет" и "статус уже не тот"
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

// SetAssignedEmployees заменяет набор назначенных сотрудников
func (r *Repository) SetAssignedEmployees(ctx context.Context, id string, employeeIDs []string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("assigned_employee_ids", pq.Array(employeeIDs)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAssignedEmployees - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetAssignedEmployees")
}

// SetVehicleArrival фиксирует приём автомобиля сотрудником (устанавливается однократно)
func (r *Repository) SetVehicleArrival(ctx context.Context, id, employeeID string, arrivedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("vehicle_arrived_at", arrivedAt).
		Set("vehicle_accepted_by", employeeID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"vehicle_arrived_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetVehicleArrival - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetVehicleArrival")
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
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, selectBuilder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
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

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// rowScanner абстракция над *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var apt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&apt.ID,
		&apt.CustomerID,
		&apt.VehicleID,
		pq.Array(&apt.AssignedEmployeeIDs),
		&apt.AssignedBayID,
		&apt.ConfirmationNumber,
		&apt.ServiceType,
		&apt.RequestedDateTime,
		&apt.Status,
		&apt.SpecialInstructions,
		&apt.VehicleArrivedAt,
		&apt.VehicleAcceptedByEmployeeID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	return &apt, nil
}
