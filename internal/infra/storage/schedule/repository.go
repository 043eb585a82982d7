package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/pkg/dbmetrics"
	"github.com/techtorque/appointment-service/pkg/psqlbuilder"
	"github.com/techtorque/appointment-service/pkg/types"
)

var businessHoursColumns = []string{
	"id",
	"day_of_week",
	"open_time",
	"close_time",
	"break_start_time",
	"break_end_time",
	"is_open",
	"created_at",
	"updated_at",
}

var holidayColumns = []string{
	"id",
	"holiday_date",
	"name",
	"description",
	"created_at",
}

// Repository репозиторий для работы с графиком мастерской
// (рабочие часы по дням недели и праздничные дни)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория графика
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusinessHours получает рабочие часы для дня недели.
// День недели хранится строковым токеном (MONDAY, TUESDAY, ...)
func (r *Repository) GetBusinessHours(ctx context.Context, day time.Weekday) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessHoursColumns...).
		From("business_hours").
		Where(squirrel.Eq{"day_of_week": domain.WeekdayToken(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - build select query: %v", ErrBuildQuery, err)
	}

	hours, err := scanBusinessHours(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - scan row: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ListBusinessHours получает рабочие часы для всех дней недели
func (r *Repository) ListBusinessHours(ctx context.Context) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessHoursColumns...).
		From("business_hours").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BusinessHours, 0, 7)
	for rows.Next() {
		hours, err := scanBusinessHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBusinessHours - scan row: %v", ErrScanRow, err)
		}
		result = append(result, hours)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusinessHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// IsHoliday проверяет, является ли дата праздничным днём
func (r *Repository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(1)").
		From("holidays").
		Where(squirrel.Eq{"holiday_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsHoliday - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsHoliday - scan row: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// ListHolidaysInRange получает праздничные дни в интервале дат включительно
func (r *Repository) ListHolidaysInRange(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holidayColumns...).
		From("holidays").
		Where(squirrel.GtOrEq{"holiday_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"holiday_date": to.Format(domain.DateFormat)}).
		OrderBy("holiday_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidaysInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidaysInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Description, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ListHolidaysInRange - scan row: %v", ErrScanRow, err)
		}
		holidays = append(holidays, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHolidaysInRange - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusinessHours(row rowScanner) (*domain.BusinessHours, error) {
	var h domain.BusinessHours
	var dayToken string
	var openTime, closeTime string
	var breakStart, breakEnd sql.NullString

	err := row.Scan(
		&h.ID,
		&dayToken,
		&openTime,
		&closeTime,
		&breakStart,
		&breakEnd,
		&h.IsOpen,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	day, err := domain.ParseWeekdayToken(dayToken)
	if err != nil {
		return nil, err
	}
	h.DayOfWeek = day

	if h.OpenTime, err = types.NewTimeStringFromString(openTime); err != nil {
		return nil, err
	}
	if h.CloseTime, err = types.NewTimeStringFromString(closeTime); err != nil {
		return nil, err
	}

	if breakStart.Valid {
		ts, err := types.NewTimeStringFromString(breakStart.String)
		if err != nil {
			return nil, err
		}
		h.BreakStartTime = &ts
	}
	if breakEnd.Valid {
		ts, err := types.NewTimeStringFromString(breakEnd.String)
		if err != nil {
			return nil, err
		}
		h.BreakEndTime = &ts
	}

	return &h, nil
}
