package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const tableReservations = "reservations"

var reservationColumns = []string{
	"id",
	"sub_scenario_id",
	"user_id",
	"initial_date",
	"final_date",
	"week_days",
	"hours",
	"state_id",
	"group_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"sub_scenario_id",
			"user_id",
			"initial_date",
			"final_date",
			"week_days",
			"hours",
			"state_id",
			"group_id",
		).
		Values(
			reservation.SubScenarioID,
			reservation.UserID,
			reservation.InitialDate,
			reservation.FinalDate,
			pq.Array(toInt64s(reservation.WeekDays)),
			pq.Array(toInt64s(reservation.Hours)),
			int64(reservation.State),
			reservation.GroupID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы смена статуса
// не пересекалась с параллельной сменой того же бронирования.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// GetBySubScenarioAndDateRange получает бронирования подсценария, пересекающиеся с периодом.
// Бронирование пересекается с [From, To], если initial_date <= To и
// COALESCE(final_date, initial_date) >= From. Фильтр по дням недели применяется в домене.
func (r *Repository) GetBySubScenarioAndDateRange(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"sub_scenario_id": filter.SubScenarioID}).
		Where(squirrel.LtOrEq{"initial_date": filter.To}).
		Where(squirrel.Expr("COALESCE(final_date, initial_date) >= ?", filter.From))

	if len(filter.States) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state_id": statesToInt64s(filter.States)})
	}

	selectBuilder = selectBuilder.OrderBy("initial_date ASC", "id ASC")

	// В транзакции создания бронирования блокируем пересекающиеся строки
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySubScenarioAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySubScenarioAndDateRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByUserID получает бронирования пользователя, начиная с самых новых.
// userID = domain.DashboardUserID возвращает бронирования всех пользователей.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		OrderBy("initial_date DESC", "id DESC")

	if userID != domain.DashboardUserID {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": userID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateState обновляет статус бронирования и возвращает обновленную запись
func (r *Repository) UpdateState(ctx context.Context, id int64, state domain.ReservationState) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("state_id", int64(state)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(reservationColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateState - execute update: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		finalDate            sql.NullTime
		weekDays, hours      pq.Int64Array
		stateID              int64
		groupID              sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.SubScenarioID,
		&reservation.UserID,
		&reservation.InitialDate,
		&finalDate,
		&weekDays,
		&hours,
		&stateID,
		&groupID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if finalDate.Valid {
		d := dateOf(finalDate.Time)
		reservation.FinalDate = &d
	}
	if groupID.Valid {
		g := groupID.Int64
		reservation.GroupID = &g
	}
	reservation.WeekDays = toInts(weekDays)
	reservation.Hours = toInts(hours)
	reservation.State = domain.ReservationState(stateID)
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}
