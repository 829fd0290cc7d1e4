package subscenario

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий подсценариев и их часов работы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория подсценариев
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает подсценарий с часами работы.
// Часы работы иерархические: если у подсценария они не заданы (NULL),
// используются часы родительского сценария.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SubScenario, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"ss.id",
		"ss.scenario_id",
		"ss.name",
		"COALESCE(ss.open_hour, s.open_hour)",
		"COALESCE(ss.close_hour, s.close_hour)",
	).
		From("sub_scenarios ss").
		Join("scenarios s ON s.id = ss.scenario_id").
		Where(squirrel.Eq{"ss.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var subScenario domain.SubScenario
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&subScenario.ID,
		&subScenario.ScenarioID,
		&subScenario.Name,
		&subScenario.OperatingHours.OpenHour,
		&subScenario.OperatingHours.CloseHour,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubScenarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan sub-scenario: %v", ErrScanRow, err)
	}

	return &subScenario, nil
}
