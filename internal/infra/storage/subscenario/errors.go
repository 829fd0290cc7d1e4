package subscenario

import "errors"

var (
	// ErrSubScenarioNotFound возвращается, когда подсценарий не найден
	ErrSubScenarioNotFound = errors.New("subscenario.repository: sub-scenario not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("subscenario.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("subscenario.repository: failed to scan row")
)
