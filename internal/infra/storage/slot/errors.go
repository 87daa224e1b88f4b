package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда определение слота не найдено
	ErrSlotNotFound = errors.New("slot.repository: slot definition not found")

	// ErrDuplicateSlot возвращается при попытке создать слот с тем же днем и окном
	ErrDuplicateSlot = errors.New("slot.repository: duplicate slot definition for day and window")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
