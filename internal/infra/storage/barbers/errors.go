package barbers

import "errors"

var (
	// ErrBarberNotFound возвращается, когда мастер не найден
	ErrBarberNotFound = errors.New("barbers.repository: barber not found")

	// ErrTelegramIDTaken возвращается при попытке создать мастера с занятым telegram_id
	ErrTelegramIDTaken = errors.New("barbers.repository: telegram id already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("barbers.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("barbers.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("barbers.repository: failed to scan row")
)
