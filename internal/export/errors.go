package export

import "errors"

var (
	// ErrNoAppointments нет записей для выгрузки
	ErrNoAppointments = errors.New("export: no appointments")
	// ErrBuildFile не удалось сформировать файл
	ErrBuildFile = errors.New("export: failed to build file")
)
