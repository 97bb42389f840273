package archive_appointments

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("archive_appointments: internal error")
)
