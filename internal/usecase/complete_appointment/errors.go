package complete_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись уже не существует
	// (заархивирована или удалена)
	ErrAppointmentNotFound = errors.New("complete_appointment: appointment not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_appointment: internal error")
)
