package add_review

import "errors"

var (
	// ErrBarberNotFound возвращается, когда мастер не найден
	ErrBarberNotFound = errors.New("add_review: barber not found")

	// ErrInvalidRating возвращается при оценке вне допустимого диапазона
	ErrInvalidRating = errors.New("add_review: rating is out of range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_review: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_review: internal error")
)
