package dialog

import "errors"

var (
	// ErrNoBarbers возвращается, когда нет ни одного активного мастера
	// и диалог не может начаться
	ErrNoBarbers = errors.New("dialog: no active barbers available")

	// ErrSessionNotFound возвращается, когда у пользователя нет активной
	// сессии (истекла или диалог не начинался)
	ErrSessionNotFound = errors.New("dialog: session not found")

	// ErrUnexpectedInput возвращается, когда событие не соответствует
	// текущему состоянию диалога
	ErrUnexpectedInput = errors.New("dialog: unexpected input for current state")

	// ErrInternal возвращается при ошибках нижележащих слоев
	// (сессия пользователя при этом остается нетронутой)
	ErrInternal = errors.New("dialog: internal error")
)
