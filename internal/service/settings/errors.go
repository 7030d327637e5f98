package settings

import "errors"

var (
	// ErrInvalidInput некорректные настройки
	ErrInvalidInput = errors.New("settings.service: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("settings.service: internal error")
)
