package catalog

import "errors"

var (
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("catalog.service: service not found")

	// ErrInvalidInput некорректные данные услуги
	ErrInvalidInput = errors.New("catalog.service: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("catalog.service: internal error")
)
