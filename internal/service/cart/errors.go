package cart

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("cart: service not found")

	// ErrItemNotFound возвращается, когда в корзине нет строки с такой услугой
	ErrItemNotFound = errors.New("cart: item not found")

	// ErrInvalidQuantity возвращается при неположительном количестве
	ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")

	// ErrInvalidSelection возвращается, когда выбор клиента нарушает
	// контракт модели ценообразования
	ErrInvalidSelection = errors.New("cart: invalid selection")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cart: internal error")
)
