package pricing

import "errors"

var (
	// ErrInvalidSelection возвращается, когда выбор клиента нарушает
	// контракт модели ценообразования услуги
	ErrInvalidSelection = errors.New("pricing: invalid selection")

	// ErrInvalidQuantity возвращается при неположительном количестве
	ErrInvalidQuantity = errors.New("pricing: quantity must be a positive integer")

	// ErrInvalidService возвращается, когда конфигурация услуги
	// не соответствует её модели ценообразования
	ErrInvalidService = errors.New("pricing: invalid service configuration")
)
