package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidSelection возвращается, когда выбор клиента не соответствует услуге
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidQuantity возвращается при некорректном количестве
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrServiceNotFound возвращается, когда услуга не найдена или выключена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrTooSoon возвращается, когда до начала меньше minBookingNoticeMinutes
	ErrTooSoon = errors.New("booking time is too soon")

	// ErrCompanyClosed возвращается, когда компания закрыта в указанную дату
	ErrCompanyClosed = errors.New("company is closed on this date")

	// ErrOutsideBusinessHours возвращается, когда интервал не помещается в рабочие часы
	ErrOutsideBusinessHours = errors.New("booking does not fit business hours")

	// ErrBelowMinimumValue возвращается, когда сумма заказа меньше минимальной
	ErrBelowMinimumValue = errors.New("booking total is below minimum value")

	// ErrSlotNotAvailable возвращается, когда интервал занят конкурентным бронированием
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
