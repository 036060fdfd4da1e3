package check_booking_time

import "errors"

var (
	// ErrMenuItemNotFound возвращается, когда позиция меню не найдена
	ErrMenuItemNotFound = errors.New("check_booking_time: menu item not found")

	// ErrMenuItemNotBookable возвращается, когда позицию нельзя забронировать
	ErrMenuItemNotBookable = errors.New("check_booking_time: menu item is not bookable")

	// ErrTooEarly возвращается, когда запрошенное время раньше самого раннего допустимого
	ErrTooEarly = errors.New("check_booking_time: requested time is earlier than allowed")

	// ErrTooFarInFuture возвращается, когда запрошенная дата позже последнего доступного дня
	ErrTooFarInFuture = errors.New("check_booking_time: requested date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_booking_time: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_booking_time: internal error")
)
