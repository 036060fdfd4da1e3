package get_booking_window

import "errors"

var (
	// ErrMenuItemNotFound возвращается, когда позиция меню не найдена
	ErrMenuItemNotFound = errors.New("get_booking_window: menu item not found")

	// ErrMenuItemNotBookable возвращается, когда позицию нельзя забронировать
	ErrMenuItemNotBookable = errors.New("get_booking_window: menu item is not bookable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_booking_window: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_booking_window: internal error")
)
