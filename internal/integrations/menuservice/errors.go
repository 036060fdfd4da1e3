package menuservice

import "errors"

var (
	// ErrMenuItemNotFound возвращается, когда позиция меню не найдена
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("menuservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("menuservice client: invalid response")
)
