package rules

import "errors"

var (
	// ErrRulesNotFound возвращается, когда правила не найдены
	ErrRulesNotFound = errors.New("booking rules not found")

	// ErrMenuItemNotFound возвращается, когда позиция меню не найдена
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrMenuItemNotBookable возвращается, когда позицию меню нельзя бронировать
	ErrMenuItemNotBookable = errors.New("menu item is not bookable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRulesConflict возвращается, если правила для позиции были созданы параллельно
	ErrRulesConflict = errors.New("booking rules were modified concurrently")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
