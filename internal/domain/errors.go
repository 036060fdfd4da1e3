package domain

import "errors"

// ErrInvalidRule возвращается при некорректном правиле окна бронирования
// (number < 1, timeIncrement < 1, days < 1, неизвестный режим или единица)
var ErrInvalidRule = errors.New("invalid booking rule")
