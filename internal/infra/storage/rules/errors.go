package rules

import "errors"

var (
	// ErrRulesNotFound возвращается, когда правила не найдены
	ErrRulesNotFound = errors.New("rules.repository: booking rules not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rules.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rules.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rules.repository: failed to scan row")

	// ErrDuplicateRules возвращается при попытке создать вторую запись для той же позиции меню
	ErrDuplicateRules = errors.New("rules.repository: duplicate booking rules for menu item")

	// ErrCorruptedRules возвращается, если сохранённые поля не складываются в валидное правило
	ErrCorruptedRules = errors.New("rules.repository: stored booking rules are invalid")
)
