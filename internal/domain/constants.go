package domain

// Default rule values
const (
	DefaultFurthestDays         = 30
	DefaultClosestNoticeMinutes = 60
)

// Business validation constants
const (
	MaxFurthestDays         = 365
	MaxFurthestMonths       = 24
	MaxTimeIncrementMinutes = 10080 // 1 week
	MaxAdvanceDays          = 365
	MaxBulkUpdateItems      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Rule levels, used in responses and logs
const (
	RulesLevelItem       = "item"
	RulesLevelRestaurant = "restaurant"
	RulesLevelBuiltIn    = "built-in"
)
