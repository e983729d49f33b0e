package domain

// Default configuration values
const (
	DefaultTableCapacity           = 4
	DefaultDurationMinutes         = 120
	DefaultSlotDurationMinutes     = 30
	DefaultFallbackTime            = "12:00"
	DefaultOpenTime                = "12:00"
	DefaultCloseTime               = "23:00"
	DefaultTimezone                = "UTC"
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
)

// Business validation constants
const (
	MinSlotDurationMinutes  = 5
	MaxSlotDurationMinutes  = 480 // 8 hours
	MinDurationMinutes      = 15
	MaxDurationMinutes      = 720 // 12 hours
	MinTableCapacity        = 1
	MaxTableCapacity        = 100
	MinAdvanceBookingDays   = 0
	MaxAdvanceBookingDays   = 365 // 1 year
	MinBookingNoticeMinutes = 0
	MaxBookingNoticeMinutes = 10080 // 1 week
	MaxPartySize            = 500
	MaxNotesLength          = 500
	MaxCustomerNameLength   = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// UnassignedTableLabel display label of a reservation without a table
const UnassignedTableLabel = "Por asignar"

// InactiveStatuses statuses that never occupy capacity
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusNoShow,
}
