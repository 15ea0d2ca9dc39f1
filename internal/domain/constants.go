package domain

// Default configuration values
const (
	DefaultDurationMinutes = 30
	DefaultOffsetMinutes   = -180 // UTC-3
	DefaultGridStepMinutes = 30
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MaxNoteLength      = 500
	MaxNameLength      = 200
)

// Event routing keys
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentDeleted   = "appointment.deleted"
	EventSaleCompleted        = "sale.completed"
)
