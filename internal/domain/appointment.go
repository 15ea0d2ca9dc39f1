package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusAvailable AppointmentStatus = "available" // cell offered for sale, no client yet
	StatusReserved  AppointmentStatus = "reserved"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AllStatuses lists every known status in lifecycle order
var AllStatuses = []AppointmentStatus{
	StatusAvailable,
	StatusReserved,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// IsValid returns true if s is a known status
func (s AppointmentStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true for completed and cancelled
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions is the forward lifecycle. Cancellation is handled separately.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusAvailable: {StatusReserved, StatusConfirmed},
	StatusReserved:  {StatusConfirmed},
	StatusConfirmed: {StatusCompleted},
}

// IsValidTransition reports whether an appointment may move from one status
// to another under the lifecycle available -> reserved -> confirmed -> completed,
// with cancelled reachable from any non-terminal status. Keeping the same
// non-terminal status is allowed. Nothing leaves a terminal status.
func IsValidTransition(from, to AppointmentStatus) bool {
	if !from.IsValid() || !to.IsValid() || from.IsTerminal() {
		return false
	}
	if from == to || to == StatusCancelled {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cell is the unit of exclusivity: one active appointment per (date, time, box)
type Cell struct {
	Date types.Date
	Time types.TimeString
	Box  string
}

func (c Cell) String() string {
	return fmt.Sprintf("%s %s %q", c.Date, c.Time, c.Box)
}

// Appointment represents a booking of one box at one civil date and time
type Appointment struct {
	ID              int64
	Date            types.Date
	Time            types.TimeString
	DurationMinutes int
	Status          AppointmentStatus
	Box             string

	ProfessionalID *int64
	OfferingID     *int64
	ClientID       *int64

	Deposit Money
	Price   Money
	Note    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cell returns the (date, time, box) tuple held by the appointment
func (a *Appointment) Cell() Cell {
	return Cell{Date: a.Date, Time: a.Time, Box: a.Box}
}

// IsActive returns true if the appointment counts toward the cell conflict check
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment is not in a terminal status
func (a *Appointment) CanBeCancelled() bool {
	return !a.Status.IsTerminal()
}

// CanBeSettled returns true if a settlement may complete this appointment
func (a *Appointment) CanBeSettled() bool {
	return !a.Status.IsTerminal()
}

// Overlaps reports whether two same-day intervals [start, start+duration)
// intersect. Touching intervals (one ends when the other starts) do not overlap.
func Overlaps(aStart types.TimeString, aDuration int, bStart types.TimeString, bDuration int) bool {
	as, bs := aStart.Minutes(), bStart.Minutes()
	if as < 0 || bs < 0 {
		return false
	}
	return as < bs+bDuration && bs < as+aDuration
}

// AppointmentsFilter filter for listing appointments
type AppointmentsFilter struct {
	From             *types.Date        // Начало периода (включительно)
	To               *types.Date        // Конец периода (включительно)
	Box              *string            // Фильтр по боксу
	Status           *AppointmentStatus // Фильтр по статусу
	IncludeCancelled bool               // Включать ли отмененные записи
}
