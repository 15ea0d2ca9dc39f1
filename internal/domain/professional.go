package domain

import "github.com/m04kA/SMC-BoxScheduler/pkg/types"

// ProfessionalWindow is the single availability window of a professional.
// All bounds are inclusive.
type ProfessionalWindow struct {
	StartDate types.Date
	EndDate   types.Date
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Contains returns true if (date, time) lies inside the window
func (w *ProfessionalWindow) Contains(date types.Date, t types.TimeString) bool {
	return date.Between(w.StartDate, w.EndDate) && t.Between(w.StartTime, w.EndTime)
}

// Validate checks that the window bounds are ordered
func (w *ProfessionalWindow) Validate() error {
	if w.StartDate.After(w.EndDate) {
		return NewValidationError("availability", "start date is after end date")
	}
	if err := w.StartTime.Validate(); err != nil {
		return NewValidationError("availability.startTime", err.Error())
	}
	if err := w.EndTime.Validate(); err != nil {
		return NewValidationError("availability.endTime", err.Error())
	}
	if w.StartTime.IsAfter(w.EndTime) {
		return NewValidationError("availability", "start time is after end time")
	}
	return nil
}

// Professional represents a staff member
type Professional struct {
	ID           int64
	Name         string
	Specialty    string
	Availability *ProfessionalWindow // nil = never eligible
}

// AvailableAt returns true if the professional can work at (date, time)
func (p *Professional) AvailableAt(date types.Date, t types.TimeString) bool {
	return p.Availability != nil && p.Availability.Contains(date, t)
}

// Validate checks the professional fields
func (p *Professional) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if len(p.Name) > MaxNameLength {
		return NewValidationError("name", "is too long")
	}
	if p.Availability != nil {
		return p.Availability.Validate()
	}
	return nil
}
