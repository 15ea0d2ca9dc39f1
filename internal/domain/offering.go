package domain

import "github.com/m04kA/SMC-BoxScheduler/pkg/types"

// OfferingKind tags an offering as top-level or sub. Exactly one level of
// nesting exists: a sub-offering's parent is always top-level.
type OfferingKind string

const (
	OfferingTopLevel OfferingKind = "top_level"
	OfferingSub      OfferingKind = "sub"
)

// AvailabilityWindow is a bookable range of an offering in one box.
// All bounds are inclusive.
type AvailabilityWindow struct {
	StartDate types.Date
	EndDate   types.Date
	StartTime types.TimeString
	EndTime   types.TimeString
	Box       string
}

// Contains returns true if the cell lies inside the window, box included
func (w *AvailabilityWindow) Contains(c Cell) bool {
	return w.Box == c.Box &&
		c.Date.Between(w.StartDate, w.EndDate) &&
		c.Time.Between(w.StartTime, w.EndTime)
}

// Validate checks that the window bounds are ordered and a box is set
func (w *AvailabilityWindow) Validate() error {
	if w.Box == "" {
		return NewValidationError("windows.box", "must not be empty")
	}
	if w.StartDate.After(w.EndDate) {
		return NewValidationError("windows", "start date is after end date")
	}
	if w.StartTime.Validate() != nil || w.EndTime.Validate() != nil {
		return NewValidationError("windows", "invalid time, expected HH:MM")
	}
	if w.StartTime.IsAfter(w.EndTime) {
		return NewValidationError("windows", "start time is after end time")
	}
	return nil
}

// Offering represents a sellable service (treatment)
type Offering struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           Money
	Kind            OfferingKind
	ParentID        *int64 // set only for sub-offerings
	AlwaysAvailable bool
	Windows         []AvailabilityWindow
}

// IsSub returns true for sub-offerings
func (o *Offering) IsSub() bool {
	return o.Kind == OfferingSub
}

// AvailableAt applies the top-level rule: always available, or some window
// of the same box contains the cell. Sub-offerings are never available on
// their own; use Resolve to derive them from the parent.
func (o *Offering) AvailableAt(c Cell) bool {
	if o.IsSub() {
		return false
	}
	if o.AlwaysAvailable {
		return true
	}
	for i := range o.Windows {
		if o.Windows[i].Contains(c) {
			return true
		}
	}
	return false
}

// Validate checks the offering fields and the sub-offering invariant
func (o *Offering) Validate() error {
	if o.Name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if len(o.Name) > MaxNameLength {
		return NewValidationError("name", "is too long")
	}
	if o.DurationMinutes < MinDurationMinutes || o.DurationMinutes > MaxDurationMinutes {
		return NewValidationError("durationMinutes", "out of range")
	}
	if err := CheckAmount("price", o.Price); err != nil {
		return err
	}

	switch o.Kind {
	case OfferingTopLevel:
		if o.ParentID != nil {
			return NewValidationError("parentId", "top-level offering cannot have a parent")
		}
		for i := range o.Windows {
			if err := o.Windows[i].Validate(); err != nil {
				return err
			}
		}
	case OfferingSub:
		if o.ParentID == nil {
			return NewValidationError("parentId", "sub-offering requires a parent")
		}
		if len(o.Windows) > 0 {
			return NewValidationError("windows", "sub-offering cannot own availability windows")
		}
		if o.AlwaysAvailable {
			return NewValidationError("alwaysAvailable", "sub-offering inherits availability from its parent")
		}
	default:
		return NewValidationError("kind", "unknown offering kind")
	}

	return nil
}
