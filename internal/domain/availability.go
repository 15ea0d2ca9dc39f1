package domain

// Availability is the result of resolving one cell
type Availability struct {
	Professionals []*Professional
	Offerings     []*Offering
}

// Resolve computes the professionals and offerings eligible at the cell.
// Result order follows the order of the input slices.
//
// A sub-offering is eligible only if its parent is present in offerings and
// is eligible as a top-level offering at the same cell.
func Resolve(c Cell, professionals []*Professional, offerings []*Offering) Availability {
	result := Availability{
		Professionals: make([]*Professional, 0),
		Offerings:     make([]*Offering, 0),
	}

	for _, p := range professionals {
		if p.AvailableAt(c.Date, c.Time) {
			result.Professionals = append(result.Professionals, p)
		}
	}

	eligibleParents := make(map[int64]bool)
	for _, o := range offerings {
		if !o.IsSub() && o.AvailableAt(c) {
			eligibleParents[o.ID] = true
		}
	}

	for _, o := range offerings {
		if o.IsSub() {
			if o.ParentID != nil && eligibleParents[*o.ParentID] {
				result.Offerings = append(result.Offerings, o)
			}
			continue
		}
		if eligibleParents[o.ID] {
			result.Offerings = append(result.Offerings, o)
		}
	}

	return result
}

// HasOffering returns true if the offering id is in the result
func (a Availability) HasOffering(id int64) bool {
	for _, o := range a.Offerings {
		if o.ID == id {
			return true
		}
	}
	return false
}

// HasProfessional returns true if the professional id is in the result
func (a Availability) HasProfessional(id int64) bool {
	for _, p := range a.Professionals {
		if p.ID == id {
			return true
		}
	}
	return false
}
