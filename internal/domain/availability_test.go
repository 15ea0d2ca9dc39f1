package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BoxScheduler/pkg/ptr"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

func cell(date string, t types.TimeString, box string) Cell {
	d, err := types.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return Cell{Date: d, Time: t, Box: box}
}

func juneWindow(box string) AvailabilityWindow {
	return AvailabilityWindow{
		StartDate: types.MustDate(2025, 6, 1),
		EndDate:   types.MustDate(2025, 6, 30),
		StartTime: "09:00",
		EndTime:   "18:00",
		Box:       box,
	}
}

func testOfferings() []*Offering {
	return []*Offering{
		{ID: 1, Name: "Massage", Kind: OfferingTopLevel, Windows: []AvailabilityWindow{juneWindow("Box 1")}},
		{ID: 2, Name: "Hot stones", Kind: OfferingSub, ParentID: ptr.Ptr(int64(1))},
		{ID: 3, Name: "Consultation", Kind: OfferingTopLevel, AlwaysAvailable: true},
		{ID: 4, Name: "Facial", Kind: OfferingTopLevel},
		{ID: 5, Name: "Mask", Kind: OfferingSub, ParentID: ptr.Ptr(int64(4))},
	}
}

func offeringIDs(a Availability) []int64 {
	ids := make([]int64, 0, len(a.Offerings))
	for _, o := range a.Offerings {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestResolve_WindowedOffering(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want []int64
	}{
		{"inside window", cell("2025-06-10", "10:00", "Box 1"), []int64{1, 2, 3}},
		{"inclusive start bounds", cell("2025-06-01", "09:00", "Box 1"), []int64{1, 2, 3}},
		{"inclusive end bounds", cell("2025-06-30", "18:00", "Box 1"), []int64{1, 2, 3}},
		{"other box", cell("2025-06-10", "10:00", "Box 2"), []int64{3}},
		{"after hours", cell("2025-06-10", "18:01", "Box 1"), []int64{3}},
		{"outside dates", cell("2025-07-01", "10:00", "Box 1"), []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.cell, nil, testOfferings())
			assert.Equal(t, tt.want, offeringIDs(got))
		})
	}
}

func TestResolve_SubOfferingNeverWithoutParent(t *testing.T) {
	offerings := testOfferings()
	boxes := []string{"Box 1", "Box 2"}
	times := []types.TimeString{"08:59", "09:00", "12:30", "18:00", "18:01"}
	dates := []string{"2025-05-31", "2025-06-01", "2025-06-15", "2025-06-30", "2025-07-01"}

	for _, d := range dates {
		for _, tm := range times {
			for _, box := range boxes {
				got := Resolve(cell(d, tm, box), nil, offerings)
				for _, o := range got.Offerings {
					if o.IsSub() {
						assert.True(t, got.HasOffering(*o.ParentID),
							"sub-offering %d returned without parent at %s %s %s", o.ID, d, tm, box)
					}
				}
			}
		}
	}
}

func TestResolve_AlwaysAvailableEverywhere(t *testing.T) {
	offerings := []*Offering{{ID: 3, Kind: OfferingTopLevel, AlwaysAvailable: true}}

	for _, c := range []Cell{
		cell("1999-01-01", "00:00", "Box 1"),
		cell("2025-06-10", "23:59", "Box 7"),
		cell("2100-12-31", "12:00", ""),
	} {
		assert.True(t, Resolve(c, nil, offerings).HasOffering(3), "cell %s", c)
	}
}

func TestResolve_SubOfferingWithMissingParent(t *testing.T) {
	offerings := []*Offering{{ID: 9, Kind: OfferingSub, ParentID: ptr.Ptr(int64(100))}}

	got := Resolve(cell("2025-06-10", "10:00", "Box 1"), nil, offerings)

	assert.Empty(t, got.Offerings)
}

func TestResolve_Professionals(t *testing.T) {
	window := &ProfessionalWindow{
		StartDate: types.MustDate(2025, 6, 1),
		EndDate:   types.MustDate(2025, 6, 30),
		StartTime: "10:00",
		EndTime:   "14:00",
	}
	professionals := []*Professional{
		{ID: 1, Name: "Ana", Availability: window},
		{ID: 2, Name: "No window"},
		{ID: 3, Name: "Bia", Availability: window},
	}

	got := Resolve(cell("2025-06-10", "14:00", "Box 1"), professionals, nil)
	assert.Len(t, got.Professionals, 2)
	assert.Equal(t, int64(1), got.Professionals[0].ID)
	assert.Equal(t, int64(3), got.Professionals[1].ID)

	got = Resolve(cell("2025-06-10", "14:01", "Box 1"), professionals, nil)
	assert.Empty(t, got.Professionals)
}
