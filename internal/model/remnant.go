package model

import (
	"sort"

	"github.com/google/uuid"
)

// Remnant is a classified business remainder: an offcut large enough to
// return to the warehouse as reusable stock for future jobs.
type Remnant struct {
	ID         string  `json:"id"`
	SheetID    string  `json:"sheet_id"`    // layout sheet it was cut from
	SheetIndex int     `json:"sheet_index"` // index of that layout in the result
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Material   string  `json:"material"`
}

// Area returns the remnant area in sq mm.
func (r Remnant) Area() float64 {
	return r.Width * r.Height
}

// ToSheet converts the remnant into remainder stock for a future
// optimization run.
func (r Remnant) ToSheet() Sheet {
	return Sheet{
		ID:          r.ID,
		Width:       r.Width,
		Height:      r.Height,
		Material:    r.Material,
		IsRemainder: true,
		RemainderID: r.ID,
	}
}

// CollectRemnants gathers every remnant-kind item across the accepted
// layouts into identified stock records, largest first.
func CollectRemnants(layouts []SheetLayout) []Remnant {
	var remnants []Remnant
	for i, layout := range layouts {
		for _, item := range layout.Remnants() {
			remnants = append(remnants, Remnant{
				ID:         uuid.New().String()[:8],
				SheetID:    layout.Sheet.ID,
				SheetIndex: i,
				X:          item.X,
				Y:          item.Y,
				Width:      item.Width,
				Height:     item.Height,
				Material:   layout.Sheet.Material,
			})
		}
	}
	sort.SliceStable(remnants, func(i, j int) bool {
		return remnants[i].Area() > remnants[j].Area()
	})
	return remnants
}

// TotalRemnantArea returns the combined area of the given remnants.
func TotalRemnantArea(remnants []Remnant) float64 {
	var total float64
	for _, r := range remnants {
		total += r.Area()
	}
	return total
}
