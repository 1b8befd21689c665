package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avkarpov/planarcut/internal/geometry"
)

// ItemKind classifies a placed rectangle on a sheet layout.
type ItemKind int

const (
	// KindDetail is a placed detail unit.
	KindDetail ItemKind = iota
	// KindRemnant is a leftover region large enough to return to stock.
	KindRemnant
	// KindWaste is scrap.
	KindWaste
)

func (k ItemKind) String() string {
	switch k {
	case KindDetail:
		return "detail"
	case KindRemnant:
		return "remnant"
	case KindWaste:
		return "waste"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind as its string form.
func (k ItemKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes the string form.
func (k *ItemKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "detail":
		*k = KindDetail
	case "remnant":
		*k = KindRemnant
	case "waste":
		*k = KindWaste
	default:
		return fmt.Errorf("unknown item kind %q", s)
	}
	return nil
}

// PlacedItem is one rectangle of a sheet layout: a detail unit, a
// reusable remnant or waste. Detail items carry a reference back to the
// source Detail and the expanded unit id.
type PlacedItem struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Kind   ItemKind `json:"kind"`

	Detail  *Detail `json:"detail,omitempty"`  // KindDetail only
	UnitID  string  `json:"unit_id,omitempty"` // KindDetail only
	Rotated bool    `json:"rotated,omitempty"`
}

// Area returns Width * Height.
func (p PlacedItem) Area() float64 {
	return p.Width * p.Height
}

// Rect returns the item's rectangle.
func (p PlacedItem) Rect() geometry.Rect {
	return geometry.NewRect(p.X, p.Y, p.Width, p.Height)
}

// SheetLayout is the cutting plan for one consumed sheet. Once accepted
// into an OptimizationResult the union of all placed items exactly
// partitions the sheet: no gaps, no overlaps.
type SheetLayout struct {
	Sheet Sheet        `json:"sheet"`
	Items []PlacedItem `json:"items"`
}

// PlacedDetails returns the detail items in placement order.
func (l SheetLayout) PlacedDetails() []PlacedItem {
	return l.itemsOfKind(KindDetail)
}

// Remnants returns the business-remainder items.
func (l SheetLayout) Remnants() []PlacedItem {
	return l.itemsOfKind(KindRemnant)
}

// WasteItems returns the scrap items.
func (l SheetLayout) WasteItems() []PlacedItem {
	return l.itemsOfKind(KindWaste)
}

func (l SheetLayout) itemsOfKind(kind ItemKind) []PlacedItem {
	var out []PlacedItem
	for _, item := range l.Items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

// UsedArea returns the total area covered by placed details.
func (l SheetLayout) UsedArea() float64 {
	return l.areaOfKind(KindDetail)
}

// RemnantArea returns the total area classified as business remainder.
func (l SheetLayout) RemnantArea() float64 {
	return l.areaOfKind(KindRemnant)
}

// WasteArea returns the total scrap area.
func (l SheetLayout) WasteArea() float64 {
	return l.areaOfKind(KindWaste)
}

func (l SheetLayout) areaOfKind(kind ItemKind) float64 {
	var total float64
	for _, item := range l.Items {
		if item.Kind == kind {
			total += item.Area()
		}
	}
	return total
}

// TotalArea returns the sheet area.
func (l SheetLayout) TotalArea() float64 {
	return l.Sheet.Area()
}

// CoveragePercent returns the share of the sheet covered by details and
// remnants, in percent.
func (l SheetLayout) CoveragePercent() float64 {
	total := l.TotalArea()
	if total == 0 {
		return 0
	}
	return (l.UsedArea() + l.RemnantArea()) / total * 100.0
}

// OptimizationResult is the full outcome of one optimization run.
type OptimizationResult struct {
	Success           bool            `json:"success"`
	Layouts           []SheetLayout   `json:"layouts"`
	UnplacedDetails   []Detail        `json:"unplaced_details"`
	TotalEfficiency   float64         `json:"total_efficiency"`    // percent
	TotalWastePercent float64         `json:"total_waste_percent"` // percent
	TotalCost         decimal.Decimal `json:"total_cost"`
	UsefulRemnants    []Remnant       `json:"useful_remnants"`
	OptimizationTime  time.Duration   `json:"optimization_time"`
	Message           string          `json:"message"`
}

// TotalPlacedDetails returns the number of detail units placed across
// all layouts.
func (r OptimizationResult) TotalPlacedDetails() int {
	var n int
	for _, l := range r.Layouts {
		n += len(l.PlacedDetails())
	}
	return n
}
