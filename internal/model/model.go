// Package model defines the domain records shared by the nesting engine,
// importers and exporters: details to cut, stock sheets, placements and
// optimization results.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Detail represents a rectangular piece that must be cut from stock.
// A Detail describes a request line; before optimization it is expanded
// into Quantity independent unit instances, each with a globally unique
// id derived from (ID, sequence index).
type Detail struct {
	ID        string  `json:"id"`
	Width     float64 `json:"width"`  // mm
	Height    float64 `json:"height"` // mm
	Material  string  `json:"material"`
	Quantity  int     `json:"quantity"`
	CanRotate bool    `json:"can_rotate"`
	Priority  int     `json:"priority"`
}

// NewDetail returns a Detail with rotation allowed, the common case for
// mesh and film materials.
func NewDetail(id string, w, h float64, material string, qty int) Detail {
	return Detail{
		ID:        id,
		Width:     w,
		Height:    h,
		Material:  material,
		Quantity:  qty,
		CanRotate: true,
	}
}

// Area returns the area of a single unit of this detail in sq mm.
func (d Detail) Area() float64 {
	return d.Width * d.Height
}

// Sheet represents one unit of available stock: either a fresh sheet or
// a single warehouse remainder. Remainder stock with quantity > 1 is
// expanded into independent Sheet instances before optimization, see
// ExpandRemainders.
type Sheet struct {
	ID          string          `json:"id"`
	Width       float64         `json:"width"`  // mm
	Height      float64         `json:"height"` // mm
	Material    string          `json:"material"`
	Cost        decimal.Decimal `json:"cost"` // per sheet
	IsRemainder bool            `json:"is_remainder"`
	RemainderID string          `json:"remainder_id,omitempty"` // warehouse record the sheet came from
}

// NewSheet returns a fresh stock sheet.
func NewSheet(id string, w, h float64, material string) Sheet {
	return Sheet{ID: id, Width: w, Height: h, Material: material}
}

// Area returns the sheet area in sq mm.
func (s Sheet) Area() float64 {
	return s.Width * s.Height
}

// RemainderStock describes a warehouse remainder record with an
// available unit count, as delivered by the stock system.
type RemainderStock struct {
	ID       string          `json:"id"`
	Width    float64         `json:"width"`  // mm
	Height   float64         `json:"height"` // mm
	Material string          `json:"material"`
	Cost     decimal.Decimal `json:"cost"`
	Quantity int             `json:"quantity"`
}

// ExpandRemainders converts remainder records into independent Sheet
// instances, one per available unit. A record with quantity 3 becomes
// 3 sheets sharing the same RemainderID.
func ExpandRemainders(remainders []RemainderStock) []Sheet {
	var sheets []Sheet
	for _, r := range remainders {
		qty := r.Quantity
		if qty < 1 {
			qty = 1
		}
		for j := 0; j < qty; j++ {
			sheets = append(sheets, Sheet{
				ID:          fmt.Sprintf("rem_%s_%d", r.ID, j+1),
				Width:       r.Width,
				Height:      r.Height,
				Material:    r.Material,
				Cost:        r.Cost,
				IsRemainder: true,
				RemainderID: r.ID,
			})
		}
	}
	return sheets
}
