package engine

import (
	"math"

	"github.com/avkarpov/planarcut/internal/geometry"
	"github.com/avkarpov/planarcut/internal/model"
)

// exactFitTolerance is the slack within which a placement counts as
// matching a free area's width or height.
const exactFitTolerance = 0.1

// sheetPacker tracks the free areas of a single sheet while details are
// placed with guillotine cuts. Overlaps are impossible by construction:
// every placement consumes one free area and replaces it with the
// disjoint rectangles of its guillotine split.
type sheetPacker struct {
	sheet  model.Sheet
	params model.Params
	free   []geometry.Rect
	items  []model.PlacedItem
}

func newSheetPacker(sheet model.Sheet, params model.Params) *sheetPacker {
	return &sheetPacker{
		sheet:  sheet,
		params: params,
		free:   []geometry.Rect{geometry.NewRect(0, 0, sheet.Width, sheet.Height)},
	}
}

// candidate is one valid (free area, unit, orientation) combination.
type candidate struct {
	unitIdx int
	areaIdx int
	width   float64
	height  float64
	rotated bool
	score   float64
}

// run places as many units as possible and returns the placed ones in
// placement order.
func (p *sheetPacker) run(units []unit) []unit {
	var placed []unit
	pool := make([]unit, len(units))
	copy(pool, units)

	for len(pool) > 0 && len(p.free) > 0 {
		best := candidate{unitIdx: -1, score: math.Inf(1)}

		for ai, area := range p.free {
			for ui, u := range pool {
				for _, orient := range p.orientations(u.detail) {
					if area.Width < orient.w || area.Height < orient.h {
						continue
					}
					if !p.validSplit(area, orient.w, orient.h) {
						continue
					}
					score := p.score(area, orient.w, orient.h, orient.rotated)
					if score < best.score {
						best = candidate{
							unitIdx: ui,
							areaIdx: ai,
							width:   orient.w,
							height:  orient.h,
							rotated: orient.rotated,
							score:   score,
						}
					}
				}
			}
		}

		if best.unitIdx < 0 {
			break
		}

		u := pool[best.unitIdx]
		area := p.free[best.areaIdx]

		p.items = append(p.items, model.PlacedItem{
			X:       area.X,
			Y:       area.Y,
			Width:   best.width,
			Height:  best.height,
			Kind:    model.KindDetail,
			Detail:  u.detail,
			UnitID:  u.id,
			Rotated: best.rotated,
		})
		placed = append(placed, u)
		pool = append(pool[:best.unitIdx], pool[best.unitIdx+1:]...)

		newAreas := p.split(area, best.width, best.height)
		p.free = append(p.free[:best.areaIdx], append(newAreas, p.free[best.areaIdx+1:]...)...)
	}

	return placed
}

type orientation struct {
	w, h    float64
	rotated bool
}

func (p *sheetPacker) orientations(d *model.Detail) []orientation {
	orients := []orientation{{w: d.Width, h: d.Height}}
	if p.params.RotationMode != model.RotationNone && d.CanRotate && d.Width != d.Height {
		orients = append(orients, orientation{w: d.Height, h: d.Width, rotated: true})
	}
	return orients
}

// validSplit checks that cutting a w x h piece out of the area leaves
// no strip thinner than MinWasteSide. Remainders are measured after the
// kerf is consumed, so a leftover narrower than the blade counts as
// fully cut away.
func (p *sheetPacker) validSplit(area geometry.Rect, w, h float64) bool {
	remRight := area.Width - w - p.params.CuttingWidth
	if remRight < 0 {
		remRight = 0
	}
	remTop := area.Height - h - p.params.CuttingWidth
	if remTop < 0 {
		remTop = 0
	}

	if remRight > 0 && remRight < p.params.MinWasteSide {
		return false
	}
	if remTop > 0 && remTop < p.params.MinWasteSide {
		return false
	}
	// An L-shaped leftover needs both sub-rectangles usable.
	if remRight > 0 && remTop > 0 && h < p.params.MinWasteSide {
		return false
	}
	return true
}

// score rates a valid placement; lower is better. The base is the area
// left unused in the chosen free rectangle, discounted for remainder
// sheets and exact-fit placements, and penalized for rotation outside
// the optimal mode.
func (p *sheetPacker) score(area geometry.Rect, w, h float64, rotated bool) float64 {
	score := area.Area() - w*h

	if p.sheet.IsRemainder {
		score *= 0.5
	}
	if math.Abs(area.Width-w) < exactFitTolerance || math.Abs(area.Height-h) < exactFitTolerance {
		if p.sheet.IsRemainder {
			score *= 0.6
		} else {
			score *= 0.8
		}
	}
	if rotated && p.params.RotationMode != model.RotationOptimal {
		score *= 1.1
	}
	return score
}

// split performs the guillotine cut for a piece placed at the area's
// origin and returns the free rectangles to track further. The kerf
// inflates the piece footprint (clamped to the area); kerf strips and
// sub-rectangles too small to track are recorded as waste immediately,
// so the placed items always partition the sheet exactly.
func (p *sheetPacker) split(area geometry.Rect, w, h float64) []geometry.Rect {
	effW := w + p.params.CuttingWidth
	if effW > area.Width {
		effW = area.Width
	}
	effH := h + p.params.CuttingWidth
	if effH > area.Height {
		effH = area.Height
	}

	if effW > w {
		p.addWaste(geometry.NewRect(area.X+w, area.Y, effW-w, h))
	}
	if effH > h {
		p.addWaste(geometry.NewRect(area.X, area.Y+h, effW, effH-h))
	}

	var areas []geometry.Rect

	right := geometry.NewRect(area.X+effW, area.Y, area.Width-effW, effH)
	if right.Width > 0 && right.Height > 0 {
		if right.Width >= p.params.MinWasteSide && right.Height >= p.params.MinWasteSide {
			areas = append(areas, right)
		} else {
			p.addWaste(right)
		}
	}

	top := geometry.NewRect(area.X, area.Y+effH, area.Width, area.Height-effH)
	if top.Width > 0 && top.Height > 0 {
		if top.Width >= p.params.MinWasteSide && top.Height >= p.params.MinWasteSide {
			areas = append(areas, top)
		} else {
			p.addWaste(top)
		}
	}

	return areas
}

func (p *sheetPacker) addWaste(r geometry.Rect) {
	p.items = append(p.items, model.PlacedItem{
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Kind:   model.KindWaste,
	})
}

// finish classifies every remaining free area as remnant or waste and
// returns the completed layout.
func (p *sheetPacker) finish() model.SheetLayout {
	for _, area := range p.free {
		if area.Width <= 0 || area.Height <= 0 {
			continue
		}
		p.items = append(p.items, model.PlacedItem{
			X:      area.X,
			Y:      area.Y,
			Width:  area.Width,
			Height: area.Height,
			Kind:   classifyLeftover(p.params, area.Width, area.Height),
		})
	}
	p.free = nil
	return model.SheetLayout{Sheet: p.sheet, Items: p.items}
}
