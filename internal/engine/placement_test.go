package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkarpov/planarcut/internal/geometry"
	"github.com/avkarpov/planarcut/internal/model"
)

func packerParams() model.Params {
	p := model.DefaultParams()
	p.CuttingWidth = 0
	p.RemainderIndent = 0
	p.RotationMode = model.RotationNone
	return p
}

func TestValidSplit(t *testing.T) {
	p := newSheetPacker(model.NewSheet("S", 1000, 1000, "mesh"), packerParams())
	area := geometry.NewRect(0, 0, 1000, 1000)

	tests := []struct {
		name string
		w, h float64
		want bool
	}{
		{"clean split", 500, 500, true},
		{"exact fill", 1000, 1000, true},
		{"exact width", 1000, 400, true},
		{"right sliver", 995, 500, false},
		{"top sliver", 500, 995, false},
		{"right remainder at minimum", 990, 1000, true},
		{"l-shape with unusable height", 500, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.validSplit(area, tt.w, tt.h))
		})
	}
}

func TestValidSplit_KerfEatsNarrowRemainder(t *testing.T) {
	params := packerParams()
	params.CuttingWidth = 10
	p := newSheetPacker(model.NewSheet("S", 100, 100, "mesh"), params)
	area := geometry.NewRect(0, 0, 100, 100)

	// Leftover 5mm is narrower than the blade, so it is fully cut away
	// and no sliver remains.
	assert.True(t, p.validSplit(area, 95, 100))
	// Leftover 15mm survives the blade as a 5mm sliver: rejected.
	assert.False(t, p.validSplit(area, 85, 100))
}

func TestSplit_ProducesRightAndTopAreas(t *testing.T) {
	p := newSheetPacker(model.NewSheet("S", 1000, 800, "mesh"), packerParams())
	area := geometry.NewRect(0, 0, 1000, 800)

	areas := p.split(area, 600, 300)

	require.Len(t, areas, 2)
	assert.Equal(t, geometry.NewRect(600, 0, 400, 300), areas[0], "right area spans the piece height")
	assert.Equal(t, geometry.NewRect(0, 300, 1000, 500), areas[1], "top area spans the full width")
	assert.Empty(t, p.items, "no waste recorded without kerf")
}

func TestSplit_ExactFillLeavesNothing(t *testing.T) {
	p := newSheetPacker(model.NewSheet("S", 500, 500, "mesh"), packerParams())

	areas := p.split(geometry.NewRect(0, 0, 500, 500), 500, 500)

	assert.Empty(t, areas)
	assert.Empty(t, p.items)
}

func TestSplit_KerfStripsBecomeWaste(t *testing.T) {
	params := packerParams()
	params.CuttingWidth = 10
	p := newSheetPacker(model.NewSheet("S", 100, 100, "mesh"), params)

	areas := p.split(geometry.NewRect(0, 0, 100, 100), 40, 100)

	require.Len(t, areas, 1)
	assert.Equal(t, geometry.NewRect(50, 0, 50, 100), areas[0])

	require.Len(t, p.items, 1)
	kerf := p.items[0]
	assert.Equal(t, model.KindWaste, kerf.Kind)
	assert.Equal(t, geometry.NewRect(40, 0, 10, 100), kerf.Rect())

	// Piece + kerf strip + free area partition the region exactly.
	total := 40*100.0 + kerf.Area() + areas[0].Area()
	assert.InDelta(t, 100*100.0, total, 1e-9)
}

func TestScore_RemainderSheetsPreferred(t *testing.T) {
	params := packerParams()
	fresh := newSheetPacker(model.NewSheet("F", 1000, 1000, "mesh"), params)

	remainderSheet := model.NewSheet("R", 1000, 1000, "mesh")
	remainderSheet.IsRemainder = true
	remainder := newSheetPacker(remainderSheet, params)

	area := geometry.NewRect(0, 0, 1000, 500)
	assert.Equal(t, fresh.score(area, 600, 300, false)*0.5, remainder.score(area, 600, 300, false))
}

func TestScore_ExactFitRewarded(t *testing.T) {
	p := newSheetPacker(model.NewSheet("S", 1000, 1000, "mesh"), packerParams())
	area := geometry.NewRect(0, 0, 1000, 500)

	loose := p.score(area, 900, 300, false)
	exactWidth := p.score(area, 1000, 300, false)

	// Exact width leaves less leftover AND gets the exact-fit discount.
	assert.Less(t, exactWidth, loose)
	assert.InDelta(t, (area.Area()-1000*300)*0.8, exactWidth, 1e-9)
}

func TestScore_RotationPenalty(t *testing.T) {
	params := packerParams()
	params.RotationMode = model.RotationAllow90
	p := newSheetPacker(model.NewSheet("S", 1000, 1000, "mesh"), params)
	area := geometry.NewRect(0, 0, 1000, 500)

	straight := p.score(area, 600, 300, false)
	rotated := p.score(area, 600, 300, true)
	assert.InDelta(t, straight*1.1, rotated, 1e-9)

	params.RotationMode = model.RotationOptimal
	optimal := newSheetPacker(model.NewSheet("S", 1000, 1000, "mesh"), params)
	assert.Equal(t, optimal.score(area, 600, 300, false), optimal.score(area, 600, 300, true),
		"optimal mode rotates without penalty")
}

func TestRun_PlacesAtFreeAreaOrigin(t *testing.T) {
	d := model.NewDetail("D1", 600, 400, "mesh", 1)
	p := newSheetPacker(model.NewSheet("S", 1000, 1000, "mesh"), packerParams())

	placed := p.run([]unit{{id: "D1__1_1", detail: &d}})

	require.Len(t, placed, 1)
	layout := p.finish()
	details := layout.PlacedDetails()
	require.Len(t, details, 1)
	assert.Equal(t, 0.0, details[0].X)
	assert.Equal(t, 0.0, details[0].Y)
	assert.Equal(t, "D1__1_1", details[0].UnitID)
	assert.False(t, details[0].Rotated)
}
