// Package engine implements the 2D guillotine nesting optimizer: it
// turns a bill of required details plus available stock (fresh sheets
// and warehouse remainders) into a cutting plan, minimizing waste while
// respecting guillotine-cut geometry.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avkarpov/planarcut/internal/model"
)

// ProgressFunc receives a completion percentage in [0, 100]. It is
// invoked synchronously at coarse milestones and must not block.
type ProgressFunc func(percent int)

// restartSeedBase seeds the deterministic reshuffles used by the
// remainder multi-restart strategy. Restart i uses restartSeedBase+i,
// so identical inputs always yield identical layouts.
const restartSeedBase = 42

// Optimizer runs the guillotine nesting algorithm. It is single
// threaded and holds no state between Optimize calls.
type Optimizer struct {
	params   model.Params
	log      *slog.Logger
	progress ProgressFunc
}

// New returns an Optimizer with the given parameters.
func New(params model.Params) *Optimizer {
	return &Optimizer{params: params}
}

// SetLogger injects a structured logger. A nil logger keeps the engine
// silent.
func (o *Optimizer) SetLogger(log *slog.Logger) {
	o.log = log
}

// SetProgress installs a progress callback.
func (o *Optimizer) SetProgress(fn ProgressFunc) {
	o.progress = fn
}

func (o *Optimizer) logger() *slog.Logger {
	if o.log != nil {
		return o.log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o *Optimizer) reportProgress(percent int) {
	if o.progress == nil {
		return
	}
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	o.progress(percent)
}

// unit is one expanded instance of a source detail. Units reference the
// normalized detail record instead of deep-copying it; the unit id
// keeps traceability back to the request line.
type unit struct {
	id     string
	detail *model.Detail
}

// Optimize computes a cutting plan for the given details on the given
// fresh sheets and remainder stock. It never panics: internal faults
// are converted into a failed result carrying the fault description.
func (o *Optimizer) Optimize(details []model.Detail, fresh []model.Sheet, remainders []model.RemainderStock) (result model.OptimizationResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.logger().Error("optimizer fault", "panic", r)
			result = model.OptimizationResult{
				Success:           false,
				UnplacedDetails:   details,
				TotalWastePercent: 100.0,
				OptimizationTime:  time.Since(start),
				Message:           fmt.Sprintf("internal error: %v", r),
			}
		}
	}()

	o.logger().Info("optimization started",
		"details", len(details), "fresh_sheets", len(fresh), "remainders", len(remainders))
	o.reportProgress(0)

	if len(details) == 0 {
		return model.OptimizationResult{
			Success:           false,
			TotalWastePercent: 100.0,
			OptimizationTime:  time.Since(start),
			Message:           "no details to cut",
		}
	}

	sheets := o.normalizeSheets(fresh, remainders)
	if len(sheets) == 0 {
		return model.OptimizationResult{
			Success:           false,
			UnplacedDetails:   details,
			TotalWastePercent: 100.0,
			OptimizationTime:  time.Since(start),
			Message:           "no stock sheets available",
		}
	}

	units := o.expandDetails(details)
	groups := groupByMaterial(units)
	o.reportProgress(10)

	var layouts []model.SheetLayout
	var unplaced []unit

	progress := 10.0
	step := 80.0
	if len(groups) > 0 {
		step = 80.0 / float64(len(groups))
	}

	for _, g := range groups {
		o.logger().Info("optimizing material group",
			"material", g.material, "details", len(g.units))

		var materialSheets []model.Sheet
		for _, s := range sheets {
			if s.Material == g.material {
				materialSheets = append(materialSheets, s)
			}
		}

		if len(materialSheets) == 0 {
			o.logger().Warn("no stock for material", "material", g.material, "details", len(g.units))
			unplaced = append(unplaced, g.units...)
		} else {
			groupLayouts, groupUnplaced := o.optimizeMaterial(materialSheets, g.units)
			layouts = append(layouts, groupLayouts...)
			unplaced = append(unplaced, groupUnplaced...)
		}

		progress += step
		o.reportProgress(int(progress))
	}

	o.reportProgress(95)
	result = o.finalize(layouts, unplaced, start)
	o.reportProgress(100)

	o.logger().Info("optimization finished",
		"layouts", len(result.Layouts),
		"placed", result.TotalPlacedDetails(),
		"unplaced", len(result.UnplacedDetails),
		"efficiency_pct", result.TotalEfficiency,
		"elapsed", result.OptimizationTime)
	return result
}

// expandDetails validates request lines, expands quantities into unit
// instances and sorts them for the default placement order: largest
// area first, then priority, then id.
func (o *Optimizer) expandDetails(details []model.Detail) []unit {
	valid := make([]model.Detail, 0, len(details))
	for _, d := range details {
		if d.Width <= 0 || d.Height <= 0 || d.Material == "" {
			o.logger().Warn("skipping malformed detail",
				"id", d.ID, "width", d.Width, "height", d.Height, "material", d.Material)
			continue
		}
		valid = append(valid, d)
	}

	var units []unit
	for i := range valid {
		d := &valid[i]
		qty := d.Quantity
		if qty < 1 {
			qty = 1
		}
		for j := 0; j < qty; j++ {
			units = append(units, unit{
				id:     fmt.Sprintf("%s__%d_%d", d.ID, i+1, j+1),
				detail: d,
			})
		}
	}

	sort.SliceStable(units, func(i, j int) bool {
		ai, aj := units[i].detail.Area(), units[j].detail.Area()
		if ai != aj {
			return ai > aj
		}
		if units[i].detail.Priority != units[j].detail.Priority {
			return units[i].detail.Priority > units[j].detail.Priority
		}
		return units[i].id < units[j].id
	})
	return units
}

// normalizeSheets validates stock records, expands remainder quantities
// and orders the pool: remainders first, then by descending area.
func (o *Optimizer) normalizeSheets(fresh []model.Sheet, remainders []model.RemainderStock) []model.Sheet {
	var sheets []model.Sheet
	for _, s := range append(model.ExpandRemainders(remainders), fresh...) {
		if s.Width <= 0 || s.Height <= 0 || s.Material == "" {
			o.logger().Warn("skipping malformed sheet",
				"id", s.ID, "width", s.Width, "height", s.Height, "material", s.Material)
			continue
		}
		sheets = append(sheets, s)
	}

	sort.SliceStable(sheets, func(i, j int) bool {
		if sheets[i].IsRemainder != sheets[j].IsRemainder {
			return sheets[i].IsRemainder
		}
		return sheets[i].Area() > sheets[j].Area()
	})
	return sheets
}

type materialGroup struct {
	material string
	units    []unit
}

// groupByMaterial partitions units by material code. Groups are sorted
// by material name so runs are deterministic.
func groupByMaterial(units []unit) []materialGroup {
	byMaterial := make(map[string][]unit)
	for _, u := range units {
		byMaterial[u.detail.Material] = append(byMaterial[u.detail.Material], u)
	}

	materials := make([]string, 0, len(byMaterial))
	for m := range byMaterial {
		materials = append(materials, m)
	}
	sort.Strings(materials)

	groups := make([]materialGroup, 0, len(materials))
	for _, m := range materials {
		groups = append(groups, materialGroup{material: m, units: byMaterial[m]})
	}
	return groups
}

// optimizeMaterial places one material group. Phase 1 exhausts
// remainder sheets with the multi-restart strategy; Phase 2 clones the
// fresh-sheet template until everything is placed or a cloned sheet
// hosts nothing.
func (o *Optimizer) optimizeMaterial(sheets []model.Sheet, pool []unit) ([]model.SheetLayout, []unit) {
	var remainderSheets, freshSheets []model.Sheet
	for _, s := range sheets {
		if s.IsRemainder {
			remainderSheets = append(remainderSheets, s)
		} else {
			freshSheets = append(freshSheets, s)
		}
	}
	sort.SliceStable(remainderSheets, func(i, j int) bool {
		return remainderSheets[i].Area() > remainderSheets[j].Area()
	})

	var layouts []model.SheetLayout

	// Phase 1: remainder exhaustion.
	for _, sheet := range remainderSheets {
		if len(pool) == 0 {
			break
		}

		iterations := o.params.MaxIterationsPerSheet
		if iterations < 1 {
			iterations = 1
		}

		var best model.SheetLayout
		var bestPlaced []unit
		for it := 0; it < iterations; it++ {
			layout, placed := o.packSheet(sheet, pool, it)
			if len(placed) > len(bestPlaced) {
				best = layout
				bestPlaced = placed
			}
		}

		if len(bestPlaced) == 0 {
			o.logger().Debug("remainder sheet unusable", "sheet", sheet.ID)
			continue
		}

		layouts = append(layouts, best)
		pool = removeUnits(pool, bestPlaced)
		o.logger().Debug("remainder sheet consumed",
			"sheet", sheet.ID, "placed", len(bestPlaced), "coverage_pct", best.CoveragePercent())
	}

	// Phase 2: fresh sheet consumption by template cloning.
	if len(freshSheets) > 0 && len(pool) > 0 {
		template := freshSheets[0]
		for cloneIdx := 1; len(pool) > 0; cloneIdx++ {
			sheet := template
			sheet.ID = fmt.Sprintf("%s_copy_%d", template.ID, cloneIdx)

			layout, placed := o.packSheet(sheet, pool, 0)
			if len(placed) == 0 {
				// The remaining details cannot fit even an empty sheet of
				// this type; stop cloning to avoid an endless loop.
				o.logger().Warn("remaining details fit no empty sheet",
					"material", template.Material, "remaining", len(pool))
				break
			}

			layouts = append(layouts, layout)
			pool = removeUnits(pool, placed)
		}
	}

	return layouts, pool
}

// packSheet runs one placement pass over a copy of the pool. Iteration
// 0 keeps the default order; higher iterations reshuffle the copy with
// a seed derived from the iteration index.
func (o *Optimizer) packSheet(sheet model.Sheet, pool []unit, iteration int) (model.SheetLayout, []unit) {
	units := make([]unit, len(pool))
	copy(units, pool)

	if iteration > 0 {
		rng := rand.New(rand.NewSource(int64(restartSeedBase + iteration)))
		rng.Shuffle(len(units), func(i, j int) {
			units[i], units[j] = units[j], units[i]
		})
	}

	packer := newSheetPacker(sheet, o.params)
	placed := packer.run(units)
	return packer.finish(), placed
}

func removeUnits(pool, placed []unit) []unit {
	placedIDs := make(map[string]bool, len(placed))
	for _, u := range placed {
		placedIDs[u.id] = true
	}
	kept := pool[:0:0]
	for _, u := range pool {
		if !placedIDs[u.id] {
			kept = append(kept, u)
		}
	}
	return kept
}

// finalize aggregates layouts and leftovers into the final result.
func (o *Optimizer) finalize(layouts []model.SheetLayout, unplaced []unit, start time.Time) model.OptimizationResult {
	unplacedDetails := make([]model.Detail, 0, len(unplaced))
	for _, u := range unplaced {
		d := *u.detail
		d.ID = u.id
		d.Quantity = 1
		unplacedDetails = append(unplacedDetails, d)
	}

	if len(layouts) == 0 {
		return model.OptimizationResult{
			Success:           false,
			UnplacedDetails:   unplacedDetails,
			TotalWastePercent: 100.0,
			OptimizationTime:  time.Since(start),
			Message:           unplacedMessage(0, unplacedDetails),
		}
	}

	var totalArea, usedArea, remnantArea, wasteArea float64
	totalCost := decimal.Zero
	placedCount := 0
	for _, l := range layouts {
		totalArea += l.TotalArea()
		usedArea += l.UsedArea()
		remnantArea += l.RemnantArea()
		wasteArea += l.WasteArea()
		totalCost = totalCost.Add(l.Sheet.Cost)
		placedCount += len(l.PlacedDetails())
	}

	var efficiency, wastePercent float64
	if totalArea > 0 {
		efficiency = (usedArea + remnantArea) / totalArea * 100.0
		wastePercent = wasteArea / totalArea * 100.0
	}

	success := len(unplacedDetails) == 0
	message := fmt.Sprintf("all %d details placed on %d sheets", placedCount, len(layouts))
	if !success {
		message = unplacedMessage(placedCount, unplacedDetails)
	}

	return model.OptimizationResult{
		Success:           success,
		Layouts:           layouts,
		UnplacedDetails:   unplacedDetails,
		TotalEfficiency:   efficiency,
		TotalWastePercent: wastePercent,
		TotalCost:         totalCost,
		UsefulRemnants:    model.CollectRemnants(layouts),
		OptimizationTime:  time.Since(start),
		Message:           message,
	}
}

// unplacedMessage names the first few unplaceable details so the
// shortfall is actionable without digging through the result.
func unplacedMessage(placed int, unplaced []model.Detail) string {
	const maxNamed = 3
	names := make([]string, 0, maxNamed)
	for i, d := range unplaced {
		if i == maxNamed {
			names = append(names, "...")
			break
		}
		names = append(names, fmt.Sprintf("%s (%.0fx%.0f %s)", d.ID, d.Width, d.Height, d.Material))
	}
	return fmt.Sprintf("placed %d details, %d could not be placed: %s",
		placed, len(unplaced), strings.Join(names, ", "))
}
