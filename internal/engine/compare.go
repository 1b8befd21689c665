package engine

import (
	"fmt"

	"github.com/avkarpov/planarcut/internal/model"
)

// Scenario defines a named parameter set to compare.
type Scenario struct {
	Name   string
	Params model.Params
}

// ScenarioResult holds the optimization result and computed statistics
// for a single scenario.
type ScenarioResult struct {
	Scenario      Scenario
	Result        model.OptimizationResult
	SheetsUsed    int
	PlacedDetails int
	WastePercent  float64
	RemnantsCount int
	UnplacedCount int
}

// CompareScenarios runs the optimizer once per scenario against the
// same inputs, enabling side-by-side comparison of parameter choices
// (rotation modes, kerf widths, remainder thresholds).
func CompareScenarios(scenarios []Scenario, details []model.Detail, fresh []model.Sheet, remainders []model.RemainderStock) []ScenarioResult {
	results := make([]ScenarioResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := New(scenario.Params).Optimize(details, fresh, remainders)

		results = append(results, ScenarioResult{
			Scenario:      scenario,
			Result:        result,
			SheetsUsed:    len(result.Layouts),
			PlacedDetails: result.TotalPlacedDetails(),
			WastePercent:  result.TotalWastePercent,
			RemnantsCount: len(result.UsefulRemnants),
			UnplacedCount: len(result.UnplacedDetails),
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if variants of the given
// parameters worth comparing before committing a cutting plan.
func BuildDefaultScenarios(base model.Params) []Scenario {
	scenarios := []Scenario{{Name: "Current Settings", Params: base}}

	if base.RotationMode != model.RotationOptimal {
		optimal := base
		optimal.RotationMode = model.RotationOptimal
		scenarios = append(scenarios, Scenario{Name: "Optimal Rotation", Params: optimal})
	}

	if base.CuttingWidth > 0 {
		noKerf := base
		noKerf.CuttingWidth = 0
		scenarios = append(scenarios, Scenario{Name: "Zero Kerf", Params: noKerf})
	}

	if base.RemainderIndent > 0 {
		noIndent := base
		noIndent.RemainderIndent = 0
		scenarios = append(scenarios, Scenario{
			Name:   fmt.Sprintf("No Remainder Indent (was %.0fmm)", base.RemainderIndent),
			Params: noIndent,
		})
	}

	return scenarios
}
