package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkarpov/planarcut/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultParams()
	base.CuttingWidth = 2.5

	scenarios := BuildDefaultScenarios(base)

	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"Current Settings",
		"Optimal Rotation",
		"Zero Kerf",
		"No Remainder Indent (was 15mm)",
	}, names)
	assert.Equal(t, base, scenarios[0].Params)
	assert.Equal(t, 0.0, scenarios[2].Params.CuttingWidth)
}

func TestBuildDefaultScenarios_SkipsRedundantVariants(t *testing.T) {
	base := model.DefaultParams()
	base.RotationMode = model.RotationOptimal
	base.CuttingWidth = 0
	base.RemainderIndent = 0

	scenarios := BuildDefaultScenarios(base)

	require.Len(t, scenarios, 1, "nothing to vary when base already has each variant's value")
	assert.Equal(t, "Current Settings", scenarios[0].Name)
}

func TestCompareScenarios_RotationChangesOutcome(t *testing.T) {
	// Upright the detail fits no sheet; rotated it does, so the two
	// scenarios must diverge on placement count.
	noRotation := testParams()
	withRotation := testParams()
	withRotation.RotationMode = model.RotationAllow90

	details := []model.Detail{model.NewDetail("D1", 800, 400, "mesh", 1)}
	fresh := []model.Sheet{model.NewSheet("S1", 500, 1000, "mesh")}

	results := CompareScenarios([]Scenario{
		{Name: "fixed", Params: noRotation},
		{Name: "rotatable", Params: withRotation},
	}, details, fresh, nil)

	require.Len(t, results, 2)

	fixed, rotatable := results[0], results[1]
	assert.Equal(t, "fixed", fixed.Scenario.Name)
	assert.Equal(t, 0, fixed.PlacedDetails)
	assert.Equal(t, 1, fixed.UnplacedCount)
	assert.Equal(t, 0, fixed.SheetsUsed)

	assert.Equal(t, 1, rotatable.PlacedDetails)
	assert.Equal(t, 0, rotatable.UnplacedCount)
	assert.Equal(t, 1, rotatable.SheetsUsed)
	assert.True(t, rotatable.Result.Success)
}

func TestCompareScenarios_InputsNotMutated(t *testing.T) {
	details := []model.Detail{model.NewDetail("D1", 400, 400, "mesh", 2)}
	fresh := []model.Sheet{model.NewSheet("S1", 1000, 1000, "mesh")}

	first := CompareScenarios(BuildDefaultScenarios(model.DefaultParams()), details, fresh, nil)
	second := CompareScenarios(BuildDefaultScenarios(model.DefaultParams()), details, fresh, nil)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].PlacedDetails, second[i].PlacedDetails, "scenario %q", first[i].Scenario.Name)
		assert.Equal(t, first[i].WastePercent, second[i].WastePercent, "scenario %q", first[i].Scenario.Name)
	}
}
