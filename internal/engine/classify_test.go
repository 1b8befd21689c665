package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avkarpov/planarcut/internal/model"
)

func TestClassifyLeftover(t *testing.T) {
	params := model.DefaultParams()
	params.PlanarMinRemainderWidth = 500
	params.PlanarMinRemainderHeight = 500
	params.RemainderIndent = 15

	tests := []struct {
		name string
		w, h float64
		want model.ItemKind
	}{
		{"large square", 600, 600, model.KindRemnant},
		{"indent pushes below threshold", 520, 520, model.KindWaste},
		{"long thin strip", 1000, 100, model.KindWaste},
		{"smaller than indent", 20, 600, model.KindWaste},
		{"orientation does not matter", 600, 700, model.KindRemnant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyLeftover(params, tt.w, tt.h))
		})
	}
}

func TestClassifyLeftover_ThresholdIsStrict(t *testing.T) {
	params := model.DefaultParams()
	params.PlanarMinRemainderWidth = 500
	params.PlanarMinRemainderHeight = 500
	params.RemainderIndent = 0

	// Effective sides must be strictly greater than the thresholds.
	assert.Equal(t, model.KindWaste, classifyLeftover(params, 500, 500))
	assert.Equal(t, model.KindRemnant, classifyLeftover(params, 501, 501))
}

func TestClassifyLeftover_AsymmetricThresholds(t *testing.T) {
	params := model.DefaultParams()
	params.PlanarMinRemainderWidth = 300
	params.PlanarMinRemainderHeight = 700
	params.RemainderIndent = 0

	// min side compares against the smaller threshold, max side against
	// the larger one, regardless of which axis is which.
	assert.Equal(t, model.KindRemnant, classifyLeftover(params, 400, 800))
	assert.Equal(t, model.KindRemnant, classifyLeftover(params, 800, 400))
	assert.Equal(t, model.KindWaste, classifyLeftover(params, 400, 600))
	assert.Equal(t, model.KindWaste, classifyLeftover(params, 200, 900))
}
