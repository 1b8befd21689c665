package engine

import (
	"math"

	"github.com/avkarpov/planarcut/internal/model"
)

// classifyLeftover decides whether a leftover free region is a business
// remainder worth returning to stock or plain waste. The region is
// shrunk by the remainder indent on every side, then its smaller and
// larger effective sides must both exceed the corresponding planar
// thresholds.
func classifyLeftover(params model.Params, w, h float64) model.ItemKind {
	effW := w - 2*params.RemainderIndent
	effH := h - 2*params.RemainderIndent
	if effW <= 0 || effH <= 0 {
		return model.KindWaste
	}

	minSide := math.Min(effW, effH)
	maxSide := math.Max(effW, effH)
	minParam := math.Min(params.PlanarMinRemainderWidth, params.PlanarMinRemainderHeight)
	maxParam := math.Max(params.PlanarMinRemainderWidth, params.PlanarMinRemainderHeight)

	if minSide > minParam && maxSide > maxParam {
		return model.KindRemnant
	}
	return model.KindWaste
}
