package model

import (
	"encoding/json"
	"fmt"
)

// RotationMode controls whether details may be rotated 90 degrees
// during placement.
type RotationMode int

const (
	// RotationNone forbids rotation entirely.
	RotationNone RotationMode = iota
	// RotationAllow90 permits rotation for details that allow it, with a
	// mild scoring penalty against unnecessary rotation.
	RotationAllow90
	// RotationOptimal permits rotation without penalty; the scoring
	// function alone decides the orientation.
	RotationOptimal
)

func (m RotationMode) String() string {
	switch m {
	case RotationNone:
		return "none"
	case RotationAllow90:
		return "allow_90"
	case RotationOptimal:
		return "optimal"
	default:
		return fmt.Sprintf("RotationMode(%d)", int(m))
	}
}

// ParseRotationMode converts the wire form used in job files and CLI
// flags into a RotationMode.
func ParseRotationMode(s string) (RotationMode, error) {
	switch s {
	case "none":
		return RotationNone, nil
	case "allow_90":
		return RotationAllow90, nil
	case "optimal":
		return RotationOptimal, nil
	default:
		return RotationNone, fmt.Errorf("unknown rotation mode %q", s)
	}
}

// MarshalJSON encodes the mode as its string form.
func (m RotationMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes the string form.
func (m *RotationMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRotationMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Params holds the optimizer configuration. All lengths are mm.
type Params struct {
	// MinWasteSide is the minimum viable side for a leftover strip.
	// Guillotine cuts that would produce a thinner non-zero strip are
	// rejected as invalid.
	MinWasteSide float64 `json:"min_waste_side"`

	// PlanarMinRemainderWidth and PlanarMinRemainderHeight are the
	// classification thresholds for business remainders.
	PlanarMinRemainderWidth  float64 `json:"planar_min_remainder_width"`
	PlanarMinRemainderHeight float64 `json:"planar_min_remainder_height"`

	// RemainderIndent is the margin subtracted from each side of a
	// leftover region before classification.
	RemainderIndent float64 `json:"remainder_indent"`

	RotationMode RotationMode `json:"rotation_mode"`

	// CuttingWidth is the blade kerf. When > 0 it is consumed by every
	// guillotine split: the placed piece's footprint is inflated by the
	// kerf (clamped to the free area) and the kerf strips are recorded
	// as waste, so layouts still partition the sheet exactly. Zero
	// disables kerf accounting.
	CuttingWidth float64 `json:"cutting_width"`

	// MaxIterationsPerSheet is the restart count for remainder sheets.
	MaxIterationsPerSheet int `json:"max_iterations_per_sheet"`

	// TimeBudget is advisory only; the engine never interrupts itself.
	// Callers needing a hard deadline must wrap the call externally.
	TimeBudgetSeconds float64 `json:"time_budget_seconds,omitempty"`
}

// DefaultParams returns the parameter set used by the fabrication
// workflow unless a job overrides it.
func DefaultParams() Params {
	return Params{
		MinWasteSide:             10.0,
		PlanarMinRemainderWidth:  500.0,
		PlanarMinRemainderHeight: 500.0,
		RemainderIndent:          15.0,
		RotationMode:             RotationAllow90,
		CuttingWidth:             1.0,
		MaxIterationsPerSheet:    3,
	}
}
