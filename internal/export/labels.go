// Package export provides functionality for exporting cutting plans to
// workshop file formats: Excel reports, DXF drawings, and QR-coded
// detail labels.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/avkarpov/planarcut/internal/model"
)

// LabelInfo holds the data encoded into each detail label's QR code.
type LabelInfo struct {
	UnitID     string  `json:"unit"`
	DetailID   string  `json:"detail"`
	Width      float64 `json:"width_mm"`
	Height     float64 `json:"height_mm"`
	Material   string  `json:"material"`
	SheetIndex int     `json:"sheet"`
	SheetID    string  `json:"sheet_id"`
	Rotated    bool    `json:"rotated"`
	X          float64 `json:"x_mm"`
	Y          float64 `json:"y_mm"`
}

const qrPixels = 256

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ExportLabels writes one QR code PNG per placed detail into dir,
// creating it if needed. Each QR encodes the label metadata as JSON so
// a shop-floor scanner can match a cut piece back to its sheet and
// position. File names follow <sheet>_<unit>.png.
func ExportLabels(dir string, result model.OptimizationResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no placed details to generate labels for")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create label directory: %w", err)
	}

	for _, label := range labels {
		payload, err := json.Marshal(label)
		if err != nil {
			return fmt.Errorf("failed to marshal label for %q: %w", label.UnitID, err)
		}

		name := fmt.Sprintf("%02d_%s.png", label.SheetIndex, sanitizeFilename(label.UnitID))
		path := filepath.Join(dir, name)
		if err := qrcode.WriteFile(string(payload), qrcode.Medium, qrPixels, path); err != nil {
			return fmt.Errorf("failed to write QR label %q: %w", name, err)
		}
	}

	return nil
}

// CollectLabelInfos extracts label information from an optimization
// result for use in label generation or alternative export formats.
func CollectLabelInfos(result model.OptimizationResult) []LabelInfo {
	var labels []LabelInfo
	for sheetIdx, layout := range result.Layouts {
		for _, item := range layout.PlacedDetails() {
			info := LabelInfo{
				UnitID:     item.UnitID,
				Width:      item.Width,
				Height:     item.Height,
				Material:   layout.Sheet.Material,
				SheetIndex: sheetIdx + 1,
				SheetID:    layout.Sheet.ID,
				Rotated:    item.Rotated,
				X:          item.X,
				Y:          item.Y,
			}
			if item.Detail != nil {
				info.DetailID = item.Detail.ID
			}
			labels = append(labels, info)
		}
	}
	return labels
}

func sanitizeFilename(s string) string {
	return unsafeFilenameChars.ReplaceAllString(s, "_")
}
