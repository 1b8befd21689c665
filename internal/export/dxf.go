package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/avkarpov/planarcut/internal/model"
)

// DXF layer names, one per item class so CAM software can toggle them
// independently.
const (
	layerSheet    = "SHEET"
	layerDetails  = "DETAILS"
	layerRemnants = "REMNANTS"
	layerWaste    = "WASTE"
)

// ExportDXF writes one DXF drawing per sheet layout into dir, creating
// it if needed. Files are named sheet_01.dxf, sheet_02.dxf and so on,
// in plan order.
func ExportDXF(dir string, result model.OptimizationResult) error {
	if len(result.Layouts) == 0 {
		return fmt.Errorf("no layouts to export")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create DXF directory: %w", err)
	}

	for i, layout := range result.Layouts {
		path := filepath.Join(dir, fmt.Sprintf("sheet_%02d.dxf", i+1))
		if err := ExportLayoutDXF(path, layout); err != nil {
			return fmt.Errorf("failed to export sheet %d (%s): %w", i+1, layout.Sheet.ID, err)
		}
	}

	return nil
}

// ExportLayoutDXF writes a single sheet layout as a DXF drawing. The
// sheet outline and each item class go on separate layers; all geometry
// is axis-aligned rectangles drawn as LINE entities in sheet
// coordinates (mm, origin bottom-left).
func ExportLayoutDXF(path string, layout model.SheetLayout) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerSheet, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add sheet layer: %w", err)
	}
	drawRect(d, 0, 0, layout.Sheet.Width, layout.Sheet.Height)

	layers := []struct {
		name  string
		color color.ColorNumber
		items []model.PlacedItem
	}{
		{layerDetails, color.Green, layout.PlacedDetails()},
		{layerRemnants, color.Cyan, layout.Remnants()},
		{layerWaste, color.Red, layout.WasteItems()},
	}

	for _, l := range layers {
		if len(l.items) == 0 {
			continue
		}
		if _, err := d.AddLayer(l.name, l.color, table.LT_CONTINUOUS, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
		for _, item := range l.items {
			drawRect(d, item.X, item.Y, item.Width, item.Height)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// drawRect adds the four edges of an axis-aligned rectangle to the
// current layer.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}
