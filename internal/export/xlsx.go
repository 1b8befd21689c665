package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/avkarpov/planarcut/internal/model"
)

const (
	sheetPlan  = "Cutting Plan"
	sheetStats = "Statistics"
)

// ExportXLSX writes the cutting plan as an Excel workbook with two
// sheets: a per-item placement table and an overall statistics summary.
func ExportXLSX(path string, result model.OptimizationResult) error {
	if len(result.Layouts) == 0 {
		return fmt.Errorf("no layouts to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetPlan); err != nil {
		return fmt.Errorf("failed to rename plan sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetStats); err != nil {
		return fmt.Errorf("failed to create statistics sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writePlanSheet(f, result, headerStyle); err != nil {
		return err
	}
	if err := writeStatsSheet(f, result, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writePlanSheet(f *excelize.File, result model.OptimizationResult, headerStyle int) error {
	header := []interface{}{
		"Sheet #", "Sheet ID", "Material", "Stock Type", "Item Type",
		"Detail", "Unit", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Rotated",
	}
	if err := f.SetSheetRow(sheetPlan, "A1", &header); err != nil {
		return fmt.Errorf("failed to write plan header: %w", err)
	}
	if err := f.SetCellStyle(sheetPlan, "A1", "L1", headerStyle); err != nil {
		return fmt.Errorf("failed to style plan header: %w", err)
	}

	rowNum := 2
	for sheetIdx, layout := range result.Layouts {
		stockType := "fresh"
		if layout.Sheet.IsRemainder {
			stockType = "remainder"
		}

		for _, item := range layout.Items {
			detailID := ""
			if item.Detail != nil {
				detailID = item.Detail.ID
			}
			rotated := ""
			if item.Kind == model.KindDetail {
				rotated = "no"
				if item.Rotated {
					rotated = "yes"
				}
			}

			row := []interface{}{
				sheetIdx + 1, layout.Sheet.ID, layout.Sheet.Material, stockType,
				item.Kind.String(), detailID, item.UnitID,
				item.X, item.Y, item.Width, item.Height, rotated,
			}
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return fmt.Errorf("failed to compute plan cell: %w", err)
			}
			if err := f.SetSheetRow(sheetPlan, cell, &row); err != nil {
				return fmt.Errorf("failed to write plan row %d: %w", rowNum, err)
			}
			rowNum++
		}
	}

	return nil
}

func writeStatsSheet(f *excelize.File, result model.OptimizationResult, headerStyle int) error {
	var usedArea, remnantArea, wasteArea, totalArea float64
	for _, layout := range result.Layouts {
		usedArea += layout.UsedArea()
		remnantArea += layout.RemnantArea()
		wasteArea += layout.WasteArea()
		totalArea += layout.TotalArea()
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Sheets used", len(result.Layouts)},
		{"Details placed", result.TotalPlacedDetails()},
		{"Details unplaced", len(result.UnplacedDetails)},
		{"Useful remnants", len(result.UsefulRemnants)},
		{"Total area (mm2)", totalArea},
		{"Used area (mm2)", usedArea},
		{"Remnant area (mm2)", remnantArea},
		{"Waste area (mm2)", wasteArea},
		{"Efficiency (%)", result.TotalEfficiency},
		{"Waste (%)", result.TotalWastePercent},
		{"Stock cost", result.TotalCost.String()},
		{"Optimization time", result.OptimizationTime.String()},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute stats cell: %w", err)
		}
		if err := f.SetSheetRow(sheetStats, cell, &row); err != nil {
			return fmt.Errorf("failed to write stats row %d: %w", i+1, err)
		}
	}
	if err := f.SetCellStyle(sheetStats, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style stats header: %w", err)
	}

	return nil
}
