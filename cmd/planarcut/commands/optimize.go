package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/avkarpov/planarcut/internal/engine"
	"github.com/avkarpov/planarcut/internal/export"
	"github.com/avkarpov/planarcut/internal/job"
	"github.com/avkarpov/planarcut/internal/model"
)

var (
	optimizeJobPath   string
	optimizeXLSXPath  string
	optimizeDXFDir    string
	optimizeLabelsDir string
	optimizeResultOut string
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00B86B")).
			MarginBottom(1)

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B86B"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB000"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Compute a cutting plan for a job file",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeJobPath, "job", "j", "", "job file (JSON) to optimize")
	optimizeCmd.Flags().StringVar(&optimizeXLSXPath, "xlsx", "", "write the cutting plan as an Excel workbook")
	optimizeCmd.Flags().StringVar(&optimizeDXFDir, "dxf-dir", "", "write per-sheet DXF drawings into this directory")
	optimizeCmd.Flags().StringVar(&optimizeLabelsDir, "labels-dir", "", "write QR detail labels into this directory")
	optimizeCmd.Flags().StringVar(&optimizeResultOut, "result", "", "write the full result as JSON")
	optimizeCmd.MarkFlagRequired("job")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	log := newLogger()

	j, err := job.Load(optimizeJobPath)
	if err != nil {
		return err
	}
	if err := j.Validate(); err != nil {
		return err
	}

	params := j.Params
	if params == (model.Params{}) {
		params = paramsFromConfig()
	}

	opt := engine.New(params)
	opt.SetLogger(log)
	opt.SetProgress(func(percent int) {
		log.Debug("optimization progress", "percent", percent)
	})

	result := opt.Optimize(j.Details, j.Sheets, j.Remainders)
	printSummary(j.Name, result)

	if optimizeXLSXPath != "" {
		if err := export.ExportXLSX(optimizeXLSXPath, result); err != nil {
			return err
		}
		log.Info("wrote Excel report", "path", optimizeXLSXPath)
	}
	if optimizeDXFDir != "" {
		if err := export.ExportDXF(optimizeDXFDir, result); err != nil {
			return err
		}
		log.Info("wrote DXF drawings", "dir", optimizeDXFDir)
	}
	if optimizeLabelsDir != "" {
		if err := export.ExportLabels(optimizeLabelsDir, result); err != nil {
			return err
		}
		log.Info("wrote QR labels", "dir", optimizeLabelsDir)
	}
	if optimizeResultOut != "" {
		if err := job.SaveResult(optimizeResultOut, result); err != nil {
			return err
		}
		log.Info("wrote result JSON", "path", optimizeResultOut)
	}

	if !result.Success {
		return fmt.Errorf("%d details could not be placed", len(result.UnplacedDetails))
	}
	return nil
}

func printSummary(name string, result model.OptimizationResult) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("CUTTING PLAN: %s", name)))

	status := okStyle.Render("all details placed")
	if !result.Success {
		status = warnStyle.Render(result.Message)
	}
	fmt.Printf("  Status:        %s\n", status)
	fmt.Printf("  Sheets used:   %d\n", len(result.Layouts))
	fmt.Printf("  Details:       %d placed, %d unplaced\n",
		result.TotalPlacedDetails(), len(result.UnplacedDetails))
	fmt.Printf("  Efficiency:    %.1f%%\n", result.TotalEfficiency)
	fmt.Printf("  Waste:         %.1f%%\n", result.TotalWastePercent)
	fmt.Printf("  Remnants:      %d reusable\n", len(result.UsefulRemnants))
	if !result.TotalCost.IsZero() {
		fmt.Printf("  Stock cost:    %s\n", result.TotalCost.StringFixed(2))
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("  computed in %s", result.OptimizationTime)))

	for i, layout := range result.Layouts {
		kind := "fresh"
		if layout.Sheet.IsRemainder {
			kind = "remainder"
		}
		fmt.Println(dimStyle.Render(fmt.Sprintf(
			"  sheet %d: %s %.0fx%.0f %s, %d details, %.1f%% covered",
			i+1, kind, layout.Sheet.Width, layout.Sheet.Height, layout.Sheet.Material,
			len(layout.PlacedDetails()), layout.CoveragePercent())))
	}
	fmt.Println("")
}
