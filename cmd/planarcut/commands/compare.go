package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avkarpov/planarcut/internal/engine"
	"github.com/avkarpov/planarcut/internal/job"
	"github.com/avkarpov/planarcut/internal/model"
)

var compareJobPath string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare what-if parameter scenarios for a job",
	Long: `Runs the optimizer once per parameter scenario (rotation modes, zero
kerf, no remainder indent) against the same job and prints the results
side by side.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareJobPath, "job", "j", "", "job file (JSON) to compare scenarios for")
	compareCmd.MarkFlagRequired("job")
}

func runCompare(cmd *cobra.Command, args []string) error {
	j, err := job.Load(compareJobPath)
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

	scenarios := engine.BuildDefaultScenarios(params)
	results := engine.CompareScenarios(scenarios, j.Details, j.Sheets, j.Remainders)

	fmt.Println(titleStyle.Render(fmt.Sprintf("SCENARIO COMPARISON: %s", j.Name)))
	fmt.Printf("  %-32s %7s %7s %9s %9s %9s\n",
		"Scenario", "Sheets", "Placed", "Unplaced", "Waste %", "Remnants")

	best := bestScenario(results)
	for _, r := range results {
		line := fmt.Sprintf("  %-32s %7d %7d %9d %8.1f%% %9d",
			r.Scenario.Name, r.SheetsUsed, r.PlacedDetails, r.UnplacedCount,
			r.WastePercent, r.RemnantsCount)
		if r.Scenario.Name == best {
			line += okStyle.Render("  <- best")
		}
		fmt.Println(line)
	}
	fmt.Println("")

	return nil
}

// bestScenario picks the scenario with the most placed details, using
// fewer sheets and then lower waste as tiebreakers.
func bestScenario(results []engine.ScenarioResult) string {
	if len(results) == 0 {
		return ""
	}
	best := results[0]
	for _, r := range results[1:] {
		switch {
		case r.PlacedDetails > best.PlacedDetails:
			best = r
		case r.PlacedDetails == best.PlacedDetails && r.SheetsUsed < best.SheetsUsed:
			best = r
		case r.PlacedDetails == best.PlacedDetails && r.SheetsUsed == best.SheetsUsed && r.WastePercent < best.WastePercent:
			best = r
		}
	}
	return best.Scenario.Name
}
