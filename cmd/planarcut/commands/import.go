package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avkarpov/planarcut/internal/importer"
	"github.com/avkarpov/planarcut/internal/job"
)

var (
	importOutPath  string
	importJobName  string
	importMaterial string
)

var importCmd = &cobra.Command{
	Use:   "import <details.csv|details.xlsx>",
	Short: "Import a detail list into a job file",
	Long: `Reads a detail list from a CSV or Excel file and writes a job file
skeleton. Stock sheets and parameters can then be filled in by hand or
merged from an existing job.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOutPath, "out", "o", "job.json", "output job file")
	importCmd.Flags().StringVar(&importJobName, "name", "", "job name (defaults to the input file name)")
	importCmd.Flags().StringVar(&importMaterial, "material", "", "material for rows without a material column")
}

func runImport(cmd *cobra.Command, args []string) error {
	log := newLogger()
	path := args[0]

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		result = importer.ImportExcel(path, importMaterial)
	default:
		result = importer.ImportCSV(path, importMaterial)
	}

	for _, w := range result.Warnings {
		log.Warn("import warning", "message", w)
	}
	for _, e := range result.Errors {
		log.Error("import error", "message", e)
	}
	if len(result.Details) == 0 {
		return fmt.Errorf("no usable details in %s", path)
	}

	name := importJobName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	j := job.New(name)
	j.Details = result.Details
	if err := job.Save(importOutPath, j); err != nil {
		return err
	}

	log.Info("job file written",
		"path", importOutPath, "details", len(j.Details),
		"skipped_rows", len(result.Errors))
	fmt.Println(okStyle.Render(fmt.Sprintf(
		"imported %d details into %s (add stock sheets before optimizing)",
		len(j.Details), importOutPath)))
	return nil
}
