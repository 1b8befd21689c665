// Package job handles loading and saving cutting jobs and their
// results as JSON files.
package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avkarpov/planarcut/internal/model"
)

// Job is a complete cutting request: the details to produce, the stock
// to cut them from, and the optimizer parameters to use.
type Job struct {
	Name       string                 `json:"name"`
	Details    []model.Detail         `json:"details"`
	Sheets     []model.Sheet          `json:"sheets"`
	Remainders []model.RemainderStock `json:"remainders,omitempty"`
	Params     model.Params           `json:"params"`
}

// New returns an empty job with default parameters.
func New(name string) Job {
	return Job{
		Name:   name,
		Params: model.DefaultParams(),
	}
}

// Load reads a job from a JSON file.
func Load(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job file: %w", err)
	}

	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("failed to parse job file: %w", err)
	}
	return j, nil
}

// Save writes the job to a JSON file, creating parent directories if
// they do not exist.
func Save(path string, j Job) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create job directory: %w", err)
	}

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}
	return nil
}

// Validate checks that the job can be handed to the optimizer: at
// least one detail, and some stock for every material that details
// request.
func (j Job) Validate() error {
	if len(j.Details) == 0 {
		return fmt.Errorf("job %q has no details", j.Name)
	}
	if len(j.Sheets) == 0 && len(j.Remainders) == 0 {
		return fmt.Errorf("job %q has no stock sheets", j.Name)
	}

	stocked := make(map[string]bool)
	for _, s := range j.Sheets {
		stocked[s.Material] = true
	}
	for _, r := range j.Remainders {
		stocked[r.Material] = true
	}
	for _, d := range j.Details {
		if d.Material != "" && !stocked[d.Material] {
			return fmt.Errorf("job %q has no stock for material %q", j.Name, d.Material)
		}
	}
	return nil
}

// SaveResult writes an optimization result to a JSON file, creating
// parent directories if they do not exist.
func SaveResult(path string, result model.OptimizationResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}

// LoadResult reads a previously saved optimization result.
func LoadResult(path string) (model.OptimizationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.OptimizationResult{}, fmt.Errorf("failed to read result file: %w", err)
	}

	var result model.OptimizationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.OptimizationResult{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	return result, nil
}
