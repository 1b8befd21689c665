package job

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avkarpov/planarcut/internal/model"
)

func sampleJob() Job {
	j := New("window batch 12")
	j.Details = []model.Detail{
		model.NewDetail("Frame", 1200, 800, "mesh", 2),
		model.NewDetail("Insert", 400, 300, "glass", 1),
	}
	j.Sheets = []model.Sheet{
		model.NewSheet("S1", 2000, 1500, "mesh"),
		model.NewSheet("S2", 1000, 1000, "glass"),
	}
	j.Remainders = []model.RemainderStock{
		{ID: "R1", Width: 600, Height: 600, Material: "mesh", Quantity: 1},
	}
	return j
}

func TestSaveAndLoadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")

	saved := sampleJob()
	saved.Params.CuttingWidth = 4.0
	saved.Params.RotationMode = model.RotationOptimal

	if err := Save(path, saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "window batch 12" {
		t.Errorf("expected name 'window batch 12', got %q", loaded.Name)
	}
	if len(loaded.Details) != 2 {
		t.Errorf("expected 2 details, got %d", len(loaded.Details))
	}
	if loaded.Details[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", loaded.Details[0].Quantity)
	}
	if len(loaded.Remainders) != 1 {
		t.Errorf("expected 1 remainder, got %d", len(loaded.Remainders))
	}
	if loaded.Params.CuttingWidth != 4.0 {
		t.Errorf("expected kerf 4.0, got %f", loaded.Params.CuttingWidth)
	}
	if loaded.Params.RotationMode != model.RotationOptimal {
		t.Errorf("expected optimal rotation, got %v", loaded.Params.RotationMode)
	}
}

func TestSaveJobCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "job.json")

	if err := Save(path, sampleJob()); err != nil {
		t.Fatalf("Save should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("job file was not created")
	}
}

func TestLoadJobMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadJobInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not valid json{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadJobWithoutParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	data := []byte(`{"name":"bare","details":[{"id":"D1","width":100,"height":200,"material":"mesh","quantity":1}],"sheets":[{"id":"S1","width":1000,"height":1000,"material":"mesh"}]}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Parameter defaulting is the caller's call; a job file without a
	// params block loads with the zero value.
	if loaded.Params != (model.Params{}) {
		t.Errorf("expected zero params, got %+v", loaded.Params)
	}
	if loaded.Name != "bare" {
		t.Errorf("expected name 'bare', got %q", loaded.Name)
	}
}

func TestValidate(t *testing.T) {
	j := sampleJob()
	if err := j.Validate(); err != nil {
		t.Fatalf("valid job rejected: %v", err)
	}

	noDetails := j
	noDetails.Details = nil
	if err := noDetails.Validate(); err == nil {
		t.Error("expected error for job without details")
	}

	noStock := j
	noStock.Sheets = nil
	noStock.Remainders = nil
	if err := noStock.Validate(); err == nil {
		t.Error("expected error for job without stock")
	}

	wrongMaterial := sampleJob()
	wrongMaterial.Details = append(wrongMaterial.Details, model.NewDetail("Odd", 100, 100, "steel", 1))
	if err := wrongMaterial.Validate(); err == nil {
		t.Error("expected error for material without stock")
	}
}

func TestValidate_RemainderOnlyStock(t *testing.T) {
	j := New("remainders only")
	j.Details = []model.Detail{model.NewDetail("D1", 100, 100, "mesh", 1)}
	j.Remainders = []model.RemainderStock{
		{ID: "R1", Width: 500, Height: 500, Material: "mesh", Quantity: 1},
	}

	if err := j.Validate(); err != nil {
		t.Fatalf("remainder-only stock should be valid: %v", err)
	}
}

func TestSaveAndLoadResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")

	detail := model.NewDetail("Frame", 600, 400, "mesh", 1)
	result := model.OptimizationResult{
		Success: true,
		Layouts: []model.SheetLayout{
			{
				Sheet: model.NewSheet("S1", 1000, 1000, "mesh"),
				Items: []model.PlacedItem{
					{X: 0, Y: 0, Width: 600, Height: 400, Kind: model.KindDetail, Detail: &detail, UnitID: "Frame__1_1"},
					{X: 600, Y: 0, Width: 400, Height: 400, Kind: model.KindWaste},
					{X: 0, Y: 400, Width: 1000, Height: 600, Kind: model.KindRemnant},
				},
			},
		},
		TotalEfficiency: 84.0,
		Message:         "all 1 details placed on 1 sheets",
	}

	if err := SaveResult(path, result); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	loaded, err := LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult failed: %v", err)
	}

	if !loaded.Success {
		t.Error("expected success flag to survive the roundtrip")
	}
	if len(loaded.Layouts) != 1 {
		t.Fatalf("expected 1 layout, got %d", len(loaded.Layouts))
	}
	if len(loaded.Layouts[0].Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(loaded.Layouts[0].Items))
	}
	if loaded.Layouts[0].Items[2].Kind != model.KindRemnant {
		t.Errorf("expected remnant kind, got %v", loaded.Layouts[0].Items[2].Kind)
	}
	if loaded.TotalEfficiency != 84.0 {
		t.Errorf("expected efficiency 84.0, got %f", loaded.TotalEfficiency)
	}
}
