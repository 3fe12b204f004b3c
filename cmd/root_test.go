package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/spf13/cobra"
)

// resetFlags restores the package-level flag state after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	prevCfg := activeConfig
	activeConfig = config.DefaultConfig()
	t.Cleanup(func() {
		activeConfig = prevCfg
		flagPreset, flagSchedule, flagDB = "", "", ""
		flagNoStore = false
	})
}

// paramCommand returns a command carrying only the coefficient flags,
// parsed from args.
func paramCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	for _, f := range model.ParamFields {
		c.Flags().Float64Var(flagParams[f.Key], paramFlagName(f.Key), 0, "")
	}
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return c
}

func TestResolveRun_DefaultsToConfigPreset(t *testing.T) {
	resetFlags(t)

	r, err := resolveRun(paramCommand(t))
	if err != nil {
		t.Fatalf("resolveRun: %v", err)
	}
	current, _ := config.LookupPreset(config.PresetCurrent)
	if r.Name != config.PresetCurrent || r.Params != current.Params {
		t.Fatalf("got %q %+v", r.Name, r.Params)
	}
	if r.Schedule.Name != config.ScheduleOverview {
		t.Fatalf("schedule = %q", r.Schedule.Name)
	}
}

func TestResolveRun_PresetAndScheduleFlags(t *testing.T) {
	resetFlags(t)
	flagPreset = "Capital"
	flagSchedule = config.ScheduleCostAnalysis

	r, err := resolveRun(paramCommand(t))
	if err != nil {
		t.Fatalf("resolveRun: %v", err)
	}
	if r.Name != config.PresetCapital || r.Schedule.Name != config.ScheduleCostAnalysis {
		t.Fatalf("got %q on %q", r.Name, r.Schedule.Name)
	}
}

func TestResolveRun_ParamFlagMakesCustom(t *testing.T) {
	resetFlags(t)

	r, err := resolveRun(paramCommand(t, "--exp-a", "160000"))
	if err != nil {
		t.Fatalf("resolveRun: %v", err)
	}
	if r.Params.ExpA != 160000 || r.Name != "" || runLabel(r) != "custom" {
		t.Fatalf("got %q ExpA=%v", r.Name, r.Params.ExpA)
	}
	// unchanged flags keep preset values
	if r.Params.ExpB != 1.20 {
		t.Fatalf("ExpB = %v", r.Params.ExpB)
	}
}

func TestResolveRun_OverridesMatchingPresetKeepName(t *testing.T) {
	resetFlags(t)
	capital, _ := config.LookupPreset(config.PresetCapital)
	activeConfig.Params.SetParams(capital.Params)

	r, err := resolveRun(paramCommand(t))
	if err != nil {
		t.Fatalf("resolveRun: %v", err)
	}
	if r.Name != config.PresetCapital {
		t.Fatalf("name = %q", r.Name)
	}
}

func TestResolveRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		preset   string
		schedule string
		args     []string
	}{
		{"unknown schedule", "", "weekly", nil},
		{"unknown preset without store", "seed", "", nil},
		{"invalid log base", "", "", []string{"--log-b", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			flagPreset, flagSchedule = tt.preset, tt.schedule
			flagNoStore = true
			if _, err := resolveRun(paramCommand(t, tt.args...)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	t.Run("unknown preset is ErrUnknownScenario", func(t *testing.T) {
		resetFlags(t)
		flagPreset = "seed"
		flagNoStore = true
		_, err := resolveRun(paramCommand(t))
		if !errors.Is(err, pipeline.ErrUnknownScenario) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestResolveRun_SavedScenario(t *testing.T) {
	resetFlags(t)
	flagDB = filepath.Join(t.TempDir(), "scenarios.db")

	s, err := store.Open(flagDB)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p := model.Params{ExpA: 170000, ExpB: 1.3, ExpC: -1, ExpD: -30000, LogA: 3, LogB: 3, LogC: -0.5, LogD: -1.5}
	if _, err := s.Save(model.Scenario{Name: "seed", Schedule: config.ScheduleCostAnalysis, Params: p}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = s.Close()

	flagPreset = "seed"
	r, err := resolveRun(paramCommand(t))
	if err != nil {
		t.Fatalf("resolveRun: %v", err)
	}
	if r.Name != "seed" || r.Params != p || r.Schedule.Name != config.ScheduleCostAnalysis {
		t.Fatalf("got %q %+v on %q", r.Name, r.Params, r.Schedule.Name)
	}
}

func TestPresetReference(t *testing.T) {
	resetFlags(t)
	r, err := resolveRun(paramCommand(t))
	if err != nil {
		t.Fatalf("resolveRun: %v", err)
	}
	ref, ok := presetReference(r)
	if !ok {
		t.Fatal("expected a reference for the current preset")
	}
	if !matchesReference(project(r).Totals, ref) {
		t.Fatalf("current preset totals differ from reference %+v", ref)
	}

	r.Params.ExpA = 160000
	if _, ok := presetReference(r); ok {
		t.Fatal("modified params should have no reference")
	}
}
