package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/runway/internal/model"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.Preset != PresetCurrent {
		t.Errorf("preset = %q, want %q", cfg.General.Preset, PresetCurrent)
	}
	if cfg.General.Schedule != ScheduleOverview {
		t.Errorf("schedule = %q, want %q", cfg.General.Schedule, ScheduleOverview)
	}
}

func TestSaveToLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.General.Preset = PresetCapital
	cfg.Appearance.Theme = "flexoki-light"
	logD := -1.5
	cfg.Params.LogD = &logD
	price := 7.0
	cfg.Tiers = map[string]TierOverride{TierBasic: {Price: &price}}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.General.Preset != PresetCapital || got.Appearance.Theme != "flexoki-light" {
		t.Fatalf("round trip lost general settings: %+v", got)
	}
	if got.Params.LogD == nil || *got.Params.LogD != -1.5 {
		t.Fatalf("round trip lost log_d override")
	}
	if got.Daemon.Interval != cfg.Daemon.Interval {
		t.Fatalf("interval = %v, want %v", got.Daemon.Interval, cfg.Daemon.Interval)
	}
}

func TestLoadFrom_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\npreset ="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolve(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want, _ := LookupPreset(PresetCurrent)
	if p != want.Params {
		t.Fatalf("Resolve = %+v, want %+v", p, want.Params)
	}

	expA := 120000.0
	cfg.Params.ExpA = &expA
	p, err = cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve with override: %v", err)
	}
	if p.ExpA != 120000 || p.ExpB != want.Params.ExpB {
		t.Fatalf("override not applied: %+v", p)
	}
}

func TestResolve_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.Preset = "moonshot"
	if _, err := cfg.Resolve(); err == nil {
		t.Fatal("expected unknown preset error")
	}

	cfg = DefaultConfig()
	one := 1.0
	cfg.Params.LogB = &one
	_, err := cfg.Resolve()
	if !errors.Is(err, model.ErrInvalidParams) {
		t.Fatalf("err = %v, want ErrInvalidParams", err)
	}
}

func TestParamOverrides_SetParams(t *testing.T) {
	var o ParamOverrides
	if !o.Empty() {
		t.Fatal("zero overrides should be empty")
	}
	preset, _ := LookupPreset(PresetCapital)
	o.SetParams(preset.Params)
	if o.Empty() {
		t.Fatal("overrides should not be empty after SetParams")
	}
	cfg := DefaultConfig()
	cfg.Params = o
	p, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if p != preset.Params {
		t.Fatalf("Resolve = %+v, want %+v", p, preset.Params)
	}
}

func TestResolveAssumptions(t *testing.T) {
	cfg := DefaultConfig()
	a := cfg.ResolveAssumptions()
	if a.ConversionValue != 10.11 || a.ProgrammerCost != 1500 {
		t.Fatalf("unexpected defaults: %+v", a)
	}

	rate := 0.037
	price := 6.0
	share := 3.5
	cfg.Assumptions.TokenCostPerUser = &rate
	cfg.Tiers = map[string]TierOverride{
		"Basic":      {Price: &price},
		"enterprise": {Price: &price, Share: &share},
	}
	a = cfg.ResolveAssumptions()
	if a.TokenCostPerUser != 0.037 {
		t.Errorf("TokenCostPerUser = %v, want 0.037", a.TokenCostPerUser)
	}
	if a.Tiers[1].Price != 6 {
		t.Errorf("basic price = %v, want 6", a.Tiers[1].Price)
	}
	if len(a.Tiers) != len(DefaultTiers)+1 || a.Tiers[len(a.Tiers)-1].Name != "enterprise" {
		t.Errorf("enterprise tier not appended: %+v", a.Tiers)
	}
	if DefaultTiers[1].Price != 5 {
		t.Fatal("ResolveAssumptions mutated DefaultTiers")
	}
}

func TestLookupPresetAndSchedule(t *testing.T) {
	if _, ok := LookupPreset(" Capital "); !ok {
		t.Error("LookupPreset should ignore case and spaces")
	}
	if _, ok := LookupSchedule("cost-analysis"); !ok {
		t.Error("cost-analysis schedule missing")
	}
	if _, ok := LookupSchedule("weekly"); ok {
		t.Error("unexpected schedule")
	}
	capital, _ := LookupPreset(PresetCapital)
	if got := MatchPreset(capital.Params); got != PresetCapital {
		t.Errorf("MatchPreset = %q, want %q", got, PresetCapital)
	}
	if got := MatchPreset(model.Params{}); got != "" {
		t.Errorf("MatchPreset(zero) = %q, want empty", got)
	}
}

func TestEnv(t *testing.T) {
	t.Setenv("RUNWAY_PRESET", "capital")
	t.Setenv("RUNWAY_THEME", "terminal")
	var e Env
	if err := ParseEnv(&e); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	cfg := DefaultConfig()
	cfg.ApplyEnv(e)
	if cfg.General.Preset != "capital" || cfg.Appearance.Theme != "terminal" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.General.Schedule != ScheduleOverview {
		t.Fatalf("empty env var overwrote schedule: %q", cfg.General.Schedule)
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "RUNWAY_TEST_DOTENV_VALUE"
	os.Unsetenv(key)
	t.Cleanup(func() { os.Unsetenv(key) })

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("%s = %q, want from-file", key, got)
	}
}
