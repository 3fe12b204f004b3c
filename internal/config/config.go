package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/theirongolddev/runway/internal/model"
)

// Config holds all runway configuration.
type Config struct {
	General     GeneralConfig           `toml:"general"`
	Appearance  AppearanceConfig        `toml:"appearance"`
	Params      ParamOverrides          `toml:"params"`
	Assumptions AssumptionOverrides     `toml:"assumptions"`
	Tiers       map[string]TierOverride `toml:"tiers,omitempty"`
	Daemon      DaemonConfig            `toml:"daemon"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Preset   string `toml:"preset"`
	Schedule string `toml:"schedule"`
	DBPath   string `toml:"db_path,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ParamOverrides replaces individual preset coefficients.
type ParamOverrides struct {
	ExpA *float64 `toml:"exp_a,omitempty"`
	ExpB *float64 `toml:"exp_b,omitempty"`
	ExpC *float64 `toml:"exp_c,omitempty"`
	ExpD *float64 `toml:"exp_d,omitempty"`
	LogA *float64 `toml:"log_a,omitempty"`
	LogB *float64 `toml:"log_b,omitempty"`
	LogC *float64 `toml:"log_c,omitempty"`
	LogD *float64 `toml:"log_d,omitempty"`
}

// AssumptionOverrides replaces the fixed business constants.
type AssumptionOverrides struct {
	ConversionValue      *float64 `toml:"conversion_value,omitempty"`
	ProgrammerCost       *float64 `toml:"programmer_cost,omitempty"`
	InfrastructureBase   *float64 `toml:"infrastructure_base,omitempty"`
	InfrastructureGrowth *float64 `toml:"infrastructure_growth,omitempty"`
	TokenCostPerUser     *float64 `toml:"token_cost_per_user,omitempty"`
	FreeUserCost         *float64 `toml:"free_user_cost,omitempty"`
}

// TierOverride holds per-tier catalogue overrides.
type TierOverride struct {
	Price       *float64 `toml:"price,omitempty"`
	InputTokens *int64   `toml:"input_tokens,omitempty"`
	Share       *float64 `toml:"share,omitempty"`
}

// DaemonConfig holds settings for the background projection server.
type DaemonConfig struct {
	Addr     string        `toml:"addr"`
	Interval time.Duration `toml:"interval"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Preset:   PresetCurrent,
			Schedule: ScheduleOverview,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:     "127.0.0.1:8787",
			Interval: 5 * time.Second,
		},
	}
}

// Dir returns the XDG-compliant config directory.
// RUNWAY_CONFIG_DIR takes precedence when set.
func Dir() string {
	if dir := os.Getenv("RUNWAY_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "runway")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDBPath returns the scenario database location.
func DefaultDBPath() string {
	return filepath.Join(Dir(), "scenarios.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a config file at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from Dir or an explicit flag
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // see LoadFrom
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Resolve applies the parameter overrides on top of the configured preset.
func (c Config) Resolve() (model.Params, error) {
	preset, ok := LookupPreset(c.General.Preset)
	if !ok {
		return model.Params{}, fmt.Errorf("unknown preset %q", c.General.Preset)
	}
	p := preset.Params
	c.Params.apply(&p)
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("config params: %w", err)
	}
	return p, nil
}

func (o ParamOverrides) apply(p *model.Params) {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.ExpA, o.ExpA)
	set(&p.ExpB, o.ExpB)
	set(&p.ExpC, o.ExpC)
	set(&p.ExpD, o.ExpD)
	set(&p.LogA, o.LogA)
	set(&p.LogB, o.LogB)
	set(&p.LogC, o.LogC)
	set(&p.LogD, o.LogD)
}

// SetParams records p as explicit overrides.
func (o *ParamOverrides) SetParams(p model.Params) {
	f := func(v float64) *float64 { return &v }
	*o = ParamOverrides{
		ExpA: f(p.ExpA), ExpB: f(p.ExpB), ExpC: f(p.ExpC), ExpD: f(p.ExpD),
		LogA: f(p.LogA), LogB: f(p.LogB), LogC: f(p.LogC), LogD: f(p.LogD),
	}
}

// Empty reports whether no override is set.
func (o ParamOverrides) Empty() bool {
	return o == ParamOverrides{}
}
