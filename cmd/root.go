// Package cmd implements the runway CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"
	"github.com/theirongolddev/runway/internal/store"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagPreset   string
	flagSchedule string
	flagConfig   string
	flagDB       string
	flagQuiet    bool
	flagNoStore  bool

	// one float per coefficient, keyed by model.ParamField.Key
	flagParams = map[string]*float64{}

	// loaded once per invocation in PersistentPreRunE
	activeConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "12-month financial projection for a subscription product",
	Long: "Project traffic, conversions, revenue and costs month by month\n" +
		"from two growth curves, and compare presets and saved scenarios.",
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagPreset, "preset", "p", "", "Preset or saved scenario to project (default from config)")
	pf.StringVarP(&flagSchedule, "schedule", "s", "", "Cost schedule: overview or cost-analysis")
	pf.StringVar(&flagConfig, "config", "", "Config file path (default "+config.Path()+")")
	pf.StringVar(&flagDB, "db", "", "Scenario database path")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.BoolVar(&flagNoStore, "no-store", false, "Do not open the scenario database")

	for _, f := range model.ParamFields {
		v := new(float64)
		flagParams[f.Key] = v
		pf.Float64Var(v, paramFlagName(f.Key), 0,
			fmt.Sprintf("Override %s (range %g..%g)", f.Label, f.Min, f.Max))
	}
}

func paramFlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

// loadEnvironment reads .env files, the environment and the config file,
// in increasing order of precedence below command-line flags.
func loadEnvironment(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env", filepath.Join(config.Dir(), ".env")); err != nil {
		return err
	}
	var env config.Env
	if err := config.ParseEnv(&env); err != nil {
		return err
	}

	cfg, err := config.LoadFrom(configPath())
	if err != nil {
		return err
	}
	cfg.ApplyEnv(env)
	activeConfig = cfg

	theme.SetActive(cfg.Appearance.Theme)
	return nil
}

// run is a fully resolved projection request.
type run struct {
	Name        string // preset or scenario name, "" for custom
	Params      model.Params
	Schedule    config.Schedule
	Assumptions config.Assumptions
}

// resolveRun turns flags and config into the parameters to project.
// Precedence: --preset, then the config preset with its overrides, then
// individual coefficient flags on top of either.
func resolveRun(cmd *cobra.Command) (run, error) {
	cfg := activeConfig
	r := run{Assumptions: cfg.ResolveAssumptions()}
	scheduleName := cfg.General.Schedule

	if flagPreset != "" {
		var src pipeline.ScenarioSource
		if _, ok := config.LookupPreset(flagPreset); !ok && !flagNoStore {
			s, err := openStore()
			if err != nil {
				return run{}, err
			}
			defer func() { _ = s.Close() }()
			src = s
		}
		res, err := pipeline.Resolve(flagPreset, src)
		if err != nil {
			return run{}, err
		}
		r.Name = res.Name
		r.Params = res.Params
		if res.Schedule != "" {
			scheduleName = res.Schedule
		}
	} else {
		p, err := cfg.Resolve()
		if err != nil {
			return run{}, err
		}
		r.Params = p
		r.Name = cfg.General.Preset
		if !cfg.Params.Empty() {
			r.Name = config.MatchPreset(p)
		}
	}

	if flagSchedule != "" {
		scheduleName = flagSchedule
	}
	sched, ok := config.LookupSchedule(scheduleName)
	if !ok {
		return run{}, fmt.Errorf("unknown schedule %q", scheduleName)
	}
	r.Schedule = sched

	overridden := false
	for _, f := range model.ParamFields {
		if cmd.Flags().Changed(paramFlagName(f.Key)) {
			r.Params.Set(f.Key, *flagParams[f.Key])
			overridden = true
		}
	}
	if overridden {
		r.Name = config.MatchPreset(r.Params)
	}

	if err := r.Params.Validate(); err != nil {
		return run{}, err
	}
	return r, nil
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	if activeConfig.General.DBPath != "" {
		return activeConfig.General.DBPath
	}
	return config.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	if flagNoStore {
		return nil, errors.New("scenario database disabled by --no-store")
	}
	s, err := store.Open(dbPath())
	if err != nil {
		return nil, fmt.Errorf("opening scenario database: %w", err)
	}
	return s, nil
}

func runLabel(r run) string {
	if r.Name == "" {
		return "custom"
	}
	return r.Name
}
