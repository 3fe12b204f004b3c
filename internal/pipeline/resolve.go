package pipeline

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
)

// ScenarioSource looks up saved scenarios by name.
type ScenarioSource interface {
	Get(name string) (model.Scenario, error)
}

// ErrUnknownScenario is returned when a name is neither a preset nor a
// saved scenario.
var ErrUnknownScenario = errors.New("unknown preset or scenario")

// Resolved is a parameter set with the name and schedule it came from.
type Resolved struct {
	Name     string
	Schedule string
	Params   model.Params
	Saved    bool
}

// Resolve finds the parameters named by name. Built-in presets win over
// saved scenarios of the same name. src may be nil. Only a store.ErrNotFound
// from src becomes ErrUnknownScenario; other lookup failures are returned
// as they are.
func Resolve(name string, src ScenarioSource) (Resolved, error) {
	if preset, ok := config.LookupPreset(name); ok {
		return Resolved{Name: preset.Name, Params: preset.Params}, nil
	}
	if src == nil {
		return Resolved{}, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	sc, err := src.Get(name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return Resolved{}, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	case err != nil:
		return Resolved{}, fmt.Errorf("loading scenario %s: %w", name, err)
	}
	return Resolved{Name: sc.Name, Schedule: sc.Schedule, Params: sc.Params, Saved: true}, nil
}
