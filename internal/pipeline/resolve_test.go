package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
)

type fakeSource map[string]model.Scenario

func (f fakeSource) Get(name string) (model.Scenario, error) {
	sc, ok := f[name]
	if !ok {
		return sc, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return sc, nil
}

// brokenSource fails every lookup the way a locked or corrupt database would.
type brokenSource struct{ err error }

func (b brokenSource) Get(string) (model.Scenario, error) { return model.Scenario{}, b.err }

func TestResolve(t *testing.T) {
	src := fakeSource{
		"bridge":  {Name: "bridge", Schedule: config.ScheduleCostAnalysis, Params: model.Params{ExpA: 1}},
		"current": {Name: "current", Params: model.Params{ExpA: 2}},
	}

	r, err := Resolve("Capital", src)
	if err != nil || r.Saved || r.Name != config.PresetCapital {
		t.Fatalf("Resolve(Capital) = %+v, %v", r, err)
	}

	r, err = Resolve("current", src)
	if err != nil || r.Saved || r.Params.ExpA != 150000 {
		t.Fatalf("preset should shadow saved scenario: %+v, %v", r, err)
	}

	r, err = Resolve("bridge", src)
	if err != nil || !r.Saved || r.Schedule != config.ScheduleCostAnalysis || r.Params.ExpA != 1 {
		t.Fatalf("Resolve(bridge) = %+v, %v", r, err)
	}

	_, err = Resolve("nowhere", src)
	if !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("err = %v, want ErrUnknownScenario", err)
	}

	if _, err := Resolve("nowhere", nil); !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("nil source err = %v", err)
	}
}

func TestResolve_StoreFailureIsNotUnknown(t *testing.T) {
	ioErr := errors.New("database is locked")
	_, err := Resolve("bridge", brokenSource{err: ioErr})
	if !errors.Is(err, ioErr) {
		t.Fatalf("err = %v, want it to wrap %v", err, ioErr)
	}
	if errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("storage failure reported as unknown scenario: %v", err)
	}
}
