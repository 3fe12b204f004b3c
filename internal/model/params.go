// Package model defines domain types for runway projections.
package model

import (
	"errors"
	"fmt"
	"math"
)

// Params holds the eight curve coefficients driving a projection.
// ExpA..ExpD shape the traffic curve views = a*b^(month-c)+d.
// LogA..LogD shape the conversion curve a*ln(month-c)/ln(b)+d.
type Params struct {
	ExpA float64 `json:"exp_a" yaml:"exp_a" toml:"exp_a"`
	ExpB float64 `json:"exp_b" yaml:"exp_b" toml:"exp_b"`
	ExpC float64 `json:"exp_c" yaml:"exp_c" toml:"exp_c"`
	ExpD float64 `json:"exp_d" yaml:"exp_d" toml:"exp_d"`
	LogA float64 `json:"log_a" yaml:"log_a" toml:"log_a"`
	LogB float64 `json:"log_b" yaml:"log_b" toml:"log_b"`
	LogC float64 `json:"log_c" yaml:"log_c" toml:"log_c"`
	LogD float64 `json:"log_d" yaml:"log_d" toml:"log_d"`
}

// ParamField describes one adjustable coefficient and its control range.
type ParamField struct {
	Key   string
	Label string
	Group string
	Min   float64
	Max   float64
	Step  float64
}

// Parameter groups.
const (
	GroupTraffic    = "traffic"
	GroupConversion = "conversion"
)

// ParamFields lists the coefficients in display order.
var ParamFields = []ParamField{
	{Key: "exp_a", Label: "Scale (a)", Group: GroupTraffic, Min: 10000, Max: 200000, Step: 10000},
	{Key: "exp_b", Label: "Growth base (b)", Group: GroupTraffic, Min: 0.1, Max: 2, Step: 0.1},
	{Key: "exp_c", Label: "Phase shift (c)", Group: GroupTraffic, Min: -2, Max: 2, Step: 0.1},
	{Key: "exp_d", Label: "Offset (d)", Group: GroupTraffic, Min: -100000, Max: 100000, Step: 10000},
	{Key: "log_a", Label: "Amplitude (a)", Group: GroupConversion, Min: 0.1, Max: 10, Step: 0.1},
	{Key: "log_b", Label: "Log base (b)", Group: GroupConversion, Min: 1.1, Max: 10, Step: 0.1},
	{Key: "log_c", Label: "Shift (c)", Group: GroupConversion, Min: -1, Max: 0.9, Step: 0.1},
	{Key: "log_d", Label: "Offset (d)", Group: GroupConversion, Min: -5, Max: 5, Step: 0.1},
}

// LookupField returns the field with the given key.
func LookupField(key string) (ParamField, bool) {
	for _, f := range ParamFields {
		if f.Key == key {
			return f, true
		}
	}
	return ParamField{}, false
}

// Clamp limits v to the field's range.
func (f ParamField) Clamp(v float64) float64 {
	return math.Max(f.Min, math.Min(f.Max, v))
}

// Decimals is the number of fractional digits needed to show a step.
func (f ParamField) Decimals() int {
	d := 0
	for s := f.Step; d < 6 && math.Abs(s-math.Round(s)) > 1e-9; s *= 10 {
		d++
	}
	return d
}

func (p *Params) ptr(key string) *float64 {
	switch key {
	case "exp_a":
		return &p.ExpA
	case "exp_b":
		return &p.ExpB
	case "exp_c":
		return &p.ExpC
	case "exp_d":
		return &p.ExpD
	case "log_a":
		return &p.LogA
	case "log_b":
		return &p.LogB
	case "log_c":
		return &p.LogC
	case "log_d":
		return &p.LogD
	}
	return nil
}

// Value returns the coefficient stored under key.
func (p Params) Value(key string) (float64, bool) {
	v := p.ptr(key)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Set stores v under key. It reports false for an unknown key.
func (p *Params) Set(key string, v float64) bool {
	dst := p.ptr(key)
	if dst == nil {
		return false
	}
	*dst = v
	return true
}

// Nudge moves the coefficient by n steps, clamped to the field's range.
// Values are snapped to six decimals so repeated steps do not drift.
func (p *Params) Nudge(key string, n int) bool {
	f, ok := LookupField(key)
	if !ok {
		return false
	}
	dst := p.ptr(key)
	v := f.Clamp(*dst + float64(n)*f.Step)
	*dst = math.Round(v*1e6) / 1e6
	return true
}

// ErrInvalidParams is wrapped by every Validate failure.
var ErrInvalidParams = errors.New("invalid parameters")

// Validate rejects coefficients the curves cannot evaluate meaningfully.
// The engine itself never fails; callers taking user input use this.
func (p Params) Validate() error {
	for _, f := range ParamFields {
		v, _ := p.Value(f.Key)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidParams, f.Key)
		}
	}
	if p.LogB <= 0 || p.LogB == 1 {
		return fmt.Errorf("%w: log_b must be positive and not 1, got %g", ErrInvalidParams, p.LogB)
	}
	return nil
}
