package model

import "time"

// Scenario is a saved, named parameter set.
type Scenario struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Preset    string    `json:"preset,omitempty" yaml:"preset,omitempty"`
	Schedule  string    `json:"schedule" yaml:"schedule"`
	Params    Params    `json:"params" yaml:"params"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}
