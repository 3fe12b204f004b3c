// Package state holds the last published financial totals so that
// independent views (dashboard header, summary cards, daemon status)
// show the same numbers.
package state

import (
	"sync"
	"time"

	"github.com/theirongolddev/runway/internal/model"
)

// Snapshot is the set of aggregate figures shared across views.
type Snapshot struct {
	At              time.Time `json:"at"`
	Version         uint64    `json:"version"`
	Source          string    `json:"source"`
	Schedule        string    `json:"schedule"`
	TotalRevenue    float64   `json:"total_revenue"`
	TotalExpenses   float64   `json:"total_expenses"`
	NetProfit       float64   `json:"net_profit"`
	ProfitMargin    float64   `json:"profit_margin"`
	RegisteredUsers int64     `json:"registered_users"`
	PaidUsers       int64     `json:"paid_users"`
	MonthlyViews    []int64   `json:"monthly_views"`
}

// FromProjection builds a snapshot from a fully computed projection.
func FromProjection(p model.Projection, at time.Time) Snapshot {
	views := make([]int64, len(p.Months))
	for i, m := range p.Months {
		views[i] = m.Views
	}
	source := p.Preset
	if source == "" {
		source = "custom"
	}
	return Snapshot{
		At:              at,
		Source:          source,
		Schedule:        p.Schedule,
		TotalRevenue:    p.Totals.Revenue,
		TotalExpenses:   p.Totals.Expenses(),
		NetProfit:       p.Totals.NetProfit,
		ProfitMargin:    p.Totals.ProfitMargin,
		RegisteredUsers: p.Totals.RegisteredUsers,
		PaidUsers:       p.Totals.ConvertedUsers,
		MonthlyViews:    views,
	}
}

// FinancialState is a last-writer-wins store for the shared snapshot.
// Writers publish only after a projection is fully computed, so readers
// never observe a partially updated set of totals.
type FinancialState struct {
	mu        sync.RWMutex
	version   uint64
	published bool
	snap      Snapshot
}

// New returns an empty store.
func New() *FinancialState {
	return &FinancialState{}
}

// Publish replaces the current snapshot and returns it with its version.
func (s *FinancialState) Publish(snap Snapshot) Snapshot {
	snap.MonthlyViews = append([]int64(nil), snap.MonthlyViews...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	snap.Version = s.version
	s.snap = snap
	s.published = true
	return snap
}

// PublishProjection publishes the totals of p.
func (s *FinancialState) PublishProjection(p model.Projection) Snapshot {
	return s.Publish(FromProjection(p, time.Now()))
}

// Snapshot returns the last published snapshot and whether one exists.
func (s *FinancialState) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap
	snap.MonthlyViews = append([]int64(nil), s.snap.MonthlyViews...)
	return snap, s.published
}

// Version returns the number of publishes so far.
func (s *FinancialState) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
