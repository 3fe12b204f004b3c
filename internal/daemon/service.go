// Package daemon serves projections over HTTP and streams changes as the
// config file is edited.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"
	"github.com/theirongolddev/runway/internal/state"
)

// Config controls the daemon runtime behavior.
type Config struct {
	ConfigPath   string
	Preset       string // overrides the config file's preset when set
	Schedule     string // overrides the config file's schedule when set
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Delta captures the change between two published snapshots.
type Delta struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalExpenses   float64 `json:"total_expenses"`
	NetProfit       float64 `json:"net_profit"`
	RegisteredUsers int64   `json:"registered_users"`
	PaidUsers       int64   `json:"paid_users"`
	SourceChanged   bool    `json:"source_changed,omitempty"`
}

func (d Delta) isZero() bool {
	return d.TotalRevenue == 0 &&
		d.TotalExpenses == 0 &&
		d.NetProfit == 0 &&
		d.RegisteredUsers == 0 &&
		d.PaidUsers == 0 &&
		!d.SourceChanged
}

// Event is emitted whenever the published projection changes.
type Event struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Snapshot  state.Snapshot `json:"snapshot"`
	Delta     Delta          `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time      `json:"started_at"`
	LastPollAt      time.Time      `json:"last_poll_at"`
	PollIntervalSec int            `json:"poll_interval_sec"`
	PollCount       int64          `json:"poll_count"`
	ConfigPath      string         `json:"config_path"`
	Params          model.Params   `json:"params"`
	Summary         state.Snapshot `json:"summary"`
	LastError       string         `json:"last_error,omitempty"`
	EventCount      int            `json:"event_count"`
	SubscriberCount int            `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg   Config
	state *state.FinancialState

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	projection  model.Projection
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service publishing into st.
func New(cfg Config, st *state.FinancialState) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = config.Path()
	}
	if st == nil {
		st = state.New()
	}

	return &Service{
		cfg:       cfg,
		state:     st,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/projection", s.handleProjection)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// compute loads the config file and evaluates the configured projection.
func (s *Service) compute() (model.Projection, error) {
	cfg, err := config.LoadFrom(s.cfg.ConfigPath)
	if err != nil {
		return model.Projection{}, err
	}
	return projectFromConfig(cfg, s.cfg.Preset, s.cfg.Schedule)
}

// projectFromConfig evaluates cfg, optionally forcing preset and schedule.
// Parameter overrides apply only when the preset is not forced.
func projectFromConfig(cfg config.Config, preset, schedule string) (model.Projection, error) {
	if preset != "" {
		cfg.General.Preset = preset
		cfg.Params = config.ParamOverrides{}
	}
	if schedule != "" {
		cfg.General.Schedule = schedule
	}

	params, err := cfg.Resolve()
	if err != nil {
		return model.Projection{}, err
	}
	sched, ok := config.LookupSchedule(cfg.General.Schedule)
	if !ok {
		return model.Projection{}, fmt.Errorf("unknown schedule %q", cfg.General.Schedule)
	}

	e := engine.New(
		engine.WithSchedule(sched),
		engine.WithAssumptions(cfg.ResolveAssumptions()),
	)
	name := cfg.General.Preset
	if !cfg.Params.Empty() {
		name = config.MatchPreset(params)
	}
	return pipeline.Project(e, params, name), nil
}

func (s *Service) pollOnce() {
	proj, err := s.compute()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		log.Printf("runway daemon poll error: %v", err)
		return
	}

	now := time.Now()
	prev, prevExists := s.state.Snapshot()
	snap := s.state.Publish(state.FromProjection(proj, now))

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	s.projection = proj
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "projection_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		log.Printf("runway daemon: %s v%d revenue=%.2f expenses=%.2f", ev.Type, snap.Version, snap.TotalRevenue, snap.TotalExpenses)
		s.publishEvent(ev)
	}
}

func diffSnapshots(prev, curr state.Snapshot) Delta {
	return Delta{
		TotalRevenue:    curr.TotalRevenue - prev.TotalRevenue,
		TotalExpenses:   curr.TotalExpenses - prev.TotalExpenses,
		NetProfit:       curr.NetProfit - prev.NetProfit,
		RegisteredUsers: curr.RegisteredUsers - prev.RegisteredUsers,
		PaidUsers:       curr.PaidUsers - prev.PaidUsers,
		SourceChanged:   curr.Source != prev.Source || curr.Schedule != prev.Schedule,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	summary, _ := s.state.Snapshot()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		ConfigPath:      s.cfg.ConfigPath,
		Params:          s.projection.Params,
		Summary:         summary,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

// handleProjection returns the last polled projection. With a preset or
// schedule query parameter it evaluates that variant on demand without
// publishing it.
func (s *Service) handleProjection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	preset, schedule := q.Get("preset"), q.Get("schedule")

	var proj model.Projection
	if preset == "" && schedule == "" {
		s.mu.RLock()
		proj = s.projection
		s.mu.RUnlock()
	} else {
		cfg, err := config.LoadFrom(s.cfg.ConfigPath)
		if err == nil {
			proj, err = projectFromConfig(cfg, preset, schedule)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if month := q.Get("month"); month != "" {
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > len(proj.Months) {
			http.Error(w, "month must be between 1 and 12", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(proj.Months[m-1])
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(proj)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
