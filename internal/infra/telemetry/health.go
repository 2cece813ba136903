package telemetry

import (
	"sort"
	"sync"
	"time"
)

// HealthTracker watches heartbeats from long-running components. A
// component whose last beat is older than its staleness window marks
// the whole report degraded.
type HealthTracker struct {
	mu         sync.Mutex
	components map[string]*componentState
	now        func() time.Time
}

type componentState struct {
	maxStale time.Duration
	lastBeat time.Time
}

type ComponentHealth struct {
	Status   string `json:"status"`
	LastBeat string `json:"lastBeat,omitempty"`
}

type HealthReport struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

func NewHealthTracker() *HealthTracker {
	return &HealthTracker{
		components: make(map[string]*componentState),
		now:        time.Now,
	}
}

// Register adds a component and returns its heartbeat function. The
// component is considered healthy as long as the returned function is
// called at least once per maxStale window.
func (t *HealthTracker) Register(name string, maxStale time.Duration) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := &componentState{maxStale: maxStale, lastBeat: t.now()}
	t.components[name] = state

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		state.lastBeat = t.now()
	}
}

// Report summarizes all registered components. A nil tracker reports
// ok, so callers serving /healthz without any heartbeats need no
// special casing.
func (t *HealthTracker) Report() HealthReport {
	report := HealthReport{Status: "ok"}
	if t == nil {
		return report
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.components) == 0 {
		return report
	}

	report.Components = make(map[string]ComponentHealth, len(t.components))
	names := make([]string, 0, len(t.components))
	for name := range t.components {
		names = append(names, name)
	}
	sort.Strings(names)

	now := t.now()
	for _, name := range names {
		state := t.components[name]
		status := "ok"
		if state.maxStale > 0 && now.Sub(state.lastBeat) > state.maxStale {
			status = "stale"
			report.Status = "degraded"
		}
		report.Components[name] = ComponentHealth{
			Status:   status,
			LastBeat: state.lastBeat.UTC().Format(time.RFC3339),
		}
	}
	return report
}
