// Package health records the state of the collaborators the animator depends
// on (sprites, theme detection, tray, config watcher).
package health

import (
	"sort"
	"sync"
	"time"

	"github.com/iconify-tray/iconify/internal/logging"
)

var log = logging.L("health")

// Component names reported by the animator.
const (
	Assets      = "assets"
	SystemTheme = "systheme"
	Tray        = "tray"
	Config      = "config"
	SysInfo     = "sysinfo"
)

// Status represents the health status of a component.
type Status string

const (
	Healthy   Status = "healthy"
	Degraded  Status = "degraded"
	Unhealthy Status = "unhealthy"
	Unknown   Status = "unknown"
)

// IsValid reports whether s is one of the defined statuses.
func (s Status) IsValid() bool {
	switch s {
	case Healthy, Degraded, Unhealthy, Unknown:
		return true
	}
	return false
}

// Check stores the latest health result for a named component.
type Check struct {
	Name      string    `yaml:"name"`
	Status    Status    `yaml:"status"`
	Message   string    `yaml:"message,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Report is a consistent snapshot of every check.
type Report struct {
	Status     Status            `yaml:"status"`
	Components map[string]Status `yaml:"components"`
}

// Monitor tracks health checks for multiple components.
type Monitor struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewMonitor creates a new health monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		checks: make(map[string]Check),
	}
}

// Update records the health status for a named component. Invalid statuses
// are stored as Unhealthy. Transitions are logged, repeats are not.
func (m *Monitor) Update(name string, status Status, message string) {
	if !status.IsValid() {
		status = Unhealthy
	}

	m.mu.Lock()
	prev, seen := m.checks[name]
	m.checks[name] = Check{
		Name:      name,
		Status:    status,
		Message:   message,
		UpdatedAt: time.Now(),
	}
	m.mu.Unlock()

	if seen && prev.Status == status {
		return
	}
	if status != Healthy {
		log.Warn("health check degraded", logging.KeyComponent, name, "status", string(status), "message", message)
	} else if seen {
		log.Info("health check recovered", logging.KeyComponent, name)
	}
}

// Get returns the health check for a named component.
func (m *Monitor) Get(name string) (Check, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.checks[name]
	return c, ok
}

// Overall returns the worst status across all registered checks.
// If no checks are registered, returns Unknown.
func (m *Monitor) Overall() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.overallLocked()
}

func (m *Monitor) overallLocked() Status {
	if len(m.checks) == 0 {
		return Unknown
	}
	worst := Healthy
	for _, c := range m.checks {
		if worse(c.Status, worst) {
			worst = c.Status
		}
	}
	return worst
}

// All returns a snapshot of all current health checks sorted by name.
func (m *Monitor) All() []Check {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Check, 0, len(m.checks))
	for _, c := range m.checks {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Summary returns the overall status and per-component statuses taken under
// one lock.
func (m *Monitor) Summary() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	components := make(map[string]Status, len(m.checks))
	for _, c := range m.checks {
		components[c.Name] = c.Status
	}
	return Report{Status: m.overallLocked(), Components: components}
}

// worse returns true if a is worse than b.
func worse(a, b Status) bool {
	return statusRank(a) > statusRank(b)
}

func statusRank(s Status) int {
	switch s {
	case Healthy:
		return 0
	case Degraded:
		return 1
	case Unhealthy:
		return 2
	case Unknown:
		return 3
	default:
		return 0
	}
}
