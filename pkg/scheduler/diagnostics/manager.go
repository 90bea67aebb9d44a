package diagnostics

import (
	"sync"

	"github.com/paiban/logbook/pkg/logger"
)

// Manager holds the registered checks and runs all of them against a
// Context. Adapted from the teacher's constraint.Manager (register/evaluate
// with a logged trail), trimmed from a hard/soft penalty aggregator to a
// plain violation-message collector since diagnostics never scores a
// schedule, it only explains an INFEASIBLE status.
type Manager struct {
	checks []Check
	mu     sync.RWMutex
	logger *logger.SolverLogger
}

// NewManager returns a Manager with the four built-in checks registered.
func NewManager() *Manager {
	m := &Manager{logger: logger.NewSolverLogger()}
	for _, c := range Checks() {
		m.Register(c)
	}
	return m
}

// Register adds a check, replacing any existing check with the same name.
func (m *Manager) Register(c Check) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.checks {
		if existing.Name() == c.Name() {
			m.checks[i] = c
			return
		}
	}
	m.checks = append(m.checks, c)
}

// Count returns the number of registered checks.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.checks)
}

// Evaluate runs every registered check and returns the concatenation of
// their violation messages, in registration order. If every check passes,
// the caller (pkg/scheduler) falls back to the generic message of
// spec.md §4.8's last clause. runID is used only for log correlation with
// the solve that triggered this diagnostic pass.
func (m *Manager) Evaluate(runID string, ctx *Context) []string {
	m.mu.RLock()
	checks := make([]Check, len(m.checks))
	copy(checks, m.checks)
	m.mu.RUnlock()

	var violations []string
	for _, c := range checks {
		found := c.Evaluate(ctx)
		for _, msg := range found {
			m.logger.ConstructionRejected(runID, c.Name()+": "+msg)
		}
		violations = append(violations, found...)
	}
	return violations
}
