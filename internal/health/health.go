package health

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Checker defines the interface for health checking components
type Checker interface {
	HealthCheck(ctx context.Context) error
	IsCritical() bool // critical checks fail the whole run
	Name() string
}

// Result is the outcome of one checker
type Result struct {
	Name     string `json:"name"`
	Critical bool   `json:"critical"`
	Error    string `json:"error,omitempty"`
}

// Healthy reports whether the check passed
func (r Result) Healthy() bool {
	return r.Error == ""
}

// Manager runs a fixed set of checkers
type Manager struct {
	checkers []Checker
	logger   *zap.Logger
}

// NewManager creates a new health manager
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		checkers: make([]Checker, 0),
		logger:   logger,
	}
}

// AddChecker adds a health checker to the manager
func (m *Manager) AddChecker(checker Checker) {
	m.checkers = append(m.checkers, checker)
}

// Run executes every checker in registration order. The error is non-nil
// when at least one critical checker failed.
func (m *Manager) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(m.checkers))
	var criticalFailures []error

	for _, checker := range m.checkers {
		result := Result{Name: checker.Name(), Critical: checker.IsCritical()}

		if err := checker.HealthCheck(ctx); err != nil {
			result.Error = err.Error()
			if checker.IsCritical() {
				criticalFailures = append(criticalFailures, fmt.Errorf("%s: %w", checker.Name(), err))
				m.logger.Error("Critical health check failed",
					zap.String("check", checker.Name()),
					zap.Error(err))
			} else {
				m.logger.Warn("Non-critical health check failed",
					zap.String("check", checker.Name()),
					zap.Error(err))
			}
		} else {
			m.logger.Debug("Health check passed",
				zap.String("check", checker.Name()),
				zap.Bool("critical", checker.IsCritical()))
		}

		results = append(results, result)
	}

	if len(criticalFailures) > 0 {
		return results, fmt.Errorf("critical health checks failed: %v", criticalFailures)
	}

	return results, nil
}

// CheckFunc adapts a function into a Checker
type CheckFunc struct {
	CheckName string
	Critical  bool
	Fn        func(ctx context.Context) error
}

func (c CheckFunc) HealthCheck(ctx context.Context) error {
	return c.Fn(ctx)
}

func (c CheckFunc) IsCritical() bool {
	return c.Critical
}

func (c CheckFunc) Name() string {
	return c.CheckName
}
