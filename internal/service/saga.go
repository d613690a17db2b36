package service

import (
	"context"

	"winetour-backend/internal/logger"
)

// saga is an explicit, ordered list of compensating actions for a flow that
// spans operations a single database transaction cannot cover. Steps are
// registered as work succeeds and run in reverse on failure, so the caller
// never observes a half-reserved state.
type saga struct {
	steps []sagaStep
}

type sagaStep struct {
	name       string
	compensate func(ctx context.Context) error
}

func (s *saga) push(name string, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, sagaStep{name: name, compensate: compensate})
}

// rollback runs every registered compensation in reverse order. Compensation
// failures are logged and do not stop the remaining steps: each one must get
// its chance to undo.
func (s *saga) rollback(ctx context.Context) {
	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		if err := step.compensate(ctx); err != nil {
			logger.Error("Saga compensation failed", "step", step.name, "error", err)
		} else {
			logger.Debug("Saga compensation applied", "step", step.name)
		}
	}
	s.steps = nil
}
