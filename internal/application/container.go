package application

import (
	"fmt"

	"go.uber.org/zap"

	probeapp "github.com/khanhnv2901/seca-pin/internal/application/probe"
	"github.com/khanhnv2901/seca-pin/internal/checker"
	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
)

// Container holds the services a probe run needs.
// This is a simple dependency injection container
type Container struct {
	Settings     probe.Settings
	Checker      checker.Checker
	Orchestrator *probeapp.Orchestrator
}

// NewContainer wires the pin checker and orchestrator from frozen settings.
func NewContainer(settings probe.Settings, logger *zap.Logger, opts ...checker.Option) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts = append([]checker.Option{checker.WithLogger(logger)}, opts...)
	pinChecker := checker.NewPinChecker(settings, opts...)

	orchestrator, err := probeapp.NewOrchestrator(settings, pinChecker, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create probe orchestrator: %w", err)
	}

	return &Container{
		Settings:     settings,
		Checker:      pinChecker,
		Orchestrator: orchestrator,
	}, nil
}
