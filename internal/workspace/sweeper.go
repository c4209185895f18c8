package workspace

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/metrics"
)

const (
	sweepJobName         = "workspace_sweep"
	defaultSweepInterval = time.Minute
)

type SweeperParams struct {
	Registry *Registry
	Interval time.Duration
	Logger   *logger.Logger
	Metrics  *metrics.JobMetrics
}

// Sweeper evicts idle workspaces on a fixed cadence.
type Sweeper struct {
	registry *Registry
	interval time.Duration
	logg     *logger.Logger
	metrics  *metrics.JobMetrics
}

func NewSweeper(params SweeperParams) (*Sweeper, error) {
	if params.Registry == nil {
		return nil, errors.New("registry required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{
		registry: params.Registry,
		interval: interval,
		logg:     logg,
		metrics:  params.Metrics,
	}, nil
}

// Run sweeps until ctx is canceled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "workspace sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep and records it as a job run.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	jobCtx := s.logg.WithField(ctx, "job", sweepJobName)
	start := time.Now()
	expired := s.registry.Sweep(jobCtx)
	duration := time.Since(start)
	s.metrics.ObserveDuration(sweepJobName, duration)
	s.metrics.IncSuccess(sweepJobName)
	s.logg.Debug(s.logg.WithField(jobCtx, "duration_ms", duration.Milliseconds()), "job completed")
	return expired
}
