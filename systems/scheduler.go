package systems

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/spacedrift/telemetry"
	"github.com/pthm-cable/spacedrift/world"
)

// Scheduler runs a fixed, validated list of stages once per frame and then
// applies the deferred commands they recorded.
type Scheduler struct {
	stages []Stage
	perf   *telemetry.PerfCollector
	logger *slog.Logger
}

// NewScheduler validates stages and builds a scheduler that runs them in
// the given order. perf may be nil.
func NewScheduler(logger *slog.Logger, perf *telemetry.PerfCollector, stages ...Stage) (*Scheduler, error) {
	if err := Validate(stages); err != nil {
		return nil, fmt.Errorf("building scheduler: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		stages: stages,
		perf:   perf,
		logger: logger,
	}
	for i, st := range stages {
		info, acc := st.Info(), st.Access()
		logger.Debug("stage",
			"order", i,
			"id", info.ID,
			"reads", acc.Reads.String(),
			"writes", acc.Writes.String(),
		)
	}
	return s, nil
}

// NewDefaultScheduler builds the standard pipeline:
// input, acceleration, linear movement, angular movement.
func NewDefaultScheduler(store *world.Store, logger *slog.Logger, perf *telemetry.PerfCollector) (*Scheduler, error) {
	return NewScheduler(logger, perf,
		NewInputSystem(),
		NewAccelerationSystem(store),
		NewLinearMovementSystem(store),
		NewAngularMovementSystem(store),
	)
}

// Stages returns the stage descriptions in run order.
func (s *Scheduler) Stages() []StageInfo {
	out := make([]StageInfo, len(s.stages))
	for i, st := range s.stages {
		out[i] = st.Info()
	}
	return out
}

// Run executes one frame. The store is locked against structural changes
// while stages run; commands recorded by the stages are applied afterwards.
func (s *Scheduler) Run(ctx *Context) (world.ApplyResult, error) {
	if s.perf != nil {
		s.perf.StartTick()
		defer s.perf.EndTick()
	}

	ctx.Store.BeginFrame()
	for _, st := range s.stages {
		if s.perf != nil {
			s.perf.StartPhase(st.Info().ID)
		}
		st.Run(ctx)
	}
	ctx.Store.EndFrame()

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseMaintain)
	}
	res, err := ctx.Commands.Apply(ctx.Store)
	if err != nil {
		return res, fmt.Errorf("maintain: %w", err)
	}
	return res, nil
}
