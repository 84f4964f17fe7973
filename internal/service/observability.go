package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Event names reported by the plan manager and achievement evaluator.
const (
	EventPlanAdd         = "plan.add"
	EventPlanRemove      = "plan.remove"
	EventPlanCheck       = "plan.check"
	EventPlanSync        = "plan.sync"
	EventPlanSignOut     = "plan.sign_out"
	EventRemoteUpsert    = "remote.upsert"
	EventRemoteDelete    = "remote.delete"
	EventRemoteChecklist = "remote.checklist"
	EventRemoteFetch     = "remote.fetch"
	EventAchievement     = "achievement.unlock"
)

// Sync outcomes carried in the "outcome" field of EventPlanSync.
const (
	SyncApplied     = "applied"
	SyncFetchFailed = "fetch_failed"
	SyncStale       = "stale"
)

// UseCaseEvent captures lightweight execution telemetry for an operation.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *zap.Logger
}

// NewLogUseCaseObserver writes events to logger. Failures log at warn level
// since nothing in the core is fatal.
func NewLogUseCaseObserver(logger *zap.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger.Named("UseCase")}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := make([]zap.Field, 0, 3+len(event.Fields))
	fields = append(fields,
		zap.String("use_case", event.Name),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("success", event.Success),
	)
	for k, v := range event.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	if event.Err != nil {
		o.logger.Warn("use case failed", append(fields, zap.Error(event.Err))...)
		return
	}
	o.logger.Debug("use case", fields...)
}

type multiObserver []UseCaseObserver

func (m multiObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range m {
		o.ObserveUseCase(ctx, event)
	}
}

// CombineObservers fans events out to every non-nil observer.
func CombineObservers(observers ...UseCaseObserver) UseCaseObserver {
	var out multiObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return out[0]
	}
	return out
}

func useCaseObserverOrNoop(o UseCaseObserver) UseCaseObserver {
	if o == nil {
		return NoopUseCaseObserver{}
	}
	return o
}

func observe(ctx context.Context, obs UseCaseObserver, name string, started time.Time, err error, fields map[string]any) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}
