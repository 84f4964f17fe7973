// Package metrics exports plan and achievement activity to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/logging"
	"github.com/alexanderramin/vocnav/internal/service"
)

// Observer counts use-case events. It implements service.UseCaseObserver.
type Observer struct {
	remoteOps    *prometheus.CounterVec
	syncRuns     *prometheus.CounterVec
	planItems    prometheus.Gauge
	achievements *prometheus.CounterVec
	durations    *prometheus.HistogramVec
}

// NewObserver registers the collectors on reg.
func NewObserver(reg prometheus.Registerer) *Observer {
	f := promauto.With(reg)
	return &Observer{
		remoteOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vocnav_remote_operations_total",
			Help: "Remote plan service calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		syncRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vocnav_sync_runs_total",
			Help: "Plan sync runs by outcome.",
		}, []string{"outcome"}),
		planItems: f.NewGauge(prometheus.GaugeOpts{
			Name: "vocnav_plan_items",
			Help: "Items currently in the local plan.",
		}),
		achievements: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vocnav_achievements_unlocked_total",
			Help: "Achievement unlocks by id.",
		}, []string{"achievement"}),
		durations: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vocnav_use_case_duration_seconds",
			Help:    "Use case latency.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"use_case"}),
	}
}

func (o *Observer) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	o.durations.WithLabelValues(e.Name).Observe(e.Duration.Seconds())

	switch {
	case strings.HasPrefix(e.Name, "remote."):
		outcome := "ok"
		if !e.Success {
			outcome = "error"
		}
		o.remoteOps.WithLabelValues(strings.TrimPrefix(e.Name, "remote."), outcome).Inc()
	case e.Name == service.EventPlanSync:
		outcome, _ := e.Fields["outcome"].(string)
		if outcome == "" {
			outcome = "unknown"
		}
		o.syncRuns.WithLabelValues(outcome).Inc()
	case e.Name == service.EventAchievement:
		id, _ := e.Fields["achievement"].(string)
		o.achievements.WithLabelValues(id).Inc()
	}
}

// SetPlanItems records the current plan size.
func (o *Observer) SetPlanItems(n int) {
	o.planItems.Set(float64(n))
}

// Serve exposes /metrics and /health on addr until ctx ends.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *zap.Logger) error {
	log := logging.OrNop(logger).Named("Metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
