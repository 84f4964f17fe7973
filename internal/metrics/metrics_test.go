package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/alexanderramin/vocnav/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestObserver_CountsRemoteOutcomes(t *testing.T) {
	o := NewObserver(prometheus.NewRegistry())
	ctx := context.Background()

	o.ObserveUseCase(ctx, service.UseCaseEvent{Name: service.EventRemoteUpsert, Success: true})
	o.ObserveUseCase(ctx, service.UseCaseEvent{Name: service.EventRemoteUpsert, Success: true})
	o.ObserveUseCase(ctx, service.UseCaseEvent{Name: service.EventRemoteDelete, Err: errors.New("x")})

	assert.Equal(t, 2.0, promtest.ToFloat64(o.remoteOps.WithLabelValues("upsert", "ok")))
	assert.Equal(t, 1.0, promtest.ToFloat64(o.remoteOps.WithLabelValues("delete", "error")))
}

func TestObserver_SyncAndAchievements(t *testing.T) {
	o := NewObserver(prometheus.NewRegistry())
	ctx := context.Background()

	o.ObserveUseCase(ctx, service.UseCaseEvent{Name: service.EventPlanSync, Fields: map[string]any{"outcome": service.SyncStale}})
	o.ObserveUseCase(ctx, service.UseCaseEvent{Name: service.EventPlanSync})
	o.ObserveUseCase(ctx, service.UseCaseEvent{Name: service.EventAchievement, Fields: map[string]any{"achievement": "fan"}})
	o.SetPlanItems(4)

	assert.Equal(t, 1.0, promtest.ToFloat64(o.syncRuns.WithLabelValues("stale")))
	assert.Equal(t, 1.0, promtest.ToFloat64(o.syncRuns.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, promtest.ToFloat64(o.achievements.WithLabelValues("fan")))
	assert.Equal(t, 4.0, promtest.ToFloat64(o.planItems))
}

func TestServe_ExposesMetricsAndStops(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := NewObserver(reg)
	o.SetPlanItems(2)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, reg, nil) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	var body string
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		body = string(raw)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, body, "vocnav_plan_items 2")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
