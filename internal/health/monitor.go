// Package health reports museum source availability through the standard
// gRPC health service. Each source is its own service ("museum.aic",
// "museum.met"); the overall service ("") is serving while at least one
// source answers, since the aggregator can still produce results then.
package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"museumhub/pkg/models"
)

const (
	DefaultInterval = time.Minute
	DefaultTimeout  = 5 * time.Second
)

// Pinger is satisfied by every museum.Fetcher.
type Pinger interface {
	Source() models.MuseumSource
	Ping(ctx context.Context) error
}

func ServiceName(source models.MuseumSource) string {
	return "museum." + string(source)
}

type Monitor struct {
	Server   *health.Server
	sources  []Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	mu   sync.RWMutex
	last map[models.MuseumSource]error
}

func NewMonitor(sources []Pinger, interval, timeout time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv := health.NewServer()
	// Unknown until the first probe.
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	for _, s := range sources {
		srv.SetServingStatus(ServiceName(s.Source()), healthpb.HealthCheckResponse_NOT_SERVING)
	}

	return &Monitor{
		Server:   srv,
		sources:  sources,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "health"),
		last:     map[models.MuseumSource]error{},
	}
}

// Register exposes the health service on gs.
func (m *Monitor) Register(gs *grpc.Server) {
	healthpb.RegisterHealthServer(gs, m.Server)
}

// Probe pings every source once, concurrently, and updates the statuses.
func (m *Monitor) Probe(ctx context.Context) map[models.MuseumSource]error {
	results := make([]error, len(m.sources))

	var wg sync.WaitGroup
	for i, s := range m.sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, m.timeout)
			defer cancel()
			results[i] = s.Ping(pctx)
		}()
	}
	wg.Wait()

	out := make(map[models.MuseumSource]error, len(m.sources))
	anyUp := false
	for i, s := range m.sources {
		src, err := s.Source(), results[i]
		out[src] = err

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			m.logger.Warn("source unavailable", "source", src, "err", err)
		} else {
			anyUp = true
		}
		m.Server.SetServingStatus(ServiceName(src), status)
	}

	overall := healthpb.HealthCheckResponse_NOT_SERVING
	if anyUp {
		overall = healthpb.HealthCheckResponse_SERVING
	}
	m.Server.SetServingStatus("", overall)

	m.mu.Lock()
	m.last = out
	m.mu.Unlock()
	return out
}

// Snapshot returns the outcome of the latest probe.
func (m *Monitor) Snapshot() map[models.MuseumSource]error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[models.MuseumSource]error, len(m.last))
	for k, v := range m.last {
		out[k] = v
	}
	return out
}

// Run probes immediately and then every interval until ctx is done, after
// which every service reports NOT_SERVING.
func (m *Monitor) Run(ctx context.Context) {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	m.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			m.Server.Shutdown()
			return
		case <-t.C:
			m.Probe(ctx)
		}
	}
}
