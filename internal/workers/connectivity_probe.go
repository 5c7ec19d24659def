package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
)

// ConnectivityProbe is the host network-signal adapter: it pings the store
// and reports the outcome to the connectivity monitor. A single success
// reports online; FailureThreshold consecutive failures report offline.
type ConnectivityProbe struct {
	tickerJob

	pinger    Pinger
	reporter  Reporter
	threshold int
	timeout   time.Duration
	logger    *logger.Logger

	failures int
}

// NewConnectivityProbe creates a probe that pings every cfg.ProbeInterval,
// each ping bounded by timeout. The first ping runs as soon as it starts.
func NewConnectivityProbe(pinger Pinger, reporter Reporter, cfg config.ClientWorkers, timeout time.Duration, logger *logger.Logger) *ConnectivityProbe {
	threshold := cfg.ProbeFailureThreshold
	if threshold < 1 {
		threshold = 1
	}
	interval := cfg.ProbeInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	p := &ConnectivityProbe{
		pinger:    pinger,
		reporter:  reporter,
		threshold: threshold,
		timeout:   timeout,
		logger:    logger.Component("connectivity-probe"),
	}
	p.tickerJob = tickerJob{interval: interval, immediate: true, tick: p.probe}
	return p
}

// probe runs on the job goroutine only.
func (p *ConnectivityProbe) probe(ctx context.Context) {
	pingCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := p.pinger.Ping(pingCtx)
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return
	}
	if err == nil {
		if p.failures > 0 {
			p.logger.Info().Int("failures", p.failures).Msg("store reachable again")
		}
		p.failures = 0
		p.reporter.Set(true)
		return
	}

	p.failures++
	p.logger.Debug().Err(err).Int("failures", p.failures).Msg("ping failed")
	if p.failures >= p.threshold {
		p.reporter.Set(false)
	}
}
