// Package connectivity watches reachability of a remote endpoint and
// emits status transitions.
package connectivity

import (
	"context"
	"net"
	"time"

	"storysync/internal/domain/repository/connectivity"
)

type Config struct {
	Endpoint   string `yaml:"endpoint"`
	IntervalMS int64  `yaml:"interval_in_ms"`
	TimeoutMS  int64  `yaml:"timeout_in_ms"`
}

// Prober dials the endpoint on every tick. One failed dial after a healthy
// streak reports Losing, the second Lost, and a longer outage settles on
// Unavailable. Only transitions are emitted.
type Prober struct {
	endpoint string
	interval time.Duration
	timeout  time.Duration
}

func NewProber(cfg Config) *Prober {
	return &Prober{
		endpoint: cfg.Endpoint,
		interval: time.Duration(cfg.IntervalMS) * time.Millisecond,
		timeout:  time.Duration(cfg.TimeoutMS) * time.Millisecond,
	}
}

func (p *Prober) Observe(ctx context.Context) <-chan connectivity.Status {
	out := make(chan connectivity.Status, 1)
	go p.probeLoop(ctx, out)

	return out
}

func (p *Prober) probeLoop(ctx context.Context, out chan connectivity.Status) {
	defer close(out)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last connectivity.Status
	failures := 0

	emit := func(status connectivity.Status) {
		if status == last {
			return
		}
		last = status
		select {
		case out <- status:
		case <-ctx.Done():
		}
	}

	for {
		if p.reachable(ctx) {
			failures = 0
			emit(connectivity.Available)
		} else {
			failures++
			switch failures {
			case 1:
				emit(connectivity.Losing)
			case 2:
				emit(connectivity.Lost)
			default:
				emit(connectivity.Unavailable)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Prober) reachable(ctx context.Context) bool {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.endpoint)
	if err != nil {
		return false
	}
	conn.Close()

	return true
}
