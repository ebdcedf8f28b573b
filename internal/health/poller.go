// ABOUTME: Periodic health polling against the remote API
// ABOUTME: Reflects current status only; never retries failed mutations

package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/psyberpath/portfolio-v1/internal/client"
)

// Checker is the health slice of the API client.
type Checker interface {
	Health(ctx context.Context) (*client.HealthStatus, error)
}

// Status is one observation of the remote service.
type Status struct {
	Healthy   bool
	Detail    string
	CheckedAt time.Time
}

// Poller checks remote health once or on an interval. A failed check simply
// reads as unhealthy on the next observation; there is no backoff or retry
// beyond the regular tick.
type Poller struct {
	checker  Checker
	interval time.Duration
}

func NewPoller(checker Checker, interval time.Duration) *Poller {
	return &Poller{checker: checker, interval: interval}
}

// Check performs a single observation. Healthy means the service answered
// with status "ok"; any error or other status reads as unhealthy.
func (p *Poller) Check(ctx context.Context) Status {
	now := time.Now()
	resp, err := p.checker.Health(ctx)
	if err != nil {
		slog.Debug("Health check failed", "error", err)
		return Status{Healthy: false, Detail: err.Error(), CheckedAt: now}
	}
	if resp.Status != "ok" {
		return Status{Healthy: false, Detail: "status " + resp.Status, CheckedAt: now}
	}
	return Status{Healthy: true, Detail: "status ok", CheckedAt: now}
}

// Run checks immediately, then on every tick until ctx is done. onObservation
// receives every result; onChange only fires when health flips.
func (p *Poller) Run(ctx context.Context, onObservation func(Status), onChange func(Status)) {
	report := func(st Status, changed bool) {
		if onObservation != nil {
			onObservation(st)
		}
		if changed && onChange != nil {
			onChange(st)
		}
	}

	last := p.Check(ctx)
	report(last, true)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := p.Check(ctx)
			report(st, st.Healthy != last.Healthy)
			last = st
		}
	}
}
