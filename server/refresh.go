package server

import (
	"context"
	"time"

	"github.com/etnz/positions"
	"github.com/etnz/positions/scheduler"
	"github.com/rs/zerolog"
)

// RefreshJob reloads a snapshot. Once loaded, it does nothing while the market is closed.
type RefreshJob struct {
	snapshot *Snapshot
	metrics  *Metrics
	log      zerolog.Logger
	timeout  time.Duration
	now      func() time.Time
}

var _ scheduler.Job = (*RefreshJob)(nil)

// NewRefreshJob returns a job refreshing snapshot and reporting to metrics.
func NewRefreshJob(snapshot *Snapshot, metrics *Metrics, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		snapshot: snapshot,
		metrics:  metrics,
		log:      log.With().Str("component", "refresh").Logger(),
		timeout:  30 * time.Second,
		now:      time.Now,
	}
}

func (j *RefreshJob) Name() string { return "refresh" }

func (j *RefreshJob) Run() error {
	status := positions.MarketStatusAt(j.now())
	if status == positions.Open {
		j.metrics.MarketOpen.Set(1)
	} else {
		j.metrics.MarketOpen.Set(0)
	}
	if status == positions.Closed && j.snapshot.Loaded() {
		j.metrics.Refreshes.WithLabelValues("skipped").Inc()
		j.log.Debug().Msg("Market closed, refresh skipped")
		return nil
	}
	return j.refresh()
}

// refresh reloads the snapshot regardless of the market status.
func (j *RefreshJob) refresh() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.snapshot.Refresh(ctx); err != nil {
		j.metrics.Refreshes.WithLabelValues("error").Inc()
		return err
	}
	lots := j.snapshot.Lots()
	j.metrics.Refreshes.WithLabelValues("ok").Inc()
	j.metrics.Lots.Set(float64(len(lots)))
	j.metrics.LastRefresh.Set(float64(j.snapshot.Refreshed().Unix()))
	j.log.Info().Int("lots", len(lots)).Msg("Snapshot refreshed")
	return nil
}
