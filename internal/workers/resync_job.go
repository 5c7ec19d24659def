package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/models"
)

// ResyncJob periodically resyncs every engine that is DegradedLocal, so an
// engine that lost its push subscription returns to Live without user
// action.
type ResyncJob struct {
	tickerJob

	targets TargetSource
	logger  *logger.Logger
}

// NewResyncJob creates a job that visits targets every cfg.ResyncInterval.
// If the interval is zero or negative it defaults to one minute.
func NewResyncJob(targets TargetSource, cfg config.ClientWorkers, logger *logger.Logger) *ResyncJob {
	interval := cfg.ResyncInterval
	if interval <= 0 {
		interval = time.Minute
	}

	j := &ResyncJob{targets: targets, logger: logger.Component("resync-job")}
	j.tickerJob = tickerJob{interval: interval, tick: j.resyncDegraded}
	return j
}

func (j *ResyncJob) resyncDegraded(ctx context.Context) {
	for _, target := range j.targets() {
		if ctx.Err() != nil {
			return
		}
		if target.Mode() != models.ModeDegradedLocal {
			continue
		}

		if err := target.Resync(ctx); err != nil {
			j.logger.Warn().Err(err).Str("engine", target.Name()).Msg("background resync failed")
			continue
		}
		j.logger.Info().Str("engine", target.Name()).Msg("background resync succeeded")
	}
}
