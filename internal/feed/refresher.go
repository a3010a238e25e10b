package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/allmba/ideas-portal/internal/common"
)

// refreshTimeout bounds one scheduled refresh run.
const refreshTimeout = 2 * time.Minute

// Refresher re-warms the feed service on a cron schedule, mirroring the
// feed's daily publish cadence. The portal is fully functional without
// it; it only keeps the cache and archive warm between requests.
type Refresher struct {
	cron   *cron.Cron
	svc    *Service
	logger *common.Logger
}

// NewRefresher creates a refresher for the given cron schedule
// (standard 5-field cron expression, e.g. "15 6 * * *").
func NewRefresher(svc *Service, schedule string, logger *common.Logger) (*Refresher, error) {
	r := &Refresher{
		cron:   cron.New(),
		svc:    svc,
		logger: logger,
	}

	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	return r, nil
}

// Start begins scheduled refreshes and kicks off one immediate warm-up
// in the background.
func (r *Refresher) Start() {
	go r.run()
	r.cron.Start()
	r.logger.Info().Msg("feed refresher started")
}

// Stop halts the schedule, waiting for a running refresh to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info().Msg("feed refresher stopped")
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := r.svc.Refresh(ctx); err != nil {
		r.logger.Warn().Str("error", err.Error()).Msg("scheduled feed refresh failed")
		return
	}
	r.logger.Debug().Msg("scheduled feed refresh complete")
}
