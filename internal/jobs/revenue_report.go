// Package jobs runs the scheduled background work of the booking service.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/iliyamo/eventflow-booking/internal/model"
)

const reportLockKey = "eventflow:lock:revenue-report"

// StatsSource yields the current booking summary.
type StatsSource interface {
	Stats(ctx context.Context) (model.Stats, error)
}

// Locker elects a single reporter when several instances share Redis.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, token string) error
}

// RevenueReport logs the booking count and revenue on a cron schedule.
type RevenueReport struct {
	source StatsSource
	locker Locker
	log    *zap.Logger
	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

// NewRevenueReport builds a report.  locker may be nil for a single
// instance deployment.
func NewRevenueReport(source StatsSource, locker Locker, log *zap.Logger) *RevenueReport {
	if log == nil {
		log = zap.NewNop()
	}
	return &RevenueReport{source: source, locker: locker, log: log}
}

// Start schedules the report on spec.  An invalid spec is returned as an
// error and nothing is scheduled.
func (r *RevenueReport) Start(ctx context.Context, spec string) error {
	r.runCtx, r.cancel = context.WithCancel(ctx)
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { r.RunOnce(r.runCtx) }); err != nil {
		r.cancel()
		return err
	}
	c.Start()
	r.cron = c
	r.log.Info("jobs.RevenueReport scheduled", zap.String("spec", spec))
	return nil
}

// Stop cancels an in-flight run and waits for it to return.
func (r *RevenueReport) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

// RunOnce computes and logs one report.  It returns the stats it logged so
// callers can reuse the figure.
func (r *RevenueReport) RunOnce(ctx context.Context) (model.Stats, bool) {
	if r.locker != nil {
		ok, token, err := r.locker.TryLock(ctx, reportLockKey, time.Minute)
		if err != nil {
			r.log.Warn("jobs.RevenueReport lock attempt failed", zap.Error(err))
			return model.Stats{}, false
		}
		if !ok {
			r.log.Debug("jobs.RevenueReport another instance holds the lock")
			return model.Stats{}, false
		}
		defer func() { _ = r.locker.Unlock(context.WithoutCancel(ctx), reportLockKey, token) }()
	}

	st, err := r.source.Stats(ctx)
	if err != nil {
		r.log.Error("jobs.RevenueReport stats failed", zap.Error(err))
		return model.Stats{}, false
	}
	r.log.Info("revenue report",
		zap.Int("total_events", st.TotalEvents),
		zap.Int64("revenue", st.Revenue),
		zap.String("currency", model.CurrencyINR),
	)
	return st, true
}
