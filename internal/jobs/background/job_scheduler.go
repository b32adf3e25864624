package background

import (
	"context"
	"time"

	"catalogmart/internal/importer"
	"catalogmart/internal/jobs"
	"catalogmart/pkg/logger"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// JobScheduler runs the periodic housekeeping the import pipeline needs,
// expiring finished progress sessions and sweeping the lookup cache, plus the
// marketplace feed refresh.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	broker       *importer.ProgressBroker
	lookupCache  *importer.LookupCache
	exporter     *jobs.MarketplaceExporter
	syncInterval time.Duration
	log          *zap.Logger
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(broker *importer.ProgressBroker, lookupCache *importer.LookupCache, exporter *jobs.MarketplaceExporter, syncInterval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if syncInterval <= 0 {
		syncInterval = 15 * time.Minute
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		broker:       broker,
		lookupCache:  lookupCache,
		exporter:     exporter,
		syncInterval: syncInterval,
		log:          logger.Get(),
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.log.Info("starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	js.log.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(js.cleanupProgressSessions),
		gocron.WithName("import-session-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	_, err = js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.sweepLookupCache),
		gocron.WithName("lookup-cache-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	_, err = js.scheduler.NewJob(
		gocron.DurationJob(js.syncInterval),
		gocron.NewTask(js.refreshMarketplaceFeeds),
		gocron.WithName("marketplace-feed-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (js *JobScheduler) cleanupProgressSessions() {
	if removed := js.broker.Cleanup(); removed > 0 {
		js.log.Debug("removed finished import sessions", zap.Int("count", removed))
	}
}

func (js *JobScheduler) sweepLookupCache() {
	if removed := js.lookupCache.Sweep(); removed > 0 {
		js.log.Debug("swept expired lookup cache entries", zap.Int("count", removed))
	}
}

func (js *JobScheduler) refreshMarketplaceFeeds() {
	published, err := js.exporter.RefreshFeeds(context.Background())
	if err != nil {
		js.log.Error("marketplace feed refresh failed", zap.Error(err))
		return
	}
	if published > 0 {
		js.log.Info("marketplace feeds refreshed", zap.Int("count", published))
	}
}
