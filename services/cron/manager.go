package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/setlab/labsched/store"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron       *cron.Cron
	store      store.Storage
	log        *zap.Logger
	sessionTTL time.Duration
}

// NewCronManager creates a new cron manager
func NewCronManager(storage store.Storage, log *zap.Logger, sessionTTL time.Duration) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:       c,
		store:      storage,
		log:        log,
		sessionTTL: sessionTTL,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	m.log.Info("starting cron jobs")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	m.log.Info("cron jobs started")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	m.log.Info("stopping cron jobs")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 10 minutes: evict idle session datasets
	_, err := m.cron.AddFunc("0 */10 * * * *", func() {
		m.log.Info("cron job starting", zap.String("job", "sweep_idle_sessions"))
		m.SweepIdleSessions()
	})
	if err != nil {
		return err
	}

	return nil
}
