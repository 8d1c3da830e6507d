package app

import (
	"fmt"
	"os"
	"time"

	"github.com/setlab/labsched/api"
	"github.com/setlab/labsched/config"
	"github.com/setlab/labsched/router"
	"github.com/setlab/labsched/services/cron"
	"github.com/setlab/labsched/store"
	"github.com/setlab/labsched/utils/logging"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err

	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	log, err := logging.New(getEnv.GO_ENV)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Initialize the session dataset store (Redis when configured)
	storage, err := store.Start()
	if err != nil {
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		sessionTTL := time.Duration(getEnv.SESSION_TTL_MINUTES) * time.Minute
		cronManager = cron.NewCronManager(storage, log, sessionTTL)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warn("failed to start cron jobs: " + err.Error())
		}
	}

	// Defer closing the store and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		storage.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), getEnv.UPLOAD_LIMIT_MB)
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, storage, getEnv, log)

	// Get the PORT & Start the Server
	return server.Run()

}
