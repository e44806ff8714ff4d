package app

import (
	"fmt"
	"os"

	"github.com/sahilchouksey/neurolearn-api/api"
	"github.com/sahilchouksey/neurolearn-api/config"
	"github.com/sahilchouksey/neurolearn-api/database"
	"github.com/sahilchouksey/neurolearn-api/router"
	"github.com/sahilchouksey/neurolearn-api/services"
	"github.com/sahilchouksey/neurolearn-api/services/cron"
	"github.com/sahilchouksey/neurolearn-api/utils/cache"
	"gorm.io/gorm"
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

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		print("If not running, run the following command:\n")
		print("  make docker-up   (for Docker setup)\n")
		print("  make db-up       (for local PostgreSQL)\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	var planCache *cache.RedisCache
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		db, ok := store.GetDB().(*gorm.DB)
		if !ok {
			print("Warning: Failed to get database connection for cron jobs\n")
		} else {
			// Cron invalidates cached plans after escalating priorities, so it
			// must talk to the same Redis the request path populates.
			planCache, err = cache.NewRedisCache(cache.EnvRedisURL())
			if err != nil {
				print("Warning: Failed to connect to Redis for cron jobs. Stale cached plans will only expire by TTL.\n")
			}
			workloadService := services.NewWorkloadService(db, planCache)
			cronManager = cron.NewCronManager(db, workloadService)
			if err := cronManager.Start(); err != nil {
				print("Warning: Failed to start cron jobs\n")
				print("Error: ", err.Error(), "\n")
				// Don't fail the app, just log the warning
			}
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if planCache != nil {
			planCache.Close()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, store)

	// Get the PORT & Start the Server
	return server.Run()

}
