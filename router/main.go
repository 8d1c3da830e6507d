package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/setlab/labsched/config"
	"github.com/setlab/labsched/handlers"
	dataset_handlers "github.com/setlab/labsched/handlers/dataset"
	options_handlers "github.com/setlab/labsched/handlers/options"
	views_handlers "github.com/setlab/labsched/handlers/views"
	"github.com/setlab/labsched/services"
	"github.com/setlab/labsched/services/ingest"
	"github.com/setlab/labsched/store"
	"github.com/setlab/labsched/utils/middleware"
)

func SetupRoutes(app *fiber.App, storage store.Storage, getEnv *config.EnviornmentVariable, log *zap.Logger) {
	// Initialize services
	parser := ingest.NewParser(log)
	datasetService := services.NewDatasetService(storage, parser, log)
	viewService := services.NewViewService(storage, log)

	// Initialize handlers
	datasetHandler := dataset_handlers.NewDatasetHandler(datasetService)
	optionsHandler := options_handlers.NewOptionsHandler(datasetService)
	viewsHandler := views_handlers.NewViewsHandler(viewService)

	// Apply security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/health", handlers.HandleCheckHealth)

	// API v1 group
	api := app.Group("/api/v1")

	// Dataset lifecycle
	datasets := api.Group("/datasets")
	datasets.Post("/", datasetHandler.Upload)          // Upload a timetable, replacing the session dataset
	datasets.Get("/current", datasetHandler.Current)   // Dataset metadata incl. date-picker bounds
	datasets.Delete("/current", datasetHandler.Reset)  // Clear the session dataset

	// Dropdown option cascades
	options := api.Group("/options")
	options.Get("/terms", optionsHandler.Terms)
	options.Get("/courses", optionsHandler.Courses)       // ?terms=4410,4420
	options.Get("/tech-teams", optionsHandler.TechTeams)
	options.Get("/buildings", optionsHandler.Buildings)   // ?tech_teams=
	options.Get("/rooms", optionsHandler.Rooms)           // ?buildings=&tech_teams=

	// Computed views
	views := api.Group("/views")
	views.Post("/charts", viewsHandler.Charts)
	views.Post("/table", viewsHandler.Table)
	views.Post("/timeline", viewsHandler.Timeline)
	views.Post("/calendar", viewsHandler.Calendar)
	views.Get("/day", viewsHandler.Day) // ?date=2006-01-02&terms=...
}
