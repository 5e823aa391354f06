package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/pintando7/escolinha/internal/app/controllers"
	appMigrations "github.com/pintando7/escolinha/internal/app/migrations"
	appRepos "github.com/pintando7/escolinha/internal/app/repositories"
	appRoutes "github.com/pintando7/escolinha/internal/app/routes"
	appServices "github.com/pintando7/escolinha/internal/app/services"
	"github.com/pintando7/escolinha/internal/config"
	"github.com/pintando7/escolinha/internal/db"
	appMiddleware "github.com/pintando7/escolinha/internal/middleware"
	pkgAuth "github.com/pintando7/escolinha/internal/pkg/auth"
	"github.com/pintando7/escolinha/internal/pkg/logger"
	"github.com/pintando7/escolinha/internal/pkg/push"
	"github.com/pintando7/escolinha/internal/pkg/realtime"
	"github.com/pintando7/escolinha/internal/pkg/sessionstore"
	"github.com/pintando7/escolinha/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos           *appRepos.Repositories
	Services        *appServices.Services
	JWTService      *pkgAuth.JWTService
	SessionStore    *sessionstore.Store
	PushService     *push.Service
	Hub             *realtime.Hub
	RealtimeHandler *realtime.Handler
	AuthMiddleware  *appMiddleware.AuthMiddleware

	AuthController        *appControllers.AuthController
	StudentController     *appControllers.StudentController
	MealLogController     *appControllers.MealLogController
	AppointmentController *appControllers.AppointmentController
	GoalController        *appControllers.GoalController
	ExpenseController     *appControllers.ExpenseController
	EventController       *appControllers.EventController
	DashboardController   *appControllers.DashboardController
	DeviceController      *appControllers.DeviceController

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file in the working directory is loaded first when present.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failures never block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// parseDuration parses a duration string with a fallback.
func parseDuration(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}

// BuildDependencies initializes repositories, services, controllers and
// the realtime hub, and starts the hub loop.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  parseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: parseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	sessions, err := sessionstore.NewStore(cfg.Auth.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	deps.SessionStore = sessions

	pushService, err := push.NewService(context.Background(), push.Config{
		Enabled:     cfg.Push.Enabled,
		Region:      cfg.Push.Region,
		PlatformARN: cfg.Push.PlatformARN,
	}, deps.Repos.DeviceRepository)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize push service: %w", err)
	}
	deps.PushService = pushService

	deps.Hub = realtime.NewHub(lgr)
	go deps.Hub.Run()
	deps.RealtimeHandler = realtime.NewHandler(deps.Hub, lgr)

	deps.Services = appServices.NewServices(cfg, deps.Repos, deps.JWTService,
		sessions, deps.Hub, pushService)

	// Warm the snapshot cache so the first client connect replays state
	deps.Services.SyncService.PublishAll(context.Background())

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService)
	deps.MealLogController = appControllers.NewMealLogController(deps.Services.MealLogService)
	deps.AppointmentController = appControllers.NewAppointmentController(deps.Services.AppointmentService)
	deps.GoalController = appControllers.NewGoalController(deps.Services.GoalService)
	deps.ExpenseController = appControllers.NewExpenseController(deps.Services.ExpenseService)
	deps.EventController = appControllers.NewEventController(deps.Services.EventService)
	deps.DashboardController = appControllers.NewDashboardController(deps.Services.DashboardService)
	deps.DeviceController = appControllers.NewDeviceController(pushService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.MealLogController,
		deps.AppointmentController,
		deps.GoalController,
		deps.ExpenseController,
		deps.EventController,
		deps.DashboardController,
		deps.DeviceController,
		deps.RealtimeHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
