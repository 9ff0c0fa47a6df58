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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appControllers "github.com/Adoxcol/uniplanfinal/internal/app/controllers"
	appMigrations "github.com/Adoxcol/uniplanfinal/internal/app/migrations"
	appRepos "github.com/Adoxcol/uniplanfinal/internal/app/repositories"
	appRoutes "github.com/Adoxcol/uniplanfinal/internal/app/routes"
	appServices "github.com/Adoxcol/uniplanfinal/internal/app/services"
	"github.com/Adoxcol/uniplanfinal/internal/config"
	"github.com/Adoxcol/uniplanfinal/internal/db"
	appMiddleware "github.com/Adoxcol/uniplanfinal/internal/middleware"
	pkgAuth "github.com/Adoxcol/uniplanfinal/internal/pkg/auth"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/helpers"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/logger"
	"github.com/Adoxcol/uniplanfinal/internal/planner"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	PlanService       appServices.PlanService
	PlannerService    appServices.PlannerService
	ProfileService    appServices.ProfileService
	AuthController    *appControllers.AuthController
	PlanController    *appControllers.PlanController
	PlannerController *appControllers.PlannerController
	ProfileController *appControllers.ProfileController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
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
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.ProfileRepository,
		deps.JWTService,
		lgr,
	)

	deps.PlanService = appServices.NewPlanService(
		deps.Repos.PlanRepository,
		deps.Repos.CourseRepository,
		lgr,
	)

	storeTimeout := helpers.ParseDuration(cfg.Planner.StoreTimeout, appRepos.DefaultStoreTimeout)
	gateway := appRepos.NewPlanGateway(deps.Repos.PlanRepository, deps.Repos.CourseRepository, storeTimeout)

	deps.PlannerService = appServices.NewPlannerService(
		gateway,
		deps.Repos.PlanRepository,
		planner.DefaultPolicy(),
		cfg.Planner.MaxCredits,
		lgr,
	)

	deps.ProfileService = appServices.NewProfileService(deps.Repos.ProfileRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.PlanController = appControllers.NewPlanController(deps.PlanService)
	deps.PlannerController = appControllers.NewPlannerController(deps.PlannerService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.PlanController,
		deps.PlannerController,
		deps.ProfileController,
		deps.AuthMiddleware,
	)

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
