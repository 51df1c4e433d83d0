package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/farmlink/auth-service/docs"
	"github.com/farmlink/auth-service/internal/api/handler"
	"github.com/farmlink/auth-service/internal/api/middleware"
	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/service"
	"github.com/farmlink/auth-service/internal/infrastructure/config"
	mongodb "github.com/farmlink/auth-service/internal/infrastructure/db/mongo"
	"github.com/farmlink/auth-service/internal/infrastructure/db/postgres"
	redisdb "github.com/farmlink/auth-service/internal/infrastructure/db/redis"
	"github.com/farmlink/auth-service/internal/infrastructure/hash"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, mdb *mongo.Database, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// Only the configured origin is echoed back; preflight answers 204.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("farmlink_auth"))

	// --- Dependencies ---
	accountStore := postgres.NewAccountStore(pool)
	txRunner := postgres.NewTxRunner(pool)
	roleDirectory := service.NewCachedRoleDirectory(postgres.NewRoleDirectory(pool))
	hasher := hash.NewBcryptHasher(cfg.BcryptCost)
	sessionStore := redisdb.NewSessionStore(rdb)
	auditTrail := mongodb.NewAuditRepository(mdb)

	authService := service.NewAuthService(
		accountStore,
		txRunner,
		roleDirectory,
		hasher,
		sessionStore,
		auditTrail,
		cfg.JWTSecret,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		log,
	)
	guard := service.NewSessionGuard(sessionStore, accountStore, cfg.JWTSecret, log)

	authHandler := handler.NewAuthHandler(authService)
	dashboardHandler := handler.NewDashboardHandler()
	sessionRequired := middleware.Session(guard)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/session", authHandler.Session, sessionRequired)
	e.POST("/api/auth/logout", authHandler.Logout, sessionRequired)

	// --- Protected views (guard re-evaluated on every request) ---
	e.GET("/api/dashboard", dashboardHandler.Overview,
		sessionRequired, middleware.RBAC(domain.RoleFarmer, domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb, mdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
