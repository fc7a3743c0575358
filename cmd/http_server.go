package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/allowance-management/internal"
	"github.com/frahmantamala/allowance-management/internal/allowance"
	allowancePostgres "github.com/frahmantamala/allowance-management/internal/allowance/postgres"
	"github.com/frahmantamala/allowance-management/internal/audit"
	auditPostgres "github.com/frahmantamala/allowance-management/internal/audit/postgres"
	"github.com/frahmantamala/allowance-management/internal/auth"
	authPostgres "github.com/frahmantamala/allowance-management/internal/auth/postgres"
	"github.com/frahmantamala/allowance-management/internal/branch"
	branchPostgres "github.com/frahmantamala/allowance-management/internal/branch/postgres"
	"github.com/frahmantamala/allowance-management/internal/core/events"
	"github.com/frahmantamala/allowance-management/internal/group"
	groupPostgres "github.com/frahmantamala/allowance-management/internal/group/postgres"
	"github.com/frahmantamala/allowance-management/internal/menu"
	menuPostgres "github.com/frahmantamala/allowance-management/internal/menu/postgres"
	"github.com/frahmantamala/allowance-management/internal/order"
	orderPostgres "github.com/frahmantamala/allowance-management/internal/order/postgres"
	"github.com/frahmantamala/allowance-management/internal/report"
	reportPostgres "github.com/frahmantamala/allowance-management/internal/report/postgres"
	"github.com/frahmantamala/allowance-management/internal/transport/middleware"
	"github.com/frahmantamala/allowance-management/internal/transport/rest"
	"github.com/frahmantamala/allowance-management/internal/transport/swagger"
	"github.com/frahmantamala/allowance-management/internal/user"
	userPostgres "github.com/frahmantamala/allowance-management/internal/user/postgres"
	"github.com/frahmantamala/allowance-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if deps.Redis != nil {
			if err := deps.Redis.Close(); err != nil {
				deps.Logger.Error("redis close error", "error", err)
			}
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.L()

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		lg.Warn("openapi spec validation failed", "error", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			lg.Warn("redis unreachable, report caching disabled", "error", err)
			redisClient = nil
		}
	}

	bus := events.NewEventBus(lg)

	// auth and session guard
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, lg)
	authHandler := auth.NewHandler(authService)
	guard := auth.NewRoleGuard(lg)

	// domain services
	branchService := branch.NewService(branchPostgres.NewBranchRepository(gormDB), bus, lg)
	groupService := group.NewService(groupPostgres.NewGroupRepository(gormDB), bus, lg)
	menuService := menu.NewService(menuPostgres.NewMenuRepository(gormDB), bus, lg)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), bus, config.Security.BCryptCost, lg)
	allowanceService := allowance.NewService(
		allowancePostgres.NewAllowanceRepository(gormDB),
		allowancePostgres.NewMembershipRepository(gormDB),
		bus, lg,
	)
	orderService := order.NewService(
		orderPostgres.NewOrderRepository(gormDB),
		orderPostgres.NewPricingRepository(gormDB),
		allowanceService,
		bus, lg,
	)

	// reporting with redis-backed caching, flushed on mutation events
	reportCache := report.NewCache(redisClient, config.Redis.ReportTTL, lg)
	reportService := report.NewService(reportPostgres.NewReportRepository(db), reportCache, lg)
	reportService.WatchMutations(bus)

	// audit trail records every domain event
	auditService := audit.NewService(auditPostgres.NewAuditRepository(gormDB), lg)
	auditService.WatchAll(bus)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Deps{
		DB:            db.DB,
		Redis:         redisClient,
		Auth:          authHandler,
		Guard:         guard,
		LoginLimiter:  middleware.NewLoginRateLimiter(config.Security.LoginRatePerMinute, lg),
		Users:         user.NewHandler(userService),
		Branches:      branch.NewHandler(branchService),
		Groups:        group.NewHandler(groupService),
		Menus:         menu.NewHandler(menuService),
		Orders:        order.NewHandler(orderService),
		Allowances:    allowance.NewHandler(allowanceService),
		Reports:       report.NewHandler(reportService),
		Audit:         audit.NewHandler(auditService),
		CORSOrigins:   config.Server.AllowedOrigins,
		EnableMetrics: config.Observability.Metrics.Enabled,
		Logger:        lg,
	})

	return &Dependencies{
		Config: config,
		DB:     db,
		Redis:  redisClient,
		Router: router,
		Logger: lg,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
