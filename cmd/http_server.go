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

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/audit"
	auditPostgres "github.com/frahmantamala/leave-management/internal/audit/postgres"
	"github.com/frahmantamala/leave-management/internal/auth"
	authPostgres "github.com/frahmantamala/leave-management/internal/auth/postgres"
	"github.com/frahmantamala/leave-management/internal/core/events"
	"github.com/frahmantamala/leave-management/internal/department"
	departmentPostgres "github.com/frahmantamala/leave-management/internal/department/postgres"
	"github.com/frahmantamala/leave-management/internal/leave"
	leavePostgres "github.com/frahmantamala/leave-management/internal/leave/postgres"
	"github.com/frahmantamala/leave-management/internal/leavetype"
	leavetypePostgres "github.com/frahmantamala/leave-management/internal/leavetype/postgres"
	"github.com/frahmantamala/leave-management/internal/report"
	reportPostgres "github.com/frahmantamala/leave-management/internal/report/postgres"
	"github.com/frahmantamala/leave-management/internal/transport/rest"
	"github.com/frahmantamala/leave-management/internal/user"
	userPostgres "github.com/frahmantamala/leave-management/internal/user/postgres"
	"github.com/frahmantamala/leave-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
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
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
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

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over pgx pool: %w", err)
	}

	settings, err := leaveSettings(config.Leave)
	if err != nil {
		return nil, err
	}

	// Event bus with the audit trail subscriber attached.
	bus := events.NewEventBus(lg)
	auditRepo := auditPostgres.NewAuditRepository(gormDB)
	audit.NewSubscriber(auditRepo, lg).Register(bus)

	// Services.
	authService := auth.NewService(
		authPostgres.NewAuthRepository(gormDB),
		bus,
		auth.NewJWTResetTokenGenerator(config.Security.ResetTokenSecret, config.Security.ResetTokenTTL),
		auth.ServiceConfig{
			SessionTimeout:    config.Security.SessionTimeout,
			BCryptCost:        config.Security.BCryptCost,
			PasswordMinLength: config.Security.PasswordMinLength,
		},
		lg,
	)
	leaveService := leave.NewService(leavePostgres.NewLeaveRepository(gormDB), bus, settings, lg)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), authService, leaveService, lg)
	leavetypeService := leavetype.NewService(leavetypePostgres.NewLeaveTypeRepository(gormDB), lg)
	departmentService := department.NewService(departmentPostgres.NewDepartmentRepository(gormDB), lg)
	reportService := report.NewService(reportPostgres.NewReportRepository(gormDB), settings, lg)
	auditService := audit.NewService(auditRepo, lg)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService, config.Security.SessionCookieName),
		User:       user.NewHandler(userService, config.Leave.ItemsPerPage, config.Leave.MaxItemsPerPage),
		Leave:      leave.NewHandler(leaveService, config.Leave.ItemsPerPage, config.Leave.MaxItemsPerPage),
		LeaveType:  leavetype.NewHandler(leavetypeService),
		Department: department.NewHandler(departmentService),
		Report:     report.NewHandler(reportService),
		Audit:      audit.NewHandler(auditService, config.Leave.ItemsPerPage, config.Leave.MaxItemsPerPage),
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Router:   chi.NewRouter(),
		Handlers: handlers,
	}, nil
}

func leaveSettings(cfg internal.LeaveConfig) (leave.Settings, error) {
	month, day, err := cfg.FinancialYearBoundary()
	if err != nil {
		return leave.Settings{}, fmt.Errorf("invalid leave config: %w", err)
	}
	return leave.Settings{
		Weekend:      cfg.Weekend(),
		FYStartMonth: month,
		FYStartDay:   day,
	}, nil
}

// initDB initializes the database connection
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
