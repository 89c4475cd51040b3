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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/assignment"
	assignmentPostgres "github.com/geocasagroup/portal/internal/assignment/postgres"
	"github.com/geocasagroup/portal/internal/audit"
	"github.com/geocasagroup/portal/internal/auth"
	authPostgres "github.com/geocasagroup/portal/internal/auth/postgres"
	"github.com/geocasagroup/portal/internal/catalog"
	"github.com/geocasagroup/portal/internal/core/events"
	"github.com/geocasagroup/portal/internal/document"
	documentPostgres "github.com/geocasagroup/portal/internal/document/postgres"
	"github.com/geocasagroup/portal/internal/navigation"
	"github.com/geocasagroup/portal/internal/personnel"
	personnelPostgres "github.com/geocasagroup/portal/internal/personnel/postgres"
	"github.com/geocasagroup/portal/internal/session"
	sessionMemory "github.com/geocasagroup/portal/internal/session/memory"
	sessionRedis "github.com/geocasagroup/portal/internal/session/redis"
	"github.com/geocasagroup/portal/internal/transport/rest"
	"github.com/geocasagroup/portal/internal/user"
	userPostgres "github.com/geocasagroup/portal/internal/user/postgres"
	"github.com/geocasagroup/portal/pkg/i18n"
	"github.com/geocasagroup/portal/pkg/logger"
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

	// stopSweeper is non-nil only when the in-memory session store is in
	// use; it must run on shutdown so the sweeper goroutine exits.
	stopSweeper func()
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
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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
		if deps.stopSweeper != nil {
			deps.stopSweeper()
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

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	translator, err := i18n.NewTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	deps := &Dependencies{
		Config: config,
		DB:     db,
		Router: chi.NewRouter(),
		Logger: lg,
	}

	// Session store: Redis when configured, in-memory with a sweeper for
	// single-node runs without one.
	var sessionStore session.Store
	if config.Redis.Addr != "" {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		sessionStore = sessionRedis.NewStore(deps.Redis, config.Session.TTL)
	} else {
		memStore := sessionMemory.NewStore(config.Session.TTL)
		deps.stopSweeper = memStore.StartSweeper(config.Session.SweepInterval, lg)
		sessionStore = memStore
	}

	bus := events.NewEventBus(lg)
	audit.NewSubscriber(gormDB, lg).Register(bus)

	grantRepo := assignmentPostgres.NewGrantRepository(gormDB)
	userRepo := userPostgres.NewRepository(gormDB)
	authRepo := authPostgres.NewUserRepository(gormDB)
	personnelRepo := personnelPostgres.NewRepository(gormDB)
	documentRepo := documentPostgres.NewRepository(gormDB)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)

	sessionService := session.NewService(sessionStore, authService, grantRepo, lg)
	navigationService := navigation.NewService(sessionService, lg)
	userService := user.NewService(userRepo)
	assignmentService := assignment.NewService(grantRepo, userService, bus, lg)
	personnelService := personnel.NewService(personnelRepo, assignmentService, bus, lg)
	documentService := document.NewService(documentRepo, grantRepo, lg)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService, sessionService, navigationService),
		Session:    session.NewHandler(sessionService),
		Navigation: navigation.NewHandler(navigationService),
		Catalog:    catalog.NewHandler(),
		User:       user.NewHandler(userService),
		Personnel:  personnel.NewHandler(personnelService, translator),
		Document:   document.NewHandler(documentService),
	}

	rest.RegisterAllRoutes(deps.Router, db.DB, deps.Redis, handlers, lg)

	return deps, nil
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

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
