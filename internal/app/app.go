package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aidar/blitz-entry/internal/config"
	"github.com/aidar/blitz-entry/internal/domain"
	"github.com/aidar/blitz-entry/internal/handler"
	"github.com/aidar/blitz-entry/internal/middleware"
	"github.com/aidar/blitz-entry/internal/repository"
	"github.com/aidar/blitz-entry/internal/repository/file"
	"github.com/aidar/blitz-entry/internal/repository/postgres"
	"github.com/aidar/blitz-entry/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config   *config.Config
	db       *pgxpool.Pool
	team     *domain.Team
	router   chi.Router
	server   *http.Server
	registry *prometheus.Registry
	logger   *zap.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	return app, nil
}

// Initialize подключается к БД (если нужно), загружает состав команды и настраивает роутинг
func (a *App) Initialize(ctx context.Context) error {
	if a.config.UsesDatabase() {
		if err := a.connectDB(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	if err := a.loadRoster(ctx); err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// rosterRepository выбирает источник состава команды по конфигурации
func (a *App) rosterRepository() repository.RosterRepository {
	if a.config.UsesDatabase() {
		return postgres.NewRosterRepository(a.db, a.config.Roster.TeamName)
	}
	return file.NewRosterRepository(a.config.Roster.File, a.config.Roster.TeamName)
}

// loadRoster загружает команду один раз при старте
func (a *App) loadRoster(ctx context.Context) error {
	team, err := a.rosterRepository().Load(ctx)
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("source", a.config.Roster.Source),
		zap.String("team", team.TeamName),
		zap.Int("members", len(team.Members)),
	}
	if lead, ok := team.InCharge(); ok {
		fields = append(fields, zap.String("in_charge", lead.FirstName+" "+lead.LastName))
	}
	a.logger.Info("Roster loaded", fields...)

	a.team = team
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	entryService := service.NewEntryService(a.team)
	entryHandler := handler.NewEntryHandler(entryService, a.logger)

	r := chi.NewRouter()

	// Recovery первым, чтобы ловить паники во всех middleware
	r.Use(middleware.Recovery(a.logger))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(a.logger))
	r.Use(chimiddleware.Timeout(a.config.Server.RequestTimeout))

	if a.config.Metrics.Enabled {
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := middleware.NewMetrics(a.registry)
		r.Use(metrics.Handler)
		r.Handle(a.config.Metrics.Path, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}

	r.Get("/health", entryHandler.Health)

	r.With(chimiddleware.RequestSize(a.config.Server.MaxBodyBytes)).
		Post(a.config.Server.EntryPath, entryHandler.Answer)

	a.router = r

	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured",
		zap.String("addr", addr),
		zap.String("entry_path", a.config.Server.EntryPath),
	)
}

// Handler возвращает настроенный роутер (используется в тестах)
func (a *App) Handler() http.Handler {
	return a.router
}

// Team возвращает загруженную команду
func (a *App) Team() *domain.Team {
	return a.team
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	_ = a.logger.Sync()
	return nil
}
