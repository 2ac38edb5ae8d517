package integration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"github.com/aidar/blitz-entry/internal/app"
	"github.com/aidar/blitz-entry/internal/config"
)

const testTeamName = "Beautiful Brown"

// TestEnvironment содержит все ресурсы необходимые для интеграционных тестов
type TestEnvironment struct {
	PostgresContainer *postgres.PostgresContainer
	App               *app.App
	BaseURL           string
	DB                *pgxpool.Pool
	ctx               context.Context
}

// SetupTestEnvironment поднимает PostgreSQL, заполняет состав команды и запускает приложение
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("blitz_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	applyMigrations(t, connStr)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	seedRoster(t, ctx, pool)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	testPort := freePort(t)
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           testPort,
			Host:           "127.0.0.1",
			EntryPath:      "/CoveoBlitz",
			RequestTimeout: 10 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Roster: config.RosterConfig{
			Source:   config.RosterSourcePostgres,
			TeamName: testTeamName,
		},
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port.Port(),
			User:     "test_user",
			Password: "test_password",
			Name:     "blitz_test",
			SSLMode:  "disable",
			MaxConns: 4,
			MinConns: 1,
		},
		Log:     config.LogConfig{Level: "dev"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	application, err := app.New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err, "Failed to create application")

	err = application.Initialize(ctx)
	require.NoError(t, err, "Failed to initialize application")

	go func() {
		if err := application.Run(); err != nil {
			t.Logf("Server error: %v", err)
		}
	}()

	return &TestEnvironment{
		PostgresContainer: pgContainer,
		App:               application,
		BaseURL:           fmt.Sprintf("http://%s:%s", cfg.Server.Host, testPort),
		DB:                pool,
		ctx:               ctx,
	}
}

// Cleanup очищает все тестовые ресурсы
func (te *TestEnvironment) Cleanup(t *testing.T) {
	t.Helper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if te.App != nil {
		_ = te.App.Shutdown(shutdownCtx)
	}

	if te.DB != nil {
		te.DB.Close()
	}

	if te.PostgresContainer != nil {
		_ = te.PostgresContainer.Terminate(te.ctx)
	}
}

// applyMigrations применяет миграции БД
func applyMigrations(t *testing.T, connStr string) {
	t.Helper()

	db, err := sql.Open("pgx/v5", connStr)
	require.NoError(t, err, "Failed to open database connection")
	defer db.Close()

	migrationPath := filepath.Join(getProjectRoot(t), "migrations", "000001_init_schema.up.sql")

	migrationSQL, err := os.ReadFile(migrationPath)
	require.NoError(t, err, "Failed to read migration file")

	_, err = db.Exec(string(migrationSQL))
	require.NoError(t, err, "Failed to apply migration")

	t.Log("Migrations applied successfully")
}

// seedRoster заполняет таблицу team_members; порядок вставки отличается от position
func seedRoster(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()

	query := `
		INSERT INTO team_members (team_name, position, first_name, last_name, email, phone_number,
			educational_establishment, study_program, date_program_end, in_charge)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	rows := [][]interface{}{
		{testTeamName, 2, "Samuel", "Gagnon", "sgagnon2@ulaval.ca", "581-555-0110 x204", "Université Laval", "Génie informatique", time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC), false},
		{testTeamName, 1, "Luis", "Eduardo", "luis.eduardo@ulaval.ca", "418-555-0142", "Université Laval", "Génie logiciel", time.Date(2019, time.April, 30, 0, 0, 0, 0, time.UTC), true},
		{"Other Team", 1, "Eve", "Outsider", "eve@mcgill.ca", "514-555-0100", "McGill", "CS", time.Date(2019, time.April, 30, 0, 0, 0, 0, time.UTC), false},
	}

	for _, row := range rows {
		_, err := pool.Exec(ctx, query, row...)
		require.NoError(t, err, "Failed to seed roster")
	}
}

// getProjectRoot возвращает корневую директорию проекта
func getProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod not found)")
		}
		dir = parent
	}
}

// freePort возвращает свободный TCP порт на localhost
func freePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return fmt.Sprint(l.Addr().(*net.TCPAddr).Port)
}

// MakeRequest вспомогательная функция для HTTP запросов в тестах
func (te *TestEnvironment) MakeRequest(t *testing.T, method, path string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, te.BaseURL+path, body)
	require.NoError(t, err, "Failed to create request")

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to make request")

	return resp
}

// WaitForHealthCheck ждет пока приложение станет доступным
func (te *TestEnvironment) WaitForHealthCheck(t *testing.T) {
	t.Helper()

	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		resp, err := http.Get(te.BaseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatal("Application did not become healthy in time")
}
