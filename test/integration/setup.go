package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/castvox/castvox/internal/adapters/handler/http"
	"github.com/castvox/castvox/internal/adapters/plancatalog"
	repo "github.com/castvox/castvox/internal/adapters/repository/postgres"
	"github.com/castvox/castvox/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type pollFixture struct {
	Type        string
	Status      string
	ScheduledAt *time.Time
	ClosedAt    *time.Time
	Config      string
	Options     []string
	Plan        string
}

// createPoll seeds a creator, a poll and its options directly through SQL,
// standing in for the admin console that owns poll authoring.
func (app *TestApp) createPoll(t *testing.T, f pollFixture) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	if f.Status == "" {
		f.Status = "open"
	}
	if f.Config == "" {
		f.Config = "{}"
	}
	if f.Plan == "" {
		f.Plan = "business"
	}

	creatorID := uuid.New()
	_, err := app.DB.Exec(
		"INSERT INTO creators (id, name, plan) VALUES ($1, $2, $3)",
		creatorID, fmt.Sprintf("Creator %s", creatorID), f.Plan)
	require.NoError(t, err)

	pollID := uuid.New()
	_, err = app.DB.Exec(`
		INSERT INTO polls (id, title, description, type, status, scheduled_at, closed_at, config, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		pollID, "Integration Poll", "seeded by tests", f.Type, f.Status,
		f.ScheduledAt, f.ClosedAt, f.Config, creatorID)
	require.NoError(t, err)

	optionIDs := make([]uuid.UUID, 0, len(f.Options))
	for i, label := range f.Options {
		optionID := uuid.New()
		_, err = app.DB.Exec(
			"INSERT INTO poll_options (id, poll_id, label, order_index) VALUES ($1, $2, $3, $4)",
			optionID, pollID, label, i)
		require.NoError(t, err)
		optionIDs = append(optionIDs, optionID)
	}

	return pollID, optionIDs
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	pollRepo := repo.NewPollRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	plans := plancatalog.NewStatic()

	pollSvc := services.NewPollService(pollRepo)
	voteSvc := services.NewVoteService(pollRepo, voteRepo, plans)
	resultSvc := services.NewResultService(pollRepo, voteRepo)

	pollHandler := handler.NewPollHandler(pollSvc, resultSvc)
	voteHandler := handler.NewVoteHandler(voteSvc)
	router := handler.NewHandler(pollHandler, voteHandler, db)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
