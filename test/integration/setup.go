package integration

import (
	"context"
	"testing"
	"time"

	"vanphal/internal/store"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a disposable PostgreSQL instance backing one test.
type TestDB struct {
	Container *postgres.PostgresContainer
	Store     store.Store
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container and opens the postgres store
// driver against it. The container and store are torn down via t.Cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	st, err := store.NewPostgresStore(ctx, store.PostgresConfig{
		ConnString:      connStr,
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 5 * time.Minute,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open postgres store: %v", err)
	}

	t.Cleanup(func() {
		st.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Store:     st,
		ConnStr:   connStr,
	}
}
