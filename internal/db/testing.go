//go:build integration

package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// CreateTestPool connects to TEST_POSTGRESQL_URL, or starts a throwaway
// PostgreSQL container when it is not set, and applies the migrations.
// The returned func closes the pool and stops the container.
func CreateTestPool() (*pgxpool.Pool, func()) {
	ctx := context.Background()
	terminate := func() {}

	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("passreset_test"),
			postgres.WithUsername("passreset"),
			postgres.WithPassword("passreset"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
			),
		)
		if err != nil {
			panic(fmt.Sprintf("Could not start postgres container: %v", err))
		}
		terminate = func() { container.Terminate(ctx) }

		connString, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			terminate()
			panic(fmt.Sprintf("Could not get connection string: %v", err))
		}
	}

	if _, err := ApplyMigrations(connString); err != nil {
		terminate()
		panic(fmt.Sprintf("Could not apply DB migrations: %v", err))
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		terminate()
		panic("Could not connect to the database.")
	}

	return pool, func() {
		pool.Close()
		terminate()
	}
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), `TRUNCATE "user"`)
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
