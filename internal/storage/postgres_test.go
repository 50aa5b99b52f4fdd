package storage

import (
	"context"
	"os"
	"testing"
)

// TestPostgresBackend runs against a real server. Set
// ARCADE_TEST_POSTGRES_DSN to enable it.
func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv("ARCADE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ARCADE_TEST_POSTGRES_DSN not set")
	}

	runBackendSuite(t, func(t *testing.T) Backend {
		ctx := context.Background()
		pg, err := OpenPostgres(ctx, dsn, 3, quietLogger())
		if err != nil {
			t.Fatalf("OpenPostgres() failed: %v", err)
		}
		t.Cleanup(func() { pg.Close() })

		// Each subtest gets clean tables.
		if _, err := pg.pool.Exec(ctx, "TRUNCATE leaderboard_scores, profiles"); err != nil {
			t.Fatalf("truncate failed: %v", err)
		}
		return pg
	})
}

func TestPostgresBadDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "not a dsn", 0, quietLogger())
	if err == nil {
		t.Error("OpenPostgres() with a malformed DSN should fail")
	}
}
