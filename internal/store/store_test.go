package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/lzjever/open189/internal/core"
)

func TestCodeStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("open189"),
		postgres.WithUsername("open189"),
		postgres.WithPassword("open189_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	pool, err := NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to connect: %s", err)
	}
	defer pool.Close()

	s := NewCodeStore(pool, 10*time.Minute)
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to create schema: %s", err)
	}
	// Idempotent.
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema: %s", err)
	}

	received := time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC)

	t.Run("GetMissing", func(t *testing.T) {
		if _, err := s.Get(ctx, "nope"); !errors.Is(err, core.ErrRandcodeNotFound) {
			t.Fatalf("expected ErrRandcodeNotFound, got %v", err)
		}
	})

	t.Run("PutGet", func(t *testing.T) {
		if err := s.Put(ctx, core.Randcode{Identifier: "id-1", Code: "123456", ReceivedAt: received}); err != nil {
			t.Fatalf("failed to put: %s", err)
		}
		r, err := s.Get(ctx, "id-1")
		if err != nil {
			t.Fatalf("failed to get: %s", err)
		}
		if r.Code != "123456" {
			t.Errorf("expected code 123456, got %s", r.Code)
		}
		if !r.ReceivedAt.Equal(received) {
			t.Errorf("expected received_at %s, got %s", received, r.ReceivedAt)
		}
	})

	t.Run("PutReplaces", func(t *testing.T) {
		later := received.Add(time.Minute)
		if err := s.Put(ctx, core.Randcode{Identifier: "id-1", Code: "654321", ReceivedAt: later}); err != nil {
			t.Fatalf("failed to put: %s", err)
		}
		r, err := s.Get(ctx, "id-1")
		if err != nil {
			t.Fatalf("failed to get: %s", err)
		}
		if r.Code != "654321" || !r.ReceivedAt.Equal(later) {
			t.Errorf("expected replaced row, got %+v", r)
		}
	})

	t.Run("PutPrunesExpired", func(t *testing.T) {
		// Rows are judged against the store clock, not the row being written.
		s.now = func() time.Time { return received.Add(30 * time.Minute) }
		defer func() { s.now = time.Now }()

		if err := s.Put(ctx, core.Randcode{Identifier: "id-2", Code: "222222", ReceivedAt: received.Add(30 * time.Minute)}); err != nil {
			t.Fatalf("failed to put: %s", err)
		}
		if _, err := s.Get(ctx, "id-1"); !errors.Is(err, core.ErrRandcodeNotFound) {
			t.Fatalf("expected expired id-1 to be pruned, got %v", err)
		}
		if _, err := s.Get(ctx, "id-2"); err != nil {
			t.Fatalf("expected id-2 to be stored: %s", err)
		}
	})

	if err := s.Ping(ctx); err != nil {
		t.Errorf("ping: %s", err)
	}
}
