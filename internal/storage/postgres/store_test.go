package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/tinoosan/merchants/internal/model"
	"github.com/tinoosan/merchants/internal/storage/storetest"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

// truncateAll empties the table and restarts the identity so each run starts at id 1.
func truncateAll(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.pool.Exec(ctx, `truncate table merchants restart identity`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func TestStore_Contract(t *testing.T) {
	dsn := getTestDSN(t)
	storetest.Run(t, func(t *testing.T) storetest.Store {
		s := mustOpen(t, dsn)
		truncateAll(t, s)
		t.Cleanup(s.Close)
		return s
	})
}

func TestStore_ReadyAndReopen(t *testing.T) {
	dsn := getTestDSN(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	truncateAll(t, s)
	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}
	created, err := s.Create(ctx, model.Input{Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Close()

	// Open again: table creation must be idempotent and data durable
	s = mustOpen(t, dsn)
	defer s.Close()
	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Name != "Acme" || got.Description != nil {
		t.Fatalf("unexpected merchant: %+v", got)
	}
}
