package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-qa-backend/internal/config"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/memstore"
	"github.com/tbourn/go-qa-backend/internal/moderation"
)

func TestLoadEnvFile(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
	if err := loadEnvFile(""); err != nil {
		t.Fatalf("empty path: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("QA_TEST_FROM_DOTENV=yes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("QA_TEST_FROM_DOTENV") })
	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("QA_TEST_FROM_DOTENV"); got != "yes" {
		t.Fatalf("dotenv value not loaded, got %q", got)
	}
}

func TestOpenStore_Memory(t *testing.T) {
	st, closeFn, err := openStore(config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}})
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	if _, ok := st.(*memstore.Store); !ok {
		t.Fatalf("expected *memstore.Store, got %T", st)
	}
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{
		Backend:      config.BackendDatabase,
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "qa.db"),
		MaxOpenConns: 1,
		QueryTimeout: time.Second,
	}}
	st, closeFn, err := openStore(cfg)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer closeFn()

	q, err := st.CreateQuestion(context.Background(), domain.NewQuestion{Title: "a", Content: "b"})
	if err != nil || q.ID != 1 {
		t.Fatalf("CreateQuestion = %+v, %v", q, err)
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Backend: config.BackendDatabase, Driver: "oracle", DSN: "x"}}
	if _, _, err := openStore(cfg); err == nil || !strings.Contains(err.Error(), "oracle") {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
}

func TestNewCensor(t *testing.T) {
	if _, ok := newCensor(config.ModerationConfig{Enabled: false}).(moderation.Noop); !ok {
		t.Fatalf("disabled moderation should yield Noop")
	}
	if _, ok := newCensor(config.ModerationConfig{Enabled: true, APIKey: "k", Timeout: time.Second}).(*moderation.Client); !ok {
		t.Fatalf("enabled moderation should yield *moderation.Client")
	}
}

func TestSeedCommand(t *testing.T) {
	// Seeding never calls the moderation API, so a missing key must not block it.
	t.Setenv("MODERATION_ENABLED", "true")
	t.Setenv("MODERATION_API_KEY", "")

	file := filepath.Join(t.TempDir(), "seed.jsonc")
	if err := os.WriteFile(file, []byte(`[{"title": "a", "content": "b"}, // one
]`), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("memory backend is rejected", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "memory")
		cmd := newRootCommand()
		cmd.SetArgs([]string{"--env-file=", "seed", file})
		if err := cmd.Execute(); err == nil {
			t.Fatalf("expected error for memory backend")
		}
	})

	t.Run("sqlite backend", func(t *testing.T) {
		dsn := filepath.Join(t.TempDir(), "seeded.db")
		t.Setenv("STORE_BACKEND", "database")
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("DB_DSN", dsn)
		cmd := newRootCommand()
		cmd.SetArgs([]string{"--env-file=", "seed", file})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("seed: %v", err)
		}

		st, closeFn, err := openStore(config.Config{Store: config.StoreConfig{
			Backend: config.BackendDatabase, Driver: "sqlite", DSN: dsn, QueryTimeout: time.Second,
		}})
		if err != nil {
			t.Fatal(err)
		}
		defer closeFn()
		qs, err := st.ListQuestions(context.Background(), domain.Pagination{})
		if err != nil || len(qs) != 1 {
			t.Fatalf("seeded rows = %d, %v", len(qs), err)
		}
	})
}
