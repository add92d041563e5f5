package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"museumhub/pkg/models"
	"museumhub/pkg/utils"
)

func TestNew_WiresPipeline(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "app.db")

	a, err := New(cfg, utils.DiscardLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer a.Close()

	if len(a.Sources) != 2 {
		t.Fatalf("want 2 sources, got %d", len(a.Sources))
	}
	if a.Sources[0].Source() != models.SourceAIC || a.Sources[1].Source() != models.SourceMet {
		t.Fatalf("sources out of merge order")
	}
	if err := a.DB.PingContext(context.Background()); err != nil {
		t.Fatalf("db ping: %v", err)
	}
	if a.Monitor() == nil {
		t.Fatalf("expected monitor")
	}

	now := time.Now()
	if got := a.PruneBefore(now); !got.Equal(now.Add(-cfg.Cache.TTL)) {
		t.Fatalf("unexpected prune cutoff %v", got)
	}
}

func TestNew_BadDBPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg := utils.DefaultConfig()
	cfg.DBPath = filepath.Join(blocker, "app.db")

	if _, err := New(cfg, utils.DiscardLogger()); err == nil {
		t.Fatalf("expected error for db path under a regular file")
	}
}
