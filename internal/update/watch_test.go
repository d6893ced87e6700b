package update_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/g5becks/mdtoc/internal/config"
	"github.com/g5becks/mdtoc/internal/update"
)

func TestWatchAppliesInitialPassAndFollowsChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "# Title\n[](TOC)\nbody\n")

	cfg := testConfig(dir, map[string]config.Target{
		"docs": {Pattern: "*.md"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- update.Watch(ctx, cfg, update.Options{})
	}()

	waitForContent(t, path, "- [Title](#title)")

	writeFile(t, path, "# Renamed\n[](TOC)\nbody\n")
	waitForContent(t, path, "- [Renamed](#renamed)")

	cancel()
	select {
	case err := <-watchDone:
		if err != nil {
			t.Fatalf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not stop after cancellation")
	}
}

func waitForContent(t *testing.T, path, substring string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(readFileQuiet(path), substring) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("file %q never contained %q; content = %q", path, substring, readFileQuiet(path))
}

func readFileQuiet(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	return string(content)
}
