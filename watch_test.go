package lantern_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"impractical.co/lantern"
)

type resetFunc func()

func (r resetFunc) Reset() { r() }

func TestWatchTemplatesResetsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "home.html.tmpl")
	if err := os.WriteFile(path, []byte("v1"), 0o600); err != nil {
		t.Fatalf("error writing template: %s", err)
	}

	resets := make(chan struct{}, 8)
	watcher, err := lantern.WatchTemplates(context.Background(), dir, resetFunc(func() {
		select {
		case resets <- struct{}{}:
		default:
		}
	}))
	if err != nil {
		t.Fatalf("error starting watcher: %s", err)
	}

	if err := os.WriteFile(path, []byte("v2"), 0o600); err != nil {
		t.Fatalf("error rewriting template: %s", err)
	}
	select {
	case <-resets:
	case <-time.After(5 * time.Second):
		t.Error("expected the site to be reset after a template changed")
	}

	if err := watcher.Close(); err != nil {
		t.Errorf("error closing watcher: %s", err)
	}
}

func TestWatchTemplatesMissingDir(t *testing.T) {
	_, err := lantern.WatchTemplates(context.Background(), filepath.Join(t.TempDir(), "missing"), resetFunc(func() {}))
	if err == nil {
		t.Error("expected an error watching a directory that doesn't exist")
	}
}
