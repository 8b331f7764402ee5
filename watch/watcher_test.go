package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func startWatcher(t *testing.T, paths ...string) (*Watcher, context.CancelFunc) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	w, err := New(paths, 50*time.Millisecond, logger)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := w.Start(ctx); err != nil {
		cancel()
		t.Fatalf("failed to start watcher: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		w.Stop()
	})
	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)
	return w, cancel
}

func expectEvent(t *testing.T, w *Watcher, want Operation, path string) {
	t.Helper()
	select {
	case ev := <-w.Events():
		if ev.Operation != want {
			t.Errorf("expected %s operation, got %s", want, ev.Operation)
		}
		if ev.Path != path {
			t.Errorf("expected path %s, got %s", path, ev.Path)
		}
	case <-time.After(time.Second):
		t.Errorf("timeout waiting for %s event", want)
	}
}

func expectNoEvent(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case ev := <-w.Events():
		t.Errorf("unexpected event: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestNewRequiresPaths(t *testing.T) {
	if _, err := New(nil, 0, nil); err == nil {
		t.Error("expected error for no paths")
	}
}

func TestNewDefaultDebounce(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "caseschema.yaml")}, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if w.debounce != DefaultDebounce {
		t.Errorf("expected default debounce, got %s", w.debounce)
	}
}

func TestModification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caseschema.yaml")
	writeFile(t, path, "output:\n  dir: a\n")

	w, _ := startWatcher(t, path)
	writeFile(t, path, "output:\n  dir: b\n")
	expectEvent(t, w, OpModify, path)
}

func TestCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caseschema.yaml")

	w, _ := startWatcher(t, path)
	writeFile(t, path, "output:\n  dir: a\n")
	expectEvent(t, w, OpCreate, path)
}

func TestDeletion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caseschema.yaml")
	writeFile(t, path, "output:\n  dir: a\n")

	w, _ := startWatcher(t, path)
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	expectEvent(t, w, OpDelete, path)
}

func TestUnchangedContentIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caseschema.yaml")
	writeFile(t, path, "same")

	w, _ := startWatcher(t, path)
	writeFile(t, path, "same")
	expectNoEvent(t, w)
}

func TestUnwatchedSiblingIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "caseschema.yaml")
	writeFile(t, path, "x")

	w, _ := startWatcher(t, path)
	writeFile(t, filepath.Join(dir, "other.yaml"), "y")
	expectNoEvent(t, w)
}

func TestRunCallsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caseschema.yaml")
	writeFile(t, path, "a")

	w, err := New([]string{path}, 50*time.Millisecond, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	calls := make(chan Event, 4)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, w, func(_ context.Context, ev Event) error {
			calls <- ev
			return errors.New("rerun failed")
		})
	}()

	time.Sleep(150 * time.Millisecond)
	writeFile(t, path, "b")

	select {
	case ev := <-calls:
		if ev.Operation != OpModify {
			t.Errorf("expected modify, got %s", ev.Operation)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for onChange")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Run did not return after cancel")
	}
}

func TestRunStopsWatcherWhenStartFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "caseschema.yaml")
	w, err := New([]string{path}, 50*time.Millisecond, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}

	err = Run(context.Background(), w, func(context.Context, Event) error { return nil })
	if err == nil {
		t.Fatal("expected error watching a missing directory")
	}
	if err := w.watcher.Add(t.TempDir()); !errors.Is(err, fsnotify.ErrClosed) {
		t.Errorf("expected closed watcher after failed start, got %v", err)
	}
}
