package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsTuningEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}
	target := filepath.Join(dir, GameFile)
	if err := os.WriteFile(target, []byte("name: edited\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case change, ok := <-w.Events:
			if !ok {
				t.Fatalf("events channel closed early")
			}
			if filepath.Ext(change.Path) == ".txt" {
				t.Fatalf("non-tuning file reported: %s", change.Path)
			}
			if filepath.Base(change.Path) == GameFile {
				if change.Kind != ChangeTuning {
					t.Fatalf("kind = %s, want tuning", change.Kind)
				}
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watch error: %v", err)
		case <-deadline:
			t.Fatalf("no event for %s", target)
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("events channel should be closed")
	}
}

func TestWatcherCoalescesScriptBursts(t *testing.T) {
	dir := t.TempDir()
	scripts := filepath.Join(dir, "scripts")
	if err := os.Mkdir(scripts, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	target := filepath.Join(scripts, "roster.tengo")
	for i := range 5 {
		body := []byte("speed := " + string(rune('1'+i)) + "\n")
		if err := os.WriteFile(target, body, 0o644); err != nil {
			t.Fatalf("write script: %v", err)
		}
	}

	var got []Change
	deadline := time.After(3 * time.Second)
	for len(got) == 0 {
		select {
		case change := <-w.Events:
			got = append(got, change)
		case err := <-w.Errors:
			t.Fatalf("watch error: %v", err)
		case <-deadline:
			t.Fatalf("no event for %s", target)
		}
	}
	quiet := time.After(5 * watchDebounce)
	for {
		select {
		case change := <-w.Events:
			got = append(got, change)
		case <-quiet:
			if len(got) != 1 {
				t.Fatalf("expected one settled change, got %+v", got)
			}
			if got[0].Kind != ChangeRoster || filepath.Base(got[0].Path) != "roster.tengo" {
				t.Fatalf("unexpected change %+v", got[0])
			}
			return
		}
	}
}
