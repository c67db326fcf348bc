package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChangeName(t *testing.T) {
	cases := []struct {
		change Change
		want   string
	}{
		{Change{Path: filepath.Join("prefabs", "player.yaml")}, "player.yaml"},
		{Change{Path: filepath.Join("prefabs", "scripts", "ring.tengo"), Script: true}, "scripts/ring.tengo"},
	}
	for _, c := range cases {
		if got := c.change.Name(); got != c.want {
			t.Fatalf("Name(%q) = %q, want %q", c.change.Path, got, c.want)
		}
	}
}

func TestWatchFileFilters(t *testing.T) {
	cases := []struct {
		path   string
		spec   bool
		script bool
	}{
		{"a/b.yaml", true, false},
		{"a/b.YML", true, false},
		{"a/b.json", false, false},
		{"c.tengo", false, true},
		{"c.TENGO", false, true},
	}
	for _, c := range cases {
		if got := isSpecFile(c.path); got != c.spec {
			t.Fatalf("isSpecFile(%q) = %v, want %v", c.path, got, c.spec)
		}
		if got := isScriptFile(c.path); got != c.script {
			t.Fatalf("isScriptFile(%q) = %v, want %v", c.path, got, c.script)
		}
	}
}

func TestWatcherReportsSpecAndScriptEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	write := func(name string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x: 1\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	write("notes.txt")
	write("world.yaml")
	expectChange(t, w, "world.yaml", false)

	write("ring.tengo")
	expectChange(t, w, "ring.tengo", true)
}

func expectChange(t *testing.T, w *Watcher, base string, script bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case c := <-w.Events:
			if filepath.Base(c.Path) != base {
				// a create and a write can both arrive outside the debounce window
				continue
			}
			if c.Script != script {
				t.Fatalf("%s: Script = %v, want %v", base, c.Script, script)
			}
			return
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-deadline:
			t.Fatalf("no change reported for %s", base)
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("Events should be closed")
	}
}
