package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/checklist-go/internal/checklist"
)

func openBackends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	file, err := OpenFile(filepath.Join(dir, "storage.json"))
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	db, err := OpenSQLite(filepath.Join(dir, "storage.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]Backend{
		BackendFile:   file,
		BackendSQLite: db,
		BackendMemory: NewMemory(),
	}
}

func TestBackendGetSet(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, found, err := b.Get("rows"); err != nil || found {
				t.Fatalf("Get on empty store: found=%v err=%v", found, err)
			}

			if err := b.Set("rows", `[]`); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := b.Set("progress", "0"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := b.Set("progress", "50"); err != nil {
				t.Fatalf("Set overwrite failed: %v", err)
			}

			v, found, err := b.Get("progress")
			if err != nil || !found {
				t.Fatalf("Get: found=%v err=%v", found, err)
			}
			if v != "50" {
				t.Errorf("progress: got %q, want 50", v)
			}
			v, _, _ = b.Get("rows")
			if v != "[]" {
				t.Errorf("rows: got %q, want []", v)
			}
		})
	}
}

func TestBackendDrivesView(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			v := checklist.NewView(b)
			if report := v.Initialize(); report.Source != checklist.SourceDefaults {
				t.Fatalf("Source: got %q, want defaults", report.Source)
			}
			for _, idx := range []int{0, 1, 0} {
				res, err := v.Toggle(idx)
				if err != nil || !res.Persisted() {
					t.Fatalf("Toggle(%d): err=%v persist=%v", idx, err, res.Err)
				}
			}

			reloaded := checklist.NewView(b)
			if report := reloaded.Initialize(); report.Source != checklist.SourceStored {
				t.Fatalf("reload Source: got %q, want stored", report.Source)
			}
			if diff := cmp.Diff(v.State(), reloaded.State()); diff != "" {
				t.Errorf("reloaded state (-want +got):\n%s", diff)
			}
			if got := reloaded.State().Progress; got != 50 {
				t.Errorf("progress: got %v, want 50", got)
			}
		})
	}
}

func TestFilePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	first, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if err := first.Set("rows", `[{"category":"A","description":"b","date":"c","selected":true}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	first.Close()

	second, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	v, found, err := second.Get("rows")
	if err != nil || !found {
		t.Fatalf("Get after reopen: found=%v err=%v", found, err)
	}
	if v != `[{"category":"A","description":"b","date":"c","selected":true}]` {
		t.Errorf("rows: got %q", v)
	}
	if second.Path() != path {
		t.Errorf("Path: got %q, want %q", second.Path(), path)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the store file, got %d entries", len(entries))
	}
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	if _, _, err := f.Get("rows"); err == nil {
		t.Fatal("expected error reading corrupt store")
	}

	// The view recovers with defaults.
	v := checklist.NewView(f)
	if report := v.Initialize(); report.Source != checklist.SourceDefaults {
		t.Errorf("Source: got %q, want defaults", report.Source)
	}

	// A write replaces the corrupt file.
	if err := f.Set("progress", "0"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, found, err := f.Get("progress"); err != nil || !found || v != "0" {
		t.Errorf("Get after repair: %q found=%v err=%v", v, found, err)
	}
}

func TestFileSetKeepsUnreadableFile(t *testing.T) {
	const content = `{"rows": "[]"}`
	tests := []struct {
		name  string
		setup func(t *testing.T, path string)
	}{
		{
			name: "symlink loop",
			setup: func(t *testing.T, path string) {
				if err := os.Symlink(filepath.Base(path), path); err != nil {
					t.Skipf("symlinks unavailable: %v", err)
				}
			},
		},
		{
			name: "no permission",
			setup: func(t *testing.T, path string) {
				if os.Geteuid() == 0 {
					t.Skip("root ignores file permissions")
				}
				if err := os.WriteFile(path, []byte(content), 0644); err != nil {
					t.Fatalf("WriteFile failed: %v", err)
				}
				if err := os.Chmod(path, 0); err != nil {
					t.Fatalf("Chmod failed: %v", err)
				}
				t.Cleanup(func() { os.Chmod(path, 0644) })
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "storage.json")
			tt.setup(t, path)
			before, err := os.Lstat(path)
			if err != nil {
				t.Fatalf("Lstat failed: %v", err)
			}

			f, err := OpenFile(path)
			if err != nil {
				t.Fatalf("OpenFile failed: %v", err)
			}
			err = f.Set("progress", "50")
			if err == nil {
				t.Fatal("expected Set to fail on an unreadable file")
			}
			if errors.Is(err, errCorruptFile) {
				t.Errorf("read failure reported as corrupt: %v", err)
			}

			after, err := os.Lstat(path)
			if err != nil {
				t.Fatalf("Lstat after Set failed: %v", err)
			}
			if !os.SameFile(before, after) || before.Mode() != after.Mode() {
				t.Errorf("store file was replaced: mode %v -> %v", before.Mode(), after.Mode())
			}
		})
	}
}

func TestFileEmptyIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if _, found, err := f.Get("rows"); err != nil || found {
		t.Errorf("Get: found=%v err=%v", found, err)
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := first.Set("progress", "25"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()
	v, found, err := second.Get("progress")
	if err != nil || !found || v != "25" {
		t.Errorf("Get after reopen: %q found=%v err=%v", v, found, err)
	}
}

func TestClosedBackends(t *testing.T) {
	m := NewMemory()
	m.Close()
	if err := m.Set("k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("memory Set after Close: got %v, want ErrClosed", err)
	}

	f, err := OpenFile(filepath.Join(t.TempDir(), "s.json"))
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	f.Close()
	if _, _, err := f.Get("k"); !errors.Is(err, ErrClosed) {
		t.Errorf("file Get after Close: got %v, want ErrClosed", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		path    string
		wantErr bool
	}{
		{"file", filepath.Join(dir, "a.json"), false},
		{" SQLite ", filepath.Join(dir, "a.db"), false},
		{"memory", "", false},
		{"redis", "", true},
		{"file", "", true},
	}

	for _, tt := range tests {
		b, err := Open(tt.backend, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%q, %q): err=%v, wantErr=%v", tt.backend, tt.path, err, tt.wantErr)
			continue
		}
		if b != nil {
			b.Close()
		}
	}

	if _, err := Open("redis", ""); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestValidBackend(t *testing.T) {
	for _, name := range []string{"file", "FILE", "sqlite", "memory"} {
		if !ValidBackend(name) {
			t.Errorf("ValidBackend(%q) = false", name)
		}
	}
	if ValidBackend("postgres") {
		t.Error("ValidBackend(postgres) = true")
	}
}
