package filelock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "out.json.lock"))

	if err := lock.Lock(context.Background()); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestLockRespectsContext(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "out.json.lock")

	holder := NewFileLock(lockPath)
	if err := holder.Lock(context.Background()); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := NewFileLock(lockPath).Lock(ctx)
	if err == nil {
		t.Fatal("Expected contended lock to fail once the context expired")
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("Lock did not honour context deadline, waited %v", time.Since(start))
	}
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "python_output.json")
	content := []byte(`{"unused_imports": []}`)

	if err := AtomicWrite(path, content); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("Expected content %q, got %q", content, got)
	}
}

func TestAtomicWriteOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rust_output.json")

	if err := os.WriteFile(path, []byte("stale output from a previous run"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}
	if err := AtomicWrite(path, []byte("{}")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "{}" {
		t.Errorf("Expected overwritten content, got %q", got)
	}
}

func TestAtomicWriteNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := AtomicWrite(path, []byte("{}")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWritePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := AtomicWrite(path, []byte("{}")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("Expected permissions 0644, got %o", info.Mode().Perm())
	}
}

func TestAtomicWriteCreateDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "nested", "out.json")

	if err := AtomicWrite(path, []byte("{}")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}

func TestLockAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "python_output.json")

	if err := LockAndWrite(context.Background(), path, []byte(`{"unused_functions": []}`)); err != nil {
		t.Fatalf("LockAndWrite failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != `{"unused_functions": []}` {
		t.Errorf("Unexpected content %q", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "python_output.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Expected only the output file next to it, got %v", names)
	}
}

func TestLockPath(t *testing.T) {
	dir := t.TempDir()
	a := LockPath(filepath.Join(dir, "python_output.json"))
	b := LockPath(filepath.Join(dir, "rust_output.json"))

	if filepath.Dir(a) != filepath.Clean(os.TempDir()) {
		t.Errorf("Expected lock in %s, got %s", os.TempDir(), a)
	}
	if a == b {
		t.Errorf("Different outputs share lock %s", a)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if LockPath("out.json") != LockPath(filepath.Join(wd, "out.json")) {
		t.Error("Relative and absolute spellings of one path must share a lock")
	}
}

func TestConcurrentLockAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- LockAndWrite(context.Background(), path, []byte(fmt.Sprintf(`{"writer": %d}`, n)))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("LockAndWrite failed: %v", err)
		}
	}

	got, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(got), `{"writer": `) || !strings.HasSuffix(string(got), "}") {
		t.Errorf("File holds a torn write: %q", got)
	}
}
