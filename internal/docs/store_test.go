package docs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDoc(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestStoreLoadKnownDocument(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "getting-started/concepts.md", "concepts content")

	store := NewStore(dir)
	defer store.Close()

	if got := store.Load(DocConcepts); got != "concepts content" {
		t.Errorf("Load = %q, want %q", got, "concepts content")
	}
}

func TestStoreLoadMissingDocument(t *testing.T) {
	store := NewStore(t.TempDir())
	defer store.Close()

	if got := store.Load(DocConcepts); got != "" {
		t.Errorf("Load = %q, want empty for missing file", got)
	}
}

func TestStoreLoadUnknownName(t *testing.T) {
	store := NewStore(t.TempDir())
	defer store.Close()

	if got := store.Load("no-such-doc"); got != "" {
		t.Errorf("Load = %q, want empty for unknown name", got)
	}
}

func TestStoreExists(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "guides/custom-tasks.md", "custom tasks")

	store := NewStore(dir)
	defer store.Close()

	if !store.Exists(DocCustomTasks) {
		t.Error("Exists = false, want true for present document")
	}
	if store.Exists(DocConcepts) {
		t.Error("Exists = true, want false for absent document")
	}
}

func TestStoreCachesReads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "getting-started", "concepts.md")
	writeDoc(t, dir, "getting-started/concepts.md", "original")

	// Stop the watcher first so the rewrite below cannot invalidate the
	// cache; this pins down that Load serves from cache once populated.
	store := NewStore(dir)
	store.Close()

	if got := store.Load(DocConcepts); got != "original" {
		t.Fatalf("Load = %q, want %q", got, "original")
	}
	if err := os.WriteFile(path, []byte("rewritten"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got := store.Load(DocConcepts); got != "original" {
		t.Errorf("Load after rewrite = %q, want cached %q", got, "original")
	}
}

func TestStoreWatcherInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "getting-started", "concepts.md")
	writeDoc(t, dir, "getting-started/concepts.md", "original")

	store := NewStore(dir)
	defer store.Close()

	if got := store.Load(DocConcepts); got != "original" {
		t.Fatalf("Load = %q, want %q", got, "original")
	}
	if err := os.WriteFile(path, []byte("rewritten"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// The watcher delivers events asynchronously; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if store.Load(DocConcepts) == "rewritten" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("Load = %q, want %q after file change", store.Load(DocConcepts), "rewritten")
}

func TestNamesStableOrder(t *testing.T) {
	want := []string{DocConcepts, DocOrchestration, DocExamples, DocCustomTasks}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("len(Names()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
