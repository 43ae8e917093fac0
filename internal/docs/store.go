// Package docs loads and truncates reference documentation used as LLM
// prompt context. Documents are addressed by logical name; a missing
// document is never fatal and reads as empty.
package docs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Logical document names.
const (
	DocConcepts      = "concepts"
	DocOrchestration = "task-orchestration"
	DocExamples      = "task-tree-examples"
	DocCustomTasks   = "custom-tasks"
)

// docFiles maps logical names to paths relative to the docs directory.
var docFiles = map[string]string{
	DocConcepts:      filepath.Join("getting-started", "concepts.md"),
	DocOrchestration: filepath.Join("guides", "task-orchestration.md"),
	DocExamples:      filepath.Join("examples", "task-tree.md"),
	DocCustomTasks:   filepath.Join("guides", "custom-tasks.md"),
}

// Store reads documentation files under a base directory and caches their
// contents. A filesystem watcher invalidates the cache when anything under
// the watched directories changes; if the watcher cannot be created the
// store degrades to uncached reads.
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string]string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	s := &Store{
		dir:   dir,
		cache: make(map[string]string),
		done:  make(chan struct{}),
	}
	s.startWatcher()
	return s
}

// startWatcher begins watching the docs directory and the subdirectories
// that hold known documents. Watch failures are ignored; caching still
// works, it just never invalidates.
func (s *Store) startWatcher() {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	s.watcher = w

	dirs := map[string]bool{s.dir: true}
	for _, rel := range docFiles {
		dirs[filepath.Join(s.dir, filepath.Dir(rel))] = true
	}
	for d := range dirs {
		_ = w.Add(d)
	}

	go func() {
		for {
			select {
			case _, ok := <-w.Events:
				if !ok {
					return
				}
				s.invalidate()
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-s.done:
				return
			}
		}
	}()
}

// invalidate drops all cached contents.
func (s *Store) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]string)
}

// Load returns the contents of the named document, or the empty string if
// the name is unknown or the file is absent or unreadable.
func (s *Store) Load(name string) string {
	rel, ok := docFiles[name]
	if !ok {
		return ""
	}

	s.mu.RLock()
	cached, hit := s.cache[name]
	s.mu.RUnlock()
	if hit {
		return cached
	}

	content, err := os.ReadFile(filepath.Join(s.dir, rel))
	if err != nil {
		return ""
	}

	s.mu.Lock()
	s.cache[name] = string(content)
	s.mu.Unlock()
	return string(content)
}

// Exists reports whether the named document is present on disk.
func (s *Store) Exists(name string) bool {
	rel, ok := docFiles[name]
	if !ok {
		return false
	}
	info, err := os.Stat(filepath.Join(s.dir, rel))
	return err == nil && !info.IsDir()
}

// Names returns the known logical document names in a stable order.
func Names() []string {
	return []string{DocConcepts, DocOrchestration, DocExamples, DocCustomTasks}
}

// Close stops the filesystem watcher. Safe to call on a store whose
// watcher never started.
func (s *Store) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
