package enhance

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/buddybot/buddyvoice/internal/voice/persona"
)

// Loader holds the active template table and optionally hot-reloads
// overrides from YAML files in a directory. With an empty dir it serves
// the compiled-in defaults.
type Loader struct {
	dir string

	mu        sync.RWMutex
	templates map[persona.Personality]Template
}

// NewLoader creates a loader seeded with the default templates.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:       dir,
		templates: Defaults(),
	}
}

// LoadAll merges all .yaml and .yml files from the configured directory
// over the defaults. Each file maps personality names to templates; a
// file keyed by an unrecognized personality is rejected so typos cannot
// silently displace a default.
func (l *Loader) LoadAll() error {
	if l.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("read template dir %q: %w", l.dir, err)
	}

	merged := Defaults()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		overrides, err := loadFile(path)
		if err != nil {
			return fmt.Errorf("load %q: %w", path, err)
		}
		for name, tpl := range overrides {
			if !persona.Known(name) {
				return fmt.Errorf("load %q: unknown personality %q", path, name)
			}
			merged[persona.Personality(name)] = tpl
		}
	}

	l.mu.Lock()
	l.templates = merged
	l.mu.Unlock()

	return nil
}

// Get returns the active template for a personality.
func (l *Loader) Get(p persona.Personality) Template {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.templates[p]
}

func loadFile(path string) (map[string]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var overrides map[string]Template
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return overrides, nil
}

// WatchAndReload watches the template directory and reloads on changes.
// It blocks until the done channel is closed.
func (l *Loader) WatchAndReload(done <-chan struct{}) error {
	if l.dir == "" {
		<-done
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.dir); err != nil {
		return fmt.Errorf("watch dir %q: %w", l.dir, err)
	}

	for {
		select {
		case <-done:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				ext := filepath.Ext(event.Name)
				if ext == ".yaml" || ext == ".yml" {
					_ = l.LoadAll()
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
