package prefabs

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is sent after a watched file changes. Config is the freshly loaded
// and validated configuration; it is nil when Err is set.
type Reload struct {
	Path   string
	Config *Config
	Err    error
}

// Watcher reloads the configuration whenever a config, script or pattern
// file changes, debounced per file.
type Watcher struct {
	watcher *fsnotify.Watcher
	load    func() (*Config, error)
	Events  chan Reload
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	return newWatcher(ReloadConfig, dirs...)
}

func newWatcher(load func() (*Config, error), dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		load:    load,
		Events:  make(chan Reload, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// ReloadConfig loads the configuration and checks that the boss script and
// bullet pattern it names still load.
func ReloadConfig() (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Boss.Script != "" {
		if _, err := LoadScript(cfg.Boss.Script); err != nil {
			return nil, fmt.Errorf("prefabs: boss script %s: %w", cfg.Boss.Script, err)
		}
	}
	if cfg.Boss.Pattern != "" {
		if _, err := LoadPattern(cfg.Boss.Pattern); err != nil {
			return nil, fmt.Errorf("prefabs: boss pattern %s: %w", cfg.Boss.Pattern, err)
		}
	}
	return cfg, nil
}

// run owns the outgoing channels and closes them on exit.
func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Events)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) && !isPatternFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now

			r := Reload{Path: event.Name}
			r.Config, r.Err = w.load()
			select {
			case w.Events <- r:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

func isPatternFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".xml"
}
