package config

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the scenario file on change. A cooldown suppresses the
// duplicate events editors emit on save.
type Watcher struct {
	Path     string
	Cooldown time.Duration

	// OnError is called with each failed reload. The previous scenario
	// stays in effect either way.
	OnError func(error)
}

// Start blocks until ctx is done, invoking onUpdate with each successfully
// reloaded scenario.
func (w Watcher) Start(ctx context.Context, onUpdate func(Scenario)) error {
	if w.Cooldown <= 0 {
		w.Cooldown = 2 * time.Second
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.Path); err != nil {
		return fmt.Errorf("watch %s: %w", w.Path, err)
	}

	var lastReload time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if time.Since(lastReload) < w.Cooldown {
				continue
			}
			cfg, err := Load(w.Path)
			if err != nil {
				if w.OnError != nil {
					w.OnError(fmt.Errorf("reload %s: %w", w.Path, err))
				}
				continue
			}
			lastReload = time.Now()
			if onUpdate != nil {
				onUpdate(cfg)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(fmt.Errorf("watch %s: %w", w.Path, err))
			}
		}
	}
}
