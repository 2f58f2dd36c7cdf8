package ephemeris

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	applogger "AstroInsight/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor save produces.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the fixture whenever its file changes, until ctx is done.
// The parent directory is watched so that files replaced by rename are
// picked up too. A fixture that fails to load is logged and skipped.
func (p *FileProvider) Watch(ctx context.Context, l *applogger.Logger) error {
	if p.path == "" {
		return fmt.Errorf("fixture was not loaded from a file")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fixture watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(p.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	l = l.With(applogger.String("fixture", target))
	l.Info("watching ephemeris fixture")

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if err := p.Reload(); err != nil {
				l.Warn("fixture reload failed, keeping previous sky", applogger.Error(err))
				continue
			}
			l.Info("fixture reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Warn("fixture watcher error", applogger.Error(err))
		}
	}
}
