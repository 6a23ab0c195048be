package content

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the store whenever its content file changes, until the
// context is cancelled. Editors often replace the file rather than write
// it in place, so the parent directory is watched and events are
// filtered by name.
func (s *Store) Watch(ctx context.Context, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.Reload(); err != nil {
					logger.Warn("content reload failed, keeping previous bundle",
						zap.String("path", s.path), zap.Error(err))
					continue
				}
				logger.Info("content reloaded", zap.String("path", s.path))

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("content watcher error", zap.Error(err))

			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}
