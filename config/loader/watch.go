package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
)

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watch reports the section of every section file written, created, removed
// or renamed in a layer. Layers that do not exist are skipped. It returns once
// the watches are in place; watching stops when ctx is done.
func (l *Loader) Watch(ctx context.Context, onChange func(section string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	for _, layer := range l.layers {
		_, statErr := os.Stat(layer)
		if errors.Is(statErr, fs.ErrNotExist) {
			l.logger.Debug("config layer missing, not watched", slog.String("layer", layer))

			continue
		}

		err = watcher.Add(layer)
		if err != nil {
			_ = watcher.Close()

			return fmt.Errorf("watching %q: %w", layer, err)
		}
	}

	go l.watchLoop(ctx, watcher, onChange)

	return nil
}

func (l *Loader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, onChange func(section string)) {
	defer func() { _ = watcher.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op&changeOps == 0 {
				continue
			}

			section, isSection := sectionOf(event.Name)
			if !isSection {
				continue
			}

			l.logger.Debug("config file changed",
				slog.String("file", event.Name), slog.String("op", event.Op.String()))
			onChange(section)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			l.logger.Warn("config watcher error", slog.Any("error", err))
		}
	}
}
