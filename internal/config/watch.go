package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/meshras/internal/logger"
)

// Watch reloads path whenever it changes on disk and sends each successfully
// loaded config on the returned channel. Load failures go to the error
// channel; watching continues. Both channels close when ctx is done.
//
// The parent directory is watched rather than the file so that editors which
// save by rename are still observed.
func Watch(ctx context.Context, path string) (<-chan *Config, <-chan error, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	configs := make(chan *Config)
	errs := make(chan error)

	go func() {
		defer close(configs)
		defer close(errs)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				logger.Debug("config changed", zap.String("path", abs), zap.Stringer("op", ev.Op))

				cfg, err := LoadFile(abs)
				if err != nil {
					select {
					case errs <- err:
					case <-ctx.Done():
						return
					}
					continue
				}
				select {
				case configs <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return configs, errs, nil
}
