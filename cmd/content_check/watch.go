package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// editors write a file in several steps; wait for them to settle
const watchDebounce = 300 * time.Millisecond

func watchDir(ctx context.Context, dir string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Errorf("close watcher: %s", err)
		}
	}()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	recheck := func() {
		fmt.Fprintf(w, "--- %s\n", time.Now().Format(time.TimeOnly))
		if err := runCheck(w, contentFS(dir)); err != nil && !errors.Is(err, errInvalidContent) {
			log.Errorf("check: %s", err)
		}
	}
	recheck()

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".toml" {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				log.Debugf("content changed: %s", event)
				debounce.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher: %s", err)
		case <-debounce.C:
			recheck()
		}
	}
}
