package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/honeybbq/runconfig/domain/biaffine"
)

// watchConfig re-loads and re-validates the configuration every time the
// file is written, until interrupted. Intended for hand-editing
// hyperparameter files: save, read the verdict, keep editing.
//
// The watch is placed on the parent directory because most editors replace
// the file on save (rename + create) which would silently drop a watch on
// the file itself.
func watchConfig(path string, extras, sets []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	logger.Printf("watching %s", path)
	checkOnce(logger, path, extras, sets)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			checkOnce(logger, path, extras, sets)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch error: %v", err)
		case <-interrupt:
			logger.Printf("stopped")
			return nil
		}
	}
}

// checkOnce 重新加载并校验，每次都构建全新的 Config。
func checkOnce(logger *log.Logger, path string, extras, sets []string) {
	cfg, err := loadConfig(path, extras, sets)
	if err != nil {
		logger.Printf("%s: %v", path, err)
		return
	}
	if _, err := biaffine.FromConfig(cfg); err != nil {
		logger.Printf("%s: %v", path, err)
		return
	}
	logger.Printf("%s: ok", path)
}
