// File: watch.go
// Title: Locale Directory Hot Reload
// Description: Watches the external locale directory with fsnotify and
//              rebuilds the registry when a locale file changes. Bursts of
//              events are collapsed into one reload.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package server

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	dterror "github.com/msto63/dtparse/core/error"
	dtlog "github.com/msto63/dtparse/core/log"
	"github.com/msto63/dtparse/datetime/locale"
)

// DefaultReloadDelay is the quiet period before a reload
const DefaultReloadDelay = 300 * time.Millisecond

// LoadLocales returns a registry with the bundled locales plus every locale
// file in dir. An empty dir yields the bundled locales only.
func LoadLocales(dir string) (*locale.Registry, []string, error) {
	reg := locale.Default().Clone()
	if dir == "" {
		return reg, nil, nil
	}
	tags, err := reg.LoadDir(dir)
	if err != nil {
		return nil, tags, err
	}
	return reg, tags, nil
}

// LocaleWatcher reloads locales into a parser cache
type LocaleWatcher struct {
	dir     string
	parsers *Parsers
	delay   time.Duration
	logger  *dtlog.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	done     chan struct{}
	onReload func(tags []string, err error)
}

// NewLocaleWatcher creates a watcher for dir
func NewLocaleWatcher(dir string, parsers *Parsers, logger *dtlog.Logger) *LocaleWatcher {
	if logger == nil {
		logger = dtlog.GetDefault()
	}
	return &LocaleWatcher{
		dir:     dir,
		parsers: parsers,
		delay:   DefaultReloadDelay,
		logger:  logger.WithName("locale-watcher").WithField("dir", dir),
	}
}

// SetDelay changes the quiet period before a reload
func (w *LocaleWatcher) SetDelay(d time.Duration) {
	w.delay = d
}

// SetOnReload registers a callback invoked after every reload attempt
func (w *LocaleWatcher) SetOnReload(fn func(tags []string, err error)) {
	w.onReload = fn
}

// Reload rebuilds the registry from disk and swaps it in. A broken file
// keeps the previous registry in place.
func (w *LocaleWatcher) Reload() error {
	reg, tags, err := LoadLocales(w.dir)
	if err != nil {
		w.logger.WarnWithErr("Locale reload failed, keeping previous locales", err)
	} else {
		w.parsers.Swap(reg)
		w.logger.Info("Locales reloaded", dtlog.Fields{"loaded": tags})
	}
	if w.onReload != nil {
		w.onReload(tags, err)
	}
	return err
}

// Start begins watching until ctx is done or Stop is called
func (w *LocaleWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return dterror.Wrap(err, "failed to create watcher").
			WithCode(dterror.CodeInternal).
			WithOperation("server.LocaleWatcher.Start")
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return dterror.Wrap(err, "failed to watch directory").
			WithCode(dterror.CodeLocaleNotFound).
			WithOperation("server.LocaleWatcher.Start").
			WithDetail("dir", w.dir)
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	w.logger.Info("Started watching for locale changes")

	go w.watchLoop(ctx, watcher, w.done)
	return nil
}

// Stop ends watching; it is safe to call more than once
func (w *LocaleWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return
	}
	w.watcher.Close()
	<-w.done
	w.watcher = nil
}

func (w *LocaleWatcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	// Reload once the directory has been quiet for the delay
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping locale watcher (context cancelled)")
			watcher.Close()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if _, known := locale.DetectFormat(event.Name); !known {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("Locale file changed", dtlog.Fields{
				"file": filepath.Base(event.Name),
				"op":   event.Op.String(),
			})
			pending = time.After(w.delay)

		case <-pending:
			pending = nil
			w.Reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.WarnWithErr("Watcher error", err)
		}
	}
}
