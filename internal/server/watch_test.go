// File: watch_test.go
// Title: Locale Hot Reload Tests
// Description: Tests reloading the locale directory on demand and through
//              the fsnotify watcher.
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
	"os"
	"path/filepath"
	"testing"
	"time"

	dtlog "github.com/msto63/dtparse/core/log"
)

const dutchLocale = `tag: nl
name: Nederlands
field_order: dmy
months:
  - [januari, jan]
  - [februari, feb]
  - [maart, mrt]
  - [april, apr]
  - [mei]
  - [juni, jun]
  - [juli, jul]
  - [augustus, aug]
  - [september, sep]
  - [oktober, okt]
  - [november, nov]
  - [december, dec]
`

func TestLoadLocales(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "nl.yaml"), []byte(dutchLocale), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, tags, err := LoadLocales(dir)
	if err != nil {
		t.Fatalf("LoadLocales() error = %v", err)
	}
	if len(tags) != 1 || tags[0] != "nl" {
		t.Errorf("tags = %v, want [nl]", tags)
	}
	if _, err := reg.Get("nl"); err != nil {
		t.Errorf("Get(nl) error = %v", err)
	}
	if _, err := reg.Get("de"); err != nil {
		t.Errorf("bundled locale missing: %v", err)
	}
}

func TestLocaleWatcherReload(t *testing.T) {
	dir := t.TempDir()
	parsers := newTestParsers(t, nil)
	w := NewLocaleWatcher(dir, parsers, dtlog.Discard())

	if _, err := parsers.Get("nl", nil); err == nil {
		t.Fatal("nl available before it was written")
	}

	if err := os.WriteFile(filepath.Join(dir, "nl.yaml"), []byte(dutchLocale), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	p, err := parsers.Get("nl", nil)
	if err != nil {
		t.Fatalf("Get(nl) error = %v", err)
	}
	r, ok := p.Parse("3 maart 1990")
	if !ok || r.Month != 3 || r.Day != 3 || r.Year != 1990 {
		t.Errorf("Parse() = %+v, %v", r, ok)
	}

	// A broken file keeps the previous registry
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("tag: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Reload(); err == nil {
		t.Error("Reload() accepted a broken file")
	}
	if _, err := parsers.Get("nl", nil); err != nil {
		t.Errorf("previous registry lost: %v", err)
	}
}

func TestLocaleWatcherEvents(t *testing.T) {
	dir := t.TempDir()
	parsers := newTestParsers(t, nil)
	w := NewLocaleWatcher(dir, parsers, dtlog.Discard())
	w.SetDelay(50 * time.Millisecond)

	reloaded := make(chan []string, 4)
	w.SetOnReload(func(tags []string, err error) {
		if err == nil {
			reloaded <- tags
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "nl.yaml"), []byte(dutchLocale), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case tags := <-reloaded:
		if len(tags) != 1 || tags[0] != "nl" {
			t.Errorf("reloaded tags = %v", tags)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing a locale file")
	}

	if _, err := parsers.Get("nl", nil); err != nil {
		t.Errorf("Get(nl) error = %v", err)
	}
}

func TestLocaleWatcherMissingDir(t *testing.T) {
	w := NewLocaleWatcher(filepath.Join(t.TempDir(), "absent"), newTestParsers(t, nil), dtlog.Discard())
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Error("Start() succeeded on a missing directory")
	}
	w.Stop()
}
