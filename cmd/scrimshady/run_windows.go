//go:build windows

package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-ole/go-ole"

	"github.com/scrimshady/scrimshady/internal/config"
	"github.com/scrimshady/scrimshady/internal/logging"
	"github.com/scrimshady/scrimshady/internal/render"
	"github.com/scrimshady/scrimshady/internal/win"
)

// run owns the whole session lifetime: everything up to the message
// loop is a startup failure (exit nonzero), everything after is
// handled per-frame.
func run(cfg *config.Config) error {
	for _, err := range cfg.Validate() {
		fmt.Fprintln(os.Stderr, "config:", err)
	}
	logging.Init(cfg.Log.Format, cfg.Log.Level, os.Stderr)
	log := slog.Default()

	// The message pump and every COM call stay on this thread.
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		return fmt.Errorf("initialize COM: %w", err)
	}
	defer ole.CoUninitialize()

	window, err := win.New(win.Options{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Borderless: cfg.Window.Borderless,
	}, log)
	if err != nil {
		return err
	}

	session, err := render.NewSession(window.HWND(), window, cfg, log)
	if err != nil {
		return err
	}

	if session.Topmost() {
		if err := window.SetTopmost(true); err != nil {
			log.Warn("always-on-top unavailable", "error", err)
		}
	}

	if err := window.Run(session); err != nil {
		return fmt.Errorf("session ended: %w", err)
	}
	log.Info("clean shutdown")
	return nil
}
