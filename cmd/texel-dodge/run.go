// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texel-dodge/run.go
// Summary: Interactive terminal desktop with dodge transitions.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texeldodge/config"
	"github.com/framegrace/texeldodge/dodge"
	"github.com/framegrace/texeldodge/internal/journal"
	"github.com/framegrace/texeldodge/internal/theming"
	"github.com/framegrace/texeldodge/texel"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive desktop",
	Long: `Open a terminal desktop with floating windows. Switching focus swings the
two windows past each other.

Keys: Tab/Shift-Tab cycle focus, arrows focus the nearest window in that
direction, n opens a window, x closes the active one, q or Esc quits.`,
	RunE: runDesktop,
}

func init() {
	runCmd.Flags().String("scene", "", "YAML scene with initial windows and an optional script")
	runCmd.Flags().Bool("journal", false, "Record finished transitions in the journal")
	runCmd.Flags().String("log-file", "", "Log file (default from config)")
}

func runDesktop(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("run needs an interactive terminal; use simulate for headless runs")
	}

	cfg, opts := loadOptions()

	logPath, _ := cmd.Flags().GetString("log-file")
	if logPath == "" {
		var err error
		if logPath, err = config.LogPath(cfg); err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
	}
	closeLog, err := redirectLog(logPath)
	if err != nil {
		return err
	}
	defer closeLog()
	if verboseEnabled(cmd) {
		dodge.SetDebugOutput(log.Writer())
	}

	scene := DefaultScene()
	if path, _ := cmd.Flags().GetString("scene"); path != "" {
		if scene, err = LoadScene(path); err != nil {
			return err
		}
	}

	listeners := dodge.Listeners{dodge.LogListener{}}
	useJournal, _ := cmd.Flags().GetBool("journal")
	if useJournal || cfg.GetBool("journal", "enabled", false) {
		path, err := config.JournalPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve journal path: %w", err)
		}
		j, err := journal.Open(path)
		if err != nil {
			return err
		}
		defer j.Close()
		listeners = append(listeners, j)
	}
	opts.Listener = listeners

	driver, err := texel.NewTerminalDriver()
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	desktop := texel.NewDesktop(driver)
	defer desktop.Close()
	desktop.UseTerminalColors()
	palette := theming.FromTheme(theming.ForDesktop(cfg))
	desktop.ActiveBorderColor = palette.ActiveBorder
	desktop.InactiveBorderColor = palette.InactiveBorder

	scene.Apply(desktop)
	engine := dodge.NewEngine(desktop, opts)
	gate := dodge.NewGate(desktop, engine)
	gate.Start()
	defer gate.Close()

	loop := texel.NewLoop(desktop, cfg.GetDurationMS("dodge", "frame_ms", texel.DefaultFrameInterval))
	for _, st := range scene.Script {
		st := st
		timer := time.AfterFunc(time.Duration(st.AtMS)*time.Millisecond, func() {
			loop.Post(func() {
				runScriptStep(desktop, st)
			})
		})
		defer timer.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Printf("[DESKTOP] Running with %d windows, duration %v, %s handoff",
		len(desktop.Windows()), opts.Duration, opts.Policy.Handoff)
	return loop.Run(ctx)
}

// runScriptStep applies st and logs it when its window is gone.
func runScriptStep(d *texel.Desktop, st SceneStep) bool {
	if ApplyStep(d, st) {
		return true
	}
	log.Printf("[DESKTOP] Script step %s skipped", st)
	return false
}

// redirectLog sends the standard logger to path while tcell owns the terminal.
func redirectLog(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	prev := log.Writer()
	log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		f.Close()
	}, nil
}
