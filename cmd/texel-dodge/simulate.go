// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texel-dodge/simulate.go
// Summary: Headless scene playback on a simulation screen with a per-frame YAML trace.

package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texeldodge/dodge"
	"github.com/framegrace/texeldodge/texel"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a scene headlessly and print a per-frame trace",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().String("scene", "", "YAML scene to play (required)")
	simulateCmd.Flags().Int("fps", 60, "Frames per simulated second")
	simulateCmd.Flags().Bool("all-frames", false, "Include idle frames in the trace")
	simulateCmd.MarkFlagRequired("scene")
}

// Trace is the simulate command output.
type Trace struct {
	FPS         int               `yaml:"fps"`
	DurationMS  int               `yaml:"duration_ms"`
	Frames      []TraceFrame      `yaml:"frames"`
	Transitions []TraceTransition `yaml:"transitions"`
	Focus       []TraceFocus      `yaml:"focus_changes"`
}

// TraceFrame captures desktop and engine state after one frame.
type TraceFrame struct {
	AtMS     int           `yaml:"at_ms"`
	Events   []string      `yaml:"events,omitempty"`
	Phase    string        `yaml:"phase"`
	Progress float64       `yaml:"progress"`
	Focus    string        `yaml:"focus"`
	Windows  []TraceWindow `yaml:"windows"`
}

// TraceWindow is one window's displayed position.
type TraceWindow struct {
	Title string  `yaml:"title"`
	X     int     `yaml:"x"`
	Y     int     `yaml:"y"`
	DX    float64 `yaml:"dx"`
	DY    float64 `yaml:"dy"`
}

// TraceTransition summarizes one finished transition.
type TraceTransition struct {
	From       string  `yaml:"from"`
	To         string  `yaml:"to"`
	DirectionX float64 `yaml:"direction_x"`
	DirectionY float64 `yaml:"direction_y"`
	StartMS    int     `yaml:"start_ms"`
	EndMS      int     `yaml:"end_ms"`
	HandedOff  bool    `yaml:"handed_off"`
	Aborted    bool    `yaml:"aborted"`
}

// TraceFocus is one desktop focus change. Window is empty when nothing is focused.
type TraceFocus struct {
	AtMS   int    `yaml:"at_ms"`
	Window string `yaml:"window"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("scene")
	fps, _ := cmd.Flags().GetInt("fps")
	all, _ := cmd.Flags().GetBool("all-frames")

	scene, err := LoadScene(path)
	if err != nil {
		return err
	}
	_, opts := loadOptions()
	trace, err := Simulate(scene, opts, fps, all)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(trace); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// traceRecorder turns transition records and focus changes into trace entries.
type traceRecorder struct {
	epoch  time.Time
	now    func() time.Time
	titles map[dodge.WindowID]string
	out    []TraceTransition
	focus  []TraceFocus
}

func (r *traceRecorder) WindowFocused(id dodge.WindowID) {
	r.focus = append(r.focus, TraceFocus{
		AtMS:   int(r.now().Sub(r.epoch) / time.Millisecond),
		Window: r.titles[id],
	})
}

func (r *traceRecorder) TransitionStarted(rec dodge.Record) {}

func (r *traceRecorder) TransitionFinished(rec dodge.Record) {
	r.out = append(r.out, TraceTransition{
		From:       r.titles[rec.From],
		To:         r.titles[rec.To],
		DirectionX: round3(rec.Direction.X),
		DirectionY: round3(rec.Direction.Y),
		StartMS:    int(rec.Started.Sub(r.epoch) / time.Millisecond),
		EndMS:      int(rec.Finished.Sub(r.epoch) / time.Millisecond),
		HandedOff:  rec.HandedOff,
		Aborted:    rec.Aborted,
	})
}

// Simulate plays scene on a simulation screen with a fake clock. Playback runs
// until the last script step has fired and the engine is idle. Idle frames are
// only recorded when all is set or a step fired on them.
func Simulate(scene *Scene, opts dodge.Options, fps int, all bool) (*Trace, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	driver, _ := texel.NewSimulationDriver(120, 40)
	desktop := texel.NewDesktop(driver)
	defer desktop.Close()

	epoch := time.Unix(0, 0)
	now := epoch
	clock := func() time.Time { return now }
	rec := &traceRecorder{epoch: epoch, now: clock, titles: scene.Apply(desktop)}
	desktop.AddFocusListener(rec)
	defer desktop.RemoveFocusListener(rec)

	opts.Clock = clock
	if opts.Listener != nil {
		opts.Listener = dodge.Listeners{opts.Listener, rec}
	} else {
		opts.Listener = rec
	}
	engine := dodge.NewEngine(desktop, opts)
	gate := dodge.NewGate(desktop, engine)
	gate.Start()
	defer gate.Close()

	lastStep := 0
	if n := len(scene.Script); n > 0 {
		lastStep = scene.Script[n-1].AtMS
	}
	limit := time.Duration(lastStep)*time.Millisecond + 2*opts.Duration + time.Second
	frame := time.Second / time.Duration(fps)

	trace := &Trace{FPS: fps}
	next := 0
	for elapsed := time.Duration(0); elapsed <= limit; elapsed += frame {
		now = epoch.Add(elapsed)
		var events []string
		for next < len(scene.Script) && time.Duration(scene.Script[next].AtMS)*time.Millisecond <= elapsed {
			st := scene.Script[next]
			if runScriptStep(desktop, st) {
				events = append(events, st.String())
			} else {
				events = append(events, st.String()+" (skipped)")
			}
			next++
		}
		running := engine.Running()
		desktop.Frame()
		if all || running || len(events) > 0 {
			trace.Frames = append(trace.Frames, snapshotFrame(desktop, engine, rec.titles, elapsed, events))
		}
		if next == len(scene.Script) && !engine.Running() {
			trace.DurationMS = int(elapsed / time.Millisecond)
			break
		}
	}
	if trace.DurationMS == 0 {
		trace.DurationMS = int(limit / time.Millisecond)
	}
	trace.Transitions = rec.out
	trace.Focus = rec.focus
	return trace, nil
}

func snapshotFrame(d *texel.Desktop, e *dodge.Engine, titles map[dodge.WindowID]string, at time.Duration, events []string) TraceFrame {
	f := TraceFrame{
		AtMS:     int(at / time.Millisecond),
		Events:   events,
		Phase:    e.Phase().String(),
		Progress: round3(e.Progress()),
		Focus:    titles[d.ActiveWindow()],
	}
	for _, id := range d.Windows() {
		w, _ := d.Window(id)
		r := w.DisplayRect()
		dx, dy := w.Translation()
		f.Windows = append(f.Windows, TraceWindow{
			Title: w.Title(),
			X:     r.X,
			Y:     r.Y,
			DX:    round3(dx),
			DY:    round3(dy),
		})
	}
	return f
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
