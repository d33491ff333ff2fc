// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/loop.go
// Summary: Interactive event loop, key bindings and focus navigation.

package texel

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeldodge/dodge"
)

// DefaultFrameInterval is the tick rate used when none is configured.
const DefaultFrameInterval = 16 * time.Millisecond

// Loop drives a Desktop from terminal input and a frame ticker.
type Loop struct {
	desktop  *Desktop
	interval time.Duration
	actions  chan func()
	quit     chan struct{}
	spawned  int
}

// NewLoop prepares a loop ticking every interval.
func NewLoop(d *Desktop, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		desktop:  d,
		interval: interval,
		actions:  make(chan func(), 16),
		quit:     make(chan struct{}),
	}
}

// Post schedules fn on the loop goroutine. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	select {
	case l.actions <- fn:
	case <-l.quit:
	}
}

// Run processes input, posted actions and frames until ctx is done or the
// user quits.
func (l *Loop) Run(ctx context.Context) error {
	d := l.desktop
	if d.screen == nil {
		return fmt.Errorf("desktop has no screen")
	}
	defer close(l.quit)

	eventChan := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-l.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	d.Frame()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if l.handleEvent(ev) {
				return nil
			}
			d.Frame()
		case fn := <-l.actions:
			fn()
			d.Frame()
		case <-ticker.C:
			if d.HasFrameHooks() || d.needsDraw || len(d.damage) > 0 {
				d.Frame()
			}
		}
	}
}

// handleEvent applies one input event and reports whether to quit.
func (l *Loop) handleEvent(ev tcell.Event) bool {
	d := l.desktop
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
		d.needsDraw = true
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyTab:
			d.FocusNext()
		case tcell.KeyBacktab:
			d.FocusPrev()
		case tcell.KeyLeft:
			d.FocusDirection(-1, 0)
		case tcell.KeyRight:
			d.FocusDirection(1, 0)
		case tcell.KeyUp:
			d.FocusDirection(0, -1)
		case tcell.KeyDown:
			d.FocusDirection(0, 1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'n':
				l.spawn()
			case 'x':
				if id := d.ActiveWindow(); !id.IsZero() {
					d.Unmap(id)
				}
			}
		}
	}
	return false
}

// spawn maps a new window cascaded from the top-left corner.
func (l *Loop) spawn() {
	d := l.desktop
	l.spawned++
	sw, sh := d.screen.Size()
	w, h := max(sw/3, 12), max(sh/3, 6)
	step := l.spawned % 8
	rect := dodge.Rect{X: 2 + step*4, Y: 1 + step*2, Width: w, Height: h}
	id := d.Map(fmt.Sprintf("window %d", l.spawned), rect)
	d.Activate(id)
}

// FocusNext activates the window mapped after the active one.
func (d *Desktop) FocusNext() { d.cycle(1) }

// FocusPrev activates the window mapped before the active one.
func (d *Desktop) FocusPrev() { d.cycle(-1) }

func (d *Desktop) cycle(step int) {
	n := len(d.mapped)
	if n == 0 {
		return
	}
	cur := -1
	for i, id := range d.mapped {
		if id == d.active {
			cur = i
			break
		}
	}
	next := 0
	if cur >= 0 {
		next = ((cur+step)%n + n) % n
	}
	d.Activate(d.mapped[next])
}

// FocusDirection activates the nearest window whose center lies in the
// direction (dx, dy) from the active window's center.
func (d *Desktop) FocusDirection(dx, dy int) {
	cur, ok := d.windows[d.active]
	if !ok {
		d.cycle(1)
		return
	}
	cx, cy := cur.rect.Center()
	best := dodge.WindowID{}
	bestDist := math.Inf(1)
	for _, id := range d.mapped {
		if id == d.active {
			continue
		}
		ox, oy := d.windows[id].rect.Center()
		vx, vy := ox-cx, oy-cy
		if vx*float64(dx)+vy*float64(dy) <= 0 {
			continue
		}
		if dist := math.Hypot(vx, vy); dist < bestDist {
			best, bestDist = id, dist
		}
	}
	if best.IsZero() {
		log.Printf("[DESKTOP] No window in direction (%d,%d)", dx, dy)
		return
	}
	d.Activate(best)
}
