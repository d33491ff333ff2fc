// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/render.go
// Summary: Draws the window stack onto the screen driver.

package texel

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/framegrace/texeldodge/dodge"
)

type styleKey struct {
	fg, bg          tcell.Color
	bold, underline bool
	reverse         bool
}

func (d *Desktop) draw() {
	if d.screen == nil {
		return
	}
	d.screen.Clear()
	base := d.getStyle(d.DefaultFgColor, d.DefaultBgColor, false, false, false)
	sw, sh := d.screen.Size()
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			d.screen.SetContent(x, y, ' ', nil, base)
		}
	}
	for _, id := range d.stack {
		d.drawWindow(d.windows[id], id == d.active)
	}
	d.screen.Show()
}

// drawDamage repaints only the cells inside rects, keeping stacking order.
func (d *Desktop) drawDamage(rects []dodge.Rect) {
	if d.screen == nil {
		return
	}
	d.clip = rects
	defer func() { d.clip = nil }()

	base := d.getStyle(d.DefaultFgColor, d.DefaultBgColor, false, false, false)
	for _, r := range rects {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				d.setCell(x, y, ' ', base)
			}
		}
	}
	for _, id := range d.stack {
		w := d.windows[id]
		if intersectsAny(w.DisplayRect(), rects) {
			d.drawWindow(w, id == d.active)
		}
	}
	d.screen.Show()
}

func (d *Desktop) drawWindow(w *Window, active bool) {
	r := w.DisplayRect()
	if r.Width < 2 || r.Height < 2 {
		return
	}
	borderFg := d.InactiveBorderColor
	if active {
		borderFg = d.ActiveBorderColor
	}
	border := d.getStyle(borderFg, d.DefaultBgColor, active, false, false)
	fill := d.getStyle(d.DefaultFgColor, d.DefaultBgColor, false, false, false)

	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width-1, r.Y+r.Height-1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ch, st := ' ', fill
			switch {
			case x == x0 && y == y0:
				ch, st = tcell.RuneULCorner, border
			case x == x1 && y == y0:
				ch, st = tcell.RuneURCorner, border
			case x == x0 && y == y1:
				ch, st = tcell.RuneLLCorner, border
			case x == x1 && y == y1:
				ch, st = tcell.RuneLRCorner, border
			case y == y0 || y == y1:
				ch, st = tcell.RuneHLine, border
			case x == x0 || x == x1:
				ch, st = tcell.RuneVLine, border
			}
			d.setCell(x, y, ch, st)
		}
	}

	// Title sits on the top border, one cell in from each corner.
	avail := r.Width - 4
	if avail <= 0 {
		return
	}
	title := runewidth.Truncate(w.title, avail, "…")
	titleStyle := d.getStyle(d.DefaultFgColor, d.DefaultBgColor, active, false, active)
	x := x0 + 2
	for _, ch := range title {
		d.setCell(x, y0, ch, titleStyle)
		x += runewidth.RuneWidth(ch)
	}
}

// setCell clips to the screen and, during a damage repaint, to the damage.
func (d *Desktop) setCell(x, y int, ch rune, st tcell.Style) {
	sw, sh := d.screen.Size()
	if x < 0 || y < 0 || x >= sw || y >= sh {
		return
	}
	if d.clip != nil && !containsAny(d.clip, x, y) {
		return
	}
	d.screen.SetContent(x, y, ch, nil, st)
}

func containsAny(rects []dodge.Rect, x, y int) bool {
	for _, r := range rects {
		if x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height {
			return true
		}
	}
	return false
}

func intersectsAny(r dodge.Rect, rects []dodge.Rect) bool {
	for _, o := range rects {
		if r.X < o.X+o.Width && o.X < r.X+r.Width && r.Y < o.Y+o.Height && o.Y < r.Y+r.Height {
			return true
		}
	}
	return false
}

// getStyle centrally manages tcell.Style objects to avoid re-creation.
func (d *Desktop) getStyle(fg, bg tcell.Color, bold, underline, reverse bool) tcell.Style {
	key := styleKey{fg: fg, bg: bg, bold: bold, underline: underline, reverse: reverse}
	if st, ok := d.styleCache[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(fg).Background(bg)
	if bold {
		st = st.Bold(true)
	}
	if underline {
		st = st.Underline(true)
	}
	if reverse {
		st = st.Reverse(true)
	}
	d.styleCache[key] = st
	return st
}

// UseTerminalColors replaces the default colors with the ones reported by the
// controlling terminal, when it answers.
func (d *Desktop) UseTerminalColors() {
	fg, bg, err := initDefaultColors()
	if err != nil {
		return
	}
	d.DefaultFgColor, d.DefaultBgColor = fg, bg
	d.needsDraw = true
}

// initDefaultColors queries the terminal for its default colors.
func initDefaultColors() (tcell.Color, tcell.Color, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return tcell.ColorDefault, tcell.ColorDefault, fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return tcell.ColorDefault, tcell.ColorDefault, fmt.Errorf("MakeRaw: %w", err)
	}
	defer term.Restore(int(tty.Fd()), oldState)

	query := func(code int) (tcell.Color, error) {
		if _, err := fmt.Fprintf(tty, "\x1b]%d;?\a", code); err != nil {
			return tcell.ColorDefault, err
		}
		if err := tty.SetReadDeadline(time.Now().Add(500 * time.Millisecond)); err != nil {
			return tcell.ColorDefault, err
		}
		resp := make([]byte, 0, 64)
		buf := make([]byte, 1)
		for {
			n, err := tty.Read(buf)
			if err != nil {
				return tcell.ColorDefault, fmt.Errorf("read reply: %w", err)
			}
			resp = append(resp, buf[:n]...)
			if buf[0] == '\a' {
				break
			}
		}
		re := regexp.MustCompile(fmt.Sprintf(`\x1b\]%d;rgb:([0-9A-Fa-f]{4})/([0-9A-Fa-f]{4})/([0-9A-Fa-f]{4})`, code))
		m := re.FindStringSubmatch(string(resp))
		if len(m) != 4 {
			return tcell.ColorDefault, fmt.Errorf("unexpected reply: %q", resp)
		}
		channel := func(s string) int32 {
			v, _ := strconv.ParseInt(s, 16, 32)
			return int32(v >> 8)
		}
		return tcell.NewRGBColor(channel(m[1]), channel(m[2]), channel(m[3])), nil
	}

	fg, err := query(10)
	if err != nil {
		fg = tcell.ColorWhite
	}
	bg, err := query(11)
	if err != nil {
		bg = tcell.ColorBlack
	}
	return fg, bg, nil
}
