// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dodge/listener.go
// Summary: Transition listeners and package logging.

package dodge

import (
	"io"
	"log"
	"os"
	"time"
)

var debugLog = log.New(io.Discard, "", log.LstdFlags)

// SetVerboseLogging toggles verbose engine logging.
// When disabled (default), debug output is discarded.
func SetVerboseLogging(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}

// SetDebugOutput redirects verbose engine logging.
func SetDebugOutput(w io.Writer) {
	debugLog.SetOutput(w)
}

// TransitionListener observes transitions starting and finishing.
type TransitionListener interface {
	TransitionStarted(rec Record)
	TransitionFinished(rec Record)
}

// LogListener writes one line per finished transition to the standard logger.
type LogListener struct{}

func (LogListener) TransitionStarted(rec Record) {}

func (LogListener) TransitionFinished(rec Record) {
	log.Printf("[DODGE] %s -> %s in %s (handoff=%v aborted=%v)",
		rec.From, rec.To, rec.Finished.Sub(rec.Started).Round(time.Millisecond), rec.HandedOff, rec.Aborted)
}

// Listeners fans out to several listeners in order.
type Listeners []TransitionListener

func (ls Listeners) TransitionStarted(rec Record) {
	for _, l := range ls {
		if l != nil {
			l.TransitionStarted(rec)
		}
	}
}

func (ls Listeners) TransitionFinished(rec Record) {
	for _, l := range ls {
		if l != nil {
			l.TransitionFinished(rec)
		}
	}
}
