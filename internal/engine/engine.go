// Package engine provides the outer façade for Hangul composition: it holds
// the input mode, the loaded layout, and the active automaton, and serializes
// access to them behind a single lock so a host can drive it from multiple
// goroutines.
package engine

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hiking90/ongeul/internal/automaton"
	"github.com/hiking90/ongeul/internal/layout"
)

// Mode selects whether ProcessKey composes Hangul or passes keys through.
type Mode int

const (
	English Mode = iota
	Korean
)

func (m Mode) String() string {
	if m == Korean {
		return "korean"
	}
	return "english"
}

// Engine is the thread-safe entry point embedding hosts talk to. The zero
// value is ready to use: English mode, no layout loaded.
type Engine struct {
	mu sync.Mutex

	mode     Mode
	layout   *layout.Layout
	automata automaton.Automaton
}

// New returns an Engine in English mode with no layout loaded.
func New() *Engine {
	return &Engine{mode: English}
}

// LoadLayout parses the config text and, on success, atomically replaces the
// engine's layout and automaton. On parse failure the engine's existing
// layout and automaton are left untouched.
func (e *Engine) LoadLayout(text string) error {
	l, err := layout.Parse(text)
	if err != nil {
		log.Error().Err(err).Msg("load layout failed")
		return err
	}

	a, err := automaton.New(l)
	if err != nil {
		log.Error().Err(err).Msg("create automaton failed")
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout = l
	e.automata = a
	return nil
}

// SetMode changes the input mode. Switching from Korean to English flushes
// the automaton first; its committed text is discarded, matching the
// fire-and-forget semantics of Reset.
func (e *Engine) SetMode(m Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == Korean && m == English {
		e.flushLocked()
	}
	e.mode = m
}

// GetMode returns the current input mode.
func (e *Engine) GetMode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// ToggleMode flips English<->Korean, flushing the automaton on the way out
// of Korean, and returns the flush outcome alongside the new mode.
func (e *Engine) ToggleMode() (automaton.Outcome, Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out automaton.Outcome
	if e.mode == Korean {
		out = e.flushLocked()
		e.mode = English
	} else {
		out = automaton.HandledEmpty()
		e.mode = Korean
	}
	return out, e.mode
}

// ProcessKey routes one key label to pass-through (English) or the automaton
// (Korean). A Korean-mode key the layout doesn't map flushes the automaton
// and reports handled=false so the host inserts the raw label itself.
func (e *Engine) ProcessKey(label string) automaton.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode == English {
		committed := label
		return automaton.Outcome{Committed: &committed, Handled: true}
	}

	if e.layout == nil || e.automata == nil {
		return automaton.NotHandled()
	}

	ch, ok := e.layout.MapKey(label)
	if !ok {
		out := e.flushLocked()
		out.Handled = false
		return out
	}

	return e.automata.Process(ch, e.layout)
}

// Backspace undoes the automaton's last transition in Korean mode. In
// English mode it is never handled by this engine.
func (e *Engine) Backspace() automaton.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode == English {
		return automaton.NotHandled()
	}
	if e.automata == nil {
		return automaton.NotHandled()
	}
	return e.automata.Backspace()
}

// Flush commits whatever the automaton currently has buffered.
func (e *Engine) Flush() automaton.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flushLocked()
}

// Reset discards the current composition without surfacing its commit.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flushLocked()
}

func (e *Engine) flushLocked() automaton.Outcome {
	if e.automata == nil {
		return automaton.HandledEmpty()
	}
	return e.automata.Flush()
}
