package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hiking90/ongeul/internal/engine"
)

const (
	serviceName = "org.ongeul.Engine"
	objectPath  = "/Engine"

	defaultLayoutPath = "layouts/2-standard.hjson"
)

// InputEngine is the D-Bus object that receives key events from the host
// input framework (fcitx5, ibus, or any other front end that can speak this
// object's method surface).
type InputEngine struct {
	engine *engine.Engine
}

// NewInputEngine creates a new InputEngine in English mode with no layout
// loaded; call LoadLayout before switching to Korean.
func NewInputEngine() *InputEngine {
	return &InputEngine{engine: engine.New()}
}

// LoadLayout parses a layout config file and installs it on the engine.
func (e *InputEngine) LoadLayout(path string) *dbus.Error {
	text, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("read layout file failed")
		return dbus.MakeFailedError(err)
	}
	if err := e.engine.LoadLayout(string(text)); err != nil {
		log.Error().Err(err).Str("path", path).Msg("load layout failed")
		return dbus.MakeFailedError(err)
	}
	log.Info().Str("path", path).Msg("layout loaded")
	return nil
}

// ProcessKey handles one key label from the frontend. Returns (handled,
// committed, composing).
func (e *InputEngine) ProcessKey(key string) (bool, string, string, *dbus.Error) {
	out := e.engine.ProcessKey(key)
	committed, composing := textOf(out.Committed), textOf(out.Composing)

	log.Debug().
		Str("key", key).
		Str("committed", committed).
		Str("composing", composing).
		Bool("handled", out.Handled).
		Msg("process key")

	return out.Handled, committed, composing, nil
}

// Backspace undoes the automaton's last transition.
func (e *InputEngine) Backspace() (bool, string, string, *dbus.Error) {
	out := e.engine.Backspace()
	return out.Handled, textOf(out.Committed), textOf(out.Composing), nil
}

// ToggleMode flips English<->Korean and returns the new mode name plus any
// text the outgoing composition flushed.
func (e *InputEngine) ToggleMode() (string, string, *dbus.Error) {
	out, mode := e.engine.ToggleMode()
	log.Info().Str("mode", mode.String()).Msg("mode toggled")
	return mode.String(), textOf(out.Committed), nil
}

// Reset discards the current composition.
func (e *InputEngine) Reset() *dbus.Error {
	e.engine.Reset()
	log.Info().Msg("engine reset")
	return nil
}

func textOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})

	conn, err := dbus.SessionBus()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to session bus")
	}
	defer conn.Close()

	reply, err := conn.RequestName(serviceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to request bus name")
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		log.Fatal().Msg("bus name already taken - another instance may be running")
	}

	inputEngine := NewInputEngine()

	layoutPath := defaultLayoutPath
	if len(os.Args) > 1 {
		layoutPath = os.Args[1]
	}
	if derr := inputEngine.LoadLayout(layoutPath); derr != nil {
		log.Warn().Str("path", layoutPath).Msg("starting without a layout loaded; call LoadLayout before switching to Korean mode")
	}

	if err := conn.Export(inputEngine, dbus.ObjectPath(objectPath), serviceName); err != nil {
		log.Fatal().Err(err).Msg("failed to export object")
	}

	fmt.Println("================================================")
	fmt.Println("ongeul daemon is running")
	fmt.Println("================================================")
	fmt.Printf("  Service:     %s\n", serviceName)
	fmt.Printf("  Object Path: %s\n", objectPath)
	fmt.Printf("  Layout:      %s\n", layoutPath)
	fmt.Println("------------------------------------------------")
	fmt.Println("Waiting for key events...")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")
}
