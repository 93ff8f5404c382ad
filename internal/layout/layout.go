// Package layout loads a keyboard layout config — the declarative
// keymap/combination table that drives the automaton package — from a
// relaxed-JSON (Hjson) text document.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hjson/hjson-go/v4"
)

// combinationKey is an ordered pair of jamo used to look up a combination
// result (e.g. ㅗ+ㅏ=ㅘ, or ㄱ+ㄱ=ㄲ for a three-set layout).
type combinationKey struct {
	first, second rune
}

// Layout is a parsed, immutable keyboard layout: a key-label-to-jamo map
// plus a jamo-pair-to-jamo combination table.
type Layout struct {
	ID          string
	Name        string
	Type        Type
	AutoReorder bool

	keymap       map[string]rune
	combinations map[combinationKey]rune
}

// parseHexRune parses a "0x3131"-style hex codepoint string into a rune.
func parseHexRune(s string) (rune, error) {
	hex := s
	if strings.HasPrefix(hex, "0x") || strings.HasPrefix(hex, "0X") {
		hex = hex[2:]
	} else {
		return 0, fmt.Errorf("hex codepoint %q missing 0x prefix", s)
	}
	code, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex codepoint %q: %w", s, err)
	}
	return rune(code), nil
}

// Parse parses a relaxed-JSON layout config document.
func Parse(text string) (*Layout, error) {
	var s schema
	if err := hjson.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("layout parse error: %w", err)
	}

	switch s.Type {
	case TypeJamo, TypeJaso:
	default:
		return nil, fmt.Errorf("layout type must be %q or %q, got %q", TypeJamo, TypeJaso, s.Type)
	}

	keymap := make(map[string]rune, len(s.Keymap))
	for key, hex := range s.Keymap {
		ch, err := parseHexRune(hex)
		if err != nil {
			return nil, fmt.Errorf("keymap entry %q: %w", key, err)
		}
		keymap[key] = ch
	}

	combinations := make(map[combinationKey]rune, len(s.Combinations))
	for _, entry := range s.Combinations {
		first, err := parseHexRune(entry.First)
		if err != nil {
			return nil, fmt.Errorf("combination first: %w", err)
		}
		second, err := parseHexRune(entry.Second)
		if err != nil {
			return nil, fmt.Errorf("combination second: %w", err)
		}
		result, err := parseHexRune(entry.Result)
		if err != nil {
			return nil, fmt.Errorf("combination result: %w", err)
		}
		combinations[combinationKey{first, second}] = result
	}

	return &Layout{
		ID:           s.ID,
		Name:         s.Name,
		Type:         s.Type,
		AutoReorder:  s.Options.AutoReorder,
		keymap:       keymap,
		combinations: combinations,
	}, nil
}

// MapKey looks up the jamo mapped to a key label. Key labels are
// shift-sensitive: "r" and "R" are distinct entries.
func (l *Layout) MapKey(key string) (rune, bool) {
	ch, ok := l.keymap[key]
	return ch, ok
}

// Combine looks up the combination result for an ordered jamo pair.
func (l *Layout) Combine(first, second rune) (rune, bool) {
	ch, ok := l.combinations[combinationKey{first, second}]
	return ch, ok
}
