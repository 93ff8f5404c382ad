package engine

import "testing"

const testLayoutJSON = `{
	id: "2-standard-test",
	name: "두벌식 테스트",
	type: "jamo",
	keymap: {
		"r": "0x3131", // ㄱ
		"k": "0x314F", // ㅏ
		"h": "0x3157", // ㅗ
		"g": "0x314E", // ㅎ
		"s": "0x3134", // ㄴ
	},
	combinations: [
		{ first: "0x3157", second: "0x314F", result: "0x3158" }, // ㅗ + ㅏ = ㅘ
	],
}`

func TestEngineEnglishPassthrough(t *testing.T) {
	e := New()
	out := e.ProcessKey("r")
	if out.Committed == nil || *out.Committed != "r" || !out.Handled {
		t.Fatalf("got %+v, want committed=r handled=true", out)
	}
	if out.Composing != nil {
		t.Fatalf("composing = %v, want nil", out.Composing)
	}
}

func TestEngineNoLayoutLoaded(t *testing.T) {
	e := New()
	e.SetMode(Korean)
	out := e.ProcessKey("r")
	if out.Handled {
		t.Fatal("expected Handled=false with no layout loaded")
	}
}

func TestEngineLoadLayoutAndCompose(t *testing.T) {
	e := New()
	if err := e.LoadLayout(testLayoutJSON); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	e.SetMode(Korean)

	e.ProcessKey("r")
	out := e.ProcessKey("k")
	if out.Composing == nil || *out.Composing != "가" {
		t.Fatalf("composing = %v, want 가", out.Composing)
	}
}

func TestEngineLoadLayoutParseError(t *testing.T) {
	e := New()
	if err := e.LoadLayout(testLayoutJSON); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if err := e.LoadLayout(`{not valid`); err == nil {
		t.Fatal("expected parse error")
	}
	// A failed load must not disturb a previously working engine.
	e.SetMode(Korean)
	e.ProcessKey("r")
	out := e.ProcessKey("k")
	if out.Composing == nil || *out.Composing != "가" {
		t.Fatalf("composing = %v, want 가 from the layout loaded before the failed load", out.Composing)
	}
	if err := e.LoadLayout(testLayoutJSON); err != nil {
		t.Fatalf("LoadLayout failed after prior error: %v", err)
	}
}

func TestEngineToggleModeFlushesComposing(t *testing.T) {
	e := New()
	if err := e.LoadLayout(testLayoutJSON); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	e.SetMode(Korean)
	e.ProcessKey("g")
	e.ProcessKey("h")

	out, mode := e.ToggleMode()
	if mode != English {
		t.Fatalf("mode = %v, want English", mode)
	}
	if out.Committed == nil || *out.Committed != "호" {
		t.Fatalf("committed = %v, want 호", out.Committed)
	}
}

func TestEngineSetModeKoreanToEnglishFlushes(t *testing.T) {
	e := New()
	if err := e.LoadLayout(testLayoutJSON); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	e.SetMode(Korean)
	e.ProcessKey("r")
	e.SetMode(English)

	out := e.ProcessKey("r")
	if out.Committed == nil || *out.Committed != "r" {
		t.Fatalf("committed = %v, want raw r in English mode", out.Committed)
	}
	if e.GetMode() != English {
		t.Fatalf("mode = %v, want English", e.GetMode())
	}

	// The buffered ㄱ was flushed on the way out of Korean mode.
	e.SetMode(Korean)
	if out := e.Backspace(); out.Handled {
		t.Fatal("expected Handled=false: the Korean->English switch should have flushed the buffer")
	}
}

func TestEngineUnmappedKeyFlushesAndPassesThrough(t *testing.T) {
	e := New()
	if err := e.LoadLayout(testLayoutJSON); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	e.SetMode(Korean)
	e.ProcessKey("r")
	e.ProcessKey("k")

	out := e.ProcessKey("z") // "z" is not in the test keymap
	if out.Handled {
		t.Fatal("expected Handled=false for an unmapped key")
	}
	if out.Committed == nil || *out.Committed != "가" {
		t.Fatalf("committed = %v, want flushed 가", out.Committed)
	}
}

func TestEngineBackspaceEmptyNotHandled(t *testing.T) {
	e := New()
	if err := e.LoadLayout(testLayoutJSON); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	e.SetMode(Korean)
	out := e.Backspace()
	if out.Handled {
		t.Fatal("expected Handled=false on empty-buffer backspace")
	}
}

func TestEngineBackspaceEnglishModeNotHandled(t *testing.T) {
	e := New()
	out := e.Backspace()
	if out.Handled {
		t.Fatal("expected Handled=false for backspace in English mode")
	}
}

func TestEngineReset(t *testing.T) {
	e := New()
	if err := e.LoadLayout(testLayoutJSON); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	e.SetMode(Korean)
	e.ProcessKey("r")
	e.Reset()

	out := e.Backspace()
	if out.Handled {
		t.Fatal("expected Handled=false after Reset discarded the composition")
	}
}
