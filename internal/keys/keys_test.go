package keys

import (
	"bytes"
	"testing"
)

func TestCtrlLetterProducesC0(t *testing.T) {
	for r := rune('a'); r <= 'z'; r++ {
		b, ok := Translate(Key(r), ModCtrl)
		if !ok {
			t.Fatalf("ctrl+%c: not ok", r)
		}
		want := byte(r-'a') + 1
		if len(b) != 1 || b[0] != want {
			t.Errorf("ctrl+%c = %v, want [%d]", r, b, want)
		}
	}
}

func TestCtrlSpaceIsNUL(t *testing.T) {
	b, ok := Translate(KeySpace, ModCtrl)
	if !ok || !bytes.Equal(b, []byte{0x00}) {
		t.Errorf("ctrl+space = %v, ok=%v, want [0]", b, ok)
	}
}

func TestNamedKeys(t *testing.T) {
	cases := []struct {
		k    Key
		mod  Mod
		want string
	}{
		{KeyBackspace, ModNone, "\x7f"},
		{KeyEnter, ModNone, "\r"},
		{KeyTab, ModNone, "\t"},
		{KeyEsc, ModNone, "\x1b"},
		{KeyUp, ModNone, "\x1b[A"},
		{KeyDown, ModNone, "\x1b[B"},
		{KeyRight, ModNone, "\x1b[C"},
		{KeyLeft, ModNone, "\x1b[D"},
		{KeyHome, ModNone, "\x1b[H"},
		{KeyEnd, ModNone, "\x1b[F"},
		{KeyPgUp, ModNone, "\x1b[5~"},
		{KeyPgDn, ModNone, "\x1b[6~"},
		{KeyInsert, ModNone, "\x1b[2~"},
		{KeyDelete, ModNone, "\x1b[3~"},
		{KeyF1, ModNone, "\x1bOP"},
		{KeyF4, ModNone, "\x1bOS"},
		{KeyF5, ModNone, "\x1b[15~"},
		{KeyF12, ModNone, "\x1b[24~"},
	}
	for _, c := range cases {
		b, ok := Translate(c.k, c.mod)
		if !ok || string(b) != c.want {
			t.Errorf("Translate(%v, %v) = %q, ok=%v, want %q", c.k, c.mod, b, ok, c.want)
		}
	}
}

func TestShiftedDigitsAndLetters(t *testing.T) {
	b, ok := Translate(Key('1'), ModShift)
	if !ok || string(b) != "!" {
		t.Errorf("shift+1 = %q, want !", b)
	}
	b, ok = Translate(Key('a'), ModShift)
	if !ok || string(b) != "A" {
		t.Errorf("shift+a = %q, want A", b)
	}
}

func TestClassifyShortcutFocus(t *testing.T) {
	cases := map[rune]Shortcut{
		'h': ShortcutFocusLeft, 'j': ShortcutFocusDown,
		'k': ShortcutFocusUp, 'l': ShortcutFocusRight,
		'n': ShortcutFocusNext, 'p': ShortcutFocusPrev,
		'v': ShortcutSplitVertical, 's': ShortcutSplitHorizontal,
		'w': ShortcutClosePane, 'b': ShortcutToggleBroadcast,
		'c': ShortcutCopy,
	}
	for r, want := range cases {
		got := ClassifyShortcut(Key(r), ModCtrl|ModShift)
		if got != want {
			t.Errorf("ClassifyShortcut(ctrl+shift+%c) = %v, want %v", r, got, want)
		}
	}
}

func TestClassifyShortcutMarkModeAndHelp(t *testing.T) {
	if got := ClassifyShortcut(Key('m'), ModAlt|ModShift); got != ShortcutToggleMarkMode {
		t.Errorf("alt+shift+m = %v, want ShortcutToggleMarkMode", got)
	}
	if got := ClassifyShortcut(KeyF1, ModNone); got != ShortcutToggleHelp {
		t.Errorf("F1 = %v, want ShortcutToggleHelp", got)
	}
	if got := ClassifyShortcut(Key('x'), ModNone); got != ShortcutNone {
		t.Errorf("plain x = %v, want ShortcutNone", got)
	}
}

func TestClassifyShortcutPasteAndFont(t *testing.T) {
	if got := ClassifyShortcut(Key('v'), ModCtrl); got != ShortcutPaste {
		t.Errorf("ctrl+v = %v, want ShortcutPaste", got)
	}
	if got := ClassifyShortcut(Key('='), ModCtrl); got != ShortcutFontIncrease {
		t.Errorf("ctrl+= = %v, want ShortcutFontIncrease", got)
	}
	if got := ClassifyShortcut(Key('-'), ModCtrl); got != ShortcutFontDecrease {
		t.Errorf("ctrl+- = %v, want ShortcutFontDecrease", got)
	}
}
