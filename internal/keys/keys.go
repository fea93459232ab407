// Package keys translates a logical key press (identity + modifiers) into
// the byte sequence a shell expects to see on its PTY stdin, and classifies
// the chorded shortcuts the orchestrator reserves for window management
// (splits, focus movement, broadcast, copy/paste, font size, mark mode).
//
// Physical scancode decoding belongs to the windowing layer; this package
// starts one step downstream, at a named key ("A", "Enter", "F5", "Up", ...)
// plus a modifier set.
package keys

// Mod is a bitmask of held modifier keys.
type Mod uint8

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

func (m Mod) has(bit Mod) bool { return m&bit != 0 }

// Key names the subset of keys the core translates to bytes. Letters and
// digits use their literal rune value as Key (e.g. Key('a'), Key('5')); the
// named constants below cover the rest.
type Key rune

const (
	KeyBackspace Key = -(iota + 1)
	KeyEnter
	KeyTab
	KeyEsc
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeySpace
)

var fKeyCSI = map[Key]string{
	KeyF1: "\x1bOP", KeyF2: "\x1bOQ", KeyF3: "\x1bOR", KeyF4: "\x1bOS",
	KeyF5: "\x1b[15~", KeyF6: "\x1b[17~", KeyF7: "\x1b[18~", KeyF8: "\x1b[19~",
	KeyF9: "\x1b[20~", KeyF10: "\x1b[21~", KeyF11: "\x1b[23~", KeyF12: "\x1b[24~",
}

var navCSI = map[Key]string{
	KeyUp: "\x1b[A", KeyDown: "\x1b[B", KeyRight: "\x1b[C", KeyLeft: "\x1b[D",
	KeyHome: "\x1b[H", KeyEnd: "\x1b[F",
	KeyPgUp: "\x1b[5~", KeyPgDn: "\x1b[6~",
	KeyInsert: "\x1b[2~", KeyDelete: "\x1b[3~",
}

// shiftedDigit maps an unshifted digit or punctuation rune to what it
// produces under Shift on a standard US layout.
var shiftedDigit = map[rune]rune{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'-': '_', '=': '+', '[': '{', ']': '}', '\\': '|',
	';': ':', '\'': '"', ',': '<', '.': '>', '/': '?', '`': '~',
}

// Translate returns the byte sequence a shell expects for the given key and
// modifier combination. ok is false for keys this table has no encoding for
// (the caller should ignore the event).
func Translate(k Key, mod Mod) ([]byte, bool) {
	if mod.has(ModCtrl) {
		if b, ok := ctrlBytes(k, mod); ok {
			return b, true
		}
	}

	switch k {
	case KeyBackspace:
		return []byte{0x7F}, true
	case KeyEnter:
		return []byte("\r"), true
	case KeyTab:
		return []byte("\t"), true
	case KeyEsc:
		return []byte{0x1B}, true
	case KeySpace:
		return []byte(" "), true
	}

	if seq, ok := navCSI[k]; ok {
		return []byte(seq), true
	}
	if seq, ok := fKeyCSI[k]; ok {
		return []byte(seq), true
	}

	if k > 0 {
		r := rune(k)
		if mod.has(ModShift) {
			if up, ok := shiftedDigit[r]; ok {
				r = up
			} else if r >= 'a' && r <= 'z' {
				r = r - 'a' + 'A'
			}
		}
		return []byte(string(r)), true
	}

	return nil, false
}

// ctrlBytes encodes Ctrl+<key> combinations: Ctrl+letter produces the
// corresponding C0 control byte (1-26), Ctrl+Space produces NUL.
func ctrlBytes(k Key, mod Mod) ([]byte, bool) {
	if k == KeySpace {
		return []byte{0x00}, true
	}
	if k <= 0 {
		return nil, false
	}
	r := rune(k)
	if r >= 'A' && r <= 'Z' {
		r = r - 'A' + 'a'
	}
	if r >= 'a' && r <= 'z' {
		return []byte{byte(r - 'a' + 1)}, true
	}
	return nil, false
}

// Shortcut identifies one of the reserved chorded window-management
// commands.
type Shortcut int

const (
	ShortcutNone Shortcut = iota
	ShortcutFocusLeft
	ShortcutFocusDown
	ShortcutFocusUp
	ShortcutFocusRight
	ShortcutFocusNext
	ShortcutFocusPrev
	ShortcutSplitVertical
	ShortcutSplitHorizontal
	ShortcutClosePane
	ShortcutToggleBroadcast
	ShortcutCopy
	ShortcutPaste
	ShortcutFontIncrease
	ShortcutFontDecrease
	ShortcutToggleMarkMode
	ShortcutToggleHelp
)

// ClassifyShortcut reports which reserved shortcut (if any) this key chord
// represents, so the orchestrator can intercept it before it would otherwise
// fall through to Translate and reach the shell.
func ClassifyShortcut(k Key, mod Mod) Shortcut {
	ctrlShift := mod.has(ModCtrl) && mod.has(ModShift)

	if ctrlShift && k > 0 {
		switch rune(k) {
		case 'h', 'H':
			return ShortcutFocusLeft
		case 'j', 'J':
			return ShortcutFocusDown
		case 'k', 'K':
			return ShortcutFocusUp
		case 'l', 'L':
			return ShortcutFocusRight
		case 'n', 'N':
			return ShortcutFocusNext
		case 'p', 'P':
			return ShortcutFocusPrev
		case 'v', 'V':
			return ShortcutSplitVertical
		case 's', 'S':
			return ShortcutSplitHorizontal
		case 'w', 'W':
			return ShortcutClosePane
		case 'b', 'B':
			return ShortcutToggleBroadcast
		case 'c', 'C':
			return ShortcutCopy
		}
	}

	if mod.has(ModCtrl) && !mod.has(ModShift) && k > 0 {
		switch rune(k) {
		case 'v', 'V':
			return ShortcutPaste
		case '=', '+':
			return ShortcutFontIncrease
		case '-':
			return ShortcutFontDecrease
		}
	}

	if mod.has(ModAlt) && mod.has(ModShift) && k > 0 && (rune(k) == 'm' || rune(k) == 'M') {
		return ShortcutToggleMarkMode
	}

	if mod == ModNone && k == KeyF1 {
		return ShortcutToggleHelp
	}

	return ShortcutNone
}
