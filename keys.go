package headless5250

import (
	"strconv"
	"strings"
)

// AID is an Attention Identifier byte sent to the host when a submitting
// key is pressed.
type AID byte

// AID codes from the 5250 keyboard table.
const (
	AIDNone   AID = 0x00
	AIDEnter  AID = 0xF1
	AIDHelp   AID = 0xF3
	AIDRollDn AID = 0xF4 // page up
	AIDRollUp AID = 0xF5 // page down
	AIDPrint  AID = 0xF6
	AIDClear  AID = 0xBD
	AIDPF1    AID = 0x31
	AIDPF12   AID = 0x3C
	AIDPF13   AID = 0xB1
	AIDPF24   AID = 0xBC
)

// Navigation mnemonics that act locally instead of producing an AID.
type navKey int

const (
	navNone navKey = iota
	navTab
	navBacktab
	navHome
	navFieldExit
	navSysReq
)

// mnemonic is one entry of the fixed key mnemonic table.
type mnemonic struct {
	aid AID
	nav navKey
}

// mnemonicTable maps lowercase bracketed names to their key values.
// Lookup is case-insensitive by contract; names are stored folded.
var mnemonicTable = map[string]mnemonic{
	"enter":     {aid: AIDEnter},
	"clear":     {aid: AIDClear},
	"help":      {aid: AIDHelp},
	"print":     {aid: AIDPrint},
	"pgup":      {aid: AIDRollDn},
	"pgdown":    {aid: AIDRollUp},
	"pageup":    {aid: AIDRollDn},
	"pagedown":  {aid: AIDRollUp},
	"tab":       {nav: navTab},
	"backtab":   {nav: navBacktab},
	"home":      {nav: navHome},
	"fieldexit": {nav: navFieldExit},
	"sysreq":    {nav: navSysReq},
}

func init() {
	for i := 0; i < 12; i++ {
		mnemonicTable[pfName(i+1)] = mnemonic{aid: AIDPF1 + AID(i)}
		mnemonicTable[pfName(i+13)] = mnemonic{aid: AIDPF13 + AID(i)}
	}
}

func pfName(n int) string {
	return "pf" + strconv.Itoa(n)
}

// findMnemonic resolves a bracketed mnemonic name ("enter", "PF3") to its
// key value. The lookup folds case; any whitespace makes the name invalid.
func findMnemonic(name string) (mnemonic, bool) {
	if strings.ContainsAny(name, " \t") {
		return mnemonic{}, false
	}
	m, ok := mnemonicTable[strings.ToLower(name)]
	return m, ok
}

// FindMnemonicValue resolves a mnemonic name to its AID byte. Names are
// matched case-insensitively; whitespace never matches. Unknown names and
// local navigation keys (tab, home) resolve to the AIDNone sentinel and
// are never sent to the host.
func FindMnemonicValue(name string) AID {
	m, ok := findMnemonic(name)
	if !ok {
		return AIDNone
	}
	return m.aid
}

// keyToken is one unit of a parsed key sequence: either literal text or a
// resolved mnemonic.
type keyToken struct {
	text string
	mn   mnemonic
	isMn bool
}

// tokenizeKeys splits a key sequence into literal runs and bracketed
// mnemonics. "[[" and "]]" escape literal brackets. A bracket group that
// does not resolve (unterminated, whitespace inside, unknown name) is kept
// as literal text so nothing is silently dropped from the echo, but an
// unknown mnemonic never produces a key.
func tokenizeKeys(s string) []keyToken {
	var tokens []keyToken
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, keyToken{text: literal.String()})
			literal.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch c {
		case '[':
			if i+1 < len(runes) && runes[i+1] == '[' {
				literal.WriteRune('[')
				i += 2
				continue
			}
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == ']' {
					end = j
					break
				}
			}
			if end < 0 {
				literal.WriteString(string(runes[i:]))
				i = len(runes)
				continue
			}
			name := string(runes[i+1 : end])
			if m, ok := findMnemonic(name); ok {
				flush()
				tokens = append(tokens, keyToken{mn: m, isMn: true})
			} else {
				literal.WriteString(string(runes[i : end+1]))
			}
			i = end + 1
		case ']':
			if i+1 < len(runes) && runes[i+1] == ']' {
				literal.WriteRune(']')
				i += 2
				continue
			}
			literal.WriteRune(']')
			i++
		default:
			literal.WriteRune(c)
			i++
		}
	}
	flush()
	return tokens
}

// SendKeys parses a key sequence of literal characters and bracketed
// mnemonics and applies it to the screen. While the keyboard is locked,
// tokens are buffered in submission order and replayed on unlock; nothing
// is dropped.
func (s *Screen) SendKeys(keys string) {
	for _, tok := range tokenizeKeys(keys) {
		s.applyKey(tok)
	}
}

// applyKey applies or buffers one key token.
func (s *Screen) applyKey(tok keyToken) {
	s.mu.Lock()
	if tok.isMn && tok.mn.nav == navSysReq {
		// System request works even while the keyboard is locked;
		// input stays suspended until the host answers.
		s.oia.locked = true
		s.oia.inputInhibited = InhibitSystemWait
		s.signal()
		s.mu.Unlock()
		return
	}
	if s.oia.locked {
		s.typeahead = append(s.typeahead, tok)
		s.oia.keysBuffered = true
		s.signal()
		s.mu.Unlock()
		return
	}

	if tok.isMn {
		if tok.mn.nav != navNone {
			switch tok.mn.nav {
			case navTab:
				s.tabLocked(1)
			case navBacktab:
				s.tabLocked(-1)
			case navHome:
				s.cursor.Row = s.homePos/s.cols + 1
				s.cursor.Col = s.homePos%s.cols + 1
			case navFieldExit:
				s.tabLocked(1)
			}
			s.signal()
			s.mu.Unlock()
			return
		}
		aid := tok.mn.aid
		if aid == AIDNone {
			s.mu.Unlock()
			return
		}
		// An AID submits field data and locks the keyboard until the
		// host responds.
		s.oia.locked = true
		s.signal()
		s.mu.Unlock()
		s.transport.SendKey([]byte{byte(aid)})
		return
	}

	s.typeText(tok.text)
	s.signal()
	s.mu.Unlock()
}

// typeText writes literal characters into the unprotected field under the
// cursor. Input past the field's end is truncated at the boundary: it
// neither wraps into the next field nor disturbs adjacent cells. Typing
// outside any input field is ignored. Caller holds the write lock.
func (s *Screen) typeText(text string) {
	for _, r := range text {
		pos := s.linearPos(s.cursor.Row, s.cursor.Col)
		f := s.fields.FieldAt(pos)
		if f == nil || f.Protected {
			return
		}
		s.planes.SetChar(pos, r)
		if pos+1 > f.EndPos {
			return // field full, truncate the rest of this run
		}
		s.cursor.Row = (pos+1)/s.cols + 1
		s.cursor.Col = (pos+1)%s.cols + 1
	}
}

// SendAID sends a bare AID byte to the host and locks the keyboard, as if
// the corresponding key had been pressed.
func (s *Screen) SendAID(aid AID) error {
	s.mu.Lock()
	s.oia.locked = true
	s.signal()
	s.mu.Unlock()
	return s.transport.SendKey([]byte{byte(aid)})
}
