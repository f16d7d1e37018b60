package headless5250

// Input inhibit reasons reported in the operator information area.
const (
	InhibitNotInhibited = 0
	InhibitSystemWait   = 1
	InhibitCommCheck    = 2
	InhibitProgCheck    = 3
	InhibitMachineCheck = 4
	InhibitOther        = 5
)

// OIA models the operator information area of a host session: keyboard
// lock, input inhibit and the related status flags. OIA is owned by a
// Screen and shares its lock; the exported methods here are unsynchronized
// reads of simple flags that the Screen mutates under its own lock.
type OIA struct {
	locked         bool
	inputInhibited int
	messageLight   bool
	insertMode     bool
	keysBuffered   bool
}

// NewOIA returns an OIA with the keyboard unlocked and input not inhibited.
func NewOIA() *OIA {
	return &OIA{}
}

// IsKeyboardLocked returns true while the keyboard is locked.
func (o *OIA) IsKeyboardLocked() bool { return o.locked }

// InputInhibited returns the current inhibit reason, or
// InhibitNotInhibited.
func (o *OIA) InputInhibited() int { return o.inputInhibited }

// IsMessageWait returns true if the message light is on.
func (o *OIA) IsMessageWait() bool { return o.messageLight }

// IsInsertMode returns true if insert mode is active.
func (o *OIA) IsInsertMode() bool { return o.insertMode }

// IsKeysBuffered returns true if keystrokes are queued behind a locked
// keyboard.
func (o *OIA) IsKeysBuffered() bool { return o.keysBuffered }

// SetKeyboardLocked locks or unlocks the keyboard. Unlocking replays any
// buffered keystrokes in submission order.
func (s *Screen) SetKeyboardLocked(locked bool) {
	s.mu.Lock()
	s.oia.locked = locked
	var replay []keyToken
	if !locked && len(s.typeahead) > 0 {
		replay = s.typeahead
		s.typeahead = nil
		s.oia.keysBuffered = false
	}
	s.signal()
	s.mu.Unlock()

	for _, tok := range replay {
		s.applyKey(tok)
	}
}

// SetInputInhibited sets the input inhibit reason shown in the OIA.
func (s *Screen) SetInputInhibited(reason int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oia.inputInhibited = reason
	s.signal()
}

// SetMessageLight turns the message wait light on or off.
func (s *Screen) SetMessageLight(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oia.messageLight = on
	s.signal()
}

// SetInsertMode turns insert mode on or off.
func (s *Screen) SetInsertMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oia.insertMode = on
	s.signal()
}

// IsKeyboardLocked returns true while the keyboard is locked.
func (s *Screen) IsKeyboardLocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.oia.locked
}
