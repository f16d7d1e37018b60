package headless5250

// DirtyProvider receives change notifications for screen positions. The
// rendering layer implements this to repaint only what changed.
type DirtyProvider interface {
	// MarkDirty is called with the linear position of every plane mutation.
	MarkDirty(pos int)
}

// NoopDirty ignores all dirty notifications.
type NoopDirty struct{}

func (NoopDirty) MarkDirty(pos int) {}

// --- Code Page Provider ---

// CodePageProvider maps protocol bytes to display characters and back.
// The 5250 data stream carries EBCDIC; implementations typically wrap a
// CCSID translation table. See NewCodePage for the built-in charmap-backed
// implementation.
type CodePageProvider interface {
	// Decode maps a protocol byte to its display character.
	Decode(b byte) rune
	// Encode maps a display character back to its protocol byte.
	// The second result is false if the character has no mapping.
	Encode(r rune) (byte, bool)
}

// --- Transport Provider ---

// TransportProvider accepts outbound protocol bytes and exposes the
// connection actions the recovery state machine may request. The network
// layer (telnet negotiation, TLS) lives behind this interface.
type TransportProvider interface {
	// SendKey writes outbound key/AID bytes to the host.
	SendKey(data []byte) error
	// Reconnect tears down and re-establishes the connection.
	Reconnect() error
	// Close releases the connection.
	Close() error
}

// NoopTransport discards outbound data and accepts all connection actions.
type NoopTransport struct{}

func (NoopTransport) SendKey(data []byte) error { return nil }
func (NoopTransport) Reconnect() error          { return nil }
func (NoopTransport) Close() error              { return nil }

var (
	_ DirtyProvider     = NoopDirty{}
	_ TransportProvider = NoopTransport{}
)
