// Package headless5250 provides a headless IBM 5250 data-stream terminal core.
//
// This package decodes the 5250 display data stream without any display,
// making it ideal for:
//   - Screen scraping and green-screen automation
//   - Testing 5250 applications without a GUI
//   - Building terminal recorders and protocol analyzers
//   - Headless integration testing against IBM i hosts
//
// # Quick Start
//
// Create a screen and feed it order bytes from the host:
//
//	screen := headless5250.New()
//	screen.WriteOrders(data) // raw 5250 display orders
//	fmt.Println(screen.String())
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Screen]: The main aggregate that owns all mutable state
//   - [ScreenPlanes]: Parallel per-position planes (characters, attributes,
//     colors, extended highlighting, GUI overlay)
//   - [FieldTable]: Input/output field descriptors decoded from SF orders
//   - [Cursor]: Position plus independent active/shown flags
//   - [OIA]: Operator information area (keyboard lock, input inhibit)
//   - [Session]: Connection lifecycle and error recovery state machine
//
// # Orders
//
// Screen implements the order decoder for the 5250 display stream: SOH
// (Start of Header), SBA (Set Buffer Address), RA (Repeat to Address), SF
// (Start of Field), IC (Insert Cursor), and WDSF structured fields carrying
// GUI extensions (windows, borders, selection fields).
//
// Protocol addressing is strict: an SBA outside the screen rectangle is an
// error and leaves the cursor unmoved. Interactive cursor placement via
// [Screen.SetCursor] is forgiving and clamps instead.
//
// # Attribute Dispersal
//
// A 5250 attribute byte occupies a screen cell and governs the field that
// follows it. Writing an attribute "disperses" it into the color plane
// (packed background<<8|foreground) and the extended plane (reverse,
// underline, blink, column separator, non-display). Attribute zero is a
// sentinel that changes the raw plane only.
//
// # Keystrokes
//
// [Screen.SendKeys] accepts literal text interleaved with bracketed
// mnemonics:
//
//	screen.SendKeys("WRKACTJOB[enter]")
//	screen.SendKeys("[pf3]")
//
// Mnemonic lookup is case-insensitive; [[ and ]] escape literal brackets.
// While the keyboard is locked, keystrokes are buffered and replayed in
// order on unlock.
//
// # Waiting
//
// Wait primitives let automation block on screen state:
//
//	if screen.WaitForText("SIGN ON", 5*time.Second) {
//	    screen.SendKeys("QUSER[tab]SECRET[enter]")
//	}
//
// A non-positive timeout checks exactly once without blocking. Waits are
// notification-driven; the shared lock is never held while sleeping.
//
// # Providers
//
// Providers handle everything the core does not own. All are optional with
// no-op defaults:
//
//   - [CodePageProvider]: EBCDIC byte to display character mapping
//   - [DirtyProvider]: per-position change notification for a renderer
//   - [TransportProvider]: outbound AID/key bytes and reconnect hooks
//
// # Snapshots
//
// [Screen.Snapshot] returns a read-only capture of the planes, fields and
// cursor for diagnostics and tests, and [Screen.Screenshot] renders the
// screen model to an image.
package headless5250
