package glimpse

//go:generate go tool stringer -type=Command -trimprefix=Command

// Command is a lifecycle command delivered by the host.
type Command uint8

const (
	// CommandInitWindow is delivered once a native window is ready for use.
	CommandInitWindow Command = iota

	// CommandTermWindow is delivered before the native window goes away.
	// The window is still valid while the command is handled.
	CommandTermWindow

	CommandPause
	CommandResume

	// CommandDestroy is delivered when the host tears down the application.
	CommandDestroy
)

// Event is a single lifecycle command. Window is only set
// for CommandInitWindow and CommandTermWindow.
type Event struct {
	Command Command
	Window  Window
}
