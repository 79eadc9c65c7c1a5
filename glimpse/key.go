package glimpse

//go:generate go tool stringer -type=Key -trimprefix=Key

// Key is a keyboard key the emulator bindings care about.
type Key uint8

const (
	KeyEscape Key = iota
	KeyEnter
	KeyTab
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyR
	KeyP
)
