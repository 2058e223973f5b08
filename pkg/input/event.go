// Package input turns raw pointer, touch, wheel and keyboard events into a
// small set of camera intents. It does not depend on any windowing system:
// hosts fill in the normalized Event fields from whatever dispatch
// mechanism they use.
package input

// Kind identifies a device event
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	PointerCancel
	TouchStart
	TouchMove
	TouchEnd
	TouchCancel
	Wheel
	KeyDown
	KeyUp
	ContextMenu
)

// Button identifies a pointer button, numbered like DOM mouse buttons
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// Key names understood by the reconciler
const (
	KeyArrowLeft     = "ArrowLeft"
	KeyArrowRight    = "ArrowRight"
	KeyArrowUp       = "ArrowUp"
	KeyArrowDown     = "ArrowDown"
	KeyEnter         = "Enter"
	KeyRotateLeft    = "q"
	KeyRotateRight   = "e"
	KeyReset         = "r"
	KeyFullscreen    = "f"
	KeyFullscreenAlt = "|"

	// Not interpreted here but forwarded for text editing
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
)

// Point is a screen-space position in pixels
type Point struct {
	X, Y float64
}

// Event is a normalized device event
type Event struct {
	Kind Kind

	// Pointer position for pointer events
	X, Y   float64
	Button Button

	// Active touch points for touch events. On TouchEnd this holds the
	// touches that remain on the surface.
	Touches []Point

	// Wheel delta, positive when scrolling towards the user
	WheelDelta float64

	// Key name for keyboard events
	Key string
}
