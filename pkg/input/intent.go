package input

// Direction is a cardinal snap direction
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown
)

// Lateral reports whether the direction is left or right
func (d Direction) Lateral() bool {
	return d == DirectionLeft || d == DirectionRight
}

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	}
	return "unknown"
}

// IntentKind identifies what an intent asks the camera to do
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentRotate
	IntentPan
	IntentDolly
	IntentSnap
	IntentSubmit
	IntentReset
	IntentFullscreen
)

func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "none"
	case IntentRotate:
		return "rotate"
	case IntentPan:
		return "pan"
	case IntentDolly:
		return "dolly"
	case IntentSnap:
		return "snap"
	case IntentSubmit:
		return "submit"
	case IntentReset:
		return "reset"
	case IntentFullscreen:
		return "fullscreen"
	}
	return "unknown"
}

// Intent is a device-independent camera command.
//
// For IntentRotate, DX and DY are yaw and pitch in radians. For IntentPan
// they are world units along the camera's right and up axes. Distance is
// the dolly amount along the forward axis.
type Intent struct {
	Kind      IntentKind
	DX, DY    float64
	Distance  float64
	Direction Direction
}

// Rotate returns a rotate intent
func Rotate(yaw, pitch float64) Intent {
	return Intent{Kind: IntentRotate, DX: yaw, DY: pitch}
}

// Pan returns a pan intent
func Pan(dx, dy float64) Intent {
	return Intent{Kind: IntentPan, DX: dx, DY: dy}
}

// Dolly returns a dolly intent
func Dolly(distance float64) Intent {
	return Intent{Kind: IntentDolly, Distance: distance}
}

// Snap returns a snap-direction intent
func Snap(d Direction) Intent {
	return Intent{Kind: IntentSnap, Direction: d}
}
