package input

import (
	"math"
	"strings"
)

// Gesture is the manual gesture currently in progress
type Gesture int

const (
	GestureNone Gesture = iota
	GestureRotate
	GesturePan
	GestureDolly
)

// State is the reconciler's gesture state. It is cleared on release, cancel
// and whenever the number of touching fingers changes.
type State struct {
	Gesture       Gesture
	LastPointer   *Point
	PinchBaseline *float64

	fingers int
}

// Settings holds the sensitivities used to scale raw deltas
type Settings struct {
	// Radians of rotation per pixel of drag
	RotateSensitivity float64 `toml:"rotate_sensitivity"`
	// Fixed yaw step for the rotate-left/right keys, in radians
	KeyRotateStep float64 `toml:"key_rotate_step"`
	// Pan speed is max(1, distance/PanDistanceScale)
	PanDistanceScale float64 `toml:"pan_distance_scale"`
	// Wheel dolly is DollyBaseSpeed * max(1, distance/DollyDistanceScale)
	DollyBaseSpeed     float64 `toml:"dolly_base_speed"`
	DollyDistanceScale float64 `toml:"dolly_distance_scale"`
	// World units of dolly per pixel of pinch, before the distance factor
	PinchSensitivity float64 `toml:"pinch_sensitivity"`
}

// DistanceSource reports the camera's current distance from the origin
type DistanceSource func() float64

// Reconciler maps device events to intents. It never blocks and emits at
// most one intent per event.
type Reconciler struct {
	settings  Settings
	distance  DistanceSource
	state     State
	textFocus bool
}

// NewReconciler creates a reconciler. A nil distance source is treated as a
// camera sitting at the origin.
func NewReconciler(settings Settings, distance DistanceSource) *Reconciler {
	if distance == nil {
		distance = func() float64 { return 0 }
	}
	return &Reconciler{
		settings: settings,
		distance: distance,
	}
}

// State returns a copy of the current gesture state
func (r *Reconciler) State() State {
	return r.state
}

// Reset clears any gesture in progress
func (r *Reconciler) Reset() {
	r.state = State{}
}

// SetTextFocus records whether a text input currently has keyboard focus
func (r *Reconciler) SetTextFocus(focused bool) {
	r.textFocus = focused
}

// TextFocus reports whether keyboard events are going to a text input
func (r *Reconciler) TextFocus() bool {
	return r.textFocus
}

// Reconcile translates one event. The returned bool reports whether the
// event was consumed; hosts should suppress the default action (page
// scroll, context menu) for consumed events.
func (r *Reconciler) Reconcile(ev Event) (Intent, bool) {
	switch ev.Kind {
	case PointerDown:
		return r.pointerDown(ev)
	case PointerMove:
		return r.pointerMove(ev)
	case PointerUp, PointerCancel:
		active := r.state.Gesture != GestureNone
		r.Reset()
		return Intent{}, active
	case TouchStart:
		r.beginTouch(ev.Touches)
		return Intent{}, true
	case TouchMove:
		return r.touchMove(ev)
	case TouchEnd, TouchCancel:
		r.Reset()
		return Intent{}, true
	case Wheel:
		return r.wheel(ev)
	case KeyDown:
		return r.keyDown(ev)
	case ContextMenu:
		// Swallowed so the secondary button can pan
		return Intent{}, true
	}
	return Intent{}, false
}

func (r *Reconciler) pointerDown(ev Event) (Intent, bool) {
	var g Gesture
	switch ev.Button {
	case ButtonPrimary:
		g = GestureRotate
	case ButtonSecondary:
		g = GesturePan
	default:
		return Intent{}, false
	}

	r.state = State{Gesture: g, LastPointer: &Point{X: ev.X, Y: ev.Y}}
	return Intent{}, true
}

func (r *Reconciler) pointerMove(ev Event) (Intent, bool) {
	if r.state.Gesture == GestureNone || r.state.LastPointer == nil {
		return Intent{}, false
	}
	return r.drag(Point{X: ev.X, Y: ev.Y}), true
}

// drag turns pointer motion into a rotate or pan intent and advances the
// last pointer position
func (r *Reconciler) drag(p Point) Intent {
	dx := p.X - r.state.LastPointer.X
	dy := p.Y - r.state.LastPointer.Y
	r.state.LastPointer = &Point{X: p.X, Y: p.Y}

	switch r.state.Gesture {
	case GestureRotate:
		// Dragging right turns the view right
		return Rotate(-dx*r.settings.RotateSensitivity, -dy*r.settings.RotateSensitivity)
	case GesturePan:
		speed := r.panSpeed()
		return Pan(-dx*speed, dy*speed)
	}
	return Intent{}
}

// beginTouch starts the gesture that matches the number of fingers
func (r *Reconciler) beginTouch(touches []Point) {
	r.state = State{fingers: len(touches)}

	switch len(touches) {
	case 1:
		r.state.Gesture = GestureRotate
		r.state.LastPointer = &Point{X: touches[0].X, Y: touches[0].Y}
	case 2:
		d := pinchDistance(touches[0], touches[1])
		r.state.Gesture = GestureDolly
		r.state.PinchBaseline = &d
	case 3:
		r.state.Gesture = GesturePan
		r.state.LastPointer = &Point{X: touches[0].X, Y: touches[0].Y}
	}
}

func (r *Reconciler) touchMove(ev Event) (Intent, bool) {
	// A different finger count starts over instead of reusing stale deltas
	if len(ev.Touches) != r.state.fingers || r.state.Gesture == GestureNone {
		r.beginTouch(ev.Touches)
		return Intent{}, true
	}

	switch r.state.Gesture {
	case GestureRotate, GesturePan:
		return r.drag(ev.Touches[0]), true
	case GestureDolly:
		d := pinchDistance(ev.Touches[0], ev.Touches[1])
		delta := (d - *r.state.PinchBaseline) * r.settings.PinchSensitivity * r.distanceFactor()
		r.state.PinchBaseline = &d
		return Dolly(delta), true
	}
	return Intent{}, true
}

func (r *Reconciler) wheel(ev Event) (Intent, bool) {
	if ev.WheelDelta == 0 {
		return Intent{}, true
	}

	step := r.settings.DollyBaseSpeed * r.distanceFactor()
	if ev.WheelDelta > 0 {
		// Scrolling towards the user pulls the camera back
		return Dolly(-step), true
	}
	return Dolly(step), true
}

func (r *Reconciler) keyDown(ev Event) (Intent, bool) {
	if r.textFocus {
		if ev.Key != KeyEnter {
			return Intent{}, false
		}
		// Enter submits the search and hands focus back to the canvas
		r.textFocus = false
		return Intent{Kind: IntentSubmit}, true
	}

	switch normalizeKey(ev.Key) {
	case KeyArrowLeft:
		return Snap(DirectionLeft), true
	case KeyArrowRight:
		return Snap(DirectionRight), true
	case KeyArrowUp:
		return Snap(DirectionUp), true
	case KeyArrowDown:
		return Snap(DirectionDown), true
	case KeyRotateLeft:
		return Rotate(r.settings.KeyRotateStep, 0), true
	case KeyRotateRight:
		return Rotate(-r.settings.KeyRotateStep, 0), true
	case KeyReset:
		return Intent{Kind: IntentReset}, true
	case KeyFullscreen, KeyFullscreenAlt:
		return Intent{Kind: IntentFullscreen}, true
	}
	return Intent{}, false
}

// panSpeed keeps panning at a roughly constant angular rate at any zoom
func (r *Reconciler) panSpeed() float64 {
	return math.Max(1, r.distance()/r.settings.PanDistanceScale)
}

// distanceFactor speeds up dolly far from the origin and slows it near it
func (r *Reconciler) distanceFactor() float64 {
	return math.Max(1, r.distance()/r.settings.DollyDistanceScale)
}

func pinchDistance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// normalizeKey lowercases single-character keys so Q and q behave the same
func normalizeKey(key string) string {
	if len([]rune(key)) == 1 {
		return strings.ToLower(key)
	}
	return key
}
