package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSettings = Settings{
	RotateSensitivity:  0.005,
	KeyRotateStep:      0.1,
	PanDistanceScale:   100,
	DollyBaseSpeed:     1,
	DollyDistanceScale: 50,
	PinchSensitivity:   0.05,
}

func fixedDistance(d float64) DistanceSource {
	return func() float64 { return d }
}

func TestMouseDragRotates(t *testing.T) {
	r := NewReconciler(testSettings, fixedDistance(0))

	_, handled := r.Reconcile(Event{Kind: PointerDown, Button: ButtonPrimary, X: 10, Y: 10})
	require.True(t, handled)
	assert.Equal(t, GestureRotate, r.State().Gesture)

	in, handled := r.Reconcile(Event{Kind: PointerMove, X: 110, Y: 10})
	require.True(t, handled)
	assert.Equal(t, IntentRotate, in.Kind)
	assert.InDelta(t, -0.5, in.DX, 1e-12)
	assert.InDelta(t, 0, in.DY, 1e-12)

	// Deltas are relative to the previous move
	in, _ = r.Reconcile(Event{Kind: PointerMove, X: 110, Y: 30})
	assert.InDelta(t, 0, in.DX, 1e-12)
	assert.InDelta(t, -0.1, in.DY, 1e-12)
}

func TestMouseSecondaryDragPansWithDistanceScaling(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		speed    float64
	}{
		{"near origin", 20, 1},
		{"far away", 500, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReconciler(testSettings, fixedDistance(tt.distance))
			r.Reconcile(Event{Kind: PointerDown, Button: ButtonSecondary, X: 0, Y: 0})

			in, handled := r.Reconcile(Event{Kind: PointerMove, X: 4, Y: 2})
			require.True(t, handled)
			assert.Equal(t, IntentPan, in.Kind)
			assert.InDelta(t, -4*tt.speed, in.DX, 1e-12)
			assert.InDelta(t, 2*tt.speed, in.DY, 1e-12)
		})
	}
}

func TestMoveWithoutGestureIsIgnored(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	in, handled := r.Reconcile(Event{Kind: PointerMove, X: 5, Y: 5})
	assert.False(t, handled)
	assert.Equal(t, IntentNone, in.Kind)
}

func TestReleaseClearsGesture(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	r.Reconcile(Event{Kind: PointerDown, Button: ButtonPrimary, X: 0, Y: 0})

	_, handled := r.Reconcile(Event{Kind: PointerUp})
	assert.True(t, handled)
	assert.Equal(t, State{}, r.State())

	// The next drag must not see the old pointer position
	in, handled := r.Reconcile(Event{Kind: PointerMove, X: 500, Y: 500})
	assert.False(t, handled)
	assert.Equal(t, IntentNone, in.Kind)

	r.Reconcile(Event{Kind: PointerDown, Button: ButtonPrimary, X: 400, Y: 400})
	r.Reconcile(Event{Kind: PointerCancel})
	assert.Equal(t, State{}, r.State())
}

func TestMiddleButtonIsNotHandled(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	_, handled := r.Reconcile(Event{Kind: PointerDown, Button: ButtonMiddle})
	assert.False(t, handled)
	assert.Equal(t, GestureNone, r.State().Gesture)
}

func TestWheelDollyScalesWithDistance(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		delta    float64
		want     float64
	}{
		{"zoom in near", 10, -1, 1},
		{"zoom out near", 10, 3, -1},
		{"zoom in far", 500, -1, 10},
		{"zoom out far", 500, 1, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReconciler(testSettings, fixedDistance(tt.distance))
			in, handled := r.Reconcile(Event{Kind: Wheel, WheelDelta: tt.delta})
			require.True(t, handled)
			assert.Equal(t, IntentDolly, in.Kind)
			assert.InDelta(t, tt.want, in.Distance, 1e-12)
		})
	}
}

func TestZeroWheelDeltaIsConsumedWithoutIntent(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	in, handled := r.Reconcile(Event{Kind: Wheel})
	assert.True(t, handled)
	assert.Equal(t, IntentNone, in.Kind)
}

func TestOneFingerRotates(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	r.Reconcile(Event{Kind: TouchStart, Touches: []Point{{X: 0, Y: 0}}})

	in, handled := r.Reconcile(Event{Kind: TouchMove, Touches: []Point{{X: 100, Y: 0}}})
	require.True(t, handled)
	assert.Equal(t, IntentRotate, in.Kind)
	assert.InDelta(t, -0.5, in.DX, 1e-12)
}

func TestTwoFingerPinchDollies(t *testing.T) {
	r := NewReconciler(testSettings, fixedDistance(100))
	r.Reconcile(Event{Kind: TouchStart, Touches: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}}})
	require.NotNil(t, r.State().PinchBaseline)
	assert.InDelta(t, 100, *r.State().PinchBaseline, 1e-12)

	in, handled := r.Reconcile(Event{Kind: TouchMove, Touches: []Point{{X: 0, Y: 0}, {X: 140, Y: 0}}})
	require.True(t, handled)
	assert.Equal(t, IntentDolly, in.Kind)
	// (140 - 100) * 0.05 * max(1, 100/50)
	assert.InDelta(t, 4, in.Distance, 1e-12)

	// Pinching back in moves the camera away
	in, _ = r.Reconcile(Event{Kind: TouchMove, Touches: []Point{{X: 0, Y: 0}, {X: 120, Y: 0}}})
	assert.InDelta(t, -2, in.Distance, 1e-12)
}

func TestThreeFingersPan(t *testing.T) {
	r := NewReconciler(testSettings, fixedDistance(0))
	touches := []Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 30, Y: 10}}
	r.Reconcile(Event{Kind: TouchStart, Touches: touches})

	in, handled := r.Reconcile(Event{Kind: TouchMove, Touches: []Point{{X: 13, Y: 15}, {X: 23, Y: 15}, {X: 33, Y: 15}}})
	require.True(t, handled)
	assert.Equal(t, IntentPan, in.Kind)
	assert.InDelta(t, -3, in.DX, 1e-12)
	assert.InDelta(t, 5, in.DY, 1e-12)
}

func TestFingerCountChangeResetsGesture(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	r.Reconcile(Event{Kind: TouchStart, Touches: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}}})

	// Third finger lands: no intent, pan gesture re-captured
	in, handled := r.Reconcile(Event{Kind: TouchMove, Touches: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 50}}})
	assert.True(t, handled)
	assert.Equal(t, IntentNone, in.Kind)
	assert.Equal(t, GesturePan, r.State().Gesture)
	assert.Nil(t, r.State().PinchBaseline)

	// Lifting back to one finger starts a fresh rotate from the new position
	in, _ = r.Reconcile(Event{Kind: TouchMove, Touches: []Point{{X: 300, Y: 300}}})
	assert.Equal(t, IntentNone, in.Kind)
	assert.Equal(t, GestureRotate, r.State().Gesture)

	in, _ = r.Reconcile(Event{Kind: TouchMove, Touches: []Point{{X: 310, Y: 300}}})
	assert.Equal(t, IntentRotate, in.Kind)
	assert.InDelta(t, -0.05, in.DX, 1e-12)
}

func TestTouchEndClearsState(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	r.Reconcile(Event{Kind: TouchStart, Touches: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}}})

	_, handled := r.Reconcile(Event{Kind: TouchEnd, Touches: []Point{{X: 0, Y: 0}}})
	assert.True(t, handled)
	assert.Equal(t, State{}, r.State())
}

func TestUnsupportedFingerCountProducesNothing(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	four := []Point{{}, {X: 1}, {X: 2}, {X: 3}}
	r.Reconcile(Event{Kind: TouchStart, Touches: four})
	assert.Equal(t, GestureNone, r.State().Gesture)

	in, _ := r.Reconcile(Event{Kind: TouchMove, Touches: four})
	assert.Equal(t, IntentNone, in.Kind)
}

func TestKeyboardIntents(t *testing.T) {
	tests := []struct {
		key  string
		want Intent
	}{
		{KeyArrowLeft, Snap(DirectionLeft)},
		{KeyArrowRight, Snap(DirectionRight)},
		{KeyArrowUp, Snap(DirectionUp)},
		{KeyArrowDown, Snap(DirectionDown)},
		{"q", Rotate(0.1, 0)},
		{"Q", Rotate(0.1, 0)},
		{"e", Rotate(-0.1, 0)},
		{"r", Intent{Kind: IntentReset}},
		{"f", Intent{Kind: IntentFullscreen}},
		{"|", Intent{Kind: IntentFullscreen}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			r := NewReconciler(testSettings, nil)
			in, handled := r.Reconcile(Event{Kind: KeyDown, Key: tt.key})
			assert.True(t, handled)
			assert.Equal(t, tt.want, in)
		})
	}
}

func TestKeyRotateIgnoresPointerState(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	r.Reconcile(Event{Kind: PointerDown, Button: ButtonSecondary, X: 5, Y: 5})

	in, _ := r.Reconcile(Event{Kind: KeyDown, Key: "q"})
	assert.Equal(t, Rotate(0.1, 0), in)
	assert.Equal(t, GesturePan, r.State().Gesture)
}

func TestUnknownKeyIsNotHandled(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	in, handled := r.Reconcile(Event{Kind: KeyDown, Key: "z"})
	assert.False(t, handled)
	assert.Equal(t, IntentNone, in.Kind)

	_, handled = r.Reconcile(Event{Kind: KeyUp, Key: "q"})
	assert.False(t, handled)
}

func TestTextFocusSuppressesCameraKeys(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	r.SetTextFocus(true)

	in, handled := r.Reconcile(Event{Kind: KeyDown, Key: KeyArrowLeft})
	assert.False(t, handled)
	assert.Equal(t, IntentNone, in.Kind)
	assert.True(t, r.TextFocus())

	in, handled = r.Reconcile(Event{Kind: KeyDown, Key: KeyEnter})
	assert.True(t, handled)
	assert.Equal(t, IntentSubmit, in.Kind)
	assert.False(t, r.TextFocus())

	// Focus is back on the canvas
	in, _ = r.Reconcile(Event{Kind: KeyDown, Key: KeyArrowLeft})
	assert.Equal(t, IntentSnap, in.Kind)
}

func TestContextMenuIsSwallowed(t *testing.T) {
	r := NewReconciler(testSettings, nil)
	in, handled := r.Reconcile(Event{Kind: ContextMenu})
	assert.True(t, handled)
	assert.Equal(t, IntentNone, in.Kind)
}

func TestDirectionLateral(t *testing.T) {
	assert.True(t, DirectionLeft.Lateral())
	assert.True(t, DirectionRight.Lateral())
	assert.False(t, DirectionUp.Lateral())
	assert.False(t, DirectionDown.Lateral())
	assert.Equal(t, "down", DirectionDown.String())
}
