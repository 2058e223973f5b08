package nav

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-universe/pkg/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

func newTestTransition(t *testing.T) *Transition {
	t.Helper()
	return NewTransition(DefaultConfig().Flight, nil)
}

func TestVantagePose(t *testing.T) {
	tr := newTestTransition(t)
	from := camera.NewPose(mgl64.Vec3{0, 0, 100})
	obj := Object{ID: "a", Position: mgl64.Vec3{}, Radius: 2}

	vertical, ok := tr.Vantage(from, obj, false)
	require.True(t, ok)
	assert.True(t, vertical.Position.ApproxEqual(mgl64.Vec3{0, 6, 14}), "got %v", vertical.Position)

	lateral, ok := tr.Vantage(from, obj, true)
	require.True(t, ok)
	assert.True(t, lateral.Position.ApproxEqual(mgl64.Vec3{0, 6, 12}), "got %v", lateral.Position)

	// The vantage looks straight at the object
	toObj := obj.Position.Sub(vertical.Position).Normalize()
	assert.InDelta(t, 1, vertical.Forward().Dot(toObj), 1e-9)
}

func TestVantageDegenerateWhenCameraAtObject(t *testing.T) {
	tr := newTestTransition(t)
	obj := Object{ID: "a", Position: mgl64.Vec3{1, 2, 3}, Radius: 1}

	_, ok := tr.Vantage(camera.NewPose(obj.Position), obj, true)
	assert.False(t, ok)

	assert.False(t, tr.Start(camera.NewPose(obj.Position), obj, true, 0))
	assert.Equal(t, Idle, tr.State())
	assert.Empty(t, tr.TargetID())
}

func TestStepConvergesWithoutOvershoot(t *testing.T) {
	tr := newTestTransition(t)
	cam := camera.NewFreeCamera(mgl64.Vec3{1000, 0, 0})
	tr.plan = &FlightPlan{Start: cam.Pose(), Target: camera.NewPose(mgl64.Vec3{}), TargetID: "origin"}

	prev := 1000.0
	ticks := 0
	for tr.State() == Flying {
		require.Less(t, ticks, 1000, "flight never arrived")
		tr.Step(cam, frame)
		ticks++

		x := cam.Position().X()
		assert.GreaterOrEqual(t, x, 0.0, "overshot at tick %d", ticks)
		assert.Less(t, x, prev)
		prev = x
	}

	// 1000 * 0.95^n < 0.1 first holds at n = 180
	assert.Equal(t, 180, ticks)
	assert.Less(t, cam.Position().Len(), DefaultArrivalEpsilon)
}

func TestStepTracksElapsedTime(t *testing.T) {
	tr := newTestTransition(t)
	cam := camera.NewFreeCamera(mgl64.Vec3{0, 0, 100})
	require.True(t, tr.Start(cam.Pose(), Object{ID: "a", Radius: 1}, false, 3*time.Second))

	for i := 0; i < 10; i++ {
		assert.False(t, tr.Step(cam, frame))
	}

	plan, ok := tr.Plan()
	require.True(t, ok)
	assert.Equal(t, 10, plan.Ticks)
	assert.Equal(t, 10*frame, plan.Elapsed)
	assert.Equal(t, 3*time.Second, plan.StartTime)
	assert.Equal(t, "a", plan.TargetID)
}

func TestPreemptionIsContinuous(t *testing.T) {
	tr := newTestTransition(t)
	cam := camera.NewFreeCamera(mgl64.Vec3{0, 0, 100})
	a := Object{ID: "a", Position: mgl64.Vec3{-40, 0, 0}, Radius: 1}
	b := Object{ID: "b", Position: mgl64.Vec3{60, 10, 0}, Radius: 3}

	require.True(t, tr.Start(cam.Pose(), a, true, 0))
	for i := 0; i < 20; i++ {
		tr.Step(cam, frame)
	}
	mid := cam.Pose()

	require.True(t, tr.Start(cam.Pose(), b, true, 20*frame))
	plan, _ := tr.Plan()
	assert.Equal(t, mid, plan.Start)
	assert.Equal(t, mid, cam.Pose(), "starting a flight must not move the camera")
	assert.Equal(t, "b", tr.TargetID())

	before := cam.Position()
	remaining := before.Sub(plan.Target.Position).Len()
	tr.Step(cam, frame)
	moved := cam.Position().Sub(before).Len()
	assert.LessOrEqual(t, moved, DefaultLerpFactor*remaining+1e-9)

	// Orientation moves by a bounded angle too
	dot := math.Abs(mid.Orientation.Dot(cam.Pose().Orientation))
	assert.Greater(t, dot, 0.99)
}

func TestStepKeepsUnitOrientation(t *testing.T) {
	tr := newTestTransition(t)
	cam := camera.NewFreeCamera(mgl64.Vec3{0, 0, 100})
	cam.ApplyRotate(2.5, -0.4)
	require.True(t, tr.Start(cam.Pose(), Object{ID: "a", Position: mgl64.Vec3{30, -20, 5}, Radius: 2}, false, 0))

	for tr.State() == Flying {
		tr.Step(cam, frame)
		assert.InDelta(t, 1, cam.Pose().Orientation.Len(), 1e-9)
	}
}

func TestMaxTicksCommitsToTarget(t *testing.T) {
	cfg := DefaultConfig().Flight
	cfg.MaxTicks = 5
	tr := NewTransition(cfg, nil)
	cam := camera.NewFreeCamera(mgl64.Vec3{0, 0, 500})
	require.True(t, tr.Start(cam.Pose(), Object{ID: "a", Radius: 1}, false, 0))
	plan, _ := tr.Plan()

	for i := 0; i < 4; i++ {
		assert.False(t, tr.Step(cam, frame))
	}
	assert.True(t, tr.Step(cam, frame))
	assert.Equal(t, Idle, tr.State())
	assert.True(t, cam.Position().ApproxEqual(plan.Target.Position))
}

func TestCancelClearsTarget(t *testing.T) {
	tr := newTestTransition(t)
	cam := camera.NewFreeCamera(mgl64.Vec3{0, 0, 100})
	require.True(t, tr.Start(cam.Pose(), Object{ID: "a", Radius: 1}, false, 0))
	assert.Equal(t, "a", tr.TargetID())

	tr.Cancel()
	assert.Equal(t, Idle, tr.State())
	assert.Empty(t, tr.TargetID())
	assert.False(t, tr.Step(cam, frame))
}

func TestArrivalClearsTarget(t *testing.T) {
	tr := newTestTransition(t)
	cam := camera.NewFreeCamera(mgl64.Vec3{0, 0, 100})
	require.True(t, tr.Start(cam.Pose(), Object{ID: "a", Position: mgl64.Vec3{20, 0, 0}, Radius: 1}, true, 0))

	for i := 0; tr.State() == Flying; i++ {
		require.Less(t, i, 1000, "flight never arrived")
		tr.Step(cam, frame)
	}
	assert.Empty(t, tr.TargetID())
}
