// Package nav implements the camera navigation controller: manual free-fly
// control, snap-to-nearest-object target selection and animated flights to
// a vantage pose, all driven from one frame tick.
package nav

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-universe/pkg/anim"
	"github.com/leterax/go-universe/pkg/camera"
	"github.com/leterax/go-universe/pkg/input"
)

// ErrNotInitialized is returned when the scene or renderer is missing
var ErrNotInitialized = errors.New("scene or renderer not initialized")

const resetKey = "camera/reset"

// PoseRenderer is the renderer side of the camera: the controller reads the
// initial pose once and writes the pose once per tick
type PoseRenderer interface {
	CameraPose() camera.Pose
	SetCameraPose(camera.Pose)
}

// Context carries the collaborators shared by the navigation components
type Context struct {
	Scene    SceneQuery
	Renderer PoseRenderer

	// OnSubmit runs the external search action when Enter is pressed in a
	// text field
	OnSubmit func()
	// OnFullscreen toggles fullscreen mode
	OnFullscreen func()

	Logger *slog.Logger
	// Zero value means DefaultConfig
	Config Config
}

// Controller ties input, camera, target seeking and flights together. It is
// single-threaded: events and ticks must come from the same goroutine.
type Controller struct {
	ctx      Context
	cfg      Config
	logger   *slog.Logger
	camera   *camera.FreeCamera
	input    *input.Reconciler
	seeker   *Seeker
	flight   *Transition
	animator *anim.Animator

	pending  []input.Intent
	enabled  bool
	disposed bool
}

// NewController validates ctx and builds a controller starting from the
// renderer's current camera pose
func NewController(ctx Context) (*Controller, error) {
	if ctx.Scene == nil || ctx.Renderer == nil {
		return nil, fmt.Errorf("failed to create controller: %w", ErrNotInitialized)
	}

	cfg := ctx.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	logger := ctx.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cam := camera.NewFreeCamera(mgl64.Vec3{})
	if !cam.SetPose(ctx.Renderer.CameraPose()) {
		logger.Warn("renderer camera pose is degenerate, starting at origin")
	}

	c := &Controller{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		camera:   cam,
		seeker:   NewSeeker(cfg.Seek.AlignmentWeight),
		flight:   NewTransition(cfg.Flight, logger),
		animator: anim.NewAnimator(),
		enabled:  true,
	}
	c.input = input.NewReconciler(cfg.Input, cam.Distance)
	return c, nil
}

// OnDeviceEvent feeds one device event to the controller. The returned bool
// reports whether the host should suppress the event's default action.
func (c *Controller) OnDeviceEvent(ev input.Event) bool {
	if c.disposed || !c.enabled {
		return false
	}
	intent, handled := c.input.Reconcile(ev)
	if intent.Kind != input.IntentNone {
		c.pending = append(c.pending, intent)
	}
	return handled
}

// Tick advances one frame: queued manual intents first, then animations,
// then the active flight, which wins over manual motion. The resulting pose
// is written to the renderer once.
func (c *Controller) Tick(dt time.Duration) {
	if c.disposed {
		return
	}

	for _, in := range c.pending {
		c.apply(in)
	}
	c.pending = c.pending[:0]

	c.animator.Advance(dt)

	if c.flight.State() == Flying {
		c.flight.Step(c.camera, dt)
	}

	c.ctx.Renderer.SetCameraPose(c.camera.Pose())
}

// Pose returns the current camera pose
func (c *Controller) Pose() camera.Pose {
	return c.camera.Pose()
}

// Flying reports whether a snap flight is in progress
func (c *Controller) Flying() bool {
	return c.flight.State() == Flying
}

// Flight returns the active flight plan
func (c *Controller) Flight() (FlightPlan, bool) {
	return c.flight.Plan()
}

// TargetID returns the object the camera is flying to, or "" when idle
func (c *Controller) TargetID() string {
	return c.flight.TargetID()
}

// SetTextFocus tells the controller whether a text input owns the keyboard
func (c *Controller) SetTextFocus(focused bool) {
	c.input.SetTextFocus(focused)
}

// SetEnabled turns event handling on or off. Disabling drops any gesture in
// progress.
func (c *Controller) SetEnabled(enabled bool) {
	c.enabled = enabled
	if !enabled {
		c.input.Reset()
		c.pending = c.pending[:0]
	}
}

// Dispose releases the controller. Further events and ticks are ignored.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.pending = nil
	c.flight.Cancel()
	c.animator.Clear()
	c.input.Reset()
}

func (c *Controller) apply(in input.Intent) {
	switch in.Kind {
	case input.IntentRotate:
		c.camera.ApplyRotate(in.DX, in.DY)
	case input.IntentPan:
		c.camera.ApplyPan(in.DX, in.DY)
	case input.IntentDolly:
		c.camera.ApplyDolly(in.Distance)
	case input.IntentSnap:
		c.snap(in.Direction)
	case input.IntentReset:
		c.reset()
	case input.IntentSubmit:
		if c.ctx.OnSubmit != nil {
			c.ctx.OnSubmit()
		}
	case input.IntentFullscreen:
		if c.ctx.OnFullscreen != nil {
			c.ctx.OnFullscreen()
		}
	}
}

func (c *Controller) snap(d input.Direction) {
	objects := c.ctx.Scene.NavigableObjects()
	target, ok := c.seeker.FindNearest(c.camera.Position(), DirectionVector(d), objects, c.flight.TargetID())
	if !ok {
		c.logger.Debug("no snap target", "direction", d, "candidates", len(objects))
		return
	}

	if c.flight.Start(c.camera.Pose(), target, d.Lateral(), c.animator.Now()) {
		c.animator.Cancel(resetKey)
	}
}

// reset cancels any flight and eases the camera back to the reset position
func (c *Controller) reset() {
	c.flight.Cancel()

	c.animator.Start(anim.Record{
		Key:      resetKey,
		Kind:     anim.EaseOutCubic,
		Duration: c.cfg.Reset.Duration(),
		From:     c.camera.Position(),
		To:       c.cfg.Reset.Target(),
		Apply: func(v mgl64.Vec3) {
			c.camera.SetPosition(v)
		},
	})
}
