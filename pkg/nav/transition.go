package nav

import (
	"log/slog"
	"time"

	"github.com/leterax/go-universe/pkg/camera"
)

// FlightState is the state of the transition controller
type FlightState int

const (
	Idle FlightState = iota
	Flying
)

func (s FlightState) String() string {
	if s == Flying {
		return "flying"
	}
	return "idle"
}

// FlightPlan describes one flight towards a vantage pose
type FlightPlan struct {
	Start     camera.Pose
	Target    camera.Pose
	StartTime time.Duration
	// Elapsed is the time spent flying so far. The approach is exponential,
	// so the total duration is not known up front.
	Elapsed  time.Duration
	Ticks    int
	TargetID string
}

// Transition flies the camera to a vantage pose near an object and hands
// control back once it arrives. The approach covers a fixed fraction of the
// remaining distance each tick, so its speed depends on the frame rate.
type Transition struct {
	cfg    FlightConfig
	plan   *FlightPlan
	logger *slog.Logger
}

// NewTransition creates an idle transition controller
func NewTransition(cfg FlightConfig, logger *slog.Logger) *Transition {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transition{cfg: cfg, logger: logger}
}

// State reports whether a flight is in progress
func (t *Transition) State() FlightState {
	if t.plan != nil {
		return Flying
	}
	return Idle
}

// Plan returns the active flight plan
func (t *Transition) Plan() (FlightPlan, bool) {
	if t.plan == nil {
		return FlightPlan{}, false
	}
	return *t.plan, true
}

// TargetID returns the object of the active flight, or "" when idle
func (t *Transition) TargetID() string {
	if t.plan == nil {
		return ""
	}
	return t.plan.TargetID
}

// Vantage computes the pose from which obj is viewed: pushed out from the
// object towards the camera, lifted above it, and looking at it.
func (t *Transition) Vantage(from camera.Pose, obj Object, lateral bool) (camera.Pose, bool) {
	toCamera := from.Position.Sub(obj.Position)
	if toCamera.Len() < camera.Epsilon {
		return camera.Pose{}, false
	}

	offset := obj.Radius * t.cfg.VerticalOffset
	if lateral {
		offset = obj.Radius * t.cfg.LateralOffset
	}
	lift := obj.Radius * t.cfg.Lift

	position := obj.Position.
		Add(toCamera.Normalize().Mul(offset)).
		Add(camera.WorldUp.Mul(lift))

	orientation, ok := camera.LookAtQuat(position, obj.Position, camera.WorldUp)
	if !ok {
		return camera.Pose{}, false
	}

	p := camera.Pose{Position: position, Orientation: orientation}
	return p, p.Valid()
}

// Start begins a flight from current towards obj. A flight already in
// progress is superseded; since current is the in-flight pose, the path
// stays continuous. It returns false if no vantage pose can be computed.
func (t *Transition) Start(current camera.Pose, obj Object, lateral bool, now time.Duration) bool {
	target, ok := t.Vantage(current, obj, lateral)
	if !ok {
		t.logger.Debug("skipping flight, degenerate vantage", "target", obj.ID)
		return false
	}

	if t.plan != nil {
		t.logger.Debug("preempting flight", "from", t.plan.TargetID, "to", obj.ID, "ticks", t.plan.Ticks)
	} else {
		t.logger.Debug("starting flight", "target", obj.ID)
	}

	t.plan = &FlightPlan{
		Start:     current,
		Target:    target,
		StartTime: now,
		TargetID:  obj.ID,
	}
	return true
}

// Cancel abandons the active flight, leaving the camera where it is
func (t *Transition) Cancel() {
	t.plan = nil
}

// Step moves cam one tick closer to the target pose. It returns true on the
// tick the flight completes.
func (t *Transition) Step(cam *camera.FreeCamera, dt time.Duration) bool {
	if t.plan == nil {
		return false
	}

	cur := cam.Pose()
	f := t.cfg.LerpFactor
	next := camera.Pose{
		Position:    camera.Lerp(cur.Position, t.plan.Target.Position, f),
		Orientation: camera.Slerp(cur.Orientation, t.plan.Target.Orientation, f),
	}
	if !cam.SetPose(next) {
		t.logger.Debug("skipping degenerate flight step", "target", t.plan.TargetID)
		return false
	}

	t.plan.Ticks++
	t.plan.Elapsed += dt

	remaining := next.Position.Sub(t.plan.Target.Position).Len()
	if remaining < t.cfg.ArrivalEpsilon {
		t.logger.Debug("flight arrived", "target", t.plan.TargetID, "ticks", t.plan.Ticks)
		t.plan = nil
		return true
	}

	if t.cfg.MaxTicks > 0 && t.plan.Ticks >= t.cfg.MaxTicks {
		t.logger.Debug("flight hit tick limit", "target", t.plan.TargetID, "remaining", remaining)
		cam.SetPose(t.plan.Target)
		t.plan = nil
		return true
	}
	return false
}
