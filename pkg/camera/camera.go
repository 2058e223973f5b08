package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which a vector is treated as degenerate
const Epsilon = 1e-9

// Basis vectors of an unrotated camera (looking along -Z, Y-up)
var (
	WorldUp      = mgl64.Vec3{0, 1, 0}
	localRight   = mgl64.Vec3{1, 0, 0}
	localUp      = mgl64.Vec3{0, 1, 0}
	localForward = mgl64.Vec3{0, 0, -1}
)

// Pose is the camera transform the renderer reads every frame
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewPose returns a pose at position with identity orientation
func NewPose(position mgl64.Vec3) Pose {
	return Pose{Position: position, Orientation: mgl64.QuatIdent()}
}

// Valid reports whether the pose is finite and its orientation can be normalized
func (p Pose) Valid() bool {
	return finiteVec(p.Position) && finiteQuat(p.Orientation) && p.Orientation.Len() > Epsilon
}

// Forward returns the direction the camera looks at
func (p Pose) Forward() mgl64.Vec3 {
	return p.Orientation.Rotate(localForward)
}

// Right returns the camera's local right axis in world space
func (p Pose) Right() mgl64.Vec3 {
	return p.Orientation.Rotate(localRight)
}

// Up returns the camera's local up axis in world space
func (p Pose) Up() mgl64.Vec3 {
	return p.Orientation.Rotate(localUp)
}

// ViewMatrix returns the world-to-camera matrix for this pose
func (p Pose) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(p.Position, p.Position.Add(p.Forward()), p.Up())
}

// ScreenRay returns the world-space ray through point (x, y) of a width by
// height viewport, with y growing downwards, for a perspective projection
// with vertical field of view fovY in radians
func (p Pose) ScreenRay(x, y, width, height, fovY float64) (origin, direction mgl64.Vec3, ok bool) {
	if width <= 0 || height <= 0 || fovY <= 0 || fovY >= math.Pi {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height
	tanHalf := math.Tan(fovY / 2)
	aspect := width / height

	local := mgl64.Vec3{ndcX * tanHalf * aspect, ndcY * tanHalf, -1}
	direction = p.Orientation.Rotate(local)
	if !finiteVec(direction) || direction.Len() < Epsilon {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return p.Position, direction.Normalize(), true
}

// FreeCamera is an unconstrained fly camera. It has no damping: motion stops
// the moment input stops.
type FreeCamera struct {
	pose    Pose
	worldUp mgl64.Vec3
}

// NewFreeCamera creates a camera at position looking along -Z
func NewFreeCamera(position mgl64.Vec3) *FreeCamera {
	return &FreeCamera{
		pose:    NewPose(position),
		worldUp: WorldUp,
	}
}

// Pose returns a copy of the current pose
func (c *FreeCamera) Pose() Pose {
	return c.pose
}

// Position returns the current camera position
func (c *FreeCamera) Position() mgl64.Vec3 {
	return c.pose.Position
}

// Distance returns the camera's distance from the world origin
func (c *FreeCamera) Distance() float64 {
	return c.pose.Position.Len()
}

// Forward returns the camera's forward vector
func (c *FreeCamera) Forward() mgl64.Vec3 {
	return c.pose.Forward()
}

// Right returns the camera's right vector
func (c *FreeCamera) Right() mgl64.Vec3 {
	return c.pose.Right()
}

// Up returns the camera's up vector
func (c *FreeCamera) Up() mgl64.Vec3 {
	return c.pose.Up()
}

// SetPose replaces the pose. Degenerate poses are rejected and leave the
// camera untouched.
func (c *FreeCamera) SetPose(p Pose) bool {
	if !p.Valid() {
		return false
	}
	c.pose = Pose{Position: p.Position, Orientation: p.Orientation.Normalize()}
	return true
}

// SetPosition moves the camera without changing its orientation
func (c *FreeCamera) SetPosition(position mgl64.Vec3) bool {
	if !finiteVec(position) || !InBounds(position) {
		return false
	}
	c.pose.Position = position
	return true
}

// LookAt turns the camera towards target
func (c *FreeCamera) LookAt(target mgl64.Vec3) bool {
	q, ok := LookAtQuat(c.pose.Position, target, c.worldUp)
	if !ok {
		return false
	}
	c.pose.Orientation = q
	return true
}

// ApplyRotate yaws about the world up axis and then pitches about the local
// right axis of the already-yawed camera. Both rotations are premultiplied.
func (c *FreeCamera) ApplyRotate(yaw, pitch float64) bool {
	if !finite(yaw) || !finite(pitch) {
		return false
	}

	q := mgl64.QuatRotate(yaw, c.worldUp).Mul(c.pose.Orientation)

	right := q.Rotate(localRight)
	if right.Len() < Epsilon {
		return false
	}
	q = mgl64.QuatRotate(pitch, right.Normalize()).Mul(q)

	if !finiteQuat(q) || q.Len() < Epsilon {
		return false
	}
	// Renormalize to keep drift out of repeated composition
	c.pose.Orientation = q.Normalize()
	return true
}

// ApplyPan moves the camera along its own right and up axes
func (c *FreeCamera) ApplyPan(dx, dy float64) bool {
	next := c.pose.Position.
		Add(c.Right().Mul(dx)).
		Add(c.Up().Mul(dy))
	return c.SetPosition(next)
}

// ApplyDolly moves the camera along its forward axis. Negative distances
// move backwards.
func (c *FreeCamera) ApplyDolly(distance float64) bool {
	next := c.pose.Position.Add(c.Forward().Mul(distance))
	return c.SetPosition(next)
}

// InBounds reports whether a position lies inside the universe. Space is
// unbounded, so every finite position is accepted.
func InBounds(mgl64.Vec3) bool {
	return true
}

// LookAtQuat returns the orientation of a camera at eye looking at target.
// It fails when eye and target coincide.
func LookAtQuat(eye, target, up mgl64.Vec3) (mgl64.Quat, bool) {
	f := target.Sub(eye)
	if f.Len() < Epsilon || !finiteVec(f) {
		return mgl64.QuatIdent(), false
	}
	f = f.Normalize()

	r := f.Cross(up)
	if r.Len() < Epsilon {
		// Looking straight along up, pick any horizontal right axis
		r = f.Cross(mgl64.Vec3{0, 0, 1})
	}
	r = r.Normalize()
	u := r.Cross(f)

	// Columns are the camera's local axes expressed in world space
	m := mgl64.Mat3FromCols(r, u, f.Mul(-1))
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize(), true
}

// Lerp linearly interpolates between two positions
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Slerp interpolates orientations along the shortest arc
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

func finiteQuat(q mgl64.Quat) bool {
	return finite(q.W) && finiteVec(q.V)
}
