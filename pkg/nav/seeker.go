package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-universe/pkg/camera"
	"github.com/leterax/go-universe/pkg/input"
)

// Object is a navigable body as seen by the camera subsystem
type Object struct {
	ID       string
	Position mgl64.Vec3
	Radius   float64
}

// SceneQuery lists the objects the camera may snap to. It is called once per
// snap intent and must not block.
type SceneQuery interface {
	NavigableObjects() []Object
}

// SceneFunc adapts a function to SceneQuery
type SceneFunc func() []Object

// NavigableObjects calls f
func (f SceneFunc) NavigableObjects() []Object {
	return f()
}

// DirectionVector returns the world axis a snap direction searches along
func DirectionVector(d input.Direction) mgl64.Vec3 {
	switch d {
	case input.DirectionLeft:
		return mgl64.Vec3{-1, 0, 0}
	case input.DirectionRight:
		return mgl64.Vec3{1, 0, 0}
	case input.DirectionUp:
		return mgl64.Vec3{0, 1, 0}
	case input.DirectionDown:
		return mgl64.Vec3{0, -1, 0}
	}
	return mgl64.Vec3{}
}

// Seeker picks the object to fly to for a snap intent
type Seeker struct {
	weight float64
}

// NewSeeker creates a seeker. weight scales the perpendicular distance
// against the distance along the search direction; larger values favour
// objects dead ahead over merely close ones.
func NewSeeker(weight float64) *Seeker {
	return &Seeker{weight: weight}
}

// FindNearest returns the best candidate in direction as seen from origin.
// Candidates behind the direction (non-positive projection) and the one
// with excludeID are skipped. The second result is false when nothing
// qualifies.
func (s *Seeker) FindNearest(origin, direction mgl64.Vec3, candidates []Object, excludeID string) (Object, bool) {
	if direction.Len() < camera.Epsilon {
		return Object{}, false
	}
	dir := direction.Normalize()

	var (
		best      Object
		bestScore = math.Inf(1)
		found     bool
	)
	for _, c := range candidates {
		if excludeID != "" && c.ID == excludeID {
			continue
		}

		offset := c.Position.Sub(origin)
		along := offset.Dot(dir)
		if along <= 0 {
			continue
		}
		perpendicular := offset.Sub(dir.Mul(along)).Len()

		score := s.weight*perpendicular + along
		if score < bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}
