package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projection defaults
const (
	DefaultFOV  = 45.0
	DefaultNear = 0.1
	DefaultFar  = 10000.0
)

// Scene lighting
var (
	BackgroundColor = mgl32.Vec4{0.02, 0.02, 0.06, 1.0}
	LightPosition   = mgl32.Vec3{0, 200, 300}
	LightColor      = mgl32.Vec3{1.0, 0.95, 0.9}
)

// Emissive intensity at rest and while hovered, before the relevance boost
const (
	EmissiveBase       = 0.3
	EmissiveRelevance  = 0.3
	EmissiveHover      = 1.0
	EmissiveHoverBoost = 0.8
)
