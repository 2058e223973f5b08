// Package shape generates mesh geometry in the interleaved layout the
// renderer uploads: position (3), normal (3), texture coordinates (2).
package shape

import (
	"math"
)

// FloatsPerVertex is the stride of the interleaved vertex layout
const FloatsPerVertex = 8

// Minimum tessellation that still encloses a volume
const (
	MinStacks = 2
	MinSlices = 3
)

// Geometry is an indexed triangle list
type Geometry struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices
func (g Geometry) VertexCount() int {
	return len(g.Vertices) / FloatsPerVertex
}

// UVSphere builds a unit-radius sphere centered on the origin. The seam
// column is duplicated so texture coordinates wrap cleanly. Triangles wind
// counter-clockwise seen from outside.
func UVSphere(stacks, slices int) Geometry {
	stacks = max(stacks, MinStacks)
	slices = max(slices, MinSlices)

	g := Geometry{
		Vertices: make([]float32, 0, (stacks+1)*(slices+1)*FloatsPerVertex),
		Indices:  make([]uint32, 0, stacks*slices*6),
	}

	for i := 0; i <= stacks; i++ {
		v := float64(i) / float64(stacks)
		phi := v * math.Pi // 0 at the north pole
		y := math.Cos(phi)
		ring := math.Sin(phi)

		for j := 0; j <= slices; j++ {
			u := float64(j) / float64(slices)
			theta := u * 2 * math.Pi
			x := ring * math.Cos(theta)
			z := -ring * math.Sin(theta)

			// On a unit sphere the normal equals the position
			g.Vertices = append(g.Vertices,
				float32(x), float32(y), float32(z),
				float32(x), float32(y), float32(z),
				float32(u), float32(1-v),
			)
		}
	}

	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			if i != 0 {
				g.Indices = append(g.Indices, a, b, a+1)
			}
			if i != stacks-1 {
				g.Indices = append(g.Indices, a+1, b, b+1)
			}
		}
	}
	return g
}

// SegmentsForRelevance picks a tessellation that grows with relevance, with
// a floor of 16 segments
func SegmentsForRelevance(relevance float64) int {
	return max(16, int(math.Floor(32*relevance)))
}
