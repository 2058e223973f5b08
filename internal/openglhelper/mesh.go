package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/leterax/go-universe/pkg/shape"
)

// Mesh is an indexed triangle mesh in the interleaved position, normal,
// texture coordinate layout
type Mesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
}

// NewMesh uploads geometry to the GPU
func NewMesh(g shape.Geometry) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(g.Vertices)
	ebo := NewEBO(g.Indices)

	const stride = shape.FloatsPerVertex * 4
	// Position
	vao.SetVertexAttribPointer(0, 3, stride, 0)
	// Normal
	vao.SetVertexAttribPointer(1, 3, stride, 3*4)
	// Texture coordinates
	vao.SetVertexAttribPointer(2, 2, stride, 6*4)

	vao.Unbind()

	return &Mesh{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(g.Indices)),
	}
}

// NewSphere creates a unit UV sphere mesh
func NewSphere(stacks, slices int) *Mesh {
	return NewMesh(shape.UVSphere(stacks, slices))
}

// Draw renders the mesh with whatever program is in use
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all GPU resources
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
