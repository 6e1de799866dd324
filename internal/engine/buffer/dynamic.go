// Package buffer wraps OpenGL vertex buffers that are rewritten every frame.
package buffer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Dynamic is a GL_ARRAY_BUFFER uploaded with GL_DYNAMIC_DRAW. Each Upload
// orphans the previous storage so the driver never stalls on a buffer still
// in flight.
type Dynamic struct {
	vbo      uint32
	capacity int // bytes currently allocated on the GPU
}

// NewDynamic creates an empty dynamic vertex buffer.
func NewDynamic() *Dynamic {
	b := &Dynamic{}
	gl.GenBuffers(1, &b.vbo)
	return b
}

// ID returns the GL buffer object name.
func (b *Dynamic) ID() uint32 {
	return b.vbo
}

// Bind binds the buffer to GL_ARRAY_BUFFER.
func (b *Dynamic) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
}

// Upload replaces the buffer contents with the given float data. Grows the
// GPU allocation when needed, otherwise orphans and rewrites in place.
func (b *Dynamic) Upload(data []float32) {
	if len(data) == 0 {
		return
	}
	size := len(data) * 4

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if size > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(data), gl.DYNAMIC_DRAW)
		b.capacity = size
		return
	}
	// Orphan, then write into the fresh allocation.
	gl.BufferData(gl.ARRAY_BUFFER, b.capacity, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(data))
}

// Delete releases the GPU buffer.
func (b *Dynamic) Delete() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
		b.capacity = 0
	}
}
