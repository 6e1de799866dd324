package symbol

import (
	"github.com/Faultbox/linelabel/internal/engine/camera"
	"github.com/Faultbox/linelabel/pkg/math"
)

// PlaneAlignment names the label-plane layout mode: whether glyphs sit in
// the map surface or the viewport, and whether they rotate with the map or
// stay screen-fixed. Each variant maps to one matrix construction strategy.
type PlaneAlignment uint8

const (
	// ViewportAlignedViewportRotated lays glyphs flat on the screen and
	// keeps them screen-fixed as the map turns.
	ViewportAlignedViewportRotated PlaneAlignment = iota
	// ViewportAlignedMapRotated lays glyphs flat on the screen but turns
	// them with the map bearing.
	ViewportAlignedMapRotated
	// MapAlignedViewportRotated pitches glyphs into the map surface while
	// keeping their heading screen-fixed.
	MapAlignedViewportRotated
	// MapAlignedMapRotated pitches glyphs into the map surface and turns
	// them with the map, the usual mode for line-following road labels.
	MapAlignedMapRotated
)

// AlignedWithMap reports whether glyphs lie in the map surface.
func (a PlaneAlignment) AlignedWithMap() bool {
	return a == MapAlignedViewportRotated || a == MapAlignedMapRotated
}

// RotatedWithMap reports whether glyphs turn with the map bearing.
func (a PlaneAlignment) RotatedWithMap() bool {
	return a == ViewportAlignedMapRotated || a == MapAlignedMapRotated
}

// LabelPlaneMatrix maps tile-local coordinates into the plane where glyph
// layout happens. scale is the tile-unit size of one screen pixel.
//
// Map-aligned layout happens in the tile's own plane, so the matrix is a
// pure uniform scale; pitch, bearing, and roll are applied downstream.
// Viewport-aligned layout happens in screen pixels, so the matrix carries
// the camera's full perspective on top of the pixel conversion.
func LabelPlaneMatrix(mode PlaneAlignment, cam *camera.Camera, scale float32) math.Mat4 {
	s := 1 / scale
	if mode.AlignedWithMap() {
		return math.Scale(s, s, s)
	}
	return cam.PixelPerspectiveMatrix().Mul(math.Scale(s, s, s))
}

// ClipSpaceMatrix maps label-plane coordinates to clip space. Only the
// map-aligned map-rotated mode needs an extra bearing term: its label plane
// was laid out in the unrotated tile plane, so the bearing the perspective
// stack would normally contribute is applied here instead. Every other mode
// already laid out in final screen pixels.
func ClipSpaceMatrix(mode PlaneAlignment, cam *camera.Camera, scale float32) math.Mat4 {
	if mode == MapAlignedMapRotated {
		return cam.PixelsToClipMatrix().Mul(math.RotateZ(cam.Bearing))
	}
	return cam.PixelsToClipMatrix()
}

// TileSkewVectors returns unit vectors describing how the tile-local east
// and south axes land on the screen under the current bearing, pitch, and
// roll. Converting a tile-space offset to a screen delta is then two
// multiply-adds instead of a matrix transform.
//
// At pitch 90 the axis lying along the view direction projects to nothing;
// that component is returned as an exact zero vector rather than a
// normalized garbage direction.
func TileSkewVectors(cam *camera.Camera) (east, south math.Vec2) {
	m := cam.PixelPerspectiveMatrix()
	east = normalizeOrZero(math.Vec2{X: m[0], Y: m[1]})
	south = normalizeOrZero(math.Vec2{X: m[4], Y: m[5]})
	return east, south
}

func normalizeOrZero(v math.Vec2) math.Vec2 {
	if v.Length() < 1e-6 {
		return math.Vec2{}
	}
	return v.Normalize()
}
