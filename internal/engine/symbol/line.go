// Package symbol implements the per-frame projection and placement pipeline
// for glyphs laid out along linear map features. Line geometry arrives in
// quantized tile units; each frame the pipeline projects it into a label
// plane matched to the current camera, walks the line to position every
// glyph, and writes screen positions and rotations into dynamic vertex data.
package symbol

import (
	gomath "math"

	"github.com/Faultbox/linelabel/internal/engine/camera"
	"github.com/Faultbox/linelabel/pkg/math"
)

const (
	// Extent is the tile-local coordinate range: one tile spans
	// [0, Extent) in both axes regardless of zoom.
	Extent = 8192

	// TileSizePixels is the on-screen size of a tile at its own zoom level.
	TileSizePixels = 512

	// distanceScale quantizes cumulative line distances to 1/16 of a tile
	// unit so they fit an int32 with sub-unit precision.
	distanceScale = 16
)

// LineVertex is one quantized point of a line feature with its cumulative
// distance from the feature origin.
type LineVertex struct {
	X, Y int16
	D    int32
}

// LineVertexArray is an append-only store of line vertices. Multiple
// independent features are concatenated; a vertex never belongs to two
// features. Immutable once built.
type LineVertexArray struct {
	vertices []LineVertex
}

// AppendFeature adds a polyline in tile units and returns the index range
// [first, last] it occupies. Cumulative distances restart at zero for each
// feature.
func (a *LineVertexArray) AppendFeature(points []math.Vec2) (first, last int) {
	first = len(a.vertices)
	var dist float32
	for i, p := range points {
		if i > 0 {
			dist += p.Distance(points[i-1])
		}
		a.vertices = append(a.vertices, LineVertex{
			X: int16(p.X),
			Y: int16(p.Y),
			D: int32(dist * distanceScale),
		})
	}
	return first, len(a.vertices) - 1
}

// Len returns the total vertex count.
func (a *LineVertexArray) Len() int {
	return len(a.vertices)
}

// Point returns the tile-local position of vertex i.
func (a *LineVertexArray) Point(i int) math.Vec2 {
	v := a.vertices[i]
	return math.Vec2{X: float32(v.X), Y: float32(v.Y)}
}

// Distance returns the cumulative distance of vertex i from its feature
// origin, in tile units.
func (a *LineVertexArray) Distance(i int) float32 {
	return float32(a.vertices[i].D) / distanceScale
}

// TileID identifies a tile by zoom level, grid position, and wrap count.
// Wrap counts whole copies of the world to the east (positive) or west
// (negative); it is non-zero only for features rendered across the
// antimeridian seam of a globe.
type TileID struct {
	Z    uint8
	X, Y uint32
	Wrap int32
}

// WrapShift returns the tile-unit x displacement produced by the tile's
// wrap count: one world width per wrap at this zoom level.
func (t TileID) WrapShift() float32 {
	if t.Wrap == 0 {
		return 0
	}
	return float32(t.Wrap) * Extent * zoomScale(float32(t.Z))
}

// PixelsToTileUnits returns how many tile units one screen pixel covers for
// this tile at the camera's current zoom.
func PixelsToTileUnits(cam *camera.Camera, tile TileID) float32 {
	return Extent / (TileSizePixels * zoomScale(cam.Zoom-float32(tile.Z)))
}

// TileMatrix maps tile-local coordinates to clip space for the current
// camera: clip conversion, perspective, tile origin, tile-unit scale.
func TileMatrix(cam *camera.Camera, tile TileID) math.Mat4 {
	size := TileSizePixels * zoomScale(cam.Zoom-float32(tile.Z))
	p := size / Extent

	ox := (float32(tile.X) + float32(tile.Wrap)*zoomScale(float32(tile.Z))) * size
	oy := float32(tile.Y) * size

	return cam.PixelsToClipMatrix().
		Mul(cam.PixelPerspectiveMatrix()).
		Mul(math.Translate(ox, oy, 0)).
		Mul(math.Scale(p, p, p))
}

// zoomScale converts a zoom difference to a linear scale factor.
func zoomScale(delta float32) float32 {
	return float32(gomath.Exp2(float64(delta)))
}
