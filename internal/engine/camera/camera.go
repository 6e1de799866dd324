// Package camera models the map camera whose state drives per-frame label
// projection: bearing, pitch, roll, zoom, and the viewport size.
package camera

import (
	gomath "math"

	"github.com/Faultbox/linelabel/pkg/math"
)

// Projection selects the earth model used to resolve tile wrap-around.
type Projection uint8

const (
	// ProjectionMercator is the flat projection; wrapped tile copies never
	// share a seam with the camera.
	ProjectionMercator Projection = iota
	// ProjectionGlobe is the curved-earth projection; features crossing the
	// antimeridian seam carry a non-zero tile wrap.
	ProjectionGlobe
)

// Camera is the read-only transform state consumed by the label pipeline.
// Angles are in radians. The view heading at bearing 0 points along the
// tile +x axis; pitch tilts the map plane away around the heading, roll
// spins the viewport around the view axis.
//
// The camera looks at the world-pixel origin; feature positioning relative
// to the view is carried by tile matrices and paint-time translations.
type Camera struct {
	Bearing float32
	Pitch   float32
	Roll    float32
	Zoom    float32

	Width  float32
	Height float32

	Projection Projection
}

// New returns a camera with a straight-down view over the given viewport.
func New(width, height float32) *Camera {
	return &Camera{Width: width, Height: height}
}

// CameraToCenterDistance is the distance from the eye to the viewport
// center, in pixels. The 1.5 factor corresponds to a vertical field of
// view of 2*atan(1/3).
func (c *Camera) CameraToCenterDistance() float32 {
	return 1.5 * c.Height
}

// PixelsToClipMatrix maps screen-centered pixel coordinates (x right,
// y down) to clip space. Returns identity for a degenerate viewport.
func (c *Camera) PixelsToClipMatrix() math.Mat4 {
	if c.Width <= 0 || c.Height <= 0 {
		return math.Identity()
	}
	return math.Scale(2/c.Width, -2/c.Height, 1)
}

// ClipToPixelsMatrix is the inverse of PixelsToClipMatrix.
func (c *Camera) ClipToPixelsMatrix() math.Mat4 {
	if c.Width <= 0 || c.Height <= 0 {
		return math.Identity()
	}
	return math.Scale(c.Width/2, -c.Height/2, 1)
}

// PixelPerspectiveMatrix maps map-plane pixel coordinates to perspective
// screen pixels: RotZ(roll) * tilt(pitch) * RotZ(bearing). The tilt
// compresses the axis carrying the view heading by cos(pitch) and writes
// the homogeneous depth w = 1 - (x*sin(pitch) + z*cos(pitch))/d, so points
// past the horizon distance d/sin(pitch) project behind the camera.
func (c *Camera) PixelPerspectiveMatrix() math.Mat4 {
	m := tiltMatrix(c.Pitch, c.CameraToCenterDistance())
	return math.RotateZ(c.Roll).Mul(m).Mul(math.RotateZ(c.Bearing))
}

// tiltMatrix builds the pitch foreshortening with its perspective w row.
// A non-positive eye distance disables the w terms instead of producing
// infinities.
func tiltMatrix(pitch, d float32) math.Mat4 {
	cp := float32(gomath.Cos(float64(pitch)))
	sp := float32(gomath.Sin(float64(pitch)))

	var wx, wz float32
	if d > 0 {
		wx = -sp / d
		wz = -cp / d
	}

	return math.Mat4{
		cp, 0, sp, wx,
		0, 1, 0, 0,
		-sp, 0, cp, wz,
		0, 0, 0, 1,
	}
}
