package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/linelabel/pkg/math"
)

func approx(t *testing.T, name string, got, want, tol float32) {
	t.Helper()
	if d := got - want; d > tol || d < -tol {
		t.Errorf("%s: got %f, want %f", name, got, want)
	}
}

func TestCameraToCenterDistance(t *testing.T) {
	c := New(800, 600)
	if d := c.CameraToCenterDistance(); d != 900 {
		t.Errorf("distance: got %f, want 900", d)
	}
}

func TestPixelsToClipCorners(t *testing.T) {
	c := New(800, 600)
	m := c.PixelsToClipMatrix()

	// Bottom-right pixel corner maps to clip (1, -1), y flipped.
	p := m.TransformPoint([3]float32{400, 300, 0})
	approx(t, "clip x", p[0], 1, 1e-6)
	approx(t, "clip y", p[1], -1, 1e-6)

	// Round trip back to pixels.
	q := c.ClipToPixelsMatrix().TransformPoint(p)
	approx(t, "pixel x", q[0], 400, 1e-4)
	approx(t, "pixel y", q[1], 300, 1e-4)
}

func TestPixelsToClipDegenerateViewport(t *testing.T) {
	c := New(0, 0)
	if m := c.PixelsToClipMatrix(); m != math.Identity() {
		t.Error("degenerate viewport should yield identity")
	}
	if m := c.ClipToPixelsMatrix(); m != math.Identity() {
		t.Error("degenerate viewport should yield identity inverse")
	}
}

func TestPerspectiveStraightDown(t *testing.T) {
	c := New(1000, 1000)
	m := c.PixelPerspectiveMatrix()

	// With no pitch the ground plane projects unchanged at w = 1.
	v := m.MulVec4(math.Vec4{120, -45, 0, 1})
	approx(t, "x", v[0], 120, 1e-4)
	approx(t, "y", v[1], -45, 1e-4)
	approx(t, "w", v[3], 1, 1e-6)
}

func TestPerspectiveForeshortening(t *testing.T) {
	c := New(1000, 1000)
	c.Pitch = gomath.Pi / 4
	m := c.PixelPerspectiveMatrix()

	// Heading axis: x shrinks by cos(45) then stretches by the divide.
	// 100*cos45 = 70.71068, w = 1 - 70.71068/1500 = 0.9528595.
	p := m.TransformPoint([3]float32{100, 0, 0})
	approx(t, "heading x", p[0], 74.2089, 1e-3)
	approx(t, "heading y", p[1], 0, 1e-4)

	// Cross axis is untouched and stays at unit depth.
	v := m.MulVec4(math.Vec4{0, 100, 0, 1})
	approx(t, "cross y", v[1], 100, 1e-4)
	approx(t, "cross w", v[3], 1, 1e-6)
}

func TestPerspectiveBehindCamera(t *testing.T) {
	c := New(1000, 1000)
	c.Pitch = gomath.Pi / 2

	// At pitch 90 the heading axis lies along the view ray; a point past
	// the eye distance lands behind the camera.
	v := c.PixelPerspectiveMatrix().MulVec4(math.Vec4{3000, 0, 0, 1})
	approx(t, "w", v[3], -1, 1e-5)
}

func TestPerspectiveBearing(t *testing.T) {
	c := New(1000, 1000)
	c.Bearing = gomath.Pi / 2
	p := c.PixelPerspectiveMatrix().TransformPoint([3]float32{100, 0, 0})
	approx(t, "x", p[0], 0, 1e-4)
	approx(t, "y", p[1], 100, 1e-4)
}

func TestPerspectiveRoll(t *testing.T) {
	c := New(1000, 1000)
	c.Roll = gomath.Pi / 2
	p := c.PixelPerspectiveMatrix().TransformPoint([3]float32{100, 0, 0})
	approx(t, "x", p[0], 0, 1e-4)
	approx(t, "y", p[1], 100, 1e-4)
}

func TestPerspectiveRollAfterTilt(t *testing.T) {
	// Roll applies in screen space: with pitch 45 and roll 90 the
	// foreshortened heading axis rotates onto screen y.
	c := New(1000, 1000)
	c.Pitch = gomath.Pi / 4
	c.Roll = gomath.Pi / 2
	p := c.PixelPerspectiveMatrix().TransformPoint([3]float32{100, 0, 0})
	approx(t, "x", p[0], 0, 1e-3)
	approx(t, "y", p[1], 74.2089, 1e-3)
}
