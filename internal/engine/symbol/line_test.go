package symbol

import (
	"testing"

	"github.com/Faultbox/linelabel/pkg/math"
)

func TestAppendFeatureDistances(t *testing.T) {
	a := &LineVertexArray{}
	first, last := a.AppendFeature([]math.Vec2{{}, {X: 3, Y: 4}, {X: 3, Y: 14}})

	if first != 0 || last != 2 {
		t.Errorf("index range: got [%d, %d], want [0, 2]", first, last)
	}
	approxf(t, "d0", a.Distance(0), 0, 1e-4)
	approxf(t, "d1", a.Distance(1), 5, 1e-4)
	approxf(t, "d2", a.Distance(2), 15, 1e-4)
}

func TestAppendFeatureRestartsDistance(t *testing.T) {
	a := &LineVertexArray{}
	a.AppendFeature([]math.Vec2{{}, {X: 100}})
	first, last := a.AppendFeature([]math.Vec2{{X: 500}, {X: 510}})

	if first != 2 || last != 3 {
		t.Errorf("second feature range: got [%d, %d], want [2, 3]", first, last)
	}
	approxf(t, "second feature origin", a.Distance(2), 0, 1e-4)
	approxf(t, "second feature end", a.Distance(3), 10, 1e-4)

	p := a.Point(2)
	if p.X != 500 || p.Y != 0 {
		t.Errorf("point: got (%g, %g), want (500, 0)", p.X, p.Y)
	}
}

func TestWrapShift(t *testing.T) {
	if s := (TileID{Z: 0}).WrapShift(); s != 0 {
		t.Errorf("unwrapped tile: got %g, want 0", s)
	}
	if s := (TileID{Z: 0, Wrap: 1}).WrapShift(); s != Extent {
		t.Errorf("wrap 1 at z0: got %g, want %d", s, Extent)
	}
	// At z2 the world is 4 tiles wide.
	if s := (TileID{Z: 2, Wrap: -1}).WrapShift(); s != -4*Extent {
		t.Errorf("wrap -1 at z2: got %g, want %d", s, -4*Extent)
	}
}

func TestPixelsToTileUnits(t *testing.T) {
	cam := testCamera(0, 0, 0) // zoom 4

	// At zoom 4 a z0 tile covers 512 * 16 = 8192 px, one tile unit per px.
	approxf(t, "z0", PixelsToTileUnits(cam, TileID{Z: 0}), 1, 1e-5)

	// A z4 tile covers 512 px, so a pixel is 16 tile units.
	approxf(t, "z4", PixelsToTileUnits(cam, TileID{Z: 4}), 16, 1e-4)
}

func TestTileMatrixStraightDown(t *testing.T) {
	cam := testCamera(0, 0, 0)
	m := TileMatrix(cam, TileID{Z: 0})

	// One tile unit is one pixel here; (500, 250) lands at clip (1, -0.5)
	// on the 1000px viewport.
	p := m.TransformPoint([3]float32{500, 250, 0})
	approxf(t, "x", p[0], 1, 1e-4)
	approxf(t, "y", p[1], -0.5, 1e-4)
}

func TestTileMatrixOrigin(t *testing.T) {
	cam := testCamera(0, 0, 0)

	// Tile (1, 0) at z1 starts half a world east: 512 * 8 = 4096 px.
	m := TileMatrix(cam, TileID{Z: 1, X: 1})
	p := m.TransformPoint([3]float32{0, 0, 0})
	approxf(t, "x", p[0], 4096*2/1000.0, 1e-4)
	approxf(t, "y", p[1], 0, 1e-4)
}
