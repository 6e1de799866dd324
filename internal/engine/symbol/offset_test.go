package symbol

import (
	"testing"

	"github.com/Faultbox/linelabel/pkg/math"
)

func TestOffsetNormalUnitPerpendicular(t *testing.T) {
	// The normal's magnitude comes from the offset, never from the segment.
	n := OffsetNormal(math.Vec2{X: 10}, 2, 1)
	approxf(t, "x", n.X, 0, 1e-6)
	approxf(t, "y", n.Y, 2, 1e-6)

	// Backward traversal flips the side.
	n = OffsetNormal(math.Vec2{X: 10}, 2, -1)
	approxf(t, "flipped y", n.Y, -2, 1e-6)
}

func TestFindOffsetIntersectionRightAngle(t *testing.T) {
	// A segment along +x meeting a segment along +y at the origin.
	pts := []math.Vec2{{X: -10}, {}, {Y: 10}}

	// Concave side: both offset lines move away from the corner's inside,
	// the miter lands at (-1, 1).
	ctx := testContext(pts, math.Vec2{X: -10})
	args := &SyntheticVertexArgs{Direction: 1, PreviousVertex: math.Vec2{X: -10}}
	normal := OffsetNormal(math.Vec2{X: 10}, 1, 1)
	corner := FindOffsetIntersection(1, normal, 1, 0, 2, ctx, args)
	approxf(t, "concave x", corner.X, -1, 1e-4)
	approxf(t, "concave y", corner.Y, 1, 1e-4)

	// Convex side: the opposite sign pulls the corner to (1, -1).
	normal = OffsetNormal(math.Vec2{X: 10}, -1, 1)
	corner = FindOffsetIntersection(1, normal, -1, 0, 2, ctx, args)
	approxf(t, "convex x", corner.X, 1, 1e-4)
	approxf(t, "convex y", corner.Y, -1, 1e-4)
}

func TestFindOffsetIntersectionCollinearFallback(t *testing.T) {
	// Straight line: the miter determinant vanishes; the corner must reduce
	// to the directly offset vertex, not a blow-up.
	pts := []math.Vec2{{X: -10}, {}, {X: 10}}
	ctx := testContext(pts, math.Vec2{X: -10})
	args := &SyntheticVertexArgs{Direction: 1, PreviousVertex: math.Vec2{X: -10}}

	normal := OffsetNormal(math.Vec2{X: 10}, 1, 1)
	corner := FindOffsetIntersection(1, normal, 1, 0, 2, ctx, args)
	approxf(t, "x", corner.X, 0, 1e-4)
	approxf(t, "y", corner.Y, 1, 1e-4)
}

func TestFindOffsetIntersectionEndpoint(t *testing.T) {
	// The last vertex has no outgoing segment and offsets directly.
	pts := []math.Vec2{{X: -10}, {}, {Y: 10}}
	ctx := testContext(pts, math.Vec2{X: -10})
	args := &SyntheticVertexArgs{Direction: 1, PreviousVertex: math.Vec2{}}

	normal := OffsetNormal(math.Vec2{Y: 10}, 1, 1)
	corner := FindOffsetIntersection(2, normal, 1, 0, 2, ctx, args)
	approxf(t, "x", corner.X, -1, 1e-4)
	approxf(t, "y", corner.Y, 10, 1e-4)
}

func TestFindOffsetIntersectionCachedPerSide(t *testing.T) {
	pts := []math.Vec2{{X: -10}, {}, {Y: 10}}
	ctx := testContext(pts, math.Vec2{X: -10})
	args := &SyntheticVertexArgs{Direction: 1, PreviousVertex: math.Vec2{X: -10}}

	normal := OffsetNormal(math.Vec2{X: 10}, 1, 1)
	FindOffsetIntersection(1, normal, 1, 0, 2, ctx, args)

	// Poison the positive-side cache entry; the next call must return it.
	ctx.Cache.offsets[offsetKey{index: 1, side: 1}] = math.Vec2{X: -555}
	corner := FindOffsetIntersection(1, normal, 1, 0, 2, ctx, args)
	if corner.X != -555 {
		t.Errorf("expected cached corner, got %g", corner.X)
	}

	// The negative side is keyed separately and still solves fresh.
	normal = OffsetNormal(math.Vec2{X: 10}, -1, 1)
	corner = FindOffsetIntersection(1, normal, -1, 0, 2, ctx, args)
	approxf(t, "other side x", corner.X, 1, 1e-4)
	approxf(t, "other side y", corner.Y, -1, 1e-4)
}

func TestLineIntersection(t *testing.T) {
	p, ok := lineIntersection(
		math.Vec2{X: -5, Y: 1}, math.Vec2{X: 5, Y: 1},
		math.Vec2{X: 2, Y: -5}, math.Vec2{X: 2, Y: 5},
	)
	if !ok {
		t.Fatal("perpendicular lines must intersect")
	}
	approxf(t, "x", p.X, 2, 1e-5)
	approxf(t, "y", p.Y, 1, 1e-5)

	if _, ok := lineIntersection(
		math.Vec2{}, math.Vec2{X: 10},
		math.Vec2{Y: 1}, math.Vec2{X: 10, Y: 1},
	); ok {
		t.Error("parallel lines must report no intersection")
	}
}
