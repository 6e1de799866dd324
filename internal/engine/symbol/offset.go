package symbol

import "github.com/Faultbox/linelabel/pkg/math"

// OffsetNormal returns the perpendicular displacement for shifting a line
// segment sideways: the unit perpendicular of segment, scaled by offset and
// sign-flipped for backward traversal. Never the raw segment perpendicular;
// the offset magnitude must not depend on segment length.
func OffsetNormal(segment math.Vec2, offset float32, direction int) math.Vec2 {
	return segment.Perp().Normalize().Scale(offset * float32(direction))
}

// FindOffsetIntersection resolves the corner of an offset line at vertex
// index: the miter join where the offset incoming segment meets the offset
// outgoing segment. normal is the incoming segment's offset normal, offset
// its signed magnitude. Line endpoints, having no outgoing segment, offset
// directly. Near-parallel segments make the miter ill-conditioned and also
// fall back to the direct offset. Results are cached per vertex and side.
func FindOffsetIntersection(index int, normal math.Vec2, offset float32,
	lineStartIndex, lineEndIndex int,
	ctx *ProjectionContext, args *SyntheticVertexArgs) math.Vec2 {

	side := int8(1)
	if offset < 0 {
		side = -1
	}
	key := offsetKey{index: index, side: side}
	if p, ok := ctx.Cache.offsets[key]; ok {
		return p
	}

	current := ProjectLineVertex(index, ctx, args).Point

	corner, ok := offsetCorner(index, current, normal, offset, lineStartIndex, lineEndIndex, ctx, args)
	if !ok {
		corner = current.Add(normal)
	}

	ctx.Cache.offsets[key] = corner
	return corner
}

func offsetCorner(index int, current, normal math.Vec2, offset float32,
	lineStartIndex, lineEndIndex int,
	ctx *ProjectionContext, args *SyntheticVertexArgs) (math.Vec2, bool) {

	if index == lineStartIndex || index == lineEndIndex {
		return math.Vec2{}, false
	}
	nextIndex := index + args.Direction
	if nextIndex < lineStartIndex || nextIndex > lineEndIndex {
		return math.Vec2{}, false
	}

	next := ProjectLineVertex(nextIndex, ctx, args).Point
	nextNormal := OffsetNormal(next.Sub(current), offset, args.Direction)

	return lineIntersection(
		args.PreviousVertex.Add(normal), current.Add(normal),
		current.Add(nextNormal), next.Add(nextNormal),
	)
}

// lineIntersection intersects the infinite lines through (a1,a2) and
// (b1,b2). Reports false when the lines are near parallel.
func lineIntersection(a1, a2, b1, b2 math.Vec2) (math.Vec2, bool) {
	d1 := a2.Sub(a1).Normalize()
	d2 := b2.Sub(b1).Normalize()

	denom := d1.Cross(d2)
	if denom < 1e-4 && denom > -1e-4 {
		return math.Vec2{}, false
	}

	t := b1.Sub(a1).Cross(d2) / denom
	return a1.Add(d1.Scale(t)), true
}
