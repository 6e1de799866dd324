package symbol

import (
	gomath "math"

	"github.com/Faultbox/linelabel/pkg/math"
)

// GlyphPlacement is a resolved glyph position in the label plane with the
// tangent angle of the line segment it landed on.
type GlyphPlacement struct {
	Point math.Vec2
	Angle float32
}

// PlaceGlyphAlongLine walks the line from the anchor until the glyph's
// along-line offset is consumed, then interpolates the placement point on
// the final segment. offsetX is the glyph's own offset from the anchor,
// lineOffsetX/Y a whole-label shift along and across the line. flip mirrors
// the walk for glyphs that must read against the line direction.
//
// Returns false when either line end is reached before the offset is
// consumed; the caller must hide the glyph instead of drawing it.
func PlaceGlyphAlongLine(offsetX, lineOffsetX, lineOffsetY float32, flip bool,
	anchorSegment, lineStartIndex, lineEndIndex int,
	ctx *ProjectionContext) (GlyphPlacement, bool) {

	combinedOffsetX := offsetX + lineOffsetX
	if flip {
		combinedOffsetX = offsetX - lineOffsetX
	}

	dir := 1
	if combinedOffsetX < 0 {
		dir = -1
	}

	var angle float32
	if flip {
		dir *= -1
		angle = gomath.Pi
	}
	if dir < 0 {
		angle += gomath.Pi
	}

	absOffsetX := combinedOffsetX
	if absOffsetX < 0 {
		absOffsetX = -absOffsetX
	}

	currentIndex := anchorSegment
	if dir < 0 {
		currentIndex = anchorSegment + 1
	}

	anchor := anchorLabelPoint(ctx)
	args := &SyntheticVertexArgs{
		AbsOffsetX:     absOffsetX,
		Direction:      dir,
		PreviousVertex: anchor,
	}

	prevRaw := anchor
	prevPoint := anchor
	if lineOffsetY != 0 {
		start, ok := offsetAnchorPoint(anchor, currentIndex, dir, lineOffsetY, lineStartIndex, lineEndIndex, ctx, args)
		if !ok {
			return GlyphPlacement{}, false
		}
		prevPoint = start
	}

	var point math.Vec2
	var distanceSoFar, segmentLength float32
	for {
		currentIndex += dir
		if currentIndex < lineStartIndex || currentIndex > lineEndIndex {
			return GlyphPlacement{}, false
		}

		args.PreviousVertex = prevRaw
		args.DistanceFromAnchor = distanceSoFar

		raw := ProjectLineVertex(currentIndex, ctx, args).Point
		if lineOffsetY != 0 {
			normal := OffsetNormal(raw.Sub(prevRaw), lineOffsetY, dir)
			point = FindOffsetIntersection(currentIndex, normal, lineOffsetY,
				lineStartIndex, lineEndIndex, ctx, args)
		} else {
			point = raw
		}

		segmentLength = prevPoint.Distance(point)
		if distanceSoFar+segmentLength > absOffsetX {
			break
		}
		distanceSoFar += segmentLength
		prevRaw = raw
		prevPoint = point
	}

	t := (absOffsetX - distanceSoFar) / segmentLength
	placed := prevPoint.Lerp(point, t)
	segmentAngle := angle + float32(gomath.Atan2(
		float64(point.Y-prevPoint.Y),
		float64(point.X-prevPoint.X),
	))

	return GlyphPlacement{Point: placed, Angle: segmentAngle}, true
}

// offsetAnchorPoint projects the anchor onto the laterally offset line by
// shifting it along the offset normal of its own segment.
func offsetAnchorPoint(anchor math.Vec2, currentIndex, dir int, lineOffsetY float32,
	lineStartIndex, lineEndIndex int,
	ctx *ProjectionContext, args *SyntheticVertexArgs) (math.Vec2, bool) {

	nextIndex := currentIndex + dir
	if currentIndex < lineStartIndex || currentIndex > lineEndIndex ||
		nextIndex < lineStartIndex || nextIndex > lineEndIndex {
		return math.Vec2{}, false
	}

	from := ProjectLineVertex(currentIndex, ctx, args).Point
	to := ProjectLineVertex(nextIndex, ctx, args).Point

	normal := OffsetNormal(to.Sub(from), lineOffsetY, dir)
	return anchor.Add(normal), true
}

// PlaceFirstAndLastGlyph places only the outermost glyphs of a label. Used
// to probe whether a whole label fits and which way it reads before paying
// for every glyph; both placements must succeed.
func PlaceFirstAndLastGlyph(fontScale float32, glyphOffsets []float32,
	lineOffsetX, lineOffsetY float32, flip bool,
	anchorSegment, lineStartIndex, lineEndIndex int,
	ctx *ProjectionContext) (first, last GlyphPlacement, ok bool) {

	if len(glyphOffsets) == 0 {
		return GlyphPlacement{}, GlyphPlacement{}, false
	}

	first, ok = PlaceGlyphAlongLine(fontScale*glyphOffsets[0], lineOffsetX, lineOffsetY,
		flip, anchorSegment, lineStartIndex, lineEndIndex, ctx)
	if !ok {
		return GlyphPlacement{}, GlyphPlacement{}, false
	}

	last, ok = PlaceGlyphAlongLine(fontScale*glyphOffsets[len(glyphOffsets)-1], lineOffsetX, lineOffsetY,
		flip, anchorSegment, lineStartIndex, lineEndIndex, ctx)
	if !ok {
		return GlyphPlacement{}, GlyphPlacement{}, false
	}

	return first, last, true
}
