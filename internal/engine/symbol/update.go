package symbol

import (
	"github.com/Faultbox/linelabel/internal/engine/camera"
	"github.com/Faultbox/linelabel/pkg/math"
)

const (
	// offscreenCoord parks hidden glyph vertices far outside clip space so
	// buffer regions stay allocated and disjoint even for invisible labels.
	offscreenCoord = -1e9

	// clipBufferPixels extends the anchor visibility check past the
	// viewport edge so labels slide in instead of popping.
	clipBufferPixels = 256

	// glyphBaseSize is the layout font size glyph and line offsets are
	// measured at.
	glyphBaseSize = 24
)

// DynamicLayoutVertexArray accumulates the per-frame glyph attributes
// uploaded to the GPU: four vertices per glyph quad, each carrying the quad
// center and rotation.
type DynamicLayoutVertexArray struct {
	data []float32
}

// Reset discards the previous frame's contents, keeping capacity.
func (a *DynamicLayoutVertexArray) Reset() {
	a.data = a.data[:0]
}

// AddGlyph appends the four corner vertices of one glyph quad.
func (a *DynamicLayoutVertexArray) AddGlyph(x, y, angle float32) {
	for i := 0; i < 4; i++ {
		a.data = append(a.data, x, y, angle)
	}
}

// Data returns the packed vertex attributes for upload.
func (a *DynamicLayoutVertexArray) Data() []float32 {
	return a.data
}

// Len returns the vertex count.
func (a *DynamicLayoutVertexArray) Len() int {
	return len(a.data) / 3
}

// PlacedSymbol is one line-following label as produced by the layout pass.
// GlyphOffsets are along-line offsets from the anchor, measured at the
// layout font size; LineOffsetX/Y shift the whole label along and across
// the line in the same units.
type PlacedSymbol struct {
	Anchor        math.Vec2 // tile units
	AnchorSegment int       // vertex index starting the anchor's segment

	LineStartIndex int
	LineEndIndex   int

	GlyphOffsets []float32
	LineOffsetX  float32
	LineOffsetY  float32

	// Hidden is set by the upstream collision pass; hidden symbols still
	// emit off-screen vertices to keep buffer regions stable.
	Hidden bool
}

// Bucket groups the line-placed symbols of one tile layer with their shared
// line geometry and output vertex array.
type Bucket struct {
	Symbols  []PlacedSymbol
	Lines    LineVertexArray
	Dynamic  DynamicLayoutVertexArray
	FontSize float32
}

// UpdateLineLabels is the per-frame driver: for every symbol in the bucket
// it re-derives the label-plane matrix for the current camera, re-places
// every glyph along the line, and writes positions and rotations into the
// bucket's dynamic vertex array. Symbols whose anchor is off screen, whose
// walk runs off the line, or whose line dips behind the camera are written
// off screen instead.
func UpdateLineLabels(bucket *Bucket, cam *camera.Camera, mode PlaneAlignment,
	keepUpright, rotateToLine bool, tile TileID, translation math.Vec2,
	elevation ElevationFunc) {

	bucket.Dynamic.Reset()

	scale := PixelsToTileUnits(cam, tile)
	labelPlane := LabelPlaneMatrix(mode, cam, scale)
	tileMatrix := TileMatrix(cam, tile)

	cache := NewProjectionCache()

	for i := range bucket.Symbols {
		sym := &bucket.Symbols[i]

		if sym.Hidden {
			hideGlyphs(&bucket.Dynamic, len(sym.GlyphOffsets))
			continue
		}

		// Anchor pre-check: skip all placement work for symbols whose
		// anchor projects behind the camera or outside the padded viewport.
		anchor := sym.Anchor.Add(translation)
		v := tileMatrix.MulVec4(math.Vec4{anchor.X, anchor.Y, 0, 1})
		if v[3] <= 0 || !insideClipBuffer(v[0]/v[3], v[1]/v[3], cam) {
			hideGlyphs(&bucket.Dynamic, len(sym.GlyphOffsets))
			continue
		}

		fontScale := bucket.FontSize / glyphBaseSize
		if mode.AlignedWithMap() {
			fontScale *= perspectiveRatio(v[3])
		} else {
			fontScale /= perspectiveRatio(v[3])
		}

		cache.Reset()
		ctx := &ProjectionContext{
			Vertices:    &bucket.Lines,
			Cache:       cache,
			LabelPlane:  labelPlane,
			Elevation:   elevation,
			TileAnchor:  sym.Anchor,
			Alignment:   mode,
			Tile:        tile,
			Camera:      cam,
			Translation: translation,
		}

		placements, ok := placeGlyphsAlongLine(sym, fontScale, keepUpright && rotateToLine, ctx)
		if !ok || cache.AnyOccluded() {
			hideGlyphs(&bucket.Dynamic, len(sym.GlyphOffsets))
			continue
		}

		for _, pl := range placements {
			angle := pl.Angle
			if !rotateToLine {
				angle = 0
			}
			bucket.Dynamic.AddGlyph(pl.Point.X, pl.Point.Y, angle)
		}
	}
}

// placeGlyphsAlongLine places every glyph of one symbol. With keepUpright
// it first probes the outermost glyphs unflipped; if the label would read
// backwards in the label plane, the whole placement reruns flipped.
func placeGlyphsAlongLine(sym *PlacedSymbol, fontScale float32, keepUpright bool,
	ctx *ProjectionContext) ([]GlyphPlacement, bool) {

	lineOffsetX := sym.LineOffsetX * fontScale
	lineOffsetY := sym.LineOffsetY * fontScale

	flip := false
	if keepUpright {
		first, last, ok := PlaceFirstAndLastGlyph(fontScale, sym.GlyphOffsets,
			lineOffsetX, lineOffsetY, false,
			sym.AnchorSegment, sym.LineStartIndex, sym.LineEndIndex, ctx)
		if !ok {
			return nil, false
		}
		flip = first.Point.X > last.Point.X
	}

	placements := make([]GlyphPlacement, 0, len(sym.GlyphOffsets))
	for _, offset := range sym.GlyphOffsets {
		p, ok := PlaceGlyphAlongLine(offset*fontScale, lineOffsetX, lineOffsetY, flip,
			sym.AnchorSegment, sym.LineStartIndex, sym.LineEndIndex, ctx)
		if !ok {
			return nil, false
		}
		placements = append(placements, p)
	}
	return placements, true
}

// perspectiveRatio compensates glyph size for depth: the perspective stack
// normalizes w to 1 at the screen center, so w is the anchor's relative
// distance from the camera.
func perspectiveRatio(w float32) float32 {
	return 0.5 + 0.5/w
}

func hideGlyphs(dyn *DynamicLayoutVertexArray, count int) {
	for i := 0; i < count; i++ {
		dyn.AddGlyph(offscreenCoord, offscreenCoord, 0)
	}
}

func insideClipBuffer(clipX, clipY float32, cam *camera.Camera) bool {
	bx := float32(1)
	by := float32(1)
	if cam.Width > 0 {
		bx += 2 * clipBufferPixels / cam.Width
	}
	if cam.Height > 0 {
		by += 2 * clipBufferPixels / cam.Height
	}
	return clipX >= -bx && clipX <= bx && clipY >= -by && clipY <= by
}
