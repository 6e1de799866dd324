package symbol

import (
	"github.com/Faultbox/linelabel/internal/engine/camera"
	"github.com/Faultbox/linelabel/pkg/math"
)

// ElevationFunc samples terrain height at a tile-local position. It must be
// side-effect free; the pipeline may call it once per vertex per frame.
type ElevationFunc func(x, y float32) float32

// nearPlaneW is the homogeneous depth a behind-camera vertex is pulled
// forward to when synthesizing its replacement.
const nearPlaneW = 1e-5

// PointProjection is the result of pushing a point through a projection
// matrix: the divided position and the signed homogeneous depth before the
// divide.
type PointProjection struct {
	Point math.Vec2
	W     float32
}

// Behind reports whether the point fell on or behind the camera's near
// plane. The Point of a behind projection is not meaningful on its own;
// callers must substitute a clamped point.
func (p PointProjection) Behind() bool {
	return p.W <= 0
}

// ProjectPoint transforms a tile-local point (with optional elevation) by
// the given matrix. Pure function, no cache interaction.
func ProjectPoint(x, y, elevation float32, m math.Mat4) PointProjection {
	v := m.MulVec4(math.Vec4{x, y, elevation, 1})
	w := v[3]
	if w > 0 {
		return PointProjection{Point: math.Vec2{X: v[0] / w, Y: v[1] / w}, W: w}
	}
	return PointProjection{Point: math.Vec2{X: v[0], Y: v[1]}, W: w}
}

// VertexProjectionKind tags how a line vertex reached the label plane.
type VertexProjectionKind uint8

const (
	// VertexProjected is a straight matrix projection in front of the
	// camera.
	VertexProjected VertexProjectionKind = iota
	// VertexClampedAtNearPlane replaced a behind-camera vertex with a
	// synthesized point at the visibility boundary.
	VertexClampedAtNearPlane
)

// VertexProjection is a label-plane point with its provenance. Clamped
// points are safe to use for layout but mark the placement pass occluded.
type VertexProjection struct {
	Point math.Vec2
	Kind  VertexProjectionKind
}

// Occluded reports whether this vertex had to be clamped.
func (v VertexProjection) Occluded() bool {
	return v.Kind == VertexClampedAtNearPlane
}

// offsetKey caches offset-line corners per vertex and per side of the line,
// so the two halves of a boundary label never share a corner solution.
type offsetKey struct {
	index int
	side  int8
}

// ProjectionCache memoizes projections within one placement pass over one
// anchor. It is caller-owned: construct once, Reset before each pass, never
// share across frames.
type ProjectionCache struct {
	projections map[int]VertexProjection
	offsets     map[offsetKey]math.Vec2
	anchor      math.Vec2
	anchorSet   bool
	anyOccluded bool
}

// NewProjectionCache returns an empty cache ready for a placement pass.
func NewProjectionCache() *ProjectionCache {
	return &ProjectionCache{
		projections: make(map[int]VertexProjection),
		offsets:     make(map[offsetKey]math.Vec2),
	}
}

// Reset clears all memoized state for the next anchor.
func (c *ProjectionCache) Reset() {
	for k := range c.projections {
		delete(c.projections, k)
	}
	for k := range c.offsets {
		delete(c.offsets, k)
	}
	c.anchor = math.Vec2{}
	c.anchorSet = false
	c.anyOccluded = false
}

// AnyOccluded reports whether any vertex in the current pass was clamped at
// the near plane.
func (c *ProjectionCache) AnyOccluded() bool {
	return c.anyOccluded
}

// ProjectionContext is the immutable per-pass bundle threaded through every
// projection and offset call.
type ProjectionContext struct {
	Vertices    *LineVertexArray
	Cache       *ProjectionCache
	LabelPlane  math.Mat4
	Elevation   ElevationFunc // nil means flat terrain
	TileAnchor  math.Vec2     // anchor position in tile units
	Alignment   PlaneAlignment
	Tile        TileID
	Camera      *camera.Camera
	Translation math.Vec2 // paint-time tile-unit shift
}

// SyntheticVertexArgs carries the walk state needed to fabricate a vertex
// when the true next vertex projects behind the camera.
type SyntheticVertexArgs struct {
	DistanceFromAnchor float32
	AbsOffsetX         float32
	PreviousVertex     math.Vec2 // last successfully projected label-plane point
	Direction          int       // +1 forward, -1 backward
}

// transformTileCoordinate applies the paint-time translation and, on a
// globe, the tile's wrap shift to a tile-local point.
func (ctx *ProjectionContext) transformTileCoordinate(p math.Vec2) math.Vec2 {
	p = p.Add(ctx.Translation)
	if ctx.Camera.Projection == camera.ProjectionGlobe {
		p.X += ctx.Tile.WrapShift()
	}
	return p
}

// projectTileCoordinate projects an arbitrary tile-local point into the
// label plane, sampling elevation and resolving wrap.
func (ctx *ProjectionContext) projectTileCoordinate(p math.Vec2) PointProjection {
	t := ctx.transformTileCoordinate(p)
	var elevation float32
	if ctx.Elevation != nil {
		elevation = ctx.Elevation(p.X, p.Y)
	}
	return ProjectPoint(t.X, t.Y, elevation, ctx.LabelPlane)
}

// anchorLabelPoint returns the anchor's label-plane position, memoized in
// the cache for the duration of the pass.
func anchorLabelPoint(ctx *ProjectionContext) math.Vec2 {
	if ctx.Cache.anchorSet {
		return ctx.Cache.anchor
	}
	proj := ctx.projectTileCoordinate(ctx.TileAnchor)
	ctx.Cache.anchor = proj.Point
	ctx.Cache.anchorSet = true
	return proj.Point
}

// ProjectLineVertex projects line vertex index into the label plane. Cache
// hits return immediately. A vertex behind the camera is never returned
// raw: a replacement is synthesized on the segment from the previous good
// point toward the near-plane crossing, pushed just far enough to cover the
// walk's remaining offset budget, and the pass is marked occluded. The
// clamped point is cached like any other. args may be nil only when the
// caller knows the vertex projects in front of the camera.
func ProjectLineVertex(index int, ctx *ProjectionContext, args *SyntheticVertexArgs) VertexProjection {
	if p, ok := ctx.Cache.projections[index]; ok {
		return p
	}

	proj := ctx.projectTileCoordinate(ctx.Vertices.Point(index))

	var result VertexProjection
	if !proj.Behind() {
		result = VertexProjection{Point: proj.Point, Kind: VertexProjected}
	} else {
		result = VertexProjection{
			Point: clampToNearPlane(index, proj, ctx, args),
			Kind:  VertexClampedAtNearPlane,
		}
		ctx.Cache.anyOccluded = true
	}

	ctx.Cache.projections[index] = result
	return result
}

// clampToNearPlane synthesizes a stand-in for a behind-camera vertex. The
// previous vertex on the walk projected in front of the camera, so the
// segment between them crosses the near plane; interpolating the
// homogeneous coordinates to that crossing gives the direction the segment
// leaves the screen in. The stand-in sits on that direction at the minimum
// length that still satisfies the glyph's remaining along-line offset.
func clampToNearPlane(index int, behind PointProjection, ctx *ProjectionContext, args *SyntheticVertexArgs) math.Vec2 {
	prevIndex := index - args.Direction
	if prevIndex < 0 || prevIndex >= ctx.Vertices.Len() {
		return args.PreviousVertex
	}
	prev := ctx.projectTileCoordinate(ctx.Vertices.Point(prevIndex))
	if prev.Behind() {
		// Both ends behind the camera; nothing to interpolate along.
		return args.PreviousVertex
	}

	// Homogeneous positions: prev undoes its divide, behind is still raw.
	pv := math.Vec4{prev.Point.X * prev.W, prev.Point.Y * prev.W, 0, prev.W}
	bv := math.Vec4{behind.Point.X, behind.Point.Y, 0, behind.W}

	t := (pv[3] - nearPlaneW) / (pv[3] - bv[3])
	crossing := math.Vec2{
		X: (pv[0] + (bv[0]-pv[0])*t) / nearPlaneW,
		Y: (pv[1] + (bv[1]-pv[1])*t) / nearPlaneW,
	}

	unit := crossing.Sub(args.PreviousVertex).Normalize()
	minLength := args.AbsOffsetX - args.DistanceFromAnchor + 1
	if minLength < 1 {
		minLength = 1
	}
	return args.PreviousVertex.Add(unit.Scale(minLength))
}
