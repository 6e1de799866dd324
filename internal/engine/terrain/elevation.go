// Package terrain provides elevation sampling for draping labels over a
// heightfield. Symbol projection queries it per vertex through an
// elevation callback so flat maps pay nothing.
package terrain

// ElevationGrid is a regular grid of elevation samples covering a tile.
// Samples are spaced CellSize tile units apart, row-major with Width
// samples per row.
type ElevationGrid struct {
	Samples  []float32
	Width    int
	Height   int
	CellSize float32
}

// NewElevationGrid wraps a sample grid. Returns nil if the dimensions do
// not match the sample slice or the spacing is not positive.
func NewElevationGrid(samples []float32, width, height int, cellSize float32) *ElevationGrid {
	if width < 2 || height < 2 || cellSize <= 0 || len(samples) != width*height {
		return nil
	}
	return &ElevationGrid{
		Samples:  samples,
		Width:    width,
		Height:   height,
		CellSize: cellSize,
	}
}

// ElevationAt returns the bilinearly interpolated elevation at a tile-unit
// position. Positions outside the grid clamp to the nearest edge cell.
func (g *ElevationGrid) ElevationAt(x, y float32) float32 {
	if g == nil {
		return 0
	}

	cellFX := x / g.CellSize
	cellFY := y / g.CellSize

	cellX := int(cellFX)
	cellY := int(cellFY)

	if cellX < 0 {
		cellX = 0
	}
	if cellY < 0 {
		cellY = 0
	}
	if cellX > g.Width-2 {
		cellX = g.Width - 2
	}
	if cellY > g.Height-2 {
		cellY = g.Height - 2
	}

	fracX := clampf(cellFX-float32(cellX), 0, 1)
	fracY := clampf(cellFY-float32(cellY), 0, 1)

	i := cellY*g.Width + cellX
	h00 := g.Samples[i]
	h10 := g.Samples[i+1]
	h01 := g.Samples[i+g.Width]
	h11 := g.Samples[i+g.Width+1]

	// Lerp along x on both rows, then along y between them.
	top := h00*(1-fracX) + h10*fracX
	bottom := h01*(1-fracX) + h11*fracX
	return top*(1-fracY) + bottom*fracY
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
