package main

import (
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/linelabel/internal/config"
	"github.com/Faultbox/linelabel/internal/engine/buffer"
	"github.com/Faultbox/linelabel/internal/engine/camera"
	"github.com/Faultbox/linelabel/internal/engine/shader"
	"github.com/Faultbox/linelabel/internal/engine/symbol"
	"github.com/Faultbox/linelabel/internal/engine/terrain"
	"github.com/Faultbox/linelabel/internal/engine/window"
	"github.com/Faultbox/linelabel/internal/logger"
	"github.com/Faultbox/linelabel/pkg/math"
)

const vertexShaderSrc = `#version 410 core
layout (location = 0) in vec3 aVertex; // x, y in label plane, glyph angle

uniform mat4 uClip;

out float vAngle;

void main() {
    gl_Position = uClip * vec4(aVertex.xy, 0.0, 1.0);
    gl_PointSize = 8.0;
    vAngle = aVertex.z;
}
`

const fragmentShaderSrc = `#version 410 core
in float vAngle;

out vec4 fragColor;

void main() {
    // Hue the marker by its tangent angle so rotation is visible.
    vec3 tint = 0.5 + 0.5 * vec3(cos(vAngle), cos(vAngle + 2.094), cos(vAngle + 4.189));
    fragColor = vec4(tint, 1.0);
}
`

// demo owns the window, GL resources, and the symbol bucket being animated.
type demo struct {
	cfg    *config.Config
	win    *window.Window
	cam    *camera.Camera
	bucket *symbol.Bucket
	tile   symbol.TileID

	translation math.Vec2
	elevation   symbol.ElevationFunc
	mode        symbol.PlaneAlignment

	program uint32
	uClip   int32
	vao     uint32
	vbo     *buffer.Dynamic
}

func newDemo(cfg *config.Config) (*demo, error) {
	win, err := window.New(window.Config{
		Title:      "linelabel demo",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		win.Close()
		return nil, err
	}

	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		win.Close()
		return nil, err
	}

	d := &demo{
		cfg:     cfg,
		win:     win,
		program: program,
		uClip:   shader.MustGetUniform(program, "uClip"),
		vbo:     buffer.NewDynamic(),
		mode:    planeMode(cfg.Labels),
	}

	d.cam = camera.New(float32(cfg.Graphics.Width), float32(cfg.Graphics.Height))
	d.cam.Bearing = radians(cfg.Camera.Bearing)
	d.cam.Pitch = radians(cfg.Camera.Pitch)
	d.cam.Roll = radians(cfg.Camera.Roll)
	d.cam.Zoom = cfg.Camera.Zoom

	d.tile = symbol.TileID{Z: uint8(cfg.Camera.Zoom)}
	d.buildScene()

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	d.vbo.Bind()
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	logger.Info("demo ready",
		zap.Int("symbols", len(d.bucket.Symbols)),
		zap.Float32("font_size", d.bucket.FontSize),
	)
	return d, nil
}

// buildScene lays out a few roads across the tile and a label on each. The
// tile center is translated onto the camera target so the scene fills the
// viewport.
func (d *demo) buildScene() {
	const center = symbol.Extent / 2
	d.translation = math.Vec2{X: -center, Y: -center}

	grid := terrain.NewElevationGrid(rollingHills(9, 9), 9, 9, symbol.Extent/8)
	d.elevation = grid.ElevationAt

	d.bucket = &symbol.Bucket{FontSize: d.cfg.Labels.FontSize}

	roads := [][]math.Vec2{
		// A long diagonal avenue.
		{{X: center - 1800, Y: center - 1200}, {X: center - 600, Y: center - 300},
			{X: center + 700, Y: center + 250}, {X: center + 1900, Y: center + 1100}},
		// A switchback.
		{{X: center - 1500, Y: center + 900}, {X: center - 500, Y: center + 500},
			{X: center - 400, Y: center + 1400}, {X: center + 800, Y: center + 1000}},
		// A straight east-west street.
		{{X: center - 2000, Y: center - 1800}, {X: center + 2000, Y: center - 1800}},
	}

	for _, road := range roads {
		first, last := d.bucket.Lines.AppendFeature(road)
		mid := len(road) / 2
		d.bucket.Symbols = append(d.bucket.Symbols, symbol.PlacedSymbol{
			Anchor:         road[mid-1].Lerp(road[mid], 0.5),
			AnchorSegment:  first + mid - 1,
			LineStartIndex: first,
			LineEndIndex:   last,
			GlyphOffsets:   labelGlyphs(9),
		})
	}
}

// labelGlyphs fakes a label of n glyphs spaced one em apart, centered on
// the anchor.
func labelGlyphs(n int) []float32 {
	offsets := make([]float32, n)
	for i := range offsets {
		offsets[i] = float32(i-n/2) * 24
	}
	return offsets
}

// rollingHills generates a smooth synthetic heightfield.
func rollingHills(w, h int) []float32 {
	samples := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			samples[y*w+x] = 120 * float32(gomath.Sin(float64(x)*0.8)*gomath.Cos(float64(y)*0.6))
		}
	}
	return samples
}

func planeMode(labels config.LabelsConfig) symbol.PlaneAlignment {
	switch {
	case labels.Pitched && labels.RotateWithMap:
		return symbol.MapAlignedMapRotated
	case labels.Pitched:
		return symbol.MapAlignedViewportRotated
	case labels.RotateWithMap:
		return symbol.ViewportAlignedMapRotated
	default:
		return symbol.ViewportAlignedViewportRotated
	}
}

// Run drives the frame loop until the window closes.
func (d *demo) Run() error {
	last := sdl.GetTicks64()

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					return nil
				}
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					d.resize(int(e.Data1), int(e.Data2))
				}
			}
		}

		now := sdl.GetTicks64()
		dt := float32(now-last) / 1000
		last = now

		if d.cfg.Camera.Animate {
			d.cam.Bearing += 0.25 * dt
			d.cam.Pitch = radians(d.cfg.Camera.Pitch) +
				0.3*float32(gomath.Sin(float64(now)/4000))
		}

		d.frame()
		d.win.SwapBuffers()
	}
}

// frame re-places every label for the current camera and draws the result.
func (d *demo) frame() {
	symbol.UpdateLineLabels(d.bucket, d.cam, d.mode,
		d.cfg.Labels.KeepUpright, d.cfg.Labels.RotateWithMap,
		d.tile, d.translation, d.elevation)

	gl.ClearColor(0.09, 0.1, 0.12, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	data := d.bucket.Dynamic.Data()
	if len(data) == 0 {
		return
	}
	d.vbo.Upload(data)

	clip := symbol.ClipSpaceMatrix(d.mode, d.cam, symbol.PixelsToTileUnits(d.cam, d.tile))

	gl.UseProgram(d.program)
	gl.UniformMatrix4fv(d.uClip, 1, false, clip.Ptr())
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(d.bucket.Dynamic.Len()))
}

func (d *demo) resize(w, h int) {
	d.cam.Width = float32(w)
	d.cam.Height = float32(h)
	gl.Viewport(0, 0, int32(w), int32(h))
}

// Close releases GL resources and the window.
func (d *demo) Close() {
	if d.vbo != nil {
		d.vbo.Delete()
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	if d.program != 0 {
		gl.DeleteProgram(d.program)
	}
	if d.win != nil {
		d.win.Close()
	}
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180
}
