// Package renderer draws the shapes of a scene.Memory with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/internal/engine/shader"
	"github.com/Faultbox/solar-roi/internal/logger"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// Camera supplies the matrices for geometry relative to an origin.
type Camera interface {
	ViewMatrixFrom(origin math.Vec3) math.Mat4
	ProjectionMatrix() math.Mat4
}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// Model is the box drawn for each model instance.
	Model ModelBox
	// LineWidth is a hint; core profiles may clamp it to 1.
	LineWidth float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program uint32
	mvpLoc  int32

	lineVAO, lineVBO uint32
	fillVAO, fillVBO uint32

	geometry *Geometry
	version  uint64
	built    bool
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = shader.CompileProgram(shader.ColorVertex, shader.ColorFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.mvpLoc, err = shader.Uniform(r.program, "uMVP")
	if err != nil {
		gl.DeleteProgram(r.program)
		return nil, err
	}

	r.lineVAO, r.lineVBO = newColorBuffer()
	r.fillVAO, r.fillVBO = newColorBuffer()
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// newColorBuffer creates a VAO/VBO pair with the position and color layout.
func newColorBuffer() (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, vao := range []*uint32{&r.lineVAO, &r.fillVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&r.lineVBO, &r.fillVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize sets the GL viewport to the drawable size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawScene draws every shape of s relative to origin. Buffers are
// rebuilt only when the scene changed.
func (r *Renderer) DrawScene(s *scene.Memory, cam Camera, origin math.Vec3) {
	if v := s.Version(); !r.built || v != r.version || r.geometry.Origin != origin {
		r.geometry = Build(s.Shapes(), origin, r.config.Model)
		upload(r.lineVBO, r.geometry.Lines)
		upload(r.fillVBO, r.geometry.Triangles)
		r.version, r.built = v, true
		r.log.Debug("scene geometry rebuilt",
			zap.Uint64("version", v),
			zap.Int("line_vertices", r.geometry.LineVertices()),
			zap.Int("fill_vertices", r.geometry.TriangleVertices()))
	}

	mvp := cam.ProjectionMatrix().Mul(cam.ViewMatrixFrom(origin)).Float32()
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])

	if n := r.geometry.TriangleVertices(); n > 0 {
		// Fills are translucent and coplanar with their outlines.
		gl.DepthMask(false)
		gl.BindVertexArray(r.fillVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(n))
		gl.DepthMask(true)
	}
	if n := r.geometry.LineVertices(); n > 0 {
		if r.config.LineWidth > 0 {
			gl.LineWidth(r.config.LineWidth)
		}
		gl.BindVertexArray(r.lineVAO)
		gl.DrawArrays(gl.LINES, 0, int32(n))
	}
	gl.BindVertexArray(0)
}

func upload(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// ReadPixels reads back the current framebuffer as RGBA rows, bottom row
// first.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
