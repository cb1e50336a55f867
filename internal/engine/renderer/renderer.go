// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/decor"
	"github.com/Faultbox/glowtrail/internal/engine/camera"
	"github.com/Faultbox/glowtrail/internal/engine/framebuffer"
	"github.com/Faultbox/glowtrail/internal/engine/lighting"
	"github.com/Faultbox/glowtrail/internal/engine/mesh"
	"github.com/Faultbox/glowtrail/internal/engine/postfx"
	"github.com/Faultbox/glowtrail/internal/engine/shader"
	"github.com/Faultbox/glowtrail/internal/engine/shaders"
	"github.com/Faultbox/glowtrail/internal/logger"
	"github.com/Faultbox/glowtrail/pkg/math"
)

// Config holds renderer configuration. Colors are linear RGB.
type Config struct {
	Width  int
	Height int

	FovY float32
	Near float32
	Far  float32

	Background [3]float32
	FogColor   [3]float32
	FogDensity float32

	Lights lighting.Rig
	Bloom  postfx.Config
}

// DefaultConfig returns the stock scene look for a viewport.
func DefaultConfig(width, height int) Config {
	night := decor.Hex(0x101020).Linear().Array()
	return Config{
		Width:      width,
		Height:     height,
		FovY:       75,
		Near:       0.1,
		Far:        1000,
		Background: night,
		FogColor:   night,
		FogDensity: 0.05,
		Lights: lighting.Rig{
			Ambient: lighting.AmbientLight{
				Color:     decor.Hex(0x404040).Linear().Array(),
				Intensity: 1.5,
			},
			Point: lighting.PointLight{
				Position:  [3]float32{10, 10, 10},
				Color:     [3]float32{1, 1, 1},
				Range:     50,
				Intensity: 1.2,
			},
		},
		Bloom: postfx.DefaultConfig(),
	}
}

// Renderer draws the scene into an HDR target and post-processes it onto the window.
type Renderer struct {
	config Config
	camera *camera.Perspective

	meshProgram   *shader.Program
	lineProgram   *shader.Program
	pointsProgram *shader.Program

	scene *framebuffer.Framebuffer
	bloom *postfx.Bloom

	geometry map[geometryKey]*gpuGeometry
	objects  []*drawable
	clouds   []*pointCloud
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		camera:   camera.NewPerspective(cfg.FovY, cfg.Near, cfg.Far, cfg.Width, cfg.Height),
		geometry: make(map[geometryKey]*gpuGeometry),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var err error
	if r.meshProgram, err = shader.New("mesh", shaders.MeshVertexShader, shaders.MeshFragmentShader); err != nil {
		return nil, err
	}
	if r.lineProgram, err = shader.New("line", shaders.LineVertexShader, shaders.LineFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.pointsProgram, err = shader.New("points", shaders.PointsVertexShader, shaders.PointsFragmentShader); err != nil {
		r.Close()
		return nil, err
	}

	w, h := int32(cfg.Width), int32(cfg.Height)
	if r.scene, err = framebuffer.New(w, h, framebuffer.Options{HDR: true, Depth: true}); err != nil {
		r.Close()
		return nil, fmt.Errorf("scene target: %w", err)
	}
	if r.bloom, err = postfx.NewBloom(cfg.Bloom, w, h); err != nil {
		r.Close()
		return nil, fmt.Errorf("bloom: %w", err)
	}

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, c := range r.clouds {
		c.delete()
	}
	for _, g := range r.geometry {
		g.delete()
	}
	r.clouds, r.objects = nil, nil
	clear(r.geometry)

	if r.bloom != nil {
		r.bloom.Close()
		r.bloom = nil
	}
	if r.scene != nil {
		r.scene.Destroy()
		r.scene = nil
	}
	for _, p := range []*shader.Program{r.pointsProgram, r.lineProgram, r.meshProgram} {
		if p != nil {
			p.Delete()
		}
	}
}

// AddObject uploads obj and returns its handle. Objects sharing a shape share
// one set of GPU buffers.
func (r *Renderer) AddObject(obj decor.Object) int {
	key := geometryKey{kind: obj.Kind, geometry: obj.Geometry}
	g, ok := r.geometry[key]
	if !ok {
		g = uploadGeometry(key)
		r.geometry[key] = g
		logger.Debug("geometry uploaded",
			zap.Stringer("kind", obj.Kind),
			zap.Int32("elements", g.count),
		)
	}

	d := &drawable{
		geometry:  g,
		color:     obj.Material.Color.Linear().Array(),
		emissive:  obj.Material.Emissive.Linear().Array(),
		roughness: obj.Material.Roughness,
		metalness: obj.Material.Metalness,
		opacity:   obj.Material.Opacity,
	}
	d.setTransform(obj.Position, obj.Rotation)
	r.objects = append(r.objects, d)
	return len(r.objects) - 1
}

// AddPoints uploads a point cloud.
func (r *Renderer) AddPoints(pc decor.PointCloud) {
	r.clouds = append(r.clouds, uploadPoints(pc))
}

// SetCamera places the view.
func (r *Renderer) SetCamera(eye, target r3.Vec) {
	r.camera.LookAt(eye, target)
}

// SetTransform moves the object behind handle. Unknown handles are ignored.
func (r *Renderer) SetTransform(handle int, position, rotation r3.Vec) {
	if handle < 0 || handle >= len(r.objects) {
		return
	}
	r.objects[handle].setTransform(position, rotation)
}

// Resize handles window resize. Sizes are in drawable pixels.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	r.camera.SetSize(width, height)
	r.scene.Resize(int32(width), int32(height))
	r.bloom.Resize(int32(width), int32(height))
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current drawable size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Render draws one frame to the window.
func (r *Renderer) Render() {
	r.scene.Bind()
	bg := r.config.Background
	r.scene.Clear(bg[0], bg[1], bg[2], 1)
	gl.Enable(gl.DEPTH_TEST)

	view := r.camera.ViewMatrix()
	proj := r.camera.ProjectionMatrix()

	r.drawMeshes(view, proj)
	r.drawLines(view, proj)
	r.drawPoints(view, proj)

	r.bloom.Apply(r.scene.ColorTexture(), 0, int32(r.config.Width), int32(r.config.Height))
}

func (r *Renderer) setFog(p *shader.Program) {
	p.SetVec3("uFogColor", r.config.FogColor)
	p.SetFloat("uFogDensity", r.config.FogDensity)
}

func (r *Renderer) drawMeshes(view, proj math.Mat4) {
	p := r.meshProgram
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	p.SetVec3("uCameraPos", r.camera.Eye.Array())
	r.config.Lights.Upload(p)
	r.setFog(p)

	for _, d := range r.objects {
		if d.geometry.mode != gl.TRIANGLES {
			continue
		}
		p.SetMat4("uModel", d.model)
		p.SetMat3("uNormalMatrix", d.model.Mat3x3())
		p.SetVec3("uColor", d.color)
		p.SetVec3("uEmissive", d.emissive)
		p.SetFloat("uRoughness", d.roughness)
		p.SetFloat("uMetalness", d.metalness)
		p.SetFloat("uOpacity", d.opacity)
		d.geometry.draw()
	}
}

func (r *Renderer) drawLines(view, proj math.Mat4) {
	p := r.lineProgram
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	r.setFog(p)

	for _, d := range r.objects {
		if d.geometry.mode != gl.LINES {
			continue
		}
		p.SetMat4("uModel", d.model)
		p.SetVec3("uColor", d.color)
		p.SetFloat("uOpacity", d.opacity)
		d.geometry.draw()
	}
}

func (r *Renderer) drawPoints(view, proj math.Mat4) {
	if len(r.clouds) == 0 {
		return
	}
	p := r.pointsProgram
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	p.SetFloat("uScale", float32(r.config.Height)/2)
	r.setFog(p)

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	for _, c := range r.clouds {
		p.SetVec3("uColor", c.color)
		p.SetFloat("uOpacity", c.opacity)
		p.SetFloat("uSize", c.size)
		c.draw()
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// ReadFrame returns the window's back buffer as RGBA8, bottom row first.
// Call after Render and before the buffer swap.
func (r *Renderer) ReadFrame() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// meshFor builds the CPU geometry for a shape.
func meshFor(key geometryKey) (*mesh.Mesh, *mesh.Lines) {
	g := key.geometry
	switch key.kind {
	case decor.KindTorus:
		return mesh.Torus(float32(g.Radius), float32(g.Tube), g.RadialSegments, g.TubularSegments), nil
	case decor.KindTorusEdges:
		solid := mesh.Torus(float32(g.Radius), float32(g.Tube), g.RadialSegments, g.TubularSegments)
		return nil, mesh.Edges(solid, mesh.DefaultEdgeThreshold)
	default:
		return mesh.Icosahedron(float32(g.Radius)), nil
	}
}
