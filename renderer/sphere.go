// Package renderer provides the raylib backends for the globe: a lit 3D
// sphere rendered into an offscreen texture and a 2D overlay canvas.
package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbis/surface"
)

//go:embed shaders/sphere.vs
var sphereVS string

//go:embed shaders/sphere.fs
var sphereFS string

// SphereParams configures the sphere surface.
type SphereParams struct {
	Rings, Slices int
	BaseDistance  float64 // camera distance at BaseScale
	BaseScale     float64 // projection scale (globe radius px) matching BaseDistance
}

// SphereSurface renders a unit sphere into a render texture that Present
// composites behind the 2D overlay.
type SphereSurface struct {
	params SphereParams

	target rl.RenderTexture2D
	shader rl.Shader

	lightLoc int32
	rimLoc   int32
	tintLoc  int32

	mesh       rl.Mesh
	material   rl.Material
	blank      rl.Texture2D
	transform  rl.Matrix
	texture    rl.Texture2D
	hasMesh    bool
	hasTexture bool
	tint       rl.Color

	camera  rl.Camera3D
	width   int
	height  int
	visible bool
	closed  bool
}

// NewSurface creates the sphere surface. It must be called after the raylib
// window exists. Partial allocations are released on failure and the error
// wraps surface.ErrUnavailable.
func NewSurface(width, height int, p SphereParams) (s *SphereSurface, err error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("%w: window not ready", surface.ErrUnavailable)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", surface.ErrUnavailable, width, height)
	}

	s = &SphereSurface{
		params: p,
		tint:   rl.NewColor(70, 110, 170, 255),
	}
	defer func() {
		if err != nil {
			s.Close()
			s = nil
		}
	}()

	s.target = rl.LoadRenderTexture(int32(width), int32(height))
	if s.target.ID == 0 {
		return s, fmt.Errorf("%w: render texture allocation failed", surface.ErrUnavailable)
	}
	s.width, s.height = width, height

	s.shader = rl.LoadShaderFromMemory(sphereVS, sphereFS)
	if s.shader.ID == 0 {
		return s, fmt.Errorf("%w: sphere shader failed to compile", surface.ErrUnavailable)
	}
	s.lightLoc = rl.GetShaderLocation(s.shader, "lightDir")
	s.rimLoc = rl.GetShaderLocation(s.shader, "rimColor")
	s.tintLoc = rl.GetShaderLocation(s.shader, "baseTint")
	rl.SetShaderValue(s.shader, s.lightLoc, []float32{-0.4, -0.3, -1}, rl.ShaderUniformVec3)
	rl.SetShaderValue(s.shader, s.rimLoc, []float32{0.25, 0.5, 0.95}, rl.ShaderUniformVec3)

	img := rl.GenImageColor(1, 1, rl.White)
	s.blank = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if s.blank.ID == 0 {
		return s, fmt.Errorf("%w: texture upload failed", surface.ErrUnavailable)
	}

	s.material = rl.LoadMaterialDefault()
	s.material.Shader = s.shader
	rl.SetMaterialTexture(&s.material, rl.MapDiffuse, s.blank)

	s.camera = rl.Camera3D{
		Position:   rl.NewVector3(0, 0, float32(p.BaseDistance)),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Projection: rl.CameraPerspective,
	}
	s.updateFovy()

	slog.Info("sphere surface ready", "width", width, "height", height)
	return s, nil
}

// FieldOfView returns the vertical field of view in degrees at which a unit
// sphere seen from distance appears with radius scale pixels on a screen of
// the given height.
func FieldOfView(screenHeight, scale, distance float64) float64 {
	if scale <= 0 || distance <= 1 {
		return 45
	}
	// Silhouette half-angle of a unit sphere is asin(1/d); its screen radius
	// is (h/2)·tan(asin(1/d))/tan(fov/2).
	tanSil := 1 / math.Sqrt(distance*distance-1)
	return 2 * math.Atan(screenHeight/2*tanSil/scale) * 180 / math.Pi
}

func (s *SphereSurface) updateFovy() {
	screenH := float64(rl.GetScreenHeight())
	if screenH <= 0 {
		screenH = float64(s.height)
	}
	s.camera.Fovy = float32(FieldOfView(screenH, s.params.BaseScale, s.params.BaseDistance))
}

func (s *SphereSurface) Available() bool {
	return !s.closed
}

// Resize reallocates the render texture at the new resolution.
func (s *SphereSurface) Resize(width, height int) {
	if s.closed || width <= 0 || height <= 0 || (width == s.width && height == s.height) {
		return
	}
	target := rl.LoadRenderTexture(int32(width), int32(height))
	if target.ID == 0 {
		slog.Warn("sphere resize failed, keeping previous target", "width", width, "height", height)
		return
	}
	rl.UnloadRenderTexture(s.target)
	s.target = target
	s.width, s.height = width, height
	s.visible = false
	s.updateFovy()
}

// Load builds the sphere mesh and binds the first texture that loads.
func (s *SphereSurface) Load(textures []string) error {
	if s.closed {
		return surface.ErrUnavailable
	}
	s.Unload()

	s.mesh = rl.GenMeshSphere(1, s.params.Rings, s.params.Slices)
	s.transform = rl.MatrixIdentity()
	s.hasMesh = true

	var errs []error
	for _, path := range textures {
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, fmt.Errorf("texture %s: %w", path, err))
			continue
		}
		tex := rl.LoadTexture(path)
		if tex.ID == 0 {
			errs = append(errs, fmt.Errorf("texture %s: decode failed", path))
			continue
		}
		rl.SetTextureFilter(tex, rl.FilterBilinear)
		rl.SetMaterialTexture(&s.material, rl.MapDiffuse, tex)
		s.texture = tex
		s.hasTexture = true
		return nil
	}
	return errors.Join(errs...)
}

// Unload releases the mesh and texture. The shader and material are shared
// across loads and survive until Close.
func (s *SphereSurface) Unload() {
	if s.hasTexture {
		rl.SetMaterialTexture(&s.material, rl.MapDiffuse, s.blank)
		rl.UnloadTexture(s.texture)
		s.hasTexture = false
	}
	if s.hasMesh {
		rl.UnloadMesh(&s.mesh)
		s.hasMesh = false
	}
	s.visible = false
}

// SetCameraDistance moves the camera along the view axis.
func (s *SphereSurface) SetCameraDistance(d float64) {
	s.camera.Position = rl.NewVector3(0, 0, float32(d))
}

// SetRotation applies yaw around Y first, then tilt around X.
func (s *SphereSurface) SetRotation(x, y float64) {
	if !s.hasMesh {
		return
	}
	s.transform = rl.MatrixMultiply(rl.MatrixRotateY(float32(y)), rl.MatrixRotateX(float32(x)))
}

// Render draws the sphere into the render texture.
func (s *SphereSurface) Render() {
	if s.closed {
		return
	}
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	if s.hasMesh {
		tint := rl.White
		if !s.hasTexture {
			tint = s.tint
		}
		rl.SetShaderValue(s.shader, s.tintLoc, []float32{
			float32(tint.R) / 255, float32(tint.G) / 255, float32(tint.B) / 255, 1,
		}, rl.ShaderUniformVec4)
		rl.BeginMode3D(s.camera)
		rl.DrawMesh(s.mesh, s.material, s.transform)
		rl.EndMode3D()
	}
	rl.EndTextureMode()
	s.visible = s.hasMesh
}

// Clear empties the render texture so nothing is composited.
func (s *SphereSurface) Clear() {
	if s.closed || !s.visible {
		return
	}
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
	s.visible = false
}

// Present draws the last rendered sphere over the whole window.
func (s *SphereSurface) Present() {
	if s.closed || !s.visible {
		return
	}
	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(s.target.Texture.Width), -float32(s.target.Texture.Height))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(s.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Close releases all GPU resources.
func (s *SphereSurface) Close() {
	if s.closed {
		return
	}
	s.Unload()
	if s.blank.ID != 0 {
		rl.UnloadTexture(s.blank)
	}
	if s.shader.ID != 0 {
		rl.UnloadShader(s.shader)
	}
	if s.target.ID != 0 {
		rl.UnloadRenderTexture(s.target)
	}
	s.closed = true
	s.visible = false
}
