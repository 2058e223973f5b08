// Package render draws the universe with OpenGL and turns GLFW window input
// into device events for the navigation controller.
package render

import (
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-universe/internal/openglhelper"
	"github.com/leterax/go-universe/pkg/camera"
	"github.com/leterax/go-universe/pkg/input"
	"github.com/leterax/go-universe/pkg/shape"
	"github.com/leterax/go-universe/pkg/universe"
)

//go:embed shaders
var shaderFS embed.FS

// Config holds the window and projection settings
type Config struct {
	Width  int
	Height int
	Title  string
	VSync  bool
	// Vertical field of view in degrees
	FOV  float64
	Near float64
	Far  float64
}

// Renderer owns the window, the GL resources and the camera pose it draws
// from
type Renderer struct {
	cfg    Config
	window *openglhelper.Window
	shader *openglhelper.Shader
	// Sphere meshes by tessellation
	spheres map[int]*openglhelper.Mesh
	pose    camera.Pose

	fbWidth, fbHeight int
	cursorX, cursorY  float64

	onEvent func(input.Event) bool
	onChar  func(rune)
	logger  *slog.Logger

	lastFrameTime float64
	closed        bool
}

// NewRenderer opens the window and loads the body shader. It must be called
// from the locked main thread.
func NewRenderer(cfg Config, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FOV <= 0 {
		cfg.FOV = DefaultFOV
	}
	if cfg.Near <= 0 {
		cfg.Near = DefaultNear
	}
	if cfg.Far <= cfg.Near {
		cfg.Far = DefaultFar
	}

	window, err := openglhelper.NewWindow(cfg.Width, cfg.Height, cfg.Title, cfg.VSync)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	logger.Info("opened window", "gl", window.GLVersion(), "width", cfg.Width, "height", cfg.Height)

	shader, err := openglhelper.LoadShaderFromFS(shaderFS, "shaders/body.vert", "shaders/body.frag")
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("failed to load shader: %w", err)
	}

	r := &Renderer{
		cfg:     cfg,
		window:  window,
		shader:  shader,
		spheres: map[int]*openglhelper.Mesh{},
		pose:    camera.NewPose(mgl64.Vec3{0, 30, 100}),
		logger:  logger,
	}
	r.fbWidth, r.fbHeight = window.GLFWWindow().GetFramebufferSize()

	gw := window.GLFWWindow()
	gw.SetKeyCallback(r.keyCallback)
	gw.SetCharCallback(r.charCallback)
	gw.SetCursorPosCallback(r.cursorPosCallback)
	gw.SetMouseButtonCallback(r.mouseButtonCallback)
	gw.SetScrollCallback(r.scrollCallback)
	gw.SetFocusCallback(r.focusCallback)
	gw.SetSizeCallback(r.sizeCallback)
	gw.SetFramebufferSizeCallback(r.framebufferSizeCallback)

	return r, nil
}

// SetEventHandler installs the receiver of translated device events. The
// handler reports whether it consumed the event.
func (r *Renderer) SetEventHandler(h func(input.Event) bool) {
	r.onEvent = h
}

// SetCharHandler installs the receiver of typed text
func (r *Renderer) SetCharHandler(h func(rune)) {
	r.onChar = h
}

// CameraPose returns the pose the next frame is drawn from
func (r *Renderer) CameraPose() camera.Pose {
	return r.pose
}

// SetCameraPose sets the pose the next frame is drawn from
func (r *Renderer) SetCameraPose(p camera.Pose) {
	r.pose = p
}

// Cursor returns the last pointer position in window coordinates
func (r *Renderer) Cursor() (x, y float64) {
	return r.cursorX, r.cursorY
}

// ScreenRay returns the picking ray through a window position
func (r *Renderer) ScreenRay(x, y float64) (universe.Ray, bool) {
	w, h := r.window.Size()
	origin, dir, ok := r.pose.ScreenRay(x, y, float64(w), float64(h), mgl64.DegToRad(r.cfg.FOV))
	if !ok {
		return universe.Ray{}, false
	}
	return universe.Ray{Origin: origin, Direction: dir}, true
}

// SetTitle sets the window title
func (r *Renderer) SetTitle(title string) {
	r.window.SetTitle(title)
}

// ToggleFullscreen switches the window in and out of fullscreen
func (r *Renderer) ToggleFullscreen() {
	r.window.ToggleFullscreen()
}

// Close asks the main loop to stop after the current frame
func (r *Renderer) Close() {
	r.window.SetShouldClose(true)
}

// Run drives the main loop, calling frame with the time since the previous
// frame, until the window is closed
func (r *Renderer) Run(frame func(dt time.Duration)) {
	r.lastFrameTime = glfw.GetTime()

	for !r.window.ShouldClose() {
		now := glfw.GetTime()
		dt := time.Duration((now - r.lastFrameTime) * float64(time.Second))
		r.lastFrameTime = now

		r.window.PollEvents()
		frame(dt)

		r.window.SwapBuffers()
	}

	r.Cleanup()
}

// Draw renders one frame of bodies from the current pose. Bodies are drawn
// back to front so translucent ones blend over what lies behind them.
func (r *Renderer) Draw(bodies []*universe.Body, hovered *universe.Body) {
	r.window.Clear(BackgroundColor)
	if r.fbWidth == 0 || r.fbHeight == 0 {
		// Minimized
		return
	}

	r.shader.Use()
	r.shader.SetMat4("view", mat4(r.pose.ViewMatrix()))
	r.shader.SetMat4("projection", r.projection())
	r.shader.SetVec3("viewPos", vec3(r.pose.Position))
	r.shader.SetVec3("lightPos", LightPosition)
	r.shader.SetVec3("lightColor", LightColor)

	ordered := make([]*universe.Body, 0, len(bodies))
	for _, b := range bodies {
		if b.Opacity > 0 {
			ordered = append(ordered, b)
		}
	}
	eye := r.pose.Position
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Position.Sub(eye).Len() > ordered[j].Position.Sub(eye).Len()
	})

	for _, b := range ordered {
		rel := b.Result.Relevance
		emissive := EmissiveBase + rel*EmissiveRelevance
		if b == hovered {
			emissive = EmissiveHover + rel*EmissiveHoverBoost
		}

		s := float32(b.EffectiveRadius())
		model := mgl32.Translate3D(vec3(b.Position).Elem()).
			Mul4(mgl32.HomogRotate3DY(float32(b.Spin))).
			Mul4(mgl32.Scale3D(s, s, s))

		r.shader.SetMat4("model", model)
		r.shader.SetVec3("baseColor", vec3(b.Palette.BaseColor()))
		r.shader.SetVec3("accentColor", vec3(b.Palette.AccentColor()))
		r.shader.SetFloat("emissive", float32(emissive))
		r.shader.SetFloat("opacity", float32(b.Opacity))

		r.sphere(shape.SegmentsForRelevance(rel)).Draw()
	}
}

// Cleanup frees all GL resources and closes the window
func (r *Renderer) Cleanup() {
	if r.closed {
		return
	}
	r.closed = true

	for _, m := range r.spheres {
		m.Delete()
	}
	r.shader.Delete()
	r.window.Close()
}

func (r *Renderer) sphere(segments int) *openglhelper.Mesh {
	m, ok := r.spheres[segments]
	if !ok {
		m = openglhelper.NewSphere(segments, segments)
		r.spheres[segments] = m
	}
	return m
}

func (r *Renderer) projection() mgl32.Mat4 {
	aspect := float32(r.fbWidth) / float32(r.fbHeight)
	return mgl32.Perspective(mgl32.DegToRad(float32(r.cfg.FOV)), aspect, float32(r.cfg.Near), float32(r.cfg.Far))
}

func (r *Renderer) emit(ev input.Event) bool {
	if r.onEvent == nil {
		return false
	}
	return r.onEvent(ev)
}

// Callback functions

func (r *Renderer) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	name, ok := keyName(key, mods)
	if !ok {
		return
	}

	switch action {
	case glfw.Press, glfw.Repeat:
		r.emit(input.Event{Kind: input.KeyDown, Key: name})
	case glfw.Release:
		r.emit(input.Event{Kind: input.KeyUp, Key: name})
	}
}

func (r *Renderer) charCallback(_ *glfw.Window, char rune) {
	if r.onChar != nil {
		r.onChar(char)
	}
}

func (r *Renderer) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	r.cursorX, r.cursorY = xpos, ypos
	r.emit(input.Event{Kind: input.PointerMove, X: xpos, Y: ypos})
}

func (r *Renderer) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b, ok := pointerButton(button)
	if !ok {
		return
	}

	kind := input.PointerDown
	if action == glfw.Release {
		kind = input.PointerUp
	}
	r.emit(input.Event{Kind: kind, X: r.cursorX, Y: r.cursorY, Button: b})
}

func (r *Renderer) scrollCallback(_ *glfw.Window, _, yoffset float64) {
	// GLFW reports scrolling away from the user as positive
	r.emit(input.Event{Kind: input.Wheel, X: r.cursorX, Y: r.cursorY, WheelDelta: -yoffset})
}

func (r *Renderer) focusCallback(_ *glfw.Window, focused bool) {
	if !focused {
		r.emit(input.Event{Kind: input.PointerCancel})
	}
}

func (r *Renderer) sizeCallback(_ *glfw.Window, width, height int) {
	r.window.OnResize(width, height)
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	r.fbWidth, r.fbHeight = width, height
	r.window.OnFramebufferResize(width, height)
}

func vec3(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func mat4(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
