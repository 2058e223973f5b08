// Package app wires the universe scene, the navigation controller and a
// drawing surface into the interactive viewer.
package app

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-universe/pkg/camera"
	"github.com/leterax/go-universe/pkg/input"
	"github.com/leterax/go-universe/pkg/nav"
	"github.com/leterax/go-universe/pkg/universe"
)

// ClickSlop is how far in pixels the pointer may travel between press and
// release for the gesture to still count as a click
const ClickSlop = 4.0

// Surface is the window the viewer draws into and receives input from
type Surface interface {
	nav.PoseRenderer

	SetEventHandler(func(input.Event) bool)
	SetCharHandler(func(rune))
	Cursor() (x, y float64)
	ScreenRay(x, y float64) (universe.Ray, bool)
	Draw(bodies []*universe.Body, hovered *universe.Body)
	SetTitle(title string)
	ToggleFullscreen()
	Close()
}

// Options configures a viewer
type Options struct {
	// Corpus is searched locally when a query is submitted
	Corpus     []universe.Result
	Navigation nav.Config
	Opener     universe.URLOpener
	Title      string
	Logger     *slog.Logger
}

// App is the interactive viewer
type App struct {
	surface    Surface
	universe   *universe.Universe
	controller *nav.Controller
	corpus     []universe.Result
	baseTitle  string
	logger     *slog.Logger

	typing bool
	query  []rune

	// Primary button press position while a click may still happen
	press *input.Point
	// Buttons currently held
	held map[input.Button]bool
}

// New builds the viewer, shows the whole corpus and points the camera at
// the origin from the reset position
func New(surface Surface, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		surface:   surface,
		corpus:    opts.Corpus,
		baseTitle: opts.Title,
		logger:    logger,
		held:      map[input.Button]bool{},
	}

	uopts := []universe.Option{universe.WithLogger(logger)}
	if opts.Opener != nil {
		uopts = append(uopts, universe.WithOpener(opts.Opener))
	}
	a.universe = universe.New(uopts...)

	navCfg := opts.Navigation
	if navCfg == (nav.Config{}) {
		navCfg = nav.DefaultConfig()
	}
	surface.SetCameraPose(homePose(navCfg.Reset.Target()))

	controller, err := nav.NewController(nav.Context{
		Scene:        a.universe,
		Renderer:     surface,
		OnSubmit:     a.submit,
		OnFullscreen: surface.ToggleFullscreen,
		Logger:       logger,
		Config:       navCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create viewer: %w", err)
	}
	a.controller = controller

	surface.SetEventHandler(a.handleEvent)
	surface.SetCharHandler(a.handleChar)

	a.universe.Populate(universe.Search(a.corpus, ""))
	return a, nil
}

// Universe returns the scene
func (a *App) Universe() *universe.Universe {
	return a.universe
}

// Controller returns the camera controller
func (a *App) Controller() *nav.Controller {
	return a.controller
}

// Typing reports whether the search field has keyboard focus
func (a *App) Typing() bool {
	return a.typing
}

// Query returns the text in the search field
func (a *App) Query() string {
	return string(a.query)
}

// Frame advances the scene and the camera by dt, updates hover and draws
func (a *App) Frame(dt time.Duration) {
	a.universe.Tick(dt)
	a.controller.Tick(dt)

	if len(a.held) == 0 {
		if ray, ok := a.surface.ScreenRay(a.surface.Cursor()); ok {
			a.universe.Hover(ray)
		}
	}

	a.surface.Draw(a.universe.Bodies(), a.universe.Hovered())
	a.surface.SetTitle(a.Title())
}

// Title is the window title for the current state
func (a *App) Title() string {
	switch {
	case a.typing:
		return fmt.Sprintf("%s | search: %s_", a.baseTitle, string(a.query))
	case a.universe.Hovered() != nil:
		r := a.universe.Hovered().Result
		return fmt.Sprintf("%s | %s (%s)", a.baseTitle, r.Title, r.URL)
	}
	return fmt.Sprintf("%s | %d results", a.baseTitle, len(a.universe.Bodies()))
}

// Close releases the controller
func (a *App) Close() {
	a.controller.Dispose()
}

func (a *App) handleEvent(ev input.Event) bool {
	switch ev.Kind {
	case input.KeyDown:
		switch ev.Key {
		case input.KeyEscape:
			if a.typing {
				a.stopTyping()
			} else {
				a.surface.Close()
			}
			return true
		case input.KeyBackspace:
			if a.typing && len(a.query) > 0 {
				a.query = a.query[:len(a.query)-1]
			}
			return a.typing
		}
	case input.PointerDown:
		a.held[ev.Button] = true
		if ev.Button == input.ButtonPrimary {
			a.press = &input.Point{X: ev.X, Y: ev.Y}
		}
	case input.PointerUp:
		delete(a.held, ev.Button)
		if ev.Button == input.ButtonPrimary {
			a.release(ev.X, ev.Y)
		}
	case input.PointerCancel:
		clear(a.held)
		a.press = nil
	}

	return a.controller.OnDeviceEvent(ev)
}

// release clicks the body under the pointer if the primary button did not
// travel far enough to count as a drag
func (a *App) release(x, y float64) {
	press := a.press
	a.press = nil
	if press == nil || math.Hypot(x-press.X, y-press.Y) > ClickSlop {
		return
	}

	if ray, ok := a.surface.ScreenRay(x, y); ok {
		a.universe.Hover(ray)
	}
	if a.universe.Click() {
		a.logger.Debug("opened result", "url", a.universe.Hovered().Result.URL)
	}
}

func (a *App) handleChar(r rune) {
	if !a.typing {
		if r == '/' {
			a.typing = true
			a.query = a.query[:0]
			a.controller.SetTextFocus(true)
		}
		return
	}
	a.query = append(a.query, r)
}

func (a *App) stopTyping() {
	a.typing = false
	a.controller.SetTextFocus(false)
}

// submit runs the query typed into the search field and rebuilds the scene
func (a *App) submit() {
	query := string(a.query)
	a.stopTyping()

	results := universe.Search(a.corpus, query)
	a.universe.Populate(results)
	a.logger.Info("search", "query", query, "results", len(results))
}

// homePose looks at the origin from position
func homePose(position mgl64.Vec3) camera.Pose {
	q, ok := camera.LookAtQuat(position, mgl64.Vec3{}, camera.WorldUp)
	if !ok {
		return camera.NewPose(position)
	}
	return camera.Pose{Position: position, Orientation: q}
}
