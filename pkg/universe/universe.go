// Package universe turns ranked search results into a scene of celestial
// bodies the camera can navigate, hover and click.
package universe

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/leterax/go-universe/pkg/anim"
	"github.com/leterax/go-universe/pkg/nav"
)

// Layout and animation constants
const (
	SpiralTurns     = 2
	SpiralBase      = 150.0
	SpiralStep      = 20.0
	SpiralWave      = 30.0
	MinBodyRadius   = 2.0
	MaxBodyRadius   = 8.0
	BaseSpin        = 0.002
	RelevanceSpin   = 0.003
	FadeInDuration  = time.Second
	SpawnMinimum    = time.Second
	SpawnJitter     = time.Second
	HoverScale      = 1.3
	HoverScaleBoost = 0.2
	HoverDuration   = 600 * time.Millisecond
)

// Capabilities are the optional interactions a body supports. A nil
// handler means the body does not react to that interaction.
type Capabilities struct {
	OnHover    func(*Body)
	OnHoverEnd func(*Body)
	OnClick    func(*Body)
}

// Body is one search result placed in the universe
type Body struct {
	ID     string
	Result Result
	// Home is the spiral slot the body travels to after spawning
	Home     mgl64.Vec3
	Position mgl64.Vec3
	// Radius is the unscaled sphere radius
	Radius  float64
	Opacity float64
	Scale   float64
	// Spin is the rotation about the body's Y axis in radians
	Spin    float64
	Palette Palette
	Caps    Capabilities
}

// EffectiveRadius is the radius including the hover scale
func (b *Body) EffectiveRadius() float64 {
	return b.Radius * b.Scale
}

// Ray is a half line used for picking
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

var _ nav.SceneQuery = (*Universe)(nil)

// Universe owns the bodies and their animations
type Universe struct {
	bodies   []*Body
	hovered  *Body
	animator *anim.Animator
	caps     *Capabilities
	opener   URLOpener
	intn     func(int) int
	logger   *slog.Logger
}

// Option configures a Universe
type Option func(*Universe)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(u *Universe) {
		u.logger = logger
	}
}

// WithRand makes palette choice and spawn timing deterministic
func WithRand(r *rand.Rand) Option {
	return func(u *Universe) {
		u.intn = r.IntN
	}
}

// WithOpener gives every body the default hover and click behaviour,
// opening clicked results through opener
func WithOpener(opener URLOpener) Option {
	return func(u *Universe) {
		u.opener = opener
	}
}

// WithCapabilities sets the interactions given to every new body
func WithCapabilities(caps Capabilities) Option {
	return func(u *Universe) {
		u.caps = &caps
	}
}

// New creates an empty universe
func New(opts ...Option) *Universe {
	u := &Universe{
		animator: anim.NewAnimator(),
		intn:     rand.IntN,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.caps == nil && u.opener != nil {
		caps := u.DefaultCapabilities(u.opener)
		u.caps = &caps
	}
	return u
}

// Bodies returns the bodies in result order
func (u *Universe) Bodies() []*Body {
	return u.bodies
}

// Hovered returns the body under the pointer, if any
func (u *Universe) Hovered() *Body {
	return u.hovered
}

// Animator exposes the animation records driving the bodies
func (u *Universe) Animator() *anim.Animator {
	return u.animator
}

// Clear removes every body and stops their animations
func (u *Universe) Clear() {
	u.animator.Clear()
	u.bodies = nil
	u.hovered = nil
}

// Populate replaces the scene with one body per result. Bodies spawn at the
// origin and ease out to their spiral slot while fading in.
func (u *Universe) Populate(results []Result) {
	u.Clear()

	for i, r := range results {
		b := &Body{
			ID:      uuid.NewString(),
			Result:  r,
			Home:    SpiralPosition(i, len(results)),
			Radius:  MinBodyRadius + r.Relevance*(MaxBodyRadius-MinBodyRadius),
			Scale:   1,
			Palette: Palettes[u.intn(len(Palettes))],
		}
		if u.caps != nil {
			b.Caps = *u.caps
		}
		u.bodies = append(u.bodies, b)

		spawn := SpawnMinimum + time.Duration(u.intn(int(SpawnJitter/time.Millisecond)))*time.Millisecond
		u.animator.Start(anim.Record{
			Key:      bodyKey(b, "position"),
			Kind:     anim.EaseOutCubic,
			Duration: spawn,
			From:     mgl64.Vec3{},
			To:       b.Home,
			Apply:    func(v mgl64.Vec3) { b.Position = v },
		})
		u.animator.Start(anim.Record{
			Key:      bodyKey(b, "opacity"),
			Kind:     anim.Linear,
			Duration: FadeInDuration,
			From:     anim.Scalar(0),
			To:       anim.Scalar(1),
			Apply:    func(v mgl64.Vec3) { b.Opacity = v.X() },
		})
	}
	u.logger.Debug("populated universe", "bodies", len(u.bodies))
}

// Tick advances every body animation by dt and spins the bodies
func (u *Universe) Tick(dt time.Duration) {
	u.animator.Advance(dt)
	for _, b := range u.bodies {
		b.Spin = math.Mod(b.Spin+BaseSpin+b.Result.Relevance*RelevanceSpin, 2*math.Pi)
	}
}

// NavigableObjects lists the bodies at their current positions
func (u *Universe) NavigableObjects() []nav.Object {
	objects := make([]nav.Object, len(u.bodies))
	for i, b := range u.bodies {
		objects[i] = nav.Object{ID: b.ID, Position: b.Position, Radius: b.EffectiveRadius()}
	}
	return objects
}

// Pick returns the nearest body hit by ray and the distance along the ray
func (u *Universe) Pick(ray Ray) (*Body, float64, bool) {
	if ray.Direction.Len() == 0 {
		return nil, 0, false
	}
	dir := ray.Direction.Normalize()

	var (
		best     *Body
		bestDist = math.Inf(1)
	)
	for _, b := range u.bodies {
		t, ok := intersectSphere(ray.Origin, dir, b.Position, b.EffectiveRadius())
		if ok && t < bestDist {
			best, bestDist = b, t
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestDist, true
}

// Hover updates the hovered body from ray, firing hover-end on the body the
// pointer left and hover on the one it entered
func (u *Universe) Hover(ray Ray) *Body {
	b, _, _ := u.Pick(ray)
	u.setHovered(b)
	return b
}

// ClearHover ends any hover, e.g. when the pointer leaves the window
func (u *Universe) ClearHover() {
	u.setHovered(nil)
}

// Click activates the hovered body. It returns false when nothing clickable
// is under the pointer.
func (u *Universe) Click() bool {
	b := u.hovered
	if b == nil || b.Caps.OnClick == nil {
		return false
	}
	b.Caps.OnClick(b)
	return true
}

func (u *Universe) setHovered(b *Body) {
	if b == u.hovered {
		return
	}
	if prev := u.hovered; prev != nil && prev.Caps.OnHoverEnd != nil {
		prev.Caps.OnHoverEnd(prev)
	}
	u.hovered = b
	if b != nil && b.Caps.OnHover != nil {
		b.Caps.OnHover(b)
	}
}

// DefaultCapabilities grows a body on hover, shrinks it back afterwards and
// opens its URL on click. Only http and https URLs reach the opener.
func (u *Universe) DefaultCapabilities(opener URLOpener) Capabilities {
	scaleTo := func(b *Body, to float64) {
		u.animator.Start(anim.Record{
			Key:      bodyKey(b, "scale"),
			Kind:     anim.Spring,
			Duration: HoverDuration,
			From:     anim.Scalar(b.Scale),
			To:       anim.Scalar(to),
			Apply:    func(v mgl64.Vec3) { b.Scale = v.X() },
		})
	}

	return Capabilities{
		OnHover: func(b *Body) {
			u.animator.Cancel(bodyKey(b, "opacity"))
			b.Opacity = 1
			scaleTo(b, HoverScale+b.Result.Relevance*HoverScaleBoost)
		},
		OnHoverEnd: func(b *Body) {
			scaleTo(b, 1)
		},
		OnClick: func(b *Body) {
			if opener == nil {
				return
			}
			url, err := ValidateURL(b.Result.URL)
			if err != nil {
				u.logger.Warn("not opening result", "error", err)
				return
			}
			if err := opener.Open(url); err != nil {
				u.logger.Error("failed to open result", "url", b.Result.URL, "error", err)
			}
		},
	}
}

// SpiralPosition is the home slot of result index out of total: two turns
// of a widening spiral in the XZ plane with a gentle vertical wave
func SpiralPosition(index, total int) mgl64.Vec3 {
	if total <= 0 {
		return mgl64.Vec3{}
	}
	angle := float64(index) / float64(total) * 2 * math.Pi * SpiralTurns
	radius := SpiralBase + float64(index)*SpiralStep
	return mgl64.Vec3{
		math.Cos(angle) * radius,
		math.Sin(angle*2) * SpiralWave,
		math.Sin(angle) * radius,
	}
}

// intersectSphere returns the distance along the unit direction dir to the
// first intersection with the sphere, ignoring hits behind the origin
func intersectSphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

func bodyKey(b *Body, property string) string {
	return "body/" + b.ID + "/" + property
}
