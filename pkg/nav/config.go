package nav

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-universe/pkg/input"
)

// ErrInvalidConfig is returned when a configuration value is out of range
var ErrInvalidConfig = errors.New("invalid navigation config")

// Default tuning. The offset multipliers and lerp factor are empirical.
const (
	DefaultRotateSensitivity  = 0.005
	DefaultKeyRotateStep      = 0.1
	DefaultPanDistanceScale   = 100.0
	DefaultDollyBaseSpeed     = 1.0
	DefaultDollyDistanceScale = 50.0
	DefaultPinchSensitivity   = 0.05

	DefaultAlignmentWeight = 2.0

	DefaultLateralOffset  = 6.0
	DefaultVerticalOffset = 7.0
	DefaultLift           = 3.0
	DefaultLerpFactor     = 0.05
	DefaultArrivalEpsilon = 0.1

	DefaultResetDurationMS = 1000
)

// DefaultResetPosition is where the reset key sends the camera
var DefaultResetPosition = [3]float64{0, 30, 100}

// Config holds every tunable of the navigation controller
type Config struct {
	Input  input.Settings `toml:"input"`
	Seek   SeekConfig     `toml:"seek"`
	Flight FlightConfig   `toml:"flight"`
	Reset  ResetConfig    `toml:"reset"`
}

// SeekConfig tunes snap target selection
type SeekConfig struct {
	// Weight of the perpendicular distance relative to the distance along
	// the requested direction
	AlignmentWeight float64 `toml:"alignment_weight"`
}

// FlightConfig tunes the animated flight to a vantage pose
type FlightConfig struct {
	// Vantage distance in body radii for left/right snaps
	LateralOffset float64 `toml:"lateral_offset"`
	// Vantage distance in body radii for up/down snaps
	VerticalOffset float64 `toml:"vertical_offset"`
	// Extra height above the body in radii
	Lift float64 `toml:"lift"`
	// Fraction of the remaining distance covered each tick
	LerpFactor float64 `toml:"lerp_factor"`
	// Flight ends once the camera is closer than this to the vantage point
	ArrivalEpsilon float64 `toml:"arrival_epsilon"`
	// Hard cap on ticks per flight, 0 for none
	MaxTicks int `toml:"max_ticks"`
}

// ResetConfig tunes the reset-camera animation
type ResetConfig struct {
	Position   [3]float64 `toml:"position"`
	DurationMS int64      `toml:"duration_ms"`
}

// Target returns the reset position as a vector
func (r ResetConfig) Target() mgl64.Vec3 {
	return mgl64.Vec3(r.Position)
}

// Duration returns the reset animation length
func (r ResetConfig) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		Input: input.Settings{
			RotateSensitivity:  DefaultRotateSensitivity,
			KeyRotateStep:      DefaultKeyRotateStep,
			PanDistanceScale:   DefaultPanDistanceScale,
			DollyBaseSpeed:     DefaultDollyBaseSpeed,
			DollyDistanceScale: DefaultDollyDistanceScale,
			PinchSensitivity:   DefaultPinchSensitivity,
		},
		Seek: SeekConfig{
			AlignmentWeight: DefaultAlignmentWeight,
		},
		Flight: FlightConfig{
			LateralOffset:  DefaultLateralOffset,
			VerticalOffset: DefaultVerticalOffset,
			Lift:           DefaultLift,
			LerpFactor:     DefaultLerpFactor,
			ArrivalEpsilon: DefaultArrivalEpsilon,
		},
		Reset: ResetConfig{
			Position:   DefaultResetPosition,
			DurationMS: DefaultResetDurationMS,
		},
	}
}

// Validate checks that every value is usable
func (c Config) Validate() error {
	switch {
	case c.Input.PanDistanceScale <= 0:
		return fmt.Errorf("%w: input.pan_distance_scale must be positive", ErrInvalidConfig)
	case c.Input.DollyDistanceScale <= 0:
		return fmt.Errorf("%w: input.dolly_distance_scale must be positive", ErrInvalidConfig)
	case c.Seek.AlignmentWeight < 0:
		return fmt.Errorf("%w: seek.alignment_weight must not be negative", ErrInvalidConfig)
	case c.Flight.LateralOffset <= 0 || c.Flight.VerticalOffset <= 0:
		return fmt.Errorf("%w: flight offsets must be positive", ErrInvalidConfig)
	case c.Flight.LerpFactor <= 0 || c.Flight.LerpFactor > 1:
		return fmt.Errorf("%w: flight.lerp_factor must be in (0, 1], got %v", ErrInvalidConfig, c.Flight.LerpFactor)
	case c.Flight.ArrivalEpsilon <= 0:
		return fmt.Errorf("%w: flight.arrival_epsilon must be positive", ErrInvalidConfig)
	case c.Flight.MaxTicks < 0:
		return fmt.Errorf("%w: flight.max_ticks must not be negative", ErrInvalidConfig)
	case c.Reset.DurationMS < 0:
		return fmt.Errorf("%w: reset.duration_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}
