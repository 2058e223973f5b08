// Package anim drives time-based animations from a single central tick.
//
// Every running animation is an explicit Record stored in an Animator,
// keyed by the entity property it animates. Advancing the animator with a
// frame delta moves every record forward, so tests can step time
// deterministically instead of waiting on wall-clock callbacks.
package anim

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind selects how a record moves from From to To
type Kind int

const (
	// Linear interpolates at constant speed
	Linear Kind = iota
	// EaseOutCubic starts fast and settles gently
	EaseOutCubic
	// Spring follows a damped spring towards To and snaps to it once
	// Duration has elapsed
	Spring
)

// Spring tuning: slightly under-damped so hover feedback bounces a little
const (
	SpringFrequency = 6.0
	SpringDamping   = 0.5
)

// Record is one running animation
type Record struct {
	// Key identifies the animated property, e.g. "camera/position". A new
	// record with the same key supersedes the old one.
	Key      string
	Kind     Kind
	Start    time.Duration
	Duration time.Duration
	From     mgl64.Vec3
	To       mgl64.Vec3

	// Apply receives the interpolated value every tick. It must not start or
	// cancel records on the same animator.
	Apply func(mgl64.Vec3)

	value    mgl64.Vec3
	velocity mgl64.Vec3
}

// Progress returns the normalized progress of the record at now
func (r *Record) Progress(now time.Duration) float64 {
	if r.Duration <= 0 {
		return 1
	}
	p := float64(now-r.Start) / float64(r.Duration)
	return math.Max(0, math.Min(1, p))
}

// Animator owns every running record and the shared animation clock
type Animator struct {
	now     time.Duration
	records []*Record
}

// NewAnimator creates an empty animator with its clock at zero
func NewAnimator() *Animator {
	return &Animator{}
}

// Now returns the animator clock
func (a *Animator) Now() time.Duration {
	return a.now
}

// Len returns the number of running records
func (a *Animator) Len() int {
	return len(a.records)
}

// Active reports whether a record with key is running
func (a *Animator) Active(key string) bool {
	return a.index(key) >= 0
}

// Start schedules rec beginning at the current clock, replacing any record
// with the same key
func (a *Animator) Start(rec Record) {
	rec.Start = a.now
	rec.value = rec.From

	if i := a.index(rec.Key); i >= 0 {
		a.records[i] = &rec
		return
	}
	a.records = append(a.records, &rec)
}

// Cancel stops the record with key without applying a final value
func (a *Animator) Cancel(key string) {
	if i := a.index(key); i >= 0 {
		a.records = append(a.records[:i], a.records[i+1:]...)
	}
}

// Clear stops every record
func (a *Animator) Clear() {
	a.records = nil
}

// Advance moves the clock by dt and applies every record. Finished records
// receive their final value and are removed.
func (a *Animator) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	a.now += dt

	kept := a.records[:0]
	for _, rec := range a.records {
		p := rec.Progress(a.now)

		var v mgl64.Vec3
		switch {
		case p >= 1:
			v = rec.To
		case rec.Kind == Spring:
			v = rec.stepSpring(dt)
		default:
			v = Interpolate(rec.Kind, rec.From, rec.To, p)
		}

		if rec.Apply != nil {
			rec.Apply(v)
		}
		if p < 1 {
			kept = append(kept, rec)
		}
	}
	// Drop references held past the new length
	for i := len(kept); i < len(a.records); i++ {
		a.records[i] = nil
	}
	a.records = kept
}

func (a *Animator) index(key string) int {
	for i, rec := range a.records {
		if rec.Key == key {
			return i
		}
	}
	return -1
}

func (r *Record) stepSpring(dt time.Duration) mgl64.Vec3 {
	if dt <= 0 {
		return r.value
	}
	s := harmonica.NewSpring(dt.Seconds(), SpringFrequency, SpringDamping)
	for i := 0; i < 3; i++ {
		r.value[i], r.velocity[i] = s.Update(r.value[i], r.velocity[i], r.To[i])
	}
	return r.value
}

// Interpolate returns the value of a non-spring kind at progress t in [0, 1]
func Interpolate(kind Kind, from, to mgl64.Vec3, t float64) mgl64.Vec3 {
	if kind == EaseOutCubic {
		t = EaseOutCubicCurve(t)
	}
	return from.Add(to.Sub(from).Mul(t))
}

// EaseOutCubicCurve maps linear progress onto 1-(1-t)^3
func EaseOutCubicCurve(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Scalar packs a scalar into a Vec3 for single-valued tracks
func Scalar(v float64) mgl64.Vec3 {
	return mgl64.Vec3{v, 0, 0}
}
