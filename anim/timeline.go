// Package anim runs tweens and delayed calls against a caller-driven clock.
// All times are milliseconds.
package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easings used by the board.
var (
	Linear     ease.TweenFunc = ease.Linear
	EaseInOut  ease.TweenFunc = ease.InOutQuad
	EaseOut    ease.TweenFunc = ease.OutCubic
	EaseSlide  ease.TweenFunc = ease.InOutCubic
	EaseSpring ease.TweenFunc = ease.OutBack
)

// Positioner is anything a Move tween can slide across the board.
type Positioner interface {
	Pos() (x, y float64)
	SetPos(x, y float64)
}

// Options describe when a tween starts and how long it runs.
type Options struct {
	Delay    float32
	Duration float32
	Ease     ease.TweenFunc
}

type job struct {
	delay   float32
	started bool
	start   func()
	tweens  []*gween.Tween
	apply   func(values []float32)
	done    func()
}

// advance moves the job forward by dt and reports whether it finished.
func (j *job) advance(dt float32) bool {
	if j.delay > 0 {
		if dt < j.delay {
			j.delay -= dt
			return false
		}
		dt -= j.delay
		j.delay = 0
	}
	if !j.started {
		j.started = true
		if j.start != nil {
			j.start()
		}
	}
	if len(j.tweens) == 0 {
		return true
	}
	finished := true
	values := make([]float32, len(j.tweens))
	for i, t := range j.tweens {
		v, ok := t.Update(dt)
		values[i] = v
		finished = finished && ok
	}
	if j.apply != nil {
		j.apply(values)
	}
	return finished
}

// Timeline owns every in-flight tween and delayed call of a game. It is not
// safe for concurrent use; the owner drives it from a single goroutine.
type Timeline struct {
	jobs []*job
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// After calls fn once delay has elapsed.
func (t *Timeline) After(delay float32, fn func()) {
	t.jobs = append(t.jobs, &job{delay: delay, done: fn})
}

// Move slides target to (toX, toY). The start position is read when the
// delay elapses.
func (t *Timeline) Move(target Positioner, toX, toY float64, opts Options, done func()) {
	j := &job{delay: opts.Delay, done: done}
	j.start = func() {
		x, y := target.Pos()
		j.tweens = []*gween.Tween{
			gween.New(float32(x), float32(toX), opts.Duration, easing(opts.Ease)),
			gween.New(float32(y), float32(toY), opts.Duration, easing(opts.Ease)),
		}
	}
	j.apply = func(v []float32) {
		target.SetPos(float64(v[0]), float64(v[1]))
	}
	t.jobs = append(t.jobs, j)
}

// Value tweens a single number from -> to, reporting every step to set.
func (t *Timeline) Value(from, to float64, opts Options, set func(float64), done func()) {
	j := &job{delay: opts.Delay, done: done}
	j.start = func() {
		j.tweens = []*gween.Tween{gween.New(float32(from), float32(to), opts.Duration, easing(opts.Ease))}
	}
	j.apply = func(v []float32) {
		if set != nil {
			set(float64(v[0]))
		}
	}
	t.jobs = append(t.jobs, j)
}

// Update advances the timeline by dt. Completion callbacks run after every
// job has been advanced, in scheduling order; jobs they schedule start on the
// next Update.
func (t *Timeline) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}
	current := t.jobs
	t.jobs = nil
	var finished []*job
	for _, j := range current {
		if j.advance(dt) {
			finished = append(finished, j)
		} else {
			t.jobs = append(t.jobs, j)
		}
	}
	for _, j := range finished {
		if j.done != nil {
			j.done()
		}
	}
}

// Busy reports whether any job is still pending.
func (t *Timeline) Busy() bool {
	return len(t.jobs) > 0
}

func (t *Timeline) Len() int {
	return len(t.jobs)
}

// Reset drops every pending job without running its callback. Only used when
// a whole game is torn down.
func (t *Timeline) Reset() {
	t.jobs = nil
}

// Join returns a func that calls done on its n-th invocation. With n <= 0
// done runs immediately and the returned func is a no-op.
func Join(n int, done func()) func() {
	if done == nil {
		done = func() {}
	}
	if n <= 0 {
		done()
		return func() {}
	}
	remaining := n
	return func() {
		remaining--
		if remaining == 0 {
			done()
		}
	}
}

func easing(f ease.TweenFunc) ease.TweenFunc {
	if f == nil {
		return ease.Linear
	}
	return f
}
