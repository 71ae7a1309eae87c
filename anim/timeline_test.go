package anim

import (
	"math"
	"testing"
)

type point struct{ x, y float64 }

func (p *point) Pos() (float64, float64) { return p.x, p.y }
func (p *point) SetPos(x, y float64)     { p.x, p.y = x, y }

func drain(tl *Timeline, step float32, max int) int {
	n := 0
	for tl.Busy() && n < max {
		tl.Update(step)
		n++
	}
	return n
}

func TestAfterFiresOnceDelayElapses(t *testing.T) {
	tl := NewTimeline()
	calls := 0
	tl.After(100, func() { calls++ })

	tl.Update(60)
	if calls != 0 {
		t.Fatalf("expected no call before delay, got %d", calls)
	}
	tl.Update(60)
	if calls != 1 {
		t.Fatalf("expected one call after delay, got %d", calls)
	}
	tl.Update(60)
	if calls != 1 || tl.Busy() {
		t.Fatalf("expected call to be dropped after firing, calls=%d busy=%v", calls, tl.Busy())
	}
}

func TestMoveReachesTarget(t *testing.T) {
	tl := NewTimeline()
	p := &point{x: 0, y: 0}
	done := false
	tl.Move(p, 100, 50, Options{Duration: 500, Ease: EaseInOut}, func() { done = true })

	tl.Update(250)
	if p.x <= 0 || p.x >= 100 {
		t.Fatalf("expected midway x, got %v", p.x)
	}
	drain(tl, 16, 1000)
	if !done {
		t.Fatalf("expected move to complete")
	}
	if math.Abs(p.x-100) > 1e-3 || math.Abs(p.y-50) > 1e-3 {
		t.Fatalf("expected (100,50) got (%v,%v)", p.x, p.y)
	}
}

func TestMoveReadsStartAfterDelay(t *testing.T) {
	tl := NewTimeline()
	p := &point{x: 0, y: 0}
	tl.Move(p, 10, 10, Options{Delay: 100, Duration: 100}, nil)
	tl.Update(50)
	p.x, p.y = 10, 10
	tl.Update(60)
	if math.Abs(p.x-10) > 1e-3 {
		t.Fatalf("expected tween to start from moved position, got %v", p.x)
	}
}

func TestCallbacksScheduleForNextUpdate(t *testing.T) {
	tl := NewTimeline()
	var order []string
	tl.After(0, func() {
		order = append(order, "first")
		tl.After(0, func() { order = append(order, "second") })
	})
	tl.Update(1)
	if len(order) != 1 {
		t.Fatalf("expected only first callback, got %v", order)
	}
	tl.Update(1)
	if len(order) != 2 || order[1] != "second" {
		t.Fatalf("expected second callback on next update, got %v", order)
	}
}

func TestValueTween(t *testing.T) {
	tl := NewTimeline()
	got := 0.0
	tl.Value(-1920, 0, Options{Duration: 800, Ease: EaseSlide}, func(v float64) { got = v }, nil)
	drain(tl, 100, 100)
	if math.Abs(got) > 1e-3 {
		t.Fatalf("expected 0 got %v", got)
	}
}

func TestJoin(t *testing.T) {
	fired := 0
	step := Join(3, func() { fired++ })
	step()
	step()
	if fired != 0 {
		t.Fatalf("expected no completion after 2 of 3")
	}
	step()
	if fired != 1 {
		t.Fatalf("expected completion after 3 of 3, got %d", fired)
	}

	immediate := 0
	Join(0, func() { immediate++ })
	if immediate != 1 {
		t.Fatalf("expected Join(0) to complete immediately")
	}
}

func TestReset(t *testing.T) {
	tl := NewTimeline()
	called := false
	tl.After(10, func() { called = true })
	tl.Reset()
	tl.Update(100)
	if called || tl.Len() != 0 {
		t.Fatalf("expected reset to drop pending jobs")
	}
}
