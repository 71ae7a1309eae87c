package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"wealthy-cats/game"
)

// ErrSessionClosed is returned for commands sent to a stopped session.
var ErrSessionClosed = errors.New("session closed")

// maxStep caps a single timeline step so a stalled loop does not skip whole
// animations.
const maxStep = 250 * time.Millisecond

// Ticker delivers loop ticks. *time.Ticker is wrapped by NewTimeTicker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker ticks hz times a second.
func NewTimeTicker(hz int) Ticker {
	return timeTicker{t: time.NewTicker(time.Second / time.Duration(hz))}
}

type command struct {
	fn   func(*game.Session) error
	resp chan error
}

// Runner owns a game.Session and is the only goroutine that touches it.
type Runner struct {
	ID      string
	Created time.Time

	session *game.Session
	ticker  Ticker
	cmds    chan command
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
	log     *zap.Logger
}

func newRunner(id string, session *game.Session, ticker Ticker, log *zap.Logger) *Runner {
	return &Runner{
		ID:      id,
		Created: time.Now(),
		session: session,
		ticker:  ticker,
		cmds:    make(chan command),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		log:     log,
	}
}

func (r *Runner) loop() {
	defer close(r.done)
	defer r.ticker.Stop()
	var last time.Time
	for {
		select {
		case <-r.quit:
			return
		case c := <-r.cmds:
			c.resp <- r.run(c.fn)
		case now := <-r.ticker.C():
			if last.IsZero() {
				last = now
				continue
			}
			dt := now.Sub(last)
			last = now
			if dt > maxStep {
				dt = maxStep
			}
			r.session.Update(float32(dt.Seconds() * 1000))
		}
	}
}

func (r *Runner) run(fn func(*game.Session) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("❌ session command panicked", zap.Any("panic", p))
			err = errors.New("internal error")
		}
	}()
	return fn(r.session)
}

// Do runs fn on the session loop and waits for its result.
func (r *Runner) Do(ctx context.Context, fn func(*game.Session) error) error {
	resp := make(chan error, 1)
	select {
	case r.cmds <- command{fn: fn, resp: resp}:
	case <-r.quit:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-resp:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends the loop and waits for it to exit.
func (r *Runner) Stop() {
	r.once.Do(func() { close(r.quit) })
	<-r.done
}
