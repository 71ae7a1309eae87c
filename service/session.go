package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"wealthy-cats/config"
	"wealthy-cats/entities"
	"wealthy-cats/events"
	"wealthy-cats/game"
	"wealthy-cats/utils"
)

var ErrSessionNotFound = errors.New("session not found")

// Broadcaster hands out the event sink of a session.
type Broadcaster interface {
	Sink(sessionID string) events.Sink
	Close(sessionID string)
}

// Telemetry reports play sessions to the portal.
type Telemetry interface {
	PostStart(ctx context.Context, level int, sound, music bool) error
	PostEnd(ctx context.Context, points, total int, levelData string, completed bool) error
}

type Deps struct {
	Game      config.GameConfig
	Decks     entities.DecksConfig
	TickHz    int
	Hub       Broadcaster
	Telemetry Telemetry
	Prefs     *PrefsService
	Progress  *ProgressService
	Log       *zap.Logger
	// NewTicker overrides the loop ticker, for tests.
	NewTicker func() Ticker
}

type CreateOptions struct {
	// Seed fixes deck order and coin placement; 0 picks one.
	Seed  uint64
	Level int
}

type SessionInfo struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	Level   int       `json:"level"`
	Seed    uint64    `json:"seed"`
}

type entry struct {
	runner *Runner
	info   SessionInfo
}

// SessionService owns every running game.
type SessionService struct {
	deps Deps
	log  *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*entry
	bg       sync.WaitGroup
}

func NewSessionService(deps Deps) *SessionService {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.NewTicker == nil {
		hz := deps.TickHz
		if hz <= 0 {
			hz = 60
		}
		deps.NewTicker = func() Ticker { return NewTimeTicker(hz) }
	}
	return &SessionService{deps: deps, log: deps.Log, sessions: make(map[string]*entry)}
}

// Create starts a new game on its own loop and returns its id.
func (s *SessionService) Create(ctx context.Context, opts CreateOptions) (SessionInfo, error) {
	id := utils.ShortID()
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	level := opts.Level
	if level <= 0 && s.deps.Progress != nil {
		if l, err := s.deps.Progress.Unlocked(ctx); err == nil {
			level = l
		}
	}
	if level <= 0 {
		level = 1
	}

	log := s.log.With(zap.String("session", id))
	sink := events.Discard
	if s.deps.Hub != nil {
		sink = s.deps.Hub.Sink(id)
	}
	sess := game.NewSession(game.Options{
		Game:  s.deps.Game,
		Decks: s.deps.Decks,
		Rand:  rand.New(rand.NewSource(seed)),
		Sink:  sink,
		Log:   log,
		OnGameOver: func(r events.GameOver) {
			s.finished(id, level, r)
		},
	})
	r := newRunner(id, sess, s.deps.NewTicker(), log)
	info := SessionInfo{ID: id, Created: r.Created, Level: level, Seed: seed}

	s.mu.Lock()
	s.sessions[id] = &entry{runner: r, info: info}
	s.mu.Unlock()
	go r.loop()

	if err := r.Do(ctx, func(g *game.Session) error { g.Start(); return nil }); err != nil {
		s.Delete(id)
		return SessionInfo{}, fmt.Errorf("start session: %w", err)
	}
	s.reportStart(level)
	log.Info("✅ session created", zap.Uint64("seed", seed), zap.Int("level", level))
	return info, nil
}

func (s *SessionService) reportStart(level int) {
	if s.deps.Telemetry == nil {
		return
	}
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		prefs := DefaultAudioPrefs()
		if s.deps.Prefs != nil {
			if p, err := s.deps.Prefs.Audio(ctx); err == nil {
				prefs = p
			}
		}
		if err := s.deps.Telemetry.PostStart(ctx, level, !prefs.SFXMuted, !prefs.MusicMuted); err != nil {
			s.log.Warn("⚠️ portal start failed", zap.Error(err))
		}
	}()
}

// finished runs on the session loop; the slow work goes to the background.
func (s *SessionService) finished(id string, level int, r events.GameOver) {
	points, total := 0, 0
	for _, p := range r.Players {
		total += p.FinalCash
		if p.FinalCash > points {
			points = p.FinalCash
		}
	}
	levelData, err := json.Marshal(r)
	if err != nil {
		s.log.Warn("⚠️ encode result", zap.Error(err))
	}
	s.log.Info("🏁 session finished", zap.String("session", id), zap.String("result", r.Text))

	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if s.deps.Telemetry != nil {
			if err := s.deps.Telemetry.PostEnd(ctx, points, total, string(levelData), true); err != nil {
				s.log.Warn("⚠️ portal end failed", zap.Error(err))
			}
		}
		if s.deps.Progress != nil {
			if _, err := s.deps.Progress.Unlock(ctx, level+1); err != nil {
				s.log.Warn("⚠️ unlock level failed", zap.Error(err))
			}
		}
	}()
}

func (s *SessionService) get(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// Exists reports whether id is a running session.
func (s *SessionService) Exists(id string) bool {
	_, err := s.get(id)
	return err == nil
}

// List returns every session, oldest first.
func (s *SessionService) List() []SessionInfo {
	s.mu.RLock()
	out := make([]SessionInfo, 0, len(s.sessions))
	for _, e := range s.sessions {
		out = append(out, e.info)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out
}

// Do runs fn on the loop of session id.
func (s *SessionService) Do(ctx context.Context, id string, fn func(*game.Session) error) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}
	return e.runner.Do(ctx, fn)
}

func (s *SessionService) Snapshot(ctx context.Context, id string) (game.Snapshot, error) {
	var snap game.Snapshot
	err := s.Do(ctx, id, func(g *game.Session) error {
		snap = g.Snapshot()
		return nil
	})
	return snap, err
}

// Delete stops a session and drops its subscribers.
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.runner.Stop()
	if s.deps.Hub != nil {
		s.deps.Hub.Close(id)
	}
	s.log.Info("🗑️ session deleted", zap.String("session", id))
	return nil
}

// Close stops every session and waits for background reporting.
func (s *SessionService) Close() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	for _, id := range ids {
		_ = s.Delete(id)
	}
	s.bg.Wait()
}
