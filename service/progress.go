package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"wealthy-cats/repository"
)

const keyUnlockedLevels = "wealthy-cats-unlocked-levels"

// ProgressService tracks the highest unlocked level.
type ProgressService struct {
	mu    sync.Mutex
	store repository.Store
	log   *zap.Logger
}

func NewProgressService(store repository.Store, log *zap.Logger) *ProgressService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProgressService{store: store, log: log}
}

// Unlocked returns the highest unlocked level, at least 1.
func (s *ProgressService) Unlocked(ctx context.Context) (int, error) {
	v, ok, err := s.store.Get(ctx, keyUnlockedLevels)
	if err != nil {
		return 1, fmt.Errorf("load progress: %w", err)
	}
	if !ok {
		return 1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		s.log.Warn("⚠️ bad stored progress, using 1", zap.String("value", v))
		return 1, nil
	}
	return n, nil
}

// Unlock raises the unlocked level to level; lower values are ignored.
func (s *ProgressService) Unlock(ctx context.Context, level int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.Unlocked(ctx)
	if err != nil {
		return cur, err
	}
	if level <= cur {
		return cur, nil
	}
	if err := s.store.Set(ctx, map[string]string{keyUnlockedLevels: strconv.Itoa(level)}); err != nil {
		return cur, fmt.Errorf("save progress: %w", err)
	}
	return level, nil
}

// SyncFromAPI takes the portal's level when it is ahead of local progress.
func (s *ProgressService) SyncFromAPI(ctx context.Context, level int) (int, error) {
	return s.Unlock(ctx, level)
}

func (s *ProgressService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, map[string]string{keyUnlockedLevels: "1"}); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
