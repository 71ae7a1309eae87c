package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"wealthy-cats/repository"
	"wealthy-cats/utils"
)

const (
	keyMusicVolume = "wealthy-cats-music-volume"
	keySFXVolume   = "wealthy-cats-sfx-volume"
	keyMusicMuted  = "wealthy-cats-music-muted"
	keySFXMuted    = "wealthy-cats-sfx-muted"
)

// AudioPrefs are the player's sound settings. Volumes are 0..1.
type AudioPrefs struct {
	MusicVolume float64 `json:"musicVolume"`
	SFXVolume   float64 `json:"sfxVolume"`
	MusicMuted  bool    `json:"musicMuted"`
	SFXMuted    bool    `json:"sfxMuted"`
}

func DefaultAudioPrefs() AudioPrefs {
	return AudioPrefs{MusicVolume: 0.5, SFXVolume: 0.5}
}

// AudioPrefsPatch changes only the fields that are set.
type AudioPrefsPatch struct {
	MusicVolume *float64 `json:"musicVolume"`
	SFXVolume   *float64 `json:"sfxVolume"`
	MusicMuted  *bool    `json:"musicMuted"`
	SFXMuted    *bool    `json:"sfxMuted"`
}

type PrefsService struct {
	mu    sync.Mutex
	store repository.Store
}

func NewPrefsService(store repository.Store) *PrefsService {
	return &PrefsService{store: store}
}

// storedAudio mirrors the flat keys the prefs are saved under.
type storedAudio struct {
	MusicVolume *float64 `json:"wealthy-cats-music-volume"`
	SFXVolume   *float64 `json:"wealthy-cats-sfx-volume"`
	MusicMuted  *bool    `json:"wealthy-cats-music-muted"`
	SFXMuted    *bool    `json:"wealthy-cats-sfx-muted"`
}

// Audio loads the saved prefs; anything missing keeps its default.
func (s *PrefsService) Audio(ctx context.Context) (AudioPrefs, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return DefaultAudioPrefs(), fmt.Errorf("load audio prefs: %w", err)
	}
	var stored storedAudio
	if err := utils.Decode(all, &stored); err != nil {
		return DefaultAudioPrefs(), fmt.Errorf("decode audio prefs: %w", err)
	}
	p := DefaultAudioPrefs()
	if stored.MusicVolume != nil {
		p.MusicVolume = *stored.MusicVolume
	}
	if stored.SFXVolume != nil {
		p.SFXVolume = *stored.SFXVolume
	}
	if stored.MusicMuted != nil {
		p.MusicMuted = *stored.MusicMuted
	}
	if stored.SFXMuted != nil {
		p.SFXMuted = *stored.SFXMuted
	}
	return p, nil
}

// UpdateAudio applies patch, clamping volumes, and saves every field.
func (s *PrefsService) UpdateAudio(ctx context.Context, patch AudioPrefsPatch) (AudioPrefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.Audio(ctx)
	if err != nil {
		return p, err
	}
	if patch.MusicVolume != nil {
		p.MusicVolume = utils.ClampFloat(*patch.MusicVolume, 0, 1)
	}
	if patch.SFXVolume != nil {
		p.SFXVolume = utils.ClampFloat(*patch.SFXVolume, 0, 1)
	}
	if patch.MusicMuted != nil {
		p.MusicMuted = *patch.MusicMuted
	}
	if patch.SFXMuted != nil {
		p.SFXMuted = *patch.SFXMuted
	}
	err = s.store.Set(ctx, map[string]string{
		keyMusicVolume: strconv.FormatFloat(p.MusicVolume, 'f', -1, 64),
		keySFXVolume:   strconv.FormatFloat(p.SFXVolume, 'f', -1, 64),
		keyMusicMuted:  strconv.FormatBool(p.MusicMuted),
		keySFXMuted:    strconv.FormatBool(p.SFXMuted),
	})
	if err != nil {
		return p, fmt.Errorf("save audio prefs: %w", err)
	}
	return p, nil
}
