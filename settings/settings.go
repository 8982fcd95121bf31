package settings

import (
	"fmt"
	"log"

	"github.com/milk9111/stress/common"
	"github.com/quasilyte/gdata"
	"gopkg.in/yaml.v3"
)

const settingsKey = "settings"

// Settings are the user preferences kept between runs.
type Settings struct {
	SFXVolume   float64 `yaml:"sfx_volume"`
	MusicVolume float64 `yaml:"music_volume"`
	Muted       bool    `yaml:"muted"`
	Fullscreen  bool    `yaml:"fullscreen"`
}

func Default() Settings {
	return Settings{SFXVolume: 1, MusicVolume: 0.7}
}

// SFX is the effective effects volume.
func (s Settings) SFX() float64 {
	if s.Muted {
		return 0
	}
	return common.Clamp01(s.SFXVolume)
}

// Music is the effective music volume.
func (s Settings) Music() float64 {
	if s.Muted {
		return 0
	}
	return common.Clamp01(s.MusicVolume)
}

// Backend stores opaque items by key. *gdata.Manager satisfies it.
type Backend interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store loads and saves Settings through a Backend. A Store without a
// backend keeps settings in memory only.
type Store struct {
	backend Backend
	current Settings
}

// Open opens the per-user gdata storage for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("settings: open storage: %w", err)
	}
	return NewStore(m), nil
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend, current: Default()}
}

// Load reads saved settings. Missing data leaves the defaults in place.
func (s *Store) Load() (Settings, error) {
	if s.backend == nil {
		return s.current, nil
	}
	data, err := s.backend.LoadItem(settingsKey)
	if err != nil {
		return s.current, fmt.Errorf("settings: load: %w", err)
	}
	if data == nil {
		return s.current, nil
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return s.current, fmt.Errorf("settings: parse: %w", err)
	}
	loaded.SFXVolume = common.Clamp01(loaded.SFXVolume)
	loaded.MusicVolume = common.Clamp01(loaded.MusicVolume)
	s.current = loaded
	return s.current, nil
}

// Save replaces the current settings and writes them out.
func (s *Store) Save(v Settings) error {
	s.current = v
	if s.backend == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := s.backend.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

func (s *Store) Current() Settings { return s.current }

// Update applies fn to the current settings and saves the result. Save
// failures are logged; the in-memory settings still change.
func (s *Store) Update(fn func(*Settings)) Settings {
	next := s.current
	fn(&next)
	if err := s.Save(next); err != nil {
		log.Printf("settings: %v", err)
	}
	return s.current
}
