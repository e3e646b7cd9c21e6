// Package settings persists player preferences between runs.
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "player"
)

type Settings struct {
	PlayerName string  `yaml:"player_name"`
	Volume     float64 `yaml:"volume"`
	Muted      bool    `yaml:"muted"`
	BestScore  int     `yaml:"best_score"`
	BestLevel  int     `yaml:"best_level"`
}

func Defaults() Settings {
	return Settings{
		PlayerName: "pilot",
		Volume:     0.8,
	}
}

// Store keeps settings in memory and writes them through gdata. A nil
// manager gives a memory-only store.
type Store struct {
	m        *gdata.Manager
	settings Settings
}

// Open creates the gdata manager for appName. When the platform storage is
// unavailable the store degrades to memory.
func Open(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("settings: open storage: %v (settings will not persist)", err)
		m = nil
	}
	return NewStore(m)
}

func NewStore(m *gdata.Manager) *Store {
	s := &Store{m: m, settings: Defaults()}
	if err := s.Load(); err != nil {
		log.Printf("settings: %v (using defaults)", err)
	}
	return s
}

func (s *Store) Persistent() bool {
	return s.m != nil
}

func (s *Store) Load() error {
	s.settings = Defaults()
	if s.m == nil || !s.m.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := s.m.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}
	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: decode: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)
	s.settings = loaded
	return nil
}

func (s *Store) Save() error {
	if s.m == nil {
		return nil
	}
	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := s.m.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

func (s *Store) Get() Settings {
	return s.settings
}

func (s *Store) SetPlayerName(name string) {
	if name == "" {
		return
	}
	s.settings.PlayerName = name
}

func (s *Store) SetVolume(v float64) {
	s.settings.Volume = clampVolume(v)
}

func (s *Store) SetMuted(m bool) {
	s.settings.Muted = m
}

// RecordScore keeps the best score seen so far and reports whether score
// beat it.
func (s *Store) RecordScore(score, level int) bool {
	if score <= s.settings.BestScore {
		return false
	}
	s.settings.BestScore = score
	s.settings.BestLevel = level
	return true
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
