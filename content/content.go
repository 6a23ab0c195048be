// Package content serves the static educational material of the
// dashboard: daily tips, video links, the support-group directory and
// figure descriptors. Everything is loaded from one YAML file into an
// in-memory store; the file can be hot-reloaded while serving.
package content

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v2"
)

// Video is a linked educational video.
type Video struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// SupportGroup is one entry of the local support-group directory.
type SupportGroup struct {
	Name    string `yaml:"name" json:"name"`
	Phone   string `yaml:"phone" json:"phone"`
	Website string `yaml:"website" json:"website"`
}

// Figure describes one chart image and its caption.
type Figure struct {
	Image   string `yaml:"image" json:"image"`
	Title   string `yaml:"title" json:"title"`
	Caption string `yaml:"caption" json:"caption"`
}

// Bundle is the full content file.
type Bundle struct {
	Tips          []string       `yaml:"tips" json:"tips"`
	Videos        []Video        `yaml:"videos" json:"videos"`
	SupportGroups []SupportGroup `yaml:"support_groups" json:"support_groups"`
	Figures       []Figure       `yaml:"figures" json:"figures"`
}

// Store holds the current bundle behind a read lock; Reload swaps it
// atomically so in-flight readers never see a half-parsed file.
type Store struct {
	mu     sync.RWMutex
	path   string
	bundle Bundle
}

// NewStore loads the content file. A missing or malformed file is an
// error: the dashboard's static tabs are part of its contract.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the content file, keeping the previous bundle on
// failure.
func (s *Store) Reload() error {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read content file: %w", err)
	}

	var bundle Bundle
	if err := yaml.Unmarshal(payload, &bundle); err != nil {
		return fmt.Errorf("decode content file: %w", err)
	}

	s.mu.Lock()
	s.bundle = bundle
	s.mu.Unlock()
	return nil
}

// Tips returns the daily-ritual tips.
func (s *Store) Tips() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.bundle.Tips...)
}

// Videos returns the video links.
func (s *Store) Videos() []Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Video(nil), s.bundle.Videos...)
}

// SupportGroups returns the support-group directory.
func (s *Store) SupportGroups() []SupportGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SupportGroup(nil), s.bundle.SupportGroups...)
}

// Figures returns the figure descriptors.
func (s *Store) Figures() []Figure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Figure(nil), s.bundle.Figures...)
}
