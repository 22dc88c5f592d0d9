package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bob-yamaguchi/tex-shooter/exposure"
)

const dirPerms = 0755

// ProcessingOptions controls how the takes of a process are turned into textures.
type ProcessingOptions struct {
	AutoTrimming bool          `json:"auto_trimming"`
	TrimPoint    [4][2]float32 `json:"trim_point"`
	Tiling       bool          `json:"tiling"`
	TilingBlend  float32       `json:"tiling_blend"`
}

func DefaultProcessingOptions() ProcessingOptions {
	return ProcessingOptions{
		AutoTrimming: true,
		TrimPoint:    [4][2]float32{{0, 1}, {0, 0}, {0, 1}, {1, 1}},
		Tiling:       true,
		TilingBlend:  0.1,
	}
}

// ProcessingSettings is stored as process.json inside each process directory.
type ProcessingSettings struct {
	Description string            `json:"description"`
	Exposure    exposure.Settings `json:"exposure"`
	Options     ProcessingOptions `json:"options"`
}

func NewProcessingSettings() ProcessingSettings {
	return ProcessingSettings{
		Exposure: exposure.NewSettings(),
		Options:  DefaultProcessingOptions(),
	}
}

func (p *ProcessingSettings) Save(path string) error {
	return saveJSON(p, path)
}

func (p *ProcessingSettings) Load(path string) error {
	return loadJSON(p, path)
}

// ProcessDir returns the directory of the named process.
func (s *Settings) ProcessDir(name string) string {
	return filepath.Join(s.RootPath, name)
}

// ProcessList returns the names of the root's subdirectories that contain a
// process.json, sorted. A missing root yields an empty list.
func (s *Settings) ProcessList() ([]string, error) {
	entries, err := os.ReadDir(s.RootPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading project root: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.RootPath, entry.Name(), ProcessFileName)); err == nil {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// CreateProcess makes the process directory and its process.json. An
// existing process.json is loaded instead of being overwritten.
func (s *Settings) CreateProcess(name string) (*ProcessingSettings, error) {
	if err := validateProcessName(name); err != nil {
		return nil, err
	}

	dir := s.ProcessDir(name)
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, fmt.Errorf("creating process dir %s: %w", name, err)
	}

	path := filepath.Join(dir, ProcessFileName)
	settings := NewProcessingSettings()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		settings.Exposure = s.LastExposure
		if err := settings.Save(path); err != nil {
			return nil, err
		}
		return &settings, nil
	}

	if err := settings.Load(path); err != nil {
		return nil, fmt.Errorf("loading process %s: %w", name, err)
	}
	return &settings, nil
}

// SelectProcess records name as the last process, if it exists.
func (s *Settings) SelectProcess(name string) error {
	if !s.HasProcess(name) {
		return fmt.Errorf("%w: %s", ErrProcessNotFound, name)
	}
	s.LastProcessing = name
	return nil
}

func (s *Settings) HasProcess(name string) bool {
	if validateProcessName(name) != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(s.ProcessDir(name), ProcessFileName))
	return err == nil
}

func validateProcessName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid process name %q", name)
	}
	return nil
}
