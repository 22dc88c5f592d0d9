package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bob-yamaguchi/tex-shooter/exposure"
)

const (
	SettingsFileName   = "texshooter.json"
	DefaultProjectDir  = "texshooter"
	ProcessFileName    = "process.json"
	CalibrationDirName = "calibration"
)

var (
	ErrNoHomeDir       = errors.New("could not get a home directory")
	ErrProcessNotFound = errors.New("process not found")
)

// Settings is the per-user project file: where processes live, the last
// exposure the user dialed in and the last selected process.
type Settings struct {
	RootPath       string            `json:"root_path"`
	LastExposure   exposure.Settings `json:"last_exposure"`
	LastProcessing string            `json:"last_processing"`

	path string
}

// DefaultPath returns ~/texshooter.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: %v", ErrNoHomeDir, err)
	}
	return filepath.Join(home, SettingsFileName), nil
}

// Default returns settings that will be saved to path, with the project root
// next to it.
func Default(path string) *Settings {
	return &Settings{
		RootPath:     filepath.Join(filepath.Dir(path), DefaultProjectDir),
		LastExposure: exposure.NewSettings(),
		path:         path,
	}
}

// Load reads the settings at path. A missing file yields Default(path);
// any other failure is returned so the caller can decide to fall back.
func Load(path string) (*Settings, error) {
	s := Default(path)
	if err := loadJSON(s, path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(path), nil
		}
		return nil, fmt.Errorf("loading project settings: %w", err)
	}
	s.path = path
	return s, nil
}

// Path is the file Save writes to.
func (s *Settings) Path() string {
	return s.path
}

func (s *Settings) Save() error {
	if s.path == "" {
		return errors.New("saving project settings: no settings path")
	}
	return saveJSON(s, s.path)
}

func (s *Settings) SetRootPath(path string) {
	s.RootPath = path
}

func (s *Settings) ISO() string      { return s.LastExposure.ISOString() }
func (s *Settings) Aperture() string { return s.LastExposure.ApertureString() }
func (s *Settings) Shutter() string  { return s.LastExposure.ShutterString() }

func (s *Settings) SetISO(v string)      { s.LastExposure.SetISO(v) }
func (s *Settings) SetAperture(v string) { s.LastExposure.SetAperture(v) }
func (s *Settings) SetShutter(v string)  { s.LastExposure.SetShutter(v) }
