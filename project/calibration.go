package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// LensCalibration holds the camera matrix and distortion coefficients of a
// zoom lens at both ends of its range. The tele keys are spelled "tale" in
// existing calibration files.
type LensCalibration struct {
	FocalLengthWide float32   `json:"focal_length_wide"`
	FocalLengthTele float32   `json:"focal_length_tale"`
	MatWide         []float32 `json:"mat_wide"`
	DistWide        []float32 `json:"dist_wide"`
	MatTele         []float32 `json:"mat_tale"`
	DistTele        []float32 `json:"dist_tale"`
}

func (c *LensCalibration) Save(path string) error {
	return saveJSON(c, path)
}

func (c *LensCalibration) Load(path string) error {
	return loadJSON(c, path)
}

// CalibrationDir is <root>/calibration.
func (s *Settings) CalibrationDir() string {
	return filepath.Join(s.RootPath, CalibrationDirName)
}

// CalibrationList returns the names (without .json) of the calibration files
// under the project root, sorted.
func (s *Settings) CalibrationList() ([]string, error) {
	entries, err := os.ReadDir(s.CalibrationDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading calibration dir: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
	}
	slices.Sort(names)
	return names, nil
}

// LoadCalibration reads <root>/calibration/<name>.json.
func (s *Settings) LoadCalibration(name string) (*LensCalibration, error) {
	if err := validateProcessName(name); err != nil {
		return nil, err
	}
	var c LensCalibration
	if err := c.Load(filepath.Join(s.CalibrationDir(), name+".json")); err != nil {
		return nil, fmt.Errorf("loading calibration %s: %w", name, err)
	}
	return &c, nil
}
