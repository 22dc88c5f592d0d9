package exposure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rwcarlsen/goexif/exif"
)

// Shot is the exposure recorded in a captured image.
type Shot struct {
	Path     string
	Settings Settings
	EV       float64
}

type shotReadError struct {
	fileName string
	err      error
}

func (e shotReadError) Error() string {
	return fmt.Sprintf("reading exposure of %s: %s", e.fileName, e.err.Error())
}

func (e shotReadError) Unwrap() error {
	return e.err
}

// ReadShot decodes the EXIF exposure tags of the image at path.
func ReadShot(path string) (Shot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Shot{}, shotReadError{fileName: path, err: err}
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return Shot{}, shotReadError{fileName: path, err: err}
	}

	settings, err := settingsFromExif(x)
	if err != nil {
		return Shot{}, shotReadError{fileName: path, err: err}
	}

	ev, err := settings.EV()
	if err != nil {
		return Shot{}, shotReadError{fileName: path, err: err}
	}

	return Shot{Path: path, Settings: settings, EV: ev}, nil
}

func settingsFromExif(x *exif.Exif) (Settings, error) {
	tag, err := x.Get(exif.ISOSpeedRatings)
	if err != nil {
		return Settings{}, fmt.Errorf("iso tag: %w", err)
	}
	iso, err := tag.Int(0)
	if err != nil {
		return Settings{}, fmt.Errorf("iso tag: %w", err)
	}

	tag, err = x.Get(exif.FNumber)
	if err != nil {
		return Settings{}, fmt.Errorf("f-number tag: %w", err)
	}
	fn, fd, err := tag.Rat2(0)
	if err != nil {
		return Settings{}, fmt.Errorf("f-number tag: %w", err)
	}
	if fd == 0 {
		return Settings{}, errors.New("f-number tag: zero denominator")
	}

	tag, err = x.Get(exif.ExposureTime)
	if err != nil {
		return Settings{}, fmt.Errorf("exposure time tag: %w", err)
	}
	tn, td, err := tag.Rat2(0)
	if err != nil {
		return Settings{}, fmt.Errorf("exposure time tag: %w", err)
	}
	if tn < 0 || td <= 0 || tn > int64(^uint32(0)) || td > int64(^uint32(0)) {
		return Settings{}, fmt.Errorf("exposure time tag: %d/%d out of range", tn, td)
	}

	shutter := Rational{Numerator: uint32(tn), Denominator: uint32(td)}
	return SettingsFrom(
		strconv.Itoa(iso),
		strconv.FormatFloat(float64(fn)/float64(fd), 'f', 1, 64),
		FormatShutter(shutter),
	), nil
}

// ScanDir reads the exposure of every file in dir whose extension is in exts.
// Files are decoded concurrently; shots are returned sorted by path together
// with every per-file error joined.
func ScanDir(dir string, exts []string) ([]Shot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var wg sync.WaitGroup
	shotsChan := make(chan Shot, len(entries))
	errsChan := make(chan error, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !hasExtension(entry.Name(), exts) {
			continue
		}

		wg.Go(func() {
			shot, err := ReadShot(filepath.Join(dir, entry.Name()))
			if err != nil {
				errsChan <- err
				return
			}
			shotsChan <- shot
		})
	}

	wg.Wait()
	close(shotsChan)
	close(errsChan)

	shots := make([]Shot, 0, len(shotsChan))
	for s := range shotsChan {
		shots = append(shots, s)
	}
	slices.SortFunc(shots, func(a, b Shot) int { return strings.Compare(a.Path, b.Path) })

	for e := range errsChan {
		err = errors.Join(err, e)
	}

	return shots, err
}

func hasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.EqualFold(filepath.Ext(name), "."+ext) {
			return true
		}
	}
	return false
}
