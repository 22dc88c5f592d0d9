package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettings(t *testing.T) *Settings {
	t.Helper()
	dirTest := t.TempDir()
	return Default(filepath.Join(dirTest, SettingsFileName))
}

func TestCreateProcess(t *testing.T) {
	t.Run("creates directory and default process file", func(t *testing.T) {
		s := newTestSettings(t)
		s.SetISO("200")

		p, err := s.CreateProcess("brick")

		require.NoError(t, err)
		assert.Equal(t, "200", p.Exposure.ISOString())
		assert.Equal(t, DefaultProcessingOptions(), p.Options)
		assert.FileExists(t, filepath.Join(s.RootPath, "brick", ProcessFileName))
	})

	t.Run("loads an existing process file", func(t *testing.T) {
		s := newTestSettings(t)
		dir := filepath.Join(s.RootPath, "wood")
		require.NoError(t, os.MkdirAll(dir, 0755))
		doc := `{"description":"oak floor","exposure":{"iso":"50","aperture_value":"8.0","time_value":"1/4"},"options":{"auto_trimming":false,"trim_point":[[0,1],[0,0],[0,1],[1,1]],"tiling":false,"tiling_blend":0.25}}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ProcessFileName), []byte(doc), 0644))

		p, err := s.CreateProcess("wood")

		require.NoError(t, err)
		assert.Equal(t, "oak floor", p.Description)
		assert.Equal(t, "1/4", p.Exposure.ShutterString())
		assert.False(t, p.Options.AutoTrimming)
		assert.Equal(t, float32(0.25), p.Options.TilingBlend)
	})

	t.Run("broken process file is an error", func(t *testing.T) {
		s := newTestSettings(t)
		dir := filepath.Join(s.RootPath, "bad")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ProcessFileName), []byte("{"), 0644))

		_, err := s.CreateProcess("bad")

		assert.Error(t, err)
	})

	t.Run("rejects names that escape the root", func(t *testing.T) {
		s := newTestSettings(t)

		for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
			_, err := s.CreateProcess(name)
			assert.Error(t, err, name)
		}
	})
}

func TestProcessList(t *testing.T) {
	s := newTestSettings(t)

	names, err := s.ProcessList()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = s.CreateProcess("stone")
	require.NoError(t, err)
	_, err = s.CreateProcess("brick")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(s.RootPath, "not-a-process"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(s.RootPath, "stray.json"), []byte("{}"), 0644))

	names, err = s.ProcessList()
	require.NoError(t, err)
	assert.Equal(t, []string{"brick", "stone"}, names)
}

func TestSelectProcess(t *testing.T) {
	s := newTestSettings(t)
	_, err := s.CreateProcess("brick")
	require.NoError(t, err)

	require.NoError(t, s.SelectProcess("brick"))
	assert.Equal(t, "brick", s.LastProcessing)

	err = s.SelectProcess("nothing")
	assert.ErrorIs(t, err, ErrProcessNotFound)
	assert.Equal(t, "brick", s.LastProcessing)
}

func TestCalibrations(t *testing.T) {
	s := newTestSettings(t)

	names, err := s.CalibrationList()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, os.MkdirAll(s.CalibrationDir(), 0755))
	c := LensCalibration{
		FocalLengthWide: 24,
		FocalLengthTele: 70,
		MatWide:         []float32{1, 0, 0, 0, 1, 0, 0, 0, 1},
		DistWide:        []float32{0.1, -0.02},
	}
	require.NoError(t, c.Save(filepath.Join(s.CalibrationDir(), "zoom24-70.json")))
	require.NoError(t, os.WriteFile(filepath.Join(s.CalibrationDir(), "readme.txt"), []byte("x"), 0644))

	names, err = s.CalibrationList()
	require.NoError(t, err)
	assert.Equal(t, []string{"zoom24-70"}, names)

	got, err := s.LoadCalibration("zoom24-70")
	require.NoError(t, err)
	assert.Equal(t, c, *got)

	_, err = s.LoadCalibration("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCalibrationFileFormat(t *testing.T) {
	s := newTestSettings(t)
	require.NoError(t, os.MkdirAll(s.CalibrationDir(), 0755))
	doc := `{"focal_length_wide":24.0,"focal_length_tale":70.0,"mat_wide":[1.0],"dist_wide":[0.5],"mat_tale":[2.0],"dist_tale":[-0.25]}`
	require.NoError(t, os.WriteFile(filepath.Join(s.CalibrationDir(), "zoom.json"), []byte(doc), 0644))

	got, err := s.LoadCalibration("zoom")

	require.NoError(t, err)
	assert.Equal(t, LensCalibration{
		FocalLengthWide: 24,
		FocalLengthTele: 70,
		MatWide:         []float32{1},
		DistWide:        []float32{0.5},
		MatTele:         []float32{2},
		DistTele:        []float32{-0.25},
	}, *got)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"focal_length_tale":70`)
	assert.Contains(t, string(b), `"mat_tale":[2]`)
}
