package camera

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-yamaguchi/tex-shooter/exposure"
	"github.com/bob-yamaguchi/tex-shooter/logger"
)

func newTestController(t *testing.T) (*Controller, *Simulator, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	sim := NewSimulator("EOS Test")
	return NewController(sim, logger.New(logger.WithWriter(&buf), logger.WithLevel(logger.LevelWarn))), sim, &buf
}

func TestConnect(t *testing.T) {
	t.Run("opens a session and pushes the settings", func(t *testing.T) {
		c, sim, buf := newTestController(t)
		settings := exposure.SettingsFrom("400", "2.8", "1/60")

		desc, err := c.Connect(&settings)

		require.NoError(t, err)
		assert.Equal(t, "EOS Test", desc)
		assert.True(t, c.Connected())
		assert.Equal(t, exposure.ISO400, sim.ISO)
		assert.Equal(t, "f/2.8", sim.Aperture.String())
		assert.Equal(t, "1/60", sim.Shutter.String())
		assert.Empty(t, buf.String())
	})

	t.Run("no camera attached", func(t *testing.T) {
		c, sim, _ := newTestController(t)
		sim.Absent = true
		settings := exposure.NewSettings()

		_, err := c.Connect(&settings)

		assert.ErrorIs(t, err, ErrNoDevice)
		assert.False(t, c.Connected())
	})

	t.Run("reconnect closes the previous session", func(t *testing.T) {
		c, sim, _ := newTestController(t)
		settings := exposure.NewSettings()

		_, err := c.Connect(&settings)
		require.NoError(t, err)
		_, err = c.Connect(&settings)
		require.NoError(t, err)
		assert.True(t, sim.Open)

		require.NoError(t, c.Disconnect())
		assert.False(t, sim.Open)
		assert.False(t, c.Connected())
		assert.Equal(t, "", c.Description())
	})
}

func TestApplyNotConnected(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.ErrorIs(t, c.ApplyISO("100"), ErrNotConnected)
	assert.ErrorIs(t, c.ApplyAperture("4.0"), ErrNotConnected)
	assert.ErrorIs(t, c.ApplyShutter("1/15"), ErrNotConnected)
}

func TestApplyFallbacks(t *testing.T) {
	c, sim, buf := newTestController(t)
	settings := exposure.NewSettings()
	_, err := c.Connect(&settings)
	require.NoError(t, err)

	require.NoError(t, c.ApplyISO("1600"))
	assert.Equal(t, exposure.ISO1600, sim.ISO)

	t.Run("unsupported iso", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, c.ApplyISO("999"))
		assert.Equal(t, exposure.DefaultISO, sim.ISO)
		assert.Contains(t, buf.String(), `[WARN] iso "999" not supported`)
	})

	t.Run("non-numeric iso", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, c.ApplyISO("auto"))
		assert.Equal(t, exposure.DefaultISO, sim.ISO)
		assert.Contains(t, buf.String(), `parsing iso "auto"`)
	})

	t.Run("fractional iso", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, c.ApplyISO("100.5"))
		assert.Equal(t, exposure.DefaultISO, sim.ISO)
		assert.Contains(t, buf.String(), "[WARN]")
	})

	t.Run("aperture without decimal", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, c.ApplyAperture("8.0"))
		require.NoError(t, c.ApplyAperture("4"))
		assert.Equal(t, exposure.DefaultAperture, sim.Aperture)
		assert.Contains(t, buf.String(), `aperture "4" not supported`)
	})

	t.Run("unknown shutter", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, c.ApplyShutter("1/4000"))
		assert.Equal(t, exposure.DefaultShutter, sim.Shutter)
		assert.Contains(t, buf.String(), `shutter speed "1/4000" not supported`)
	})
}

func TestApplySessionError(t *testing.T) {
	c, sim, _ := newTestController(t)
	settings := exposure.NewSettings()
	_, err := c.Connect(&settings)
	require.NoError(t, err)

	sim.FailSet = errors.New("device busy")

	assert.ErrorContains(t, c.ApplyISO("100"), "device busy")
	assert.ErrorContains(t, c.ApplyAperture("4.0"), "device busy")
	assert.ErrorContains(t, c.ApplyShutter("1/15"), "device busy")
}
