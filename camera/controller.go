package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/bob-yamaguchi/tex-shooter/exposure"
	"github.com/bob-yamaguchi/tex-shooter/logger"
)

// Controller owns the single camera session of the application. It is not
// safe for concurrent use; callers serialize access.
type Controller struct {
	lib     Library
	log     logger.Interface
	session Session
	device  string
}

func NewController(lib Library, log logger.Interface) *Controller {
	return &Controller{lib: lib, log: log}
}

func (c *Controller) Connected() bool {
	return c.session != nil
}

// Description of the connected camera, empty when disconnected.
func (c *Controller) Description() string {
	return c.device
}

// Connect opens a session on the first camera and pushes settings to it.
// An existing session is closed first.
func (c *Controller) Connect(settings *exposure.Settings) (string, error) {
	if err := c.Disconnect(); err != nil {
		c.log.Warnf("closing previous camera session: %s", err.Error())
	}

	devices, err := c.lib.Devices()
	if err != nil {
		return "", fmt.Errorf("listing cameras: %w", err)
	}
	if len(devices) == 0 {
		return "", ErrNoDevice
	}

	dev := devices[0]
	session, err := dev.OpenSession()
	if err != nil {
		return "", fmt.Errorf("opening session on %s: %w", dev.Description(), err)
	}
	c.session = session
	c.device = dev.Description()
	c.log.Infof("connected to %s", c.device)

	err = errors.Join(
		c.ApplyISO(settings.ISOString()),
		c.ApplyAperture(settings.ApertureString()),
		c.ApplyShutter(settings.ShutterString()),
	)
	return c.device, err
}

func (c *Controller) Disconnect() error {
	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	c.device = ""
	return err
}

// ApplyISO converts an ISO display string and pushes it to the camera.
// Strings that do not name a supported ISO fall back to ISO 100.
func (c *Controller) ApplyISO(s string) error {
	if c.session == nil {
		return ErrNotConnected
	}
	v := c.isoSpeed(s)
	if err := c.session.SetISOSpeed(v); err != nil {
		return fmt.Errorf("setting iso %s: %w", v, err)
	}
	c.log.Debugf("iso set to %s", v)
	return nil
}

func (c *Controller) isoSpeed(s string) exposure.ISOSpeed {
	iso, err := exposure.ParseISO(s)
	if err != nil {
		c.log.Warnf("%s; using %s", err.Error(), exposure.DefaultISO)
		return exposure.DefaultISO
	}
	if iso != math.Trunc(iso) || iso > math.MaxUint32 {
		c.log.Warnf("iso %q not supported by the camera; using %s", s, exposure.DefaultISO)
		return exposure.DefaultISO
	}
	v, ok := exposure.ConvertISO(uint32(iso))
	if !ok {
		c.log.Warnf("iso %q not supported by the camera; using %s", s, v)
	}
	return v
}

// ApplyAperture pushes an f-number display string, falling back to f/4.0.
func (c *Controller) ApplyAperture(s string) error {
	if c.session == nil {
		return ErrNotConnected
	}
	v, ok := exposure.ConvertAperture(s)
	if !ok {
		c.log.Warnf("aperture %q not supported by the camera; using %s", s, v)
	}
	if err := c.session.SetAv(v); err != nil {
		return fmt.Errorf("setting aperture %s: %w", v, err)
	}
	c.log.Debugf("aperture set to %s", v)
	return nil
}

// ApplyShutter pushes a shutter display string, falling back to 1/15.
func (c *Controller) ApplyShutter(s string) error {
	if c.session == nil {
		return ErrNotConnected
	}
	v, ok := exposure.ConvertShutter(s)
	if !ok {
		c.log.Warnf("shutter speed %q not supported by the camera; using %s", s, v)
	}
	if err := c.session.SetTv(v); err != nil {
		return fmt.Errorf("setting shutter speed %s: %w", v, err)
	}
	c.log.Debugf("shutter speed set to %s", v)
	return nil
}
