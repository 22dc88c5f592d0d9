// Package camera pushes exposure settings to a tethered camera session.
// The vendor SDK sits behind the Library, Device and Session interfaces.
package camera

import (
	"errors"

	"github.com/bob-yamaguchi/tex-shooter/exposure"
)

var (
	ErrNotConnected = errors.New("camera not connected")
	ErrNoDevice     = errors.New("no camera found")
)

// Session is an open connection to one camera.
type Session interface {
	SetISOSpeed(v exposure.ISOSpeed) error
	SetAv(v exposure.ApertureValue) error
	SetTv(v exposure.ShutterSpeed) error
	Close() error
}

type Device interface {
	Description() string
	OpenSession() (Session, error)
}

// Library enumerates the cameras attached to the host.
type Library interface {
	Devices() ([]Device, error)
}
