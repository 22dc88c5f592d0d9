package camera

import (
	"errors"

	"github.com/bob-yamaguchi/tex-shooter/exposure"
)

// Simulator is an in-process camera used when no vendor SDK is linked.
// It remembers the last value of every property.
type Simulator struct {
	Name string

	ISO      exposure.ISOSpeed
	Aperture exposure.ApertureValue
	Shutter  exposure.ShutterSpeed

	Open    bool
	Absent  bool
	FailSet error
}

var (
	_ Library = (*Simulator)(nil)
	_ Device  = (*Simulator)(nil)
	_ Session = (*simSession)(nil)
)

func NewSimulator(name string) *Simulator {
	return &Simulator{Name: name}
}

func (s *Simulator) Devices() ([]Device, error) {
	if s.Absent {
		return nil, nil
	}
	return []Device{s}, nil
}

func (s *Simulator) Description() string {
	return s.Name
}

func (s *Simulator) OpenSession() (Session, error) {
	if s.Open {
		return nil, errors.New("session already open")
	}
	s.Open = true
	return &simSession{sim: s}, nil
}

type simSession struct {
	sim *Simulator
}

func (s *simSession) SetISOSpeed(v exposure.ISOSpeed) error {
	if s.sim.FailSet != nil {
		return s.sim.FailSet
	}
	s.sim.ISO = v
	return nil
}

func (s *simSession) SetAv(v exposure.ApertureValue) error {
	if s.sim.FailSet != nil {
		return s.sim.FailSet
	}
	s.sim.Aperture = v
	return nil
}

func (s *simSession) SetTv(v exposure.ShutterSpeed) error {
	if s.sim.FailSet != nil {
		return s.sim.FailSet
	}
	s.sim.Shutter = v
	return nil
}

func (s *simSession) Close() error {
	s.sim.Open = false
	return nil
}
