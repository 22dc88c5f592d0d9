package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bob-yamaguchi/tex-shooter/camera"
	"github.com/bob-yamaguchi/tex-shooter/logger"
	"github.com/bob-yamaguchi/tex-shooter/project"
)

// PreviewImages are the texture maps shown on request_img, keyed by the
// name passed to set_image.
var PreviewImages = []struct{ Name, File string }{
	{"albedo", "albedo.jpg"},
	{"normal", "normal.jpg"},
	{"roughness", "roughness.jpg"},
}

type Options struct {
	AssetsDir        string
	PreviewMaxWidth  int
	PreviewMaxHeight int
}

// Application handles UI messages one at a time. It is not safe for
// concurrent use; Server serializes calls to Handle.
type Application struct {
	project *project.Settings
	camera  *camera.Controller
	log     logger.Interface
	opts    Options
}

func New(p *project.Settings, c *camera.Controller, log logger.Interface, opts Options) *Application {
	return &Application{project: p, camera: c, log: log, opts: opts}
}

// LoadProject reads the project settings at path. Unreadable settings are
// logged and replaced by defaults so the camera stays controllable.
func LoadProject(path string, log logger.Interface) *project.Settings {
	s, err := project.Load(path)
	if err != nil {
		log.Warnf("%s; using default settings", err.Error())
		return project.Default(path)
	}
	return s
}

func (a *Application) Project() *project.Settings {
	return a.project
}

// Handle dispatches msg and returns the UI calls to run in reply.
func (a *Application) Handle(msg Message) []Call {
	var calls []Call
	switch msg.Name {
	case "button":
		a.log.Info("pressed")
	case "menu":
		if msg.Info["checked"] == "true" {
			a.log.Infof("menu %q", msg.Value)
		}
	case "request_img":
		calls = a.sendImages()
	case "request_root":
		calls = []Call{a.rootCall()}
	case "change_root":
		calls = a.changeRoot(msg.Value)
	case "request_connecting":
		calls = a.connectCamera()
	case "update_iso":
		a.project.SetISO(msg.Value)
		calls = a.exposureChanged(a.camera.ApplyISO(msg.Value))
	case "update_av":
		a.project.SetAperture(msg.Value)
		calls = a.exposureChanged(a.camera.ApplyAperture(msg.Value))
	case "update_tv":
		a.project.SetShutter(msg.Value)
		calls = a.exposureChanged(a.camera.ApplyShutter(msg.Value))
	case "request_exposure":
		calls = []Call{a.exposureCall()}
	case "create_process":
		calls = a.createProcess(msg.Value)
	case "select_process":
		calls = a.selectProcess(msg.Value)
	case "request_processes":
		calls = a.processList()
	case "request_calibrations":
		calls = a.calibrationList()
	default:
		err := unknownMessageError{name: msg.Name}
		a.log.Warn(err.Error())
		calls = []Call{errorCall("unknown message", err.Error())}
	}

	for i := range calls {
		calls[i].ID = msg.ID
	}
	return calls
}

type unknownMessageError struct {
	name string
}

func (e unknownMessageError) Error() string {
	return fmt.Sprintf("unknown message %q", e.name)
}

func (a *Application) rootCall() Call {
	return call(FuncSetRoot, a.project.RootPath)
}

func (a *Application) save() []Call {
	if err := a.project.Save(); err != nil {
		a.log.Errorf("saving project settings: %s", err.Error())
		return []Call{errorCall("failed to save settings", err.Error())}
	}
	return nil
}

func (a *Application) changeRoot(path string) []Call {
	if path == "" {
		return []Call{errorCall("failed to change root", "no directory selected.")}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return []Call{errorCall("failed to change root", err.Error())}
	}
	a.project.SetRootPath(abs)
	return append(a.save(), a.rootCall())
}

func (a *Application) connectCamera() []Call {
	desc, err := a.camera.Connect(&a.project.LastExposure)
	switch {
	case errors.Is(err, camera.ErrNoDevice):
		a.log.Warn("no camera attached")
		return []Call{call(FuncSetConnection, ConnectionLost)}
	case err != nil && !a.camera.Connected():
		a.log.Errorf("connecting camera: %s", err.Error())
		return []Call{
			call(FuncSetConnection, ConnectionLost),
			errorCall("failed to connect camera", err.Error()),
		}
	case err != nil:
		a.log.Errorf("pushing settings to camera: %s", err.Error())
		return []Call{
			call(FuncSetConnection, desc),
			errorCall("failed to apply settings", err.Error()),
		}
	}
	return []Call{call(FuncSetConnection, desc)}
}

// exposureChanged persists the new exposure and reports it back.
// A disconnected camera is not an error here.
func (a *Application) exposureChanged(applyErr error) []Call {
	calls := a.save()
	if applyErr != nil && !errors.Is(applyErr, camera.ErrNotConnected) {
		a.log.Errorf("%s", applyErr.Error())
		calls = append(calls, errorCall("failed to apply setting", applyErr.Error()))
	}
	return append(calls, a.exposureCall())
}

func (a *Application) exposureCall() Call {
	e := &a.project.LastExposure
	view := ExposureView{
		ISO:      e.ISOString(),
		Aperture: e.ApertureString(),
		Shutter:  e.ShutterString(),
	}
	ev, err := e.EV()
	if err != nil {
		view.Error = err.Error()
	} else {
		view.EV = &ev
	}
	return call(FuncSetExposure, view)
}

func (a *Application) createProcess(name string) []Call {
	if _, err := a.project.CreateProcess(name); err != nil {
		a.log.Errorf("creating process %q: %s", name, err.Error())
		return []Call{errorCall("failed to create process",
			fmt.Sprintf("couldn't make a dir %s or a setting file on that.", name))}
	}
	return append(a.selectProcess(name), a.processList()...)
}

func (a *Application) selectProcess(name string) []Call {
	if err := a.project.SelectProcess(name); err != nil {
		a.log.Warnf("selecting process: %s", err.Error())
		return []Call{errorCall("failed to select process",
			fmt.Sprintf("process %s may not be valid.", name))}
	}
	return a.save()
}

func (a *Application) processList() []Call {
	names, err := a.project.ProcessList()
	if err != nil {
		return []Call{errorCall("failed to list processes", err.Error())}
	}
	return []Call{call(FuncSetProcessList, names)}
}

func (a *Application) calibrationList() []Call {
	names, err := a.project.CalibrationList()
	if err != nil {
		return []Call{errorCall("failed to list calibrations", err.Error())}
	}
	return []Call{call(FuncSetCalibrationList, names)}
}

func (a *Application) sendImages() []Call {
	var calls []Call
	for _, img := range PreviewImages {
		data, err := encodePreview(filepath.Join(a.opts.AssetsDir, img.File), a.opts.PreviewMaxWidth, a.opts.PreviewMaxHeight)
		if err != nil {
			a.log.Warnf("%s", err.Error())
			calls = append(calls, errorCall("failed to load image", img.File))
			continue
		}
		calls = append(calls, call(FuncSetImage, img.Name, data))
	}
	return calls
}
