package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tm "github.com/buger/goterm"
	"github.com/urfave/cli/v2"

	"github.com/bob-yamaguchi/tex-shooter/app"
	"github.com/bob-yamaguchi/tex-shooter/camera"
	"github.com/bob-yamaguchi/tex-shooter/exposure"
	"github.com/bob-yamaguchi/tex-shooter/logger"
	"github.com/bob-yamaguchi/tex-shooter/project"
)

const simulatorName = "Simulated camera"

// env is what every command needs once flags and config are resolved.
type env struct {
	cfg Config
	log logger.Interface
	out io.Writer
}

func setup(c *cli.Context) (*env, error) {
	cfg := DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = LoadConfigFile(path); err != nil {
			return nil, err
		}
	}

	var o FlagOverrides
	o.LogLevel = stringFlag(c, "log-level")
	o.SettingsPath = stringFlag(c, "settings")
	o.ListenAddr = stringFlag(c, "listen")
	o.AssetsDir = stringFlag(c, "assets")
	o.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, _ := logger.ParseLevel(cfg.Logging.Level)
	if c.Bool("quiet") {
		level = logger.LevelError
	}
	log := logger.New(logger.WithWriter(c.App.ErrWriter), logger.WithLevel(level))

	return &env{cfg: cfg, log: log, out: c.App.Writer}, nil
}

func stringFlag(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

// settingsPath falls back to the working directory when there is no home
// directory to put the settings in.
func (e *env) settingsPath() string {
	if e.cfg.Project.SettingsPath != "" {
		return e.cfg.Project.SettingsPath
	}
	path, err := project.DefaultPath()
	if err != nil {
		e.log.Warnf("%s; using %s in the working directory", err.Error(), project.SettingsFileName)
		return project.SettingsFileName
	}
	return path
}

func (e *env) loadProject() *project.Settings {
	return app.LoadProject(e.settingsPath(), e.log)
}

func serveAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}

	e.log.Infof("no camera SDK linked; using %q", simulatorName)
	ctrl := camera.NewController(camera.NewSimulator(simulatorName), e.log)
	defer ctrl.Disconnect()

	a := app.New(e.loadProject(), ctrl, e.log, app.Options{
		AssetsDir:        e.cfg.Server.AssetsDir,
		PreviewMaxWidth:  e.cfg.Preview.MaxWidth,
		PreviewMaxHeight: e.cfg.Preview.MaxHeight,
	})

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.NewServer(a, e.log).Run(ctx, e.cfg.Server.ListenAddr)
}

// evAction pushes the setting to a simulated camera so the printed codes are
// exactly what a camera would receive, fallbacks included.
func evAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}

	s := exposure.SettingsFrom(c.String("iso"), c.String("aperture"), c.String("shutter"))
	ev, err := s.EV()
	if err != nil {
		return err
	}

	sim := camera.NewSimulator(simulatorName)
	ctrl := camera.NewController(sim, e.log)
	if _, err := ctrl.Connect(&s); err != nil {
		return err
	}
	defer ctrl.Disconnect()

	fmt.Fprintf(e.out, "%-9s %-6s -> %s (0x%02X)\n", "iso", s.ISOString(), sim.ISO, uint32(sim.ISO))
	fmt.Fprintf(e.out, "%-9s %-6s -> %s (0x%02X)\n", "aperture", s.ApertureString(), sim.Aperture, uint32(sim.Aperture))
	fmt.Fprintf(e.out, "%-9s %-6s -> %s (0x%02X)\n", "shutter", s.ShutterString(), sim.Shutter, uint32(sim.Shutter))
	fmt.Fprintf(e.out, "%-9s %.2f\n", "ev", ev)
	return nil
}

func scanAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}

	dir := c.Args().First()
	if dir == "" {
		return errors.New("directory argument is missing")
	}

	exts := append(append([]string{}, e.cfg.Import.JPGExtensions...), e.cfg.Import.RawExtensions...)
	shots, err := exposure.ScanDir(dir, exts)
	if shots == nil {
		return err
	}

	minEV, maxEV := 0.0, 0.0
	for i, shot := range shots {
		if i == 0 || shot.EV < minEV {
			minEV = shot.EV
		}
		if i == 0 || shot.EV > maxEV {
			maxEV = shot.EV
		}
		shutter, _ := shot.Settings.Shutter()
		fmt.Fprintf(e.out, "%-32s ISO %-5s f/%-4s %-6s (%.4fs) EV %s\n",
			filepath.Base(shot.Path),
			shot.Settings.ISOString(),
			shot.Settings.ApertureString(),
			shot.Settings.ShutterString(),
			shutter.Float64(),
			tm.Color(fmt.Sprintf("%.2f", shot.EV), tm.GREEN),
		)
	}

	failed := unwrapJoined(err)
	for _, fe := range failed {
		fmt.Fprintln(e.out, tm.Color(fe.Error(), tm.RED))
	}

	summary := fmt.Sprintf("%d shots / %d unreadable", len(shots), len(failed))
	if len(shots) > 0 {
		summary += fmt.Sprintf(" / EV %.2f .. %.2f", minEV, maxEV)
	}
	fmt.Fprintln(e.out, tm.Color(tm.Bold(summary), tm.YELLOW))
	return nil
}

func unwrapJoined(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

func processListAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	p := e.loadProject()

	names, err := p.ProcessList()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(e.out, "no processes under %s\n", p.RootPath)
		return nil
	}
	for _, name := range names {
		mark := " "
		if name == p.LastProcessing {
			mark = "*"
		}
		fmt.Fprintf(e.out, "%s %s\n", mark, name)
	}
	return nil
}

func processCreateAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	name := c.Args().First()
	if name == "" {
		return errors.New("process name argument is missing")
	}
	p := e.loadProject()

	if c.Bool("dry-run") {
		fmt.Fprintf(e.out, "[dry-run] would create process %s in %s\n", name, p.ProcessDir(name))
		return nil
	}

	if _, err := p.CreateProcess(name); err != nil {
		return err
	}
	if err := p.SelectProcess(name); err != nil {
		return err
	}
	if err := p.Save(); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "created process %s in %s\n", name, p.ProcessDir(name))
	return nil
}

func processSelectAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	name := c.Args().First()
	if name == "" {
		return errors.New("process name argument is missing")
	}
	p := e.loadProject()

	if err := p.SelectProcess(name); err != nil {
		return err
	}
	if c.Bool("dry-run") {
		fmt.Fprintf(e.out, "[dry-run] would select process %s\n", name)
		return nil
	}
	if err := p.Save(); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "selected process %s\n", name)
	return nil
}

func processImportAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() < 2 {
		return errors.New("process name and source directory arguments are missing")
	}
	name, src := c.Args().Get(0), c.Args().Get(1)
	p := e.loadProject()

	dryRun := c.Bool("dry-run")
	if dryRun {
		e.log.Info("Running in Dry-Run mode. No files will be modified.")
	}

	res, err := p.ImportTakes(name, project.ImportOptions{
		SrcDir:            src,
		RawExtensions:     e.cfg.Import.RawExtensions,
		JPGExtensions:     e.cfg.Import.JPGExtensions,
		SidecarExtensions: e.cfg.Import.SidecarExtensions,
		DryRun:            dryRun,
		Overwrite:         c.Bool("overwrite"),
		ClearSource:       c.Bool("clear-card"),
		Logger:            e.log,
	})
	fmt.Fprintf(e.out, "Summary:\nTakes Imported: %d\nSidecars Pruned: %d\nTakes Removed: %d\n", res.Copied, res.Pruned, res.Removed)
	return err
}

func calibrationListAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	p := e.loadProject()

	names, err := p.CalibrationList()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(e.out, "no calibrations under %s\n", p.CalibrationDir())
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(e.out, name)
	}
	return nil
}

func calibrationShowAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	name := c.Args().First()
	if name == "" {
		return errors.New("calibration name argument is missing")
	}

	cal, err := e.loadProject().LoadCalibration(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "wide %gmm mat %v dist %v\n", cal.FocalLengthWide, cal.MatWide, cal.DistWide)
	fmt.Fprintf(e.out, "tele %gmm mat %v dist %v\n", cal.FocalLengthTele, cal.MatTele, cal.DistTele)
	return nil
}
