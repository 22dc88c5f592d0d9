package main

// Sample usage:
//
//	tex-shooter serve --listen 127.0.0.1:8420
//	tex-shooter ev --iso 400 --aperture 2.8 --shutter 1/60
//	tex-shooter scan ~/captures
//	tex-shooter --dry-run process import brick /media/card/DCIM/100CANON

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tex-shooter: %s\n", err.Error())
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:                   "tex-shooter",
		Usage:                  "Tethered capture helper for photographed textures",
		UseShortOptionHandling: true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file.",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "One of debug, info, warn, error. Overrides logging.level.",
			},
			&cli.StringFlag{
				Name:  "settings",
				Usage: "Project settings file. Overrides project.settings_path.",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Do not modify any file, just report what would happen.",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "It won't log anything, unless it's an error.",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serves the UI and its websocket bridge to the camera.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address. Overrides server.listen_addr.",
					},
					&cli.StringFlag{
						Name:  "assets",
						Usage: "UI assets directory. Overrides server.assets_dir.",
					},
				},
				Action: serveAction,
			},
			{
				Name:  "ev",
				Usage: "Prints the exposure value of a setting and the matching camera codes.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "iso", Value: "100", Usage: "ISO speed, e.g. \"400\"."},
					&cli.StringFlag{Name: "aperture", Aliases: []string{"av"}, Value: "4.0", Usage: "F-number, e.g. \"2.8\"."},
					&cli.StringFlag{Name: "shutter", Aliases: []string{"tv"}, Value: "1/15", Usage: "Exposure time, e.g. \"1/60\" or \"0.5\"."},
				},
				Action: evAction,
			},
			{
				Name:      "scan",
				Usage:     "Reads the exposure of every image in a directory.",
				ArgsUsage: "dir",
				Action:    scanAction,
			},
			{
				Name:  "calibration",
				Usage: "Inspects the lens calibrations of the project.",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Lists the calibrations under the project root.",
						Action: calibrationListAction,
					},
					{
						Name:      "show",
						Usage:     "Prints a calibration.",
						ArgsUsage: "name",
						Action:    calibrationShowAction,
					},
				},
			},
			{
				Name:  "process",
				Usage: "Manages the processes of the project.",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Lists the processes under the project root.",
						Action: processListAction,
					},
					{
						Name:      "create",
						Usage:     "Creates a process and selects it.",
						ArgsUsage: "name",
						Action:    processCreateAction,
					},
					{
						Name:      "select",
						Usage:     "Selects an existing process.",
						ArgsUsage: "name",
						Action:    processSelectAction,
					},
					{
						Name:      "import",
						Usage:     "Copies the takes of a memory card into a process.",
						ArgsUsage: "name source",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "overwrite",
								Usage: "Overwrite takes already in the process.",
							},
							&cli.BoolFlag{
								Name:  "clear-card",
								Usage: "Remove the imported takes from the source afterwards.",
							},
						},
						Action: processImportAction,
					},
				},
			},
		},
	}
}
