package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/achilleasa/kifs-explorer/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "kifs-explorer"
	app.Usage = "fly through a real-time ray-marched KIFS fractal"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (debug, info, notice, warning, error)",
		},
		cli.StringSliceFlag{
			Name:  "module-level",
			Usage: "override the log level of a single module as module=level (repeatable)",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load explorer config from a json file or http(s) URL",
		},
		cli.IntFlag{
			Name:  "min-iter",
			Usage: "override the min fractal iteration count",
		},
		cli.IntFlag{
			Name:  "max-iter",
			Usage: "override the max fractal iteration count",
		},
		cli.Float64Flag{
			Name:  "max-speed",
			Usage: "override the max camera speed",
		},
		cli.Float64Flag{
			Name:  "target-fps",
			Usage: "scale smoothing and movement by elapsed time; 0 applies them once per frame",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "seed for shape randomization; 0 uses the current time",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "fly",
			Usage: "explore the fractal in an interactive window",
			Description: `
Open a window and ray-march the fractal on the GPU. Use WASD to move, the mouse
to look around and R to randomize the fractal shape. Esc releases the cursor;
pressing it again closes the window.

The iteration count and the camera speed adapt to the distance from the
fractal surface.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 1024,
					Usage: "window width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 768,
					Usage: "window height",
				},
				cli.BoolFlag{
					Name:  "pick-config",
					Usage: "select a config file using a native file dialog",
				},
				cli.StringFlag{
					Name:  "save-config",
					Usage: "save the final camera pose and shape to this file on exit",
				},
				cli.StringFlag{
					Name:  "mirror",
					Usage: "mirror frame parameters to websocket clients listening on this address",
				},
				cli.StringSliceFlag{
					Name:  "origin",
					Value: &cli.StringSlice{},
					Usage: "allowed websocket origin pattern for cross-origin mirror clients",
				},
			},
			Action: cmd.Fly,
		},
		{
			Name:  "serve",
			Usage: "drive the explorer from websocket clients",
			Description: `
Run the camera controller without a window. Clients connect to /ws, send JSON
input frames and receive the JSON render parameters of every tick.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Value: "localhost:8080",
					Usage: "listen address",
				},
				cli.IntFlag{
					Name:  "hz",
					Value: 60,
					Usage: "controller tick rate",
				},
				cli.Int64Flag{
					Name:  "ticks",
					Usage: "stop after this many ticks; 0 runs until interrupted",
				},
				cli.StringSliceFlag{
					Name:  "origin",
					Value: &cli.StringSlice{},
					Usage: "allowed websocket origin pattern for cross-origin clients",
				},
			},
			Action: cmd.Serve,
		},
		{
			Name:  "probe",
			Usage: "print distance estimates and quality settings along a ray",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from",
					Usage: "ray origin as x,y,z (defaults to the configured camera position)",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: "0,0,-1",
					Usage: "ray direction as x,y,z",
				},
				cli.IntFlag{
					Name:  "steps",
					Value: 10,
					Usage: "number of samples",
				},
				cli.Float64Flag{
					Name:  "step",
					Value: 1,
					Usage: "distance between samples",
				},
			},
			Action: cmd.Probe,
		},
		{
			Name:  "slice",
			Usage: "export a cross-section of the distance field as a PNG image",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "slice.png",
					Usage: "image filename",
				},
				cli.IntFlag{
					Name:  "size",
					Value: 512,
					Usage: "image width and height",
				},
				cli.Float64Flag{
					Name:  "extent",
					Value: 12,
					Usage: "half extent of the slice in world units",
				},
				cli.StringFlag{
					Name:  "center",
					Usage: "slice center as x,y,z (defaults to the configured camera position)",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of sampling workers; 0 uses one per CPU",
				},
				cli.BoolFlag{
					Name:  "balance",
					Usage: "balance rows between workers using timings of the previous pass",
				},
				cli.IntFlag{
					Name:  "passes",
					Value: 1,
					Usage: "number of sampling passes; block timings of each pass feed the next",
				},
				cli.IntFlag{
					Name:  "iter",
					Usage: "fractal iterations; 0 uses the configured max",
				},
			},
			Action: cmd.Slice,
		},
	}

	app.Run(os.Args)
}
