package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/spheretrace/cmd"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

func main() {
	// Settings from an optional .env file are exposed as environment
	// variables so they can feed flag EnvVar overrides.
	_ = godotenv.Load()

	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "spheretrace"
	app.Usage = "render sphere scenes using path tracing"
	app.Version = "0.0.1"
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
			Name:   "log-level",
			Usage:  "log level (debug, info, notice, warning or error)",
			EnvVar: "SPHERETRACE_LOG_LEVEL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Trace a frame of a builtin scene or a scene archive and write it to an image
file. The output format is selected by the file extension (png, ppm, bmp,
tif, tga or webp). Output paths of the form s3://bucket/key are uploaded
using the S3_ENDPOINT, S3_REGION, S3_ACCESS_KEY and S3_SECRET_KEY settings.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "width",
					Value:  200,
					Usage:  "frame width",
					EnvVar: "SPHERETRACE_WIDTH",
				},
				cli.IntFlag{
					Name:   "height",
					Value:  100,
					Usage:  "frame height",
					EnvVar: "SPHERETRACE_HEIGHT",
				},
				cli.IntFlag{
					Name:   "spp",
					Value:  100,
					Usage:  "samples per pixel",
					EnvVar: "SPHERETRACE_SPP",
				},
				cli.Int64Flag{
					Name:   "seed",
					Value:  0,
					Usage:  "random seed",
					EnvVar: "SPHERETRACE_SEED",
				},
				cli.StringFlag{
					Name:   "scene, s",
					Value:  "simple",
					Usage:  "builtin scene name or path/URL to a scene zip archive",
					EnvVar: "SPHERETRACE_SCENE",
				},
				cli.StringFlag{
					Name:   "out, o",
					Value:  "frame.png",
					Usage:  "image filename or s3://bucket/key for the rendered frame",
					EnvVar: "SPHERETRACE_OUT",
				},
				cli.IntFlag{
					Name:   "workers",
					Value:  0,
					Usage:  "number of cpu tracers; 0 uses one tracer per cpu core",
					EnvVar: "SPHERETRACE_WORKERS",
				},
				cli.BoolFlag{
					Name:   "serial",
					Usage:  "trace the frame on a single goroutine with a single random stream",
					EnvVar: "SPHERETRACE_SERIAL",
				},
				cli.StringFlag{
					Name:   "thumbnail",
					Usage:  "also write a thumbnail that fits in a WxH box",
					EnvVar: "SPHERETRACE_THUMBNAIL",
				},
				cli.BoolFlag{
					Name:   "progress",
					Usage:  "display a progress bar",
					EnvVar: "SPHERETRACE_PROGRESS",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scene",
			Usage: "inspect and export scenes",
			Subcommands: []cli.Command{
				{
					Name:      "export",
					Usage:     "export a builtin scene to a zip archive",
					ArgsUsage: "scene_name scene_file.zip",
					Flags: []cli.Flag{
						cli.IntFlag{
							Name:  "width",
							Value: 200,
							Usage: "frame width used for the camera aspect ratio",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 100,
							Usage: "frame height used for the camera aspect ratio",
						},
						cli.Int64Flag{
							Name:  "seed",
							Value: 0,
							Usage: "random seed for generated scenes",
						},
					},
					Action: cmd.ExportScene,
				},
				{
					Name:      "info",
					Usage:     "display information about a builtin scene or scene archive",
					ArgsUsage: "scene_name|scene_file.zip",
					Flags: []cli.Flag{
						cli.Int64Flag{
							Name:  "seed",
							Value: 0,
							Usage: "random seed for generated scenes",
						},
					},
					Action: cmd.ShowSceneInfo,
				},
				{
					Name:   "list",
					Usage:  "list builtin scenes",
					Action: cmd.ListScenes,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
