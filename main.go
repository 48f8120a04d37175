package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Set by compiler, see Makefile
var (
	version = "v0.1.0"
	commit  = "unknown"
	builtBy = "unknown"
)

func main() {

	app := &cli.App{
		Name:                   "quadder",
		Usage:                  "approximate images with quadtrees of flat colored rectangles.",
		Description:            "quadder splits an image into quadrants until each one is flat enough,\nthen paints every quadrant with its average color.",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
			},
			&cli.StringFlag{
				Name:    "quality",
				Aliases: []string{"q"},
				Value:   "average",
			},
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
			},
			&cli.Float64Flag{
				Name:    "threshold",
				Aliases: []string{"t"},
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Value:   "none",
			},
			&cli.UintFlag{
				Name:    "threads",
				Aliases: []string{"j"},
			},
			&cli.BoolFlag{
				Name: "parallel",
			},
			&cli.StringFlag{
				Name:  "outline-color",
				Value: "black",
			},
			&cli.BoolFlag{
				Name: "no-exif-rotation",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "png",
			},
			&cli.StringFlag{
				Name:    "compression",
				Aliases: []string{"c"},
				Value:   "default",
			},
			&cli.BoolFlag{
				Name: "no-overwrite",
			},
			&cli.UintFlag{
				Name:    "width",
				Aliases: []string{"x"},
			},
			&cli.UintFlag{
				Name:    "height",
				Aliases: []string{"y"},
			},
			&cli.UintFlag{
				Name:    "scale",
				Aliases: []string{"s"},
				Value:   1,
			},
			&cli.UintFlag{
				Name:    "upscale",
				Aliases: []string{"u"},
				Value:   1,
			},
			&cli.BoolFlag{
				Name: "verbose",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"v"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "image",
				Usage: "render the quadtree at one depth as a PNG or GIF image",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name: "view-depth",
					},
					&cli.BoolFlag{
						Name: "outline",
					},
				},
				UseShortOptionHandling: true,
				Action:                 renderImage,
			},
			{
				Name:  "gif",
				Usage: "animate the quadtree refining one depth at a time",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name: "sequence-depth",
					},
					&cli.Float64Flag{
						Name:  "fps",
						Value: 1,
					},
					&cli.UintFlag{
						Name:    "loop",
						Aliases: []string{"l"},
					},
					&cli.BoolFlag{
						Name: "no-outline",
					},
					&cli.UintFlag{
						Name:  "colors",
						Value: 64,
					},
					&cli.StringFlag{
						Name:  "dither",
						Value: "none",
					},
				},
				UseShortOptionHandling: true,
				Action:                 renderGIF,
			},
			{
				Name:                   "stats",
				Usage:                  "print the shape of the quadtree",
				UseShortOptionHandling: true,
				Action:                 stats,
			},
		},
		Before: preProcess,
		Action: func(c *cli.Context) error {
			return errors.New("no command specified")
		},
	}

	// Handle version flag
	if len(os.Args) == 2 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println("quadder", version)
		fmt.Println("Commit:", commit)
		fmt.Println("Built by:", builtBy)
		return
	}

	// Hack around issue where required flags are still required even for help
	// https://github.com/urfave/cli/issues/1247
	if len(os.Args) == 3 {
		if os.Args[1] == "h" || os.Args[1] == "help" {
			// Like: quadder help gif
			for _, c := range app.Commands {
				if c.Name == os.Args[2] {
					cli.HelpPrinter(os.Stdout, cli.CommandHelpTemplate, c)
					return
				}
			}
			fmt.Println("no command with that name")
			os.Exit(1)
		} else if os.Args[len(os.Args)-1] == "-h" || os.Args[len(os.Args)-1] == "--help" {
			// Like: quadder gif --help
			for _, c := range app.Commands {
				if c.Name == os.Args[1] {
					cli.HelpPrinter(os.Stdout, cli.CommandHelpTemplate, c)
					return
				}
			}
			fmt.Println("no command with that name")
			os.Exit(1)
		}
	}

	err := app.Run(os.Args)
	if err != nil {
		if len(os.Args) == 1 {
			// Just ran the command with no flags
			return
		}
		fmt.Println(err)
		os.Exit(1)
	}
}
