package main

import (
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/makeworld-the-better-one/quadder/quadtree"
	"github.com/urfave/cli/v2"
)

const (
	unsupportedFormat string = "'%s' is an unsupported format, only 'png' or 'gif' are accepted"
)

var (
	// config is the tree configuration, set after pre-processing.
	config quadtree.Config

	outlineColor color.Color

	autoOrientation imaging.DecodeOption

	inputImage string
	outFormat  string // "png" or "gif"

	compLevel png.CompressionLevel

	outFileFlags int // For os.OpenFile

	width  int
	height int
	// scale and upscale will always be 1 or above
	scale   = 1
	upscale = 1

	verbose bool
)

// preProcess is automatically called by the app before anything else.
// It's run in the global context.
func preProcess(c *cli.Context) error {
	runtime.GOMAXPROCS(int(c.Uint("threads")))

	preset, ok := quadtree.PresetByName(c.String("quality"))
	if !ok {
		names := make([]string, len(quadtree.Presets))
		for i, p := range quadtree.Presets {
			names[i] = p.Name
		}
		return fmt.Errorf("quality: '%s' is not one of %s", c.String("quality"), strings.Join(names, ", "))
	}

	filter, err := quadtree.ParseFilterMode(c.String("filter"))
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	// Explicit depth and threshold override the preset
	config = preset.Config(filter)
	if c.IsSet("depth") {
		config.MaxDepth = c.Int("depth")
	}
	if c.IsSet("threshold") {
		config.DetailThreshold = c.Float64("threshold")
	}
	config.Parallel = c.Bool("parallel")
	if err := config.Validate(); err != nil {
		return err
	}

	outlineColor, err = parseColor(c.String("outline-color"))
	if err != nil {
		return fmt.Errorf("outline-color: %w", err)
	}

	autoOrientation = imaging.AutoOrientation(!c.Bool("no-exif-rotation"))
	inputImage = c.String("in")

	formatVal := c.String("format")
	if formatVal != "png" && formatVal != "gif" {
		return fmt.Errorf(unsupportedFormat, formatVal)
	}

	// Figure out output format

	outVal := c.String("out")

	if outVal == "-" || outVal == "" || c.IsSet("format") {
		// Stdout, no output (stats), or the user was explicit
		outFormat = formatVal
	} else {
		// Format wasn't set, so ignore default value of "png"
		// Try to figure out format from output filename
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(outVal), "."))
		if ext == "png" || ext == "gif" {
			outFormat = ext
		} else if ext == "" {
			// No extension, use default format
			outFormat = "png"
		} else {
			// Unsupported extension and no format flag override
			return fmt.Errorf(unsupportedFormat, ext)
		}
	}

	// Set PNG compression type

	switch c.String("compression") {
	case "default":
		compLevel = png.DefaultCompression
	case "no":
		compLevel = png.NoCompression
	case "speed":
		compLevel = png.BestSpeed
	case "size":
		compLevel = png.BestCompression
	default:
		return fmt.Errorf("invalid compression type '%s'", c.String("compression"))
	}

	if c.Bool("no-overwrite") {
		outFileFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	} else {
		outFileFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	// Set here for convenience
	width = int(c.Uint("width"))
	height = int(c.Uint("height"))
	scale = max(1, int(c.Uint("scale")))
	upscale = max(1, int(c.Uint("upscale")))
	verbose = c.Bool("verbose")

	return nil
}

// defaultDepth is the depth rendered when the user doesn't pick one: the
// configured max depth, or the deepest leaf if the tree stopped short of it.
func defaultDepth(tree *quadtree.Tree) int {
	return min(config.MaxDepth, tree.MaxDepth())
}

func renderImage(c *cli.Context) error {
	if globalFlag("out", c).(string) == "" {
		return errors.New("the image command needs an output path, set with --out")
	}

	tree, err := buildTree()
	if err != nil {
		return err
	}

	viewDepth := defaultDepth(tree)
	if c.IsSet("view-depth") {
		viewDepth = c.Int("view-depth")
	}

	img, err := tree.Render(viewDepth, quadtree.RenderOptions{
		Outline:      c.Bool("outline"),
		OutlineColor: outlineColor,
	})
	if err != nil {
		return err
	}

	return writeImage(postProcImage(img), c)
}

var edmName = map[string]dither.ErrorDiffusionMatrix{
	"simple2d":            dither.Simple2D,
	"floydsteinberg":      dither.FloydSteinberg,
	"falsefloydsteinberg": dither.FalseFloydSteinberg,
	"jarvisjudiceninke":   dither.JarvisJudiceNinke,
	"atkinson":            dither.Atkinson,
	"stucki":              dither.Stucki,
	"burkes":              dither.Burkes,
	"sierra":              dither.Sierra,
	"sierra3":             dither.Sierra3,
	"tworowsierra":        dither.TwoRowSierra,
	"sierralite":          dither.SierraLite,
	"sierra2_4a":          dither.Sierra2_4A,
	"stevenpigeon":        dither.StevenPigeon,
}

// parseDither returns the error diffusion matrix named by arg, or nil for
// "none".
func parseDither(arg string) (dither.ErrorDiffusionMatrix, error) {
	name := strings.ReplaceAll(strings.ToLower(arg), "-", "_")
	if name == "none" || name == "" {
		return nil, nil
	}
	matrix, ok := edmName[name]
	if !ok {
		return nil, fmt.Errorf("dither: '%s' is not a known error diffusion matrix", arg)
	}
	return matrix, nil
}

func renderGIF(c *cli.Context) error {
	if globalFlag("out", c).(string) == "" {
		return errors.New("the gif command needs an output path, set with --out")
	}
	if globalIsSet("format", c) && outFormat != "gif" {
		return errors.New("the gif command can only output GIF files")
	}

	fps := c.Float64("fps")
	if fps <= 0 {
		return errors.New("fps must be greater than zero")
	}
	colors := int(c.Uint("colors"))
	if colors < 2 || colors > 256 {
		return errors.New("colors must be in the range 2-256")
	}
	matrix, err := parseDither(c.String("dither"))
	if err != nil {
		return err
	}

	tree, err := buildTree()
	if err != nil {
		return err
	}

	depth := defaultDepth(tree)
	if c.IsSet("sequence-depth") {
		depth = c.Int("sequence-depth")
	}

	frames, err := tree.Sequence(depth, quadtree.RenderOptions{
		Outline:      !c.Bool("no-outline"),
		OutlineColor: outlineColor,
	})
	if err != nil {
		return err
	}

	anim, err := encodeFrames(postProcFrames(frames), colors, matrix)
	if err != nil {
		return err
	}
	anim.LoopCount = gifLoopCount(c.Uint("loop"))
	for i := range anim.Delay {
		anim.Delay[i] = gifDelay(fps)
	}

	return writeGIF(anim, c)
}

func stats(c *cli.Context) error {
	tree, err := buildTree()
	if err != nil {
		return err
	}

	s := tree.Stats()
	fmt.Printf("nodes: %d\n", s.Nodes)
	fmt.Printf("leaves: %d\n", s.Leaves)
	fmt.Printf("depth reached: %d\n", s.MaxDepth)

	for d := 0; d <= s.MaxDepth; d++ {
		frontier, err := tree.Frontier(d)
		if err != nil {
			return err
		}
		fmt.Printf("depth %d: %d leaves, %d quadrants visible\n", d, s.LeavesPerDepth[d], len(frontier))
	}
	return nil
}
