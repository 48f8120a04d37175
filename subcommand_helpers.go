package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/makeworld-the-better-one/quadder/quadtree"
	"github.com/mccutchen/palettor"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/colornames"
)

// globalFlag returns the value of flag at the top level of the command.
// For example, with the command:
//
//	quadder --out x.gif gif --fps 2
//
// "out" is a global flag, and "fps" is a flag local to the gif subcommand.
func globalFlag(flag string, c *cli.Context) interface{} {
	ancestor := c.Lineage()[len(c.Lineage())-1]
	if len(ancestor.Args().Slice()) == 0 {
		// When the global context calls this func, the last in the lineage
		// has no args for some reason. So return the second-last instead.
		return c.Lineage()[len(c.Lineage())-2].Value(flag)
	}
	return ancestor.Value(flag)
}

// globalIsSet returns a bool indicating whether the provided global flag
// was actually set.
func globalIsSet(flag string, c *cli.Context) bool {
	ancestor := c.Lineage()[len(c.Lineage())-1]
	if len(ancestor.Args().Slice()) == 0 {
		// See globalFlag for why this if statement exists
		return c.Lineage()[len(c.Lineage())-2].IsSet(flag)
	}
	return ancestor.IsSet(flag)
}

func hexToColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%s is not a hex color", hex)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, 255}, nil
}

func rgbToColor(s string) (color.NRGBA, error) {
	format := "%d,%d,%d"
	var r, g, b uint8
	n, err := fmt.Sscanf(s, format, &r, &g, &b)
	if err != nil {
		return color.NRGBA{}, err
	}
	if n != 3 {
		return color.NRGBA{}, fmt.Errorf("%s is not an RGB tuple", s)
	}
	return color.NRGBA{r, g, b, 255}, nil
}

// parseColor turns a single color argument into a color.NRGBA.
func parseColor(arg string) (color.NRGBA, error) {
	// Try to parse as RGB numbers, then hex, then grayscale, then SVG colors, then fail

	if strings.Count(arg, ",") == 2 {
		rgbColor, err := rgbToColor(arg)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%s is not a valid RGB tuple. Example: 25,200,150", arg)
		}
		return rgbColor, nil
	}

	n, err := strconv.Atoi(arg)
	if err == nil {
		if n > 255 || n < 0 {
			return color.NRGBA{}, fmt.Errorf("single numbers like %d must be in the range 0-255", n)
		}
		return color.NRGBA{uint8(n), uint8(n), uint8(n), 255}, nil
	}

	hexColor, err := hexToColor(arg)
	if err == nil {
		return hexColor, nil
	}

	htmlColor, ok := colornames.Map[strings.ToLower(arg)]
	if ok {
		return color.NRGBAModel.Convert(htmlColor).(color.NRGBA), nil
	}

	return color.NRGBA{}, fmt.Errorf("%s not recognized as an RGB tuple, hex code, number 0-255, or SVG color name", arg)
}

// getInputImage loads the input image and applies the pre-build resizing.
func getInputImage(arg string) (image.Image, error) {
	var img image.Image
	var err error

	if arg == "-" {
		img, err = imaging.Decode(os.Stdin, autoOrientation)
	} else {
		img, err = imaging.Open(arg, autoOrientation)
	}
	if err != nil {
		return nil, err
	}

	if width != 0 || height != 0 {
		// Box sampling is quick and fast, and better then others at downscaling
		// https://pkg.go.dev/github.com/disintegration/imaging#ResampleFilter
		img = imaging.Resize(img, width, height, imaging.Box)
	}
	if scale > 1 {
		img = imaging.Resize(img, img.Bounds().Dx()*scale, 0, imaging.NearestNeighbor)
	}

	return img, nil
}

// buildTree loads the input image and builds its quadtree with the global
// config.
func buildTree() (*quadtree.Tree, error) {
	img, err := getInputImage(inputImage)
	if err != nil {
		return nil, fmt.Errorf("error loading '%s': %w", inputImage, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("'%s' has no pixels", inputImage)
	}

	tree, err := quadtree.Build(quadtree.NewPixelSource(img), config)
	if err != nil {
		return nil, err
	}

	if verbose {
		s := tree.Stats()
		log.Printf(
			"Built quadtree: %d nodes, %d leaves, depth %d (max depth %d, threshold %g, filter %v)",
			s.Nodes, s.Leaves, s.MaxDepth, config.MaxDepth, config.DetailThreshold, config.Filter,
		)
	}
	return tree, nil
}

// postProcImage upscales a rendered image if necessary.
func postProcImage(img *image.NRGBA) *image.NRGBA {
	if upscale <= 1 {
		return img
	}
	return imaging.Resize(
		img,
		img.Bounds().Dx()*upscale,
		0,
		imaging.NearestNeighbor,
	)
}

// postProcFrames post-processes every frame, keeping repeated frames shared.
func postProcFrames(frames []*image.NRGBA) []*image.NRGBA {
	done := make(map[*image.NRGBA]*image.NRGBA, len(frames))
	out := make([]*image.NRGBA, len(frames))
	for i, f := range frames {
		if p, ok := done[f]; ok {
			out[i] = p
			continue
		}
		out[i] = postProcImage(f)
		done[f] = out[i]
	}
	return out
}

// maxGIFColors is the largest palette the GIF format supports.
const maxGIFColors = 256

// gifPalette returns a palette for frames. If the frames use few enough
// colors, the palette holds exactly those colors. Otherwise a palette of
// size colors is extracted from the last frame with palettor, and the outline
// color is added.
func gifPalette(frames []*image.NRGBA, size int) ([]color.Color, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to build a palette from")
	}

	seen := make(map[color.NRGBA]struct{})
	for _, f := range frames {
		b := f.Bounds()
		for y := b.Min.Y; y < b.Max.Y && len(seen) <= maxGIFColors; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := f.NRGBAAt(x, y)
				c.A = 255
				seen[c] = struct{}{}
			}
		}
	}

	if len(seen) <= maxGIFColors {
		exact := make([]color.NRGBA, 0, len(seen))
		for c := range seen {
			exact = append(exact, c)
		}
		// Map order is random, keep output files reproducible
		sort.Slice(exact, func(i, j int) bool {
			a, b := exact[i], exact[j]
			if a.R != b.R {
				return a.R < b.R
			}
			if a.G != b.G {
				return a.G < b.G
			}
			return a.B < b.B
		})
		palette := make([]color.Color, len(exact))
		for i, c := range exact {
			palette[i] = c
		}
		return palette, nil
	}

	// Resize: keep palettor.Extract fast. See the palettor CLI source:
	// https://github.com/mccutchen/palettor/blob/3eaed180/cmd/palettor/palettor.go#L57
	thumbnail := imaging.Resize(frames[len(frames)-1], 200, 200, imaging.NearestNeighbor)

	extracted, err := palettor.Extract(size-1, 500, thumbnail)
	if err != nil {
		return nil, fmt.Errorf("error extracting GIF palette: %w", err)
	}

	log.Printf("Extracted palette: %v", extracted.Colors())

	palette := append(extracted.Colors(), color.NRGBAModel.Convert(outlineColor))
	return palette, nil
}

// toPaletted maps img onto palette. With a nil matrix every pixel gets its
// nearest palette color, otherwise the error is diffused.
func toPaletted(img *image.NRGBA, palette []color.Color, matrix dither.ErrorDiffusionMatrix) *image.Paletted {
	if matrix != nil && len(palette) > 1 {
		d := dither.NewDitherer(palette)
		d.Matrix = matrix
		return d.DitherPaletted(img)
	}

	p := image.NewPaletted(img.Bounds(), palette)
	draw.Draw(p, p.Bounds(), img, img.Bounds().Min, draw.Src)
	return p
}

// encodeFrames builds an animated GIF from frames using one shared palette.
// Delays and loop count are left to the caller.
func encodeFrames(frames []*image.NRGBA, colors int, matrix dither.ErrorDiffusionMatrix) (*gif.GIF, error) {
	palette, err := gifPalette(frames, colors)
	if err != nil {
		return nil, err
	}

	anim := &gif.GIF{
		Image: make([]*image.Paletted, len(frames)),
		Delay: make([]int, len(frames)),
		Config: image.Config{
			ColorModel: color.Palette(palette),
			Width:      frames[0].Bounds().Dx(),
			Height:     frames[0].Bounds().Dy(),
		},
	}

	done := make(map[*image.NRGBA]*image.Paletted, len(frames))
	for i, f := range frames {
		p, ok := done[f]
		if !ok {
			p = toPaletted(f, palette, matrix)
			done[f] = p
		}
		anim.Image[i] = p
	}
	return anim, nil
}

// gifDelay converts a frame rate to a GIF frame delay in 100ths of a second.
func gifDelay(fps float64) int {
	// Round to the nearest possible frame rate supported by the GIF format
	// See for details: https://superuser.com/a/1449370
	//
	// Lowest allowed delay is 1, or 100 FPS.
	return int(math.Max(math.Round(100.0/fps), 1))
}

// gifLoopCount converts the number of times the user wants the animation
// played into the image/gif LoopCount. 0 means loop forever.
func gifLoopCount(loop uint) int {
	loopCount := int(loop)
	if loopCount == 1 {
		// Looping once is set using -1 in the image/gif library
		loopCount = -1
	} else if loopCount != 0 {
		// The CLI flag is equal to the number of times looped
		// But for gif.GIF.LoopCount, "the animation is looped LoopCount+1 times."
		loopCount -= 1
	}
	return loopCount
}

// openOutput opens the output file, or returns stdout for "-".
func openOutput(c *cli.Context) (io.WriteCloser, string, error) {
	outPath := globalFlag("out", c).(string)
	if outPath == "-" {
		return os.Stdout, "stdout", nil
	}
	file, err := os.OpenFile(outPath, outFileFlags, 0644)
	if err != nil {
		return nil, outPath, fmt.Errorf("'%s': %w", outPath, err)
	}
	return file, outPath, nil
}

// writeImage writes a single image as a PNG or a static GIF.
func writeImage(img *image.NRGBA, c *cli.Context) error {
	file, path, err := openOutput(c)
	if err != nil {
		return err
	}

	if outFormat == "png" {
		err = (&png.Encoder{CompressionLevel: compLevel}).Encode(file, img)
		if err != nil {
			defer file.Close() // Keep (possibly stdout) open to write error messages then close
			return fmt.Errorf("error writing PNG to '%s': %w", path, err)
		}
		return file.Close()
	}

	palette, err := gifPalette([]*image.NRGBA{img}, maxGIFColors)
	if err != nil {
		defer file.Close()
		return err
	}
	// Quadrants are flat, so no Floyd-Steinberg
	err = gif.Encode(
		file, img,
		&gif.Options{
			NumColors: len(palette),
			Quantizer: &fakeQuantizer{palette},
			Drawer:    draw.Src,
		},
	)
	if err != nil {
		defer file.Close()
		return fmt.Errorf("error writing GIF to '%s': %w", path, err)
	}
	return file.Close()
}

// writeGIF writes an animated GIF.
func writeGIF(anim *gif.GIF, c *cli.Context) error {
	file, path, err := openOutput(c)
	if err != nil {
		return err
	}

	err = gif.EncodeAll(file, anim)
	if err != nil {
		defer file.Close()
		return fmt.Errorf("error writing GIF to '%s': %w", path, err)
	}
	return file.Close()
}
