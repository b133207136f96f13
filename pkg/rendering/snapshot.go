// Package rendering rasterizes screen descriptions into images, so a
// headless run can still produce a picture of what a view showed.
package rendering

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// defaultPadding is the margin around the text, in pixels.
const defaultPadding = 8

// Options controls how Snapshot draws.
type Options struct {
	// Face is the font face. Defaults to basicfont.Face7x13.
	Face font.Face
	// Background fills the image. Defaults to white.
	Background color.Color
	// Foreground is the text colour. Defaults to black.
	Foreground color.Color
	// Padding is the margin around the text. Defaults to 8.
	Padding int
}

func (o Options) withDefaults() Options {
	if o.Face == nil {
		o.Face = basicfont.Face7x13
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Foreground == nil {
		o.Foreground = color.Black
	}
	if o.Padding <= 0 {
		o.Padding = defaultPadding
	}
	return o
}

// Snapshot draws lines top to bottom, one per text line, and returns an
// image just large enough to hold them.
func Snapshot(lines []string, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	metrics := opts.Face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	width := 0
	for _, line := range lines {
		if w := font.MeasureString(opts.Face, line).Ceil(); w > width {
			width = w
		}
	}

	bounds := image.Rect(0, 0, width+2*opts.Padding, len(lines)*lineHeight+2*opts.Padding)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(opts.Background), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(opts.Foreground),
		Face: opts.Face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(opts.Padding, opts.Padding+ascent+i*lineHeight)
		drawer.DrawString(line)
	}
	return img
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
