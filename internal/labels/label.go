// Package labels renders part labels as PNG images and stores them.
package labels

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"unicode/utf8"

	"github.com/01moynul/binner-golang/internal/models"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default label size in pixels, roughly a 1/2" x 1 7/8" address label at 200 dpi.
const (
	DefaultWidth  = 400
	DefaultHeight = 120

	margin     = 8
	titleScale = 2
)

var face = basicfont.Face7x13

// Options controls the rendered label size.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// Lines returns the text printed on a part's label, top to bottom.
// The first line is the part number and is drawn enlarged.
func Lines(part *models.Part) []string {
	lines := []string{part.PartNumber}
	if part.Description != "" {
		lines = append(lines, part.Description)
	}
	var where []string
	if part.Location != "" {
		where = append(where, "Loc: "+part.Location)
	}
	bins := make([]string, 0, 2)
	for _, b := range []string{part.BinNumber, part.BinNumber2} {
		if b != "" {
			bins = append(bins, b)
		}
	}
	if len(bins) > 0 {
		where = append(where, "Bin: "+strings.Join(bins, "/"))
	}
	if len(where) > 0 {
		lines = append(lines, strings.Join(where, "  "))
	}
	return lines
}

// Render draws the part label and encodes it as PNG.
func Render(part *models.Part, opts Options) ([]byte, error) {
	if part == nil || part.PartNumber == "" {
		return nil, fmt.Errorf("part number is required to render a label")
	}
	opts = opts.withDefaults()

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	glyphW := face.Advance
	lineH := face.Height
	lines := Lines(part)

	// Part number, scaled up with nearest-neighbour to keep the bitmap font crisp.
	titleCols := (opts.Width - 2*margin) / (glyphW * titleScale)
	title := Truncate(lines[0], titleCols)
	small := image.NewRGBA(titleCanvas(title))
	drawString(small, 0, face.Ascent, title)
	titleRect := image.Rect(margin, margin, margin+small.Bounds().Dx()*titleScale, margin+lineH*titleScale)
	xdraw.NearestNeighbor.Scale(img, titleRect, small, small.Bounds(), xdraw.Over, nil)

	cols := (opts.Width - 2*margin) / glyphW
	y := titleRect.Max.Y + lineH/2
	for _, line := range lines[1:] {
		if y+lineH > opts.Height-margin/2 {
			break
		}
		drawString(img, margin, y+face.Ascent, Truncate(line, cols))
		y += lineH + 2
	}

	// Border
	border := color.Gray{Y: 0x80}
	for x := 0; x < opts.Width; x++ {
		img.Set(x, 0, border)
		img.Set(x, opts.Height-1, border)
	}
	for yy := 0; yy < opts.Height; yy++ {
		img.Set(0, yy, border)
		img.Set(opts.Width-1, yy, border)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode label: %w", err)
	}
	return buf.Bytes(), nil
}

// Truncate shortens s to at most n characters, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// titleCanvas sizes the unscaled title bitmap; the face is fixed width so each rune takes one advance.
func titleCanvas(title string) image.Rectangle {
	return image.Rect(0, 0, utf8.RuneCountInString(title)*face.Advance, face.Height)
}

func drawString(dst draw.Image, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
