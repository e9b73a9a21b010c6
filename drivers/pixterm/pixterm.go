// Package pixterm renders the deck's character viewport onto a pixel display
// through the pix package, as an alternative to a character LCD.
package pixterm

import (
	"image"
	"image/color"

	"github.com/embeddedgo/display/font/subfont"
	"github.com/embeddedgo/display/pix"
)

// Display draws fixed-width character rows with a monospace face.  It
// implements the controller loop's render sink.
type Display struct {
	area *pix.Area
	tw   *pix.TextWriter
	face *subfont.Face

	advance, height int
	cols, rows      int
}

func New(disp *pix.Display, face *subfont.Face) *Display {
	a := disp.NewArea(disp.Bounds())
	tw := a.NewTextWriter(face)
	tw.SetColor(color.White)

	d := &Display{
		area:    a,
		tw:      tw,
		face:    face,
		advance: int(face.Advance('0')),
		height:  int(face.Height),
	}
	d.cols = a.Bounds().Dx() / d.advance
	d.rows = a.Bounds().Dy() / d.height
	return d
}

func (d *Display) Size() (width, height int) {
	return d.cols, d.rows
}

func (d *Display) DrawRow(row int, text []byte) {
	if row < 0 || row >= d.rows {
		return
	}
	bounds := d.area.Bounds()
	strip := image.Rect(
		bounds.Min.X, bounds.Min.Y+row*d.height,
		bounds.Max.X, bounds.Min.Y+(row+1)*d.height,
	)
	d.area.SetColor(color.Black)
	d.area.Fill(strip)

	if len(text) > d.cols {
		text = text[:d.cols]
	}
	d.tw.Pos = strip.Min
	d.tw.Write(text)
}
