package pixterm

import (
	"image"
	"testing"

	"github.com/embeddedgo/display/font/subfont"
	"github.com/embeddedgo/display/pix"
	"github.com/embeddedgo/display/pix/driver/imgdrv"
)

const (
	testAdvance = 6
	testHeight  = 8
	testAscent  = 6
)

// blockData renders every glyph as a fully opaque cell.
type blockData struct {
	mask *image.Alpha
}

func newBlockData() *blockData {
	mask := image.NewAlpha(image.Rect(0, 0, testAdvance, testHeight))
	for i := range mask.Pix {
		mask.Pix[i] = 0xff
	}
	return &blockData{mask}
}

func (p *blockData) Advance(i int) int { return testAdvance }

func (p *blockData) Glyph(i int) (img image.Image, origin image.Point, advance int) {
	return p.mask, image.Pt(0, testAscent), testAdvance
}

func testFace() *subfont.Face {
	return &subfont.Face{
		Height: testHeight,
		Ascent: testAscent,
		Subfonts: []*subfont.Subfont{{
			First: 0x20,
			Last:  0x7e,
			Data:  newBlockData(),
		}},
	}
}

func testDisplay(w, h int) (*Display, *image.NRGBA) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	disp := pix.NewDisplay(imgdrv.New(img))
	return New(disp, testFace()), img
}

func TestSize(t *testing.T) {
	d, _ := testDisplay(48, 32)
	w, h := d.Size()
	if w != 8 || h != 4 {
		t.Fatalf("expected 8x4, got %vx%v", w, h)
	}
}

func litPixels(img *image.NRGBA, strip image.Rectangle) int {
	n := 0
	for y := strip.Min.Y; y < strip.Max.Y; y++ {
		for x := strip.Min.X; x < strip.Max.X; x++ {
			if r, g, b, _ := img.At(x, y).RGBA(); r|g|b != 0 {
				n++
			}
		}
	}
	return n
}

func TestDrawRow(t *testing.T) {
	d, img := testDisplay(48, 32)

	row1 := image.Rect(0, testHeight, 48, 2*testHeight)
	d.DrawRow(1, []byte("hi"))
	if n := litPixels(img, row1); n == 0 {
		t.Fatal("expected glyphs drawn in row strip")
	}
	row0 := image.Rect(0, 0, 48, testHeight)
	if n := litPixels(img, row0); n != 0 {
		t.Fatalf("expected untouched row to stay blank, got %v lit pixels", n)
	}

	d.DrawRow(1, nil)
	if n := litPixels(img, row1); n != 0 {
		t.Fatalf("expected cleared row strip, got %v lit pixels", n)
	}
}

func TestDrawRowClips(t *testing.T) {
	d, img := testDisplay(48, 32)

	// Longer than 8 columns, must not draw past the area.
	d.DrawRow(0, []byte("0123456789abcdef"))
	outside := image.Rect(0, testHeight, 48, 32)
	if n := litPixels(img, outside); n != 0 {
		t.Fatalf("expected overlong row clipped, got %v lit pixels below", n)
	}

	d.DrawRow(-1, []byte("x"))
	d.DrawRow(4, []byte("x"))
}
