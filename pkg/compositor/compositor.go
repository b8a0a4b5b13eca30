package compositor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// headerPadding is the vertical padding added below the label text
const headerPadding = 10

// labelColor is the fill color for panel labels
var labelColor = color.NRGBA{255, 255, 255, 255}

// greenScreen is the opaque background color results are flattened onto
var greenScreen = color.NRGBA{0, 255, 0, 255}

// Compositor assembles side-by-side comparison grids with labelled panels
type Compositor struct {
	fontSize int
	face     font.Face
}

// New creates a compositor rendering labels at the given font size
func New(fontSize int) (*Compositor, error) {
	if fontSize < 1 {
		return nil, fmt.Errorf("font size must be positive, got %d", fontSize)
	}

	parsed, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label font face: %w", err)
	}

	return &Compositor{fontSize: fontSize, face: face}, nil
}

// FontSize returns the configured label font size
func (c *Compositor) FontSize() int {
	return c.fontSize
}

// HeaderHeight returns the height of the label strip above the panels
func (c *Compositor) HeaderHeight() int {
	return c.fontSize + headerPadding
}

// FlattenOnGreen composites an image over an opaque green canvas of the
// image's own dimensions, using its alpha channel as the blend mask. The
// result has no remaining transparency. Applying it to an already opaque
// image leaves the pixels unchanged.
func FlattenOnGreen(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(greenScreen), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Over)
	return out
}

// ComposeGrid builds a single canvas containing the three panels side by
// side below a header strip with one label per panel. Canvas width is the
// sum of the panel widths; canvas height is the original's height plus the
// header. The label offset (panel center minus font size) matches the
// historical output layout rather than true text-metric centering.
func (c *Compositor) ComposeGrid(original, panelA, panelB image.Image, labels [3]string) *image.NRGBA {
	ow, oh := original.Bounds().Dx(), original.Bounds().Dy()
	aw := panelA.Bounds().Dx()
	bw := panelB.Bounds().Dx()

	header := c.HeaderHeight()
	canvas := image.NewNRGBA(image.Rect(0, 0, ow+aw+bw, oh+header))

	c.drawLabel(canvas, labels[0], ow/2-c.fontSize)
	c.drawLabel(canvas, labels[1], ow+aw/2-c.fontSize)
	c.drawLabel(canvas, labels[2], ow+aw+bw/2-c.fontSize)

	pastePanel(canvas, original, 0, header)
	pastePanel(canvas, panelA, ow, header)
	pastePanel(canvas, panelB, ow+aw, header)

	return canvas
}

// drawLabel renders one header label with its baseline below the fixed
// 5px top margin
func (c *Compositor) drawLabel(dst draw.Image, text string, x int) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelColor),
		Face: c.face,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(5) + c.face.Metrics().Ascent,
		},
	}
	drawer.DrawString(text)
}

// pastePanel copies a panel into the canvas at the given offset, replacing
// destination pixels rather than blending
func pastePanel(dst draw.Image, panel image.Image, x, y int) {
	bounds := panel.Bounds()
	rect := image.Rect(x, y, x+bounds.Dx(), y+bounds.Dy())
	draw.Draw(dst, rect, panel, bounds.Min, draw.Src)
}
