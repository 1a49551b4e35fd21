// Implements a raster backend to preview documents,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/benoitkugler/curvesvg/svgdoc"
	"github.com/benoitkugler/curvesvg/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// ErrImageSize is returned for non positive image dimensions.
var ErrImageSize = errors.New("invalid image size")

// miterLimit is the SVG default stroke-miterlimit
const miterLimit = 4

// Renderer draws elements on an image.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// If scanner is nil, a default scanner rasterx.ScannerGV is used,
// drawing on a new image.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	if scanner == nil {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		scanner = rasterx.NewScannerGV(width, height, img, img.Bounds())
	}
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// RasterDocument renders the document on a white image of the given size.
// The view box is scaled uniformly to fit the image, and centered.
func RasterDocument(doc *svgdoc.Document, width, height int) (*image.RGBA, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageSize, width, height)
	}
	if !(doc.ViewBox.W > 0 && doc.ViewBox.H > 0) {
		return nil, fmt.Errorf("%w: view box %v", svgdoc.ErrInvalidViewport, doc.ViewBox)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	renderer := NewRenderer(width, height, scanner)
	if doc.Root != nil {
		m := doc.ViewBox.Fit(float64(width), float64(height))
		doc.Root.Walk(func(e svgdoc.Element, style svgdoc.Style) {
			renderer.DrawElement(e, style, m)
		})
	}
	return img, nil
}

// WritePNG renders the document with RasterDocument and
// writes it as a PNG image.
func WritePNG(w io.Writer, doc *svgdoc.Document, width, height int) error {
	img, err := RasterDocument(doc, width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdoc.NilJoin:   rasterx.Miter,
		svgdoc.Miter:     rasterx.Miter,
		svgdoc.Round:     rasterx.Round,
		svgdoc.Bevel:     rasterx.Bevel,
		svgdoc.MiterClip: rasterx.MiterClip,
		svgdoc.Arcs:      rasterx.Arc,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdoc.NilCap:    rasterx.ButtCap,
		svgdoc.ButtCap:   rasterx.ButtCap,
		svgdoc.RoundCap:  rasterx.RoundCap,
		svgdoc.SquareCap: rasterx.SquareCap,
	}
)

// DrawElement fills, then strokes the outline of `e`, mapped by `m`,
// using the resolved `style`.
func (rd *Renderer) DrawElement(e svgdoc.Element, style svgdoc.Style, m rasterx.Matrix2D) {
	if col, op, ok := style.FillColor(); ok {
		rd.filler.Clear()
		rd.filler.SetWinding(true)
		svgdoc.Outline(e, m, rd.filler)
		rd.filler.SetColor(rasterx.ApplyOpacity(col, op))
		rd.filler.Draw()
	}

	if col, op, ok := style.StrokeColor(); ok {
		rd.dasher.Clear()
		scale := svgpath.ScaleFactor(m)
		dashes := style.Dashes()
		for i := range dashes {
			dashes[i] *= scale
		}
		rd.dasher.SetStroke(
			fixed.Int26_6(style.LineWidth()*scale*64), fixed.Int26_6(miterLimit*64),
			capToFunc[style.LineCap], capToFunc[style.LineCap], rasterx.FlatGap,
			joinToJoin[style.LineJoin], dashes, 0,
		)
		svgdoc.Outline(e, m, rd.dasher)
		rd.dasher.SetColor(rasterx.ApplyOpacity(col, op))
		rd.dasher.Draw()
	}
}
