// Implements a PDF backend to export documents,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"errors"
	"fmt"
	"io"

	"github.com/benoitkugler/curvesvg/svgdoc"
	"github.com/benoitkugler/curvesvg/svgpath"
	"github.com/jung-kurt/gofpdf"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ rasterx.Adder = pather{} // assert interface conformance

// Renderer draws elements on the current page of a PDF.
type Renderer struct {
	pdf    *gofpdf.Fpdf
	extent *extent
}

// implements the path commands, writing to the pdf
// and tracking the extent of the outlines
type pather struct {
	pdf    *gofpdf.Fpdf
	extent *extent
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf, extent: new(extent)}
}

// Extent returns the bounding box of the outlines drawn so far,
// in page units, with Y axis pointing down, not accounting for the stroke width.
// It returns false if nothing has been drawn.
func (r Renderer) Extent() (minX, minY, maxX, maxY float64, ok bool) {
	b := r.extent.bbox
	return b.MinX, b.MinY, b.MaxX, b.MaxY, r.extent.nonEmpty
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pather) Start(a fixed.Point26_6) {
	p.extent.add(line{a, a})
	p.extent.last = a
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.extent.add(line{p.extent.last, b})
	p.extent.last = b
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	p.extent.add(quadBezier{p.extent.last, b, c})
	p.extent.last = c
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	p.extent.add(cubicBezier{p.extent.last, b, c, d})
	p.extent.last = d
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

var (
	capToStyle = [...]string{
		svgdoc.NilCap:    "butt",
		svgdoc.ButtCap:   "butt",
		svgdoc.RoundCap:  "round",
		svgdoc.SquareCap: "square",
	}

	// PDF has no equivalent for the SVG2 modes
	joinToStyle = [...]string{
		svgdoc.NilJoin:   "miter",
		svgdoc.Miter:     "miter",
		svgdoc.Round:     "round",
		svgdoc.Bevel:     "bevel",
		svgdoc.MiterClip: "miter",
		svgdoc.Arcs:      "miter",
	}
)

// DrawElement fills, then strokes the outline of `e`, mapped by `m`,
// using the resolved `style`.
// Opacities are applied separately, since PDF alpha
// is shared by both operations.
func (r Renderer) DrawElement(e svgdoc.Element, style svgdoc.Style, m rasterx.Matrix2D) {
	if col, op, ok := style.FillColor(); ok {
		r.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		r.pdf.SetAlpha(op, "")
		svgdoc.Outline(e, m, pather{pdf: r.pdf, extent: r.extent})
		r.pdf.DrawPath("F")
	}

	if col, op, ok := style.StrokeColor(); ok {
		scale := svgpath.ScaleFactor(m)
		dashes := style.Dashes()
		for i := range dashes {
			dashes[i] *= scale
		}
		r.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
		r.pdf.SetAlpha(op, "")
		r.pdf.SetLineWidth(style.LineWidth() * scale)
		r.pdf.SetLineCapStyle(capToStyle[style.LineCap])
		r.pdf.SetLineJoinStyle(joinToStyle[style.LineJoin])
		r.pdf.SetDashPattern(dashes, 0)
		svgdoc.Outline(e, m, pather{pdf: r.pdf, extent: r.extent})
		r.pdf.DrawPath("D")
	}
}

// pageSize returns the size of the document, in points,
// defaulting to the view box size.
func pageSize(doc *svgdoc.Document) (w, h float64) {
	w, h = doc.Width, doc.Height
	if w <= 0 || h <= 0 {
		w, h = doc.ViewBox.W, doc.ViewBox.H
	}
	return w, h
}

// newPDF returns a one page PDF with the document drawn on it.
func newPDF(doc *svgdoc.Document) (*gofpdf.Fpdf, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if !(doc.ViewBox.W > 0 && doc.ViewBox.H > 0) {
		return nil, fmt.Errorf("%w: view box %v", svgdoc.ErrInvalidViewport, doc.ViewBox)
	}
	w, h := pageSize(doc)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	pdf.AddPage()

	if doc.Root != nil {
		renderer := NewRenderer(pdf)
		m := doc.ViewBox.Fit(w, h)
		doc.Root.Walk(func(e svgdoc.Element, style svgdoc.Style) {
			renderer.DrawElement(e, style, m)
		})
		if minX, minY, maxX, maxY, ok := renderer.Extent(); ok {
			// page boxes use the PDF orientation
			pdf.SetPageBox("art", minX, h-maxY, maxX-minX, maxY-minY)
		}
	}
	return pdf, pdf.Error()
}

// RenderDocument writes the document as a one page PDF,
// whose size is the one of the document, in points.
func RenderDocument(doc *svgdoc.Document, w io.Writer) error {
	pdf, err := newPDF(doc)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// RenderDocumentToFile is the same as RenderDocument, but writes to the file `path`.
func RenderDocumentToFile(doc *svgdoc.Document, path string) error {
	pdf, err := newPDF(doc)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}
