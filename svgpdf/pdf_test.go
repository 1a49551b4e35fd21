package svgpdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/curvesvg/svgcurve"
	"github.com/benoitkugler/curvesvg/svgdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument(t *testing.T) *svgdoc.Document {
	t.Helper()
	doc, err := svgdoc.FromCurves([]svgcurve.Curve{
		svgcurve.Line{Start: svgcurve.Point{}, End: svgcurve.Point{X: 10}},
		svgcurve.Arc{
			Center: svgcurve.Point{}, Start: svgcurve.Point{X: 100}, End: svgcurve.Point{Y: 100},
			Radius: 100, SweepAngle: 90,
		},
		svgcurve.Circle{Center: svgcurve.Point{X: -50, Y: -50}, Radius: 20},
	}, nil)
	require.NoError(t, err)
	return doc
}

func TestDrawElement(t *testing.T) {
	doc := sampleDocument(t)
	pdf, err := newPDF(doc)
	require.NoError(t, err)
	pdf.SetCompression(false)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	out := buf.String()
	assert.Contains(t, out, "%PDF-")
	// the line, mapped at the center of the 500 x 500 page
	assert.Contains(t, out, "250.00 250.00 m")
	assert.Contains(t, out, "260.00 250.00 l")
	// default stroke width
	assert.Contains(t, out, "0.50 w")
}

func TestExtentOfDocument(t *testing.T) {
	doc := sampleDocument(t)
	pdf, err := newPDF(doc)
	require.NoError(t, err)
	renderer := NewRenderer(pdf)
	_, _, _, _, ok := renderer.Extent()
	assert.False(t, ok)

	m := doc.ViewBox.Fit(doc.Width, doc.Height)
	doc.Root.Walk(func(e svgdoc.Element, style svgdoc.Style) {
		renderer.DrawElement(e, style, m)
	})
	minX, minY, maxX, maxY, ok := renderer.Extent()
	require.True(t, ok)
	// the circle is at the bottom left, the arc reaches (350, 150)
	assert.InDelta(t, 180, minX, 0.1)
	assert.InDelta(t, 150, minY, 0.1)
	assert.InDelta(t, 350, maxX, 0.1)
	assert.InDelta(t, 320, maxY, 0.1)
}

func TestRenderDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDocument(sampleDocument(t), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	empty, err := svgdoc.FromCurves(nil, nil)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, RenderDocument(empty, &buf))
	assert.NotZero(t, buf.Len())
}

func TestRenderDocumentToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curves.pdf")
	require.NoError(t, RenderDocumentToFile(sampleDocument(t), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestRenderInvalid(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderDocument(nil, &buf))
	assert.ErrorIs(t, RenderDocument(&svgdoc.Document{}, &buf), svgdoc.ErrInvalidViewport)
}
