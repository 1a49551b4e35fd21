package svgraster

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/curvesvg/svgcurve"
	"github.com/benoitkugler/curvesvg/svgdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, style svgdoc.Style, curves ...svgcurve.Curve) *svgdoc.Document {
	t.Helper()
	a := svgdoc.Assembler{ElementStyle: &style}
	doc, err := a.Assemble(curves, nil)
	require.NoError(t, err)
	return doc
}

func TestRasterLine(t *testing.T) {
	style, err := svgdoc.NewStyle(svgdoc.WithStrokeWidth(4))
	require.NoError(t, err)
	doc := assemble(t, style, svgcurve.Line{Start: svgcurve.Point{X: -200}, End: svgcurve.Point{X: 200}})

	img, err := RasterDocument(doc, 500, 500)
	require.NoError(t, err)

	assert.Less(t, img.RGBAAt(250, 250).R, uint8(64), "line not drawn")
	assert.Less(t, img.RGBAAt(100, 250).R, uint8(64), "line not drawn")
	assert.Equal(t, uint8(255), img.RGBAAt(250, 200).R, "background not white")
	assert.Equal(t, uint8(255), img.RGBAAt(10, 250).R, "line too long")
}

func TestRasterFilledCircle(t *testing.T) {
	red, err := svgdoc.NamedPaint("red")
	require.NoError(t, err)
	style, err := svgdoc.NewStyle(svgdoc.WithFill(red), svgdoc.WithStroke(svgdoc.NoPaint))
	require.NoError(t, err)
	// Y up: the circle is drawn above the center of the image
	doc := assemble(t, style, svgcurve.Circle{Center: svgcurve.Point{Y: 100}, Radius: 50})

	img, err := RasterDocument(doc, 250, 250) // half scale
	require.NoError(t, err)

	c := img.RGBAAt(125, 75)
	assert.Equal(t, uint8(255), c.R)
	assert.Less(t, c.G, uint8(16))
	assert.Equal(t, uint8(255), img.RGBAAt(125, 175).G, "circle drawn upside down")
}

func TestRasterArc(t *testing.T) {
	style, err := svgdoc.NewStyle(svgdoc.WithStrokeWidth(6))
	require.NoError(t, err)
	// upper half of a circle of radius 100, counter-clockwise from (100, 0)
	doc := assemble(t, style, svgcurve.Arc{
		Center: svgcurve.Point{}, Start: svgcurve.Point{X: 100}, End: svgcurve.Point{X: -100},
		Radius: 100, SweepAngle: 180,
	})
	img, err := RasterDocument(doc, 500, 500)
	require.NoError(t, err)

	top, bottom := img.RGBAAt(250, 150), img.RGBAAt(250, 350)
	assert.Less(t, top.R, uint8(64), "arc not drawn")
	assert.Equal(t, uint8(255), bottom.R, "wrong half drawn")
}

func TestRasterInvalid(t *testing.T) {
	doc, err := svgdoc.FromCurves(nil, nil)
	require.NoError(t, err)

	_, err = RasterDocument(doc, 0, 10)
	assert.ErrorIs(t, err, ErrImageSize)
	_, err = RasterDocument(nil, 10, 10)
	assert.Error(t, err)
	_, err = RasterDocument(&svgdoc.Document{}, 10, 10)
	assert.ErrorIs(t, err, svgdoc.ErrInvalidViewport)
}

func TestWritePNG(t *testing.T) {
	doc := assemble(t, svgdoc.Style{}, svgcurve.Circle{Radius: 100})
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, doc, 64, 32))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	// keep a preview of the output
	out := filepath.Join(t.TempDir(), "circle.png")
	require.NoError(t, os.WriteFile(out, buf.Bytes(), 0o644))
}
