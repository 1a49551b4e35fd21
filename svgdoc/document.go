// Provides the conversion of curves into SVG documents:
// each curve becomes a path or circle element, gathered in a group,
// and the resulting document may be written to (and read back from)
// SVG files.
package svgdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ajstarks/svgo"
	"github.com/benoitkugler/curvesvg/svgcurve"
	"github.com/benoitkugler/curvesvg/svgpath"
)

// DefaultViewSize is the side of the square view box,
// centered on the origin, used when no view box is given.
const DefaultViewSize = 500

// ErrInvalidAspectRatio is returned by SetAspectRatio
// for values not following the preserveAspectRatio syntax.
var ErrInvalidAspectRatio = errors.New("invalid aspect ratio")

// Document is an SVG document, whose elements are
// owned by the tree starting at Root.
type Document struct {
	Width, Height float64
	ViewBox       ViewBox
	Title         string
	Root          *Group

	aspectRatio string // preserveAspectRatio, empty for the SVG default
}

// AspectRatio returns the value of the preserveAspectRatio attribute,
// or an empty string if not set.
func (doc *Document) AspectRatio() string { return doc.aspectRatio }

// SetAspectRatio sets the preserveAspectRatio attribute, such as "xMidYMid meet"
// or "none". An empty string removes the attribute.
func (doc *Document) SetAspectRatio(v string) error {
	v = strings.Join(strings.Fields(v), " ")
	if v != "" && !isAspectRatio(v) {
		return fmt.Errorf("%w: %q", ErrInvalidAspectRatio, v)
	}
	doc.aspectRatio = v
	return nil
}

func isAspectRatio(v string) bool {
	fields := strings.Fields(v)
	if len(fields) > 2 {
		return false
	}
	if len(fields) == 2 && fields[1] != "meet" && fields[1] != "slice" {
		return false
	}
	switch fields[0] {
	case "none",
		"xMinYMin", "xMidYMin", "xMaxYMin",
		"xMinYMid", "xMidYMid", "xMaxYMid",
		"xMinYMax", "xMidYMax", "xMaxYMax":
		return true
	default:
		return false
	}
}

// Group returns the group with the given id, or nil.
func (doc *Document) Group(id string) *Group {
	if doc.Root == nil {
		return nil
	}
	return doc.Root.Find(id)
}

// Assembler builds documents from curves.
type Assembler struct {
	// DefaultSize is the side of the square view box used
	// when none is provided. Zero means DefaultViewSize.
	DefaultSize float64

	// GroupStyle is attached to the root group.
	GroupStyle Style

	// ElementStyle, if not nil, overrides DefaultStyle
	// on each converted element.
	ElementStyle *Style
}

// DefaultAssembler is used by FromCurves.
var DefaultAssembler = Assembler{DefaultSize: DefaultViewSize}

func (a Assembler) viewBox(view *ViewOptions) (ViewBox, error) {
	if view != nil && view.ViewBox != nil {
		vb := *view.ViewBox
		return vb, vb.validate()
	}
	size := a.DefaultSize
	if size == 0 {
		size = DefaultViewSize
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return ViewBox{}, fmt.Errorf("%w: default size %g", ErrInvalidViewport, size)
	}
	return ViewBox{X: -size / 2, Y: -size / 2, W: size, H: size}, nil
}

// Assemble returns a new document, with one element per curve, in the given order,
// all children of the root group.
// If `view` is nil or has no view box, a square of side `DefaultSize` centered on
// the origin is used. The width and height of the document are the ones of its view box.
func (a Assembler) Assemble(curves []svgcurve.Curve, view *ViewOptions) (*Document, error) {
	vb, err := a.viewBox(view)
	if err != nil {
		return nil, err
	}
	if err = a.GroupStyle.Validate(); err != nil {
		return nil, fmt.Errorf("group style: %w", err)
	}
	if a.ElementStyle != nil {
		if err = a.ElementStyle.Validate(); err != nil {
			return nil, fmt.Errorf("element style: %w", err)
		}
	}
	root := NewGroup(a.GroupStyle)
	for i, c := range curves {
		elem, err := Convert(c, a.ElementStyle)
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}
		root.Append(elem)
	}
	logger().Debug("curves assembled", "curves", len(curves), "viewBox", vb.String())
	return &Document{Width: vb.W, Height: vb.H, ViewBox: vb, Root: root}, nil
}

// FromCurves assembles `curves` with the DefaultAssembler.
func FromCurves(curves []svgcurve.Curve, view *ViewOptions) (*Document, error) {
	return DefaultAssembler.Assemble(curves, view)
}

// validateGroup checks the styles of `g` and of its descendants.
func validateGroup(g *Group) error {
	if err := g.Style.Validate(); err != nil {
		return fmt.Errorf("group %s: %w", g.ID, err)
	}
	for i, child := range g.Children {
		var err error
		if sub, ok := child.(*Group); ok {
			err = validateGroup(sub)
		} else if err = child.style().Validate(); err != nil {
			err = fmt.Errorf("group %s, element %d: %w", g.ID, i, err)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTo writes the SVG markup of the document. The markup
// is fully built before `w` is called, and nothing is written
// if a style of the document is invalid.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	if doc.Root != nil {
		if err := validateGroup(doc.Root); err != nil {
			return 0, err
		}
	}
	var buf bytes.Buffer
	doc.render(&buf)
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

func (doc *Document) render(w io.Writer) {
	canvas := svg.New(w)
	attrs := []string{
		attr("width", svgpath.FormatFloat(doc.Width)),
		attr("height", svgpath.FormatFloat(doc.Height)),
		attr("viewBox", doc.ViewBox.String()),
	}
	if doc.aspectRatio != "" {
		attrs = append(attrs, attr("preserveAspectRatio", doc.aspectRatio))
	}
	canvas.Startraw(attrs...)
	if doc.Title != "" {
		canvas.Title(doc.Title)
	}
	if doc.Root != nil {
		writeGroup(canvas, doc.Root)
	}
	canvas.End()
}

func writeGroup(canvas *svg.SVG, g *Group) {
	var attrs []string
	if g.ID != "" {
		attrs = append(attrs, attr("id", g.ID))
	}
	canvas.Group(append(attrs, g.Style.attributes()...)...)
	for _, child := range g.Children {
		switch child := child.(type) {
		case *Group:
			writeGroup(canvas, child)
		case *PathElement:
			canvas.Path(child.Path.ToSVGPath(), child.Style.attributes()...)
		case *CircleElement:
			// svgo only writes integer circles
			fmt.Fprintf(canvas.Writer, `<circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
				svgpath.FormatFloat(child.Center.X), svgpath.FormatFloat(child.Center.Y),
				svgpath.FormatFloat(child.Radius), strings.Join(child.Style.attributes(), " "))
		}
	}
	canvas.Gend()
}

// Save writes `doc` to the file `path`, replacing any existing file.
// It returns false, and no error, if `doc` is nil.
// An invalid style is reported before the file is touched.
func Save(doc *Document, path string) (bool, error) {
	if doc == nil {
		return false, nil
	}
	if doc.Root != nil {
		if err := validateGroup(doc.Root); err != nil {
			return false, fmt.Errorf("saving document: %w", err)
		}
	}
	var buf bytes.Buffer
	doc.render(&buf)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("saving document: %w", err)
	}
	logger().Debug("document saved", "path", path, "bytes", buf.Len())
	return true, nil
}
