package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/benoitkugler/curvesvg/svgcurve"
	"github.com/benoitkugler/curvesvg/svgpath"
	"github.com/google/uuid"
	"golang.org/x/net/html/charset"
)

// ErrFormat is returned when a file is not a valid SVG document.
var ErrFormat = errors.New("invalid svg document")

// ErrorMode determines how the parser reacts to unsupported elements
// and attribute values.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported content
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported content, logging a warning
	WarnErrorMode
	// StrictErrorMode returns an error wrapping ErrFormat
	StrictErrorMode
)

// docCursor is used while parsing SVG files
type docCursor struct {
	doc       *Document
	groups    []*Group // open groups; groups[0] holds the top level elements
	errorMode ErrorMode

	seenSVG   bool
	inTitle   bool
	skipDepth int // > 0 inside a skipped element
}

// sourceReader records the errors of the underlying reader,
// to tell them apart from the ones of the decoder.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

type elementFunc func(c *docCursor, attrs []xml.Attr) error

var elementFuncs = map[string]elementFunc{
	"svg":    svgF,
	"g":      gF,
	"path":   pathF,
	"circle": circleF,
	"line":   lineF,
	"title":  titleF,
	"desc":   skipF,
	"defs":   skipF,
}

// ReadDocumentStream reads a document from the given io.Reader.
// Only the elements produced by this package are supported (svg, g, path,
// circle), plus lines and titles. `errMode` determines if the parser ignores,
// errors out, or logs a warning when it finds other content.
func ReadDocumentStream(stream io.Reader, errMode ErrorMode) (*Document, error) {
	c := &docCursor{
		doc:       &Document{},
		groups:    []*Group{NewGroup(Style{})},
		errorMode: errMode,
	}
	source := &sourceReader{r: stream}
	decoder := xml.NewDecoder(source)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if source.err != nil && errors.Is(err, source.err) {
				return nil, fmt.Errorf("reading document: %w", err)
			}
			// syntax, charset and other decoding errors
			return nil, fmt.Errorf("%w: %s", ErrFormat, err)
		}
		if err = c.readToken(t); err != nil {
			return nil, err
		}
	}
	if !c.seenSVG {
		return nil, fmt.Errorf("%w: missing <svg> root element", ErrFormat)
	}

	top := c.groups[0]
	if len(top.Children) == 1 {
		if g, ok := top.Children[0].(*Group); ok {
			top = g
		}
	}
	c.doc.Root = top
	return c.doc, nil
}

// ReadDocument reads the document from the named file.
// See ReadDocumentStream for the supported content.
func ReadDocument(path string, errMode ErrorMode) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()
	return ReadDocumentStream(f, errMode)
}

// FromFile reads the document from the named file,
// logging a warning for unsupported content.
func FromFile(path string) (*Document, error) {
	return ReadDocument(path, WarnErrorMode)
}

func (c *docCursor) readToken(t xml.Token) error {
	switch se := t.(type) {
	case xml.StartElement:
		if c.skipDepth > 0 {
			c.skipDepth++
			return nil
		}
		if !c.seenSVG && se.Name.Local != "svg" {
			return fmt.Errorf("%w: unexpected root element <%s>", ErrFormat, se.Name.Local)
		}
		df, ok := elementFuncs[se.Name.Local]
		if !ok {
			c.skipDepth = 1
			return c.handleError("cannot process svg element " + se.Name.Local)
		}
		return df(c, se.Attr)
	case xml.EndElement:
		if c.skipDepth > 0 {
			c.skipDepth--
			return nil
		}
		switch se.Name.Local {
		case "g":
			c.groups = c.groups[:len(c.groups)-1]
		case "title":
			c.inTitle = false
		}
	case xml.CharData:
		if c.inTitle {
			c.doc.Title += string(se)
		}
	}
	return nil
}

// handleError reacts to unsupported content according to the error mode
func (c *docCursor) handleError(msg string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return fmt.Errorf("%w: %s", ErrFormat, msg)
	case WarnErrorMode:
		logger().Warn(msg)
	}
	return nil
}

func (c *docCursor) current() *Group { return c.groups[len(c.groups)-1] }

// readStyle parses the presentation attributes and the
// declarations of the style attribute.
func (c *docCursor) readStyle(attrs []xml.Attr) (Style, error) {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	var s Style
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if err := readStyleAttr(&s, k, v); err != nil {
			if err = c.handleError(err.Error()); err != nil {
				return Style{}, err
			}
		}
	}
	return s, nil
}

func parseNumber(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: attribute %s: invalid number %q", ErrFormat, name, v)
	}
	return f, nil
}

func svgF(c *docCursor, attrs []xml.Attr) error {
	if c.seenSVG {
		c.skipDepth = 1
		return c.handleError("nested svg elements are not supported")
	}
	c.seenSVG = true
	var (
		width, height float64
		hasViewBox    bool
		err           error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			fields := splitOnCommaOrSpace(attr.Value)
			if len(fields) != 4 {
				return fmt.Errorf("%w: invalid viewBox %q", ErrFormat, attr.Value)
			}
			var vb [4]float64
			for i, f := range fields {
				if vb[i], err = parseNumber("viewBox", f); err != nil {
					return err
				}
			}
			c.doc.ViewBox = ViewBox{X: vb[0], Y: vb[1], W: vb[2], H: vb[3]}
			hasViewBox = true
		case "width":
			width, err = parseNumber("width", attr.Value)
		case "height":
			height, err = parseNumber("height", attr.Value)
		case "preserveAspectRatio":
			if err = c.doc.SetAspectRatio(attr.Value); err != nil {
				err = fmt.Errorf("%w: %s", ErrFormat, err)
			}
		}
		if err != nil {
			return err
		}
	}
	if !hasViewBox {
		c.doc.ViewBox = ViewBox{W: width, H: height}
	}
	if width == 0 {
		width = c.doc.ViewBox.W
	}
	if height == 0 {
		height = c.doc.ViewBox.H
	}
	c.doc.Width, c.doc.Height = width, height
	return nil
}

func gF(c *docCursor, attrs []xml.Attr) error {
	style, err := c.readStyle(attrs)
	if err != nil {
		return err
	}
	g := &Group{Style: style}
	for _, attr := range attrs {
		if attr.Name.Local == "id" {
			g.ID = attr.Value
		}
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	c.current().Append(g)
	c.groups = append(c.groups, g)
	return nil
}

func pathF(c *docCursor, attrs []xml.Attr) error {
	style, err := c.readStyle(attrs)
	if err != nil {
		return err
	}
	var path svgpath.Path
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			path, err = svgpath.ParsePath(attr.Value)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrFormat, err)
			}
		}
	}
	c.current().Append(&PathElement{Path: path, Style: style})
	return nil
}

func circleF(c *docCursor, attrs []xml.Attr) error {
	style, err := c.readStyle(attrs)
	if err != nil {
		return err
	}
	var cx, cy, r float64
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = parseNumber("cx", attr.Value)
		case "cy":
			cy, err = parseNumber("cy", attr.Value)
		case "r":
			r, err = parseNumber("r", attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.current().Append(&CircleElement{Center: svgcurve.Point{X: cx, Y: cy}, Radius: r, Style: style})
	return nil
}

func lineF(c *docCursor, attrs []xml.Attr) error {
	style, err := c.readStyle(attrs)
	if err != nil {
		return err
	}
	var x1, y1, x2, y2 float64
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = parseNumber("x1", attr.Value)
		case "y1":
			y1, err = parseNumber("y1", attr.Value)
		case "x2":
			x2, err = parseNumber("x2", attr.Value)
		case "y2":
			y2, err = parseNumber("y2", attr.Value)
		}
		if err != nil {
			return err
		}
	}
	var path svgpath.Path
	path.Start(x1, y1)
	path.Line(x2, y2)
	c.current().Append(&PathElement{Path: path, Style: style})
	return nil
}

func titleF(c *docCursor, _ []xml.Attr) error {
	c.inTitle = true
	return nil
}

// skipF ignores the element and its content
func skipF(c *docCursor, _ []xml.Attr) error {
	c.skipDepth = 1
	return nil
}
