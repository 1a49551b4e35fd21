package svgdoc

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/curvesvg/svgpath"
	"golang.org/x/image/colornames"
)

// ErrInvalidStyle is returned when a style attribute has
// an out of range or malformed value.
var ErrInvalidStyle = errors.New("invalid style")

// Paint is the value of a fill or stroke attribute:
// either a plain opaque color or `none`.
type Paint struct {
	color.RGBA
	Name string // SVG color keyword, written instead of the hex form when not empty
	None bool
}

// NoPaint disables filling or stroking.
var NoPaint = Paint{None: true}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Paint {
	return Paint{RGBA: color.RGBA{R: r, G: g, B: b, A: 0xff}}
}

// NamedPaint returns the color with the given SVG keyword,
// such as "black" or "steelblue".
func NamedPaint(name string) (Paint, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return Paint{}, fmt.Errorf("%w: unknown color %q", ErrInvalidStyle, name)
	}
	return Paint{RGBA: c, Name: strings.ToLower(name)}, nil
}

func (p Paint) String() string {
	switch {
	case p.None:
		return "none"
	case p.Name != "":
		return p.Name
	default:
		return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
	}
}

// ParsePaint reads a paint value: `none`, a color keyword,
// `#rgb`, `#rrggbb` or `rgb(r, g, b)`.
func ParsePaint(s string) (Paint, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "none":
		return NoPaint, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBFunction(strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")"))
	default:
		return NamedPaint(s)
	}
}

func parseHexColor(hex string) (Paint, error) {
	if len(hex) == 3 { // #rgb is a shorthand for #rrggbb
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Paint{}, fmt.Errorf("%w: invalid hex color #%s", ErrInvalidStyle, hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Paint{}, fmt.Errorf("%w: invalid hex color #%s", ErrInvalidStyle, hex)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func parseRGBFunction(args string) (Paint, error) {
	fields := splitOnCommaOrSpace(args)
	if len(fields) != 3 {
		return Paint{}, fmt.Errorf("%w: rgb() expects 3 components, got %q", ErrInvalidStyle, args)
	}
	var comps [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return Paint{}, fmt.Errorf("%w: rgb() component %q", ErrInvalidStyle, f)
		}
		if strings.HasSuffix(f, "%") {
			v = v * 255 / 100
		}
		comps[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return RGB(comps[0], comps[1], comps[2]), nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // not specified
	ButtCap
	RoundCap
	SquareCap
)

// String returns the SVG keyword of the cap mode,
// or an empty string for NilCap.
func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case RoundCap:
		return "round"
	case SquareCap:
		return "square"
	default:
		return ""
	}
}

func parseCapMode(s string) (CapMode, error) {
	switch s {
	case "butt":
		return ButtCap, nil
	case "round":
		return RoundCap, nil
	case "square":
		return SquareCap, nil
	default:
		return NilCap, fmt.Errorf("%w: unknown line cap %q", ErrInvalidStyle, s)
	}
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	NilJoin JoinMode = iota // not specified
	Miter
	Round
	Bevel
	MiterClip // New in SVG2
	Arcs      // New in SVG2
)

// String returns the SVG keyword of the join mode,
// or an empty string for NilJoin.
func (j JoinMode) String() string {
	switch j {
	case Miter:
		return "miter"
	case Round:
		return "round"
	case Bevel:
		return "bevel"
	case MiterClip:
		return "miter-clip"
	case Arcs:
		return "arcs"
	default:
		return ""
	}
}

func parseJoinMode(s string) (JoinMode, error) {
	switch s {
	case "miter":
		return Miter, nil
	case "round":
		return Round, nil
	case "bevel":
		return Bevel, nil
	case "miter-clip":
		return MiterClip, nil
	case "arcs":
		return Arcs, nil
	default:
		return NilJoin, fmt.Errorf("%w: unknown line join %q", ErrInvalidStyle, s)
	}
}

// Style holds the presentation attributes of an element or a group.
// Every field is optional: nil pointers, NilCap, NilJoin and an empty
// DashArray are not written, leaving the renderer default (or the
// value inherited from the enclosing group) in effect.
type Style struct {
	Fill, Stroke *Paint

	FillOpacity, StrokeOpacity *float64 // in [0, 1]
	StrokeWidth                *float64

	LineCap   CapMode
	LineJoin  JoinMode
	DashArray string // SVG encoded dash pattern, such as "4,2" or "none"
}

// DefaultStrokeWidth is the stroke width applied to converted curves.
const DefaultStrokeWidth = 0.5

// DefaultStyle is applied to every element produced from a curve:
// black stroke of width DefaultStrokeWidth, no fill.
var DefaultStyle = Style{
	Fill:        &NoPaint,
	Stroke:      &Paint{RGBA: colornames.Black, Name: "black"},
	StrokeWidth: newFloat(DefaultStrokeWidth),
}

func newFloat(v float64) *float64 { return &v }

func copyPaint(p *Paint) *Paint {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return newFloat(*v)
}

// Merge returns a copy of `s`, where each field set in `over`
// replaces the one of `s`.
// The returned style does not share memory with `s` nor `over`.
func (s Style) Merge(over Style) Style {
	out := Style{
		Fill:          copyPaint(s.Fill),
		Stroke:        copyPaint(s.Stroke),
		FillOpacity:   copyFloat(s.FillOpacity),
		StrokeOpacity: copyFloat(s.StrokeOpacity),
		StrokeWidth:   copyFloat(s.StrokeWidth),
		LineCap:       s.LineCap,
		LineJoin:      s.LineJoin,
		DashArray:     s.DashArray,
	}
	if over.Fill != nil {
		out.Fill = copyPaint(over.Fill)
	}
	if over.Stroke != nil {
		out.Stroke = copyPaint(over.Stroke)
	}
	if over.FillOpacity != nil {
		out.FillOpacity = copyFloat(over.FillOpacity)
	}
	if over.StrokeOpacity != nil {
		out.StrokeOpacity = copyFloat(over.StrokeOpacity)
	}
	if over.StrokeWidth != nil {
		out.StrokeWidth = copyFloat(over.StrokeWidth)
	}
	if over.LineCap != NilCap {
		out.LineCap = over.LineCap
	}
	if over.LineJoin != NilJoin {
		out.LineJoin = over.LineJoin
	}
	if over.DashArray != "" {
		out.DashArray = over.DashArray
	}
	return out
}

// Validate checks the range of the numeric attributes and
// the syntax of the dash array.
func (s Style) Validate() error {
	for _, p := range [2]*Paint{s.Fill, s.Stroke} {
		if p == nil || p.None || p.Name == "" {
			continue
		}
		if _, ok := colornames.Map[p.Name]; !ok {
			return fmt.Errorf("%w: unknown color %q", ErrInvalidStyle, p.Name)
		}
	}
	for _, op := range [2]struct {
		name string
		v    *float64
	}{{"fill-opacity", s.FillOpacity}, {"stroke-opacity", s.StrokeOpacity}} {
		if op.v != nil && !(*op.v >= 0 && *op.v <= 1) {
			return fmt.Errorf("%w: %s %g outside [0, 1]", ErrInvalidStyle, op.name, *op.v)
		}
	}
	if s.StrokeWidth != nil && (!(*s.StrokeWidth >= 0) || math.IsInf(*s.StrokeWidth, 0)) {
		return fmt.Errorf("%w: stroke-width %g", ErrInvalidStyle, *s.StrokeWidth)
	}
	if s.LineCap > SquareCap {
		return fmt.Errorf("%w: line cap %d", ErrInvalidStyle, s.LineCap)
	}
	if s.LineJoin > Arcs {
		return fmt.Errorf("%w: line join %d", ErrInvalidStyle, s.LineJoin)
	}
	if _, err := parseDashArray(s.DashArray); err != nil {
		return err
	}
	return nil
}

// parseDashArray returns the dash lengths of `s`, or nil
// for an empty string and `none`.
func parseDashArray(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil, nil
	}
	fields := splitOnCommaOrSpace(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: stroke-dasharray %q", ErrInvalidStyle, s)
		}
		out[i] = v
	}
	return out, nil
}

// attributes returns the presentation attributes set in `s`,
// as key="value" strings.
func (s Style) attributes() []string {
	var out []string
	if s.Fill != nil {
		out = append(out, attr("fill", s.Fill.String()))
	}
	if s.FillOpacity != nil {
		out = append(out, attr("fill-opacity", svgpath.FormatFloat(*s.FillOpacity)))
	}
	if s.Stroke != nil {
		out = append(out, attr("stroke", s.Stroke.String()))
	}
	if s.StrokeOpacity != nil {
		out = append(out, attr("stroke-opacity", svgpath.FormatFloat(*s.StrokeOpacity)))
	}
	if s.StrokeWidth != nil {
		out = append(out, attr("stroke-width", svgpath.FormatFloat(*s.StrokeWidth)))
	}
	if s.LineCap != NilCap {
		out = append(out, attr("stroke-linecap", s.LineCap.String()))
	}
	if s.LineJoin != NilJoin {
		out = append(out, attr("stroke-linejoin", s.LineJoin.String()))
	}
	if s.DashArray != "" {
		out = append(out, attr("stroke-dasharray", s.DashArray))
	}
	return out
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func attr(key, value string) string { return key + `="` + attrEscaper.Replace(value) + `"` }

// StyleOption sets one attribute of a Style.
type StyleOption func(*Style)

// WithFill sets the fill paint. Use NoPaint to disable filling.
func WithFill(p Paint) StyleOption {
	return func(s *Style) { s.Fill = &p }
}

// WithStroke sets the stroke paint. Use NoPaint to disable stroking.
func WithStroke(p Paint) StyleOption {
	return func(s *Style) { s.Stroke = &p }
}

// WithFillOpacity sets the fill opacity, in [0, 1].
func WithFillOpacity(v float64) StyleOption {
	return func(s *Style) { s.FillOpacity = &v }
}

// WithStrokeOpacity sets the stroke opacity, in [0, 1].
func WithStrokeOpacity(v float64) StyleOption {
	return func(s *Style) { s.StrokeOpacity = &v }
}

// WithStrokeWidth sets the stroke width, in user units.
func WithStrokeWidth(v float64) StyleOption {
	return func(s *Style) { s.StrokeWidth = &v }
}

// WithLineCap sets the shape of the ends of open sub-paths.
func WithLineCap(c CapMode) StyleOption {
	return func(s *Style) { s.LineCap = c }
}

// WithLineJoin sets the shape of the corners of stroked paths.
func WithLineJoin(j JoinMode) StyleOption {
	return func(s *Style) { s.LineJoin = j }
}

// WithDashArray sets the dash pattern, such as "5,3" or "none".
func WithDashArray(d string) StyleOption {
	return func(s *Style) { s.DashArray = strings.TrimSpace(d) }
}

// NewStyle builds a style from the given options,
// leaving the other attributes unset.
// An error wrapping ErrInvalidStyle is returned for out of range values.
func NewStyle(opts ...StyleOption) (Style, error) {
	var s Style
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

// readStyleAttr sets the attribute `k` of `s`, ignoring unknown keys.
func readStyleAttr(s *Style, k, v string) error {
	var err error
	switch k {
	case "fill", "stroke":
		var p Paint
		p, err = ParsePaint(v)
		if err != nil {
			return err
		}
		if k == "fill" {
			s.Fill = &p
		} else {
			s.Stroke = &p
		}
	case "fill-opacity", "stroke-opacity", "stroke-width":
		var f float64
		f, err = strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
		if err != nil || !(f >= 0) || math.IsInf(f, 0) || (k != "stroke-width" && f > 1) {
			return fmt.Errorf("%w: %s %q", ErrInvalidStyle, k, v)
		}
		switch k {
		case "fill-opacity":
			s.FillOpacity = &f
		case "stroke-opacity":
			s.StrokeOpacity = &f
		default:
			s.StrokeWidth = &f
		}
	case "stroke-linecap":
		s.LineCap, err = parseCapMode(v)
	case "stroke-linejoin":
		s.LineJoin, err = parseJoinMode(v)
	case "stroke-dasharray":
		if _, err = parseDashArray(v); err == nil {
			s.DashArray = v
		}
	}
	return err
}
