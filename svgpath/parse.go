package svgpath

import (
	"errors"
	"fmt"
	"strconv"

	gl "github.com/rustyoz/genericlexer"
)

// ErrPathSyntax is returned when path data can't be read.
var ErrPathSyntax = errors.New("invalid path data")

// pathCursor stores the state of a path
// while its data is read.
type pathCursor struct {
	path           Path
	points         []float64 // arguments of the pending command
	placeX, placeY float64   // current point
	startX, startY float64   // start of the current sub-path
	hasPlace       bool
}

// ParsePath reads path data, as found in the `d` attribute
// of a path element. Only the commands M, L, H, V, A and Z are supported,
// in their absolute and relative forms. Relative commands are converted
// to absolute ones.
func ParsePath(d string) (Path, error) {
	lex, _ := gl.Lex("d", d)
	c := pathCursor{}
	var command rune
	for {
		item := lex.NextItem()
		switch item.Type {
		case gl.ItemError:
			return nil, fmt.Errorf("%w: %s", ErrPathSyntax, item.Value)
		case gl.ItemEOS:
			if command != 0 {
				if err := c.addSeg(command); err != nil {
					return nil, err
				}
			}
			return c.path, nil
		case gl.ItemLetter:
			if command != 0 {
				if err := c.addSeg(command); err != nil {
					return nil, err
				}
			}
			letters := []rune(item.Value)
			// only Z may be followed by an other command without separator
			for _, r := range letters[:len(letters)-1] {
				if r != 'z' && r != 'Z' {
					return nil, fmt.Errorf("%w: unexpected command %q", ErrPathSyntax, item.Value)
				}
				if err := c.addSeg(r); err != nil {
					return nil, err
				}
			}
			command = letters[len(letters)-1]
		case gl.ItemNumber:
			if command == 0 {
				return nil, fmt.Errorf("%w: number %s before any command", ErrPathSyntax, item.Value)
			}
			v, err := strconv.ParseFloat(item.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrPathSyntax, err)
			}
			c.points = append(c.points, v)
		default:
			// white space and commas
		}
	}
}

// expected number of arguments per command
func argsCount(command rune) (int, bool) {
	switch command {
	case 'M', 'm', 'L', 'l':
		return 2, true
	case 'H', 'h', 'V', 'v':
		return 1, true
	case 'A', 'a':
		return 7, true
	case 'Z', 'z':
		return 0, true
	default:
		return 0, false
	}
}

func readFlag(v float64) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid arc flag %g", ErrPathSyntax, v)
	}
}

// addSeg consumes the pending arguments for `command`
func (c *pathCursor) addSeg(command rune) error {
	defer func() { c.points = c.points[:0] }()

	n, ok := argsCount(command)
	if !ok {
		return fmt.Errorf("%w: unsupported command %q", ErrPathSyntax, command)
	}
	if n == 0 {
		if len(c.points) != 0 {
			return fmt.Errorf("%w: unexpected arguments for %q", ErrPathSyntax, command)
		}
		c.path.Stop(true)
		c.placeX, c.placeY = c.startX, c.startY
		return nil
	}
	if len(c.points) == 0 || len(c.points)%n != 0 {
		return fmt.Errorf("%w: %d arguments for %q", ErrPathSyntax, len(c.points), command)
	}
	if !c.hasPlace && command != 'M' && command != 'm' {
		return fmt.Errorf("%w: path must start with a move", ErrPathSyntax)
	}

	relative := command >= 'a' && command <= 'z'
	for i := 0; i < len(c.points); i += n {
		args := c.points[i : i+n]
		var dx, dy float64
		if relative {
			dx, dy = c.placeX, c.placeY
		}
		switch command {
		case 'M', 'm':
			x, y := args[0]+dx, args[1]+dy
			if i == 0 {
				c.path.Start(x, y)
				c.startX, c.startY = x, y
				c.hasPlace = true
			} else { // implicit line to
				c.path.Line(x, y)
			}
			c.placeX, c.placeY = x, y
		case 'L', 'l':
			c.placeX, c.placeY = args[0]+dx, args[1]+dy
			c.path.Line(c.placeX, c.placeY)
		case 'H', 'h':
			c.placeX = args[0] + dx
			c.path.Line(c.placeX, c.placeY)
		case 'V', 'v':
			c.placeY = args[0] + dy
			c.path.Line(c.placeX, c.placeY)
		case 'A', 'a':
			largeArc, err := readFlag(args[3])
			if err != nil {
				return err
			}
			sweep, err := readFlag(args[4])
			if err != nil {
				return err
			}
			c.placeX, c.placeY = args[5]+dx, args[6]+dy
			c.path = append(c.path, ArcTo{
				RX: args[0], RY: args[1], Rotation: args[2],
				LargeArc: largeArc, Sweep: sweep,
				X: c.placeX, Y: c.placeY,
			})
		}
	}
	return nil
}
