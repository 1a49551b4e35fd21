package svgdoc

import (
	"github.com/benoitkugler/curvesvg/svgcurve"
	"github.com/benoitkugler/curvesvg/svgpath"
	"github.com/google/uuid"
)

// Element is a node of the document tree.
// The set is closed: only *PathElement, *CircleElement and *Group implement it.
type Element interface {
	style() Style
}

// PathElement is a <path> element. Its coordinates are
// in drawing space.
type PathElement struct {
	Path  svgpath.Path
	Style Style
}

// CircleElement is a <circle> element. Its center is
// in drawing space.
type CircleElement struct {
	Center svgcurve.Point
	Radius float64
	Style  Style
}

// Group is a <g> element. Its style is inherited by its children,
// unless they override it.
type Group struct {
	ID       string // unique in a document
	Style    Style
	Children []Element
}

func (e *PathElement) style() Style   { return e.Style }
func (e *CircleElement) style() Style { return e.Style }
func (g *Group) style() Style         { return g.Style }

// NewGroup returns an empty group with a new unique ID.
func NewGroup(style Style) *Group {
	return &Group{ID: uuid.NewString(), Style: Style{}.Merge(style)}
}

// Append adds elements at the end of the group.
func (g *Group) Append(elems ...Element) {
	g.Children = append(g.Children, elems...)
}

// Find returns the group with the given id, which may be `g` itself
// or one of its descendants, or nil if not found.
func (g *Group) Find(id string) *Group {
	if g.ID == id {
		return g
	}
	for _, child := range g.Children {
		if sub, ok := child.(*Group); ok {
			if found := sub.Find(id); found != nil {
				return found
			}
		}
	}
	return nil
}

// Walk calls `fn` on each path and circle of the group, in document order,
// with the style resulting from the inheritance through the nested groups.
func (g *Group) Walk(fn func(e Element, style Style)) {
	g.walk(Style{}, fn)
}

func (g *Group) walk(inherited Style, fn func(e Element, style Style)) {
	inherited = inherited.Merge(g.Style)
	for _, child := range g.Children {
		if sub, ok := child.(*Group); ok {
			sub.walk(inherited, fn)
			continue
		}
		fn(child, inherited.Merge(child.style()))
	}
}
