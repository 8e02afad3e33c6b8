// Package somtest provides a synthetic in-memory page for exercising the som
// annotation pipeline without a rendering engine.
//
// Pages are built from HTML source. Geometry and computed style, which plain
// markup cannot carry, are supplied through data attributes on the elements
// themselves:
//
//	data-rect="x y w h"     bounding box in viewport-relative pixels
//	data-display="none"     computed display value
//	data-visibility="hidden" computed visibility value
//	data-opacity="0"        computed opacity (defaults to 1)
//
// Elements without a data-rect have a zero box and are rejected by the
// visibility filter, which keeps structural fixtures (wrappers, containers)
// out of manifests unless a test opts them in.
package somtest

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/entrhq/scout/pkg/som"
)

// Node is one element of a synthetic page. It implements som.Element.
type Node struct {
	tag      string
	attrs    map[string]string
	parent   *Node
	children []*Node
	text     string
	box      som.BoundingBox
	style    som.ComputedStyle
}

// TagName returns the lower-cased tag name.
func (n *Node) TagName() string { return n.tag }

// Attr returns the named attribute value, or "" when absent.
func (n *Node) Attr(name string) string { return n.attrs[name] }

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// Parent returns the parent element, or nil at the root.
func (n *Node) Parent() som.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children returns the child elements in document order.
func (n *Node) Children() []som.Element {
	out := make([]som.Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Text returns the whitespace-collapsed text content of the subtree.
func (n *Node) Text() string { return n.text }

// BoundingBox returns the box supplied via data-rect, zero when absent.
func (n *Node) BoundingBox() som.BoundingBox { return n.box }

// Style returns the computed style supplied via data attributes.
func (n *Node) Style() som.ComputedStyle { return n.style }

// Page is a synthetic som.Page. Badge operations record onto the struct so
// tests can assert on render and clear behavior.
type Page struct {
	root     *Node
	viewport som.Viewport
	scrollX  float64
	scrollY  float64

	// Badges holds the currently rendered badges.
	Badges []som.Badge

	// RenderCalls and ClearCalls count badge surface invocations.
	RenderCalls int
	ClearCalls  int
}

// Option configures a synthetic page.
type Option func(*Page)

// WithViewport sets the viewport dimensions. The default is 1280x720.
func WithViewport(width, height float64) Option {
	return func(p *Page) { p.viewport = som.Viewport{Width: width, Height: height} }
}

// WithScroll sets the document scroll offset. The default is 0,0.
func WithScroll(x, y float64) Option {
	return func(p *Page) { p.scrollX, p.scrollY = x, y }
}

// Parse builds a synthetic page from HTML source.
func Parse(src string, opts ...Option) (*Page, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing fixture HTML: %w", err)
	}

	rootEl := findElement(doc, "html")
	if rootEl == nil {
		return nil, fmt.Errorf("fixture has no root element")
	}

	p := &Page{
		root:     buildNode(rootEl, nil),
		viewport: som.Viewport{Width: 1280, Height: 720},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// MustParse is Parse that panics on malformed fixtures.
func MustParse(src string, opts ...Option) *Page {
	p, err := Parse(src, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Root returns the document root element.
func (p *Page) Root() som.Element { return p.root }

// Viewport returns the configured viewport.
func (p *Page) Viewport() som.Viewport { return p.viewport }

// ScrollOffset returns the configured scroll offset.
func (p *Page) ScrollOffset() (x, y float64) { return p.scrollX, p.scrollY }

// RenderBadges records the rendered badges.
func (p *Page) RenderBadges(badges []som.Badge) error {
	p.RenderCalls++
	p.Badges = append(p.Badges, badges...)
	return nil
}

// ClearBadges removes all recorded badges.
func (p *Page) ClearBadges() error {
	p.ClearCalls++
	p.Badges = nil
	return nil
}

// ByID returns the first element with the given id attribute, or nil.
func (p *Page) ByID(id string) *Node {
	return p.find(func(n *Node) bool { return n.attrs["id"] == id })
}

// ByTag returns every element with the given tag in document order.
func (p *Page) ByTag(tag string) []*Node {
	var out []*Node
	p.walk(func(n *Node) {
		if n.tag == tag {
			out = append(out, n)
		}
	})
	return out
}

func (p *Page) find(match func(*Node) bool) *Node {
	var found *Node
	p.walk(func(n *Node) {
		if found == nil && match(n) {
			found = n
		}
	})
	return found
}

func (p *Page) walk(visit func(*Node)) {
	var rec func(n *Node)
	rec = func(n *Node) {
		visit(n)
		for _, c := range n.children {
			rec(c)
		}
	}
	rec(p.root)
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := findElement(c, tag); el != nil {
			return el
		}
	}
	return nil
}

func buildNode(src *html.Node, parent *Node) *Node {
	n := &Node{
		tag:    strings.ToLower(src.Data),
		attrs:  make(map[string]string, len(src.Attr)),
		parent: parent,
		style:  som.ComputedStyle{Opacity: 1},
	}
	for _, a := range src.Attr {
		n.attrs[a.Key] = a.Val
	}

	if rect := n.attrs["data-rect"]; rect != "" {
		n.box = parseRect(rect)
	}
	n.style.Display = n.attrs["data-display"]
	n.style.Visibility = n.attrs["data-visibility"]
	if op := n.attrs["data-opacity"]; op != "" {
		if v, err := strconv.ParseFloat(op, 64); err == nil {
			n.style.Opacity = v
		}
	}

	var textParts []string
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			child := buildNode(c, n)
			n.children = append(n.children, child)
			if child.text != "" {
				textParts = append(textParts, child.text)
			}
		case html.TextNode:
			if t := strings.Join(strings.Fields(c.Data), " "); t != "" {
				textParts = append(textParts, t)
			}
		}
	}
	n.text = strings.Join(textParts, " ")
	return n
}

func parseRect(s string) som.BoundingBox {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return som.BoundingBox{}
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return som.BoundingBox{}
		}
		vals[i] = v
	}
	return som.BoundingBox{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
}
