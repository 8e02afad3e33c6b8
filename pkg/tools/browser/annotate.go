package browser

import (
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/scout/pkg/som"
)

// snapshotJS serializes the rendered element tree in one pass: tag,
// attributes (plus the live input value, which attributes alone miss),
// visible text, viewport-relative geometry, and the style properties the
// visibility filter inspects. One evaluation per scan keeps the whole tree
// internally consistent.
const snapshotJS = `() => {
	const toNode = (el) => {
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);
		const attrs = {};
		for (const a of el.attributes) attrs[a.name] = a.value;
		if (typeof el.value === 'string' && el.value && !attrs.value) attrs.value = el.value;
		const children = [];
		for (const c of el.children) children.push(toNode(c));
		return {
			tag: el.tagName.toLowerCase(),
			attrs: attrs,
			text: (el.innerText || '').replace(/\s+/g, ' ').trim().slice(0, 120),
			rect: {x: rect.x, y: rect.y, width: rect.width, height: rect.height},
			style: {
				display: style.display,
				visibility: style.visibility,
				opacity: parseFloat(style.opacity)
			},
			children: children
		};
	};
	return JSON.stringify({
		viewport: {width: window.innerWidth, height: window.innerHeight},
		scroll: {x: window.scrollX, y: window.scrollY},
		root: toNode(document.documentElement)
	});
}`

// clearBadgesJS removes every badge marker from a previous pass.
const clearBadgesJS = `() => {
	document.querySelectorAll('[` + som.BadgeMarkerAttr + `]').forEach((n) => n.remove());
}`

// renderBadgesJS paints one marker per badge at its document-space corner,
// honoring the som visual contract: monospaced numeric label, high contrast,
// top paint priority, pointer-transparent.
var renderBadgesJS = fmt.Sprintf(`(badges) => {
	for (const b of badges) {
		const el = document.createElement('div');
		el.setAttribute('%s', String(b.id));
		el.textContent = String(b.id);
		el.style.cssText = [
			'position: absolute',
			'left: ' + b.x + 'px',
			'top: ' + b.y + 'px',
			'background: %s',
			'color: %s',
			'font-family: %s',
			'font-size: %dpx',
			'line-height: 1',
			'padding: 2px 4px',
			'border-radius: 3px',
			'z-index: %d',
			'pointer-events: none'
		].join('; ');
		document.body.appendChild(el);
	}
}`, som.BadgeMarkerAttr, som.BadgeBackground, som.BadgeForeground,
	som.BadgeFontFamily, som.BadgeFontSizePx, som.BadgeZIndex)

// snapshotNode is one element of a captured tree. It implements som.Element.
type snapshotNode struct {
	Tag         string            `json:"tag"`
	Attrs       map[string]string `json:"attrs"`
	TextContent string            `json:"text"`
	Rect        som.BoundingBox   `json:"rect"`
	StyleInfo   struct {
		Display    string  `json:"display"`
		Visibility string  `json:"visibility"`
		Opacity    float64 `json:"opacity"`
	} `json:"style"`
	ChildNodes []*snapshotNode `json:"children"`

	parent *snapshotNode
}

func (n *snapshotNode) TagName() string       { return n.Tag }
func (n *snapshotNode) Attr(name string) string { return n.Attrs[name] }
func (n *snapshotNode) HasAttr(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}
func (n *snapshotNode) Parent() som.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}
func (n *snapshotNode) Children() []som.Element {
	out := make([]som.Element, len(n.ChildNodes))
	for i, c := range n.ChildNodes {
		out[i] = c
	}
	return out
}
func (n *snapshotNode) Text() string                 { return n.TextContent }
func (n *snapshotNode) BoundingBox() som.BoundingBox { return n.Rect }
func (n *snapshotNode) Style() som.ComputedStyle {
	return som.ComputedStyle{
		Display:    n.StyleInfo.Display,
		Visibility: n.StyleInfo.Visibility,
		Opacity:    n.StyleInfo.Opacity,
	}
}

// linkParents wires parent pointers after JSON decoding.
func linkParents(n *snapshotNode) {
	for _, c := range n.ChildNodes {
		c.parent = n
		linkParents(c)
	}
}

// snapshotPayload is the full capture returned by snapshotJS.
type snapshotPayload struct {
	Viewport struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"viewport"`
	Scroll struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"scroll"`
	Root *snapshotNode `json:"root"`
}

// annotationPage adapts a live Playwright page to the som.Page interface.
// The element tree, viewport, and scroll offset come from a single snapshot;
// badge operations evaluate against the live document.
type annotationPage struct {
	page playwright.Page
	snap snapshotPayload
}

// newAnnotationPage captures a snapshot of the page's current rendered state.
func newAnnotationPage(page playwright.Page) (*annotationPage, error) {
	result, err := page.Evaluate(snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("capturing page snapshot: %w", err)
	}

	raw, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected snapshot result type %T", result)
	}

	ap := &annotationPage{page: page}
	if err := json.Unmarshal([]byte(raw), &ap.snap); err != nil {
		return nil, fmt.Errorf("decoding page snapshot: %w", err)
	}
	if ap.snap.Root == nil {
		return nil, fmt.Errorf("page snapshot has no root element")
	}
	linkParents(ap.snap.Root)
	return ap, nil
}

func (p *annotationPage) Root() som.Element { return p.snap.Root }

func (p *annotationPage) Viewport() som.Viewport {
	return som.Viewport{Width: p.snap.Viewport.Width, Height: p.snap.Viewport.Height}
}

func (p *annotationPage) ScrollOffset() (x, y float64) {
	return p.snap.Scroll.X, p.snap.Scroll.Y
}

func (p *annotationPage) RenderBadges(badges []som.Badge) error {
	arg := make([]map[string]interface{}, len(badges))
	for i, b := range badges {
		arg[i] = map[string]interface{}{"id": b.ID, "x": b.X, "y": b.Y}
	}
	if _, err := p.page.Evaluate(renderBadgesJS, arg); err != nil {
		return fmt.Errorf("painting badges: %w", err)
	}
	return nil
}

func (p *annotationPage) ClearBadges() error {
	if _, err := p.page.Evaluate(clearBadgesJS); err != nil {
		return fmt.Errorf("clearing badges: %w", err)
	}
	return nil
}

// Annotate runs Set-of-Mark annotation against the session's current page:
// it captures a snapshot, renders a numbered badge over every interactive
// element, and returns the manifest. Call ClearAnnotations (or Annotate
// again) once the annotated screenshot has been taken.
func (s *Session) Annotate() ([]som.AnnotatedElement, error) {
	s.UpdateLastUsed()

	page, err := newAnnotationPage(s.Page)
	if err != nil {
		return nil, err
	}
	return som.Annotate(page)
}

// ClearAnnotations removes every badge from the current page. Safe to call
// when none are rendered.
func (s *Session) ClearAnnotations() error {
	s.UpdateLastUsed()
	return som.Cleanup(&annotationPage{page: s.Page})
}
