package som

// ComputedStyle carries the rendered style properties the visibility filter
// inspects. Adapters map their engine's computed style onto these fields.
type ComputedStyle struct {
	// Display is the computed display value ("none" marks a non-displayed
	// element).
	Display string

	// Visibility is the computed visibility value ("hidden" marks an
	// invisible element).
	Visibility string

	// Opacity is the computed opacity in [0, 1]. Exactly 0 marks a fully
	// transparent element.
	Opacity float64
}

// Element is a single node of the rendered document tree. Implementations
// are snapshots: every accessor reflects the document state at capture time
// and stays stable for the lifetime of the scan.
type Element interface {
	// TagName returns the lower-cased tag name.
	TagName() string

	// Attr returns the value of the named attribute, or "" when absent.
	Attr(name string) string

	// HasAttr reports whether the named attribute is present, including
	// present-but-empty.
	HasAttr(name string) bool

	// Parent returns the parent element, or nil at the document root.
	Parent() Element

	// Children returns the child elements in document order.
	Children() []Element

	// Text returns the element's visible text content, whitespace-collapsed.
	Text() string

	// BoundingBox returns the rendered box in viewport-relative pixels.
	BoundingBox() BoundingBox

	// Style returns the computed style properties the filter inspects.
	Style() ComputedStyle
}

// Viewport holds the visible page dimensions in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Badge describes one visual marker to render: the manifest id it displays
// and its scroll-adjusted top-left corner in document coordinates. Badges
// carry no identity beyond their label and position and are never referenced
// by the manifest.
type Badge struct {
	ID int
	X  float64
	Y  float64
}

// Page is the narrow view of a rendered document the annotation pipeline
// needs: the element tree, viewport geometry, scroll position, and a surface
// to paint badges on. Hiding the ambient document behind this interface lets
// the pipeline run against a synthetic in-memory tree in tests.
//
// Implementations need not be safe for concurrent use; one annotation pass
// is a single synchronous unit of work with a single logical caller.
type Page interface {
	// Root returns the document's root element.
	Root() Element

	// Viewport returns the current viewport dimensions.
	Viewport() Viewport

	// ScrollOffset returns the document scroll position in pixels.
	ScrollOffset() (x, y float64)

	// RenderBadges paints one marker per badge according to the visual
	// contract in badge.go.
	RenderBadges(badges []Badge) error

	// ClearBadges removes every currently rendered badge marker. It is a
	// no-op when none exist.
	ClearBadges() error
}
