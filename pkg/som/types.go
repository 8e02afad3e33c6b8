package som

// BoundingBox is an element's rendered box in viewport-relative pixel units,
// captured at scan time.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Region names a coarse screen zone. Vertical placement dominates the
// classification and the bottom band collapses left/right into a single zone.
type Region string

const (
	RegionTopLeftHeader  Region = "top-left-header"
	RegionTopRightHeader Region = "top-right-header"
	RegionTopHeader      Region = "top-header"
	RegionBottomFooter   Region = "bottom-footer"
	RegionLeftSidebar    Region = "left-sidebar"
	RegionRightSidebar   Region = "right-sidebar"
	RegionMainContent    Region = "main-content"
)

// AnnotatedElement is one manifest entry: a value snapshot of an interactive
// element at scan time. It is immutable once constructed and carries no live
// handle to the document.
type AnnotatedElement struct {
	// ID is unique within one scan, contiguous from 1 in the order elements
	// pass the visibility filter. Not stable across scans.
	ID int `json:"id"`

	// Selector is a best-effort locator for the element within the scanned
	// document snapshot. Uniqueness is not guaranteed; consumers must verify
	// the selector resolves to exactly one element before acting on it.
	Selector string `json:"selector"`

	// Label is the element's display text, or its value, placeholder, or
	// aria-label when no visible text exists. Truncated to MaxLabelLength.
	Label string `json:"label"`

	// TagName is the lower-cased element tag.
	TagName string `json:"tagName"`

	// InputType is the element's type attribute when present, else empty.
	InputType string `json:"inputType"`

	// Region is the named screen zone containing the element's center.
	Region Region `json:"region"`

	// BoundingBox is the element's viewport-relative box at scan time.
	BoundingBox BoundingBox `json:"boundingBox"`
}

const (
	// MinTargetSize is the smallest rendered width or height, in pixels, an
	// element may have and still be a meaningful interaction target.
	// Elements measuring strictly less than this in either dimension are
	// excluded from the manifest.
	MinTargetSize = 5.0

	// MaxLabelLength bounds the label text carried in a manifest entry.
	MaxLabelLength = 50
)
