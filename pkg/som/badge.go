package som

// Visual contract for rendered badges. Adapters that paint badges onto a live
// document must honor these so a screenshot taken right after annotation
// shows every manifest id legibly without disturbing the page underneath.
const (
	// BadgeMarkerAttr tags every badge node so the markers from one pass can
	// be found and removed as a unit.
	BadgeMarkerAttr = "data-scout-som"

	// BadgeFontFamily keeps the numeric label fixed-width and legible at
	// small sizes in a screenshot.
	BadgeFontFamily = "monospace"

	// BadgeFontSizePx is the badge label text size.
	BadgeFontSizePx = 12

	// BadgeBackground and BadgeForeground are the high-contrast badge colors.
	BadgeBackground = "#e91e8c"
	BadgeForeground = "#ffffff"

	// BadgeZIndex puts badges above all page content.
	BadgeZIndex = 2147483647
)

// buildBadges produces one badge per manifest entry, anchored at the entry's
// scroll-adjusted top-left corner so an absolutely positioned marker lands on
// the element regardless of the current scroll position.
func buildBadges(manifest []AnnotatedElement, scrollX, scrollY float64) []Badge {
	badges := make([]Badge, 0, len(manifest))
	for _, entry := range manifest {
		badges = append(badges, Badge{
			ID: entry.ID,
			X:  entry.BoundingBox.X + scrollX,
			Y:  entry.BoundingBox.Y + scrollY,
		})
	}
	return badges
}
