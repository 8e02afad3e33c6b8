package som

import (
	"fmt"
	"strings"
)

// Annotate scans page for interactive elements, renders a numbered badge
// over each one, and returns the manifest describing them. Manifest order is
// document order; ids are contiguous from 1 in the order elements pass the
// visibility filter. Elements that cannot be measured or fail a filter
// predicate are omitted silently.
//
// Badges left over from a previous pass are cleared first, so a scan always
// starts from a clean visual slate. The caller must not mutate the page
// between Annotate returning and the screenshot being taken, or badges and
// manifest will diverge.
func Annotate(page Page) ([]AnnotatedElement, error) {
	if err := page.ClearBadges(); err != nil {
		return nil, fmt.Errorf("clearing stale badges: %w", err)
	}

	vp := page.Viewport()
	var manifest []AnnotatedElement
	for _, el := range scanCandidates(page.Root()) {
		if !isVisible(el, vp) {
			continue
		}
		box := el.BoundingBox()
		manifest = append(manifest, AnnotatedElement{
			ID:          len(manifest) + 1,
			Selector:    SynthesizeLocator(el).String(),
			Label:       elementLabel(el),
			TagName:     el.TagName(),
			InputType:   el.Attr("type"),
			Region:      ClassifyRegion(box, vp),
			BoundingBox: box,
		})
	}

	scrollX, scrollY := page.ScrollOffset()
	if err := page.RenderBadges(buildBadges(manifest, scrollX, scrollY)); err != nil {
		return nil, fmt.Errorf("rendering badges: %w", err)
	}
	return manifest, nil
}

// Cleanup removes every currently rendered badge. It is a no-op when none
// exist and never invalidates a previously returned manifest.
func Cleanup(page Page) error {
	if err := page.ClearBadges(); err != nil {
		return fmt.Errorf("removing badges: %w", err)
	}
	return nil
}

// elementLabel derives the short display text for a manifest entry: visible
// text first, then value, placeholder, and aria-label.
func elementLabel(el Element) string {
	label := strings.TrimSpace(el.Text())
	if label == "" {
		label = el.Attr("value")
	}
	if label == "" {
		label = el.Attr("placeholder")
	}
	if label == "" {
		label = el.Attr("aria-label")
	}
	if runes := []rune(label); len(runes) > MaxLabelLength {
		label = string(runes[:MaxLabelLength])
	}
	return label
}
