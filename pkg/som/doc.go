// Package som implements Set-of-Mark visual grounding for rendered web pages.
//
// Set-of-Mark (SoM) annotation overlays numbered badges on the interactive
// elements of a page so that a vision model can refer to elements by number
// instead of guessing pixel coordinates. One annotation pass scans the
// document for interactive candidates, filters out elements a screenshot
// cannot show, and returns an ordered manifest of annotated elements while
// rendering a matching badge over each one.
//
// # Architecture
//
// The package is split into small, independently testable pieces:
//
//  1. Scanner: enumerates candidate interactive elements in document order
//  2. Filter: rejects elements that are too small, hidden, or off-screen
//  3. Region classifier: maps a bounding box to a named screen zone
//  4. Selector synthesizer: derives a best-effort locator for each element
//  5. Badge renderer: paints the numbered marker over each survivor
//
// The live document is reached only through the narrow Page and Element
// interfaces, so the whole pipeline runs unmodified against a synthetic
// in-memory tree (see the somtest subpackage) or against a real browser page
// (see pkg/tools/browser).
//
// # Lifecycle
//
// Annotate always clears badges left over from a previous pass before
// rendering new ones, so repeated calls never accumulate stale markers.
// Cleanup removes every badge and is safe to call when none exist. The
// returned manifest is a value snapshot: it stays valid after Cleanup, but
// its selectors are only as durable as the page itself.
//
// # Example Usage
//
//	manifest, err := som.Annotate(page)
//	if err != nil {
//	    return err
//	}
//	// take screenshot, ask the vision model for a badge number n
//	entry := manifest[n-1] // ids are contiguous from 1 in manifest order
//	// act on entry.Selector, then remove the markers
//	som.Cleanup(page)
package som
