package som

// isVisible reports whether a candidate is a usable annotation target in the
// current viewport. Rejections are silent: a rejected element is simply
// absent from the manifest.
//
// Only the box origin is checked against the viewport edges. An element that
// starts inside the viewport but extends past its bottom or right edge is
// kept; this asymmetry is longstanding observable behavior and changing it
// would shift manifests under existing consumers.
func isVisible(el Element, vp Viewport) bool {
	box := el.BoundingBox()

	// Too small to be a meaningful click target.
	if box.Width < MinTargetSize || box.Height < MinTargetSize {
		return false
	}

	style := el.Style()
	if style.Display == "none" || style.Visibility == "hidden" || style.Opacity == 0 {
		return false
	}

	// Origin scrolled above or left of the viewport.
	if box.X < 0 || box.Y < 0 {
		return false
	}

	// Origin below or right of the visible area.
	if box.Y > vp.Height || box.X > vp.Width {
		return false
	}

	return true
}
