package som

// Band fractions for the region classifier. The top and bottom bands each
// cover 15% of the viewport height; the left and right bands each cover 20%
// of the width.
const (
	verticalBand   = 0.15
	horizontalBand = 0.20
)

// ClassifyRegion maps a bounding box to the named screen zone containing its
// center point. Vertical placement is decided first and dominates: anything
// in the bottom band is "bottom-footer" regardless of horizontal position.
func ClassifyRegion(box BoundingBox, vp Viewport) Region {
	cx := box.X + box.Width/2
	cy := box.Y + box.Height/2

	top := cy < vp.Height*verticalBand
	bottom := !top && cy > vp.Height*(1-verticalBand)
	left := cx < vp.Width*horizontalBand
	right := cx > vp.Width*(1-horizontalBand)

	switch {
	case top && left:
		return RegionTopLeftHeader
	case top && right:
		return RegionTopRightHeader
	case top:
		return RegionTopHeader
	case bottom:
		return RegionBottomFooter
	case left:
		return RegionLeftSidebar
	case right:
		return RegionRightSidebar
	default:
		return RegionMainContent
	}
}
