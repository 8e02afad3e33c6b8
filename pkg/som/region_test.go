package som_test

import (
	"testing"

	"github.com/entrhq/scout/pkg/som"
)

func TestClassifyRegion(t *testing.T) {
	vp := som.Viewport{Width: 1000, Height: 1000}

	// Boxes are 10x10, so the center sits 5px in from the given origin.
	tests := []struct {
		name string
		x, y float64
		want som.Region
	}{
		{"center at 50% width 5% height", 495, 45, som.RegionTopHeader},
		{"center at 10% width 50% height", 95, 495, som.RegionLeftSidebar},
		{"center at 50% width 92% height", 495, 915, som.RegionBottomFooter},
		{"top left corner", 45, 45, som.RegionTopLeftHeader},
		{"top right corner", 895, 45, som.RegionTopRightHeader},
		{"right sidebar", 895, 495, som.RegionRightSidebar},
		{"dead center", 495, 495, som.RegionMainContent},
		// Bottom collapses the horizontal distinction entirely.
		{"bottom left collapses to footer", 45, 915, som.RegionBottomFooter},
		{"bottom right collapses to footer", 895, 915, som.RegionBottomFooter},
		// Vertical wins over horizontal when both bands apply.
		{"top band beats left band", 45, 45, som.RegionTopLeftHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := som.BoundingBox{X: tt.x, Y: tt.y, Width: 10, Height: 10}
			if got := som.ClassifyRegion(box, vp); got != tt.want {
				t.Errorf("ClassifyRegion(%v) = %q, want %q", box, got, tt.want)
			}
		})
	}
}

func TestClassifyRegionBandEdges(t *testing.T) {
	vp := som.Viewport{Width: 1000, Height: 1000}

	tests := []struct {
		name string
		cx   float64
		cy   float64
		want som.Region
	}{
		{"just above top band edge", 500, 149, som.RegionTopHeader},
		{"just below top band edge", 500, 151, som.RegionMainContent},
		{"just above bottom band edge", 500, 849, som.RegionMainContent},
		{"just below bottom band edge", 500, 851, som.RegionBottomFooter},
		{"just inside left band", 199, 500, som.RegionLeftSidebar},
		{"just outside left band", 201, 500, som.RegionMainContent},
		{"just outside right band", 799, 500, som.RegionMainContent},
		{"just inside right band", 801, 500, som.RegionRightSidebar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Zero-size box so the center is exactly the origin.
			box := som.BoundingBox{X: tt.cx, Y: tt.cy}
			if got := som.ClassifyRegion(box, vp); got != tt.want {
				t.Errorf("center (%v,%v) = %q, want %q", tt.cx, tt.cy, got, tt.want)
			}
		})
	}
}
