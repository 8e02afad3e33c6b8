package som_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/scout/pkg/som"
	"github.com/entrhq/scout/pkg/som/somtest"
)

func TestVisibilityFilterSizeBoundary(t *testing.T) {
	tests := []struct {
		name string
		rect string
		want bool
	}{
		{"3x3 too small", "100 100 3 3", false},
		{"10x10 included", "100 100 10 10", true},
		{"exactly 5 in one dimension", "100 100 5 40", true},
		{"just under 5 in one dimension", "100 100 4 40", false},
		{"exactly 5 both dimensions", "100 100 5 5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := somtest.MustParse(
				`<html><body><button data-rect="` + tt.rect + `">Go</button></body></html>`)
			manifest, err := som.Annotate(page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, len(manifest) == 1, "manifest: %+v", manifest)
		})
	}
}

func TestVisibilityFilterStyleAndViewport(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   bool
	}{
		{"display none", `<button data-rect="100 100 80 30" data-display="none">x</button>`, false},
		{"visibility hidden", `<button data-rect="100 100 80 30" data-visibility="hidden">x</button>`, false},
		{"opacity zero", `<button data-rect="100 100 80 30" data-opacity="0">x</button>`, false},
		{"faint but not transparent", `<button data-rect="100 100 80 30" data-opacity="0.01">x</button>`, true},
		{"negative left edge", `<button data-rect="-10 100 80 30">x</button>`, false},
		{"negative top edge", `<button data-rect="100 -10 80 30">x</button>`, false},
		{"origin right of viewport", `<button data-rect="1300 100 80 30">x</button>`, false},
		{"origin below viewport", `<button data-rect="100 800 80 30">x</button>`, false},
		// Only the origin is checked: an element that starts on-screen but
		// extends past the bottom/right edge stays in the manifest.
		{"extends past right edge", `<button data-rect="1200 100 400 30">x</button>`, true},
		{"extends past bottom edge", `<button data-rect="100 700 80 200">x</button>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := somtest.MustParse(`<html><body>` + tt.markup + `</body></html>`)
			manifest, err := som.Annotate(page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, len(manifest) == 1, "manifest: %+v", manifest)
		})
	}
}

func TestFilteredElementsConsumeNoID(t *testing.T) {
	page := somtest.MustParse(`<html><body>
		<button id="first" data-rect="10 10 80 30">First</button>
		<button id="hidden" data-rect="10 50 80 30" data-display="none">Hidden</button>
		<button id="second" data-rect="10 90 80 30">Second</button>
	</body></html>`)

	manifest, err := som.Annotate(page)
	require.NoError(t, err)
	require.Len(t, manifest, 2)

	assert.Equal(t, 1, manifest[0].ID)
	assert.Equal(t, "#first", manifest[0].Selector)
	assert.Equal(t, 2, manifest[1].ID)
	assert.Equal(t, "#second", manifest[1].Selector)
}

func TestConsecutiveScansAreStable(t *testing.T) {
	page := somtest.MustParse(`<html><body>
		<a href="/" data-rect="20 10 100 30">Home</a>
		<input name="q" data-rect="300 300 400 36">
		<button data-rect="720 300 80 36">Search</button>
	</body></html>`)

	first, err := som.Annotate(page)
	require.NoError(t, err)
	second, err := som.Annotate(page)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Selector, second[i].Selector)
		assert.Equal(t, first[i].Region, second[i].Region)
		// ids restart at 1 on every scan
		assert.Equal(t, i+1, second[i].ID)
	}
}

func TestRepeatedAnnotationDoesNotAccumulateBadges(t *testing.T) {
	page := somtest.MustParse(`<html><body>
		<button data-rect="10 10 80 30">One</button>
		<button data-rect="10 50 80 30">Two</button>
	</body></html>`)

	_, err := som.Annotate(page)
	require.NoError(t, err)
	second, err := som.Annotate(page)
	require.NoError(t, err)

	// Exactly the second scan's badges remain rendered.
	assert.Len(t, page.Badges, len(second))
	assert.Equal(t, 2, page.RenderCalls)
	assert.Equal(t, 2, page.ClearCalls)
}

func TestCleanupRemovesAllBadges(t *testing.T) {
	page := somtest.MustParse(
		`<html><body><button data-rect="10 10 80 30">Go</button></body></html>`)

	manifest, err := som.Annotate(page)
	require.NoError(t, err)
	require.NotEmpty(t, page.Badges)

	require.NoError(t, som.Cleanup(page))
	assert.Empty(t, page.Badges)

	// Manifest is a value: cleanup does not touch it.
	assert.Len(t, manifest, 1)

	// Safe to call with nothing rendered.
	require.NoError(t, som.Cleanup(page))
}

func TestBadgesAnchoredAtScrollAdjustedOrigin(t *testing.T) {
	page := somtest.MustParse(
		`<html><body><button data-rect="40 60 80 30">Go</button></body></html>`,
		somtest.WithScroll(100, 250))

	manifest, err := som.Annotate(page)
	require.NoError(t, err)
	require.Len(t, manifest, 1)
	require.Len(t, page.Badges, 1)

	badge := page.Badges[0]
	assert.Equal(t, manifest[0].ID, badge.ID)
	assert.Equal(t, 140.0, badge.X)
	assert.Equal(t, 310.0, badge.Y)

	// The manifest box stays viewport-relative.
	assert.Equal(t, 40.0, manifest[0].BoundingBox.X)
	assert.Equal(t, 60.0, manifest[0].BoundingBox.Y)
}

func TestManifestEntryFields(t *testing.T) {
	page := somtest.MustParse(`<html><body>
		<input type="checkbox" name="subscribe" data-rect="10 300 20 20">
		<input type="text" placeholder="Your name" data-rect="10 340 200 30">
		<button data-rect="10 380 80 30">   Save   changes  </button>
	</body></html>`)

	manifest, err := som.Annotate(page)
	require.NoError(t, err)
	require.Len(t, manifest, 3)

	checkbox, name, button := manifest[0], manifest[1], manifest[2]

	assert.Equal(t, "input", checkbox.TagName)
	assert.Equal(t, "checkbox", checkbox.InputType)
	assert.Equal(t, `[name="subscribe"]`, checkbox.Selector)

	assert.Equal(t, "Your name", name.Label, "placeholder fallback when no text")
	assert.Equal(t, "text", name.InputType)

	assert.Equal(t, "Save changes", button.Label, "visible text, whitespace collapsed")
	assert.Equal(t, "", button.InputType)
}

func TestLabelFallbackAndTruncation(t *testing.T) {
	long := "This label is far too long to carry around in a manifest entry verbatim"
	page := somtest.MustParse(`<html><body>
		<input value="prefilled" data-rect="10 10 200 30">
		<button aria-label="Close" data-rect="10 50 20 20"></button>
		<button data-rect="10 90 300 30">` + long + `</button>
	</body></html>`)

	manifest, err := som.Annotate(page)
	require.NoError(t, err)
	require.Len(t, manifest, 3)

	assert.Equal(t, "prefilled", manifest[0].Label)
	assert.Equal(t, "Close", manifest[1].Label)
	assert.Len(t, []rune(manifest[2].Label), som.MaxLabelLength)
}
