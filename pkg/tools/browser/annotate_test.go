package browser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/scout/pkg/som"
)

// sampleSnapshot mirrors what snapshotJS produces for a small page: a header
// link, a visible button, and a hidden button.
const sampleSnapshot = `{
	"viewport": {"width": 1280, "height": 720},
	"scroll": {"x": 0, "y": 150},
	"root": {
		"tag": "html", "attrs": {}, "text": "Home Save",
		"rect": {"x": 0, "y": 0, "width": 1280, "height": 2000},
		"style": {"display": "block", "visibility": "visible", "opacity": 1},
		"children": [{
			"tag": "body", "attrs": {}, "text": "Home Save",
			"rect": {"x": 0, "y": 0, "width": 1280, "height": 2000},
			"style": {"display": "block", "visibility": "visible", "opacity": 1},
			"children": [
				{
					"tag": "a", "attrs": {"href": "/", "id": "home"}, "text": "Home",
					"rect": {"x": 20, "y": 10, "width": 60, "height": 30},
					"style": {"display": "inline", "visibility": "visible", "opacity": 1},
					"children": []
				},
				{
					"tag": "button", "attrs": {"type": "submit", "name": "save"}, "text": "Save",
					"rect": {"x": 20, "y": 400, "width": 80, "height": 36},
					"style": {"display": "block", "visibility": "visible", "opacity": 1},
					"children": []
				},
				{
					"tag": "button", "attrs": {}, "text": "Ghost",
					"rect": {"x": 20, "y": 450, "width": 80, "height": 36},
					"style": {"display": "none", "visibility": "visible", "opacity": 1},
					"children": []
				}
			]
		}]
	}
}`

func decodeSample(t *testing.T) *snapshotPayload {
	t.Helper()
	var snap snapshotPayload
	require.NoError(t, json.Unmarshal([]byte(sampleSnapshot), &snap))
	require.NotNil(t, snap.Root)
	linkParents(snap.Root)
	return &snap
}

func TestSnapshotDecoding(t *testing.T) {
	snap := decodeSample(t)

	root := snap.Root
	assert.Equal(t, "html", root.TagName())
	assert.Nil(t, root.Parent())

	body := root.Children()[0]
	require.Len(t, body.Children(), 3)

	link := body.Children()[0]
	assert.Equal(t, "a", link.TagName())
	assert.Equal(t, "home", link.Attr("id"))
	assert.True(t, link.HasAttr("href"))
	assert.False(t, link.HasAttr("onclick"))
	assert.Equal(t, "Home", link.Text())
	assert.Equal(t, som.BoundingBox{X: 20, Y: 10, Width: 60, Height: 30}, link.BoundingBox())
	assert.Equal(t, root, body.Parent())

	hidden := body.Children()[2]
	assert.Equal(t, "none", hidden.Style().Display)
}

// snapshotPage drives the som pipeline over a decoded snapshot while
// recording badge operations, standing in for the live evaluations.
type snapshotPage struct {
	snap   *snapshotPayload
	badges []som.Badge
}

func (p *snapshotPage) Root() som.Element { return p.snap.Root }
func (p *snapshotPage) Viewport() som.Viewport {
	return som.Viewport{Width: p.snap.Viewport.Width, Height: p.snap.Viewport.Height}
}
func (p *snapshotPage) ScrollOffset() (x, y float64) { return p.snap.Scroll.X, p.snap.Scroll.Y }
func (p *snapshotPage) RenderBadges(badges []som.Badge) error {
	p.badges = append(p.badges, badges...)
	return nil
}
func (p *snapshotPage) ClearBadges() error {
	p.badges = nil
	return nil
}

func TestAnnotateOverSnapshot(t *testing.T) {
	page := &snapshotPage{snap: decodeSample(t)}

	manifest, err := som.Annotate(page)
	require.NoError(t, err)
	require.Len(t, manifest, 2, "hidden button is omitted")

	assert.Equal(t, "#home", manifest[0].Selector)
	assert.Equal(t, `[name="save"]`, manifest[1].Selector)
	assert.Equal(t, "submit", manifest[1].InputType)
	assert.Equal(t, 1, manifest[0].ID)
	assert.Equal(t, 2, manifest[1].ID)

	// Badges are anchored scroll-adjusted.
	require.Len(t, page.badges, 2)
	assert.Equal(t, 160.0, page.badges[0].Y)
}

func TestRenderBadgesScriptHonorsVisualContract(t *testing.T) {
	assert.Contains(t, renderBadgesJS, som.BadgeMarkerAttr)
	assert.Contains(t, renderBadgesJS, som.BadgeBackground)
	assert.Contains(t, renderBadgesJS, "pointer-events: none")
	assert.Contains(t, clearBadgesJS, som.BadgeMarkerAttr)
}
