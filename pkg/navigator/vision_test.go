package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/scout/pkg/som"
	"github.com/entrhq/scout/pkg/types"
)

func TestParseGroundingReply(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		badge     int
		reasoning string
	}{
		{
			name:      "bare JSON",
			content:   `{"reasoning": "the login button", "badge_number": 4}`,
			badge:     4,
			reasoning: "the login button",
		},
		{
			name:    "code fence",
			content: "```json\n{\"reasoning\": \"top right\", \"badge_number\": 12}\n```",
			badge:   12,
		},
		{
			name:    "prose around JSON",
			content: `Sure, here is my answer: {"reasoning": "only match", "badge_number": 1} hope that helps`,
			badge:   1,
		},
		{
			name:    "number as string",
			content: `{"reasoning": "r", "badge_number": "7"}`,
			badge:   7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			badge, reasoning, err := parseGroundingReply(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.badge, badge)
			if tt.reasoning != "" {
				assert.Equal(t, tt.reasoning, reasoning)
			}
		})
	}
}

func TestParseGroundingReplyNotFound(t *testing.T) {
	_, reasoning, err := parseGroundingReply(`{"reasoning": "no such element", "badge_number": "NOT_FOUND"}`)
	assert.ErrorIs(t, err, ErrBadgeNotFound)
	assert.Equal(t, "no such element", reasoning)
}

func TestParseGroundingReplyRejectsGarbage(t *testing.T) {
	for _, content := range []string{
		"badge 3",
		`{"reasoning": "no number"}`,
		`{"badge_number": 0}`,
		`{"badge_number": -2}`,
		"{not json}",
	} {
		_, _, err := parseGroundingReply(content)
		assert.Error(t, err, "content: %s", content)
	}
}

func TestGroundingRequest(t *testing.T) {
	step := &types.ActionStep{
		Action:         types.ActionClick,
		Description:    "Click the submit button",
		SemanticIntent: "submit the signup form",
		Alternatives:   []string{"press the Sign up button", "use the header CTA"},
	}
	manifest := []som.AnnotatedElement{
		{ID: 1, TagName: "a", Label: "Home", Region: som.RegionTopLeftHeader},
		{ID: 2, TagName: "button", Label: "Submit", Region: som.RegionMainContent},
	}

	prompt := groundingRequest(step, manifest, map[int]bool{1: true})

	assert.Contains(t, prompt, "Click the submit button")
	assert.Contains(t, prompt, "submit the signup form")
	assert.Contains(t, prompt, `[2] button "Submit" in main-content`)
	assert.Contains(t, prompt, "Do not pick badge(s) 1")
	assert.Contains(t, prompt, "press the Sign up button")
	assert.Contains(t, prompt, "use the header CTA")
}
