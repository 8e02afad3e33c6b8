package navigator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/entrhq/scout/pkg/som"
	"github.com/entrhq/scout/pkg/types"
)

// groundingSystemPrompt frames the vision model as a badge picker. Answers
// come back as JSON so extraction stays mechanical.
const groundingSystemPrompt = `You are a visual grounding assistant for browser automation.
You are shown a screenshot of a web page where interactive elements are marked
with numbered pink badges. Given a description of the element to click, answer
with the badge number of the best match.

Respond with JSON only, in this exact shape:
{"reasoning": "<one short sentence>", "badge_number": <number>}

If no badge matches the description, respond with:
{"reasoning": "<one short sentence>", "badge_number": "NOT_FOUND"}`

// groundingRequest builds the vision turn: the step description, a compact
// digest of the manifest, and any badges already ruled out.
func groundingRequest(step *types.ActionStep, manifest []som.AnnotatedElement, excluded map[int]bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Click target: %s\n", step.Description)
	if step.SemanticIntent != "" {
		fmt.Fprintf(&b, "Intent: %s\n", step.SemanticIntent)
	}
	if len(step.Alternatives) > 0 {
		b.WriteString("Acceptable alternatives when the primary target is absent:\n")
		for _, alt := range step.Alternatives {
			fmt.Fprintf(&b, "  - %s\n", alt)
		}
	}

	b.WriteString("\nMarked elements:\n")
	for _, entry := range manifest {
		label := entry.Label
		if label == "" {
			label = "(no label)"
		}
		fmt.Fprintf(&b, "  [%d] %s %q in %s\n", entry.ID, entry.TagName, label, entry.Region)
	}

	if len(excluded) > 0 {
		ids := make([]int, 0, len(excluded))
		for id := range excluded {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = fmt.Sprintf("%d", id)
		}
		fmt.Fprintf(&b, "\nDo not pick badge(s) %s, they were already tried and did not work.\n",
			strings.Join(parts, ", "))
	}

	return b.String()
}

// parseGroundingReply extracts the badge number from a model reply. Models
// wrap JSON in prose or code fences often enough that this trims to the
// outermost object before parsing.
func parseGroundingReply(content string) (badge int, reasoning string, err error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return 0, "", fmt.Errorf("no JSON object in grounding reply: %q", content)
	}

	doc := content[start : end+1]
	if !gjson.Valid(doc) {
		return 0, "", fmt.Errorf("malformed JSON in grounding reply: %q", doc)
	}

	reasoning = gjson.Get(doc, "reasoning").String()

	number := gjson.Get(doc, "badge_number")
	if !number.Exists() {
		return 0, reasoning, fmt.Errorf("grounding reply has no badge_number: %q", doc)
	}
	if number.Type == gjson.String && strings.EqualFold(number.String(), "NOT_FOUND") {
		return 0, reasoning, ErrBadgeNotFound
	}

	badge = int(number.Int())
	if badge <= 0 {
		return 0, reasoning, fmt.Errorf("grounding reply has invalid badge_number %q", number.String())
	}
	return badge, reasoning, nil
}
