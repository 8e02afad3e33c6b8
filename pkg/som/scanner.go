package som

import "strconv"

// interactiveRoles are the explicit ARIA roles that mark an element as an
// interaction target regardless of its tag.
var interactiveRoles = map[string]bool{
	"button":   true,
	"link":     true,
	"menuitem": true,
	"checkbox": true,
	"switch":   true,
}

// formTags are the native form-control tags that are always candidates.
var formTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
}

// scanCandidates enumerates every interactive candidate under root in
// document order (pre-order traversal). Identical document state yields an
// identical candidate sequence.
func scanCandidates(root Element) []Element {
	var out []Element
	var walk func(el Element)
	walk = func(el Element) {
		if isCandidate(el) {
			out = append(out, el)
		}
		for _, child := range el.Children() {
			walk(child)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// isCandidate reports whether el matches any of the fixed interaction
// predicates: anchors with a destination, form controls, explicit interactive
// ARIA roles, native click handler attributes, non-negative explicit tab
// indexes, and labels bound to a control.
func isCandidate(el Element) bool {
	tag := el.TagName()

	if tag == "a" && el.HasAttr("href") {
		return true
	}
	if formTags[tag] {
		return true
	}
	if interactiveRoles[el.Attr("role")] {
		return true
	}
	if el.HasAttr("onclick") {
		return true
	}
	if ti := el.Attr("tabindex"); ti != "" {
		if n, err := strconv.Atoi(ti); err == nil && n >= 0 {
			return true
		}
	}
	if tag == "label" && el.HasAttr("for") {
		return true
	}
	return false
}
