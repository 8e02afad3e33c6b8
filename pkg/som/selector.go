package som

import (
	"fmt"
	"strings"
)

// Locator is a tagged selector variant. The synthesizer evaluates the
// variants in a fixed priority order (identifier, name, aria-label,
// structural path) so the decision order is auditable and each rendering is
// independently testable.
type Locator interface {
	// String renders the locator as a CSS selector expression.
	String() string
}

// ByIdentifier locates an element by its id attribute.
type ByIdentifier struct {
	ID string
}

func (l ByIdentifier) String() string { return "#" + l.ID }

// ByName locates an element by attribute equality on name.
type ByName struct {
	Name string
}

func (l ByName) String() string { return fmt.Sprintf("[name=%q]", l.Name) }

// ByAriaLabel locates an element by attribute equality on aria-label.
type ByAriaLabel struct {
	Label string
}

func (l ByAriaLabel) String() string { return fmt.Sprintf("[aria-label=%q]", l.Label) }

// ByStructuralPath locates an element by its ancestor chain, one fragment per
// level ordered root to leaf, joined with the descendant combinator.
type ByStructuralPath struct {
	Segments []string
}

func (l ByStructuralPath) String() string { return strings.Join(l.Segments, " ") }

// SynthesizeLocator derives the best-effort locator for el. The result is
// deterministic for a fixed document snapshot but not guaranteed globally
// unique: structurally identical subtrees without ids can collide, so
// consumers must verify resolution before acting.
func SynthesizeLocator(el Element) Locator {
	if id := el.Attr("id"); id != "" {
		return ByIdentifier{ID: id}
	}
	if name := el.Attr("name"); name != "" {
		return ByName{Name: name}
	}
	if label := el.Attr("aria-label"); label != "" {
		return ByAriaLabel{Label: label}
	}
	return ByStructuralPath{Segments: structuralPath(el)}
}

// structuralPath walks from el up to the document root collecting one
// fragment per level. An ancestor with an id contributes "#id" and ends the
// walk: everything above it is redundant.
func structuralPath(el Element) []string {
	var segments []string
	for cur := el; cur != nil; cur = cur.Parent() {
		if cur != el {
			if id := cur.Attr("id"); id != "" {
				segments = append(segments, "#"+id)
				break
			}
		}
		segments = append(segments, pathSegment(cur))
	}

	// Collected leaf to root; the rendered path reads root to leaf.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments
}

// pathSegment renders one level of a structural path: the lower-cased tag,
// dot-joined class names, and an :nth-of-type qualifier whenever more than
// one same-tag sibling exists at this level.
func pathSegment(el Element) string {
	var b strings.Builder
	b.WriteString(el.TagName())

	for _, class := range strings.Fields(el.Attr("class")) {
		b.WriteByte('.')
		b.WriteString(class)
	}

	if parent := el.Parent(); parent != nil {
		position, total := 0, 0
		for _, sib := range parent.Children() {
			if sib.TagName() != el.TagName() {
				continue
			}
			total++
			if sib == el {
				position = total
			}
		}
		if total > 1 {
			fmt.Fprintf(&b, ":nth-of-type(%d)", position)
		}
	}

	return b.String()
}
