package som_test

import (
	"fmt"
	"testing"

	"github.com/entrhq/scout/pkg/som"
	"github.com/entrhq/scout/pkg/som/somtest"
)

// fixture renders one element with a comfortably visible box so predicate
// tests exercise only the scanner, not the filter.
func fixture(inner string) *somtest.Page {
	return somtest.MustParse(fmt.Sprintf(`<html><body>%s</body></html>`, inner))
}

func TestScannerPredicates(t *testing.T) {
	const rect = `data-rect="100 100 80 30"`

	tests := []struct {
		name    string
		markup  string
		wantTag string
		want    bool
	}{
		{"anchor with href", `<a href="/home" ` + rect + `>Home</a>`, "a", true},
		{"anchor without href", `<a ` + rect + `>nowhere</a>`, "a", false},
		{"button", `<button ` + rect + `>Go</button>`, "button", true},
		{"input", `<input ` + rect + `>`, "input", true},
		{"select", `<select ` + rect + `></select>`, "select", true},
		{"textarea", `<textarea ` + rect + `></textarea>`, "textarea", true},
		{"role button", `<div role="button" ` + rect + `>Go</div>`, "div", true},
		{"role link", `<div role="link" ` + rect + `>Go</div>`, "div", true},
		{"role menuitem", `<div role="menuitem" ` + rect + `>Go</div>`, "div", true},
		{"role checkbox", `<div role="checkbox" ` + rect + `></div>`, "div", true},
		{"role switch", `<div role="switch" ` + rect + `></div>`, "div", true},
		{"role presentation", `<div role="presentation" ` + rect + `></div>`, "div", false},
		{"onclick handler", `<div onclick="go()" ` + rect + `>Go</div>`, "div", true},
		{"zero tabindex", `<div tabindex="0" ` + rect + `></div>`, "div", true},
		{"positive tabindex", `<div tabindex="3" ` + rect + `></div>`, "div", true},
		{"negative tabindex", `<div tabindex="-1" ` + rect + `></div>`, "div", false},
		{"bound label", `<label for="email" ` + rect + `>Email</label>`, "label", true},
		{"unbound label", `<label ` + rect + `>Email</label>`, "label", false},
		{"plain div", `<div ` + rect + `>text</div>`, "div", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifest, err := som.Annotate(fixture(tt.markup))
			if err != nil {
				t.Fatalf("Annotate() error: %v", err)
			}

			found := false
			for _, entry := range manifest {
				if entry.TagName == tt.wantTag {
					found = true
				}
			}
			if found != tt.want {
				t.Errorf("candidate %q: annotated = %v, want %v", tt.markup, found, tt.want)
			}
		})
	}
}

func TestScannerDocumentOrder(t *testing.T) {
	page := fixture(`
		<header data-rect="0 0 1280 60">
			<a href="/" id="logo" data-rect="10 10 60 40">Logo</a>
		</header>
		<main>
			<input id="query" data-rect="300 200 400 36">
			<button id="go" data-rect="720 200 80 36">Go</button>
		</main>
		<footer>
			<a href="/about" id="about" data-rect="10 680 80 30">About</a>
		</footer>`)

	manifest, err := som.Annotate(page)
	if err != nil {
		t.Fatalf("Annotate() error: %v", err)
	}

	wantSelectors := []string{"#logo", "#query", "#go", "#about"}
	if len(manifest) != len(wantSelectors) {
		t.Fatalf("got %d entries, want %d", len(manifest), len(wantSelectors))
	}
	for i, entry := range manifest {
		if entry.Selector != wantSelectors[i] {
			t.Errorf("entry %d selector = %q, want %q", i, entry.Selector, wantSelectors[i])
		}
		if entry.ID != i+1 {
			t.Errorf("entry %d id = %d, want %d", i, entry.ID, i+1)
		}
	}
}
