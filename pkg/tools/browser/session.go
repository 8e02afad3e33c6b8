package browser

import (
	"fmt"
	"net/url"
	"time"

	"github.com/playwright-community/playwright-go"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(rawURL string, opts NavigateOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageGotoOptions{}
	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}
	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.Goto(rawURL, playwrightOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// Host returns the host of the current page URL, or "" when unparseable.
func (s *Session) Host() string {
	u, err := url.Parse(s.Page.URL())
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Click clicks an element matching the selector.
func (s *Session) Click(opts ClickOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageClickOptions{}
	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Click(opts.Selector, playwrightOpts); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	// Click may have caused navigation.
	s.CurrentURL = s.Page.URL()
	return nil
}

// ClickAt clicks at viewport coordinates, bypassing selector resolution.
// Used as the fallback when a manifest selector no longer resolves.
func (s *Session) ClickAt(x, y float64) error {
	s.UpdateLastUsed()

	if err := s.Page.Mouse().Click(x, y); err != nil {
		return fmt.Errorf("coordinate click failed: %w", err)
	}
	s.CurrentURL = s.Page.URL()
	return nil
}

// Fill fills an input element with the specified value.
func (s *Session) Fill(opts FillOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageFillOptions{}
	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Fill(opts.Selector, opts.Value, playwrightOpts); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

// Press sends a single key press ("Enter", "Tab", "Escape") to the page.
func (s *Session) Press(key string) error {
	s.UpdateLastUsed()

	if err := s.Page.Keyboard().Press(key); err != nil {
		return fmt.Errorf("key press failed: %w", err)
	}
	return nil
}

// TypeText types into whatever element currently has focus.
func (s *Session) TypeText(text string) error {
	s.UpdateLastUsed()

	if err := s.Page.Keyboard().Type(text); err != nil {
		return fmt.Errorf("typing failed: %w", err)
	}
	return nil
}

// Scroll scrolls the page vertically by the given pixel delta (negative
// scrolls up).
func (s *Session) Scroll(deltaY int) error {
	s.UpdateLastUsed()

	if _, err := s.Page.Evaluate(fmt.Sprintf("() => window.scrollBy(0, %d)", deltaY)); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	return nil
}

// Wait waits for an element or condition.
func (s *Session) Wait(opts WaitOptions) error {
	s.UpdateLastUsed()

	if opts.Selector == "" {
		return fmt.Errorf("selector is required for wait")
	}

	playwrightOpts := playwright.PageWaitForSelectorOptions{}
	if opts.State != "" {
		state := playwright.WaitForSelectorState(opts.State)
		playwrightOpts.State = &state
	}
	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.WaitForSelector(opts.Selector, playwrightOpts); err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

// GoBack navigates back in the session history.
func (s *Session) GoBack() error {
	s.UpdateLastUsed()

	if _, err := s.Page.GoBack(); err != nil {
		return fmt.Errorf("going back failed: %w", err)
	}
	s.CurrentURL = s.Page.URL()
	return nil
}

// CountMatches returns how many elements the selector currently resolves to.
// Consumers of annotation manifests use this to verify a selector is unique
// before acting on it.
func (s *Session) CountMatches(selector string) (int, error) {
	s.UpdateLastUsed()

	elements, err := s.Page.QuerySelectorAll(selector)
	if err != nil {
		return 0, fmt.Errorf("selector query failed: %w", err)
	}
	return len(elements), nil
}
