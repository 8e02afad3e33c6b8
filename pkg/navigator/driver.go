package navigator

import (
	"github.com/entrhq/scout/pkg/som"
	"github.com/entrhq/scout/pkg/tools/browser"
)

// Driver is the narrow view of a browser session the navigator needs. It
// exists so plan execution logic can be exercised against a scripted fake
// without a running browser.
type Driver interface {
	Navigate(url string) error
	Click(selector string, timeoutMs float64) error
	ClickAt(x, y float64) error
	Fill(selector, value string, timeoutMs float64) error
	TypeText(text string) error
	Scroll(deltaY int) error
	WaitForText(text string, timeoutMs float64) error
	GoBack() error

	// Host returns the host of the current page.
	Host() string

	// CountMatches reports how many elements a selector resolves to.
	CountMatches(selector string) (int, error)

	// Annotate runs Set-of-Mark annotation and returns the manifest.
	Annotate() ([]som.AnnotatedElement, error)

	// ClearAnnotations removes rendered badges.
	ClearAnnotations() error

	// Screenshot captures the viewport as PNG, downscaled to maxWidth when
	// positive, optionally written to path.
	Screenshot(maxWidth int, path string) ([]byte, error)
}

// sessionDriver adapts a browser.Session to the Driver interface.
type sessionDriver struct {
	session *browser.Session
}

// NewSessionDriver wraps a browser session for plan execution.
func NewSessionDriver(session *browser.Session) Driver {
	return &sessionDriver{session: session}
}

func (d *sessionDriver) Navigate(url string) error {
	return d.session.Navigate(url, browser.NavigateOptions{WaitUntil: "domcontentloaded"})
}

func (d *sessionDriver) Click(selector string, timeoutMs float64) error {
	return d.session.Click(browser.ClickOptions{Selector: selector, Timeout: timeoutMs})
}

func (d *sessionDriver) ClickAt(x, y float64) error {
	return d.session.ClickAt(x, y)
}

func (d *sessionDriver) Fill(selector, value string, timeoutMs float64) error {
	return d.session.Fill(browser.FillOptions{Selector: selector, Value: value, Timeout: timeoutMs})
}

func (d *sessionDriver) TypeText(text string) error {
	return d.session.TypeText(text)
}

func (d *sessionDriver) Scroll(deltaY int) error {
	return d.session.Scroll(deltaY)
}

func (d *sessionDriver) WaitForText(text string, timeoutMs float64) error {
	return d.session.Wait(browser.WaitOptions{Selector: "text=" + text, Timeout: timeoutMs})
}

func (d *sessionDriver) GoBack() error {
	return d.session.GoBack()
}

func (d *sessionDriver) Host() string {
	return d.session.Host()
}

func (d *sessionDriver) CountMatches(selector string) (int, error) {
	return d.session.CountMatches(selector)
}

func (d *sessionDriver) Annotate() ([]som.AnnotatedElement, error) {
	return d.session.Annotate()
}

func (d *sessionDriver) ClearAnnotations() error {
	return d.session.ClearAnnotations()
}

func (d *sessionDriver) Screenshot(maxWidth int, path string) ([]byte, error) {
	return d.session.Screenshot(browser.ScreenshotOptions{MaxWidth: maxWidth, Path: path})
}
