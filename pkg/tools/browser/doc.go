// Package browser provides web browser automation through Playwright.
//
// The package is built around two core concepts:
//
//  1. Session: encapsulates a Playwright browser instance with its context
//     and page, and exposes the page operations plan execution needs
//     (navigate, click, fill, scroll, screenshot).
//  2. SessionManager: registry owning the Playwright runtime and all active
//     sessions, with resource limits and cleanup on shutdown.
//
// # Set-of-Mark annotation
//
// Session.Annotate bridges a live page to the som annotation pipeline. It
// captures a one-shot snapshot of the rendered element tree (tags,
// attributes, geometry, computed style) in a single script evaluation, runs
// the som pipeline against that snapshot, and paints the numbered badges in
// a second evaluation. Snapshot and badges come from the same pass, so the
// manifest matches a screenshot taken immediately afterwards.
//
// # Session Lifecycle
//
//  1. Create: manager.StartSession creates a new named session
//  2. Use: navigation, interaction, and annotation operate on the session
//  3. Close: manager.CloseSession releases browser resources
//  4. Shutdown: manager.CloseAll tears down every session and the runtime
package browser
