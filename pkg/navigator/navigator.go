// Package navigator executes recorded browser plans step by step, resolving
// each action against the live page.
//
// # Resolution ladder
//
// Click steps resolve through a ladder of strategies, cheapest first:
//
//  1. Cached selector, from the plan itself or the persistent selector cache.
//  2. Text fast path, clicking by the step's visible text.
//  3. Set-of-Mark vision grounding: annotate the page with numbered badges,
//     screenshot it, and ask a vision model which badge to click.
//
// Selectors that succeed through grounding are written back to the cache so
// subsequent runs take the fast path.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/entrhq/scout/pkg/cache"
	"github.com/entrhq/scout/pkg/llm"
	"github.com/entrhq/scout/pkg/types"
)

// ErrBadgeNotFound is returned when the vision model reports that no badge
// matches the step description.
var ErrBadgeNotFound = errors.New("no badge matches the description")

const (
	// fastPathTimeoutMs bounds cheap resolution attempts so a miss falls
	// through to the next rung quickly.
	fastPathTimeoutMs = 3000.0

	// maxGroundingAttempts bounds how many badges are tried per click step.
	maxGroundingAttempts = 3

	// scrollStepPx is how far a single SCROLL step moves the page.
	scrollStepPx = 500

	// waitTimeoutMs bounds a WAIT step that targets visible text.
	waitTimeoutMs = 10000.0
)

// Navigator executes an ExecutionPlan against a browser session.
type Navigator struct {
	driver   Driver
	provider llm.Provider
	cache    *cache.Store
	callback Callback
	log      *logrus.Entry

	screenshotDir      string
	screenshotMaxWidth int
	settleDelay        time.Duration
	runID              string
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithCache attaches a persistent selector cache.
func WithCache(store *cache.Store) Option {
	return func(n *Navigator) { n.cache = store }
}

// WithCallback attaches a step lifecycle listener.
func WithCallback(cb Callback) Option {
	return func(n *Navigator) { n.callback = cb }
}

// WithLogger overrides the default logger.
func WithLogger(log *logrus.Logger) Option {
	return func(n *Navigator) { n.log = log.WithField("component", "navigator") }
}

// WithScreenshotDir sets where per-step screenshots are written. Empty keeps
// screenshots in memory only.
func WithScreenshotDir(dir string) Option {
	return func(n *Navigator) { n.screenshotDir = dir }
}

// WithScreenshotMaxWidth caps the width of captured screenshots.
func WithScreenshotMaxWidth(px int) Option {
	return func(n *Navigator) { n.screenshotMaxWidth = px }
}

// WithSettleDelay sets the pause after each step, giving the page time to
// react before the next action.
func WithSettleDelay(d time.Duration) Option {
	return func(n *Navigator) { n.settleDelay = d }
}

// New builds a Navigator over a driver and a vision-capable provider.
func New(driver Driver, provider llm.Provider, opts ...Option) *Navigator {
	n := &Navigator{
		driver:      driver,
		provider:    provider,
		callback:    NopCallback{},
		log:         logrus.StandardLogger().WithField("component", "navigator"),
		settleDelay: 500 * time.Millisecond,
		runID:       uuid.NewString(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ExecutePlan runs every step of the plan in order, stopping at the first
// failure. The selector cache, when attached, is saved afterwards regardless
// of outcome so selectors learned before a failure are kept.
func (n *Navigator) ExecutePlan(ctx context.Context, plan *types.ExecutionPlan) error {
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	n.log.WithFields(logrus.Fields{
		"steps": len(plan.Steps),
		"run":   n.runID,
	}).Info("executing plan")

	var execErr error
	for i := range plan.Steps {
		step := &plan.Steps[i]
		if err := ctx.Err(); err != nil {
			execErr = err
			break
		}
		if err := n.ExecuteStep(ctx, step); err != nil {
			execErr = fmt.Errorf("step %d (%s): %w", step.ID, step.Action, err)
			break
		}
		if n.settleDelay > 0 {
			select {
			case <-ctx.Done():
				execErr = ctx.Err()
			case <-time.After(n.settleDelay):
			}
			if execErr != nil {
				break
			}
		}
	}

	if n.cache != nil {
		if err := n.cache.Save(); err != nil {
			n.log.WithError(err).Warn("saving selector cache")
		}
	}
	return execErr
}

// ExecuteStep runs a single step and reports its outcome to the callback.
func (n *Navigator) ExecuteStep(ctx context.Context, step *types.ActionStep) error {
	n.callback.OnStepStart(step)
	n.log.WithFields(logrus.Fields{
		"step":   step.ID,
		"action": step.Action,
	}).Info(step.Description)

	var err error
	switch step.Action {
	case types.ActionNavigate:
		err = n.executeNavigate(step)
	case types.ActionClick:
		err = n.executeClick(ctx, step)
	case types.ActionTypeText:
		err = n.executeType(step)
	case types.ActionScroll:
		err = n.executeScroll(step)
	case types.ActionWait:
		err = n.executeWait(ctx, step)
	default:
		err = fmt.Errorf("unknown action type %q", step.Action)
	}

	if err != nil {
		n.callback.OnStepError(step, err)
		return err
	}

	shot := n.captureStepScreenshot(step)
	n.callback.OnStepComplete(step, shot)
	return nil
}

func (n *Navigator) executeNavigate(step *types.ActionStep) error {
	url := step.Value
	if url == "" {
		return fmt.Errorf("navigate step has no URL")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return n.driver.Navigate(url)
}

// executeType fills a recognizable field when the description names one,
// otherwise types into whatever currently has focus.
func (n *Navigator) executeType(step *types.ActionStep) error {
	if step.Value == "" {
		return fmt.Errorf("type step has no value")
	}

	if selector := fieldSelectorFor(step.Description); selector != "" {
		if err := n.driver.Fill(selector, step.Value, fastPathTimeoutMs); err == nil {
			return nil
		}
		n.log.WithField("selector", selector).Debug("field fill missed, typing into focus")
	}
	return n.driver.TypeText(step.Value)
}

// fieldSelectorFor maps common field descriptions to input selectors.
func fieldSelectorFor(description string) string {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "email"):
		return `input[type="email"]`
	case strings.Contains(desc, "password"):
		return `input[type="password"]`
	case strings.Contains(desc, "search"):
		return `input[type="search"]`
	}
	return ""
}

func (n *Navigator) executeScroll(step *types.ActionStep) error {
	delta := scrollStepPx
	if strings.EqualFold(step.Value, "up") {
		delta = -scrollStepPx
	}
	return n.driver.Scroll(delta)
}

// executeWait waits for the step's text to appear, or just pauses when the
// step names nothing to wait for.
func (n *Navigator) executeWait(ctx context.Context, step *types.ActionStep) error {
	if step.Value != "" {
		return n.driver.WaitForText(step.Value, waitTimeoutMs)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
		return nil
	}
}

// captureStepScreenshot records the page after a step. Failures are logged,
// not fatal, since the action itself already succeeded.
func (n *Navigator) captureStepScreenshot(step *types.ActionStep) []byte {
	var path string
	if n.screenshotDir != "" {
		path = filepath.Join(n.screenshotDir, fmt.Sprintf("%s_step_%d.png", n.runID, step.ID))
	}
	shot, err := n.driver.Screenshot(n.screenshotMaxWidth, path)
	if err != nil {
		n.log.WithError(err).WithField("step", step.ID).Warn("capturing step screenshot")
		return nil
	}
	return shot
}
