package navigator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/entrhq/scout/pkg/som"
	"github.com/entrhq/scout/pkg/types"
)

// executeClick resolves a click through the ladder: cached selector, text
// fast path, then vision grounding.
func (n *Navigator) executeClick(ctx context.Context, step *types.ActionStep) error {
	if selector := step.CachedSelector; selector != "" {
		if err := n.tryClickSelector(selector); err == nil {
			n.log.WithField("selector", selector).Debug("clicked via plan selector")
			return nil
		}
		n.log.WithField("selector", selector).Debug("plan selector missed")
	}

	if n.cache != nil {
		if selector, ok := n.cache.Lookup(n.driver.Host(), step.Description); ok {
			if err := n.tryClickSelector(selector); err == nil {
				n.log.WithField("selector", selector).Debug("clicked via cached selector")
				step.CachedSelector = selector
				return nil
			}
			n.log.WithField("selector", selector).Debug("cached selector stale, invalidating")
			n.cache.Invalidate(n.driver.Host(), step.Description)
		}
	}

	if step.Value != "" {
		if err := n.driver.Click("text="+step.Value, fastPathTimeoutMs); err == nil {
			n.log.WithField("text", step.Value).Debug("clicked via text fast path")
			return nil
		}
	}

	return n.clickWithGrounding(ctx, step)
}

// tryClickSelector clicks a selector only when it resolves to exactly one
// element, so a stale or overly broad selector cannot hit the wrong target.
func (n *Navigator) tryClickSelector(selector string) error {
	count, err := n.driver.CountMatches(selector)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", selector, err)
	}
	if count != 1 {
		return fmt.Errorf("selector %q matches %d elements, want 1", selector, count)
	}
	return n.driver.Click(selector, fastPathTimeoutMs)
}

// clickWithGrounding annotates the page, asks the vision model for a badge
// number, and clicks the matching element. Badges that fail are excluded and
// the model is asked again, up to maxGroundingAttempts.
func (n *Navigator) clickWithGrounding(ctx context.Context, step *types.ActionStep) error {
	excluded := make(map[int]bool)

	var lastErr error
	for attempt := 1; attempt <= maxGroundingAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, err := n.groundStep(ctx, step, excluded, attempt)
		if err != nil {
			return err
		}

		if err := n.clickManifestEntry(entry); err != nil {
			n.log.WithError(err).WithFields(logrus.Fields{
				"badge":   entry.ID,
				"attempt": attempt,
			}).Warn("grounded click failed, excluding badge")
			excluded[entry.ID] = true
			lastErr = err
			continue
		}

		step.CachedSelector = entry.Selector
		if n.cache != nil {
			n.cache.Put(n.driver.Host(), step.Description, entry.Selector)
		}
		n.log.WithFields(logrus.Fields{
			"badge":    entry.ID,
			"selector": entry.Selector,
		}).Info("clicked via vision grounding")
		return nil
	}

	return fmt.Errorf("vision grounding exhausted after %d attempts: %w", maxGroundingAttempts, lastErr)
}

// groundStep captures an annotated screenshot and asks the model which badge
// matches the step, returning the manifest entry for its answer.
func (n *Navigator) groundStep(ctx context.Context, step *types.ActionStep, excluded map[int]bool, attempt int) (*som.AnnotatedElement, error) {
	manifest, err := n.driver.Annotate()
	if err != nil {
		return nil, fmt.Errorf("annotating page: %w", err)
	}
	if len(manifest) == 0 {
		return nil, fmt.Errorf("no interactive elements on page")
	}

	var path string
	if n.screenshotDir != "" {
		path = filepath.Join(n.screenshotDir,
			fmt.Sprintf("%s_step_%d_som_%d.png", n.runID, step.ID, attempt))
	}
	shot, err := n.driver.Screenshot(n.screenshotMaxWidth, path)
	if err != nil {
		return nil, fmt.Errorf("capturing annotated screenshot: %w", err)
	}
	if err := n.driver.ClearAnnotations(); err != nil {
		n.log.WithError(err).Warn("clearing annotations")
	}

	messages := []*types.Message{
		types.NewSystemMessage(groundingSystemPrompt),
		types.NewVisionMessage(groundingRequest(step, manifest, excluded), shot),
	}
	reply, err := n.provider.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("querying vision model: %w", err)
	}

	badge, reasoning, err := parseGroundingReply(reply.Content)
	if err != nil {
		return nil, err
	}
	n.log.WithFields(logrus.Fields{
		"badge":     badge,
		"reasoning": reasoning,
	}).Debug("grounding answer")

	for i := range manifest {
		if manifest[i].ID == badge {
			return &manifest[i], nil
		}
	}
	return nil, fmt.Errorf("model picked badge %d, not in manifest of %d", badge, len(manifest))
}

// clickManifestEntry clicks through the entry's selector when it uniquely
// resolves, falling back to the badge's recorded coordinates otherwise.
func (n *Navigator) clickManifestEntry(entry *som.AnnotatedElement) error {
	count, err := n.driver.CountMatches(entry.Selector)
	if err == nil && count == 1 {
		return n.driver.Click(entry.Selector, fastPathTimeoutMs)
	}

	box := entry.BoundingBox
	return n.driver.ClickAt(box.X+box.Width/2, box.Y+box.Height/2)
}
