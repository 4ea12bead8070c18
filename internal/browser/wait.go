package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pmtest/internal/locator"
)

// PollInterval is how often WaitUntil re-evaluates its condition.
var PollInterval = 250 * time.Millisecond

// Condition is a named predicate over the page.
type Condition struct {
	Name  string
	Check func(ctx context.Context, s Session) (bool, error)
}

// WaitUntil polls cond until it holds or timeout elapses. Lookup misses count as
// "not yet"; any other error ends the wait immediately.
func WaitUntil(ctx context.Context, s Session, cond Condition, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		ok, err := cond.Check(waitCtx, s)
		if ok {
			return nil
		}
		if err != nil && !errors.Is(err, ErrNotFound) && waitCtx.Err() == nil {
			return fmt.Errorf("waiting for %s: %w", cond.Name, err)
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &TimeoutError{Condition: cond.Name, Timeout: timeout}
		case <-ticker.C:
		}
	}
}

// PresenceOf holds once the entry matches at least one element.
func PresenceOf(entry locator.Entry) Condition {
	return Condition{
		Name: "presence of " + entry.String(),
		Check: func(ctx context.Context, s Session) (bool, error) {
			_, err := s.FindElement(ctx, entry)
			if err != nil {
				return false, err
			}
			return true, nil
		},
	}
}

// Clickable holds once the entry matches an element that is visible and enabled.
func Clickable(entry locator.Entry) Condition {
	return Condition{
		Name: entry.String() + " to be clickable",
		Check: func(ctx context.Context, s Session) (bool, error) {
			el, err := s.FindElement(ctx, entry)
			if err != nil {
				return false, err
			}
			visible, err := el.Visible(ctx)
			if err != nil || !visible {
				return false, err
			}
			return el.Enabled(ctx)
		},
	}
}

// URLContains holds once the current URL contains fragment.
func URLContains(fragment string) Condition {
	return Condition{
		Name: fmt.Sprintf("url to contain %q", fragment),
		Check: func(ctx context.Context, s Session) (bool, error) {
			url, err := s.CurrentURL(ctx)
			if err != nil {
				return false, err
			}
			return strings.Contains(url, fragment), nil
		},
	}
}
