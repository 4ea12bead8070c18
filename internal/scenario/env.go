package scenario

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pmtest/internal/browser"
	"pmtest/internal/config"
	"pmtest/internal/domain"
	"pmtest/internal/locator"
	"pmtest/internal/recorder"
	"pmtest/internal/screenshot"
)

// Env is what a scenario body works with: one fresh session plus the shared
// recorder, capturer and configuration of the run.
type Env struct {
	Session  browser.Session
	Recorder *recorder.Recorder
	Capturer *screenshot.Capturer
	Config   *config.Config
	Logger   *zap.Logger
}

func (e *Env) log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Open navigates to path under the base URL.
func (e *Env) Open(ctx context.Context, path string) error {
	url := e.Config.URL(path)
	e.log().Debug("Navigate", zap.String("url", url))
	if err := e.Session.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Find returns the element for entry, waiting up to the implicit wait for it
// to appear.
func (e *Env) Find(ctx context.Context, entry locator.Entry) (browser.Element, error) {
	if wait := e.Config.Browser.ImplicitWait; wait > 0 {
		err := browser.WaitUntil(ctx, e.Session, browser.PresenceOf(entry), wait)
		if err != nil && !isTimeout(err) {
			return nil, err
		}
	}
	return e.Session.FindElement(ctx, entry)
}

// Require checks that every entry is on the page.
func (e *Env) Require(ctx context.Context, entries ...locator.Entry) error {
	for _, entry := range entries {
		if _, err := e.Find(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// Fill types text into the element for entry.
func (e *Env) Fill(ctx context.Context, entry locator.Entry, text string) error {
	el, err := e.Find(ctx, entry)
	if err != nil {
		return err
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return fmt.Errorf("type into %s: %w", entry, err)
	}
	return nil
}

// Replace clears the element for entry before typing text.
func (e *Env) Replace(ctx context.Context, entry locator.Entry, text string) error {
	el, err := e.Find(ctx, entry)
	if err != nil {
		return err
	}
	if err := el.Clear(ctx); err != nil {
		return fmt.Errorf("clear %s: %w", entry, err)
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return fmt.Errorf("type into %s: %w", entry, err)
	}
	return nil
}

// Click clicks the element for entry.
func (e *Env) Click(ctx context.Context, entry locator.Entry) error {
	el, err := e.Find(ctx, entry)
	if err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click %s: %w", entry, err)
	}
	return nil
}

// ClickWhenReady waits for entry to be clickable, then clicks it.
func (e *Env) ClickWhenReady(ctx context.Context, entry locator.Entry, timeout time.Duration) error {
	if err := e.WaitFor(ctx, browser.Clickable(entry), timeout); err != nil {
		return err
	}
	el, err := e.Session.FindElement(ctx, entry)
	if err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click %s: %w", entry, err)
	}
	return nil
}

// WaitFor blocks until cond holds or timeout elapses.
func (e *Env) WaitFor(ctx context.Context, cond browser.Condition, timeout time.Duration) error {
	e.log().Debug("Wait", zap.String("condition", cond.Name), zap.Duration("timeout", timeout))
	return browser.WaitUntil(ctx, e.Session, cond, timeout)
}

// Absent reports whether nothing on the page matches entry. It does not wait.
func (e *Env) Absent(ctx context.Context, entry locator.Entry) (bool, error) {
	els, err := e.Session.FindElements(ctx, entry)
	if err != nil {
		return false, err
	}
	return len(els) == 0, nil
}

// Count returns the number of elements matching entry, first waiting up to the
// short timeout for at least one to appear.
func (e *Env) Count(ctx context.Context, entry locator.Entry) (int, error) {
	err := browser.WaitUntil(ctx, e.Session, browser.PresenceOf(entry), e.Config.Timeouts.Short)
	if err != nil && !isTimeout(err) {
		return 0, err
	}
	els, err := e.Session.FindElements(ctx, entry)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

// Pause waits d unless ctx ends first.
func (e *Env) Pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Checkpoint captures the page as shot and records description as a PASS step.
func (e *Env) Checkpoint(ctx context.Context, shot, description string) error {
	path, err := e.Capturer.Capture(ctx, e.Session, shot)
	if err != nil {
		return err
	}
	e.log().Debug("Step", zap.String("description", description), zap.String("screenshot", path))
	return e.Recorder.Pass(description, path)
}

// Note records description as a PASS step without a screenshot.
func (e *Env) Note(description string) error {
	e.log().Debug("Step", zap.String("description", description))
	return e.Recorder.Pass(description, "")
}

// ExpectURLContains asserts on the current URL.
func (e *Env) ExpectURLContains(ctx context.Context, fragment string) error {
	url, err := e.Session.CurrentURL(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(url, fragment) {
		return Assertf("url %q does not contain %q", url, fragment)
	}
	return nil
}

// ExpectTitleContains asserts on the document title.
func (e *Env) ExpectTitleContains(ctx context.Context, fragment string) error {
	title, err := e.Session.Title(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(title, fragment) {
		return Assertf("title %q does not contain %q", title, fragment)
	}
	return nil
}

// ExpectSourceContains asserts that the page source mentions text.
func (e *Env) ExpectSourceContains(ctx context.Context, text string) error {
	src, err := e.Session.PageSource(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(src, text) {
		return Assertf("page source does not contain %q", text)
	}
	return nil
}

// SubmitLogin fills the login form already on screen and submits it.
func (e *Env) SubmitLogin(ctx context.Context, creds domain.Credentials) error {
	if err := e.Fill(ctx, locator.Auth.EmailInput, creds.Email); err != nil {
		return err
	}
	if err := e.Fill(ctx, locator.Auth.PasswordInput, creds.Password); err != nil {
		return err
	}
	return e.Click(ctx, locator.Auth.LoginButton)
}

// Login signs in as role and waits for the dashboard greeting.
func (e *Env) Login(ctx context.Context, role domain.Role) error {
	creds, err := e.Config.CredentialsFor(role)
	if err != nil {
		return err
	}
	if err := e.Open(ctx, "/auth/login"); err != nil {
		return err
	}
	if err := e.SubmitLogin(ctx, creds); err != nil {
		return err
	}
	return e.WaitForDashboard(ctx)
}

// WaitForDashboard waits for the greeting shown after a successful login.
func (e *Env) WaitForDashboard(ctx context.Context) error {
	return e.WaitFor(ctx, browser.PresenceOf(locator.Dashboard.Title), e.Config.Timeouts.Wait)
}

// OpenUserMenu opens the navbar dropdown and waits for the menu.
func (e *Env) OpenUserMenu(ctx context.Context) error {
	if err := e.ClickWhenReady(ctx, locator.Navbar.UserDropdown, e.Config.Timeouts.Wait); err != nil {
		return err
	}
	return e.WaitFor(ctx, browser.PresenceOf(locator.Navbar.DropdownMenu), e.Config.Timeouts.Wait)
}

// ChooseLogout clicks Logout in an open user menu and waits for the login page.
func (e *Env) ChooseLogout(ctx context.Context) error {
	if err := e.ClickWhenReady(ctx, locator.Navbar.LogoutSpan, e.Config.Timeouts.Wait); err != nil {
		return err
	}
	return e.WaitFor(ctx, browser.URLContains("/auth/login"), e.Config.Timeouts.Wait)
}

func isTimeout(err error) bool {
	var te *browser.TimeoutError
	return errors.As(err, &te)
}
