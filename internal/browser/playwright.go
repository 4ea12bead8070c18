package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"pmtest/internal/config"
	"pmtest/internal/locator"
)

// DriverPlaywright names the playwright backend.
const DriverPlaywright = "playwright"

// PlaywrightLauncher shares one driver process and one Chromium between
// scenarios and gives each scenario its own browser context.
type PlaywrightLauncher struct {
	cfg config.BrowserConfig

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywrightLauncher creates a launcher; nothing starts until the first Launch.
func NewPlaywrightLauncher(cfg config.BrowserConfig) *PlaywrightLauncher {
	return &PlaywrightLauncher{cfg: cfg}
}

func (l *PlaywrightLauncher) Name() string { return DriverPlaywright }

func (l *PlaywrightLauncher) start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.browser != nil {
		return nil
	}

	if l.cfg.InstallDrivers {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.cfg.Headless),
		SlowMo:   playwright.Float(float64(l.cfg.SlowMo.Milliseconds())),
		Args:     chromeArgs(l.cfg),
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("could not launch browser: %w", err)
	}

	l.pw = pw
	l.browser = browser
	return nil
}

// Launch opens a fresh context and page.
func (l *PlaywrightLauncher) Launch(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := l.start(); err != nil {
		return nil, err
	}

	bctx, err := l.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  l.cfg.Width,
			Height: l.cfg.Height,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	page.SetDefaultTimeout(float64(l.cfg.ImplicitWait.Milliseconds()))

	return &playwrightSession{context: bctx, page: page, fallback: l.cfg.ImplicitWait}, nil
}

// Close stops the shared browser and driver.
func (l *PlaywrightLauncher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	if l.browser != nil {
		err = l.browser.Close()
		l.browser = nil
	}
	if l.pw != nil {
		if stopErr := l.pw.Stop(); err == nil {
			err = stopErr
		}
		l.pw = nil
	}
	return err
}

type playwrightSession struct {
	context  playwright.BrowserContext
	page     playwright.Page
	fallback time.Duration
}

// callTimeout converts ctx into a playwright timeout in milliseconds: the time
// left before ctx's deadline, capped at fallback. nil leaves the page default.
// Playwright calls cannot be interrupted, so cancellation without a deadline is
// only seen between calls.
func callTimeout(ctx context.Context, fallback time.Duration) (*float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := fallback
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		if limit <= 0 || remaining < limit {
			limit = remaining
		}
	}
	if limit <= 0 {
		return nil, nil
	}
	ms := float64(limit.Milliseconds())
	if ms < 1 {
		ms = 1
	}
	return &ms, nil
}

func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	timeout, err := callTimeout(ctx, s.fallback)
	if err != nil {
		return err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{Timeout: timeout}); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) locate(entry locator.Entry) playwright.Locator {
	return s.page.Locator("xpath=" + entry.XPath())
}

func (s *playwrightSession) FindElement(ctx context.Context, entry locator.Entry) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc := s.locate(entry)
	count, err := loc.Count()
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", entry, err)
	}
	if count == 0 {
		return nil, NotFound(entry)
	}
	return &playwrightElement{loc: loc.First(), fallback: s.fallback}, nil
}

func (s *playwrightSession) FindElements(ctx context.Context, entry locator.Entry) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc := s.locate(entry)
	count, err := loc.Count()
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", entry, err)
	}
	elements := make([]Element, 0, count)
	for i := 0; i < count; i++ {
		elements = append(elements, &playwrightElement{loc: loc.Nth(i), fallback: s.fallback})
	}
	return elements, nil
}

func (s *playwrightSession) CurrentURL(ctx context.Context) (string, error) {
	return s.page.URL(), nil
}

func (s *playwrightSession) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.page.Title()
}

func (s *playwrightSession) PageSource(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.page.Content()
}

func (s *playwrightSession) SaveScreenshot(ctx context.Context, path string) error {
	timeout, err := callTimeout(ctx, s.fallback)
	if err != nil {
		return err
	}
	_, err = s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:    playwright.String(path),
		Timeout: timeout,
	})
	return err
}

func (s *playwrightSession) Close() error {
	pageErr := s.page.Close()
	if err := s.context.Close(); err != nil {
		return err
	}
	return pageErr
}

type playwrightElement struct {
	loc      playwright.Locator
	fallback time.Duration
}

func (e *playwrightElement) SendKeys(ctx context.Context, text string) error {
	timeout, err := callTimeout(ctx, e.fallback)
	if err != nil {
		return err
	}
	return e.loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{Timeout: timeout})
}

func (e *playwrightElement) Clear(ctx context.Context) error {
	timeout, err := callTimeout(ctx, e.fallback)
	if err != nil {
		return err
	}
	return e.loc.Clear(playwright.LocatorClearOptions{Timeout: timeout})
}

func (e *playwrightElement) Click(ctx context.Context) error {
	timeout, err := callTimeout(ctx, e.fallback)
	if err != nil {
		return err
	}
	return e.loc.Click(playwright.LocatorClickOptions{Timeout: timeout})
}

func (e *playwrightElement) Visible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.loc.IsVisible()
}

func (e *playwrightElement) Enabled(ctx context.Context) (bool, error) {
	timeout, err := callTimeout(ctx, e.fallback)
	if err != nil {
		return false, err
	}
	return e.loc.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: timeout})
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	timeout, err := callTimeout(ctx, e.fallback)
	if err != nil {
		return "", err
	}
	return e.loc.TextContent(playwright.LocatorTextContentOptions{Timeout: timeout})
}
