package browser

import (
	"context"
	"fmt"
	"os"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"

	"pmtest/internal/config"
	"pmtest/internal/locator"
)

// DriverChromedp names the chromedp backend.
const DriverChromedp = "chromedp"

// ChromedpLauncher starts a separate Chromium per scenario over the DevTools protocol.
type ChromedpLauncher struct {
	cfg config.BrowserConfig
}

// NewChromedpLauncher creates a chromedp launcher.
func NewChromedpLauncher(cfg config.BrowserConfig) *ChromedpLauncher {
	return &ChromedpLauncher{cfg: cfg}
}

func (l *ChromedpLauncher) Name() string { return DriverChromedp }

// Launch starts a browser that outlives ctx so a failure screenshot can still be
// taken after the scenario deadline; only Close tears it down. ctx bounds the
// startup itself and each action's deadline comes from the ctx passed to it.
func (l *ChromedpLauncher) Launch(ctx context.Context) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", l.cfg.Headless),
		chromedp.Flag("disable-web-security", true),
		chromedp.Flag("allow-running-insecure-content", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.WindowSize(l.cfg.Width, l.cfg.Height),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		tabCancel()
		allocCancel()
	}

	// The first Run starts the browser and must use the tab context itself.
	stop := context.AfterFunc(ctx, cancel)
	err := chromedp.Run(tabCtx)
	stopped := stop()
	if err != nil || !stopped {
		cancel()
		if err == nil {
			err = ctx.Err()
		}
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	return &chromedpSession{ctx: tabCtx, cancel: cancel}, nil
}

// Close is a no-op: every session owns its browser.
func (l *ChromedpLauncher) Close() error { return nil }

type chromedpSession struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// run executes actions on the tab, honouring the caller's deadline.
func (s *chromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx := s.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(s.ctx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (s *chromedpSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *chromedpSession) query(ctx context.Context, entry locator.Entry) ([]*cdp.Node, error) {
	var nodes []*cdp.Node
	err := s.run(ctx, chromedp.Nodes(entry.XPath(), &nodes, chromedp.BySearch, chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", entry, err)
	}
	return nodes, nil
}

func (s *chromedpSession) FindElement(ctx context.Context, entry locator.Entry) (Element, error) {
	nodes, err := s.query(ctx, entry)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, NotFound(entry)
	}
	return &chromedpElement{session: s, node: nodes[0]}, nil
}

func (s *chromedpSession) FindElements(ctx context.Context, entry locator.Entry) ([]Element, error) {
	nodes, err := s.query(ctx, entry)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &chromedpElement{session: s, node: n})
	}
	return elements, nil
}

func (s *chromedpSession) CurrentURL(ctx context.Context) (string, error) {
	var url string
	err := s.run(ctx, chromedp.Location(&url))
	return url, err
}

func (s *chromedpSession) Title(ctx context.Context) (string, error) {
	var title string
	err := s.run(ctx, chromedp.Title(&title))
	return title, err
}

func (s *chromedpSession) PageSource(ctx context.Context) (string, error) {
	var html string
	err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (s *chromedpSession) SaveScreenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := s.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}
	return os.WriteFile(path, buf, 0644)
}

func (s *chromedpSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	return err
}

type chromedpElement struct {
	session *chromedpSession
	node    *cdp.Node
}

func (e *chromedpElement) ids() []cdp.NodeID {
	return []cdp.NodeID{e.node.NodeID}
}

func (e *chromedpElement) SendKeys(ctx context.Context, text string) error {
	return e.session.run(ctx, chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID))
}

func (e *chromedpElement) Clear(ctx context.Context) error {
	return e.session.run(ctx, chromedp.Clear(e.ids(), chromedp.ByNodeID))
}

func (e *chromedpElement) Click(ctx context.Context) error {
	return e.session.run(ctx, chromedp.MouseClickNode(e.node))
}

// Visible treats an element without a layout box as hidden.
func (e *chromedpElement) Visible(ctx context.Context) (bool, error) {
	visible := false
	err := e.session.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := dom.GetBoxModel().WithNodeID(e.node.NodeID).Do(ctx)
		visible = err == nil
		return nil
	}))
	return visible, err
}

func (e *chromedpElement) Enabled(ctx context.Context) (bool, error) {
	var disabled bool
	err := e.session.run(ctx, chromedp.JavascriptAttribute(e.ids(), "disabled", &disabled, chromedp.ByNodeID))
	return !disabled, err
}

func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var text string
	err := e.session.run(ctx, chromedp.Text(e.ids(), &text, chromedp.ByNodeID))
	return text, err
}
