// Package browsertest provides an in-memory browser.Session for tests. Pages are
// keyed by URL path and hold the locator entries that resolve on them; clicks can
// move the session to another page the way a real form submit would.
package browsertest

import (
	"context"
	"errors"
	"net/url"
	"os"
	"sync"

	"pmtest/internal/browser"
	"pmtest/internal/locator"
)

// ErrClosed is returned by every call on a closed session.
var ErrClosed = errors.New("session closed")

// Site is a set of pages served to every session launched from it.
type Site struct {
	Pages map[string]*Page
}

// NewSite creates an empty site.
func NewSite() *Site {
	return &Site{Pages: make(map[string]*Page)}
}

// Page registers (or returns) the page at path.
func (s *Site) Page(path, title string) *Page {
	if p, ok := s.Pages[path]; ok {
		return p
	}
	p := &Page{Title: title, Elements: make(map[locator.Entry]*Element)}
	s.Pages[path] = p
	return p
}

// Page is what the fake browser renders for one path.
type Page struct {
	Title    string
	Source   string
	Elements map[locator.Entry]*Element
}

// Add places an element on the page and returns it for further setup.
func (p *Page) Add(entry locator.Entry) *Element {
	el := &Element{Enabled: true, Visible: true}
	p.Elements[entry] = el
	return el
}

// With places several plain elements on the page.
func (p *Page) With(entries ...locator.Entry) *Page {
	for _, e := range entries {
		p.Add(e)
	}
	return p
}

// Element is a fake DOM node.
type Element struct {
	Visible bool
	Enabled bool
	Value   string
	Clicks  int
	// Count makes FindElements return this many matches.
	Count   int
	OnClick func(s *Session)
}

// GoesTo makes a click on the element navigate to path.
func (e *Element) GoesTo(path string) *Element {
	e.OnClick = func(s *Session) { s.Goto(path) }
	return e
}

// Session implements browser.Session over a Site.
type Session struct {
	mu   sync.Mutex
	site *Site
	base string
	path string

	Navigations   []string
	Screenshots   []string
	Closed        bool
	ScreenshotErr error
}

var _ browser.Session = (*Session)(nil)

// NewSession starts a session on about:blank.
func NewSession(site *Site) *Session {
	return &Session{site: site}
}

// Goto switches the session to path without recording a navigation.
func (s *Session) Goto(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
}

func (s *Session) current() *Page {
	if p, ok := s.site.Pages[s.path]; ok {
		return p
	}
	return &Page{Elements: map[locator.Entry]*Element{}}
}

func (s *Session) Navigate(ctx context.Context, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Closed {
		return ErrClosed
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	s.base = u.Scheme + "://" + u.Host
	s.path = u.Path
	s.Navigations = append(s.Navigations, raw)
	return nil
}

func (s *Session) FindElement(ctx context.Context, entry locator.Entry) (browser.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Closed {
		return nil, ErrClosed
	}
	el, ok := s.current().Elements[entry]
	if !ok {
		return nil, browser.NotFound(entry)
	}
	return &handle{session: s, el: el}, nil
}

func (s *Session) FindElements(ctx context.Context, entry locator.Entry) ([]browser.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Closed {
		return nil, ErrClosed
	}
	el, ok := s.current().Elements[entry]
	if !ok {
		return nil, nil
	}
	n := el.Count
	if n == 0 {
		n = 1
	}
	out := make([]browser.Element, n)
	for i := range out {
		out[i] = &handle{session: s, el: el}
	}
	return out, nil
}

func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Closed {
		return "", ErrClosed
	}
	return s.base + s.path, nil
}

func (s *Session) Title(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Closed {
		return "", ErrClosed
	}
	return s.current().Title, nil
}

func (s *Session) PageSource(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Closed {
		return "", ErrClosed
	}
	return s.current().Source, nil
}

// SaveScreenshot writes a placeholder file so callers can check it exists.
func (s *Session) SaveScreenshot(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Closed {
		return ErrClosed
	}
	if s.ScreenshotErr != nil {
		return s.ScreenshotErr
	}
	if err := os.WriteFile(path, []byte("\x89PNG"), 0644); err != nil {
		return err
	}
	s.Screenshots = append(s.Screenshots, path)
	return nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

type handle struct {
	session *Session
	el      *Element
}

func (h *handle) SendKeys(ctx context.Context, text string) error {
	h.el.Value += text
	return nil
}

func (h *handle) Clear(ctx context.Context) error {
	h.el.Value = ""
	return nil
}

func (h *handle) Click(ctx context.Context) error {
	h.el.Clicks++
	if h.el.OnClick != nil {
		h.el.OnClick(h.session)
	}
	return nil
}

func (h *handle) Visible(ctx context.Context) (bool, error) { return h.el.Visible, nil }
func (h *handle) Enabled(ctx context.Context) (bool, error) { return h.el.Enabled, nil }
func (h *handle) Text(ctx context.Context) (string, error)  { return h.el.Value, nil }

// Launcher hands out sessions over one Site.
type Launcher struct {
	Site      *Site
	LaunchErr error
	Sessions  []*Session
	Closed    bool
}

var _ browser.Launcher = (*Launcher)(nil)

func (l *Launcher) Name() string { return "fake" }

func (l *Launcher) Launch(ctx context.Context) (browser.Session, error) {
	if l.LaunchErr != nil {
		return nil, l.LaunchErr
	}
	s := NewSession(l.Site)
	l.Sessions = append(l.Sessions, s)
	return s, nil
}

func (l *Launcher) Close() error {
	l.Closed = true
	return nil
}
