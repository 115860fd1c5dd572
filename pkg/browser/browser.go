package browser

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Option configures Launch.
type Option func(*options)

type options struct {
	bin      string
	headless bool
	url      string
	timeout  time.Duration
}

// WithBin uses the browser binary at path instead of looking one up or
// downloading it.
func WithBin(path string) Option {
	return func(o *options) { o.bin = path }
}

func WithHeadless(headless bool) Option {
	return func(o *options) { o.headless = headless }
}

// WithURL sets the page signals are read from. Defaults to about:blank.
func WithURL(url string) Option {
	return func(o *options) {
		if url != "" {
			o.url = url
		}
	}
}

// WithProbeTimeout bounds every single probe evaluation.
func WithProbeTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// Session owns a browser process and the page probes run against.
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	timeout  time.Duration

	closeOnce sync.Once
	closeErr  error
}

// Launch starts a browser, opens the target page and waits for it to load.
// ctx bounds the whole session: cancelling it tears the browser down.
func Launch(ctx context.Context, opts ...Option) (*Session, error) {
	o := &options{
		headless: true,
		url:      "about:blank",
		timeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	l := launcher.New().Context(ctx).Headless(o.headless)
	if o.bin != "" {
		l = l.Bin(o.bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, errors.Join(ErrLaunch, err)
	}

	b := rod.New().Context(ctx).ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, errors.Join(ErrConnect, err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: o.url})
	if err == nil {
		err = page.WaitLoad()
	}
	if err != nil {
		_ = b.Close()
		l.Kill()
		return nil, errors.Join(ErrPage, err)
	}

	return &Session{launcher: l, browser: b, page: page, timeout: o.timeout}, nil
}

// Environment returns the fingerprint environment bound to the session page.
func (s *Session) Environment() *Environment {
	return &Environment{page: s.page, timeout: s.timeout}
}

// Close shuts the browser down and removes its temporary profile.
// It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.browser.Close()
		s.launcher.Cleanup()
	})
	return s.closeErr
}
