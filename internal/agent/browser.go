// Package agent provides the browser execution agent for scenario steps.
//
// The agent drives a Chrome instance through go-rod and exposes one method
// per step action (navigate, click, type, press key, wait, screenshot,
// snapshot, evaluate, console messages). It interprets steps one at a time
// and knows nothing about scenarios or ordering; sequencing is owned by the
// runner package.
//
// Runtime failures (element not found, expression errors, file write
// failures) are returned to the caller, never swallowed.
package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Options holds browser launch and interaction settings.
type Options struct {
	// BinaryPath is the Chrome/Chromium binary. Empty lets the rod launcher
	// resolve one.
	BinaryPath string

	// Headless controls whether the browser runs without a window.
	Headless bool

	// ViewportWidth and ViewportHeight set the emulated viewport.
	ViewportWidth  int
	ViewportHeight int

	// NavigationTimeout bounds Navigate calls.
	NavigationTimeout time.Duration

	// TypeDelay is the per-character delay for paced typing.
	TypeDelay time.Duration

	// ScreenshotDir is prepended to relative screenshot paths.
	ScreenshotDir string
}

func (o Options) viewportWidth() int {
	if o.ViewportWidth <= 0 {
		return 1280
	}
	return o.ViewportWidth
}

func (o Options) viewportHeight() int {
	if o.ViewportHeight <= 0 {
		return 800
	}
	return o.ViewportHeight
}

func (o Options) navigationTimeout() time.Duration {
	if o.NavigationTimeout <= 0 {
		return 30 * time.Second
	}
	return o.NavigationTimeout
}

func (o Options) typeDelay() time.Duration {
	if o.TypeDelay <= 0 {
		return 75 * time.Millisecond
	}
	return o.TypeDelay
}

// Browser is a live browser session that executes individual steps.
//
// Create with [New], call [Browser.Start] before the first step and
// [Browser.Close] when done. A Browser drives a single page; scenarios run
// sequentially against it.
type Browser struct {
	opts Options
	log  *zap.Logger

	browser *rod.Browser
	page    *rod.Page
	console *consoleLog
	cancel  context.CancelFunc
}

// New creates a browser agent. The logger may be nil.
func New(opts Options, log *zap.Logger) *Browser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Browser{
		opts:    opts,
		log:     log,
		console: newConsoleLog(defaultConsoleCap),
	}
}

// Start launches Chrome, opens the page, sets the viewport, and begins
// console capture.
func (b *Browser) Start(ctx context.Context) error {
	if b.browser != nil {
		return nil
	}

	launch := launcher.New().Headless(b.opts.Headless)
	if b.opts.BinaryPath != "" {
		launch = launch.Bin(b.opts.BinaryPath)
	}
	controlURL, err := launch.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		return fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             b.opts.viewportWidth(),
		Height:            b.opts.viewportHeight(),
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		b.log.Warn("failed to set viewport", zap.Error(err))
	}

	b.browser = browser
	b.page = page

	eventCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.startConsoleCapture(eventCtx)

	b.log.Debug("browser started",
		zap.Bool("headless", b.opts.Headless),
		zap.Int("viewport_width", b.opts.viewportWidth()),
		zap.Int("viewport_height", b.opts.viewportHeight()))
	return nil
}

// Close stops console capture and shuts the browser down.
func (b *Browser) Close() error {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	if b.page != nil {
		_ = b.page.Close()
		b.page = nil
	}
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	return err
}

var errNotStarted = errors.New("browser not started")

func (b *Browser) livePage() (*rod.Page, error) {
	if b.page == nil {
		return nil, errNotStarted
	}
	return b.page, nil
}

// Navigate loads the URL and waits for the page load event, bounded by the
// configured navigation timeout. Navigation clears collected console
// messages so console_messages steps see only the current page.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	page, err := b.livePage()
	if err != nil {
		return err
	}
	b.console.reset()

	page = page.Context(ctx).Timeout(b.opts.navigationTimeout())
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for %s to load: %w", url, err)
	}
	return nil
}

// Click clicks the element identified by the locator.
func (b *Browser) Click(ctx context.Context, locator string) error {
	page, err := b.livePage()
	if err != nil {
		return err
	}
	el, err := page.Context(ctx).Element(locator)
	if err != nil {
		return fmt.Errorf("element %s not found: %w", locator, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", locator, err)
	}
	return nil
}

// TypeText enters text into the element identified by the locator. When
// paced, each character is sent separately with the configured delay in
// between, mimicking a human typist; P-Type scores per keystroke, so pacing
// matters for gameplay scenarios.
func (b *Browser) TypeText(ctx context.Context, locator, text string, paced bool) error {
	page, err := b.livePage()
	if err != nil {
		return err
	}
	el, err := page.Context(ctx).Element(locator)
	if err != nil {
		return fmt.Errorf("element %s not found: %w", locator, err)
	}

	if !paced {
		if err := el.Input(text); err != nil {
			return fmt.Errorf("type into %s: %w", locator, err)
		}
		return nil
	}

	delay := b.opts.typeDelay()
	for _, r := range text {
		if err := el.Input(string(r)); err != nil {
			return fmt.Errorf("type into %s: %w", locator, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil
}

// PressKey sends a single key press to the page.
func (b *Browser) PressKey(ctx context.Context, key string) error {
	page, err := b.livePage()
	if err != nil {
		return err
	}
	k, err := mapKey(key)
	if err != nil {
		return err
	}
	if err := page.Context(ctx).Keyboard.Press(k); err != nil {
		return fmt.Errorf("press %s: %w", key, err)
	}
	return nil
}

// Wait pauses for the given number of seconds, respecting ctx cancellation.
func (b *Browser) Wait(ctx context.Context, seconds float64) error {
	d := time.Duration(seconds * float64(time.Second))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Screenshot captures the page to the given file path. Relative paths are
// placed under the configured screenshot directory, which is created on
// demand.
func (b *Browser) Screenshot(ctx context.Context, path string) error {
	page, err := b.livePage()
	if err != nil {
		return err
	}
	data, err := page.Context(ctx).Screenshot(false, nil)
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}

	dest := ResolveScreenshotPath(b.opts.ScreenshotDir, path)
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create screenshot directory: %w", err)
		}
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write screenshot %s: %w", dest, err)
	}
	b.log.Debug("screenshot written", zap.String("path", dest))
	return nil
}

// Snapshot returns the serialized DOM of the page.
func (b *Browser) Snapshot(ctx context.Context) (string, error) {
	page, err := b.livePage()
	if err != nil {
		return "", err
	}
	html, err := page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("capture DOM snapshot: %w", err)
	}
	return html, nil
}

// Evaluate runs the expression in the page context and returns its value.
// The expression is wrapped in an arrow function; promises are awaited, so
// expressions may resolve asynchronously (e.g. frame-rate sampling).
func (b *Browser) Evaluate(ctx context.Context, expression string) (any, error) {
	page, err := b.livePage()
	if err != nil {
		return nil, err
	}
	res, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:           fmt.Sprintf("() => (%s)", expression),
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate expression: %w", err)
	}
	if res == nil {
		return nil, nil
	}
	return res.Value.Val(), nil
}

// ResolveScreenshotPath joins a relative screenshot path onto the configured
// directory; absolute paths pass through unmodified.
func ResolveScreenshotPath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
