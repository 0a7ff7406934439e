// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// renderPage is the render entry point. Declared as a var so tests can
// substitute a stub instead of launching a real browser.
var renderPage = renderWithBrowser

// renderWithBrowser launches an isolated headless browser, navigates to
// url, waits for DOMContentLoaded, and returns the rendered markup after
// script execution.
//
// Each call gets a fresh browser instance; nothing is reused across
// calls, so no cookies or page state can leak between unrelated URLs.
// The instance is torn down on every exit path.
func renderWithBrowser(ctx context.Context, url, userAgent string, timeout time.Duration) (string, error) {
	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launching browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	page = page.Timeout(timeout)

	// Present a realistic desktop identification string; many sites
	// reject obvious automation UAs outright.
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent}); err != nil {
		return "", fmt.Errorf("setting user agent: %w", err)
	}

	// DOMContentLoaded is enough for article text and much cheaper than
	// waiting for an idle network.
	wait := page.WaitEvent(&proto.PageDomContentEventFired{})
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	wait()

	markup, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading rendered markup: %w", err)
	}
	return markup, nil
}
