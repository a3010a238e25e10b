package tests

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// serverURL returns the portal URL.
// Set IDEAS_TEST_URL when running against a non-default instance.
func serverURL() string {
	if url := os.Getenv("IDEAS_TEST_URL"); url != "" {
		return url
	}
	return "http://localhost:4310"
}

// requireServer skips the test when no portal is listening. UI tests
// run against a live instance started separately.
func requireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(serverURL() + "/api/health")
	if err != nil {
		t.Skipf("portal not running at %s: %v", serverURL(), err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("portal health check returned %d", resp.StatusCode)
	}
}

// newBrowser creates a headless Chrome context with a 30s timeout.
func newBrowser(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	ctx, timeoutCancel := context.WithTimeout(ctx, 30*time.Second)

	cancel := func() {
		timeoutCancel()
		ctxCancel()
		allocCancel()
	}
	return ctx, cancel
}

// jsErrorCollector listens for JS exceptions and console.error calls.
// Call before chromedp.Navigate.
type jsErrorCollector struct {
	mu     sync.Mutex
	errors []string
}

func newJSErrorCollector(ctx context.Context) *jsErrorCollector {
	c := &jsErrorCollector{}

	chromedp.ListenTarget(ctx, func(ev interface{}) {
		c.mu.Lock()
		defer c.mu.Unlock()

		switch e := ev.(type) {
		case *runtime.EventExceptionThrown:
			desc := e.ExceptionDetails.Text
			if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
				desc = e.ExceptionDetails.Exception.Description
			}
			c.errors = append(c.errors, fmt.Sprintf("EXCEPTION: %s", desc))

		case *runtime.EventConsoleAPICalled:
			if e.Type == runtime.APITypeError {
				var parts []string
				for _, arg := range e.Args {
					if arg.Value != nil {
						parts = append(parts, string(arg.Value))
					} else if arg.Description != "" {
						parts = append(parts, arg.Description)
					}
				}
				if len(parts) > 0 {
					msg := strings.Join(parts, " ")
					// Ignore noisy but harmless errors
					if !strings.Contains(msg, "favicon") {
						c.errors = append(c.errors, fmt.Sprintf("console.error: %s", msg))
					}
				}
			}
		}
	})

	return c
}

func (c *jsErrorCollector) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.errors))
	copy(out, c.errors)
	return out
}

// navigateAndWait navigates to a page and waits for the body to render.
func navigateAndWait(ctx context.Context, url string) error {
	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.Sleep(300*time.Millisecond),
	)
}

// elementCount returns how many elements match the selector.
func elementCount(ctx context.Context, selector string) (int, error) {
	var count int
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll('%s').length`, selector), &count),
	)
	return count, err
}

// exists reports whether any element matches the selector.
func exists(ctx context.Context, selector string) (bool, error) {
	var found bool
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelector('%s') !== null`, selector), &found),
	)
	return found, err
}

// textContains reads an element's text and checks it contains expected.
func textContains(ctx context.Context, selector, expected string) (bool, string, error) {
	var actual string
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				return el ? el.textContent.trim() : '';
			})()
		`, selector), &actual),
	)
	if err != nil {
		return false, "", err
	}
	return strings.Contains(actual, expected), actual, nil
}

// takeScreenshot saves a full-page screenshot under tests/results.
func takeScreenshot(t *testing.T, ctx context.Context, group, name string) {
	t.Helper()

	dir := filepath.Join("results", group)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Logf("screenshot dir failed: %v", err)
		return
	}

	var buf []byte
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		t.Logf("screenshot failed: %v", err)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf, 0644); err != nil {
		t.Logf("screenshot write failed: %v", err)
	}
}
