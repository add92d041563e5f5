// Package imagecheck decides whether an artwork image actually loads.
//
// A failed check excludes the artwork from listings, so false negatives
// (transient network errors) silently drop valid records. Callers treat the
// answer as a filter, not as proof that an image is gone for good.
package imagecheck

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Checker reports whether the image at url can be loaded. It never fails;
// any problem is reported as false.
type Checker interface {
	Exists(ctx context.Context, url string) bool
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, url string) bool

func (f CheckerFunc) Exists(ctx context.Context, url string) bool { return f(ctx, url) }

// maxHeaderBytes bounds how much of the body is read to decode the header.
const maxHeaderBytes = 1 << 20

// HTTPChecker loads the image over HTTP and decodes its header, the closest
// equivalent to a browser's load event.
type HTTPChecker struct {
	Client *http.Client
	Logger *slog.Logger
}

// NewHTTPChecker uses http.DefaultClient when client is nil. No timeout is
// added here; a slow image only blocks its own check.
func NewHTTPChecker(client *http.Client, logger *slog.Logger) *HTTPChecker {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPChecker{Client: client, Logger: logger.With("component", "imagecheck")}
}

func (c *HTTPChecker) Exists(ctx context.Context, url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}
	if err := c.load(ctx, url); err != nil {
		c.Logger.Debug("image failed to load", "url", url, "err", err)
		return false
	}
	return true
}

func (c *HTTPChecker) load(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	_, _, err = image.DecodeConfig(io.LimitReader(resp.Body, maxHeaderBytes))
	if err == nil {
		return nil
	}
	// Formats without a registered decoder (webp, avif) still count when the
	// server says it is an image.
	if errors.Is(err, image.ErrFormat) && strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return nil
	}
	return err
}

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("image request: HTTP %d", e.StatusCode)
}
