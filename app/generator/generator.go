// Package generator builds generation request addresses and calls the remote quote-image maker.
// The remote response body is never inspected, a successful round trip is all that matters.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
)

// DefaultEndpoint is the public quote-image maker
const DefaultEndpoint = "https://api.nexray.web.id/maker/iqc"

// BuildURL makes request address for text. Text is encoded the same way as javascript's
// encodeURIComponent, so addresses match the ones produced by the web front end.
func BuildURL(base, text string) (string, error) {
	if strings.TrimSpace(base) == "" {
		return "", errors.New("empty endpoint")
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid endpoint %q: scheme and host required", base)
	}
	sep := "?"
	switch {
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "&"):
		sep = ""
	case u.RawQuery != "":
		sep = "&"
	}
	return base + sep + "text=" + EncodeComponent(text), nil
}

// EncodeComponent escapes everything except A-Z a-z 0-9 and - _ . ! ~ * ' ( )
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepUnescaped(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

func keepUnescaped(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// ClientParams defines http client options
type ClientParams struct {
	Timeout   time.Duration // zero means no timeout
	UserAgent string
}

// Client calls generation endpoint over http
type Client struct {
	ClientParams
	httpClient *http.Client
}

// NewClient makes http generator
func NewClient(p ClientParams) *Client {
	return &Client{ClientParams: p, httpClient: &http.Client{Timeout: p.Timeout}}
}

// Generate issues GET to address. Transport errors and http status >= 400 are failures,
// the body is drained and dropped.
func (c *Client) Generate(ctx context.Context, address string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, http.NoBody)
	if err != nil {
		return fmt.Errorf("can't make request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	st := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close() // nolint
	_, _ = io.Copy(io.Discard, resp.Body)

	log.Printf("[DEBUG] generation request %s, status %d, %v", address, resp.StatusCode, time.Since(st).Truncate(time.Millisecond))
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("generation request failed with status %d", resp.StatusCode)
	}
	return nil
}

// Offline never calls the endpoint and always succeeds, the address itself is the result
type Offline struct{}

// Generate does nothing
func (Offline) Generate(context.Context, string) error { return nil }
