// Package fetch downloads job postings and reduces their HTML to plain text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds a single HTTP fetch.
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent identifies the scorer to job boards.
	DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeATS/1.0)"
	// DefaultMaxBytes caps how much of a response body is read.
	DefaultMaxBytes = 2 << 20
)

// Page is a fetched job posting.
type Page struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
	Platform    Platform
	Rendered    bool
}

// Error reports a failed fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Fetcher.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	// Browser enables the headless Chrome fallback for pages whose
	// static HTML carries too little text.
	Browser bool
	Headers map[string]string
	// AllowPrivateNetworks disables the public-address check. Only for
	// tests and trusted deployments.
	AllowPrivateNetworks bool
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
	}
}

// Fetcher retrieves job postings over HTTP.
type Fetcher struct {
	opts   Options
	client *http.Client
	render func(ctx context.Context, url string) (string, error)
}

// New creates a Fetcher. Zero-valued options fall back to defaults.
func New(opts Options) *Fetcher {
	def := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = def.MaxBytes
	}
	dialer := &net.Dialer{Timeout: opts.Timeout, KeepAlive: 30 * time.Second}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !opts.AllowPrivateNetworks {
		dialer.Control = dialControl
		// A proxy would be dialed instead of the target.
		transport.Proxy = nil
	}
	transport.DialContext = dialer.DialContext

	f := &Fetcher{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout, Transport: transport},
	}
	f.render = func(ctx context.Context, u string) (string, error) {
		if !f.opts.AllowPrivateNetworks {
			if err := checkPublicHost(ctx, u); err != nil {
				return "", err
			}
		}
		return RenderWithBrowser(ctx, u, f.opts.Timeout*2)
	}
	return f
}

// Get downloads urlStr without extracting text. A non-200 status returns
// the page together with an *Error.
func (f *Fetcher) Get(ctx context.Context, urlStr string) (*Page, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9")
	for k, v := range f.opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	page := &Page{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		Platform:    DetectPlatform(urlStr),
	}
	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return page, nil
}

// JobPosting downloads a posting and extracts its description text using
// selectors for the detected job board. Plain-text responses are returned
// as-is. When the browser fallback is enabled and the static page looks
// like an unrendered single-page app, the page is rendered in headless
// Chrome and extracted again.
func (f *Fetcher) JobPosting(ctx context.Context, urlStr string) (*Page, error) {
	page, err := f.Get(ctx, urlStr)
	if err != nil {
		return page, err
	}

	if strings.HasPrefix(page.ContentType, "text/plain") {
		page.Text = cleanWhitespace(page.HTML)
		return page, nil
	}

	page.Text, err = ExtractMainText(page.HTML,
		PlatformContentSelectors(page.Platform),
		PlatformNoiseSelectors(page.Platform)...)
	if err != nil {
		return page, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}

	if f.opts.Browser && ShouldUseBrowser(page.Text) {
		html, rerr := f.render(ctx, urlStr)
		if rerr != nil {
			// The static text is still usable.
			return page, nil
		}
		text, xerr := ExtractMainText(html,
			PlatformContentSelectors(page.Platform),
			PlatformNoiseSelectors(page.Platform)...)
		if xerr == nil && len(text) > len(page.Text) {
			page.HTML = html
			page.Text = text
			page.Rendered = true
		}
	}
	return page, nil
}

// ExtractMainText parses HTML and returns the main body text. Elements
// matching noiseSelectors are removed first; the first contentSelector that
// matches wins, falling back to <body>.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	// Block elements become line breaks so bullets survive as lines.
	main.Find("li, p, br, h1, h2, h3, h4, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(main.Text()), nil
}

// JobPostingSelectors returns selectors for job pages on unknown boards.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
