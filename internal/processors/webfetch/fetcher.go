package webfetch

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
	"golang.org/x/net/html"

	"crawlkit/internal/model"
)

const sourceID = "webfetch.Fetcher"

// Source is this processor's stable identity.
var Source = model.Source{Name: "webfetch", ID: sourceID}

const (
	defaultUserAgent   = "crawlkit/1.0 (+https://github.com/crawlkit/crawlkit)"
	defaultMaxBodySize = 5 * 1024 * 1024
)

// Fetcher is an InputProcessor that fetches http(s) URLs and extracts
// their outbound links.
type Fetcher struct {
	client         *http.Client
	userAgent      string
	maxBodySize    int64
	ignorePatterns []string
	followPatterns []string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithMaxBodySize bounds the number of response bytes read per fetch.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) { f.maxBodySize = n }
}

// WithIgnorePatterns sets glob patterns (matched against a link's URL
// path) that are never marked crawlable, even if discovered.
func WithIgnorePatterns(patterns []string) Option {
	return func(f *Fetcher) { f.ignorePatterns = patterns }
}

// WithFollowPatterns restricts crawlable links to URL paths matching at
// least one glob pattern. Empty means no restriction.
func WithFollowPatterns(patterns []string) Option {
	return func(f *Fetcher) { f.followPatterns = patterns }
}

// New returns a Fetcher that performs requests with client.
func New(client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      client,
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Source implements processor.InputProcessor.
func (f *Fetcher) Source() model.Source { return Source }

// CanProcess implements processor.InputProcessor: accepts any raw input
// that parses as an http(s) URL.
func (f *Fetcher) CanProcess(_ context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) bool {
	u, err := url.Parse(input.RawInput)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Process implements processor.InputProcessor: fetches the page, computes
// a content hash, and extracts links when the response is HTML.
func (f *Fetcher) Process(ctx context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) (model.Output, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.RawInput, nil)
	if err != nil {
		return model.Output{}, fmt.Errorf("webfetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return model.Output{}, fmt.Errorf("webfetch: fetch %s: %w", input.RawInput, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return model.Output{}, fmt.Errorf("webfetch: read body: %w", err)
	}

	hash := sha3.Sum256(body)
	contentType := resp.Header.Get("Content-Type")

	fields := []model.Field{
		model.F("statusCode", model.Uncrawlable(fmt.Sprintf("%d", resp.StatusCode))),
		model.F("contentType", model.Uncrawlable(contentType)),
		model.F("contentHash", model.Uncrawlable(hex.EncodeToString(hash[:]))),
	}

	if strings.Contains(contentType, "text/html") {
		title, links, images, scripts := f.parseHTML(input.RawInput, body)
		if title != "" {
			fields = append(fields, model.F("title", model.Uncrawlable(title)))
		}
		for _, link := range links {
			if f.shouldCrawl(link) {
				fields = append(fields, model.F("link", model.Crawlable(link)))
			} else {
				fields = append(fields, model.F("link", model.Uncrawlable(link)))
			}
		}
		for _, img := range images {
			fields = append(fields, model.F("image", model.Uncrawlable(img)))
		}
		for _, script := range scripts {
			fields = append(fields, model.F("script", model.Uncrawlable(script)))
		}
	}

	return model.Output{
		Source:    Source,
		StartedBy: input.Source,
		Input:     input.RawInput,
		Data:      []model.Record{model.NewRecord(fields...)},
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// parseHTML extracts the title and resolved link/image/script URLs from
// an HTML document.
func (f *Fetcher) parseHTML(pageURL string, body []byte) (title string, links, images, scripts []string) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", nil, nil, nil
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", nil, nil, nil
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "a":
				if resolved := resolveURL(base, getAttr(n, "href")); resolved != "" {
					links = append(links, resolved)
				}
			case "img":
				if resolved := resolveURL(base, getAttr(n, "src")); resolved != "" {
					images = append(images, resolved)
				}
			case "script":
				if resolved := resolveURL(base, getAttr(n, "src")); resolved != "" {
					scripts = append(scripts, resolved)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, links, images, scripts
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "data:") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// shouldCrawl reports whether link should be marked crawlable, per the
// configured ignore/follow glob patterns matched against its URL path.
func (f *Fetcher) shouldCrawl(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range f.ignorePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}

	if len(f.followPatterns) > 0 {
		for _, pattern := range f.followPatterns {
			if matchPattern(pattern, path) {
				return true
			}
		}
		return false
	}

	return true
}

func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	matched, err := filepath.Match(pattern, path)
	if err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		if matched, err := filepath.Match(pattern, filepath.Base(path)); err == nil && matched {
			return true
		}
	}

	return false
}
