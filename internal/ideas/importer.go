package ideas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"github.com/vdracula/draft-bot/internal/apperrors"
)

const (
	importService   = "import"
	maxImportBytes  = 5 << 20
	DefaultSelector = "h2 a, h3 a"
)

var (
	ErrNothingToImport  = errors.New("ideas: no topics found at url")
	ErrForbiddenAddress = errors.New("ideas: address is not publicly routable")
)

// Importer turns a feed or a web page into a list of topics.
type Importer struct {
	client   *http.Client
	parser   *gofeed.Parser
	selector string
}

// NewImporter uses client for fetching. A nil client gets one that only
// connects to public addresses.
func NewImporter(client *http.Client, selector string) *Importer {
	if client == nil {
		client = publicHTTPClient()
	}
	if strings.TrimSpace(selector) == "" {
		selector = DefaultSelector
	}
	return &Importer{
		client:   client,
		parser:   gofeed.NewParser(),
		selector: selector,
	}
}

// Import fetches rawURL once and extracts topics from it: feed item titles if
// it is an RSS/Atom feed, otherwise the texts matched by the CSS selector, and
// as a last resort the title of the page's main article.
func (im *Importer) Import(ctx context.Context, rawURL string) ([]string, error) {
	pageURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") || pageURL.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}

	body, err := im.fetch(ctx, pageURL.String())
	if err != nil {
		return nil, err
	}

	if titles := im.fromFeed(body); len(titles) > 0 {
		return titles, nil
	}
	if titles, err := im.fromSelector(body); err == nil && len(titles) > 0 {
		return titles, nil
	}
	if article, err := readability.FromReader(bytes.NewReader(body), pageURL); err == nil {
		if title := strings.TrimSpace(article.Title); title != "" {
			return []string{title}, nil
		}
	}
	return nil, ErrNothingToImport
}

func (im *Importer) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	res, err := im.client.Do(req)
	if err != nil {
		return nil, &apperrors.TransportError{Op: importService, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxImportBytes))
	if err != nil {
		return nil, &apperrors.TransportError{Op: importService, Err: err}
	}
	if res.StatusCode != http.StatusOK {
		return nil, &apperrors.UpstreamError{Service: importService, StatusCode: res.StatusCode, Body: apperrors.Truncate(string(body), 200)}
	}
	return body, nil
}

func (im *Importer) fromFeed(body []byte) []string {
	feed, err := im.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	titles := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		titles = append(titles, item.Title)
	}
	return cleanTopics(titles)
}

func (im *Importer) fromSelector(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	var texts []string
	doc.Find(im.selector).Each(func(i int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return cleanTopics(texts), nil
}

func cleanTopics(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	topics := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Join(strings.Fields(t), " ")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		topics = append(topics, t)
	}
	return topics
}

func publicHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   rejectNonPublic,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{Timeout: 30 * time.Second, Transport: transport}
}

// rejectNonPublic runs after name resolution, so redirects and DNS names
// pointing at internal hosts are refused as well.
func rejectNonPublic(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsMulticast() || ip.IsUnspecified() {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, host)
	}
	return nil
}
