package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"
)

// maxBodySize limits the size of a feed document
const maxBodySize = 10 * 1024 * 1024

// maxTemporaryRedirects is the number of 302/303/307 hops followed by the http client
const maxTemporaryRedirects = 10

var errTooManyRedirects = errors.New("too many redirects")

// FetcherParams configures HTTPFetcher
type FetcherParams struct {
	Timeout              time.Duration // per request, including body read
	UserAgent            string
	PerDomainConcurrency int           // max parallel requests to one registrable domain
	PerDomainDelay       time.Duration // min delay between requests to one registrable domain
}

// HTTPFetcher makes a single GET for a feed url and parses the response. It never touches storage.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	limiter   *domainLimiter
}

// NewHTTPFetcher creates a new feed fetcher
func NewHTTPFetcher(params FetcherParams) *HTTPFetcher {
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: checkRedirect,
		},
		userAgent: params.UserAgent,
		timeout:   params.Timeout,
		limiter:   newDomainLimiter(params.PerDomainConcurrency, params.PerDomainDelay),
	}
}

// checkRedirect stops on permanent redirects, so the caller can move the feed link, and follows temporary ones
func checkRedirect(req *http.Request, via []*http.Request) error {
	if req.Response != nil && isPermanentRedirect(req.Response.StatusCode) {
		return http.ErrUseLastResponse
	}
	if len(via) >= maxTemporaryRedirects {
		return errTooManyRedirects
	}
	return nil
}

func isPermanentRedirect(status int) bool {
	return status == http.StatusMovedPermanently || status == http.StatusPermanentRedirect
}

// Fetch retrieves and parses the feed at feedURL, the outcome is classified in Result.Kind
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) Result {
	key := limiterKey(feedURL)
	if err := f.limiter.acquire(ctx, key); err != nil {
		return Result{Kind: KindTemporary, URL: feedURL, Err: err}
	}
	defer f.limiter.release(key)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return Result{Kind: KindUnrecognized, URL: feedURL, Err: fmt.Errorf("create request: %w", err)}
	}
	setRequestHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, errTooManyRedirects) {
			return Result{Kind: KindRedirectLoop, URL: feedURL, Err: err}
		}
		return Result{Kind: KindTemporary, URL: feedURL, Err: fmt.Errorf("fetch url: %w", err)}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		_ = resp.Body.Close()
	}()

	res := Result{Kind: classifyStatus(resp.StatusCode), Status: resp.StatusCode, URL: feedURL}
	switch res.Kind {
	case KindSuccess:
	case KindRedirect:
		loc, err := resp.Location()
		if err != nil {
			res.Kind = KindUnrecognized
			res.Err = fmt.Errorf("redirect without location: %w", err)
			return res
		}
		res.Location = loc.String()
		lgr.Printf("[DEBUG] %s moved permanently to %s", feedURL, res.Location)
		return res
	default:
		res.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
		return res
	}

	parsed, err := newParser().Parse(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return Result{Kind: KindTemporary, Status: resp.StatusCode, URL: feedURL, Err: fmt.Errorf("read feed: %w", err)}
		}
		res.Kind = KindMalformed
		res.Err = fmt.Errorf("parse feed: %w", err)
		return res
	}

	res.Feed = toParsedFeed(parsed)
	if err := validate(res.Feed); err != nil {
		res.Kind = KindMalformed
		res.Err = err
	}
	return res
}

// classifyStatus maps an http status to a fetch outcome kind
func classifyStatus(status int) Kind {
	switch {
	case status >= 200 && status < 300, status == http.StatusNotModified:
		return KindSuccess
	case isPermanentRedirect(status):
		return KindRedirect
	case status == http.StatusGone:
		return KindGone
	}
	switch status {
	case http.StatusNotFound, http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindTemporary
	}
	return KindUnrecognized
}

// validate checks the document has the fields a stored feed needs
func validate(pf *ParsedFeed) error {
	var missing []string
	if strings.TrimSpace(pf.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(pf.Link) == "" {
		missing = append(missing, "link")
	}
	if len(missing) > 0 {
		return fmt.Errorf("feed document has no %s", strings.Join(missing, " and "))
	}
	return nil
}

func toParsedFeed(f *gofeed.Feed) *ParsedFeed {
	res := &ParsedFeed{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Link:        f.Link,
		Language:    f.Language,
		Copyright:   f.Copyright,
		Updated:     f.UpdatedParsed,
		Published:   f.PublishedParsed,
		Subtitle:    f.Custom[customSubtitle],
		Entries:     make([]RawEntry, 0, len(f.Items)),
	}
	if f.Image != nil {
		res.LogoURL = f.Image.URL
	}
	if ttl, err := strconv.Atoi(strings.TrimSpace(f.Custom[customTTL])); err == nil && ttl > 0 {
		res.TTL = ttl
	}

	for _, item := range f.Items {
		if item == nil {
			continue
		}
		entry := RawEntry{
			GUID:        strings.TrimSpace(item.GUID),
			Title:       item.Title,
			Content:     item.Content,
			Description: item.Description,
			Link:        strings.TrimSpace(item.Link),
			CommentsURL: item.Custom[customComments],
			Updated:     item.UpdatedParsed,
			Published:   item.PublishedParsed,
		}
		switch {
		case item.Author != nil && item.Author.Name != "":
			entry.Author = item.Author.Name
		case len(item.Authors) > 0 && item.Authors[0] != nil:
			entry.Author = item.Authors[0].Name
		}
		res.Entries = append(res.Entries, entry)
	}
	return res
}
