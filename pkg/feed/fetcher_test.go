package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
	<channel>
		<title>Test Feed</title>
		<link>https://example.com</link>
		<description>Test feed description</description>
		<language>en-us</language>
		<copyright>(c) example</copyright>
		<ttl>45</ttl>
		<image><url>https://example.com/logo.png</url><title>logo</title><link>https://example.com</link></image>
		<item>
			<title>Test Article 1</title>
			<link>https://example.com/article1</link>
			<description>Article 1 description</description>
			<guid>article1</guid>
			<author>joe@example.com (Joe)</author>
			<comments>https://example.com/article1#comments</comments>
			<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		</item>
		<item>
			<title>Test Article 2</title>
			<link>https://example.com/article2</link>
			<description>Article 2 description</description>
			<content:encoded><![CDATA[<p>Article 2 content</p>]]></content:encoded>
			<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
		</item>
	</channel>
</rss>`

const testAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom Feed</title>
	<subtitle>all about atoms</subtitle>
	<link rel="alternate" href="https://atom.example.com/"/>
	<link rel="self" href="https://atom.example.com/feed.atom"/>
	<logo>https://atom.example.com/logo.png</logo>
	<updated>2024-05-01T10:00:00Z</updated>
	<id>urn:uuid:60a76c80-d399-11d9-b93C-0003939e0af6</id>
	<entry>
		<title>Atom Entry</title>
		<link rel="alternate" href="https://atom.example.com/e1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<published>2024-04-30T10:00:00Z</published>
		<updated>2024-05-01T09:00:00Z</updated>
		<author><name>Jane</name></author>
		<content type="html">&lt;b&gt;bold&lt;/b&gt;</content>
	</entry>
</feed>`

func serveString(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(body))
	}
}

func TestHTTPFetcher_FetchRSS(t *testing.T) {
	var userAgent, accept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent, accept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
		serveString(testRSS)(w, r)
	}))
	defer ts.Close()

	fetcher := NewHTTPFetcher(FetcherParams{Timeout: 5 * time.Second, UserAgent: "rssfeeder-test"})
	res := fetcher.Fetch(context.Background(), ts.URL)
	require.NoError(t, res.Err)
	assert.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "rssfeeder-test", userAgent)
	assert.Contains(t, accept, "application/rss+xml")

	pf := res.Feed
	require.NotNil(t, pf)
	assert.Equal(t, "Test Feed", pf.Title)
	assert.Equal(t, "https://example.com", pf.Link)
	assert.Equal(t, "Test feed description", pf.Description)
	assert.Equal(t, "en-us", pf.Language)
	assert.Equal(t, "(c) example", pf.Copyright)
	assert.Equal(t, 45, pf.TTL)
	assert.Equal(t, "https://example.com/logo.png", pf.LogoURL)

	require.Len(t, pf.Entries, 2)
	e1 := pf.Entries[0]
	assert.Equal(t, "article1", e1.GUID)
	assert.Equal(t, "Test Article 1", e1.Title)
	assert.Equal(t, "https://example.com/article1", e1.Link)
	assert.Equal(t, "https://example.com/article1#comments", e1.CommentsURL)
	assert.NotEmpty(t, e1.Author)
	require.NotNil(t, e1.Published)
	assert.Equal(t, 2006, e1.Published.Year())

	e2 := pf.Entries[1]
	assert.Empty(t, e2.GUID)
	assert.Equal(t, "<p>Article 2 content</p>", e2.Content)
	assert.Equal(t, "Article 2 description", e2.Description)
}

func TestHTTPFetcher_FetchAtom(t *testing.T) {
	ts := httptest.NewServer(serveString(testAtom))
	defer ts.Close()

	res := NewHTTPFetcher(FetcherParams{}).Fetch(context.Background(), ts.URL)
	require.NoError(t, res.Err)
	require.Equal(t, KindSuccess, res.Kind)

	pf := res.Feed
	assert.Equal(t, "Atom Feed", pf.Title)
	assert.Equal(t, "all about atoms", pf.Subtitle)
	assert.Equal(t, "https://atom.example.com/", pf.Link)
	assert.Equal(t, "https://atom.example.com/logo.png", pf.LogoURL)
	require.NotNil(t, pf.Updated)

	require.Len(t, pf.Entries, 1)
	e := pf.Entries[0]
	assert.Equal(t, "urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a", e.GUID)
	assert.Equal(t, "Jane", e.Author)
	assert.Equal(t, "<b>bold</b>", e.Content)
	require.NotNil(t, e.Updated)
	require.NotNil(t, e.Published)
	assert.True(t, e.Updated.After(*e.Published))
}

func TestHTTPFetcher_FetchStatus(t *testing.T) {
	tbl := []struct {
		status int
		kind   Kind
	}{
		{http.StatusNotFound, KindTemporary},
		{http.StatusRequestTimeout, KindTemporary},
		{http.StatusTooManyRequests, KindTemporary},
		{http.StatusInternalServerError, KindTemporary},
		{http.StatusBadGateway, KindTemporary},
		{http.StatusServiceUnavailable, KindTemporary},
		{http.StatusGatewayTimeout, KindTemporary},
		{http.StatusGone, KindGone},
		{http.StatusForbidden, KindUnrecognized},
		{http.StatusTeapot, KindUnrecognized},
		{http.StatusNotImplemented, KindUnrecognized},
	}
	for _, tt := range tbl {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			res := NewHTTPFetcher(FetcherParams{}).Fetch(context.Background(), ts.URL)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.status, res.Status)
			assert.Error(t, res.Err)
			assert.Nil(t, res.Feed)
		})
	}
}

func TestHTTPFetcher_FetchRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/feed", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/moved308", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/feed", http.StatusPermanentRedirect)
	})
	mux.HandleFunc("/temp", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/feed", http.StatusFound)
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusTemporaryRedirect)
	})
	mux.HandleFunc("/feed", serveString(testRSS))
	ts := httptest.NewServer(mux)
	defer ts.Close()

	fetcher := NewHTTPFetcher(FetcherParams{})

	t.Run("permanent redirect is reported", func(t *testing.T) {
		for _, path := range []string{"/moved", "/moved308"} {
			res := fetcher.Fetch(context.Background(), ts.URL+path)
			assert.Equal(t, KindRedirect, res.Kind, path)
			assert.Equal(t, ts.URL+"/feed", res.Location, path)
			assert.Nil(t, res.Feed)
		}
	})

	t.Run("temporary redirect is followed", func(t *testing.T) {
		res := fetcher.Fetch(context.Background(), ts.URL+"/temp")
		require.NoError(t, res.Err)
		assert.Equal(t, KindSuccess, res.Kind)
		assert.Equal(t, ts.URL+"/temp", res.URL)
		assert.Equal(t, "Test Feed", res.Feed.Title)
	})

	t.Run("endless temporary redirects", func(t *testing.T) {
		res := fetcher.Fetch(context.Background(), ts.URL+"/loop")
		assert.Equal(t, KindRedirectLoop, res.Kind)
		assert.ErrorIs(t, res.Err, errTooManyRedirects)
	})
}

func TestHTTPFetcher_FetchMalformed(t *testing.T) {
	t.Run("not a feed", func(t *testing.T) {
		ts := httptest.NewServer(serveString("this is not xml at all"))
		defer ts.Close()
		res := NewHTTPFetcher(FetcherParams{}).Fetch(context.Background(), ts.URL)
		assert.Equal(t, KindMalformed, res.Kind)
		assert.Error(t, res.Err)
		assert.Nil(t, res.Feed)
	})

	t.Run("no title keeps partial feed", func(t *testing.T) {
		doc := `<?xml version="1.0"?><rss version="2.0"><channel><link>https://example.com</link>
			<item><guid>x1</guid><title>item</title></item></channel></rss>`
		ts := httptest.NewServer(serveString(doc))
		defer ts.Close()
		res := NewHTTPFetcher(FetcherParams{}).Fetch(context.Background(), ts.URL)
		assert.Equal(t, KindMalformed, res.Kind)
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "title")
		require.NotNil(t, res.Feed)
		assert.Len(t, res.Feed.Entries, 1)
	})

	t.Run("no link", func(t *testing.T) {
		doc := `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`
		ts := httptest.NewServer(serveString(doc))
		defer ts.Close()
		res := NewHTTPFetcher(FetcherParams{}).Fetch(context.Background(), ts.URL)
		assert.Equal(t, KindMalformed, res.Kind)
		assert.Contains(t, res.Err.Error(), "link")
	})
}

func TestHTTPFetcher_FetchNetworkError(t *testing.T) {
	ts := httptest.NewServer(serveString(testRSS))
	url := ts.URL
	ts.Close()

	res := NewHTTPFetcher(FetcherParams{Timeout: time.Second}).Fetch(context.Background(), url)
	assert.Equal(t, KindTemporary, res.Kind)
	assert.Zero(t, res.Status)
	assert.Error(t, res.Err)
}

func TestHTTPFetcher_FetchTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()

	res := NewHTTPFetcher(FetcherParams{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), ts.URL)
	assert.Equal(t, KindTemporary, res.Kind)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Temporary", KindTemporary.String())
	assert.Equal(t, "Gone", KindGone.String())
	assert.Equal(t, "Malformed", KindMalformed.String())
	assert.Equal(t, "Unrecognized", KindUnrecognized.String())
	assert.Equal(t, "RedirectLoop", KindRedirectLoop.String())
	assert.Equal(t, "DuplicateLink", KindDuplicateLink.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestFetchError(t *testing.T) {
	inner := fmt.Errorf("unexpected status 410")
	fe := &FetchError{Kind: KindGone, Status: 410, URL: "https://example.com/rss", Attempts: 1, Err: inner}
	assert.Equal(t, "Gone fetch failure for https://example.com/rss after 1 attempt(s), status 410: unexpected status 410",
		fe.Error())
	assert.ErrorIs(t, fe, inner)
}
