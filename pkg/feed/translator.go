package feed

import (
	"fmt"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

// custom keys set by the translators on gofeed.Feed.Custom and gofeed.Item.Custom
const (
	customTTL      = "ttl"
	customSubtitle = "subtitle"
	customComments = "comments"
)

// rssTranslator keeps channel ttl and item comments, dropped by the default translator
type rssTranslator struct {
	defaultTranslator *gofeed.DefaultRSSTranslator
}

func (t *rssTranslator) Translate(feed any) (*gofeed.Feed, error) {
	rssFeed, ok := feed.(*rss.Feed)
	if !ok {
		return nil, fmt.Errorf("feed did not match expected type of *rss.Feed")
	}
	f, err := t.defaultTranslator.Translate(rssFeed)
	if err != nil {
		return nil, err
	}

	if rssFeed.TTL != "" {
		setCustom(&f.Custom, customTTL, rssFeed.TTL)
	}
	if len(rssFeed.Items) == len(f.Items) {
		for i, item := range rssFeed.Items {
			if item.Comments != "" {
				setCustom(&f.Items[i].Custom, customComments, item.Comments)
			}
		}
	}
	return f, nil
}

// atomTranslator keeps the feed subtitle separately from description
type atomTranslator struct {
	defaultTranslator *gofeed.DefaultAtomTranslator
}

func (t *atomTranslator) Translate(feed any) (*gofeed.Feed, error) {
	atomFeed, ok := feed.(*atom.Feed)
	if !ok {
		return nil, fmt.Errorf("feed did not match expected type of *atom.Feed")
	}
	f, err := t.defaultTranslator.Translate(atomFeed)
	if err != nil {
		return nil, err
	}
	if atomFeed.Subtitle != "" {
		setCustom(&f.Custom, customSubtitle, atomFeed.Subtitle)
	}
	return f, nil
}

func setCustom(m *map[string]string, key, val string) {
	if *m == nil {
		*m = map[string]string{}
	}
	(*m)[key] = val
}

// newParser makes a gofeed parser with the translators above, parsers are not shared between fetches
func newParser() *gofeed.Parser {
	p := gofeed.NewParser()
	p.RSSTranslator = &rssTranslator{defaultTranslator: &gofeed.DefaultRSSTranslator{}}
	p.AtomTranslator = &atomTranslator{defaultTranslator: &gofeed.DefaultAtomTranslator{}}
	return p
}
