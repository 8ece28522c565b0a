package domain

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by storage when the requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by storage when a write violates a uniqueness constraint
	ErrDuplicate = errors.New("already exists")
)

// Feed represents a registered RSS/Atom source followed by an owner
type Feed struct {
	ID        int64
	Link      string // url the feed is fetched from
	Nickname  string
	Owner     string
	Following bool
	Flagged   bool // suspended from automatic updates after a terminal failure

	// metadata taken from the feed document
	Title       string
	Subtitle    string
	Description string
	Language    string
	Copyright   string
	SiteURL     string // canonical link of the document, never used for fetching
	TTL         int    // minutes
	LogoURL     string
	PubDate     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identifier returns a human-readable identifier for logs and messages
func (f *Feed) Identifier() string {
	switch {
	case f.Nickname != "":
		return f.Nickname
	case f.Title != "":
		return f.Title
	default:
		return f.Link
	}
}
