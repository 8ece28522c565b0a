package feed

import (
	"fmt"
	"time"
)

// Kind classifies the outcome of a single fetch or a terminal fetch failure
type Kind int

// fetch outcome kinds
const (
	KindSuccess Kind = iota
	KindRedirect
	KindTemporary
	KindGone
	KindMalformed
	KindUnrecognized
	KindRedirectLoop
	KindDuplicateLink
)

// String returns the kind name, used as the title of error notifications
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "Success"
	case KindRedirect:
		return "Redirect"
	case KindTemporary:
		return "Temporary"
	case KindGone:
		return "Gone"
	case KindMalformed:
		return "Malformed"
	case KindUnrecognized:
		return "Unrecognized"
	case KindRedirectLoop:
		return "RedirectLoop"
	case KindDuplicateLink:
		return "DuplicateLink"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the outcome of one HTTP fetch and parse
type Result struct {
	Kind     Kind
	Status   int    // http status, zero for network errors
	URL      string // requested url
	Location string // absolute redirect target for KindRedirect
	Feed     *ParsedFeed
	Err      error
}

// ParsedFeed is a feed document reduced to the fields the engine stores
type ParsedFeed struct {
	Title       string
	Subtitle    string
	Description string
	Link        string // site link declared by the document
	Language    string
	Copyright   string
	TTL         int // minutes
	LogoURL     string
	Updated     *time.Time
	Published   *time.Time
	Entries     []RawEntry
}

// RawEntry is an entry as it appears in the document, before reconciliation
type RawEntry struct {
	GUID        string
	Title       string
	Content     string
	Description string
	Link        string
	Author      string
	CommentsURL string
	Updated     *time.Time
	Published   *time.Time
}

// FetchError is a terminal fetch failure returned by RetryFetcher
type FetchError struct {
	Kind     Kind
	Status   int
	URL      string
	Attempts int
	Err      error
	Partial  *ParsedFeed // parsed but invalid document, if any
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s fetch failure for %s after %d attempt(s)", e.Kind, e.URL, e.Attempts)
	if e.Status != 0 {
		msg += fmt.Sprintf(", status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
