package domain

import (
	"fmt"
	"time"
)

// EntryState is the read state of an entry or notification
type EntryState string

const (
	EntryUnread EntryState = "unread"
	EntryRead   EntryState = "read"
)

// ParseEntryState converts a string to EntryState, rejecting unknown values
func ParseEntryState(s string) (EntryState, error) {
	switch EntryState(s) {
	case EntryUnread, EntryRead:
		return EntryState(s), nil
	default:
		return "", fmt.Errorf("invalid state %q", s)
	}
}

// Entry represents one syndicated item belonging to a feed
type Entry struct {
	ID          int64
	FeedID      int64
	GUID        string
	State       EntryState
	Title       string
	Content     string // sanitized html
	Date        time.Time
	Author      string
	URL         string
	CommentsURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
