package domain

import "time"

// notification titles with a fixed meaning, error titles are taken from the fetch error kind
const (
	TitleBackOff     = "BackOff"
	TitleFeedUpdated = "FeedUpdated"
)

// Notification is a durable record of an update outcome, routed to the feed owner
type Notification struct {
	ID        int64
	FeedID    int64
	Owner     string
	Title     string
	Message   string
	IsError   bool
	State     EntryState
	CreatedAt time.Time
	UpdatedAt time.Time
}
