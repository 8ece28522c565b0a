package feed

import (
	"time"

	"github.com/samber/lo"

	"github.com/umputun/rssfeeder/pkg/domain"
)

// Reconciler decides which raw entries are new and which replace a stored entry
type Reconciler struct {
	sanitizer *Sanitizer
	now       func() time.Time
}

// NewReconciler makes a reconciler, now is the clock used for undated new entries
func NewReconciler(sanitizer *Sanitizer, now func() time.Time) *Reconciler {
	if now == nil {
		now = time.Now
	}
	return &Reconciler{sanitizer: sanitizer, now: now}
}

// candidate is a raw entry mapped to entry fields, date is nil if the document has none
type candidate struct {
	entry domain.Entry
	date  *time.Time
}

// Reconcile splits raw entries of a feed into entries to create and stored entries to update.
// existing holds stored entries of the feed keyed by guid. An entry is updated only if the
// raw date is strictly newer than the stored one, everything else is left alone.
func (r *Reconciler) Reconcile(feedID int64, existing map[string]domain.Entry, raw []RawEntry) (toCreate, toUpdate []domain.Entry) {
	for _, c := range r.candidates(feedID, raw) {
		stored, found := existing[c.entry.GUID]
		if !found {
			e := c.entry
			e.Date = r.now().UTC()
			if c.date != nil {
				e.Date = c.date.UTC()
			}
			e.State = domain.EntryUnread
			toCreate = append(toCreate, e)
			continue
		}

		if c.date == nil || !c.date.After(stored.Date) {
			continue
		}
		e := c.entry
		e.ID = stored.ID
		e.CreatedAt = stored.CreatedAt
		e.Date = c.date.UTC()
		e.State = domain.EntryUnread
		toUpdate = append(toUpdate, e)
	}
	return toCreate, toUpdate
}

// GUIDs returns the identities of raw entries, as used for the existing entries lookup
func (r *Reconciler) GUIDs(raw []RawEntry) []string {
	ids := lo.FilterMap(raw, func(e RawEntry, _ int) (string, bool) {
		guid := entryGUID(e)
		return guid, guid != ""
	})
	return lo.Uniq(ids)
}

// candidates maps raw entries and collapses repeated guids, keeping the newest version
func (r *Reconciler) candidates(feedID int64, raw []RawEntry) []candidate {
	res := make([]candidate, 0, len(raw))
	pos := make(map[string]int, len(raw))
	for _, re := range raw {
		guid := entryGUID(re)
		if guid == "" {
			continue
		}
		c := candidate{
			entry: domain.Entry{
				FeedID:      feedID,
				GUID:        guid,
				Title:       re.Title,
				Content:     r.content(re),
				Author:      re.Author,
				URL:         re.Link,
				CommentsURL: re.CommentsURL,
			},
			date: entryDate(re),
		}

		if i, dup := pos[guid]; dup {
			if newer(c.date, res[i].date) {
				res[i] = c
			}
			continue
		}
		pos[guid] = len(res)
		res = append(res, c)
	}
	return res
}

func (r *Reconciler) content(re RawEntry) string {
	html := re.Content
	if html == "" {
		html = re.Description
	}
	if r.sanitizer == nil {
		return html
	}
	return r.sanitizer.Sanitize(html)
}

// entryGUID is the entry identity, the link if the document has no guid
func entryGUID(re RawEntry) string {
	if re.GUID != "" {
		return re.GUID
	}
	return re.Link
}

// entryDate prefers the updated date over the published one
func entryDate(re RawEntry) *time.Time {
	if re.Updated != nil {
		return re.Updated
	}
	return re.Published
}

// newer reports whether a is after b, any date is newer than none
func newer(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	return b == nil || a.After(*b)
}
