package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/samber/lo"

	"github.com/umputun/rssfeeder/pkg/domain"
)

type feedResponse struct {
	ID          int64      `json:"id"`
	Link        string     `json:"link"`
	Nickname    string     `json:"nickname,omitempty"`
	Owner       string     `json:"owner"`
	Following   bool       `json:"following"`
	Flagged     bool       `json:"flagged"`
	Title       string     `json:"title,omitempty"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Description string     `json:"description,omitempty"`
	Language    string     `json:"language,omitempty"`
	Copyright   string     `json:"copyright,omitempty"`
	SiteURL     string     `json:"site_url,omitempty"`
	TTL         int        `json:"ttl,omitempty"`
	LogoURL     string     `json:"logo_url,omitempty"`
	PubDate     *time.Time `json:"pub_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type entryResponse struct {
	ID          int64     `json:"id"`
	FeedID      int64     `json:"feed_id"`
	GUID        string    `json:"guid"`
	State       string    `json:"state"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Date        time.Time `json:"date"`
	Author      string    `json:"author,omitempty"`
	URL         string    `json:"url,omitempty"`
	CommentsURL string    `json:"comments_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type notificationResponse struct {
	ID        int64     `json:"id"`
	FeedID    int64     `json:"feed_id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsError   bool      `json:"is_error"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type taskResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
	RunAt     time.Time `json:"run_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type createFeedRequest struct {
	Link     string `json:"link"`
	Nickname string `json:"nickname"`
	Owner    string `json:"owner"`
}

// patchFeedRequest holds caller-editable fields, nil fields are left as is
type patchFeedRequest struct {
	Link      *string `json:"link"`
	Nickname  *string `json:"nickname"`
	Following *bool   `json:"following"`
	Flagged   *bool   `json:"flagged"`
}

type stateRequest struct {
	State string `json:"state"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// listFeedsHandler returns feeds, optionally limited to one owner
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.store.GetFeeds(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		lgr.Printf("[ERROR] failed to get feeds: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, lo.Map(feeds, func(f domain.Feed, _ int) feedResponse { return toFeedResponse(&f) }))
}

// createFeedHandler registers a feed and submits its first update
func (s *Server) createFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req createFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	req.Owner = strings.TrimSpace(req.Owner)
	if req.Owner == "" {
		RenderError(w, r, errors.New("owner is required"), http.StatusBadRequest)
		return
	}
	if err := validateLink(req.Link); err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	feed := &domain.Feed{Link: req.Link, Nickname: req.Nickname, Owner: req.Owner, Following: true}
	if err := s.store.CreateFeed(r.Context(), feed); err != nil {
		s.renderStoreError(w, r, "create feed", err)
		return
	}

	resp := struct {
		feedResponse
		TaskID string `json:"task_id,omitempty"`
	}{feedResponse: toFeedResponse(feed)}

	// the feed is stored even if the first update can't be queued, it will be picked by the schedule
	taskID, err := s.scheduler.SubmitUpdate(r.Context(), feed.ID)
	if err != nil {
		lgr.Printf("[WARN] failed to submit update of new feed %d: %v", feed.ID, err)
	}
	resp.TaskID = taskID
	RenderJSON(w, r, http.StatusCreated, resp)
}

// getFeedHandler returns a single feed
func (s *Server) getFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	feed, err := s.store.GetFeed(r.Context(), id)
	if err != nil {
		s.renderStoreError(w, r, "get feed", err)
		return
	}
	RenderJSON(w, r, http.StatusOK, toFeedResponse(feed))
}

// patchFeedHandler changes nickname, link, following or flagged state of a feed.
// Setting flagged to false is the manual reset returning the feed to periodic updates.
func (s *Server) patchFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req patchFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.Link != nil {
		if err := validateLink(*req.Link); err != nil {
			RenderError(w, r, err, http.StatusBadRequest)
			return
		}
	}

	feed, err := s.store.GetFeed(r.Context(), id)
	if err != nil {
		s.renderStoreError(w, r, "get feed", err)
		return
	}
	feed.Link = lo.FromPtrOr(req.Link, feed.Link)
	feed.Nickname = lo.FromPtrOr(req.Nickname, feed.Nickname)
	feed.Following = lo.FromPtrOr(req.Following, feed.Following)
	feed.Flagged = lo.FromPtrOr(req.Flagged, feed.Flagged)

	if err := s.store.UpdateFeedSettings(r.Context(), feed); err != nil {
		s.renderStoreError(w, r, "update feed", err)
		return
	}
	RenderJSON(w, r, http.StatusOK, toFeedResponse(feed))
}

// deleteFeedHandler removes a feed with its entries and notifications
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteFeed(r.Context(), id); err != nil {
		s.renderStoreError(w, r, "delete feed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateFeedHandler submits an update of the feed, flagged feeds included
func (s *Server) updateFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := s.store.GetFeed(r.Context(), id); err != nil {
		s.renderStoreError(w, r, "get feed", err)
		return
	}
	taskID, err := s.scheduler.SubmitUpdate(r.Context(), id)
	if err != nil {
		lgr.Printf("[ERROR] failed to submit update of feed %d: %v", id, err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusAccepted, map[string]string{"task_id": taskID})
}

// listEntriesHandler returns entries of a feed, optionally filtered by state
func (s *Server) listEntriesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	state, ok := queryState(w, r)
	if !ok {
		return
	}
	entries, err := s.store.GetEntries(r.Context(), id, state)
	if err != nil {
		s.renderStoreError(w, r, "get entries", err)
		return
	}
	RenderJSON(w, r, http.StatusOK, lo.Map(entries, func(e domain.Entry, _ int) entryResponse { return toEntryResponse(&e) }))
}

// entryStateHandler marks an entry read or unread
func (s *Server) entryStateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	state, ok := bodyState(w, r)
	if !ok {
		return
	}
	if err := s.store.SetEntryState(r.Context(), id, state); err != nil {
		s.renderStoreError(w, r, "set entry state", err)
		return
	}
	RenderJSON(w, r, http.StatusOK, map[string]any{"id": id, "state": state})
}

// listNotificationsHandler returns notifications filtered by owner and state
func (s *Server) listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	state, ok := queryState(w, r)
	if !ok {
		return
	}
	notes, err := s.store.GetNotifications(r.Context(), r.URL.Query().Get("owner"), state)
	if err != nil {
		s.renderStoreError(w, r, "get notifications", err)
		return
	}
	RenderJSON(w, r, http.StatusOK, lo.Map(notes, func(n domain.Notification, _ int) notificationResponse {
		return toNotificationResponse(&n)
	}))
}

// notificationStateHandler marks a notification read or unread
func (s *Server) notificationStateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	state, ok := bodyState(w, r)
	if !ok {
		return
	}
	if err := s.store.SetNotificationState(r.Context(), id, state); err != nil {
		s.renderStoreError(w, r, "set notification state", err)
		return
	}
	RenderJSON(w, r, http.StatusOK, map[string]any{"id": id, "state": state})
}

// taskHandler returns the state of a queued task
func (s *Server) taskHandler(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		s.renderStoreError(w, r, "get task", err)
		return
	}
	RenderJSON(w, r, http.StatusOK, taskResponse{
		ID:        task.ID,
		Name:      task.Name,
		State:     string(task.State),
		Attempts:  task.Attempts,
		LastError: task.LastError,
		RunAt:     task.RunAt,
		UpdatedAt: task.UpdatedAt,
	})
}

// renderStoreError maps storage errors to http status codes
func (s *Server) renderStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		RenderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, domain.ErrDuplicate):
		RenderError(w, r, err, http.StatusConflict)
	default:
		lgr.Printf("[ERROR] failed to %s: %v", op, err)
		RenderError(w, r, err, http.StatusInternalServerError)
	}
}

// pathID parses the id path value, rendering bad request on failure
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		RenderError(w, r, fmt.Errorf("invalid id %q", r.PathValue("id")), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// queryState parses the optional state query parameter
func queryState(w http.ResponseWriter, r *http.Request) (domain.EntryState, bool) {
	val := r.URL.Query().Get("state")
	if val == "" {
		return "", true
	}
	state, err := domain.ParseEntryState(val)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return "", false
	}
	return state, true
}

// bodyState parses {"state": "read|unread"} request body
func bodyState(w http.ResponseWriter, r *http.Request) (domain.EntryState, bool) {
	var req stateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return "", false
	}
	state, err := domain.ParseEntryState(req.State)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return "", false
	}
	return state, true
}

// validateLink accepts absolute http and https urls only
func validateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid feed link %q", link)
	}
	return nil
}

func toFeedResponse(f *domain.Feed) feedResponse {
	return feedResponse{
		ID:          f.ID,
		Link:        f.Link,
		Nickname:    f.Nickname,
		Owner:       f.Owner,
		Following:   f.Following,
		Flagged:     f.Flagged,
		Title:       f.Title,
		Subtitle:    f.Subtitle,
		Description: f.Description,
		Language:    f.Language,
		Copyright:   f.Copyright,
		SiteURL:     f.SiteURL,
		TTL:         f.TTL,
		LogoURL:     f.LogoURL,
		PubDate:     f.PubDate,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func toEntryResponse(e *domain.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		FeedID:      e.FeedID,
		GUID:        e.GUID,
		State:       string(e.State),
		Title:       e.Title,
		Content:     e.Content,
		Date:        e.Date,
		Author:      e.Author,
		URL:         e.URL,
		CommentsURL: e.CommentsURL,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		FeedID:    n.FeedID,
		Owner:     n.Owner,
		Title:     n.Title,
		Message:   n.Message,
		IsError:   n.IsError,
		State:     string(n.State),
		CreatedAt: n.CreatedAt,
	}
}
