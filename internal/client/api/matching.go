package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

func (c *Client) Like(ctx context.Context, userID string) (*domain.LikeResult, error) {
	var result domain.LikeResult
	if err := c.doJSON(ctx, "like", http.MethodPost, "/swipe/"+url.PathEscape(userID)+"/like", nil, nil, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Pass(ctx context.Context, userID string) error {
	return c.doJSON(ctx, "pass", http.MethodPost, "/swipe/"+url.PathEscape(userID)+"/pass", nil, nil, nil, true)
}

// LikesReceived lists users who liked the session user and are still
// waiting for an answer.
func (c *Client) LikesReceived(ctx context.Context, limit, offset int) ([]domain.LikeReceived, error) {
	var resp struct {
		Likes []domain.LikeReceived `json:"likes"`
	}
	if err := c.doJSON(ctx, "likes received", http.MethodGet, "/swipe/likes-received", page(limit, offset), nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Likes, nil
}

func (c *Client) Matches(ctx context.Context, limit, offset int) ([]domain.MatchView, error) {
	var resp struct {
		Matches []domain.MatchView `json:"matches"`
	}
	if err := c.doJSON(ctx, "list matches", http.MethodGet, "/matches", page(limit, offset), nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (c *Client) Unmatch(ctx context.Context, matchID string) error {
	return c.doJSON(ctx, "unmatch", http.MethodDelete, "/matches/"+url.PathEscape(matchID), nil, nil, nil, true)
}

// Notifications lists advisory events. They are hints to refresh, not the
// source of truth for match state.
func (c *Client) Notifications(ctx context.Context, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	q := page(limit, offset)
	if unreadOnly {
		q.Set("unread", "true")
	}
	var resp struct {
		Notifications []*domain.Notification `json:"notifications"`
	}
	if err := c.doJSON(ctx, "list notifications", http.MethodGet, "/notifications", q, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, "mark notification read", http.MethodPost, "/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil, true)
}

func page(limit, offset int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}
