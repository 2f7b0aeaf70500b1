package api

import (
	"context"
	"net/http"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

// FetchCandidates returns the ranked discovery feed for the session user.
func (c *Client) FetchCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	var resp struct {
		Candidates []domain.Candidate `json:"candidates"`
	}
	if err := c.doJSON(ctx, "discover", http.MethodGet, "/discover", filter.Query(), nil, &resp, true); err != nil {
		return nil, err
	}
	if resp.Candidates == nil {
		return []domain.Candidate{}, nil
	}
	return resp.Candidates, nil
}
