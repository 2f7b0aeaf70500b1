package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

func (c *Client) GetMyProfile(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.doJSON(ctx, "get profile", http.MethodGet, "/profile/me", nil, nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// CompleteOnboarding submits a normalized onboarding payload and returns
// the profile the server stored.
func (c *Client) CompleteOnboarding(ctx context.Context, payload *domain.OnboardingPayload) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.doJSON(ctx, "complete onboarding", http.MethodPost, "/profile/complete-onboarding", nil, payload, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update *domain.ProfileUpdate) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.doJSON(ctx, "update profile", http.MethodPut, "/profile/me", nil, update, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfileView is another user's profile as the server presents it to the
// caller.
type ProfileView struct {
	domain.Profile
	Age              int      `json:"age,omitempty"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
	MatchedInterests []string `json:"matched_interests,omitempty"`
}

func (c *Client) GetProfile(ctx context.Context, userID string) (*ProfileView, error) {
	var v ProfileView
	if err := c.doJSON(ctx, "get profile", http.MethodGet, "/profile/"+url.PathEscape(userID), nil, nil, &v, true); err != nil {
		return nil, err
	}
	return &v, nil
}

// BioRequest asks the server for AI bio suggestions.
type BioRequest struct {
	DisplayName   string   `json:"display_name"`
	Interests     []string `json:"interests"`
	FaithJourney  string   `json:"faith_journey,omitempty"`
	FavoriteVerse string   `json:"favorite_verse,omitempty"`
}

// GenerateBio returns bio suggestions keyed by tone.
func (c *Client) GenerateBio(ctx context.Context, req BioRequest) (map[string]string, error) {
	bios := map[string]string{}
	if err := c.doJSON(ctx, "generate bio", http.MethodPost, "/profile/generate-bio", nil, req, &bios, true); err != nil {
		return nil, err
	}
	return bios, nil
}
