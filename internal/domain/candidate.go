package domain

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Candidate is a read-only snapshot of another user offered for a like or
// pass decision.
type Candidate struct {
	ID                 string   `json:"id,omitempty"`
	LegacyID           string   `json:"_id,omitempty"`
	DisplayName        string   `json:"display_name"`
	Age                int      `json:"age"`
	Gender             *string  `json:"gender,omitempty"`
	Photos             []string `json:"photos"`
	Bio                *string  `json:"bio,omitempty"`
	Location           *string  `json:"location,omitempty"`
	FaithJourney       string   `json:"faith_journey"`
	ChurchAttendance   string   `json:"church_attendance"`
	Denomination       *string  `json:"denomination,omitempty"`
	FavoriteVerse      *string  `json:"favorite_verse,omitempty"`
	Interests          []string `json:"interests"`
	MatchedInterests   []string `json:"matched_interests"`
	DistanceKm         *float64 `json:"distance_km,omitempty"`
	CompatibilityScore int      `json:"compatibility_score"`
}

// Key returns the identity key of the candidate: id, falling back to _id.
// An empty key means the candidate cannot be addressed.
func (c *Candidate) Key() string {
	if id := strings.TrimSpace(c.ID); id != "" {
		return id
	}
	return strings.TrimSpace(c.LegacyID)
}

func (c *Candidate) PrimaryPhoto() string {
	if len(c.Photos) == 0 {
		return ""
	}
	return c.Photos[0]
}

// NewCandidate builds the card of p as seen by viewer. Viewer may be nil.
func NewCandidate(p *Profile, viewer *Profile, now time.Time) Candidate {
	c := Candidate{
		ID:               p.UserID,
		DisplayName:      p.DisplayName,
		Age:              p.Age(now),
		Gender:           p.Gender,
		Photos:           append([]string{}, p.Photos...),
		Bio:              p.Bio,
		Location:         p.Location,
		FaithJourney:     p.FaithJourney,
		ChurchAttendance: p.ChurchAttendance,
		Denomination:     p.Denomination,
		FavoriteVerse:    p.FavoriteVerse,
		Interests:        append([]string{}, p.Interests...),
		MatchedInterests: []string{},
	}
	if viewer != nil {
		c.MatchedInterests = IntersectInterests(viewer.Interests, p.Interests)
		c.DistanceKm = ProfileDistance(viewer, p)
	}
	return c
}

// IntersectInterests returns the entries of theirs that also appear in mine,
// in the order they appear in theirs. Comparison is case-insensitive.
func IntersectInterests(mine, theirs []string) []string {
	set := make(map[string]struct{}, len(mine))
	for _, m := range mine {
		set[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	out := make([]string, 0)
	for _, t := range theirs {
		if _, ok := set[strings.ToLower(strings.TrimSpace(t))]; ok {
			out = append(out, t)
		}
	}
	return out
}

// CandidateFilter narrows discovery results. Zero values mean "use the
// viewer's saved preferences".
type CandidateFilter struct {
	Interests     []string `form:"interests" json:"interests,omitempty"`
	FaithJourney  []string `form:"faith_journey" json:"faith_journey,omitempty" binding:"omitempty,dive,faith_journey"`
	MinAge        int      `form:"min_age" json:"min_age,omitempty" binding:"omitempty,min=18,max=99"`
	MaxAge        int      `form:"max_age" json:"max_age,omitempty" binding:"omitempty,min=18,max=99"`
	MaxDistanceKm int      `form:"max_distance_km" json:"max_distance_km,omitempty" binding:"omitempty,min=1,max=500"`
	Limit         int      `form:"limit" json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
}

// Query encodes the filter as URL query parameters.
func (f CandidateFilter) Query() url.Values {
	q := url.Values{}
	for _, i := range f.Interests {
		q.Add("interests", i)
	}
	for _, fj := range f.FaithJourney {
		q.Add("faith_journey", fj)
	}
	if f.MinAge > 0 {
		q.Set("min_age", strconv.Itoa(f.MinAge))
	}
	if f.MaxAge > 0 {
		q.Set("max_age", strconv.Itoa(f.MaxAge))
	}
	if f.MaxDistanceKm > 0 {
		q.Set("max_distance_km", strconv.Itoa(f.MaxDistanceKm))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// CacheKey is a stable representation of the filter, independent of the
// order in which list values were given.
func (f CandidateFilter) CacheKey() string {
	interests := append([]string(nil), f.Interests...)
	journeys := append([]string(nil), f.FaithJourney...)
	sort.Strings(interests)
	sort.Strings(journeys)
	return strings.Join([]string{
		strings.ToLower(strings.Join(interests, ",")),
		strings.Join(journeys, ","),
		strconv.Itoa(f.MinAge),
		strconv.Itoa(f.MaxAge),
		strconv.Itoa(f.MaxDistanceKm),
		strconv.Itoa(f.Limit),
	}, "|")
}
