package feed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"go.uber.org/zap"
)

// searchWindow bounds how many profiles are scored per request.
const searchWindow = 500

// CandidateCache stores ranked discovery results per viewer and filter.
type CandidateCache interface {
	Get(ctx context.Context, viewerID, filterKey string) ([]domain.Candidate, bool, error)
	Set(ctx context.Context, viewerID, filterKey string, candidates []domain.Candidate, ttl time.Duration) error
}

type FeedUseCase struct {
	profileRepo  repository.ProfileRepository
	swipeRepo    repository.SwipeRepository
	cache        CandidateCache
	cacheTTL     time.Duration
	defaultLimit int
	now          func() time.Time
	logger       *zap.Logger
}

func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
	cache CandidateCache,
	cacheTTL time.Duration,
	defaultLimit int,
	logger *zap.Logger,
) *FeedUseCase {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &FeedUseCase{
		profileRepo:  profileRepo,
		swipeRepo:    swipeRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		defaultLimit: defaultLimit,
		now:          time.Now,
		logger:       logger.Named("feed"),
	}
}

// Discover returns candidates for the viewer, best match first. Filter
// fields left zero fall back to the viewer's saved preferences.
func (uc *FeedUseCase) Discover(ctx context.Context, viewerID string, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	if filter.Limit <= 0 {
		filter.Limit = uc.defaultLimit
	}

	cacheKey := filter.CacheKey()
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, viewerID, cacheKey)
		if err != nil {
			uc.logger.Warn("discovery cache read failed", zap.String("user_id", viewerID), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	me, err := uc.profileRepo.GetByUserID(ctx, viewerID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, domain.ErrOnboardingIncomplete
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current user profile: %w", err)
	}
	if !me.IsOnboardingComplete {
		return nil, domain.ErrOnboardingIncomplete
	}

	swiped, err := uc.swipeRepo.SwipedUserIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get swiped users: %w", err)
	}

	complete := true
	search := repository.ProfileSearch{
		ExcludeUserIDs:     append(swiped, viewerID),
		Interests:          filter.Interests,
		FaithJourneys:      filter.FaithJourney,
		OnboardingComplete: &complete,
	}
	if len(search.FaithJourneys) == 0 {
		search.FaithJourneys = me.PreferredFaithJourney
	}
	if me.PreferredGender != nil && *me.PreferredGender != "" && *me.PreferredGender != "any" {
		search.Gender = me.PreferredGender
	}

	profiles, err := uc.profileRepo.SearchProfiles(ctx, search, searchWindow, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	minAge, maxAge := preferredAgeRange(me, filter)
	maxDistance := preferredDistance(me, filter)
	now := uc.now()

	candidates := make([]domain.Candidate, 0, len(profiles))
	for _, p := range profiles {
		if p.UserID == viewerID {
			continue
		}
		age := p.Age(now)
		if age < minAge || age > maxAge {
			continue
		}
		if !acceptsGender(p, me) {
			continue
		}
		c := domain.NewCandidate(p, me, now)
		if c.DistanceKm != nil && *c.DistanceKm > float64(maxDistance) {
			continue
		}
		c.CompatibilityScore = int(math.Round(compatibilityScore(me, p, c.DistanceKm, maxDistance)))
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CompatibilityScore > candidates[j].CompatibilityScore
	})
	if len(candidates) > filter.Limit {
		candidates = candidates[:filter.Limit]
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, viewerID, cacheKey, candidates, uc.cacheTTL); err != nil {
			uc.logger.Warn("discovery cache write failed", zap.String("user_id", viewerID), zap.Error(err))
		}
	}

	return candidates, nil
}

func preferredAgeRange(me *domain.Profile, filter domain.CandidateFilter) (int, int) {
	minAge, maxAge := domain.MinAge, domain.MaxAge
	if me.PrefMinAge != nil {
		minAge = *me.PrefMinAge
	}
	if me.PrefMaxAge != nil {
		maxAge = *me.PrefMaxAge
	}
	if filter.MinAge > 0 {
		minAge = filter.MinAge
	}
	if filter.MaxAge > 0 {
		maxAge = filter.MaxAge
	}
	return domain.NormalizeAgeRange(minAge, maxAge)
}

func preferredDistance(me *domain.Profile, filter domain.CandidateFilter) int {
	if filter.MaxDistanceKm > 0 {
		return domain.ClampDistance(filter.MaxDistanceKm)
	}
	if me.PrefMaxDistanceKm != nil {
		return domain.ClampDistance(*me.PrefMaxDistanceKm)
	}
	return domain.MaxDistanceKm
}

// acceptsGender reports whether the candidate is looking for someone of
// the viewer's gender. Unknown values on either side accept.
func acceptsGender(candidate, viewer *domain.Profile) bool {
	if candidate.PreferredGender == nil || viewer.Gender == nil {
		return true
	}
	pref := *candidate.PreferredGender
	return pref == "" || pref == "any" || pref == *viewer.Gender
}

// compatibilityScore calculates a 0-100 score: shared interests 40, faith
// alignment 30, distance 30.
func compatibilityScore(me, candidate *domain.Profile, distanceKm *float64, maxDistance int) float64 {
	score := 0.0

	// Interests: Jaccard index
	interestsScore := 0.0
	mine, theirs := lowerSet(me.Interests), lowerSet(candidate.Interests)
	common := 0
	for k := range theirs {
		if _, ok := mine[k]; ok {
			common++
		}
	}
	if union := len(mine) + len(theirs) - common; union > 0 {
		interestsScore = float64(common) / float64(union)
	}
	score += interestsScore * 40

	// Faith: half for fitting my preferences, half for me fitting theirs
	faithScore := 0.0
	if acceptsFaith(me.PreferredFaithJourney, candidate.FaithJourney) {
		faithScore += 0.5
	}
	if acceptsFaith(candidate.PreferredFaithJourney, me.FaithJourney) {
		faithScore += 0.5
	}
	score += faithScore * 30

	// Distance: linear decay up to the preferred maximum
	distScore := 0.5
	if distanceKm != nil && maxDistance > 0 {
		distScore = math.Max(0, 1.0-(*distanceKm/float64(maxDistance)))
	}
	score += distScore * 30

	return score
}

func acceptsFaith(preferred []string, journey string) bool {
	if len(preferred) == 0 {
		return true
	}
	for _, p := range preferred {
		if p == journey {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}
