package profile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"go.uber.org/zap"
)

// BioGenerator produces short bio suggestions keyed by style.
type BioGenerator interface {
	GenerateBio(ctx context.Context, name string, interests []string, faithJourney, favoriteVerse string) (map[string]string, error)
}

// CacheInvalidator drops cached discovery results of a viewer.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, viewerID string) error
}

var ErrBioUnavailable = errors.New("bio generation is not configured")

type ProfileUseCase struct {
	profileRepo  repository.ProfileRepository
	userRepo     repository.UserRepository
	bioGenerator BioGenerator
	cache        CacheInvalidator
	now          func() time.Time
	logger       *zap.Logger
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	bioGenerator BioGenerator,
	cache CacheInvalidator,
	logger *zap.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		bioGenerator: bioGenerator,
		cache:        cache,
		now:          time.Now,
		logger:       logger.Named("profile"),
	}
}

// GenerateBioRequest represents request to generate bio
type GenerateBioRequest struct {
	DisplayName   string   `json:"display_name" binding:"required,min=2,max=100"`
	Interests     []string `json:"interests" binding:"required,min=1,max=10"`
	FaithJourney  string   `json:"faith_journey" binding:"omitempty,faith_journey"`
	FavoriteVerse string   `json:"favorite_verse" binding:"omitempty,max=300"`
}

// GenerateBio generates creative bios
func (uc *ProfileUseCase) GenerateBio(ctx context.Context, req *GenerateBioRequest) (map[string]string, error) {
	if uc.bioGenerator == nil {
		return nil, ErrBioUnavailable
	}
	return uc.bioGenerator.GenerateBio(ctx, req.DisplayName, req.Interests, req.FaithJourney, req.FavoriteVerse)
}

// ProfileResponse is a profile with fields computed for the viewer.
type ProfileResponse struct {
	*domain.Profile
	Age              int      `json:"age,omitempty"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
	MatchedInterests []string `json:"matched_interests,omitempty"`
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// GetProfileByUserID returns the profile of target with age, distance and
// shared interests computed against viewerID when it has a profile.
func (uc *ProfileUseCase) GetProfileByUserID(ctx context.Context, targetUserID, viewerID string) (*ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	response := &ProfileResponse{
		Profile: profile,
		Age:     profile.Age(uc.now()),
	}

	if viewerID != "" && viewerID != targetUserID {
		viewer, err := uc.profileRepo.GetByUserID(ctx, viewerID)
		if err == nil {
			response.DistanceKm = domain.ProfileDistance(viewer, profile)
			response.MatchedInterests = domain.IntersectInterests(viewer.Interests, profile.Interests)
		} else if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("failed to load viewer profile: %w", err)
		}
	}

	return response, nil
}

// CompleteOnboarding stores the onboarding payload as the user's profile.
// An unfinished profile is overwritten; a finished one is rejected.
func (uc *ProfileUseCase) CompleteOnboarding(ctx context.Context, userID string, payload *domain.OnboardingPayload) (*domain.Profile, error) {
	if domain.AgeOn(payload.Birthday, uc.now()) < domain.MinAge {
		return nil, fmt.Errorf("%w: must be at least %d years old", domain.ErrInvalidInput, domain.MinAge)
	}
	photos, err := orderedPhotos(payload.Photos)
	if err != nil {
		return nil, err
	}

	existing, err := uc.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil && existing.IsOnboardingComplete:
		return nil, domain.ErrProfileAlreadyExists
	case err != nil && !errors.Is(err, domain.ErrProfileNotFound):
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	displayName := ""
	if payload.DisplayName != nil {
		displayName = strings.TrimSpace(*payload.DisplayName)
	}
	if displayName == "" {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		displayName = user.DisplayName
	}

	minAge, maxAge := domain.NormalizeAgeRange(payload.MinAge, payload.MaxAge)
	maxDistance := domain.ClampDistance(payload.MaxDistance)
	birthday := payload.Birthday
	preferredGender := payload.PreferredGender

	profile := &domain.Profile{
		UserID:                    userID,
		DisplayName:               displayName,
		Birthday:                  &birthday,
		Gender:                    payload.Gender,
		Phone:                     payload.Phone,
		CountryCode:               payload.CountryCode,
		Location:                  &payload.Location,
		LocationLat:               payload.LocationLat,
		LocationLon:               payload.LocationLon,
		FaithJourney:              payload.FaithJourney,
		ChurchAttendance:          payload.ChurchAttendance,
		Denomination:              payload.Denomination,
		BaptismStatus:             payload.BaptismStatus,
		Bio:                       payload.Bio,
		FavoriteVerse:             payload.FavoriteVerse,
		Personality:               payload.Personality,
		Hobbies:                   payload.Hobbies,
		Values:                    payload.Values,
		SpiritualGifts:            payload.SpiritualGifts,
		Interests:                 payload.Interests,
		RelationshipGoals:         payload.RelationshipGoals,
		PreferredFaithJourney:     payload.PreferredFaithJourney,
		PreferredChurchAttendance: payload.PreferredChurchAttendance,
		PreferredDenominations:    payload.PreferredDenominations,
		PreferredValues:           payload.PreferredValues,
		PreferredGender:           &preferredGender,
		PrefMinAge:                &minAge,
		PrefMaxAge:                &maxAge,
		PrefMaxDistanceKm:         &maxDistance,
		Photos:                    photos,
		IsOnboardingComplete:      true,
	}
	if payload.PreferredMinHeight != nil {
		h := domain.ClampHeight(*payload.PreferredMinHeight)
		profile.PrefMinHeightCm = &h
	}

	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		err = uc.profileRepo.Update(ctx, profile)
	} else {
		err = uc.profileRepo.Create(ctx, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	uc.logger.Info("onboarding completed", zap.String("user_id", userID), zap.Int("photos", len(photos)))
	return profile, nil
}

// orderedPhotos sorts slots and requires them to be exactly 1..N.
func orderedPhotos(slots []domain.PhotoSlot) ([]string, error) {
	if len(slots) < domain.MinPhotos {
		return nil, domain.ErrTooFewPhotos
	}
	if len(slots) > domain.MaxPhotos {
		return nil, domain.ErrTooManyPhotos
	}
	sorted := append([]domain.PhotoSlot(nil), slots...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slot < sorted[j].Slot })

	urls := make([]string, len(sorted))
	for i, s := range sorted {
		if s.Slot != i+1 {
			return nil, fmt.Errorf("%w: photo slots must be 1..%d", domain.ErrInvalidInput, len(sorted))
		}
		urls[i] = s.URL
	}
	return urls, nil
}

// UpdateProfile applies a partial edit. Ranges are clamped to the same
// bounds onboarding uses and the age range is kept ordered.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, req *domain.ProfileUpdate) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.FavoriteVerse != nil {
		profile.FavoriteVerse = req.FavoriteVerse
	}
	if req.Location != nil {
		profile.Location = req.Location
	}
	if req.LocationLat != nil {
		profile.LocationLat = req.LocationLat
	}
	if req.LocationLon != nil {
		profile.LocationLon = req.LocationLon
	}
	if req.Denomination != nil {
		profile.Denomination = req.Denomination
	}
	if req.FaithJourney != nil {
		profile.FaithJourney = *req.FaithJourney
	}
	if req.ChurchAttendance != nil {
		profile.ChurchAttendance = *req.ChurchAttendance
	}
	if req.Interests != nil {
		if len(*req.Interests) > domain.MaxInterests {
			return nil, domain.ErrTooManyInterests
		}
		profile.Interests = *req.Interests
	}
	if req.Hobbies != nil {
		profile.Hobbies = *req.Hobbies
	}
	if req.Values != nil {
		profile.Values = *req.Values
	}
	if req.Photos != nil {
		switch n := len(*req.Photos); {
		case n < domain.MinPhotos:
			return nil, domain.ErrTooFewPhotos
		case n > domain.MaxPhotos:
			return nil, domain.ErrTooManyPhotos
		}
		profile.Photos = *req.Photos
	}
	if req.PreferredGender != nil {
		profile.PreferredGender = req.PreferredGender
	}

	if req.PrefMinAge != nil || req.PrefMaxAge != nil {
		minAge, maxAge := domain.MinAge, domain.MaxAge
		if profile.PrefMinAge != nil {
			minAge = *profile.PrefMinAge
		}
		if profile.PrefMaxAge != nil {
			maxAge = *profile.PrefMaxAge
		}
		if req.PrefMinAge != nil {
			minAge = domain.ClampAge(*req.PrefMinAge)
			if minAge > maxAge {
				maxAge = minAge
			}
		}
		if req.PrefMaxAge != nil {
			maxAge = domain.ClampAge(*req.PrefMaxAge)
			if maxAge < minAge {
				minAge = maxAge
			}
		}
		profile.PrefMinAge = &minAge
		profile.PrefMaxAge = &maxAge
	}
	if req.PrefMaxDistanceKm != nil {
		d := domain.ClampDistance(*req.PrefMaxDistanceKm)
		profile.PrefMaxDistanceKm = &d
	}
	if req.PrefMinHeightCm != nil {
		h := domain.ClampHeight(*req.PrefMinHeightCm)
		profile.PrefMinHeightCm = &h
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, userID); err != nil {
			uc.logger.Warn("discovery cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return profile, nil
}
