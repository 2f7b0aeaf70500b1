package onboarding

import (
	"fmt"
	"strings"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

// BuildPayload turns a draft and the URLs its photos were uploaded to into
// the completion payload. urls[i] belongs to the i-th draft photo and goes
// to slot i+1. Blank optional text is dropped rather than sent empty.
func BuildPayload(d *Draft, urls []string) (*domain.OnboardingPayload, error) {
	if len(urls) != len(d.photos) {
		return nil, fmt.Errorf("got %d photo urls for %d photos: %w", len(urls), len(d.photos), domain.ErrInvalidInput)
	}
	if d.Interests.Len() > domain.MaxInterests {
		return nil, domain.ErrTooManyInterests
	}
	birthday, err := parseBirthday(d.Birthday)
	if err != nil {
		return nil, fmt.Errorf("birthday: %w", domain.ErrInvalidInput)
	}

	slots := make([]domain.PhotoSlot, 0, len(urls))
	for i, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			return nil, fmt.Errorf("photo %d has no url: %w", i+1, domain.ErrInvalidInput)
		}
		slots = append(slots, domain.PhotoSlot{Slot: i + 1, URL: u})
	}

	p := &domain.OnboardingPayload{
		DisplayName: optional(d.DisplayName),
		Birthday:    birthday,
		Gender:      optional(d.Gender),
		Phone:       optional(d.Phone),
		CountryCode: optional(d.CountryCode),
		Location:    strings.TrimSpace(d.Location),

		FaithJourney:      strings.TrimSpace(d.FaithJourney),
		ChurchAttendance:  strings.TrimSpace(d.ChurchAttendance),
		Denomination:      optional(d.Denomination),
		BaptismStatus:     optional(d.BaptismStatus),
		Bio:               optional(d.Bio),
		FavoriteVerse:     optional(d.FavoriteVerse),
		Personality:       d.Personality.Values(),
		Hobbies:           d.Hobbies.Values(),
		Values:            d.Values.Values(),
		SpiritualGifts:    d.SpiritualGifts.Values(),
		Interests:         d.Interests.Values(),
		RelationshipGoals: d.RelationshipGoals.Values(),

		PreferredFaithJourney:     d.PreferredFaithJourney.Values(),
		PreferredChurchAttendance: d.PreferredChurchAttendance.Values(),
		PreferredDenominations:    d.PreferredDenominations.Values(),
		PreferredValues:           d.PreferredValues.Values(),
		PreferredGender:           strings.TrimSpace(d.PreferredGender),
		MinAge:                    d.minAge,
		MaxAge:                    d.maxAge,
		MaxDistance:               d.maxDistance,

		Photos: slots,
	}
	if d.preferredMinHeight > 0 {
		h := d.preferredMinHeight
		p.PreferredMinHeight = &h
	}
	return p, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
