package onboarding

import (
	"errors"
	"fmt"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

// Photo is a picked local image waiting for upload.
type Photo = domain.MediaFile

var ErrPhotoIndex = errors.New("photo index out of range")

// Draft is the in-progress onboarding record. Numeric ranges and photos
// are only reachable through methods that keep them within bounds.
type Draft struct {
	DisplayName string
	Birthday    string
	Phone       string
	CountryCode string
	Location    string
	Gender      string

	FaithJourney     string
	ChurchAttendance string
	Denomination     string
	BaptismStatus    string

	Bio           string
	FavoriteVerse string

	Personality       StringSet
	Hobbies           StringSet
	Values            StringSet
	SpiritualGifts    StringSet
	Interests         StringSet
	RelationshipGoals StringSet

	PreferredFaithJourney     StringSet
	PreferredChurchAttendance StringSet
	PreferredDenominations    StringSet
	PreferredValues           StringSet
	PreferredGender           string

	minAge             int
	maxAge             int
	maxDistance        int
	preferredMinHeight int

	photos []Photo
}

// AddInterest adds an interest unless the draft already holds the maximum.
// Re-adding an existing interest is a no-op even when the set is full.
func (d *Draft) AddInterest(v string) error {
	if d.Interests.Has(v) {
		return nil
	}
	if d.Interests.Len() >= domain.MaxInterests {
		return domain.ErrTooManyInterests
	}
	d.Interests.Add(v)
	return nil
}

func (d *Draft) MinAge() int             { return d.minAge }
func (d *Draft) MaxAge() int             { return d.maxAge }
func (d *Draft) MaxDistance() int        { return d.maxDistance }
func (d *Draft) PreferredMinHeight() int { return d.preferredMinHeight }

// SetMinAge clamps v to the age domain; a value <= 0 unsets it. Raising
// the minimum above the maximum drags the maximum up.
func (d *Draft) SetMinAge(v int) {
	if v <= 0 {
		d.minAge = 0
		return
	}
	d.minAge = domain.ClampAge(v)
	if d.maxAge != 0 && d.minAge > d.maxAge {
		d.maxAge = d.minAge
	}
}

// SetMaxAge clamps v to the age domain; a value <= 0 unsets it. Lowering
// the maximum below the minimum drags the minimum down.
func (d *Draft) SetMaxAge(v int) {
	if v <= 0 {
		d.maxAge = 0
		return
	}
	d.maxAge = domain.ClampAge(v)
	if d.minAge != 0 && d.maxAge < d.minAge {
		d.minAge = d.maxAge
	}
}

func (d *Draft) SetMaxDistance(km int) {
	if km <= 0 {
		d.maxDistance = 0
		return
	}
	d.maxDistance = domain.ClampDistance(km)
}

func (d *Draft) SetPreferredMinHeight(cm int) {
	if cm <= 0 {
		d.preferredMinHeight = 0
		return
	}
	d.preferredMinHeight = domain.ClampHeight(cm)
}

// Photos returns the picked photos in upload order.
func (d *Draft) Photos() []Photo {
	return append([]Photo(nil), d.photos...)
}

func (d *Draft) PhotoCount() int { return len(d.photos) }

func (d *Draft) AddPhoto(p Photo) error {
	if len(d.photos) >= domain.MaxPhotos {
		return domain.ErrTooManyPhotos
	}
	if len(p.Data) == 0 {
		return fmt.Errorf("photo %q is empty: %w", p.Filename, domain.ErrInvalidInput)
	}
	if _, ok := domain.PhotoExtension(p.ContentType); !ok {
		return fmt.Errorf("photo %q (%s): %w", p.Filename, p.ContentType, domain.ErrUnsupportedMedia)
	}
	d.photos = append(d.photos, p)
	return nil
}

func (d *Draft) RemovePhoto(i int) error {
	if i < 0 || i >= len(d.photos) {
		return ErrPhotoIndex
	}
	d.photos = append(d.photos[:i:i], d.photos[i+1:]...)
	return nil
}

// MovePhoto moves the photo at from to position to, shifting the others.
// Position 0 is the primary photo.
func (d *Draft) MovePhoto(from, to int) error {
	if from < 0 || from >= len(d.photos) || to < 0 || to >= len(d.photos) {
		return ErrPhotoIndex
	}
	if from == to {
		return nil
	}
	p := d.photos[from]
	rest := append(d.photos[:from:from], d.photos[from+1:]...)
	d.photos = append(rest[:to:to], append([]Photo{p}, rest[to:]...)...)
	return nil
}

// Clone returns a deep copy of the draft.
func (d *Draft) Clone() *Draft {
	c := *d
	for _, s := range []*StringSet{
		&c.Personality, &c.Hobbies, &c.Values, &c.SpiritualGifts, &c.Interests, &c.RelationshipGoals,
		&c.PreferredFaithJourney, &c.PreferredChurchAttendance, &c.PreferredDenominations, &c.PreferredValues,
	} {
		s.items = s.Values()
	}
	if d.photos != nil {
		c.photos = make([]Photo, len(d.photos))
		for i, p := range d.photos {
			p.Data = append([]byte(nil), p.Data...)
			c.photos[i] = p
		}
	}
	return &c
}

// draftFromProfile rebuilds a draft from the server-confirmed profile.
// Photos stay empty: the profile only carries uploaded URLs.
func draftFromProfile(p *domain.Profile) *Draft {
	d := &Draft{
		DisplayName:      p.DisplayName,
		Phone:            deref(p.Phone),
		CountryCode:      deref(p.CountryCode),
		Location:         deref(p.Location),
		Gender:           deref(p.Gender),
		FaithJourney:     p.FaithJourney,
		ChurchAttendance: p.ChurchAttendance,
		Denomination:     deref(p.Denomination),
		BaptismStatus:    deref(p.BaptismStatus),
		Bio:              deref(p.Bio),
		FavoriteVerse:    deref(p.FavoriteVerse),

		Personality:       NewStringSet(p.Personality...),
		Hobbies:           NewStringSet(p.Hobbies...),
		Values:            NewStringSet(p.Values...),
		SpiritualGifts:    NewStringSet(p.SpiritualGifts...),
		Interests:         NewStringSet(p.Interests...),
		RelationshipGoals: NewStringSet(p.RelationshipGoals...),

		PreferredFaithJourney:     NewStringSet(p.PreferredFaithJourney...),
		PreferredChurchAttendance: NewStringSet(p.PreferredChurchAttendance...),
		PreferredDenominations:    NewStringSet(p.PreferredDenominations...),
		PreferredValues:           NewStringSet(p.PreferredValues...),
		PreferredGender:           deref(p.PreferredGender),
	}
	if p.Birthday != nil {
		d.Birthday = p.Birthday.Format(birthdayLayout)
	}
	if p.PrefMinAge != nil {
		d.SetMinAge(*p.PrefMinAge)
	}
	if p.PrefMaxAge != nil {
		d.SetMaxAge(*p.PrefMaxAge)
	}
	if p.PrefMaxDistanceKm != nil {
		d.SetMaxDistance(*p.PrefMaxDistanceKm)
	}
	if p.PrefMinHeightCm != nil {
		d.SetPreferredMinHeight(*p.PrefMinHeightCm)
	}
	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
