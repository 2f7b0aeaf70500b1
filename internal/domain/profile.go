package domain

import "time"

type FaithJourney string

const (
	FaithExploring   FaithJourney = "exploring"
	FaithNewBeliever FaithJourney = "new_believer"
	FaithGrowing     FaithJourney = "growing"
	FaithMature      FaithJourney = "mature"
	FaithLeader      FaithJourney = "leader"
)

var FaithJourneys = []FaithJourney{FaithExploring, FaithNewBeliever, FaithGrowing, FaithMature, FaithLeader}

type ChurchAttendance string

const (
	AttendanceWeekly       ChurchAttendance = "weekly"
	AttendanceMonthly      ChurchAttendance = "monthly"
	AttendanceOccasionally ChurchAttendance = "occasionally"
	AttendanceHolidays     ChurchAttendance = "holidays"
	AttendanceRarely       ChurchAttendance = "rarely"
)

var ChurchAttendances = []ChurchAttendance{AttendanceWeekly, AttendanceMonthly, AttendanceOccasionally, AttendanceHolidays, AttendanceRarely}

func IsFaithJourney(v string) bool {
	for _, fj := range FaithJourneys {
		if string(fj) == v {
			return true
		}
	}
	return false
}

func IsChurchAttendance(v string) bool {
	for _, ca := range ChurchAttendances {
		if string(ca) == v {
			return true
		}
	}
	return false
}

type Profile struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	DisplayName string     `json:"display_name"`
	Birthday    *time.Time `json:"birthday"`
	Gender      *string    `json:"gender"`
	Phone       *string    `json:"phone,omitempty"`
	CountryCode *string    `json:"country_code,omitempty"`
	Location    *string    `json:"location"`
	LocationLat *float64   `json:"location_lat"`
	LocationLon *float64   `json:"location_lon"`

	FaithJourney      string   `json:"faith_journey"`
	ChurchAttendance  string   `json:"church_attendance"`
	Denomination      *string  `json:"denomination"`
	BaptismStatus     *string  `json:"baptism_status"`
	Bio               *string  `json:"bio"`
	FavoriteVerse     *string  `json:"favorite_verse"`
	Personality       []string `json:"personality"`
	Hobbies           []string `json:"hobbies"`
	Values            []string `json:"values"`
	SpiritualGifts    []string `json:"spiritual_gifts"`
	Interests         []string `json:"interests"`
	RelationshipGoals []string `json:"relationship_goals"`

	PreferredFaithJourney     []string `json:"preferred_faith_journey"`
	PreferredChurchAttendance []string `json:"preferred_church_attendance"`
	PreferredDenominations    []string `json:"preferred_denominations"`
	PreferredValues           []string `json:"preferred_values"`
	PreferredGender           *string  `json:"preferred_gender"`
	PrefMinAge                *int     `json:"pref_min_age"`
	PrefMaxAge                *int     `json:"pref_max_age"`
	PrefMaxDistanceKm         *int     `json:"pref_max_distance_km"`
	PrefMinHeightCm           *int     `json:"pref_min_height_cm"`

	Photos               []string  `json:"photos"`
	IsOnboardingComplete bool      `json:"is_onboarding_complete"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Age returns the full years between the birthday and now, or 0 when the
// birthday is unknown.
func (p *Profile) Age(now time.Time) int {
	if p.Birthday == nil {
		return 0
	}
	return AgeOn(*p.Birthday, now)
}

func AgeOn(birthday, now time.Time) int {
	years := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() || (now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		years--
	}
	return years
}

// PrimaryPhoto returns the first photo URL, or "" when none is set.
func (p *Profile) PrimaryPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0]
}

// PhotoSlot binds an uploaded photo URL to a fixed profile slot (1-based).
type PhotoSlot struct {
	Slot int    `json:"slot" binding:"min=1,max=6"`
	URL  string `json:"url" binding:"required,url"`
}

// OnboardingPayload is the normalized body of POST /profile/complete-onboarding.
// Optional fields are nil when the user left them blank.
type OnboardingPayload struct {
	DisplayName *string   `json:"display_name,omitempty" binding:"omitempty,min=2,max=100"`
	Birthday    time.Time `json:"birthday" binding:"required"`
	Gender      *string   `json:"gender,omitempty" binding:"omitempty,oneof=male female"`
	Phone       *string   `json:"phone,omitempty" binding:"omitempty,max=32"`
	CountryCode *string   `json:"country_code,omitempty" binding:"omitempty,max=8"`
	Location    string    `json:"location" binding:"required,max=200"`
	LocationLat *float64  `json:"location_lat,omitempty" binding:"omitempty,min=-90,max=90"`
	LocationLon *float64  `json:"location_lon,omitempty" binding:"omitempty,min=-180,max=180"`

	FaithJourney      string   `json:"faith_journey" binding:"required,faith_journey"`
	ChurchAttendance  string   `json:"church_attendance" binding:"required,church_attendance"`
	Denomination      *string  `json:"denomination,omitempty" binding:"omitempty,max=100"`
	BaptismStatus     *string  `json:"baptism_status,omitempty" binding:"omitempty,max=50"`
	Bio               *string  `json:"bio,omitempty" binding:"omitempty,max=500"`
	FavoriteVerse     *string  `json:"favorite_verse,omitempty" binding:"omitempty,max=300"`
	Personality       []string `json:"personality,omitempty" binding:"omitempty,dive,required"`
	Hobbies           []string `json:"hobbies,omitempty" binding:"omitempty,dive,required"`
	Values            []string `json:"values,omitempty" binding:"omitempty,dive,required"`
	SpiritualGifts    []string `json:"spiritual_gifts,omitempty" binding:"omitempty,dive,required"`
	Interests         []string `json:"interests" binding:"required,min=1,max=10,dive,required"`
	RelationshipGoals []string `json:"relationship_goals" binding:"required,min=1,dive,required"`

	PreferredFaithJourney     []string `json:"preferred_faith_journey" binding:"required,min=1,dive,faith_journey"`
	PreferredChurchAttendance []string `json:"preferred_church_attendance,omitempty" binding:"omitempty,dive,church_attendance"`
	PreferredDenominations    []string `json:"preferred_denominations,omitempty" binding:"omitempty,dive,required"`
	PreferredValues           []string `json:"preferred_values,omitempty" binding:"omitempty,dive,required"`
	PreferredGender           string   `json:"preferred_gender" binding:"required,oneof=male female any"`
	MinAge                    int      `json:"min_age" binding:"min=18,max=99"`
	MaxAge                    int      `json:"max_age" binding:"min=18,max=99,gtefield=MinAge"`
	MaxDistance               int      `json:"max_distance" binding:"min=1,max=500"`
	PreferredMinHeight        *int     `json:"preferred_min_height,omitempty" binding:"omitempty,min=120,max=220"`

	Photos []PhotoSlot `json:"photos" binding:"required,min=2,max=6,dive"`
}

// ProfileUpdate is a partial profile edit. Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName       *string   `json:"display_name,omitempty" binding:"omitempty,min=2,max=100"`
	Bio               *string   `json:"bio,omitempty" binding:"omitempty,max=500"`
	FavoriteVerse     *string   `json:"favorite_verse,omitempty" binding:"omitempty,max=300"`
	Location          *string   `json:"location,omitempty" binding:"omitempty,max=200"`
	LocationLat       *float64  `json:"location_lat,omitempty" binding:"omitempty,min=-90,max=90"`
	LocationLon       *float64  `json:"location_lon,omitempty" binding:"omitempty,min=-180,max=180"`
	Denomination      *string   `json:"denomination,omitempty" binding:"omitempty,max=100"`
	FaithJourney      *string   `json:"faith_journey,omitempty" binding:"omitempty,faith_journey"`
	ChurchAttendance  *string   `json:"church_attendance,omitempty" binding:"omitempty,church_attendance"`
	Interests         *[]string `json:"interests,omitempty" binding:"omitempty,max=10"`
	Hobbies           *[]string `json:"hobbies,omitempty"`
	Values            *[]string `json:"values,omitempty"`
	Photos            *[]string `json:"photos,omitempty" binding:"omitempty,min=2,max=6"`
	PreferredGender   *string   `json:"preferred_gender,omitempty" binding:"omitempty,oneof=male female any"`
	PrefMinAge        *int      `json:"pref_min_age,omitempty"`
	PrefMaxAge        *int      `json:"pref_max_age,omitempty"`
	PrefMaxDistanceKm *int      `json:"pref_max_distance_km,omitempty"`
	PrefMinHeightCm   *int      `json:"pref_min_height_cm,omitempty"`
}
