package onboarding

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

const birthdayLayout = "2006-01-02"

const (
	StepProfile             = "profile"
	StepAbout               = "about"
	StepGoals               = "goals"
	StepPartnerPreferences  = "partner_preferences"
	StepMatchingPreferences = "matching_preferences"
	StepPhotos              = "photos"
)

// ValidationError is a failed step gate. It is shown to the user as
// inline guidance and never leaves the wizard as an error.
type ValidationError struct {
	Step    string
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type step struct {
	name     string
	validate func(d *Draft, now time.Time) *ValidationError
}

var steps = []step{
	{StepProfile, validateProfile},
	{StepAbout, validateAbout},
	{StepGoals, validateGoals},
	{StepPartnerPreferences, validatePartnerPreferences},
	{StepMatchingPreferences, validateMatchingPreferences},
	{StepPhotos, validatePhotos},
}

// Steps lists the step names in order.
func Steps() []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	return names
}

func invalid(step string, msg string, fields ...string) *ValidationError {
	return &ValidationError{Step: step, Fields: fields, Message: msg}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func validateProfile(d *Draft, now time.Time) *ValidationError {
	var missing []string
	if blank(d.Birthday) {
		missing = append(missing, "birthday")
	}
	if blank(d.Location) {
		missing = append(missing, "location")
	}
	if blank(d.FaithJourney) {
		missing = append(missing, "faith journey")
	}
	if blank(d.ChurchAttendance) {
		missing = append(missing, "church attendance")
	}
	if len(missing) > 0 {
		return invalid(StepProfile, "Please fill in: "+strings.Join(missing, ", "), missing...)
	}

	birthday, err := parseBirthday(d.Birthday)
	if err != nil {
		return invalid(StepProfile, "Birthday must be a date like 1995-06-30", "birthday")
	}
	if domain.AgeOn(birthday, now) < domain.MinAge {
		return invalid(StepProfile, fmt.Sprintf("You must be at least %d years old", domain.MinAge), "birthday")
	}
	if !domain.IsFaithJourney(strings.TrimSpace(d.FaithJourney)) {
		return invalid(StepProfile, "Please choose one of the listed faith journeys", "faith journey")
	}
	if !domain.IsChurchAttendance(strings.TrimSpace(d.ChurchAttendance)) {
		return invalid(StepProfile, "Please choose how often you attend church", "church attendance")
	}
	return nil
}

func validateAbout(d *Draft, _ time.Time) *ValidationError {
	switch n := d.Interests.Len(); {
	case n == 0:
		return invalid(StepAbout, "Please pick at least one interest", "interests")
	case n > domain.MaxInterests:
		return invalid(StepAbout, fmt.Sprintf("Please pick at most %d interests", domain.MaxInterests), "interests")
	}
	return nil
}

func validateGoals(d *Draft, _ time.Time) *ValidationError {
	if d.RelationshipGoals.Len() == 0 {
		return invalid(StepGoals, "Please select at least one relationship goal", "relationship goals")
	}
	return nil
}

func validatePartnerPreferences(d *Draft, _ time.Time) *ValidationError {
	if d.PreferredFaithJourney.Len() == 0 {
		return invalid(StepPartnerPreferences, "Please select at least one preferred faith journey", "preferred faith journey")
	}
	for _, fj := range d.PreferredFaithJourney.Values() {
		if !domain.IsFaithJourney(fj) {
			return invalid(StepPartnerPreferences, fmt.Sprintf("Unknown faith journey %q", fj), "preferred faith journey")
		}
	}
	return nil
}

func validateMatchingPreferences(d *Draft, _ time.Time) *ValidationError {
	var missing []string
	if blank(d.PreferredGender) {
		missing = append(missing, "preferred gender")
	}
	if d.minAge == 0 {
		missing = append(missing, "minimum age")
	}
	if d.maxAge == 0 {
		missing = append(missing, "maximum age")
	}
	if d.maxDistance == 0 {
		missing = append(missing, "maximum distance")
	}
	if len(missing) > 0 {
		return invalid(StepMatchingPreferences, "Please set: "+strings.Join(missing, ", "), missing...)
	}
	switch strings.TrimSpace(d.PreferredGender) {
	case "male", "female", "any":
	default:
		return invalid(StepMatchingPreferences, "Preferred gender must be male, female or any", "preferred gender")
	}
	return nil
}

func validatePhotos(d *Draft, _ time.Time) *ValidationError {
	if n := len(d.photos); n < domain.MinPhotos {
		return invalid(StepPhotos, fmt.Sprintf("Please add at least %d photos (you have %d)", domain.MinPhotos, n), "photos")
	}
	return nil
}

func parseBirthday(s string) (time.Time, error) {
	return time.Parse(birthdayLayout, strings.TrimSpace(s))
}
