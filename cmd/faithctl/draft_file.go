package main

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gdugdh24/faithmatch-backend/internal/client/onboarding"
)

// draftFile is the YAML form of an onboarding draft. Photo paths are
// resolved relative to the draft file.
type draftFile struct {
	DisplayName string `yaml:"display_name"`
	Birthday    string `yaml:"birthday"`
	Phone       string `yaml:"phone"`
	CountryCode string `yaml:"country_code"`
	Location    string `yaml:"location"`
	Gender      string `yaml:"gender"`

	FaithJourney     string `yaml:"faith_journey"`
	ChurchAttendance string `yaml:"church_attendance"`
	Denomination     string `yaml:"denomination"`
	BaptismStatus    string `yaml:"baptism_status"`
	Bio              string `yaml:"bio"`
	FavoriteVerse    string `yaml:"favorite_verse"`

	Personality       []string `yaml:"personality"`
	Hobbies           []string `yaml:"hobbies"`
	Values            []string `yaml:"values"`
	SpiritualGifts    []string `yaml:"spiritual_gifts"`
	Interests         []string `yaml:"interests"`
	RelationshipGoals []string `yaml:"relationship_goals"`

	PreferredFaithJourney     []string `yaml:"preferred_faith_journey"`
	PreferredChurchAttendance []string `yaml:"preferred_church_attendance"`
	PreferredDenominations    []string `yaml:"preferred_denominations"`
	PreferredValues           []string `yaml:"preferred_values"`
	PreferredGender           string   `yaml:"preferred_gender"`
	MinAge                    int      `yaml:"min_age"`
	MaxAge                    int      `yaml:"max_age"`
	MaxDistance               int      `yaml:"max_distance"`
	PreferredMinHeight        int      `yaml:"preferred_min_height"`

	Photos []string `yaml:"photos"`

	dir string
}

func readDraftFile(path string) (*draftFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	var f draftFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse draft %s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	return &f, nil
}

// apply copies the file into d through the draft's own setters so the
// same bounds apply as for interactive edits.
func (f *draftFile) apply(d *onboarding.Draft) error {
	d.DisplayName = f.DisplayName
	d.Birthday = f.Birthday
	d.Phone = f.Phone
	d.CountryCode = f.CountryCode
	d.Location = f.Location
	d.Gender = f.Gender
	d.FaithJourney = f.FaithJourney
	d.ChurchAttendance = f.ChurchAttendance
	d.Denomination = f.Denomination
	d.BaptismStatus = f.BaptismStatus
	d.Bio = f.Bio
	d.FavoriteVerse = f.FavoriteVerse

	d.Personality = onboarding.NewStringSet(f.Personality...)
	d.Hobbies = onboarding.NewStringSet(f.Hobbies...)
	d.Values = onboarding.NewStringSet(f.Values...)
	d.SpiritualGifts = onboarding.NewStringSet(f.SpiritualGifts...)
	d.RelationshipGoals = onboarding.NewStringSet(f.RelationshipGoals...)
	d.Interests.Clear()
	for _, i := range f.Interests {
		if err := d.AddInterest(i); err != nil {
			return fmt.Errorf("interest %q: %w", i, err)
		}
	}

	d.PreferredFaithJourney = onboarding.NewStringSet(f.PreferredFaithJourney...)
	d.PreferredChurchAttendance = onboarding.NewStringSet(f.PreferredChurchAttendance...)
	d.PreferredDenominations = onboarding.NewStringSet(f.PreferredDenominations...)
	d.PreferredValues = onboarding.NewStringSet(f.PreferredValues...)
	d.PreferredGender = f.PreferredGender
	d.SetMinAge(f.MinAge)
	d.SetMaxAge(f.MaxAge)
	d.SetMaxDistance(f.MaxDistance)
	d.SetPreferredMinHeight(f.PreferredMinHeight)

	for _, p := range f.Photos {
		if !filepath.IsAbs(p) {
			p = filepath.Join(f.dir, p)
		}
		if err := addPhotoFile(d, p); err != nil {
			return err
		}
	}
	return nil
}

func addPhotoFile(d *onboarding.Draft, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read photo: %w", err)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
			contentType = byExt
		}
	}
	if err := d.AddPhoto(onboarding.Photo{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}); err != nil {
		return fmt.Errorf("photo %s: %w", path, err)
	}
	return nil
}
