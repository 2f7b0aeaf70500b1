package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const profileColumns = `
	id, user_id, display_name, birthday, gender, phone, country_code,
	location, location_lat, location_lon,
	faith_journey, church_attendance, denomination, baptism_status,
	bio, favorite_verse, personality, hobbies, "values", spiritual_gifts,
	interests, relationship_goals,
	preferred_faith_journey, preferred_church_attendance, preferred_denominations,
	preferred_values, preferred_gender,
	pref_min_age, pref_max_age, pref_max_distance_km, pref_min_height_cm,
	photos, is_onboarding_complete, created_at, updated_at`

// profileRow mirrors the profiles table; array columns need pq.StringArray
// to scan through sqlx.
type profileRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	DisplayName string         `db:"display_name"`
	Birthday    *time.Time     `db:"birthday"`
	Gender      *string        `db:"gender"`
	Phone       *string        `db:"phone"`
	CountryCode *string        `db:"country_code"`
	Location    *string        `db:"location"`
	LocationLat *float64       `db:"location_lat"`
	LocationLon *float64       `db:"location_lon"`
	Faith       string         `db:"faith_journey"`
	Attendance  string         `db:"church_attendance"`
	Denom       *string        `db:"denomination"`
	Baptism     *string        `db:"baptism_status"`
	Bio         *string        `db:"bio"`
	Verse       *string        `db:"favorite_verse"`
	Personality pq.StringArray `db:"personality"`
	Hobbies     pq.StringArray `db:"hobbies"`
	Values      pq.StringArray `db:"values"`
	Gifts       pq.StringArray `db:"spiritual_gifts"`
	Interests   pq.StringArray `db:"interests"`
	Goals       pq.StringArray `db:"relationship_goals"`
	PrefFaith   pq.StringArray `db:"preferred_faith_journey"`
	PrefAttend  pq.StringArray `db:"preferred_church_attendance"`
	PrefDenoms  pq.StringArray `db:"preferred_denominations"`
	PrefValues  pq.StringArray `db:"preferred_values"`
	PrefGender  *string        `db:"preferred_gender"`
	PrefMinAge  *int           `db:"pref_min_age"`
	PrefMaxAge  *int           `db:"pref_max_age"`
	PrefMaxDist *int           `db:"pref_max_distance_km"`
	PrefMinHt   *int           `db:"pref_min_height_cm"`
	Photos      pq.StringArray `db:"photos"`
	Complete    bool           `db:"is_onboarding_complete"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *profileRow) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:                        r.ID,
		UserID:                    r.UserID,
		DisplayName:               r.DisplayName,
		Birthday:                  r.Birthday,
		Gender:                    r.Gender,
		Phone:                     r.Phone,
		CountryCode:               r.CountryCode,
		Location:                  r.Location,
		LocationLat:               r.LocationLat,
		LocationLon:               r.LocationLon,
		FaithJourney:              r.Faith,
		ChurchAttendance:          r.Attendance,
		Denomination:              r.Denom,
		BaptismStatus:             r.Baptism,
		Bio:                       r.Bio,
		FavoriteVerse:             r.Verse,
		Personality:               r.Personality,
		Hobbies:                   r.Hobbies,
		Values:                    r.Values,
		SpiritualGifts:            r.Gifts,
		Interests:                 r.Interests,
		RelationshipGoals:         r.Goals,
		PreferredFaithJourney:     r.PrefFaith,
		PreferredChurchAttendance: r.PrefAttend,
		PreferredDenominations:    r.PrefDenoms,
		PreferredValues:           r.PrefValues,
		PreferredGender:           r.PrefGender,
		PrefMinAge:                r.PrefMinAge,
		PrefMaxAge:                r.PrefMaxAge,
		PrefMaxDistanceKm:         r.PrefMaxDist,
		PrefMinHeightCm:           r.PrefMinHt,
		Photos:                    r.Photos,
		IsOnboardingComplete:      r.Complete,
		CreatedAt:                 r.CreatedAt,
		UpdatedAt:                 r.UpdatedAt,
	}
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `
		INSERT INTO profiles (
			id, user_id, display_name, birthday, gender, phone, country_code,
			location, location_lat, location_lon,
			faith_journey, church_attendance, denomination, baptism_status,
			bio, favorite_verse, personality, hobbies, "values", spiritual_gifts,
			interests, relationship_goals,
			preferred_faith_journey, preferred_church_attendance, preferred_denominations,
			preferred_values, preferred_gender,
			pref_min_age, pref_max_age, pref_max_distance_km, pref_min_height_cm,
			photos, is_onboarding_complete
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		p.ID, p.UserID, p.DisplayName, p.Birthday, p.Gender, p.Phone, p.CountryCode,
		p.Location, p.LocationLat, p.LocationLon,
		p.FaithJourney, p.ChurchAttendance, p.Denomination, p.BaptismStatus,
		p.Bio, p.FavoriteVerse, pq.Array(p.Personality), pq.Array(p.Hobbies), pq.Array(p.Values), pq.Array(p.SpiritualGifts),
		pq.Array(p.Interests), pq.Array(p.RelationshipGoals),
		pq.Array(p.PreferredFaithJourney), pq.Array(p.PreferredChurchAttendance), pq.Array(p.PreferredDenominations),
		pq.Array(p.PreferredValues), p.PreferredGender,
		p.PrefMinAge, p.PrefMaxAge, p.PrefMaxDistanceKm, p.PrefMinHeightCm,
		pq.Array(p.Photos), p.IsOnboardingComplete,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrProfileAlreadyExists
	}
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *profileRepository) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*domain.Profile, error) {
	out := make(map[string]*domain.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ANY($1)`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(userIDs)); err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].UserID] = rows[i].toDomain()
	}
	return out, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, birthday = $2, gender = $3, phone = $4, country_code = $5,
		    location = $6, location_lat = $7, location_lon = $8,
		    faith_journey = $9, church_attendance = $10, denomination = $11, baptism_status = $12,
		    bio = $13, favorite_verse = $14, personality = $15, hobbies = $16, "values" = $17,
		    spiritual_gifts = $18, interests = $19, relationship_goals = $20,
		    preferred_faith_journey = $21, preferred_church_attendance = $22,
		    preferred_denominations = $23, preferred_values = $24, preferred_gender = $25,
		    pref_min_age = $26, pref_max_age = $27, pref_max_distance_km = $28, pref_min_height_cm = $29,
		    photos = $30, is_onboarding_complete = $31,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $32
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		p.DisplayName, p.Birthday, p.Gender, p.Phone, p.CountryCode,
		p.Location, p.LocationLat, p.LocationLon,
		p.FaithJourney, p.ChurchAttendance, p.Denomination, p.BaptismStatus,
		p.Bio, p.FavoriteVerse, pq.Array(p.Personality), pq.Array(p.Hobbies), pq.Array(p.Values),
		pq.Array(p.SpiritualGifts), pq.Array(p.Interests), pq.Array(p.RelationshipGoals),
		pq.Array(p.PreferredFaithJourney), pq.Array(p.PreferredChurchAttendance),
		pq.Array(p.PreferredDenominations), pq.Array(p.PreferredValues), p.PreferredGender,
		p.PrefMinAge, p.PrefMaxAge, p.PrefMaxDistanceKm, p.PrefMinHeightCm,
		pq.Array(p.Photos), p.IsOnboardingComplete,
		p.ID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) SearchProfiles(ctx context.Context, search repository.ProfileSearch, limit, offset int) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if len(search.ExcludeUserIDs) > 0 {
		query += fmt.Sprintf(" AND NOT (user_id = ANY($%d))", argCount)
		args = append(args, pq.Array(search.ExcludeUserIDs))
		argCount++
	}

	if len(search.Interests) > 0 {
		query += fmt.Sprintf(" AND interests && $%d", argCount)
		args = append(args, pq.Array(search.Interests))
		argCount++
	}

	if len(search.FaithJourneys) > 0 {
		query += fmt.Sprintf(" AND faith_journey = ANY($%d)", argCount)
		args = append(args, pq.Array(search.FaithJourneys))
		argCount++
	}

	if search.Gender != nil {
		query += fmt.Sprintf(" AND gender = $%d", argCount)
		args = append(args, *search.Gender)
		argCount++
	}

	if search.OnboardingComplete != nil {
		query += fmt.Sprintf(" AND is_onboarding_complete = $%d", argCount)
		args = append(args, *search.OnboardingComplete)
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	profiles := make([]*domain.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, rows[i].toDomain())
	}
	return profiles, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
