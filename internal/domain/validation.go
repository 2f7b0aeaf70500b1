package domain

import "github.com/go-playground/validator/v10"

// RegisterValidators installs the enum tags used in binding rules
// (faith_journey, church_attendance) on v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("faith_journey", func(fl validator.FieldLevel) bool {
		return IsFaithJourney(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("church_attendance", func(fl validator.FieldLevel) bool {
		return IsChurchAttendance(fl.Field().String())
	})
}

// NewValidator returns a validator that reads `binding` tags, the same
// rules gin applies at the HTTP boundary.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	_ = RegisterValidators(v)
	return v
}
