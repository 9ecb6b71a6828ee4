package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/westem/event-registration/internal/core/domain"
	"github.com/westem/event-registration/internal/core/ports"
)

var (
	passwordRe = regexp.MustCompile(`^[A-Za-z\d]{8,}$`)
	hasLetter  = regexp.MustCompile(`[A-Za-z]`)
	hasDigit   = regexp.MustCompile(`\d`)
	nameRe     = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё\-]{2,30}$`)
	phoneRe    = regexp.MustCompile(`^\d{9,12}$`)
)

// newRegisterValidator builds the validator used for registration input,
// with the custom field rules registered.
func newRegisterValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("userpassword", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return passwordRe.MatchString(s) && hasLetter.MatchString(s) && hasDigit.MatchString(s)
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// validateRegisterInput collects every violated field rule into a single
// ValidationError so the caller can report them all at once.
func validateRegisterInput(v *validator.Validate, in ports.RegisterInput) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, registerFieldMessage(fe))
	}
	return &domain.ValidationError{Violations: msgs}
}

func registerFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		return "email must be a valid address, e.g. name@example.com"
	case "Password":
		return "password must be at least 8 alphanumeric characters with at least one letter and one digit"
	case "FirstName":
		return "first name must be 2-30 letters"
	case "LastName":
		return "last name must be 2-30 letters"
	case "Phone":
		return "phone must be 9-12 digits"
	default:
		return fe.Field() + " is invalid"
	}
}
