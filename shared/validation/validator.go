package validation

import (
	"errors"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps a validator instance with an English translator so field
// errors can be reported to the caller in readable form.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New creates a Validator with the strongpassword rule registered.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("failed to get en translator")
	}

	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("strongpassword", validStrongPassword); err != nil {
		return nil, err
	}

	if err := validate.RegisterTranslation(
		"strongpassword",
		translator,
		func(ut ut.Translator) error {
			return ut.Add(
				"strongpassword",
				"{0} must be at least 8 characters long and include an uppercase letter, a lowercase letter, a number and a special character",
				true,
			)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("strongpassword", fe.Field())
			return t
		},
	); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, translator: translator}, nil
}

// Struct validates the given struct and returns a field-to-message map when
// validation fails. A nil map means the struct is valid.
func (v *Validator) Struct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{"": err.Error()}
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = fe.Translate(v.translator)
	}

	return fields
}

// validStrongPassword enforces the password complexity rule: at least 8
// characters with an uppercase letter, a lowercase letter, a digit and a
// special character. Implemented with rune classes since Go's regexp has no
// lookaheads.
func validStrongPassword(fl validator.FieldLevel) bool {
	return StrongPassword(fl.Field().String())
}

// StrongPassword reports whether a password satisfies the complexity rule.
func StrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}
