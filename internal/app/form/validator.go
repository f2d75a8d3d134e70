// Package form holds the submitted HTML forms and their validation.
package form

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	notBlankTag     = "notblank"
	roleTag         = "role"
	usernameTag     = "username"
	roleFieldTag    = "role_field"
	passwordsTag    = "eqfield"
	pwBytesTag      = "pwbytes"
	usernameRegex   = regexp.MustCompile(`^[\w.@+-]+$`)
	customTagErrors = map[string]string{
		notBlankTag:  "%s cannot be blank",
		roleTag:      "%s must be student or teacher",
		usernameTag:  "%s may contain only letters, digits and @/./+/-/_",
		roleFieldTag: "%s is required for this role",
		passwordsTag: "passwords do not match",
		pwBytesTag:   "%s must be at most 72 bytes",
		"required":   "%s is required",
	}
)

func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use form tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(roleTag, roleValidation)
	_ = Validate.RegisterValidation(usernameTag, usernameValidation)
	_ = Validate.RegisterValidation(pwBytesTag, passwordBytesValidation)
	Validate.RegisterStructValidation(registerStructValidation, RegisterForm{})

	for tag := range customTagErrors {
		_ = Validate.RegisterTranslation(tag, Translator, func(ut.Translator) error { return nil }, translateCustomErrs)
	}
}

func translateCustomErrs(_ ut.Translator, fe validator.FieldError) string {
	text, ok := customTagErrors[fe.Tag()]
	if !ok {
		return fe.Error()
	}
	if strings.Contains(text, "%s") {
		return strings.Replace(text, "%s", fe.Field(), 1)
	}
	return text
}

// Check validates v and converts failures into a *common.ValidationError
// carrying one translated message per field.
func Check(v interface{}) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]common.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, common.FieldError{Field: fe.Field(), Message: fe.Translate(Translator)})
	}
	return common.NewValidationError(fields...)
}

// Custom Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func roleValidation(fl validator.FieldLevel) bool {
	return model.Role(fl.Field().String()).Valid()
}

func usernameValidation(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// bcrypt refuses passwords longer than 72 bytes; max counts runes.
func passwordBytesValidation(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= maxPasswordBytes
}

// registerStructValidation requires class_section for students and
// department for teachers.
func registerStructValidation(sl validator.StructLevel) {
	rf, ok := sl.Current().Interface().(RegisterForm)
	if !ok {
		return
	}
	switch model.Role(rf.Role) {
	case model.RoleStudent:
		if strings.TrimSpace(rf.ClassSection) == "" {
			sl.ReportError(rf.ClassSection, "class_section", "ClassSection", roleFieldTag, "")
		}
	case model.RoleTeacher:
		if strings.TrimSpace(rf.Department) == "" {
			sl.ReportError(rf.Department, "department", "Department", roleFieldTag, "")
		}
	}
}
