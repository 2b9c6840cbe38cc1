package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	roomNameTag   = "roomname"
	roomNameText  = "{0} may only contain letters, digits, dashes and underscores"
	roomNameRegex = regexp.MustCompile(`^[\w-]+$`)

	requiredText = "{0} is required"
)

// Validator checks request DTOs and reports errors under their JSON names.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() *Validator {
	validate := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v := &Validator{validate: validate, translator: translator}

	_ = validate.RegisterValidation(roomNameTag, roomNameValidation)
	v.registerTranslation(roomNameTag, roomNameText, false)
	v.registerTranslation("required", requiredText, true)

	return v
}

func (v *Validator) registerTranslation(tag, text string, override bool) {
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates s and returns a *ValidationError describing every
// failing field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.translator),
		})
	}

	return &ValidationError{Err: errValidation, Fields: fields}
}

// Var validates a single value against a tag, reporting it under field.
func (v *Validator) Var(field string, value interface{}, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Var errors carry no field name; the translation starts with an
		// empty placeholder.
		fields = append(fields, FieldError{
			Field:   field,
			Message: field + fe.Translate(v.translator),
		})
	}

	return &ValidationError{Err: errValidation, Fields: fields}
}

// roomNameValidation only allows word characters and dashes.
func roomNameValidation(fl validator.FieldLevel) bool {
	return roomNameRegex.MatchString(fl.Field().String())
}
