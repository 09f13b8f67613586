package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks create requests before anything reaches the store.
type Validator struct {
	validate *validator.Validate
}

// FieldError is one rejected field of a request.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
	Value string `json:"value,omitempty"`
}

func (fe FieldError) Error() string {
	switch fe.Rule {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field, fe.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field, fe.Param)
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field, fe.Rule)
	}
}

// FieldErrors lists every rejected field of one request, in struct order.
type FieldErrors []FieldError

func (fes FieldErrors) Error() string {
	messages := make([]string, 0, len(fes))
	for _, fe := range fes {
		messages = append(messages, fe.Error())
	}
	return strings.Join(messages, "; ")
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so messages read "title is required"
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate checks req against its `validate` struct tags. Rule failures come
// back as FieldErrors; anything else (a nil or non-struct req) is returned
// as reported by the underlying validator.
func (v *Validator) Validate(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	fes := make(FieldErrors, 0, len(invalid))
	for _, fe := range invalid {
		fes = append(fes, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Value: fmt.Sprint(fe.Value()),
		})
	}
	return fes
}
