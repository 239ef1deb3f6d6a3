package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrEmptyTitle is returned when a title is empty or whitespace-only.
var ErrEmptyTitle = errors.New("title required")

// ValidationError describes a field that failed local validation.
type ValidationError struct {
	Field string // JSON name of the field
	Value string
	Rule  string
}

func (e *ValidationError) Error() string {
	if e.Rule == "max" {
		return fmt.Sprintf("%s too long", e.Field)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Value)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names so errors match what the user sees on the wire.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the task locally. A blank title yields ErrEmptyTitle.
func (t NewTask) Validate() error { return check(t) }

// Validate checks the update locally. A blank title yields ErrEmptyTitle.
func (u TaskUpdate) Validate() error { return check(u) }

// Validate checks the filter fields.
func (f Filter) Validate() error { return check(f) }

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	if fe.Tag() == "notblank" {
		return ErrEmptyTitle
	}
	return &ValidationError{
		Field: fe.Field(),
		Value: fmt.Sprint(fe.Value()),
		Rule:  fe.Tag(),
	}
}
