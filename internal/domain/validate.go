package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidationError lists the fields of a deck or card that failed
// validation.
type ValidationError struct {
	Fields []FieldError
}

// FieldError describes a single rejected field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.message())
	}
	return "invalid " + strings.Join(parts, "; ")
}

func (f FieldError) message() string {
	name := strings.ToLower(f.Field)
	switch f.Rule {
	case "required":
		return name + ": must not be empty"
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", name, f.Param)
	case "excludes":
		return fmt.Sprintf("%s: must not contain %q", name, f.Param)
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", name, f.Param)
	default:
		return fmt.Sprintf("%s: failed %s", name, f.Rule)
	}
}

// Validate checks a Deck or Card against its struct rules.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// ValidateDeckName checks a candidate deck name without building a deck.
func ValidateDeckName(name string) error {
	return Validate(Deck{Name: strings.TrimSpace(name)})
}
