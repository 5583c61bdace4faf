// Package validation checks request payloads against their struct tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"storefront/internal/model"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a validator.Validate that reports JSON field names.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s. Field failures are returned as a VALIDATION_FAILED domain error.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Namespace(), e.Tag()))
	}
	sort.Strings(messages)

	return model.NewDomainError(model.ErrCodeValidation, strings.Join(messages, "; "))
}

// Product validates an admin form or catalog feed record.
func (v *Validator) Product(req model.ProductRequest) error {
	if err := v.Struct(req); err != nil {
		return err
	}
	if req.Price.IsNegative() || req.Price.GreaterThan(model.MaxUnitPrice) {
		return model.ErrInvalidPrice
	}
	return nil
}
