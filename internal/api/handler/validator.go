package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mgluxury/boutique/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field errors are keyed by their JSON name.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures come back as
// *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			verr := &domain.ValidationError{}
			for _, fe := range ve {
				verr.Add(fe.Field(), fieldError(fe))
			}
			return verr
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a French message for the
// storefront forms.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "champ obligatoire"
	case "email":
		return "adresse email invalide"
	case "gt":
		return fmt.Sprintf("doit être supérieur à %s", fe.Param())
	case "gte", "min":
		return fmt.Sprintf("doit être au moins %s", fe.Param())
	case "max":
		return fmt.Sprintf("doit être au plus %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("doit être l'une des valeurs : %s", fe.Param())
	case "url":
		return "URL invalide"
	default:
		return fmt.Sprintf("valeur invalide (%s)", fe.Tag())
	}
}
