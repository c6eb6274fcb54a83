package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/insurance-crm/internal/domain"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// decimal2Pattern matches decimals with at most two fraction digits.
var decimal2Pattern = regexp.MustCompile(`^-?\d+(\.\d{1,2})?$`)

// Validator applies the struct-tag rule tables declared on request payloads.
// A `msg_<rule>` tag overrides the message of that rule only; a `msg` tag
// overrides every rule on the field that has no `msg_<rule>` of its own.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("iso8601", validateISO8601)
	_ = v.RegisterValidation("decimal2", validateDecimal2)
	return &Validator{validate: v}
}

// Struct validates s and returns a validation DomainError listing every
// violation, or nil.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return apperrors.NewInternalError(err)
	}
	root := reflect.Indirect(reflect.ValueOf(s)).Type()
	fields := make([]apperrors.FieldError, 0, len(invalid))
	for _, fe := range invalid {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(root, fe),
		})
	}
	return apperrors.NewValidationError(fields)
}

// fieldName reports fields by their query or json name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"query", "json", "params"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func message(root reflect.Type, fe validator.FieldError) string {
	if root.Kind() == reflect.Struct {
		if sf, ok := root.FieldByName(fe.StructField()); ok {
			if msg := sf.Tag.Get("msg_" + fe.Tag()); msg != "" {
				return msg
			}
			if msg := sf.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "iso8601":
		return fmt.Sprintf("%s must be an ISO8601 date", field)
	case "decimal2":
		return fmt.Sprintf("%s must be a decimal with at most 2 fraction digits", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func validateISO8601(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}

func validateDecimal2(fl validator.FieldLevel) bool {
	return decimal2Pattern.MatchString(fl.Field().String())
}
