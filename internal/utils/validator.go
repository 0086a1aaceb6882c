package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"food-donation-tracker/domain"
	"food-donation-tracker/pkg/expiry"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = NewValidator()
}

// NewValidator reports fields by their json name and knows the
// notblank, positive_decimal and calendar_date tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		_, ok := ParsePositiveDecimal(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		_, err := expiry.ParseDate(strings.TrimSpace(fl.Field().String()))
		return err == nil
	})
	return v
}

// ParsePositiveDecimal accepts strings like "5", "2.5" and rejects zero,
// negatives and anything non-numeric.
func ParsePositiveDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ValidateStruct runs v over s and converts failures into FieldErrors.
func ValidateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return TranslateValidationErrors(verrs)
}

func TranslateValidationErrors(verrs validator.ValidationErrors) domain.FieldErrors {
	out := domain.FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, exists := out[field]; exists {
			continue
		}
		out[field] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label := HumanizeField(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "positive_decimal":
		return label + " must be a positive number"
	case "calendar_date":
		return label + " must be a valid date (YYYY-MM-DD)"
	case "email":
		return label + " must be a valid email address"
	case "uuid":
		return label + " must be a valid id"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// HumanizeField turns "expiry_date" into "Expiry date".
func HumanizeField(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
