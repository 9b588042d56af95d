package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/livefire2015/ez-receivables/src/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return models.PaymentMethod(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("interest_type", func(fl validator.FieldLevel) bool {
		return models.InterestType(fl.Field().String()).IsValid()
	})

	return v
}

// validateRequest runs struct-tag validation and reports the first failure
// as a ValidationError of the given kind
func validateRequest(kind error, req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return models.NewValidationError(kind, "", nil, err.Error())
	}

	fe := fieldErrs[0]
	return models.NewValidationError(kind, fe.Field(), fe.Value(), describeTag(fe))
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "payment_method":
		return "is not a known payment method"
	case "interest_type":
		return "must be percent or fixed"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
