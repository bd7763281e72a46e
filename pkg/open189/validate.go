package open189

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var randcodePattern = regexp.MustCompile(`^[0-9]{6}$`)

func newValidator() *validator.Validate {
	validate := validator.New()
	// Report fields by their wire parameter names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("param"); name != "" {
			return name
		}
		return f.Name
	})
	validate.RegisterValidation("randcode", randcodeValidator)
	return validate
}

// randcodeValidator accepts exactly six ASCII digits.
func randcodeValidator(fl validator.FieldLevel) bool {
	return randcodePattern.MatchString(fl.Field().String())
}

func translateError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "randcode":
		return "only 6-digit string code is supported"
	case "url":
		return "must be an absolute URL"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}

// toArgumentError turns a validator failure into an ArgumentError reported
// against field when the failure names none.
func toArgumentError(field string, err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		if fe.Field() != "" {
			field = fe.Field()
		}
		return newArgumentError(field, translateError(fe))
	}
	return newArgumentError(field, err.Error())
}

func (c *Client) validateStruct(v any) error {
	return toArgumentError("request", c.validate.Struct(v))
}

func (c *Client) validateVar(field string, v any, tag string) error {
	return toArgumentError(field, c.validate.Var(v, tag))
}
