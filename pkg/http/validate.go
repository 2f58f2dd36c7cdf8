package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CodeMalformedBody marks a body that could not be decoded at all.
const CodeMalformedBody = "ERR_MALFORMED_BODY"

// ValidationError describes one rejected request field.
type ValidationError struct {
	Code    string                 `json:"code"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields under their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}

// BindRequest decodes the body into req, fills defaults for the fields the
// client left out and validates the result. A nil result means req is usable.
func BindRequest(c echo.Context, req interface{}) []ValidationError {
	if err := c.Bind(req); err != nil {
		msg := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg = fmt.Sprint(he.Message)
			if he.Internal != nil {
				msg += ": " + he.Internal.Error()
			}
		}
		return []ValidationError{{Code: CodeMalformedBody, Message: msg}}
	}
	if err := defaults.Set(req); err != nil {
		return []ValidationError{{Code: CodeMalformedBody, Message: err.Error()}}
	}

	err := validate.StructCtx(c.Request().Context(), req)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return []ValidationError{{Code: CodeMalformedBody, Message: err.Error()}}
	}
	out := make([]ValidationError, 0, len(fes))
	for _, fe := range fes {
		out = append(out, fieldError(fe))
	}
	return out
}

// ruleMessages maps a validation tag to a message taking the field and the
// tag parameter.
var ruleMessages = map[string]string{
	"required": "%s is required",
	"len":      "%s must have exactly %s items",
	"min":      "%s must have at least %s items",
	"max":      "%s must have at most %s items",
	"gt":       "%s must be greater than %s",
	"gte":      "%s must be greater than or equal to %s",
	"lt":       "%s must be less than %s",
	"lte":      "%s must be less than or equal to %s",
}

func fieldError(fe validator.FieldError) ValidationError {
	field := fieldPath(fe)
	ve := ValidationError{
		Code:  "ERR_" + strings.ToUpper(fe.Tag()),
		Field: field,
	}
	switch tmpl, ok := ruleMessages[fe.Tag()]; {
	case !ok:
		ve.Message = fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	case fe.Tag() == "required":
		ve.Message = fmt.Sprintf(tmpl, field)
	default:
		ve.Message = fmt.Sprintf(tmpl, field, fe.Param())
	}
	if p := fe.Param(); p != "" {
		ve.Params = map[string]interface{}{"limit": p}
	}
	return ve
}

// fieldPath drops the root struct name from the namespace, so nested fields
// read as "person1.year".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
