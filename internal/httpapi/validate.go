package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const maxBodyBytes = 1 << 20

// FieldError is one entry of a 400 validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, fn := range map[string]validator.Func{
		"trimmed": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"isodate": func(fl validator.FieldLevel) bool {
			_, err := time.Parse(time.DateOnly, fl.Field().String())
			return err == nil
		},
		"between": validateBetween,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// validateBetween checks a numeric field against an inclusive "lo:hi" range.
func validateBetween(fl validator.FieldLevel) bool {
	low, high, ok := betweenBounds(fl.Param())
	if !ok {
		return false
	}
	var n float64
	switch f := fl.Field(); f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = float64(f.Int())
	case reflect.Float32, reflect.Float64:
		n = f.Float()
	default:
		return false
	}
	return n >= low && n <= high
}

func betweenBounds(param string) (float64, float64, bool) {
	a, b, found := strings.Cut(param, ":")
	if !found {
		return 0, 0, false
	}
	low, err1 := strconv.ParseFloat(a, 64)
	high, err2 := strconv.ParseFloat(b, 64)
	return low, high, err1 == nil && err2 == nil
}

// decodeJSON decodes the body into dst, rejecting unknown fields, and runs
// struct validation. An empty body decodes as {}.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) []FieldError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return []FieldError{decodeError(err)}
	}
	return validateStruct(dst)
}

func validateStruct(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "is invalid"}}
	}
	return lo.Map(verrs, func(fe validator.FieldError, _ int) FieldError {
		out := FieldError{Field: fe.Field(), Message: fieldMessage(fe)}
		if fe.Tag() != "required" && fe.Field() != "password" {
			out.Value = fe.Value()
		}
		return out
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "between":
		a, b, _ := strings.Cut(fe.Param(), ":")
		return fmt.Sprintf("must be between %s and %s", a, b)
	case "isodate":
		return "must be a valid date (YYYY-MM-DD)"
	case "trimmed":
		return "must not be empty"
	}
	return "is invalid"
}

func decodeError(err error) FieldError {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return FieldError{Field: field, Message: "must be " + describeType(typeErr.Type)}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return FieldError{Field: name, Message: "is not allowed"}
	case errors.As(err, &maxErr):
		return FieldError{Field: "body", Message: "is too large"}
	}
	return FieldError{Field: "body", Message: "must be valid JSON"}
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Slice, reflect.Array:
		return "an array"
	}
	return "of type " + t.String()
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, *FieldError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &FieldError{Field: name, Message: "must be a positive integer", Value: raw}
	}
	return id, nil
}
