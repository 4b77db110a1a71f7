package validate

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("future", futureDate)
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// futureDate accepts time.Time fields and wrappers embedding time.Time.
// Dates are compared at day granularity: today is not a future date.
func futureDate(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Struct {
		return false
	}
	if t, ok := f.Interface().(time.Time); ok {
		return isFutureDate(t)
	}
	ft := f.FieldByName("Time")
	if ft.IsValid() {
		if t, ok := ft.Interface().(time.Time); ok {
			return isFutureDate(t)
		}
	}
	return false
}

func isFutureDate(t time.Time) bool {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.After(today)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorList struct {
	Errors []FieldError `json:"errors"`
}

// Fields renders a validator error into per-field messages. Non-validator
// errors collapse into a single unnamed field entry.
func Fields(err error) ErrorList {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrorList{Errors: []FieldError{{Message: err.Error()}}}
	}
	list := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		list = append(list, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return ErrorList{Errors: list}
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " cannot be null"
	case "future":
		return label + " has to be in the future"
	default:
		return label + " is invalid"
	}
}

// fieldLabel turns a json field name into a sentence label: "userId" ->
// "User id", "startDate" -> "Start date".
func fieldLabel(name string) string {
	if name == "" {
		return "Field"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
