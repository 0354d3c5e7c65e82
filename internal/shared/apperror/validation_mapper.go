package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// humanize turns "departmentId" or "department_id" into "Department Id".
func humanize(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_':
			b.WriteRune(' ')
			continue
		case i > 0 && unicode.IsUpper(r):
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return cases.Title(language.English).String(b.String())
}

// MapValidationError converts binding failures (validator rules, JSON type
// mismatches, malformed query numbers) into a single 400 AppError.
func MapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, e := range verrs {
			switch e.Tag() {
			case "required":
				details = append(details, RequiredField(e.Field()))
			case "notblank":
				details = append(details, BlankField(e.Field()))
			case "oneof":
				details = append(details, OneOfField(e.Field(), strings.ReplaceAll(e.Param(), " ", ", ")))
			default:
				details = append(details, InvalidField(e.Field()))
			}
		}
		return Validation(details...).WithCause(err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		want := "number"
		if typeErr.Type != nil && typeErr.Type.String() == "string" {
			want = "string"
		}
		return Validation(TypeMismatchField(typeErr.Field, want)).WithCause(err)
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return Validation(FieldError{Field: "query", Message: fmt.Sprintf("%q is not a valid integer", numErr.Num)}).WithCause(err)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return Validation(FieldError{Field: "body", Message: "malformed JSON"}).WithCause(err)
	}

	return Validation().WithCause(err)
}
