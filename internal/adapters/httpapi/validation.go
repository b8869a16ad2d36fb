package httpapi

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// alnumTail matches values that end in a letter or digit.
var alnumTail = regexp.MustCompile(`[a-zA-Z0-9]+$`)

var registerOnce sync.Once

func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// report fields by their JSON names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		rules := map[string]validator.Func{
			"alnumtail": func(fl validator.FieldLevel) bool {
				return alnumTail.MatchString(fl.Field().String())
			},
			// rejects whitespace-only text that required lets through
			"notblank": func(fl validator.FieldLevel) bool {
				return strings.TrimSpace(fl.Field().String()) != ""
			},
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("register %q validator: %v", tag, err))
			}
		}
	})
}

func fieldErrors(verrs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	field := "'" + fe.Field() + "'"
	switch fe.Tag() {
	case "required", "notblank":
		return field + " must not be empty."
	case "min":
		return field + " must be at least " + fe.Param() + " characters long."
	case "max":
		return field + " must be " + fe.Param() + " characters or fewer."
	case "email":
		return field + " is not a valid email address."
	case "alnumtail":
		return field + " is not in the correct format."
	default:
		return field + " is invalid."
	}
}
