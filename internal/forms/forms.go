// Package forms binds request forms with gin and turns validator failures
// into per-field messages for the templates.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"adboard/internal/models"
)

// FormKey holds errors that belong to no single field.
const FormKey = "_form"

// Errors maps a form field name to its message.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// A phone number is an optional plus and up to 15 digits once the
// separators typed by the input mask are dropped.
var (
	phoneRe        = regexp.MustCompile(`^\+?[0-9]{4,15}$`)
	phoneSeparator = strings.NewReplacer(" ", "", "(", "", ")", "", "-", "")
)

// NormalizePhone drops spaces, parentheses and dashes from v.
func NormalizePhone(v string) string {
	return phoneSeparator.Replace(strings.TrimSpace(v))
}

var registerOnce sync.Once

// Register installs the custom validators on gin's validator engine and
// makes validation errors report form field names.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("forms: unexpected validator engine")
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(NormalizePhone(fl.Field().String()))
		})
		mustRegister(v, "price", func(fl validator.FieldLevel) bool {
			_, err := models.ParsePrice(fl.Field().String(), models.MainCurrency)
			return err == nil
		})
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("forms: register %s: %v", tag, err))
	}
}

// Bind fills dst from the request form. Validation problems come back as
// Errors; empty Errors means the form is valid.
func Bind(c *gin.Context, dst any) Errors {
	errs := Errors{}
	err := c.ShouldBind(dst)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.Add(fe.Field(), message(fe))
		}
		return errs
	}
	errs.Add(FormKey, "The submitted data is invalid.")
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Bool {
			return "You should agree to our terms."
		}
		return "This value should not be blank."
	case "email":
		return "This value is not a valid email address."
	case "min":
		return fmt.Sprintf("This value is too short. It should have %s characters or more.", fe.Param())
	case "max":
		return fmt.Sprintf("This value is too long. It should have %s characters or less.", fe.Param())
	case "phone":
		return "This value is not a valid phone number."
	case "price":
		return "This value is not a valid price."
	case "iso4217":
		return "This value is not a valid currency."
	default:
		return "This value is not valid."
	}
}
