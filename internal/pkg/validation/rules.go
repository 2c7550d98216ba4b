package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// ColorPattern accepts #rgb and #rrggbb
	ColorPattern = `^#(?:[0-9a-fA-F]{3}){1,2}$`

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Color *regexp.Regexp
}{
	Color: regexp.MustCompile(ColorPattern),
}

var (
	once     sync.Once
	instance *validator.Validate
)

// Register installs the custom rules on v. gin's binding engine and the
// shared validator both go through it so request tags mean the same thing
// everywhere.
func Register(v *validator.Validate) error {
	v.SetTagName("binding")
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	return v.RegisterValidation("hexcolor_opt", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || CompiledPatterns.Color.MatchString(s)
	})
}

// Validator returns the process-wide validator
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		if err := Register(instance); err != nil {
			panic(err)
		}
	})
	return instance
}

// Struct validates s with the shared validator. Failures are wrapped so that
// errors.Is(err, apperrors.ErrValidationFailed) holds and the original
// validator.ValidationErrors stay reachable through errors.As.
func Struct(s any) error {
	if err := Validator().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.NewValidationError(verrs)
		}
		return err
	}
	return nil
}

// NotBlank reports whether s has any non-space content
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	}
	if name == "" {
		return fld.Name
	}
	return name
}
