package forms

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/iamasit07/photoshare/pkg/auth"
)

// DefaultValidator is shared by the CLI forms and the stub backend's gin
// binding, so both sides apply the same rules.
type DefaultValidator struct {
	once     sync.Once
	validate *validator.Validate
}

var _ binding.StructValidator = &DefaultValidator{}

var Default = &DefaultValidator{}

// ValidateStruct validates whether the fields of a struct satisfy validation constraints
// specified via struct tags. It returns an error if validation fails.
func (v *DefaultValidator) ValidateStruct(obj interface{}) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *DefaultValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

func (v *DefaultValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName("binding")
		v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		v.validate.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
			return auth.ValidatePasswordStrength(fl.Field().String()) == nil
		})
		v.validate.RegisterValidation("imagefile", func(fl validator.FieldLevel) bool {
			switch strings.ToLower(filepath.Ext(fl.Field().String())) {
			case ".jpg", ".jpeg", ".png", ".gif", ".webp":
				return true
			}
			return false
		})
	})
}

func kindOfData(data interface{}) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()

	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}

// Validate runs the default rules on a form.
func Validate(form interface{}) error {
	return Default.ValidateStruct(form)
}

// Messages turns a validation error into one readable message per field.
// Other errors come back under the "form" key.
func Messages(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "eqfield":
		return "does not match"
	case "strongpw":
		if err := auth.ValidatePasswordStrength(fmt.Sprint(fe.Value())); err != nil {
			return err.Error()
		}
	case "imagefile":
		return "must be a jpg, png, gif or webp image"
	}
	return "is invalid"
}

// Summary joins Messages into one line, fields in alphabetical order.
func Summary(err error) string {
	msgs := Messages(err)
	fields := make([]string, 0, len(msgs))
	for f := range msgs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "form" {
			parts = append(parts, msgs[f])
			continue
		}
		parts = append(parts, f+" "+msgs[f])
	}
	return strings.Join(parts, "; ")
}
