// Package validation binds request bodies into form structs and reports
// field-level failures as 400 responses.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/models"
)

// MessageValidationFailed is the top-level message of every field error response.
const MessageValidationFailed = "Validation failed"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report failures under the name the client submitted
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("role_target", func(fl validator.FieldLevel) bool {
		_, err := models.ParseRoleTarget(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("intent", func(fl validator.FieldLevel) bool {
		_, err := models.ParseIntent(fl.Field().String())
		return err == nil
	})
	return v
}

// Bind decodes the request body into obj, trims its string fields and
// validates it against the struct's validate tags.
func Bind(c *gin.Context, obj any) error {
	if err := decode(c, obj); err != nil {
		return apierrors.BadRequest("Invalid form data", nil)
	}
	trimStrings(reflect.ValueOf(obj))
	return Struct(obj)
}

// Struct validates an already populated form.
func Struct(obj any) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return apierrors.BadRequest(MessageValidationFailed, fields)
}

type intentForm struct {
	Intent string `form:"intent" json:"intent" validate:"required,intent"`
}

// Intent reads the intent field that selects a page action.
func Intent(c *gin.Context) (models.Intent, error) {
	var form intentForm
	if err := decode(c, &form); err != nil {
		return "", apierrors.BadRequest("Invalid intent", nil)
	}
	intent, err := models.ParseIntent(strings.TrimSpace(form.Intent))
	if err != nil {
		return "", apierrors.BadRequest("Invalid intent", nil)
	}
	return intent, nil
}

// decode keeps JSON bodies readable by later binds of the same request.
func decode(c *gin.Context, obj any) error {
	if c.ContentType() == binding.MIMEJSON {
		return c.ShouldBindBodyWith(obj, binding.JSON)
	}
	return c.ShouldBindWith(obj, binding.Default(c.Request.Method, c.ContentType()))
}

// trimStrings trims every string field except those tagged trim:"-".
func trimStrings(v reflect.Value) {
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if !f.CanSet() || t.Field(i).Tag.Get("trim") == "-" {
			continue
		}
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				continue
			}
			f = f.Elem()
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Struct:
			trimStrings(f.Addr())
		}
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "email":
		return "Invalid email address"
	case "url":
		return "Invalid URL"
	case "role_target":
		return "Invalid role"
	case "intent":
		return "Invalid intent"
	default:
		return "Invalid value"
	}
}
