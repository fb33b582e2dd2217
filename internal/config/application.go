package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ApplicationMetadata is the application mapping of the project config
type ApplicationMetadata struct {
	DisplayName        string `yaml:"display_name" validate:"notblank"`
	Description        string `yaml:"description"`
	LeadDeveloperEmail string `yaml:"lead_developer_email"`
	AppVersion         string `yaml:"app_version"`
	GithubURL          string `yaml:"github_url"`
}

// FieldError reports a config field that failed validation
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	switch e.Tag {
	case "required", "notblank":
		return fmt.Sprintf("%s is required and must not be empty", e.Field)
	default:
		return fmt.Sprintf("%s failed %q validation", e.Field, e.Tag)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("yaml")
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks the required application fields
func (m ApplicationMetadata) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{
			Field: ApplicationKey + "." + verrs[0].Field(),
			Tag:   verrs[0].Tag(),
		}
	}
	return err
}
