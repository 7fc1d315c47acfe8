// Package config holds the runtime settings of the API server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPort      = 5000
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	ServiceName      = "flowsmith"
)

// Config is populated from CLI flags and their environment variables.
type Config struct {
	Port      int    `validate:"min=1,max=65535"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	OpenAIAPIKey  string `validate:"required"`
	OpenAIModel   string `validate:"required"`
	OpenAIBaseURL string `validate:"omitempty,url"`

	// LLMTimeout bounds each model call. Zero disables the bound.
	LLMTimeout     time.Duration `validate:"min=0"`
	CircuitBreaker bool

	// TranscriptDir enables NDJSON conversation transcripts when set.
	TranscriptDir string
	Tracing       bool
}

// Validate checks every field and reports all violations at once.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		problems = append(problems, describe(fieldErr))
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fieldErr.Field(), fieldErr.Param(), fieldErr.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", fieldErr.Field(), fieldErr.Value())
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param(), fieldErr.Value())
	}
}
