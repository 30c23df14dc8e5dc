package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var tokenPattern = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeToken turns free text (a client legal name) into a filesystem-safe
// token: every non-alphanumeric rune becomes '_'.
func SanitizeToken(s string) string {
	return tokenPattern.ReplaceAllString(s, "_")
}

func ProcessValidationErrors(validationErrors validator.ValidationErrors) map[string]string {

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}
