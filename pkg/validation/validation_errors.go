package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Personal info fields
	"Name":     "Name",
	"Title":    "Title",
	"Location": "Location",
	"Bio":      "Bio",

	// About fields
	"Content": "About content",

	// Experience fields
	"Company":      "Company",
	"City":         "City",
	"Country":      "Country",
	"StartDate":    "Start date",
	"EndDate":      "End date",
	"Description":  "Description",
	"Achievements": "Achievements",
	"Skills":       "Skills",

	// Project fields
	"Technologies": "Technologies",
	"Link":         "Project link",
	"GitHub":       "GitHub link",

	// Contact fields
	"Email":       "Email",
	"Phone":       "Phone",
	"SocialLinks": "Social links",
	"Platform":    "Platform",
	"URL":         "URL",

	// Skill fields
	"Level": "Skill level",

	// Categorization settings fields
	"UseSubcategories":        "Use subcategories",
	"MinSkillsForSubcategory": "Minimum skills for subcategory",
	"CategoryOverrides":       "Category overrides",

	// Auth fields
	"Password": "Password",

	// Contact form fields
	"Subject": "Subject",
	"Message": "Message",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Split(param, " "), ", "))

	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "lte":
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "dive":
		return fmt.Sprintf("%s contains an invalid entry", label)

	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
