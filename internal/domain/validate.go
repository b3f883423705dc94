package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-portfolio-console/pkg/validation"
)

// ValidationError carries per-field messages for a rejected section payload.
// Local (pre-network) validation and server-reported failures both surface as
// this type so callers render them the same way.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "Validation errors: " + strings.Join(e.Messages, ", ")
}

var validate = validator.New()

// ValidateSection checks a section payload against that section's schema.
// Undecodable or invalid payloads come back as *ValidationError; an unknown
// section name is a plain error.
func ValidateSection(name string, payload json.RawMessage) error {
	var messages []string

	switch name {
	case SectionPersonalInfo:
		var info PersonalInfo
		messages = decodeAndValidate(payload, &info)

	case SectionAbout:
		var about About
		messages = decodeAndValidate(payload, &about)

	case SectionContact:
		var contact Contact
		messages = decodeAndValidate(payload, &contact)

	case SectionExperience:
		var jobs []Job
		if err := json.Unmarshal(payload, &jobs); err != nil {
			messages = []string{"invalid experience payload: " + err.Error()}
			break
		}
		for i, job := range jobs {
			for _, m := range structMessages(job) {
				messages = append(messages, fmt.Sprintf("job %d: %s", i+1, m))
			}
		}

	case SectionProjects:
		var projects []Project
		if err := json.Unmarshal(payload, &projects); err != nil {
			messages = []string{"invalid projects payload: " + err.Error()}
			break
		}
		for i, project := range projects {
			for _, m := range structMessages(project) {
				messages = append(messages, fmt.Sprintf("project %d: %s", i+1, m))
			}
		}

	case SectionSkills:
		messages = validateSkills(payload)

	default:
		return fmt.Errorf("unknown section %q", name)
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

func decodeAndValidate(payload json.RawMessage, target any) []string {
	if err := json.Unmarshal(payload, target); err != nil {
		return []string{"invalid payload: " + err.Error()}
	}
	return structMessages(target)
}

func structMessages(target any) []string {
	if err := validate.Struct(target); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return validation.FormatValidationErrors(err)
		}
		return []string{err.Error()}
	}
	return nil
}

func validateSkills(payload json.RawMessage) []string {
	var categories SkillCategoryMap
	if err := json.Unmarshal(payload, &categories); err != nil {
		return []string{"invalid skills payload: " + err.Error()}
	}

	var messages []string
	check := func(path string, skills []Skill) {
		for _, skill := range skills {
			for _, m := range structMessages(skill) {
				messages = append(messages, fmt.Sprintf("%s: %s", path, m))
			}
		}
	}

	for _, category := range categories {
		if category.Value.IsHierarchical() {
			for _, sub := range category.Value.Subcategories {
				check(category.Name+"/"+sub.Name, sub.Skills)
			}
			continue
		}
		check(category.Name, category.Value.Skills)
	}
	return messages
}

// ValidateStruct runs the shared validator over any tagged struct, returning
// a *ValidationError with formatted messages on failure.
func ValidateStruct(target any) error {
	if messages := structMessages(target); len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}
