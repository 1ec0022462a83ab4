package validator

import (
	"slices"
	"strings"

	"servicehub/pkg/model"
	"servicehub/pkg/sanitizer"
	"servicehub/pkg/validation"
)

type ProfileValidator struct {
	validate *validation.Validator
}

func NewProfileValidator() *ProfileValidator {
	return &ProfileValidator{validate: validation.New()}
}

// Sanitize normalizes the fields present in the patch.
func (v *ProfileValidator) Sanitize(patch *model.ProfileUpdate) {
	if patch.Name != nil {
		name := sanitizer.NormalizeName(*patch.Name)
		patch.Name = &name
	}
	if patch.Phone != nil {
		phone := sanitizer.NormalizePhone(*patch.Phone)
		patch.Phone = &phone
	}
	if patch.Location != nil {
		location := sanitizer.NormalizeLocation(*patch.Location)
		patch.Location = &location
	}
	if patch.Services != nil {
		services := sanitizer.NormalizeServices(*patch.Services)
		patch.Services = &services
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		patch.Description = &description
	}
}

func (v *ProfileValidator) Validate(patch *model.ProfileUpdate) []string {
	if patch.Empty() {
		return []string{"at least one field must be changed"}
	}

	violations := v.validate.Struct(patch)
	add := func(msg string) {
		if !slices.Contains(violations, msg) {
			violations = append(violations, msg)
		}
	}

	if patch.Name != nil && *patch.Name == "" {
		add("name must not be blank")
	}
	if patch.Services != nil && len(*patch.Services) == 0 {
		add("services must include at least one service")
	}
	if patch.Fare != nil && *patch.Fare <= 0 {
		add("fare must be greater than 0")
	}

	return violations
}
