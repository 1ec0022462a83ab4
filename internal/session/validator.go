package session

import (
	"strings"

	"servicehub/pkg/model"
	"servicehub/pkg/sanitizer"
	"servicehub/pkg/validation"
)

type RegisterValidator struct {
	validate *validation.Validator
}

func NewRegisterValidator() *RegisterValidator {
	return &RegisterValidator{validate: validation.New()}
}

// Normalize sanitizes the form in place and drops provider-only fields for
// customers.
func (v *RegisterValidator) Normalize(data *model.RegisterData) {
	data.Name = sanitizer.NormalizeName(data.Name)
	data.Email = sanitizer.NormalizeEmail(data.Email)
	data.Phone = sanitizer.NormalizePhone(data.Phone)
	data.Location = sanitizer.NormalizeLocation(data.Location)

	if data.Role != model.RoleServiceProvider {
		data.Services = nil
		data.Fare = nil
		data.Description = ""
		return
	}
	data.Services = sanitizer.NormalizeServices(data.Services)
	data.Description = strings.TrimSpace(data.Description)
}

// Validate returns every violation on the form, or nil.
func (v *RegisterValidator) Validate(data *model.RegisterData) []string {
	violations := v.validate.Struct(data)

	if data.ConfirmPassword != "" && data.ConfirmPassword != data.Password {
		violations = append(violations, "passwords do not match")
	}

	if data.Role == model.RoleServiceProvider {
		violations = append(violations, v.validateProvider(data)...)
	}

	return violations
}

func (v *RegisterValidator) validateProvider(data *model.RegisterData) []string {
	var violations []string

	if len(data.Services) == 0 {
		violations = append(violations, "services must include at least one service")
	}
	if data.Fare == nil || *data.Fare <= 0 {
		violations = append(violations, "fare must be greater than 0")
	}
	if data.Description == "" {
		violations = append(violations, "description is required")
	}

	return violations
}
