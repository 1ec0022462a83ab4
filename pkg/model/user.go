package model

import (
	"encoding/json"
	"strings"
)

type Role string

const (
	RoleCustomer        Role = "CUSTOMER"
	RoleServiceProvider Role = "SERVICE_PROVIDER"

	// legacyServiceProvider is the spelling older backends put on the wire.
	legacyServiceProvider = "SERVICEPROVIDER"
)

func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleCustomer):
		return RoleCustomer, true
	case string(RoleServiceProvider), legacyServiceProvider, "PROVIDER":
		return RoleServiceProvider, true
	}
	return "", false
}

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleServiceProvider
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, ok := ParseRole(s); ok {
		*r = parsed
		return nil
	}
	*r = Role(s)
	return nil
}

// User is the authenticated identity as returned by the auth endpoints.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

func (u *User) IsCustomer() bool {
	return u != nil && u.Role == RoleCustomer
}

func (u *User) IsProvider() bool {
	return u != nil && u.Role == RoleServiceProvider
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterData is the registration form. Provider-only fields are dropped
// before submission when Role is CUSTOMER.
type RegisterData struct {
	Name            string   `json:"name" validate:"required,nonblank,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	ConfirmPassword string   `json:"-"`
	Role            Role     `json:"role" validate:"required,oneof=CUSTOMER SERVICE_PROVIDER"`
	Phone           string   `json:"phone,omitempty" validate:"omitempty,e164"`
	Location        string   `json:"location,omitempty" validate:"omitempty,max=100"`
	Services        []string `json:"services,omitempty" validate:"omitempty,dive,required,max=50"`
	Fare            *float64 `json:"fare,omitempty"`
	Description     string   `json:"description,omitempty" validate:"omitempty,max=1000"`
}
