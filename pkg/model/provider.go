package model

import "slices"

// ServiceCatalogue lists the categories offered on the registration form.
var ServiceCatalogue = []string{
	"plumber",
	"electrician",
	"carpenter",
	"painter",
	"cleaner",
	"gardener",
	"handyman",
}

type ServiceProvider struct {
	User
	Services      []string `json:"services"`
	Fare          float64  `json:"fare"`
	Description   string   `json:"description"`
	Rating        float64  `json:"rating"`
	CompletedJobs int      `json:"completedJobs"`
}

func (p *ServiceProvider) Offers(service string) bool {
	return slices.Contains(p.Services, service)
}

// ProfileUpdate holds the provider fields a provider may change. Identity and
// server-computed fields cannot be patched.
type ProfileUpdate struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,nonblank,max=100"`
	Phone       *string   `json:"phone,omitempty" validate:"omitempty,e164"`
	Location    *string   `json:"location,omitempty" validate:"omitempty,max=100"`
	Services    *[]string `json:"services,omitempty"`
	Fare        *float64  `json:"fare,omitempty"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=1000"`
}

func (u *ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Location == nil &&
		u.Services == nil && u.Fare == nil && u.Description == nil
}

// Apply copies the patched fields onto p and leaves everything else alone.
func (u *ProfileUpdate) Apply(p *ServiceProvider) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Services != nil {
		p.Services = slices.Clone(*u.Services)
	}
	if u.Fare != nil {
		p.Fare = *u.Fare
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
}

type ProviderFilter struct {
	Text     string  `json:"q,omitempty"`
	Service  string  `json:"service,omitempty"`
	Location string  `json:"location,omitempty"`
	MaxFare  float64 `json:"max_fare,omitempty"`
}

func (f ProviderFilter) Active() bool {
	return f.Text != "" || f.Service != "" || f.Location != "" || f.MaxFare > 0
}
