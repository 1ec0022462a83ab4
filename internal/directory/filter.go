package directory

import (
	"strings"

	"servicehub/pkg/model"
)

// Filter returns the providers matching every active criterion, in input
// order. Text matches name or any service; Service must equal one of the
// provider's services; Location is a substring match; MaxFare is an
// inclusive upper bound. All string comparisons ignore case.
func Filter(providers []model.ServiceProvider, f model.ProviderFilter) []model.ServiceProvider {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	service := strings.ToLower(strings.TrimSpace(f.Service))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]model.ServiceProvider, 0, len(providers))
	for _, p := range providers {
		if text != "" && !matchesText(p, text) {
			continue
		}
		if service != "" && !offers(p, service) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(p.Location), location) {
			continue
		}
		if f.MaxFare > 0 && p.Fare > f.MaxFare {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesText(p model.ServiceProvider, text string) bool {
	if strings.Contains(strings.ToLower(p.Name), text) {
		return true
	}
	for _, s := range p.Services {
		if strings.Contains(strings.ToLower(s), text) {
			return true
		}
	}
	return false
}

func offers(p model.ServiceProvider, service string) bool {
	for _, s := range p.Services {
		if strings.ToLower(s) == service {
			return true
		}
	}
	return false
}
