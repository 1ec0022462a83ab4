package routes

import (
	"testing"

	"servicehub/pkg/model"
)

func TestResolve(t *testing.T) {
	customer := &model.User{ID: 1, Role: model.RoleCustomer}
	provider := &model.User{ID: 2, Role: model.RoleServiceProvider}

	tests := []struct {
		name         string
		path         string
		user         *model.User
		wantRedirect string
	}{
		{"home anonymous", "/", nil, ""},
		{"login anonymous", "/login", nil, ""},
		{"register anonymous", "/register", nil, ""},
		{"join provider anonymous", "/join-provider", nil, ""},
		{"unauthorized view", "/unauthorized", customer, ""},
		{"dashboard anonymous", "/dashboard", nil, Login},
		{"dashboard customer", "/dashboard", customer, Customer},
		{"dashboard provider", "/dashboard", provider, Provider},
		{"customer anonymous", "/customer", nil, Login},
		{"customer as customer", "/customer", customer, ""},
		{"customer as provider", "/customer", provider, Unauthorized},
		{"provider anonymous", "/provider", nil, Login},
		{"provider as provider", "/provider", provider, ""},
		{"provider as customer", "/provider", customer, Unauthorized},
		{"customer mutation as provider", "/customer/bookings", provider, Unauthorized},
		{"provider mutation as provider", "/provider/bookings/7/accept", provider, ""},
		{"provider mutation anonymous", "/provider/profile", nil, Login},
		{"trailing slash", "/customer/", customer, ""},
		{"query string", "/customer?q=pipes", customer, ""},
		{"unknown anonymous", "/nowhere", nil, Home},
		{"unknown authenticated", "/admin", provider, Home},
		{"empty path", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(tt.path, tt.user)
			if d.Redirect != tt.wantRedirect {
				t.Errorf("Resolve(%q) redirect = %q, want %q", tt.path, d.Redirect, tt.wantRedirect)
			}
			if d.Allowed() != (tt.wantRedirect == "") {
				t.Errorf("Allowed() = %v", d.Allowed())
			}
		})
	}
}

func TestDashboardFor(t *testing.T) {
	if got := DashboardFor(model.RoleCustomer); got != Customer {
		t.Errorf("customer -> %q", got)
	}
	if got := DashboardFor(model.RoleServiceProvider); got != Provider {
		t.Errorf("provider -> %q", got)
	}
	if got := DashboardFor(model.Role("ADMIN")); got != Unauthorized {
		t.Errorf("unknown -> %q", got)
	}
}
