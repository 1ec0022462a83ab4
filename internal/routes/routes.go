// Package routes holds the view access policy shared by the gateway and the
// CLI. It performs no I/O.
package routes

import (
	"strings"

	"servicehub/pkg/model"
)

const (
	Home         = "/"
	Login        = "/login"
	Register     = "/register"
	JoinProvider = "/join-provider"
	Dashboard    = "/dashboard"
	Customer     = "/customer"
	Provider     = "/provider"
	Unauthorized = "/unauthorized"
)

type Access int

const (
	Public Access = iota
	Authenticated
	CustomerOnly
	ProviderOnly
)

var table = map[string]Access{
	Home:         Public,
	Login:        Public,
	Register:     Public,
	JoinProvider: Public,
	Unauthorized: Public,
	Dashboard:    Authenticated,
	Customer:     CustomerOnly,
	Provider:     ProviderOnly,
}

// Decision is the outcome of resolving a path. When Redirect is empty the
// view at Path may be rendered.
type Decision struct {
	Path     string
	Redirect string
}

func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

// Resolve applies the access policy for path to user, which is nil for an
// anonymous visitor. Paths below /customer and /provider share the policy of
// their section.
func Resolve(path string, user *model.User) Decision {
	path = clean(path)

	access, ok := table[path]
	if !ok {
		return Decision{Path: path, Redirect: Home}
	}

	switch access {
	case Public:
		return Decision{Path: path}
	case Authenticated:
		if user == nil {
			return Decision{Path: path, Redirect: Login}
		}
		if path == Dashboard {
			return Decision{Path: path, Redirect: DashboardFor(user.Role)}
		}
		return Decision{Path: path}
	case CustomerOnly:
		return requireRole(path, user, model.RoleCustomer)
	case ProviderOnly:
		return requireRole(path, user, model.RoleServiceProvider)
	}
	return Decision{Path: path, Redirect: Home}
}

// DashboardFor returns the landing view for role.
func DashboardFor(role model.Role) string {
	switch role {
	case model.RoleCustomer:
		return Customer
	case model.RoleServiceProvider:
		return Provider
	default:
		return Unauthorized
	}
}

func requireRole(path string, user *model.User, role model.Role) Decision {
	if user == nil {
		return Decision{Path: path, Redirect: Login}
	}
	if user.Role != role {
		return Decision{Path: path, Redirect: Unauthorized}
	}
	return Decision{Path: path}
}

func clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return Home
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	for _, section := range []string{Customer, Provider} {
		if strings.HasPrefix(path, section+"/") {
			return section
		}
	}
	return path
}
