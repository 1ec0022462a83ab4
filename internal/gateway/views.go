package gateway

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	bookingservice "servicehub/internal/bookings/service"
	"servicehub/internal/routes"
	httputil "servicehub/pkg/http"
	"servicehub/pkg/model"
)

type HomeView struct {
	User     *model.User             `json:"user"`
	Featured []model.ServiceProvider `json:"featured"`
	Error    string                  `json:"error,omitempty"`
}

// FormView describes the login and registration forms.
type FormView struct {
	Form     string       `json:"form"`
	User     *model.User  `json:"user"`
	Role     model.Role   `json:"role,omitempty"`
	Roles    []model.Role `json:"roles,omitempty"`
	Services []string     `json:"services,omitempty"`
}

type MessageView struct {
	Message string `json:"message"`
}

type CustomerView struct {
	User      *model.User             `json:"user"`
	Filter    model.ProviderFilter    `json:"filter"`
	Providers []model.ServiceProvider `json:"providers"`
	Bookings  []model.Booking         `json:"bookings"`
	Error     string                  `json:"error,omitempty"`
}

type ProviderView struct {
	User     *model.User            `json:"user"`
	Profile  *model.ServiceProvider `json:"profile"`
	Bookings []model.Booking        `json:"bookings"`
	Stats    model.ProviderStats    `json:"stats"`
	Error    string                 `json:"error,omitempty"`
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)

	featured, err := sc.directory.Featured(r.Context())
	if err != nil && featured == nil {
		h.fail(w, r, sc, "Home", err)
		return
	}

	h.ok(w, "Home", HomeView{
		User:     sc.session.Current(),
		Featured: featured,
		Error:    transportMessage(err),
	})
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)
	h.ok(w, "LoginForm", FormView{Form: "login", User: sc.session.Current()})
}

func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.registerForm(w, r, model.RoleCustomer)
}

// JoinProviderForm is the registration form with the provider role
// preselected.
func (h *Handler) JoinProviderForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.registerForm(w, r, model.RoleServiceProvider)
}

func (h *Handler) registerForm(w http.ResponseWriter, r *http.Request, role model.Role) {
	sc := h.newScope(w, r)
	h.ok(w, "RegisterForm", FormView{
		Form:     "register",
		User:     sc.session.Current(),
		Role:     role,
		Roles:    []model.Role{model.RoleCustomer, model.RoleServiceProvider},
		Services: model.ServiceCatalogue,
	})
}

func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.ok(w, "Unauthorized", MessageView{
		Message: "You don't have permission to access this page. Please check your account role or contact support.",
	})
}

// Dashboard always redirects: to the role's dashboard, or to the login form.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)
	d := routes.Resolve(r.URL.Path, sc.session.Current())
	location := d.Redirect
	if location == "" {
		location = routes.Home
	}
	h.redirect(w, "Dashboard", location)
}

func (h *Handler) CustomerDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)
	user, ok := h.view(w, r, sc, "CustomerDashboard")
	if !ok {
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		h.fail(w, r, sc, "CustomerDashboard", err)
		return
	}

	providers, err := sc.directory.Search(r.Context(), filter)
	if err != nil && providers == nil {
		h.fail(w, r, sc, "CustomerDashboard", err)
		return
	}
	message := transportMessage(err)

	bookings, err := sc.bookings.ListForCustomer(r.Context(), user.ID)
	if err != nil {
		if transportMessage(err) == "" {
			h.fail(w, r, sc, "CustomerDashboard", err)
			return
		}
		if message == "" {
			message = transportMessage(err)
		}
		bookings = []model.Booking{}
	}

	h.ok(w, "CustomerDashboard", CustomerView{
		User:      user,
		Filter:    filter,
		Providers: providers,
		Bookings:  bookings,
		Error:     message,
	})
}

func (h *Handler) ProviderDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)
	user, ok := h.view(w, r, sc, "ProviderDashboard")
	if !ok {
		return
	}

	var message string
	bookings, err := sc.bookings.ListForProvider(r.Context(), user.ID)
	if err != nil {
		if message = transportMessage(err); message == "" {
			h.fail(w, r, sc, "ProviderDashboard", err)
			return
		}
		bookings = []model.Booking{}
	}

	profile, err := sc.profiles.Get(r.Context(), user.ID)
	if err != nil {
		msg := transportMessage(err)
		if msg == "" {
			h.fail(w, r, sc, "ProviderDashboard", err)
			return
		}
		if message == "" {
			message = msg
		}
	}

	var rating float64
	if profile != nil {
		rating = profile.Rating
	}

	h.ok(w, "ProviderDashboard", ProviderView{
		User:     user,
		Profile:  profile,
		Bookings: bookings,
		Stats:    bookingservice.Stats(bookings, rating),
		Error:    message,
	})
}

func parseFilter(r *http.Request) (model.ProviderFilter, error) {
	maxFare, err := httputil.ExtractFloatQuery(r, "max_fare")
	if err != nil {
		return model.ProviderFilter{}, err
	}
	q := r.URL.Query()
	return model.ProviderFilter{
		Text:     strings.TrimSpace(q.Get("q")),
		Service:  strings.TrimSpace(q.Get("service")),
		Location: strings.TrimSpace(q.Get("location")),
		MaxFare:  maxFare,
	}, nil
}
