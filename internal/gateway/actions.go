package gateway

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"servicehub/internal/routes"
	httputil "servicehub/pkg/http"
	"servicehub/pkg/model"
)

// SessionView answers a successful login or registration. Redirect is where
// a browser should go next.
type SessionView struct {
	User     *model.User `json:"user"`
	Redirect string      `json:"redirect"`
}

type registerRequest struct {
	model.RegisterData
	ConfirmPassword string `json:"confirmPassword"`
}

type bookingRequest struct {
	ServiceProviderID int64      `json:"serviceProviderId"`
	ServiceType       string     `json:"serviceType"`
	Description       string     `json:"description"`
	ScheduledDate     model.Date `json:"scheduledDate"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)

	var creds model.Credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		h.fail(w, r, nil, "Login", err)
		return
	}

	user, err := sc.session.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		h.fail(w, r, sc, "Login", err)
		return
	}

	h.ok(w, "Login", SessionView{User: user, Redirect: routes.Dashboard})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)

	var req registerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, nil, "Register", err)
		return
	}
	data := req.RegisterData
	data.ConfirmPassword = req.ConfirmPassword

	user, err := sc.session.Register(r.Context(), data)
	if err != nil {
		h.fail(w, r, sc, "Register", err)
		return
	}

	h.created(w, "Register", SessionView{User: user, Redirect: routes.Dashboard})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)
	if err := sc.session.Logout(); err != nil {
		h.fail(w, r, nil, "Logout", err)
		return
	}
	h.redirect(w, "Logout", routes.Home)
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)
	user, ok := h.authorize(w, r, sc, "CreateBooking")
	if !ok {
		return
	}

	var req bookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, nil, "CreateBooking", err)
		return
	}

	booking, err := sc.bookings.Create(r.Context(), user.ID, req.ServiceProviderID, req.ServiceType, req.Description, req.ScheduledDate)
	if err != nil {
		h.fail(w, r, sc, "CreateBooking", err)
		return
	}

	h.created(w, "CreateBooking", booking)
}

func (h *Handler) AcceptBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.setStatus(w, r, ps, model.Accepted, "AcceptBooking")
}

func (h *Handler) RejectBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.setStatus(w, r, ps, model.Rejected, "RejectBooking")
}

// setStatus loads the provider's bookings first so transitions the current
// state already rules out are refused without a status call.
func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params, status model.BookingStatus, handler string) {
	sc := h.newScope(w, r)
	user, ok := h.authorize(w, r, sc, handler)
	if !ok {
		return
	}

	id, err := httputil.ExtractIDParam(ps, "id")
	if err != nil {
		h.fail(w, r, nil, handler, err)
		return
	}

	if _, err := sc.bookings.ListForProvider(r.Context(), user.ID); err != nil {
		h.log.Warn("Could not load bookings before status change", "id", id, "error", err)
	}

	booking, err := sc.bookings.SetStatus(r.Context(), id, status)
	if err != nil {
		h.fail(w, r, sc, handler, err)
		return
	}

	h.ok(w, handler, booking)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sc := h.newScope(w, r)
	user, ok := h.authorize(w, r, sc, "UpdateProfile")
	if !ok {
		return
	}

	var patch model.ProfileUpdate
	if err := httputil.DecodeJSON(r, &patch); err != nil {
		h.fail(w, r, nil, "UpdateProfile", err)
		return
	}

	profile, err := sc.profiles.Update(r.Context(), user.ID, patch)
	if err != nil {
		h.fail(w, r, sc, "UpdateProfile", err)
		return
	}

	h.ok(w, "UpdateProfile", profile)
}
