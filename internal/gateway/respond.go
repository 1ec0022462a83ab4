package gateway

import (
	"net/http"

	"servicehub/internal/routes"
	apperrors "servicehub/pkg/errors"
	httputil "servicehub/pkg/http"
	"servicehub/pkg/middleware"
	"servicehub/pkg/model"
)

// fail writes err to the client. An auth failure also ends the session so
// the stale cookie is dropped.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, sc *scope, handler string, err error) {
	if apperrors.IsAuth(err) && sc != nil {
		if logoutErr := sc.session.Logout(); logoutErr != nil {
			h.log.Error("failed to clear session", "handler", handler, "error", logoutErr)
		}
	}

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"handler", handler,
			"request_id", middleware.GetRequestID(r.Context()),
			"code", appErr.Code,
			"error", err,
		)
	}

	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *Handler) ok(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) created(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteCreated(w, data); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "operation", "WriteCreated", "error", err)
	}
}

func (h *Handler) redirect(w http.ResponseWriter, handler, location string) {
	if err := httputil.WriteRedirect(w, location); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "operation", "WriteRedirect", "error", err)
	}
}

func (h *Handler) redirectHome(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, "NotFound", routes.Home)
}

// view applies the route policy to a GET view and redirects when it denies
// access.
func (h *Handler) view(w http.ResponseWriter, r *http.Request, sc *scope, handler string) (*model.User, bool) {
	user := sc.session.Current()
	d := routes.Resolve(r.URL.Path, user)
	if !d.Allowed() {
		h.redirect(w, handler, d.Redirect)
		return nil, false
	}
	return user, true
}

// authorize applies the route policy to a mutation. Denials are reported as
// errors rather than redirects.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, sc *scope, handler string) (*model.User, bool) {
	user := sc.session.Current()
	d := routes.Resolve(r.URL.Path, user)
	if d.Allowed() {
		return user, true
	}

	var err error
	switch d.Redirect {
	case routes.Login:
		err = apperrors.Unauthorized("please log in to continue")
	case routes.Unauthorized:
		err = apperrors.Forbidden("your account cannot perform this action")
	default:
		err = apperrors.NotFound("page")
	}
	h.fail(w, r, sc, handler, err)
	return nil, false
}

// transportMessage returns the upstream message of a transport error so a
// view can render partial data alongside it.
func transportMessage(err error) string {
	if err == nil || !apperrors.IsTransport(err) {
		return ""
	}
	return apperrors.AsAppError(err).Message
}
