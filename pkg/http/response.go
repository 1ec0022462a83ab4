package http

import (
	"encoding/json"
	"net/http"

	apperrors "servicehub/pkg/errors"
)

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

// RedirectResponse is written alongside the Location header so JSON clients
// can follow a view redirect without inspecting headers.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	return apperrors.WriteError(w, err)
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WriteRedirect(w http.ResponseWriter, location string) error {
	w.Header().Set("Location", location)
	return WriteJSON(w, http.StatusSeeOther, RedirectResponse{Redirect: location})
}
