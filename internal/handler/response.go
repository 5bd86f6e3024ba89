package handler

// RESPONSE HELPERS:
// The public API has a fixed, slightly unusual wire contract that clients
// already depend on:
//
//	schema failure   → 411 {"message": "Inputs are incorrect"}
//	auth failure     → 403 {"message": "You are not logged in"}
//	persistence/etc. → 400 {"error": "Something went wrong"}
//
// Note the asymmetry: auth and validation failures use a "message" key,
// persistence failures use an "error" key. That shape is load-bearing —
// these helpers exist so no handler ever hand-rolls a response body and
// drifts from it.
//
// The service layer returns typed apperror values; writeError is the single
// place they get translated to HTTP. Services never see a status code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rahulv/blog-platform/internal/apperror"
)

// messageResponse carries validation and auth failures.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse carries persistence and unexpected failures.
type errorResponse struct {
	Error string `json:"error"`
}

const (
	msgInputsIncorrect    = "Inputs are incorrect"
	msgSomethingWentWrong = "Something went wrong"
	msgNotLoggedIn        = "You are not logged in"
)

// writeJSON sends a JSON response with the given status code.
// Headers must be set before WriteHeader, and WriteHeader before Encode —
// once the body starts streaming, header changes are silently dropped.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeInputsIncorrect is the schema-failure response. 411 is what the API
// has always returned here, so 411 it stays.
func writeInputsIncorrect(w http.ResponseWriter) {
	writeJSON(w, http.StatusLengthRequired, messageResponse{Message: msgInputsIncorrect})
}

// writeError maps a domain error to the wire contract.
//
// errors.Is walks the whole chain (through fmt.Errorf %w wrapping and
// AppError.Unwrap), so it doesn't matter how many layers wrapped the
// sentinel on the way up.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		writeInputsIncorrect(w)
	case errors.Is(err, apperror.ErrUnauthorized):
		// The auth middleware writes its own fixed 403 body; this branch
		// serves credential failures from the signin flow.
		writeJSON(w, http.StatusForbidden, messageResponse{Message: appMessage(err, msgNotLoggedIn)})
	case errors.Is(err, apperror.ErrConflict):
		writeJSON(w, http.StatusConflict, messageResponse{Message: appMessage(err, "conflict")})
	default:
		// Not-found, constraint violations, dead database — the contract
		// collapses every persistence failure into one opaque 400. The
		// distinction lives in the logs, not on the wire.
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgSomethingWentWrong})
	}
}

// appMessage pulls the human-readable message out of a wrapped AppError,
// falling back when the chain holds only a bare sentinel.
func appMessage(err error, fallback string) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
