package controllers

import (
	"errors"
	"net/http"

	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/pkg/logger"
	"github.com/quodex/invizo/pkg/response"
)

// fail maps service-layer error kinds to HTTP status codes. Anything
// without a known kind is logged and surfaced as a bare 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrInvalid):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrPaymentVerification):
		response.Error(w, http.StatusConflict, "payment verification failed")
	case errors.Is(err, services.ErrUnauthorized):
		response.Unauthorized(w)
	case errors.Is(err, services.ErrUpstream):
		logger.WithCtx(r.Context()).Error("upstream dependency failed", "error", err)
		response.Error(w, http.StatusBadGateway, "upstream dependency failed")
	default:
		logger.WithCtx(r.Context()).Error("unhandled service error", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
