package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/errs"
	"github.com/GregMSThompson/utools/pkg/logger"
)

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(dto.ErrorEnvelope{
		Error: dto.ErrorBody{Code: code, Message: message},
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.ValidationError:
		log.Warn("validation failed", "code", e.Code, "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, e.Code, e.Message)

	case *errs.ExternalServiceError:
		// surfaced to the client as-is; nothing sensitive flows through here
		log.Warn("external service error",
			"service", e.Service,
			"code", e.Code,
			"error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, e.Code, e.Message)

	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, errs.CodeNotFound, e.Message)

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, errs.CodeInternal,
			"An unexpected error occurred")
	}
}
