package response

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/utools/internal/errs"
	"github.com/GregMSThompson/utools/pkg/logger"
)

// WriteSuccess encodes data as the response body without an envelope; tool
// responses are consumed as-is by the frontend.
func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
		h.WriteError(w, r, http.StatusInternalServerError, errs.CodeInternal, "An unexpected error occurred")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
