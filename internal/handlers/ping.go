package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/response"
)

type NetworkService interface {
	Ping(ctx context.Context, req dto.PingRequest) (dto.PingResponse, error)
}

// host is not required here: a missing host is reported as InvalidHost.
var pingSchema = mustSchema(`{
	"type": "object",
	"properties": {
		"host": {"type": ["string", "null"]},
		"count": {"type": ["integer", "null"]}
	}
}`)

type pingHandlers struct {
	ResponseHandler response.ResponseHandler
	NetworkSvc      NetworkService
}

func NewPingHandlers(deps *Deps) *pingHandlers {
	return &pingHandlers{
		ResponseHandler: deps.ResponseHandler,
		NetworkSvc:      deps.NetworkSvc,
	}
}

func (h *pingHandlers) PingRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/run", h.Run)
	return r
}

func (h *pingHandlers) Run(w http.ResponseWriter, r *http.Request) {
	req := dto.PingRequest{Count: 1}
	if err := decodeBody(r, pingSchema, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	resp, err := h.NetworkSvc.Ping(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
