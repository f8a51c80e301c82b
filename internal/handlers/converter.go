package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/response"
)

type ConverterService interface {
	Convert(ctx context.Context, req dto.ConvertRequest) (dto.ConvertResponse, error)
}

var convertSchema = mustSchema(`{
	"type": "object",
	"properties": {
		"value": {"type": "number"},
		"from": {"type": "string"},
		"to": {"type": "string"}
	},
	"required": ["from", "to"]
}`)

type converterHandlers struct {
	ResponseHandler response.ResponseHandler
	ConverterSvc    ConverterService
}

func NewConverterHandlers(deps *Deps) *converterHandlers {
	return &converterHandlers{
		ResponseHandler: deps.ResponseHandler,
		ConverterSvc:    deps.ConverterSvc,
	}
}

func (h *converterHandlers) ConverterRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/convert", h.Convert)
	return r
}

func (h *converterHandlers) Convert(w http.ResponseWriter, r *http.Request) {
	var req dto.ConvertRequest
	if err := decodeBody(r, convertSchema, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	resp, err := h.ConverterSvc.Convert(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
