package handlers

import (
	"net/http"

	"github.com/GregMSThompson/utools/internal/catalog"
	"github.com/GregMSThompson/utools/internal/errs"
	"github.com/GregMSThompson/utools/internal/response"
)

const Banner = "u-tools API"

type infoHandlers struct {
	ResponseHandler response.ResponseHandler
	Catalog         *catalog.Catalog
}

func NewInfoHandlers(deps *Deps) *infoHandlers {
	c := deps.Catalog
	if c == nil {
		c = catalog.Default()
	}
	return &infoHandlers{
		ResponseHandler: deps.ResponseHandler,
		Catalog:         c,
	}
}

// GetBanner confirms the service is up.
func (h *infoHandlers) GetBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Banner))
}

func (h *infoHandlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ListTools returns the tool catalog in display order.
func (h *infoHandlers) ListTools(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.Catalog.All())
}

func (h *infoHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.HandleError(w, r, errs.NewNotFoundError("no route for "+r.Method+" "+r.URL.Path))
}

func (h *infoHandlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteError(w, r, http.StatusMethodNotAllowed, errs.CodeMethodNotAllowed,
		"method "+r.Method+" is not allowed on "+r.URL.Path)
}
