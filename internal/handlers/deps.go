package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/utools/internal/catalog"
	"github.com/GregMSThompson/utools/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ConverterSvc    ConverterService
	NetworkSvc      NetworkService
	Catalog         *catalog.Catalog
}
