package services

import (
	"context"
	"math"

	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/errs"
	"github.com/GregMSThompson/utools/internal/units"
	"github.com/GregMSThompson/utools/pkg/logger"
)

type converterService struct{}

func NewConverterService() *converterService {
	return &converterService{}
}

// Convert multiplies the value by the table factor for from→to and rounds
// the result to units.Precision decimals.
func (s *converterService) Convert(ctx context.Context, req dto.ConvertRequest) (dto.ConvertResponse, error) {
	log := logger.FromContext(ctx)

	if req.Value <= 0 {
		return dto.ConvertResponse{}, errs.NewInvalidValueError()
	}

	out := units.Lookup(req.From, req.To)
	switch out.Kind {
	case units.Found, units.Identity:
	default:
		return dto.ConvertResponse{}, errs.NewUnsupportedConversionError(req.From, req.To)
	}

	product := req.Value * out.Factor
	if math.IsInf(product, 0) || math.IsNaN(product) {
		return dto.ConvertResponse{}, errs.NewValueOutOfRangeError()
	}

	result := units.Round(product)
	log.Debug("converted value", "value", req.Value, "from", req.From, "to", req.To, "factor", out.Factor, "result", result)

	return dto.ConvertResponse{Result: result}, nil
}
