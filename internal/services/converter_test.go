package services

import (
	"errors"
	"testing"

	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/errs"
	"github.com/GregMSThompson/utools/pkg/helpers"
)

func TestConverterServiceConvert(t *testing.T) {
	svc := NewConverterService()
	ctx := helpers.TestCtx()

	cases := []struct {
		name string
		req  dto.ConvertRequest
		want float64
	}{
		{"meters to kilometers", dto.ConvertRequest{Value: 1, From: "m", To: "km"}, 0.001},
		{"feet to miles", dto.ConvertRequest{Value: 5280, From: "ft", To: "mi"}, 1.0},
		{"upper case codes", dto.ConvertRequest{Value: 2, From: "KM", To: "M"}, 2000},
		{"miles to kilometers", dto.ConvertRequest{Value: 10, From: "mi", To: "km"}, 16.0934},
		{"same unit", dto.ConvertRequest{Value: 3.5, From: "ft", To: "ft"}, 3.5},
		{"same unknown unit", dto.ConvertRequest{Value: 7, From: "yd", To: "YD"}, 7},
		{"rounded to six places", dto.ConvertRequest{Value: 1, From: "ft", To: "mi"}, 0.000189},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Convert(ctx, tc.req)
			if err != nil {
				t.Fatalf("Convert returned error: %v", err)
			}
			if got.Result != tc.want {
				t.Fatalf("result = %v, want %v", got.Result, tc.want)
			}
		})
	}
}

func TestConverterServiceInvalidValue(t *testing.T) {
	svc := NewConverterService()
	ctx := helpers.TestCtx()

	for _, v := range []float64{0, -1, -0.0001} {
		for _, pair := range [][2]string{{"m", "km"}, {"m", "m"}, {"yd", "lb"}} {
			_, err := svc.Convert(ctx, dto.ConvertRequest{Value: v, From: pair[0], To: pair[1]})

			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("value %v %v: expected ValidationError, got %v", v, pair, err)
			}
			if verr.Code != errs.CodeInvalidValue {
				t.Fatalf("value %v %v: code = %s, want InvalidValue", v, pair, verr.Code)
			}
		}
	}
}

func TestConverterServiceUnsupportedConversion(t *testing.T) {
	svc := NewConverterService()

	_, err := svc.Convert(helpers.TestCtx(), dto.ConvertRequest{Value: 1, From: "m", To: "yd"})

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Code != errs.CodeUnsupportedConversion {
		t.Fatalf("code = %s, want UnsupportedConversion", verr.Code)
	}
}

func TestConverterServiceHugeValues(t *testing.T) {
	svc := NewConverterService()
	ctx := helpers.TestCtx()

	got, err := svc.Convert(ctx, dto.ConvertRequest{Value: 1e303, From: "m", To: "m"})
	if err != nil {
		t.Fatalf("identity of a huge value returned error: %v", err)
	}
	if got.Result != 1e303 {
		t.Fatalf("result = %v, want 1e303", got.Result)
	}

	_, err = svc.Convert(ctx, dto.ConvertRequest{Value: 1e306, From: "km", To: "ft"})
	var verr *errs.ValidationError
	if !errors.As(err, &verr) || verr.Code != errs.CodeInvalidValue {
		t.Fatalf("overflowing product: expected InvalidValue, got %v", err)
	}
}
