package errs

import (
	"errors"
	"testing"
)

func TestConstructorsCarryCodes(t *testing.T) {
	cases := []struct {
		err  *ValidationError
		code string
	}{
		{NewInvalidValueError(), CodeInvalidValue},
		{NewInvalidHostError(), CodeInvalidHost},
		{NewUnsupportedConversionError("m", "yd"), CodeUnsupportedConversion},
		{NewInvalidRequestError("bad body"), CodeInvalidRequest},
	}
	for _, tc := range cases {
		if tc.err.Code != tc.code {
			t.Errorf("code = %s, want %s", tc.err.Code, tc.code)
		}
		if tc.err.Error() == "" {
			t.Errorf("%s: empty message", tc.code)
		}
	}
}

func TestPingFailedUnwraps(t *testing.T) {
	cause := errors.New("lookup nowhere.invalid: no such host")
	err := NewPingFailedError(cause)

	if err.Code != CodePingFailed {
		t.Fatalf("code = %s", err.Code)
	}
	if err.Message != cause.Error() {
		t.Fatalf("message = %q, want %q", err.Message, cause.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
}
