package errs

import "fmt"

// Machine-readable codes returned in the error envelope.
const (
	CodeInvalidRequest        = "InvalidRequest"
	CodeInvalidValue          = "InvalidValue"
	CodeUnsupportedConversion = "UnsupportedConversion"
	CodeInvalidHost           = "InvalidHost"
	CodePingFailed            = "PingFailed"
	CodeNotFound              = "NotFound"
	CodeMethodNotAllowed      = "MethodNotAllowed"
	CodeInternal              = "InternalError"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

// ValidationError is a rejected request. Code names the rule that failed.
type ValidationError struct {
	ErrorMessage
	Code string
}

// ExternalServiceError wraps a failure of something outside the process,
// such as name resolution or the ICMP socket.
type ExternalServiceError struct {
	ErrorMessage
	Code    string
	Service string
	Err     error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
		Code:         code,
	}
}

func NewInvalidRequestError(message string) *ValidationError {
	return NewValidationError(CodeInvalidRequest, message)
}

func NewInvalidValueError() *ValidationError {
	return NewValidationError(CodeInvalidValue, "Value must be positive")
}

func NewValueOutOfRangeError() *ValidationError {
	return NewValidationError(CodeInvalidValue, "Value is too large to convert")
}

func NewUnsupportedConversionError(from, to string) *ValidationError {
	return NewValidationError(CodeUnsupportedConversion,
		fmt.Sprintf("Unsupported conversion from %q to %q", from, to))
}

func NewInvalidHostError() *ValidationError {
	return NewValidationError(CodeInvalidHost, "Host cannot be empty")
}

func NewPingFailedError(err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: err.Error()},
		Code:         CodePingFailed,
		Service:      "icmp",
		Err:          err,
	}
}
