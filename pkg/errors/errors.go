package errors

import (
	"errors"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/middleware"
	"github.com/ankibridge/ankibridge-service/pkg/app"
	"github.com/ankibridge/ankibridge-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError is the unified application error carried from the service layer
// up to the wire. On the wire it collapses to the envelope's error string.
type AppError struct {
	// Code internal error code
	Code int `json:"code"`
	// Message error message
	Message string `json:"message"`
	// Details optional extra detail lines
	Details []string `json:"details,omitempty"`
	// TraceID request trace ID
	TraceID string `json:"traceId,omitempty"`
	// Cause original error, not serialized
	Cause error `json:"-"`
	// Timestamp when the error was created
	Timestamp time.Time `json:"timestamp"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates an AppError from a registered Code.
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// NewAppErrorWithMessage creates an AppError with a custom message.
func NewAppErrorWithMessage(errorCode int, message string, cause error) *AppError {
	return &AppError{
		Code:      errorCode,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithTraceID sets the trace ID and returns the error for chaining.
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// WithDetails sets the detail lines and returns the error for chaining.
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	return e
}

// ErrorResponse maps any error to the wire envelope's error string. AppError
// and code.Code keep their message; anything else becomes an internal error.
func ErrorResponse(c *gin.Context, err error) {
	_ = middleware.GetTraceIDFromGin(c)
	response := app.NewResponse(c)

	var appErr *AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if len(appErr.Details) > 0 {
			msg = msg + ": " + appErr.Details[0]
		}
		response.ToError(msg)
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		msg := codeErr.Msg()
		if codeErr.HaveDetails() && len(codeErr.Details()) > 0 {
			msg = msg + ": " + codeErr.Details()[0]
		}
		response.ToError(msg)
		return
	}

	response.ToError(code.ErrorServerInternal.Msg())
}

// IsAppError reports whether err is (or wraps) an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
