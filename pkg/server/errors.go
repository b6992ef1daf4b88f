package server

import (
	"errors"
	"net/http"
	"time"

	tallyerrors "github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/serializer"

	"github.com/google/uuid"
)

// ErrorResponse is the JSON error envelope returned by every API route.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// HTTPStatusFromCode maps a structured error code to the HTTP status it
// surfaces as. Run-log parse codes are client errors: they mean the uploaded
// log, not the server, is at fault.
func HTTPStatusFromCode(code tallyerrors.ErrorCode) int {
	switch code {
	case tallyerrors.ErrCodeInvalidRequest,
		tallyerrors.ErrCodeMalformedRecord,
		tallyerrors.ErrCodeMalformedHeader,
		tallyerrors.ErrCodeMissingCase,
		tallyerrors.ErrCodeUnknownRecord:
		return http.StatusBadRequest
	case tallyerrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case tallyerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case tallyerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case tallyerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case tallyerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case tallyerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client may reasonably retry a request
// that failed with the given code.
func retryableFromCode(code tallyerrors.ErrorCode) bool {
	switch code {
	case tallyerrors.ErrCodeTimeout,
		tallyerrors.ErrCodeUnavailable,
		tallyerrors.ErrCodeRateLimitExceeded,
		tallyerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails folds two detail maps into one, the second overwriting the
// first on key collisions. Returns nil when there is nothing to carry.
func mergeDetails(base, extra map[string]any) map[string]any {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// WriteError writes the structured error envelope with the given status. The
// request id is taken from the request context when the middleware put one
// there, generated otherwise so every error response is traceable.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code tallyerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr derives the full envelope from err. Structured errors
// carry their own code, message, and context; anything else becomes an
// internal error with the fallback message.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, details map[string]any) {

	code := tallyerrors.ErrCodeInternal
	message := fallbackMessage

	var se *tallyerrors.StructuredError
	if errors.As(err, &se) {
		code = se.Code
		if se.Message != "" {
			message = se.Message
		}
		details = mergeDetails(se.Context, details)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
	} else if err != nil {
		details = mergeDetails(details, map[string]any{"error": err.Error()})
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message, retryableFromCode(code), details)
}
