package clawerr

import (
	"errors"
	"net/http"
)

// HTTPStatus maps an error code to the HTTP status spec.md §7 assigns it.
// CodeInvalidState (the coordinator's "battle is not active" and similar
// state errors) is a 409 state conflict. Other codes with no wire mapping
// (the remaining game-rule codes inherited from the teacher taxonomy, such
// as the CodeResourceExhausted SubmitMove returns for a move with no PP)
// fall back to 500.
func HTTPStatus(code Code) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeAlreadyExists, CodeInvalidState:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeRequestTimeout, CodeCanceled:
		return http.StatusRequestTimeout
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeInternal, CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Envelope is the wire shape of an error response: {"error","code"}.
type Envelope struct {
	Error string `json:"error"`
	Code  Code   `json:"code"`
}

// ToEnvelope converts any error into the wire envelope and its HTTP status.
// Errors that are not *Error are treated as internal failures and never
// leak their raw message to the caller.
func ToEnvelope(err error) (Envelope, int) {
	if err == nil {
		return Envelope{}, http.StatusOK
	}

	code := GetCode(err)
	status := HTTPStatus(code)

	var rpgErr *Error
	if errors.As(err, &rpgErr) && rpgErr != nil {
		return Envelope{Error: rpgErr.Message, Code: code}, status
	}

	return Envelope{Error: "internal error", Code: CodeInternal}, http.StatusInternalServerError
}
