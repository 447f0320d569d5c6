package portalsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mapacultural/fomenta/pkg/httpx"
)

// Machine-readable error codes shared by server and SDK.
const (
	ErrorCodeValidation      = "validation_failed"
	ErrorCodeInvalidToken    = "invalid_token"
	ErrorCodeBadCredentials  = "invalid_credentials"
	ErrorCodeInsufficientRole = "insufficient_role"
	ErrorCodeForbidden       = "forbidden"
	ErrorCodeTenantNotFound  = "tenant_not_found"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeDuplicate       = "duplicate"
	ErrorCodeConflict        = "conflict"
	ErrorCodeServerError     = "server_error"
)

// APIError is the service's standard error envelope. The server writes it;
// the SDK decodes it back so callers can branch on Code.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes the error to an HTTP response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Message)
}

var (
	// ErrValidation: malformed or missing input. 400.
	ErrValidation = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidation,
		Message:    "the request is malformed or missing required fields",
	}

	// ErrBadCredentials: authentication failed. Deliberately generic; it
	// covers unknown email, wrong password, disabled account, bad OTP and
	// invalid reset token alike. 401.
	ErrBadCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeBadCredentials,
		Message:    "invalid credentials",
	}

	// ErrInvalidToken: missing, malformed, expired or revoked bearer
	// token. 401.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "missing or invalid access token",
	}

	// ErrForbidden: a valid identity acting outside its ownership. 403.
	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "you do not own the target resource",
	}

	// ErrInsufficientRole: a valid identity of the wrong kind. 403.
	ErrInsufficientRole = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeInsufficientRole,
		Message:    "this operation is not available to your account kind",
	}

	// ErrTenantNotFound: the municipality slug resolved nowhere. 404.
	ErrTenantNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeTenantNotFound,
		Message:    "unknown municipality",
	}

	// ErrNotFound: missing resource. 404.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "resource not found",
	}

	// ErrDuplicate: registration conflict within tenant and kind. 409.
	ErrDuplicate = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeDuplicate,
		Message:    "an account with this email already exists",
	}

	// ErrConflict: resource in a state that forbids the operation. 409.
	ErrConflict = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "the resource state does not allow this operation",
	}

	// ErrServer: unexpected dependency failure. 500.
	ErrServer = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// decodeError turns a non-2xx response into an *APIError.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = ErrorCodeServerError
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
