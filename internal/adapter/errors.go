package adapter

import "errors"

// Transport errors. mapHTTPError wraps them with the server-provided reason,
// so callers match with errors.Is.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrUnsuccessful is returned for a 2xx answer whose envelope does not
	// carry "success": true.
	ErrUnsuccessful = errors.New("server did not acknowledge the request")
	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// IsUnauthorized reports whether err is the authorization-failure signal that
// forces the session to end.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
