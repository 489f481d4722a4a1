package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/account-keeper/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a non-2xx response into one of the package errors. The
// status code alone decides the class; the body is only used for the message,
// so a 401 with an empty or non-JSON body is still an authorization failure.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := reason(resp.Body())

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// reason extracts the "error" text of a JSON envelope, or returns the trimmed
// raw body.
func reason(raw []byte) string {
	var env models.APIResponse
	if err := json.Unmarshal(raw, &env); err == nil && env.Reason() != "" {
		return env.Reason()
	}
	return strings.TrimSpace(string(raw))
}
