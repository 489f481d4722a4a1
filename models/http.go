package models

// APIResponse is the envelope every account-manager endpoint answers with.
// Success is a pointer so that a missing field can be told apart from
// an explicit false.
type APIResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Succeeded reports whether the server explicitly acknowledged the call.
func (r APIResponse) Succeeded() bool {
	return r.Success != nil && *r.Success
}

// Reason returns the server-provided error text, falling back to the
// informational message.
func (r APIResponse) Reason() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}

// AuthStatusResponse is returned by GET /api/auth/status.
type AuthStatusResponse struct {
	APIResponse
	Authenticated bool `json:"authenticated"`
}

// AccountsResponse is returned by GET /api/accounts.
type AccountsResponse struct {
	APIResponse
	Accounts []Account `json:"accounts"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// Ack builds a successful [APIResponse] with the given message.
func Ack(message string) APIResponse {
	ok := true
	return APIResponse{Success: &ok, Message: message}
}

// Nack builds a failed [APIResponse] carrying errText.
func Nack(errText string) APIResponse {
	ok := false
	return APIResponse{Success: &ok, Error: errText}
}
