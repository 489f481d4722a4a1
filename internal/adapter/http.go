package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/account-keeper/internal/config"
	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/internal/utils"
	"github.com/MKhiriev/account-keeper/models"
)

// envelope is implemented by every response type embedding
// [models.APIResponse].
type envelope interface {
	Succeeded() bool
	Reason() string
}

type httpServerAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: log.Component("adapter"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// AuthStatus implements [ServerAdapter].
func (h *httpServerAdapter) AuthStatus(ctx context.Context) (models.AuthStatusResponse, error) {
	var out models.AuthStatusResponse
	if err := h.do(ctx, http.MethodGet, "/api/auth/status", nil, &out); err != nil {
		return models.AuthStatusResponse{}, err
	}
	return out, nil
}

// Login implements [ServerAdapter].
func (h *httpServerAdapter) Login(ctx context.Context, password string) error {
	var out models.APIResponse
	return h.do(ctx, http.MethodPost, "/api/auth/login", models.LoginRequest{Password: password}, &out)
}

// Logout implements [ServerAdapter].
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	var out models.APIResponse
	return h.do(ctx, http.MethodPost, "/api/auth/logout", nil, &out)
}

// ListAccounts implements [ServerAdapter]. A null "accounts" field is
// returned as an empty, non-nil slice.
func (h *httpServerAdapter) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var out models.AccountsResponse
	if err := h.do(ctx, http.MethodGet, "/api/accounts", nil, &out); err != nil {
		return nil, err
	}
	if out.Accounts == nil {
		return []models.Account{}, nil
	}
	return out.Accounts, nil
}

// CreateAccount implements [ServerAdapter].
func (h *httpServerAdapter) CreateAccount(ctx context.Context, draft models.AccountDraft) error {
	var out models.APIResponse
	return h.do(ctx, http.MethodPost, "/api/accounts", draft, &out)
}

// DeleteAccount implements [ServerAdapter].
func (h *httpServerAdapter) DeleteAccount(ctx context.Context, id models.AccountID) error {
	var out models.APIResponse
	return h.do(ctx, http.MethodDelete, accountPath(id), nil, &out)
}

// SyncAccounts implements [ServerAdapter].
func (h *httpServerAdapter) SyncAccounts(ctx context.Context) error {
	var out models.APIResponse
	return h.do(ctx, http.MethodPost, "/api/accounts/sync", nil, &out)
}

// SyncAccount implements [ServerAdapter].
func (h *httpServerAdapter) SyncAccount(ctx context.Context, id models.AccountID) error {
	var out models.APIResponse
	return h.do(ctx, http.MethodPost, accountPath(id)+"/sync", nil, &out)
}

func accountPath(id models.AccountID) string {
	return "/api/accounts/" + url.PathEscape(id.String())
}

// do executes one round trip and decodes the envelope into out. The status
// code is checked before the body, so an authorization failure is reported
// even when the body is not JSON.
func (h *httpServerAdapter) do(ctx context.Context, method, path string, body any, out envelope) error {
	req := h.client.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}

	traceID := resp.Request.Header.Get(utils.TraceIDHeader)
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("method", method).
			Str("path", path).
			Str("trace_id", traceID).
			Int("status", resp.StatusCode()).
			Err(err).
			Msg("request rejected")
		return err
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	if !out.Succeeded() {
		return fmt.Errorf("%w: %s %s: %s", ErrUnsuccessful, method, path, out.Reason())
	}

	return nil
}
