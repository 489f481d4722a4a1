package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/account-keeper/internal/adapter"
	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/internal/mock"
	"github.com/MKhiriev/account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestGate builds a sessionGate on a mock adapter and records every
// transition it announces.
func newTestGate(t *testing.T, ctrl *gomock.Controller) (*sessionGate, *mock.MockServerAdapter, *[]models.SessionStatus) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	gate := NewSessionGate(mockAdapter, logger.Nop()).(*sessionGate)

	var seen []models.SessionStatus
	gate.Subscribe(func(s models.SessionStatus) { seen = append(seen, s) })

	return gate, mockAdapter, &seen
}

func unauthorized() error {
	return fmt.Errorf("%w: Authentifizierung erforderlich", adapter.ErrUnauthorized)
}

// ── Probe ────────────────────────────────────────────────────────────────────

func TestSessionGate_StartsUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate, _, seen := newTestGate(t, ctrl)

	assert.Equal(t, models.SessionUnknown, gate.Status())
	assert.Empty(t, *seen)
}

func TestSessionGate_Probe(t *testing.T) {
	tests := []struct {
		name string
		resp models.AuthStatusResponse
		err  error
		want models.SessionStatus
	}{
		{
			name: "authenticated",
			resp: models.AuthStatusResponse{APIResponse: models.Ack(""), Authenticated: true},
			want: models.SessionAuthenticated,
		},
		{
			name: "not authenticated",
			resp: models.AuthStatusResponse{APIResponse: models.Ack(""), Authenticated: false},
			want: models.SessionUnauthenticated,
		},
		{
			name: "envelope without success",
			err:  fmt.Errorf("%w: GET /api/auth/status", adapter.ErrUnsuccessful),
			want: models.SessionUnauthenticated,
		},
		{
			name: "transport failure",
			err:  errors.New("dial tcp: connection refused"),
			want: models.SessionUnauthenticated,
		},
		{
			name: "server error",
			err:  fmt.Errorf("%w: boom", adapter.ErrInternalServerError),
			want: models.SessionUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gate, mockAdapter, seen := newTestGate(t, ctrl)
			ctx := context.Background()

			mockAdapter.EXPECT().AuthStatus(ctx).Return(tt.resp, tt.err)

			got := gate.Probe(ctx)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, gate.Status())
			assert.Equal(t, []models.SessionStatus{tt.want}, *seen)
		})
	}
}

// ── transitions ──────────────────────────────────────────────────────────────

func TestSessionGate_MarkUnauthenticated_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate, _, seen := newTestGate(t, ctrl)

	gate.MarkAuthenticated()
	gate.MarkUnauthenticated()
	gate.MarkUnauthenticated()
	gate.MarkUnauthenticated()

	assert.Equal(t, models.SessionUnauthenticated, gate.Status())
	assert.Equal(t, []models.SessionStatus{
		models.SessionAuthenticated,
		models.SessionUnauthenticated,
	}, *seen)
}

func TestSessionGate_MarkAuthenticated_NotifiesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate, _, seen := newTestGate(t, ctrl)

	gate.MarkAuthenticated()
	gate.MarkAuthenticated()

	assert.Equal(t, []models.SessionStatus{models.SessionAuthenticated}, *seen)
}

func TestSessionGate_SubscribersRunInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate, _, _ := newTestGate(t, ctrl)

	var order []string
	gate.Subscribe(func(models.SessionStatus) { order = append(order, "first") })
	gate.Subscribe(func(models.SessionStatus) { order = append(order, "second") })

	gate.MarkAuthenticated()

	assert.Equal(t, []string{"first", "second"}, order)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestSessionGate_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate, mockAdapter, _ := newTestGate(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, "secret").Return(nil)

	require.NoError(t, gate.Login(ctx, "secret"))
	assert.Equal(t, models.SessionAuthenticated, gate.Status())
}

func TestSessionGate_Login_EmptyPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate, _, seen := newTestGate(t, ctrl)

	err := gate.Login(context.Background(), "")

	assert.ErrorIs(t, err, ErrEmptyPassword)
	assert.Equal(t, models.SessionUnknown, gate.Status())
	assert.Empty(t, *seen)
}

func TestSessionGate_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate, mockAdapter, _ := newTestGate(t, ctrl)
	ctx := context.Background()

	gate.MarkUnauthenticated()
	mockAdapter.EXPECT().Login(ctx, "nope").Return(unauthorized())

	err := gate.Login(ctx, "nope")

	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Equal(t, models.SessionUnauthenticated, gate.Status())
}

func TestSessionGate_Login_ServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate, mockAdapter, _ := newTestGate(t, ctrl)
	ctx := context.Background()

	gate.MarkUnauthenticated()
	mockAdapter.EXPECT().Login(ctx, "secret").Return(fmt.Errorf("%w: db", adapter.ErrInternalServerError))

	err := gate.Login(ctx, "secret")

	assert.ErrorIs(t, err, adapter.ErrInternalServerError)
	assert.Equal(t, models.SessionUnauthenticated, gate.Status())
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestSessionGate_Logout(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "acknowledged"},
		{name: "transport failure", err: errors.New("connection reset")},
		{name: "server error", err: fmt.Errorf("%w: boom", adapter.ErrInternalServerError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gate, mockAdapter, seen := newTestGate(t, ctrl)
			ctx := context.Background()

			gate.MarkAuthenticated()
			mockAdapter.EXPECT().Logout(ctx).Return(tt.err)

			require.NoError(t, gate.Logout(ctx))
			assert.Equal(t, models.SessionUnauthenticated, gate.Status())
			assert.Equal(t, []models.SessionStatus{
				models.SessionAuthenticated,
				models.SessionUnauthenticated,
			}, *seen)
		})
	}
}
