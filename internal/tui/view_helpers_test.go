package tui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/account-keeper/internal/adapter"
	"github.com/MKhiriev/account-keeper/internal/service"
	"github.com/MKhiriev/account-keeper/models"
	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		in   models.AccountStatus
		want string
	}{
		{in: models.AccountActive, want: "Активен"},
		{in: models.AccountError, want: "Ошибка"},
		{in: models.AccountInactive, want: "Неактивен"},
		{in: "", want: "Неактивен"},
		{in: "suspended", want: "Неактивен"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, statusLabel(tt.in))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "никогда", formatTimestamp(nil))
	assert.Equal(t, "никогда", formatTimestamp(&models.Timestamp{}))

	ts := time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)
	assert.Equal(t, "01.05.2024 10:30", formatTimestamp(models.NewTimestamp(ts)))
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "short", fitText("short", 10))
	assert.Equal(t, "abcdefg...", fitText("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", fitText("abcdef", 2))
	assert.Equal(t, "ÄÖÜ", fitText("ÄÖÜ", 3))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "wrong password", err: service.ErrWrongPassword, want: "Неверный пароль"},
		{name: "empty email", err: service.ErrEmptyEmail, want: "E-mail и пароль обязательны"},
		{
			name: "bad request reason",
			err:  fmt.Errorf("add account: %w", fmt.Errorf("%w: Account with this email already exists", adapter.ErrBadRequest)),
			want: "Сервер отклонил запрос: Account with this email already exists",
		},
		{name: "network", err: errors.New("Post \"http://x\": dial tcp: connection refused"), want: "Отсутствует сеть или Сервер недоступен"},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}
