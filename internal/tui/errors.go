// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/account-keeper/internal/adapter"
	"github.com/MKhiriev/account-keeper/internal/service"
)

// humanizeError turns a service error into a line for the status bar.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrEmptyEmail), errors.Is(err, service.ErrEmptyPassword):
		return "E-mail и пароль обязательны"
	case errors.Is(err, service.ErrWrongPassword):
		return "Неверный пароль"
	case errors.Is(err, adapter.ErrNotFound):
		return "Аккаунт не найден"
	case errors.Is(err, adapter.ErrBadRequest):
		return "Сервер отклонил запрос: " + lastPart(err)
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}

// lastPart returns the text after the last ": ", which is the server-provided
// reason for adapter errors.
func lastPart(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
