// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AccountStatus is the last known result of signing in to the external
// service with the credentials of an [Account].
type AccountStatus string

const (
	// AccountActive means the last sign-in succeeded.
	AccountActive AccountStatus = "active"
	// AccountError means the last sign-in failed.
	AccountError AccountStatus = "error"
	// AccountInactive means the account has not been signed in yet.
	AccountInactive AccountStatus = "inactive"
)

// Normalize maps any value the server may send to one of the three known
// statuses. Unknown values are shown as inactive.
func (s AccountStatus) Normalize() AccountStatus {
	switch s {
	case AccountActive, AccountError:
		return s
	default:
		return AccountInactive
	}
}

// AccountID is the server-assigned identifier of an account. The client
// treats it as opaque; the server may send it as a JSON number or string.
type AccountID string

// UnmarshalJSON accepts both `42` and `"42"`.
func (id *AccountID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = AccountID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("account id: %w", err)
	}
	*id = AccountID(n.String())
	return nil
}

// String implements fmt.Stringer.
func (id AccountID) String() string {
	return string(id)
}

// Account is the client-side copy of a server-tracked external credential
// record. The server owns it; the client only caches whole snapshots.
type Account struct {
	ID        AccountID     `json:"id"`
	Email     string        `json:"email"`
	Status    AccountStatus `json:"status"`
	LastLogin *Timestamp    `json:"last_login"`
	CreatedAt *Timestamp    `json:"created_at"`
	UpdatedAt *Timestamp    `json:"updated_at,omitempty"`
}

// AccountDraft is the transient input of the add-account form. It is never
// persisted and is cleared after a successful submit or a cancel.
type AccountDraft struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Clear wipes both fields.
func (d *AccountDraft) Clear() {
	d.Email = ""
	d.Password = ""
}

// IsEmpty reports whether nothing has been typed yet.
func (d AccountDraft) IsEmpty() bool {
	return strings.TrimSpace(d.Email) == "" && d.Password == ""
}
