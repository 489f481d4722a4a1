package service

import "errors"

var (
	ErrEmptyEmail     = errors.New("email is required")
	ErrEmptyPassword  = errors.New("password is required")
	ErrEmptyAccountID = errors.New("account id is required")
	ErrWrongPassword  = errors.New("wrong password")
)
