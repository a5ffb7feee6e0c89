package service

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyPaid       = errors.New("job has been paid already")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPolicyViolation   = errors.New("deposit policy violation")
)
