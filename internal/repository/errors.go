package repository

import "errors"

// Outcomes of the transactional mutations that the service layer needs to
// tell apart. Missing rows are reported as gorm.ErrRecordNotFound.
var (
	ErrJobAlreadyPaid      = errors.New("job already paid")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoUnpaidObligations = errors.New("no unpaid obligations")
	ErrDepositCapExceeded  = errors.New("deposit cap exceeded")
)
