package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/torebek/gigledger/internal/config"
	"github.com/torebek/gigledger/internal/model"
	"github.com/torebek/gigledger/internal/repository"
)

// DepositService tops up a caller's own balance, capped at a configured
// fraction of what the caller still owes for unpaid jobs. A concurrent
// payment can shrink the owed total between the policy read and the
// commit; that race is accepted under the store's default isolation.
type DepositService struct {
	payments *repository.PaymentRepository
	capRatio float64
}

func NewDepositService(payments *repository.PaymentRepository, cfg *config.Config) *DepositService {
	return &DepositService{payments: payments, capRatio: cfg.Ledger.DepositCapRatio}
}

func (s *DepositService) Deposit(ctx context.Context, userID uuid.UUID, caller model.Principal, amount float64) error {
	if caller.ProfileID == uuid.Nil || userID == uuid.Nil {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if caller.ProfileID != userID {
		return fmt.Errorf("%w: can only deposit to own balance", ErrUnauthorized)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	err := s.payments.Deposit(ctx, userID, amount, s.capRatio)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNoUnpaidObligations):
		return fmt.Errorf("%w: no unpaid jobs to justify a deposit", ErrPolicyViolation)
	case errors.Is(err, repository.ErrDepositCapExceeded):
		return fmt.Errorf("%w: amount exceeds %.0f%% of total owed", ErrPolicyViolation, s.capRatio*100)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
