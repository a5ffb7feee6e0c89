package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/torebek/gigledger/internal/model"
	"github.com/torebek/gigledger/internal/repository"
)

// PaymentService pays jobs out of client balances. The debit, the credit
// and the paid flag are committed as one unit by the repository; this layer
// validates input and classifies the outcome.
type PaymentService struct {
	payments *repository.PaymentRepository
	now      func() time.Time
}

type PaymentReceipt struct {
	JobID  uuid.UUID
	Amount float64
	PaidAt time.Time
}

func NewPaymentService(payments *repository.PaymentRepository) *PaymentService {
	return &PaymentService{payments: payments, now: time.Now}
}

func (s *PaymentService) PayJob(ctx context.Context, jobID uuid.UUID, caller model.Principal) (*PaymentReceipt, error) {
	if caller.ProfileID == uuid.Nil {
		return nil, fmt.Errorf("%w: caller id is required", ErrInvalidInput)
	}
	if jobID == uuid.Nil {
		return nil, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}

	job, err := s.payments.PayJob(ctx, jobID, caller.ProfileID, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrJobAlreadyPaid):
			return nil, ErrAlreadyPaid
		case errors.Is(err, repository.ErrInsufficientBalance):
			return nil, ErrInsufficientFunds
		default:
			return nil, err
		}
	}

	return &PaymentReceipt{
		JobID:  job.ID,
		Amount: job.Price,
		PaidAt: *job.PaymentDate,
	}, nil
}
