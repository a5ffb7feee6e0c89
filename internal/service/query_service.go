package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/torebek/gigledger/internal/model"
	"github.com/torebek/gigledger/internal/repository"
)

// QueryService serves the read-only contract and job lookups. Every lookup
// is scoped to the caller; contracts the caller is not a party to are
// reported as not found.
type QueryService struct {
	contracts *repository.ContractRepository
}

func NewQueryService(contracts *repository.ContractRepository) *QueryService {
	return &QueryService{contracts: contracts}
}

func (s *QueryService) ContractByID(ctx context.Context, id uuid.UUID, caller model.Principal) (*model.Contract, error) {
	if caller.ProfileID == uuid.Nil {
		return nil, fmt.Errorf("%w: caller id is required", ErrInvalidInput)
	}
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: contract id is required", ErrInvalidInput)
	}

	contract, err := s.contracts.GetContractForParty(ctx, id, caller.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *QueryService) ContractsForUser(ctx context.Context, caller model.Principal) ([]model.Contract, error) {
	if caller.ProfileID == uuid.Nil {
		return nil, fmt.Errorf("%w: caller id is required", ErrInvalidInput)
	}
	return s.contracts.ListActiveContractsForParty(ctx, caller.ProfileID)
}

func (s *QueryService) UnpaidJobsForUser(ctx context.Context, caller model.Principal) ([]model.Job, error) {
	if caller.ProfileID == uuid.Nil {
		return nil, fmt.Errorf("%w: caller id is required", ErrInvalidInput)
	}
	return s.contracts.ListUnpaidJobsForParty(ctx, caller.ProfileID)
}
