package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/torebek/gigledger/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// GetContractForParty returns the contract only when partyID is its client
// or contractor. A contract belonging to someone else scans as a missing
// row, so callers cannot probe for existence.
func (r *ContractRepository) GetContractForParty(ctx context.Context, id, partyID uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, terms, status
		FROM contracts
		WHERE id = ?
			AND (client_id = ? OR contractor_id = ?)
		LIMIT 1
	`, id, partyID, partyID).Scan(&contract).Error; err != nil {
		return nil, err
	}
	if contract.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func (r *ContractRepository) ListActiveContractsForParty(ctx context.Context, partyID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, terms, status
		FROM contracts
		WHERE status = ?
			AND (client_id = ? OR contractor_id = ?)
		ORDER BY id
	`, model.ContractStatusInProgress, partyID, partyID).Scan(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) ListUnpaidJobsForParty(ctx context.Context, partyID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.db.WithContext(ctx).Raw(`
		SELECT j.id, j.contract_id, j.description, j.price, j.paid, j.payment_date
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid IS NOT TRUE
			AND c.status <> ?
			AND (c.client_id = ? OR c.contractor_id = ?)
		ORDER BY j.id
	`, model.ContractStatusTerminated, partyID, partyID).Scan(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *ContractRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, first_name, last_name, profession, balance, type
		FROM profiles
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&profile).Error; err != nil {
		return nil, err
	}
	if profile.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}
