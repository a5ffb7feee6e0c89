package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/torebek/gigledger/internal/model"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// PayJob transfers the job price from the contract's client to its
// contractor and marks the job paid, all in one transaction. Every write is
// guarded: the paid-flag update only matches an unpaid row, so of two
// concurrent payments exactly one sees a row to update and the loser gets
// ErrJobAlreadyPaid; the debit only matches a sufficient balance. Any
// failed guard rolls the whole transaction back.
func (r *PaymentRepository) PayJob(ctx context.Context, jobID, clientID uuid.UUID, paidAt time.Time) (*model.Job, error) {
	var paid model.Job
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row struct {
			ID           uuid.UUID
			Price        float64
			Paid         *bool
			ClientID     uuid.UUID
			ContractorID uuid.UUID
			Status       model.ContractStatus
		}
		if err := tx.Raw(`
			SELECT j.id, j.price, j.paid, c.client_id, c.contractor_id, c.status
			FROM jobs j
			JOIN contracts c ON c.id = j.contract_id
			WHERE j.id = ?
			LIMIT 1
		`, jobID).Scan(&row).Error; err != nil {
			return err
		}
		if row.ID == uuid.Nil || row.ClientID != clientID {
			return gorm.ErrRecordNotFound
		}
		if row.Status == model.ContractStatusTerminated {
			// Jobs under terminated contracts are not payable and are
			// indistinguishable from missing ones.
			return gorm.ErrRecordNotFound
		}
		if row.Paid != nil && *row.Paid {
			return ErrJobAlreadyPaid
		}

		res := tx.Exec(`
			UPDATE jobs
			SET paid = ?, payment_date = ?
			WHERE id = ? AND paid IS NOT TRUE
		`, true, paidAt, jobID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrJobAlreadyPaid
		}

		res = tx.Exec(`
			UPDATE profiles
			SET balance = balance - ?
			WHERE id = ? AND balance >= ?
		`, row.Price, row.ClientID, row.Price)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		if err := tx.Exec(`
			UPDATE profiles
			SET balance = balance + ?
			WHERE id = ?
		`, row.Price, row.ContractorID).Error; err != nil {
			return err
		}

		flag := true
		paid = model.Job{
			ID:          row.ID,
			Price:       row.Price,
			Paid:        &flag,
			PaymentDate: &paidAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &paid, nil
}

// Deposit credits amount to the profile's balance after checking it against
// the cap: at most capRatio of the sum of the profile's unpaid job prices
// as a client. The read and the credit share one transaction.
func (r *PaymentRepository) Deposit(ctx context.Context, profileID uuid.UUID, amount, capRatio float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var totalOwed float64
		if err := tx.Raw(`
			SELECT COALESCE(SUM(j.price), 0)
			FROM jobs j
			JOIN contracts c ON c.id = j.contract_id
			WHERE c.client_id = ?
				AND j.paid IS NOT TRUE
		`, profileID).Scan(&totalOwed).Error; err != nil {
			return err
		}
		if totalOwed == 0 {
			return ErrNoUnpaidObligations
		}
		if amount > capRatio*totalOwed {
			return ErrDepositCapExceeded
		}

		res := tx.Exec(`
			UPDATE profiles
			SET balance = balance + ?
			WHERE id = ?
		`, amount, profileID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
