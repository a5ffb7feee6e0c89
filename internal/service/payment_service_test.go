package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/torebek/gigledger/internal/model"
	"github.com/torebek/gigledger/internal/repository"
)

func TestPaymentService_PayJob(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulPayment", func(t *testing.T) {
		database := newTestDB(t)
		svc := NewPaymentService(repository.NewPaymentRepository(database))

		client := seedProfile(t, database, model.ProfileTypeClient, 50, "", "Harry", "Potter")
		contractor := seedProfile(t, database, model.ProfileTypeContractor, 10, "wizard", "John", "Lenon")
		contract := seedContract(t, database, client, contractor, model.ContractStatusInProgress)
		job := seedJob(t, database, contract, 50)

		receipt, err := svc.PayJob(ctx, job, principal(client))
		if err != nil {
			t.Fatalf("PayJob failed: %v", err)
		}
		if receipt.Amount != 50 {
			t.Errorf("expected receipt amount 50, got %v", receipt.Amount)
		}
		if receipt.PaidAt.IsZero() {
			t.Error("receipt should carry a payment date")
		}
		if got := profileBalance(t, database, client); got != 0 {
			t.Errorf("expected client balance 0, got %v", got)
		}
		if got := profileBalance(t, database, contractor); got != 60 {
			t.Errorf("expected contractor balance 60, got %v", got)
		}

		var paid model.Job
		if err := database.Raw(`SELECT id, contract_id, price, paid, payment_date FROM jobs WHERE id = ?`, job).Scan(&paid).Error; err != nil {
			t.Fatalf("read job: %v", err)
		}
		if !paid.IsPaid() {
			t.Error("job should be marked paid")
		}
		if paid.PaymentDate == nil {
			t.Error("payment date should be set")
		}
	})

	t.Run("SecondPaymentFailsAndChangesNothing", func(t *testing.T) {
		database := newTestDB(t)
		svc := NewPaymentService(repository.NewPaymentRepository(database))

		client := seedProfile(t, database, model.ProfileTypeClient, 200, "", "Ash", "Kethcum")
		contractor := seedProfile(t, database, model.ProfileTypeContractor, 0, "pokemon master", "Mr", "Robot")
		contract := seedContract(t, database, client, contractor, model.ContractStatusInProgress)
		job := seedJob(t, database, contract, 80)

		if _, err := svc.PayJob(ctx, job, principal(client)); err != nil {
			t.Fatalf("first PayJob failed: %v", err)
		}
		if _, err := svc.PayJob(ctx, job, principal(client)); !errors.Is(err, ErrAlreadyPaid) {
			t.Fatalf("expected ErrAlreadyPaid, got %v", err)
		}
		if got := profileBalance(t, database, client); got != 120 {
			t.Errorf("client balance changed on failed payment: %v", got)
		}
		if got := profileBalance(t, database, contractor); got != 80 {
			t.Errorf("contractor balance changed on failed payment: %v", got)
		}
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		database := newTestDB(t)
		svc := NewPaymentService(repository.NewPaymentRepository(database))

		client := seedProfile(t, database, model.ProfileTypeClient, 49.99, "", "Low", "Balance")
		contractor := seedProfile(t, database, model.ProfileTypeContractor, 0, "plumber", "Mario", "Bros")
		contract := seedContract(t, database, client, contractor, model.ContractStatusInProgress)
		job := seedJob(t, database, contract, 50)

		if _, err := svc.PayJob(ctx, job, principal(client)); !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if got := profileBalance(t, database, client); got != 49.99 {
			t.Errorf("client balance changed: %v", got)
		}
		if got := profileBalance(t, database, contractor); got != 0 {
			t.Errorf("contractor balance changed: %v", got)
		}

		var unpaid model.Job
		if err := database.Raw(`SELECT id, contract_id, price, paid, payment_date FROM jobs WHERE id = ?`, job).Scan(&unpaid).Error; err != nil {
			t.Fatalf("read job: %v", err)
		}
		if unpaid.IsPaid() || unpaid.PaymentDate != nil {
			t.Error("job must stay unpaid after a rolled-back payment")
		}
	})

	t.Run("ForeignJobIsNotFound", func(t *testing.T) {
		database := newTestDB(t)
		svc := NewPaymentService(repository.NewPaymentRepository(database))

		client := seedProfile(t, database, model.ProfileTypeClient, 100, "", "Real", "Client")
		other := seedProfile(t, database, model.ProfileTypeClient, 100, "", "Other", "Client")
		contractor := seedProfile(t, database, model.ProfileTypeContractor, 0, "dev", "Linus", "T")
		contract := seedContract(t, database, client, contractor, model.ContractStatusInProgress)
		job := seedJob(t, database, contract, 10)

		if _, err := svc.PayJob(ctx, job, principal(other)); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for foreign job, got %v", err)
		}
		if _, err := svc.PayJob(ctx, uuid.New(), principal(client)); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for missing job, got %v", err)
		}
	})

	t.Run("TerminatedContractIsNotFound", func(t *testing.T) {
		database := newTestDB(t)
		svc := NewPaymentService(repository.NewPaymentRepository(database))

		client := seedProfile(t, database, model.ProfileTypeClient, 100, "", "Late", "Payer")
		contractor := seedProfile(t, database, model.ProfileTypeContractor, 0, "dev", "Ada", "L")
		contract := seedContract(t, database, client, contractor, model.ContractStatusTerminated)
		job := seedJob(t, database, contract, 10)

		if _, err := svc.PayJob(ctx, job, principal(client)); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for terminated contract, got %v", err)
		}
	})

	t.Run("MissingCallerIsInvalidInput", func(t *testing.T) {
		database := newTestDB(t)
		svc := NewPaymentService(repository.NewPaymentRepository(database))

		if _, err := svc.PayJob(ctx, uuid.New(), model.Principal{}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestPaymentService_ConcurrentPayments(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	svc := NewPaymentService(repository.NewPaymentRepository(database))

	client := seedProfile(t, database, model.ProfileTypeClient, 1000, "", "Busy", "Client")
	contractor := seedProfile(t, database, model.ProfileTypeContractor, 0, "musician", "Freddie", "M")
	contract := seedContract(t, database, client, contractor, model.ContractStatusInProgress)
	job := seedJob(t, database, contract, 200)

	const workers = 10
	results := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.PayJob(ctx, job, principal(client))
		}(i)
	}
	wg.Wait()

	successes := 0
	for i, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyPaid):
		default:
			t.Errorf("worker %d: unexpected error %v", i, err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 successful payment, got %d", successes)
	}

	clientBalance := profileBalance(t, database, client)
	contractorBalance := profileBalance(t, database, contractor)
	if clientBalance != 800 {
		t.Errorf("expected client balance 800, got %v", clientBalance)
	}
	if contractorBalance != 200 {
		t.Errorf("expected contractor balance 200, got %v", contractorBalance)
	}
	if clientBalance+contractorBalance != 1000 {
		t.Errorf("transfer is not zero-sum: %v + %v", clientBalance, contractorBalance)
	}
}
