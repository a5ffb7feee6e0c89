package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/torebek/gigledger/internal/config"
	"github.com/torebek/gigledger/internal/db"
	"github.com/torebek/gigledger/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		DB: config.DBConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
		},
		Ledger: config.LedgerConfig{
			DepositCapRatio:    0.25,
			BestClientsDefault: 2,
		},
	}
}

// newTestDB opens an in-memory database through the production path, so the
// schema comes from the real migrations. The single-connection pool set for
// sqlite keeps concurrent transactions serialized.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := db.New(testConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return database
}

func seedProfile(t *testing.T, database *gorm.DB, profileType model.ProfileType, balance float64, profession, firstName, lastName string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := database.Exec(`
		INSERT INTO profiles (id, first_name, last_name, profession, balance, type)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, firstName, lastName, profession, balance, profileType).Error
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return id
}

func seedContract(t *testing.T, database *gorm.DB, clientID, contractorID uuid.UUID, status model.ContractStatus) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := database.Exec(`
		INSERT INTO contracts (id, client_id, contractor_id, terms, status)
		VALUES (?, ?, ?, ?, ?)
	`, id, clientID, contractorID, "standard terms", status).Error
	if err != nil {
		t.Fatalf("seed contract: %v", err)
	}
	return id
}

func seedJob(t *testing.T, database *gorm.DB, contractID uuid.UUID, price float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := database.Exec(`
		INSERT INTO jobs (id, contract_id, description, price)
		VALUES (?, ?, ?, ?)
	`, id, contractID, "work", price).Error
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return id
}

func seedPaidJob(t *testing.T, database *gorm.DB, contractID uuid.UUID, price float64, paidAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := database.Exec(`
		INSERT INTO jobs (id, contract_id, description, price, paid, payment_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, contractID, "work", price, true, paidAt).Error
	if err != nil {
		t.Fatalf("seed paid job: %v", err)
	}
	return id
}

func profileBalance(t *testing.T, database *gorm.DB, id uuid.UUID) float64 {
	t.Helper()
	var balance float64
	if err := database.Raw(`SELECT balance FROM profiles WHERE id = ?`, id).Scan(&balance).Error; err != nil {
		t.Fatalf("read balance: %v", err)
	}
	return balance
}

func principal(id uuid.UUID) model.Principal {
	return model.Principal{ProfileID: id}
}

func testTimestamp(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
