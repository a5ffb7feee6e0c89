package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/torebek/gigledger/internal/model"
)

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// ProfessionRevenue ranks contractor professions by revenue from jobs paid
// within [start, end]. Ties break lexicographically on the profession name.
func (r *AnalyticsRepository) ProfessionRevenue(ctx context.Context, start, end time.Time) ([]model.ProfessionRevenue, error) {
	var rows []model.ProfessionRevenue
	if err := r.db.WithContext(ctx).Raw(`
		SELECT p.profession, SUM(j.price) AS total
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.contractor_id
		WHERE j.paid IS TRUE
			AND j.payment_date BETWEEN ? AND ?
		GROUP BY p.profession
		ORDER BY total DESC, p.profession ASC
	`, start, end).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ClientRevenue ranks clients by the amount they paid within [start, end],
// at most limit entries. Clients with no paid jobs in range do not appear.
func (r *AnalyticsRepository) ClientRevenue(ctx context.Context, start, end time.Time, limit int) ([]model.ClientRanking, error) {
	var rows []struct {
		ID        uuid.UUID
		FirstName string
		LastName  string
		TotalPaid float64
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.first_name, p.last_name, SUM(j.price) AS total_paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.paid IS TRUE
			AND j.payment_date BETWEEN ? AND ?
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY total_paid DESC, p.id ASC
		LIMIT ?
	`, start, end, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	rankings := make([]model.ClientRanking, 0, len(rows))
	for _, row := range rows {
		rankings = append(rankings, model.ClientRanking{
			ID:       row.ID,
			FullName: row.FirstName + " " + row.LastName,
			Paid:     row.TotalPaid,
		})
	}
	return rankings, nil
}
