package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfessionRevenue struct {
	Profession string
	Total      float64
}

type ClientRanking struct {
	ID       uuid.UUID
	FullName string
	Paid     float64
}

type ClientReport struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Clients     []ClientRanking
}

func (r ClientReport) TotalPaid() float64 {
	var total float64
	for _, c := range r.Clients {
		total += c.Paid
	}
	return total
}
