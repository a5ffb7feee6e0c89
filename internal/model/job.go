package model

import (
	"time"

	"github.com/google/uuid"
)

// Job is a unit of billable work under a contract. Paid is nil until the
// job has been paid for; PaymentDate is set together with the flag and
// never changes afterwards.
type Job struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	Description string
	Price       float64
	Paid        *bool
	PaymentDate *time.Time
}

func (j Job) IsPaid() bool {
	return j.Paid != nil && *j.Paid
}
