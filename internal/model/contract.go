package model

import "github.com/google/uuid"

type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

type Contract struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	ContractorID uuid.UUID
	Terms        string
	Status       ContractStatus
}
