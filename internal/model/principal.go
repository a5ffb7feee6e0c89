package model

import "github.com/google/uuid"

// Principal is the authenticated caller resolved by the auth middleware.
type Principal struct {
	ProfileID uuid.UUID
}
