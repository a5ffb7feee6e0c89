package model

import "github.com/google/uuid"

type ProfileType string

const (
	ProfileTypeClient     ProfileType = "client"
	ProfileTypeContractor ProfileType = "contractor"
)

type Profile struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Profession string
	Balance    float64
	Type       ProfileType
}

func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
