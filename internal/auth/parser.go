package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/torebek/gigledger/internal/model"
)

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Parse validates an HS256 access token and resolves the caller's profile
// id from the subject claim.
func (p *Parser) Parse(token string) (model.Principal, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, err
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return model.Principal{}, err
	}
	profileID, err := uuid.Parse(subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid subject claim: %w", err)
	}
	return model.Principal{ProfileID: profileID}, nil
}
