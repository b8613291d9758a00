package jwttoken

import (
	"veridev/internal/platform/middleware"
	"veridev/pkg/domain"
)

// JWTServiceAdapter bridges the token service to the middleware validator
// contract.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{Caller: domain.Identity(claims.Caller)}, nil
}
