package service

import "github.com/golang-jwt/jwt/v5"

// TokenService validates access tokens issued by the external identity
// provider. The core trusts the subject id and role claim it finds inside.
type TokenService interface {
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)
}
