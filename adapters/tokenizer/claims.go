package tokenizer

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims combines standard claims with the identity fields embedded
// in both access and refresh tokens. The role is carried by value so
// authorization never needs a store lookup.
type IdentityClaims struct {
	jwt.RegisteredClaims
	AddressID string `json:"aid"`
	Wallet    string `json:"wlt"`
	Role      string `json:"role"`
}
