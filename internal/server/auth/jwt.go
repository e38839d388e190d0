// Package auth implements credential hashing and the signed identity token
// used to carry an authenticated email between requests.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Subject is the "sub" claim of every identity token.
const Subject = "auth"

// Claims is the identity claim: standard registered claims plus the email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// SlimUser projects the claim to the authenticated principal.
func (c *Claims) SlimUser() *models.SlimUser {
	return &models.SlimUser{Email: c.Email}
}

// TokenCodec signs and verifies identity tokens with an HMAC secret.
type TokenCodec struct {
	secret   []byte
	issuer   string
	validity time.Duration

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

// NewTokenCodec returns a codec issuing tokens valid for common.TokenValidity.
func NewTokenCodec(secret []byte, issuer string) *TokenCodec {
	return &TokenCodec{
		secret:   secret,
		issuer:   issuer,
		validity: common.TokenValidity,
		NowFunc:  time.Now,
	}
}

// Encode mints a signed token asserting that user is authenticated.
func (c *TokenCodec) Encode(user *models.SlimUser) (string, error) {
	now := c.NowFunc()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
		Email: user.Email,
	})

	return token.SignedString(c.secret)
}

// Decode verifies the signature and expiry of tokenString and returns its
// claims. Expired tokens yield common.ErrTokenExpired; any other failure
// yields common.ErrInvalidToken.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.NowFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Email == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
