// Package identity resolves the authenticated principal of an inbound
// request from its metadata. It never touches the database: the signed token
// is the whole proof.
package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/dmitrijs2005/invitekeeper/internal/server/auth"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"google.golang.org/grpc/metadata"
)

const (
	authorizationKey = "authorization"
	cookieKey        = "cookie"
	bearerPrefix     = "bearer "
)

// Decoder verifies a raw token. auth.TokenCodec implements it.
type Decoder interface {
	Decode(token string) (*auth.Claims, error)
}

// TokenFrom returns the first token found in md, looking at the
// access_token entry, then an "authorization: Bearer" entry, then the auth
// cookie. Keys are expected lower-case, as gRPC delivers them.
func TokenFrom(md metadata.MD) (string, bool) {
	for _, v := range md[common.AccessTokenHeaderName] {
		if v != "" {
			return v, true
		}
	}

	for _, v := range md[authorizationKey] {
		if len(v) > len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
			if t := strings.TrimSpace(v[len(bearerPrefix):]); t != "" {
				return t, true
			}
		}
	}

	for _, line := range md[cookieKey] {
		cookies, err := http.ParseCookie(line)
		if err != nil {
			continue
		}
		for _, c := range cookies {
			if c.Name == common.AuthCookieName && c.Value != "" {
				return c.Value, true
			}
		}
	}

	return "", false
}

// Extract returns the principal carried by md. A missing token and any
// decode failure, expiry included, yield common.ErrUnauthorized.
func Extract(md metadata.MD, dec Decoder) (*models.SlimUser, error) {
	token, ok := TokenFrom(md)
	if !ok {
		return nil, common.ErrUnauthorized
	}

	claims, err := dec.Decode(token)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	return claims.SlimUser(), nil
}

// FromIncomingContext is Extract over the metadata of an inbound gRPC call.
func FromIncomingContext(ctx context.Context, dec Decoder) (*models.SlimUser, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	return Extract(md, dec)
}

type userKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.SlimUser) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFrom returns the principal stored by WithUser.
func UserFrom(ctx context.Context) (*models.SlimUser, bool) {
	u, ok := ctx.Value(userKey{}).(*models.SlimUser)
	return u, ok && u != nil
}
