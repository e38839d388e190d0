package common

import "time"

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// AuthCookieName is the cookie that carries the access token for browser
// clients.
const AuthCookieName = "auth"

const (
	// TokenValidity is the lifetime of an identity claim.
	TokenValidity = 24 * time.Hour
	// InvitationValidity is the lifetime of an invitation.
	InvitationValidity = 24 * time.Hour
	// CookieMaxAge is the lifetime of the carrier cookie. It is longer than
	// TokenValidity, so a cookie may still hold an expired claim.
	CookieMaxAge = 30 * 24 * time.Hour
)
