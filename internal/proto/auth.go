package proto

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	Email string `json:"email"`
}

type CreateInvitationRequest struct {
	Email string `json:"email"`
}

type CreateInvitationResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterRequest struct {
	InvitationID string `json:"invitation_id"`
	Password     string `json:"password"`
}

type RegisterResponse struct {
	Email string `json:"email"`
}
