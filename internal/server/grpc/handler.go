package grpc

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	pb "github.com/dmitrijs2005/invitekeeper/internal/proto"
	"github.com/dmitrijs2005/invitekeeper/internal/server/identity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const setCookieKey = "set-cookie"

func (s *GRPCServer) authCookie(value string, maxAge int) string {
	c := &http.Cookie{
		Name:     common.AuthCookieName,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
	}
	return c.String()
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	user, err := s.services.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	token, err := s.services.Tokens.Encode(user)
	if err != nil {
		s.logger.Error(ctx, "token encode failed", "error", err)
		return nil, toStatus(err)
	}

	cookie := s.authCookie(token, int(common.CookieMaxAge.Seconds()))
	if err := grpc.SetHeader(ctx, metadata.Pairs(setCookieKey, cookie)); err != nil {
		s.logger.Warn(ctx, "set cookie header failed", "error", err)
	}

	s.logger.Info(ctx, "Logged in", "email", user.Email)
	return &pb.LoginResponse{Token: token, Email: user.Email}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *pb.LogoutRequest) (*pb.LogoutResponse, error) {
	if err := grpc.SetHeader(ctx, metadata.Pairs(setCookieKey, s.authCookie("", -1))); err != nil {
		s.logger.Warn(ctx, "set cookie header failed", "error", err)
	}
	return &pb.LogoutResponse{}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *pb.WhoAmIRequest) (*pb.WhoAmIResponse, error) {
	user, ok := identity.UserFrom(ctx)
	if !ok {
		return nil, toStatus(common.ErrUnauthorized)
	}
	return &pb.WhoAmIResponse{Email: user.Email}, nil
}

func (s *GRPCServer) CreateInvitation(ctx context.Context, req *pb.CreateInvitationRequest) (*pb.CreateInvitationResponse, error) {
	inv, err := s.services.Invitations.Create(ctx, req.Email)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.CreateInvitationResponse{
		ID:        inv.ID.String(),
		Email:     inv.Email,
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	user, err := s.services.Registrations.Register(ctx, req.InvitationID, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "email", user.Email)
	return &pb.RegisterResponse{Email: user.Email}, nil
}
