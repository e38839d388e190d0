package grpc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	pb "github.com/dmitrijs2005/invitekeeper/internal/proto"
	"github.com/dmitrijs2005/invitekeeper/internal/server/auth"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeAuth struct {
	user *models.SlimUser
	err  error
}

func (f *fakeAuth) Authenticate(_ context.Context, email, password string) (*models.SlimUser, error) {
	return f.user, f.err
}

type fakeInviter struct {
	inv *models.Invitation
	err error
}

func (f *fakeInviter) Create(_ context.Context, email string) (*models.Invitation, error) {
	return f.inv, f.err
}

type fakeRegistrar struct {
	user   *models.SlimUser
	err    error
	gotID  string
	gotPwd string
}

func (f *fakeRegistrar) Register(_ context.Context, invitationID, password string) (*models.SlimUser, error) {
	f.gotID, f.gotPwd = invitationID, password
	return f.user, f.err
}

type failingEncoder struct{ *auth.TokenCodec }

func (failingEncoder) Encode(*models.SlimUser) (string, error) { return "", errors.New("hmac broke") }

func requireStatus(t *testing.T, err error, code codes.Code, msg string) {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok, "not a status error: %v", err)
	assert.Equal(t, code, st.Code())
	assert.Equal(t, msg, st.Message())
}

// ---- tests ----

func TestLogin_SetsCookieAndReturnsToken(t *testing.T) {
	codec := auth.NewTokenCodec([]byte("test-secret"), "localhost")
	client := startBufServer(t, newTestServer(Services{
		Auth:   &fakeAuth{user: &models.SlimUser{Email: "a@x.io"}},
		Tokens: codec,
	}, 2, time.Second))

	var header metadata.MD
	resp, err := client.Login(context.Background(), &pb.LoginRequest{Email: "a@x.io", Password: "pw"}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", resp.Email)

	claims, err := codec.Decode(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", claims.Email)

	cookies := header.Get("set-cookie")
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.True(t, strings.HasPrefix(c, "auth="+resp.Token))
	for _, attr := range []string{"Path=/", "Domain=" + testDomain, "Max-Age=2592000", "HttpOnly", "Secure"} {
		assert.Contains(t, c, attr)
	}
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name string
		svc  Services
		code codes.Code
		msg  string
	}{
		{
			name: "bad credentials",
			svc:  Services{Auth: &fakeAuth{err: common.ErrInvalidCredentials}},
			code: codes.Unauthenticated, msg: "invalid credentials",
		},
		{
			name: "store down",
			svc:  Services{Auth: &fakeAuth{err: common.ErrUnavailable}},
			code: codes.Unavailable, msg: "service unavailable, retry",
		},
		{
			name: "encode failure",
			svc: Services{
				Auth:   &fakeAuth{user: &models.SlimUser{Email: "a@x.io"}},
				Tokens: failingEncoder{auth.NewTokenCodec([]byte("k"), "localhost")},
			},
			code: codes.Internal, msg: "internal error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := startBufServer(t, newTestServer(tt.svc, 2, time.Second))
			_, err := client.Login(context.Background(), &pb.LoginRequest{Email: "a@x.io", Password: "pw"})
			requireStatus(t, err, tt.code, tt.msg)
		})
	}
}

func TestLogout_ExpiresCookie(t *testing.T) {
	client := startBufServer(t, newTestServer(Services{}, 1, time.Second))

	var header metadata.MD
	_, err := client.Logout(context.Background(), &pb.LogoutRequest{}, grpc.Header(&header))
	require.NoError(t, err)

	cookies := header.Get("set-cookie")
	require.Len(t, cookies, 1)
	assert.Contains(t, cookies[0], "auth=")
	assert.Contains(t, cookies[0], "Max-Age=0")
}

func TestWhoAmI(t *testing.T) {
	codec := auth.NewTokenCodec([]byte("test-secret"), "localhost")
	token, err := codec.Encode(&models.SlimUser{Email: "a@x.io"})
	require.NoError(t, err)

	client := startBufServer(t, newTestServer(Services{Tokens: codec}, 1, time.Second))

	tests := []struct {
		name string
		md   metadata.MD
		want string
	}{
		{"access token", metadata.Pairs("access_token", token), "a@x.io"},
		{"bearer", metadata.Pairs("authorization", "Bearer "+token), "a@x.io"},
		{"cookie", metadata.Pairs("cookie", "auth="+token), "a@x.io"},
		{"none", metadata.MD{}, ""},
		{"garbage", metadata.Pairs("access_token", "garbage"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := metadata.NewOutgoingContext(context.Background(), tt.md)
			resp, err := client.WhoAmI(ctx, &pb.WhoAmIRequest{})
			if tt.want == "" {
				requireStatus(t, err, codes.Unauthenticated, "unauthorized")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Email)
		})
	}
}

func TestCreateInvitation(t *testing.T) {
	id := uuid.New()
	exp := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	client := startBufServer(t, newTestServer(Services{
		Invitations: &fakeInviter{inv: &models.Invitation{ID: id, Email: "a@x.io", ExpiresAt: exp}},
	}, 1, time.Second))

	resp, err := client.CreateInvitation(context.Background(), &pb.CreateInvitationRequest{Email: "a@x.io"})
	require.NoError(t, err)
	assert.Equal(t, id.String(), resp.ID)
	assert.Equal(t, "a@x.io", resp.Email)
	assert.True(t, exp.Equal(resp.ExpiresAt))
}

func TestCreateInvitation_InvalidInput(t *testing.T) {
	client := startBufServer(t, newTestServer(Services{
		Invitations: &fakeInviter{err: common.ErrInvalidInput},
	}, 1, time.Second))

	_, err := client.CreateInvitation(context.Background(), &pb.CreateInvitationRequest{Email: "nope"})
	requireStatus(t, err, codes.InvalidArgument, "invalid input")
}

func TestRegister(t *testing.T) {
	reg := &fakeRegistrar{user: &models.SlimUser{Email: "a@x.io"}}
	client := startBufServer(t, newTestServer(Services{Registrations: reg}, 1, time.Second))

	resp, err := client.Register(context.Background(), &pb.RegisterRequest{InvitationID: "inv-1", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", resp.Email)
	assert.Equal(t, "inv-1", reg.gotID)
	assert.Equal(t, "pw", reg.gotPwd)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
		msg  string
	}{
		{common.ErrInvalidInvitation, codes.InvalidArgument, "invalid invitation"},
		{common.ErrConflict, codes.AlreadyExists, "user already exists"},
		{errors.New("pq: relation users does not exist"), codes.Internal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			client := startBufServer(t, newTestServer(Services{
				Registrations: &fakeRegistrar{err: tt.err},
			}, 1, time.Second))

			_, err := client.Register(context.Background(), &pb.RegisterRequest{InvitationID: "x", Password: "pw"})
			requireStatus(t, err, tt.code, tt.msg)
		})
	}
}
