// Package grpc exposes the auth services over gRPC. Messages are JSON
// encoded (see internal/proto); every call passes a worker bound and an
// operation deadline before it reaches a handler.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/invitekeeper/internal/logging"
	pb "github.com/dmitrijs2005/invitekeeper/internal/proto"
	"github.com/dmitrijs2005/invitekeeper/internal/server/identity"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.SlimUser, error)
}

type Inviter interface {
	Create(ctx context.Context, email string) (*models.Invitation, error)
}

type Registrar interface {
	Register(ctx context.Context, invitationID, password string) (*models.SlimUser, error)
}

type TokenCodec interface {
	identity.Decoder
	Encode(user *models.SlimUser) (string, error)
}

// Services groups the collaborators the handlers delegate to.
type Services struct {
	Auth          Authenticator
	Invitations   Inviter
	Registrations Registrar
	Tokens        TokenCodec
}

// Options tunes the transport.
type Options struct {
	Address string
	// Domain is the Domain attribute of the auth cookie.
	Domain string
	// Workers bounds the number of calls served at once.
	Workers int64
	// Timeout bounds each call, including the wait for a worker.
	Timeout time.Duration
}

type GRPCServer struct {
	pb.UnimplementedAuthServiceServer
	address  string
	domain   string
	timeout  time.Duration
	workers  *semaphore.Weighted
	services Services
	logger   logging.Logger
}

// protectedMethods require an authenticated caller.
var protectedMethods = map[string]bool{
	pb.AuthService_WhoAmI_FullMethodName: true,
}

func NewGRPCServer(o Options, svc Services, l logging.Logger) *GRPCServer {
	workers := o.Workers
	if workers < 1 {
		workers = 1
	}

	return &GRPCServer{
		address:  o.Address,
		domain:   o.Domain,
		timeout:  o.Timeout,
		workers:  semaphore.NewWeighted(workers),
		services: svc,
		logger:   l.With("module", "grpc_server"),
	}
}

// newServer builds the grpc.Server with the service and interceptors
// registered.
func (s *GRPCServer) newServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.limitInterceptor, s.identityInterceptor),
	}, opts...)

	srv := grpc.NewServer(opts...)
	pb.RegisterAuthServiceServer(srv, s)
	return srv
}

// Run serves on the configured address until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
