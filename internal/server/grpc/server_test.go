package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/invitekeeper/internal/logging"
	pb "github.com/dmitrijs2005/invitekeeper/internal/proto"
	"github.com/dmitrijs2005/invitekeeper/internal/server/auth"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

const testDomain = "example.com"

// startBufServer serves s over an in-memory listener and returns a client
// connected to it.
func startBufServer(t *testing.T, s *GRPCServer) pb.AuthServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})

	return pb.NewAuthServiceClient(conn)
}

func newTestServer(svc Services, workers int64, timeout time.Duration) *GRPCServer {
	if svc.Tokens == nil {
		svc.Tokens = auth.NewTokenCodec([]byte("test-secret"), "localhost")
	}
	return NewGRPCServer(Options{
		Address: "127.0.0.1:0",
		Domain:  testDomain,
		Workers: workers,
		Timeout: timeout,
	}, svc, logging.Nop())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newTestServer(Services{}, 1, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := newTestServer(Services{}, 1, time.Second)
	srv.address = "127.0.0.1:99999"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func TestNewGRPCServer_ClampsWorkers(t *testing.T) {
	s := newTestServer(Services{}, 0, time.Second)
	require.True(t, s.workers.TryAcquire(1))
	require.False(t, s.workers.TryAcquire(1))
}
