// Package grpc exposes the account service over gRPC.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/logging"
	pb "github.com/dmitrijs2005/idkeeper/internal/proto"
	"github.com/dmitrijs2005/idkeeper/internal/server/models"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type accountService interface {
	Register(ctx context.Context, username, email, password string) (*models.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
	WhoAmI(ctx context.Context, token string) (*models.Account, error)
	UpdateProfile(ctx context.Context, id, username, email string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
}

type GRPCServer struct {
	pb.UnimplementedAccountServiceServer
	address         string
	accounts        accountService
	logger          logging.Logger
	workers         int
	limiter         *semaphore.Weighted
	shutdownTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, as accountService, workers int, shutdownTimeout time.Duration) *GRPCServer {
	if workers <= 0 {
		workers = 1
	}
	return &GRPCServer{
		address:         a,
		logger:          l.With("module", "grpc_server"),
		accounts:        as,
		workers:         workers,
		limiter:         semaphore.NewWeighted(int64(workers)),
		shutdownTimeout: shutdownTimeout,
	}
}

// newServer builds the *grpc.Server with interceptors, the account service
// and the health service registered.
func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			s.loggingInterceptor,
			s.recoveryInterceptor,
			s.limitInterceptor,
			s.bearerTokenInterceptor,
		),
		grpc.NumStreamWorkers(uint32(s.workers)),
	)

	pb.RegisterAccountServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv, hs
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled. Shutdown is
// graceful; calls still running after shutdownTimeout are cut off.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv, hs := s.newServer()

	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()

		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()

		if s.shutdownTimeout <= 0 {
			<-done
			return
		}

		t := time.NewTimer(s.shutdownTimeout)
		defer t.Stop()
		select {
		case <-done:
		case <-t.C:
			s.logger.Warn(ctx, "Graceful stop timed out, forcing")
			srv.Stop()
		}
	}()
	defer close(stopped)

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
