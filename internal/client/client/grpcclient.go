package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/common"
	pb "github.com/dmitrijs2005/idkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.AccountServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withBearerToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

// bearerTokenInterceptor attaches the session token, if any, to every call.
func (s *GRPCClient) bearerTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.token(); token != "" {
		ctx = withBearerToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewAccountClient creates a client for endpointURL. Extra dial options are
// appended after the defaults (insecure transport, token interceptor).
func NewAccountClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.bearerTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, dialOpts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAccountServiceClient(conn)
	return nil
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Register(ctx context.Context, username, email, password string) (*pb.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.RegisterRequest{Username: username, Email: email, Password: password}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.GetAccount(), nil
}

// Login authenticates and keeps the returned token for later calls.
func (s *GRPCClient) Login(ctx context.Context, email, password string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.LoginRequest{Email: email, Password: password}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	s.setToken(resp.GetToken())

	return nil
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*pb.Account, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.WhoAmI(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.GetAccount(), nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, id, username, email string) (*pb.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.UpdateProfileRequest{Id: id, Username: username, Email: email}

	resp, err := s.client.UpdateProfile(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.GetAccount(), nil
}

func (s *GRPCClient) ListAccounts(ctx context.Context) ([]*pb.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListAccounts(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.GetAccounts(), nil
}

// Logout forgets the session token. Nothing is sent to the server; tokens
// are stateless and simply expire.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrInvalidArgument, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrAlreadyExists, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
