package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/idkeeper/internal/common"
	pb "github.com/dmitrijs2005/idkeeper/internal/proto"
	"github.com/dmitrijs2005/idkeeper/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.AccountResponse, error) {

	account, err := s.accounts.Register(ctx, req.GetUsername(), req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "id", account.ID)
	return &pb.AccountResponse{Account: toProto(account)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	token, err := s.accounts.Login(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.LoginResponse{Token: token}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *emptypb.Empty) (*pb.AccountResponse, error) {

	account, err := s.accounts.WhoAmI(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.AccountResponse{Account: toProto(account)}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *pb.UpdateProfileRequest) (*pb.AccountResponse, error) {

	account, err := s.accounts.UpdateProfile(ctx, req.GetId(), req.GetUsername(), req.GetEmail())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.AccountResponse{Account: toProto(account)}, nil
}

func (s *GRPCServer) ListAccounts(ctx context.Context, _ *emptypb.Empty) (*pb.ListAccountsResponse, error) {

	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := make([]*pb.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toProto(a))
	}
	return &pb.ListAccountsResponse{Accounts: out}, nil
}

// toProto copies the public part of an account. The password hash never
// leaves the server.
func toProto(a *models.Account) *pb.Account {
	if a == nil {
		return nil
	}
	return &pb.Account{Id: a.ID, Username: a.Username, Email: a.Email}
}

var kindCodes = map[error]codes.Code{
	common.ErrInvalidArgument: codes.InvalidArgument,
	common.ErrAlreadyExists:   codes.AlreadyExists,
	common.ErrUnauthenticated: codes.Unauthenticated,
	common.ErrNotFound:        codes.NotFound,
	common.ErrInternal:        codes.Internal,
}

// toStatus maps a service error to a gRPC status carrying the caller-facing
// message. Causes of internal errors are logged here and dropped.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return status.FromContextError(ctxErr).Err()
		}
	}

	kind := common.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		code = codes.Internal
	}

	if code == codes.Internal {
		s.logger.Error(ctx, "internal error", "err", err)
		return status.Error(codes.Internal, common.ErrInternal.Error())
	}

	return status.Error(code, common.MessageOf(err))
}
