package client

import (
	"context"

	pb "github.com/dmitrijs2005/idkeeper/internal/proto"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username, email, password string) (*pb.Account, error)
	Login(ctx context.Context, email, password string) error
	WhoAmI(ctx context.Context) (*pb.Account, error)
	UpdateProfile(ctx context.Context, id, username, email string) (*pb.Account, error)
	ListAccounts(ctx context.Context) ([]*pb.Account, error)
	Logout()
	LoggedIn() bool
}
