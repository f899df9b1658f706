package grpc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/common"
	"github.com/dmitrijs2005/idkeeper/internal/logging"
	pb "github.com/dmitrijs2005/idkeeper/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var whoAmIInfo = &grpc.UnaryServerInfo{FullMethod: pb.AccountService_WhoAmI_FullMethodName}

func TestBearerInterceptor_OtherMethodsPassThrough(t *testing.T) {
	s := newServer(&fakeAccounts{})

	info := &grpc.UnaryServerInfo{FullMethod: pb.AccountService_Login_FullMethodName}
	handlerCalled := false

	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.bearerTokenInterceptor(context.Background(), nil, info, h)
	require.NoError(t, err)
	assert.True(t, handlerCalled)
	assert.Equal(t, "ok", resp)
}

func TestBearerInterceptor_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		md      metadata.MD
		message string
	}{
		{"no metadata", nil, "missing token"},
		{"empty header", metadata.Pairs(common.AuthorizationHeaderName, ""), "missing token"},
		{"no bearer prefix", metadata.Pairs(common.AuthorizationHeaderName, "tok"), "invalid auth header format"},
		{"basic scheme", metadata.Pairs(common.AuthorizationHeaderName, "Basic dTpw"), "invalid auth header format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(&fakeAccounts{})
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			h := func(ctx context.Context, req any) (any, error) {
				t.Fatal("handler should not be called")
				return nil, nil
			}

			_, err := s.bearerTokenInterceptor(ctx, nil, whoAmIInfo, h)
			assertStatus(t, err, codes.Unauthenticated, tt.message)
		})
	}
}

func TestBearerInterceptor_StoresToken(t *testing.T) {
	s := newServer(&fakeAccounts{})

	md := metadata.Pairs(common.AuthorizationHeaderName, "Bearer abc.def.ghi")
	ctx := metadata.NewIncomingContext(context.Background(), md)

	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got = tokenFromContext(ctx)
		return "ok", nil
	}

	_, err := s.bearerTokenInterceptor(ctx, nil, whoAmIInfo, h)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)
}

func TestBearerInterceptor_EmptyBearerReachesService(t *testing.T) {
	s := newServer(&fakeAccounts{})

	md := metadata.Pairs(common.AuthorizationHeaderName, "Bearer ")
	ctx := metadata.NewIncomingContext(context.Background(), md)

	called := false
	h := func(ctx context.Context, req any) (any, error) {
		called = true
		assert.Empty(t, tokenFromContext(ctx))
		return nil, nil
	}

	_, err := s.bearerTokenInterceptor(ctx, nil, whoAmIInfo, h)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRecoveryInterceptor(t *testing.T) {
	s := newServer(&fakeAccounts{})

	h := func(ctx context.Context, req any) (any, error) {
		panic("kaboom")
	}

	resp, err := s.recoveryInterceptor(context.Background(), nil, whoAmIInfo, h)
	assert.Nil(t, resp)
	assertStatus(t, err, codes.Internal, "internal error")
}

func TestLimitInterceptor_BoundsConcurrency(t *testing.T) {
	const workers = 2
	s := NewGRPCServer("", logging.Nop(), &fakeAccounts{}, workers, time.Second)

	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	h := func(ctx context.Context, req any) (any, error) {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
		return nil, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.limitInterceptor(context.Background(), nil, whoAmIInfo, h)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak, workers)
	assert.Positive(t, peak)
}

func TestLimitInterceptor_DeadlineWhileWaiting(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), &fakeAccounts{}, 1, time.Second)

	require.NoError(t, s.limiter.Acquire(context.Background(), 1))
	defer s.limiter.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not run without a slot")
		return nil, nil
	}

	_, err := s.limitInterceptor(ctx, nil, whoAmIInfo, h)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
}
