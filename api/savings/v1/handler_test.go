package savingsv1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

type loginOnly struct {
	UnimplementedAuthServiceServer
}

func (loginOnly) Login(_ context.Context, req *LoginRequest) (*LoginResponse, error) {
	return &LoginResponse{Username: req.Username, Token: "t"}, nil
}

func methodHandler(t *testing.T, desc grpc.ServiceDesc, name string) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	t.Helper()
	for _, m := range desc.Methods {
		if m.MethodName == name {
			return m.Handler
		}
	}
	t.Fatalf("method %s not in %s", name, desc.ServiceName)
	return nil
}

func TestServiceDesc_DispatchesToServer(t *testing.T) {
	h := methodHandler(t, AuthService_ServiceDesc, "Login")
	dec := func(v any) error {
		return codec{}.Unmarshal([]byte(`{"username":"alice","password":"pw"}`), v)
	}

	resp, err := h(loginOnly{}, context.Background(), dec, nil)
	require.NoError(t, err)
	require.Equal(t, "alice", resp.(*LoginResponse).Username)

	var seen string
	intercept := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}
	resp, err = h(loginOnly{}, context.Background(), dec, intercept)
	require.NoError(t, err)
	require.Equal(t, AuthService_Login_FullMethodName, seen)
	require.Equal(t, "t", resp.(*LoginResponse).Token)

	_, err = methodHandler(t, AuthService_ServiceDesc, "Logout")(loginOnly{}, context.Background(), dec, nil)
	require.Error(t, err)
}
