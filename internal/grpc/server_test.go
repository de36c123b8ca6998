package grpcserver

import (
	"context"
	"net"
	"testing"
	"time"

	savingsv1 "savingsTracker/api/savings/v1"
	"savingsTracker/internal/auth"
	"savingsTracker/internal/config"
	"savingsTracker/internal/logging"
	"savingsTracker/internal/testutil"
	"savingsTracker/models"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type e2e struct {
	conn    *grpc.ClientConn
	authc   savingsv1.AuthServiceClient
	savings savingsv1.SavingsServiceClient
	admin   savingsv1.AdminServiceClient
	health  healthpb.HealthClient
}

func startE2E(t *testing.T) *e2e {
	t.Helper()
	creds, ledger := testutil.FileStores(t)
	_, err := creds.Register(context.Background(), "root", "rootpw", models.RoleAdmin)
	require.NoError(t, err)

	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "e2e-secret"}}
	deps := Deps{
		Credentials: creds,
		Ledger:      ledger,
		Sessions:    auth.NewSessions(),
		Logger:      logging.Discard(),
		Now:         func() time.Time { return fixedNow },
	}
	srv, hs := NewServer(cfg, deps)
	require.NoError(t, RefreshHealth(context.Background(), hs, deps))

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &e2e{
		conn:    conn,
		authc:   savingsv1.NewAuthServiceClient(conn),
		savings: savingsv1.NewSavingsServiceClient(conn),
		admin:   savingsv1.NewAdminServiceClient(conn),
		health:  healthpb.NewHealthClient(conn),
	}
}

func (e *e2e) login(t *testing.T, username, password string) context.Context {
	t.Helper()
	resp, err := e.authc.Login(context.Background(), &savingsv1.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+resp.Token)
}

func TestE2E_Flow(t *testing.T) {
	e := startE2E(t)
	ctx := context.Background()

	hc, err := e.health.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, hc.GetStatus())

	_, err = e.authc.Register(ctx, &savingsv1.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	_, err = e.authc.Register(ctx, &savingsv1.RegisterRequest{Username: "alice", Password: "pw2"})
	require.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = e.savings.GetBalance(ctx, &savingsv1.GetBalanceRequest{})
	require.Equal(t, codes.Unauthenticated, status.Code(err))

	alice := e.login(t, "alice", "pw1")
	dep, err := e.savings.Deposit(alice, &savingsv1.DepositRequest{Amount: 50000, Note: models.NoteCash})
	require.NoError(t, err)
	require.Equal(t, "2024-05-01 09:15", dep.Deposit.Timestamp)
	require.Equal(t, "alice", dep.Deposit.User)

	_, err = e.savings.Deposit(alice, &savingsv1.DepositRequest{Amount: 12345})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	bal, err := e.savings.GetBalance(alice, &savingsv1.GetBalanceRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 50000, bal.Total)

	_, err = e.admin.GetTotal(alice, &savingsv1.GetTotalRequest{})
	require.Equal(t, codes.PermissionDenied, status.Code(err))

	root := e.login(t, "root", "rootpw")
	total, err := e.admin.GetTotal(root, &savingsv1.GetTotalRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 50000, total.Total)

	exp, err := e.admin.ExportLedger(root, &savingsv1.ExportLedgerRequest{})
	require.NoError(t, err)
	require.Equal(t, "Tanggal,User,Jumlah (Rp),Keterangan\n2024-05-01 09:15,alice,50000,Cash\n", string(exp.Data))

	_, err = e.admin.DeleteDeposit(root, &savingsv1.DeleteDepositRequest{Position: 3})
	require.Equal(t, codes.OutOfRange, status.Code(err))
	_, err = e.admin.DeleteDeposit(root, &savingsv1.DeleteDepositRequest{Position: 0, Expected: dep.Deposit})
	require.NoError(t, err)
	_, err = e.admin.ClearLedger(root, &savingsv1.ClearLedgerRequest{})
	require.NoError(t, err, "deleting the last record leaves an empty ledger file that can still be cleared")
}

func TestE2E_LogoutRevokesToken(t *testing.T) {
	e := startE2E(t)
	root := e.login(t, "root", "rootpw")

	_, err := e.admin.ListUsers(root, &savingsv1.ListUsersRequest{})
	require.NoError(t, err)

	_, err = e.authc.Logout(root, &savingsv1.LogoutRequest{})
	require.NoError(t, err)

	_, err = e.admin.ListUsers(root, &savingsv1.ListUsersRequest{})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestE2E_ForgedRoleClaim(t *testing.T) {
	e := startE2E(t)
	ctx := context.Background()
	_, err := e.authc.Register(ctx, &savingsv1.RegisterRequest{Username: "eve", Password: "pw"})
	require.NoError(t, err)
	_ = e.login(t, "eve", "pw")

	// A token claiming admin for a user-tier account, signed with the right key
	// but never issued by Login, has no open session.
	tok := testutil.GenerateJWTHS256(t, "e2e-secret", "eve", "admin", "made-up-session")
	forged := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+tok)
	_, err = e.admin.ListUsers(forged, &savingsv1.ListUsersRequest{})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}
