package main

import (
	"context"
	"errors"
	"os"
	"time"

	savingsv1 "savingsTracker/api/savings/v1"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// clientOptions are the connection flags shared by every command.
type clientOptions struct {
	addr    string
	token   string
	timeout time.Duration
}

// clients holds one connection and the three service stubs.
type clients struct {
	conn    *grpc.ClientConn
	auth    savingsv1.AuthServiceClient
	savings savingsv1.SavingsServiceClient
	admin   savingsv1.AdminServiceClient
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	opts := &clientOptions{}
	root := &cobra.Command{
		Use:           "savingsctl",
		Short:         "Savings tracker client",
		Long:          `A command-line client for recording deposits and administering the savings ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.addr, "addr", envOr("SAVINGS_ADDR", "localhost:50051"), "server address (env SAVINGS_ADDR)")
	root.PersistentFlags().StringVar(&opts.token, "token", envOr("SAVINGS_TOKEN", ""), "session token from login (env SAVINGS_TOKEN)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-call timeout")

	root.AddCommand(
		newRegisterCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newDepositCmd(opts),
		newBalanceCmd(opts),
		newHistoryCmd(opts),
		newAdminCmd(opts),
	)
	return root
}

// dial connects to the server. Plaintext; put TLS in front for remote use.
func (o *clientOptions) dial() (*clients, error) {
	conn, err := grpc.NewClient(o.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &clients{
		conn:    conn,
		auth:    savingsv1.NewAuthServiceClient(conn),
		savings: savingsv1.NewSavingsServiceClient(conn),
		admin:   savingsv1.NewAdminServiceClient(conn),
	}, nil
}

// callCtx returns a context bounded by the timeout, carrying the token when authed is set.
func (o *clientOptions) callCtx(parent context.Context, authed bool) (context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(parent, o.timeout)
	if !authed {
		return ctx, cancel, nil
	}
	if o.token == "" {
		cancel()
		return nil, nil, errors.New("not logged in: pass --token or set SAVINGS_TOKEN")
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+o.token), cancel, nil
}

// withClients dials, prepares the call context and runs fn.
func (o *clientOptions) withClients(cmd *cobra.Command, authed bool, fn func(ctx context.Context, c *clients) error) error {
	ctx, cancel, err := o.callCtx(cmd.Context(), authed)
	if err != nil {
		return err
	}
	defer cancel()
	c, err := o.dial()
	if err != nil {
		return err
	}
	defer c.conn.Close()
	return fn(ctx, c)
}
