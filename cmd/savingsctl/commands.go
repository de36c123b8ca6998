package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	savingsv1 "savingsTracker/api/savings/v1"
	"savingsTracker/models"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newRegisterCmd(o *clientOptions) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, false, func(ctx context.Context, c *clients) error {
				resp, err := c.auth.Register(ctx, &savingsv1.RegisterRequest{Username: username, Password: password})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s)\n", resp.User.Username, resp.User.Role)
				return nil
			})
		},
	}
	credentialFlags(cmd, &username, &password)
	return cmd
}

func newLoginCmd(o *clientOptions) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, false, func(ctx context.Context, c *clients) error {
				resp, err := c.auth.Login(ctx, &savingsv1.LoginRequest{Username: username, Password: password})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "logged in as %s (%s)\n", resp.Username, resp.Role)
				fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
				return nil
			})
		},
	}
	credentialFlags(cmd, &username, &password)
	return cmd
}

func newLogoutCmd(o *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				if _, err := c.auth.Logout(ctx, &savingsv1.LogoutRequest{}); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func newDepositCmd(o *clientOptions) *cobra.Command {
	var amount int64
	var note string
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Record a deposit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDeposit(amount, note); err != nil {
				return err
			}
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				resp, err := c.savings.Deposit(ctx, &savingsv1.DepositRequest{Amount: amount, Note: note})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "saved: %s\n", resp.Summary)
				if resp.ReceiptPath != "" {
					fmt.Fprintf(out, "receipt: %s\n", resp.ReceiptPath)
				}
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&amount, "amount", models.MinAmount, "amount in Rp (multiple of 10,000)")
	cmd.Flags().StringVar(&note, "note", models.NoteCash, fmt.Sprintf("one of %q", models.KnownNotes()))
	return cmd
}

func newBalanceCmd(o *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show your total savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				resp, err := c.savings.GetBalance(ctx, &savingsv1.GetBalanceRequest{})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Username, rupiah(resp.Total))
				return nil
			})
		},
	}
}

func newHistoryCmd(o *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List your deposits, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				resp, err := c.savings.ListMyDeposits(ctx, &savingsv1.ListMyDepositsRequest{})
				if err != nil {
					return err
				}
				return printDeposits(cmd.OutOrStdout(), newestFirst(resp.Deposits), resp.Total)
			})
		},
	}
}

func credentialFlags(cmd *cobra.Command, username, password *string) {
	cmd.Flags().StringVarP(username, "username", "u", "", "username")
	cmd.Flags().StringVarP(password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
}

// validateDeposit applies the deposit policy before anything is sent.
func validateDeposit(amount int64, note string) error {
	if err := models.ValidateAmount(amount); err != nil {
		return err
	}
	if !models.IsKnownNote(note) {
		return fmt.Errorf("note must be one of %q", models.KnownNotes())
	}
	return nil
}

func rupiah(v int64) string {
	return "Rp " + humanize.Comma(v)
}

func newestFirst(ds []*savingsv1.Deposit) []*savingsv1.Deposit {
	out := make([]*savingsv1.Deposit, len(ds))
	for i, d := range ds {
		out[len(ds)-1-i] = d
	}
	return out
}

func printDeposits(w io.Writer, ds []*savingsv1.Deposit, total int64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTANGGAL\tUSER\tJUMLAH\tKETERANGAN")
	for _, d := range ds {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.Position, d.Timestamp, d.User, rupiah(d.Amount), d.Note)
	}
	fmt.Fprintf(tw, "\t\t\t%s\tTOTAL\n", rupiah(total))
	return tw.Flush()
}

func writeFileOrStdout(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	return nil
}
