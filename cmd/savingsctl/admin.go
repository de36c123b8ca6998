package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	savingsv1 "savingsTracker/api/savings/v1"

	"github.com/spf13/cobra"
)

func newAdminCmd(o *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Ledger and account administration (admin role)",
	}
	cmd.AddCommand(
		newAdminDepositsCmd(o),
		newAdminTotalCmd(o),
		newAdminDeleteCmd(o),
		newAdminClearCmd(o),
		newAdminExportCmd(o),
		newAdminUsersCmd(o),
		newAdminCreateUserCmd(o),
	)
	return cmd
}

func newAdminDepositsCmd(o *clientOptions) *cobra.Command {
	var req savingsv1.ListDepositsRequest
	cmd := &cobra.Command{
		Use:   "deposits",
		Short: "List all deposits in ledger order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				resp, err := c.admin.ListDeposits(ctx, &req)
				if err != nil {
					return err
				}
				return printDeposits(cmd.OutOrStdout(), resp.Deposits, resp.Total)
			})
		},
	}
	cmd.Flags().StringVar(&req.User, "user", "", "only this user's deposits")
	cmd.Flags().StringVar(&req.From, "from", "", "earliest timestamp, YYYY-MM-DD[ HH:MM]")
	cmd.Flags().StringVar(&req.To, "to", "", "latest timestamp, YYYY-MM-DD[ HH:MM]")
	return cmd
}

func newAdminTotalCmd(o *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Show the sum of all deposits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				resp, err := c.admin.GetTotal(ctx, &savingsv1.GetTotalRequest{})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), rupiah(resp.Total))
				return nil
			})
		},
	}
}

func newAdminDeleteCmd(o *clientOptions) *cobra.Command {
	var unguarded bool
	cmd := &cobra.Command{
		Use:   "delete <position>",
		Short: "Delete the deposit at a ledger position",
		Long: `Delete the deposit at a ledger position as shown by "admin deposits".
The record is fetched first and sent along, so the delete is refused if the
ledger changed in between. Use --unguarded to skip that check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				req := &savingsv1.DeleteDepositRequest{Position: pos}
				if !unguarded {
					all, err := c.admin.ListDeposits(ctx, &savingsv1.ListDepositsRequest{})
					if err != nil {
						return err
					}
					if int(pos) < len(all.Deposits) {
						req.Expected = all.Deposits[pos]
					}
				}
				resp, err := c.admin.DeleteDeposit(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted #%d, total now %s\n", pos, rupiah(resp.Total))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&unguarded, "unguarded", false, "delete without checking the record first")
	return cmd
}

func newAdminClearCmd(o *clientOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the ledger without --yes")
			}
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				if _, err := c.admin.ClearLedger(ctx, &savingsv1.ClearLedgerRequest{}); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ledger cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}

func newAdminExportCmd(o *clientOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the ledger as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				resp, err := c.admin.ExportLedger(ctx, &savingsv1.ExportLedgerRequest{})
				if err != nil {
					return err
				}
				path := output
				if !cmd.Flags().Changed("output") {
					path = resp.FileName
				}
				return writeFileOrStdout(cmd, path, resp.Data)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout; default is the server's file name)`)
	return cmd
}

func newAdminUsersCmd(o *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				resp, err := c.admin.ListUsers(ctx, &savingsv1.ListUsersRequest{})
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "USERNAME\tROLE\tPASSWORD")
				for _, u := range resp.Users {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Username, u.Role, u.Password)
				}
				return tw.Flush()
			})
		},
	}
}

func newAdminCreateUserCmd(o *clientOptions) *cobra.Command {
	var username, password, role string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account of either role",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClients(cmd, true, func(ctx context.Context, c *clients) error {
				resp, err := c.admin.CreateUser(ctx, &savingsv1.CreateUserRequest{Username: username, Password: password, Role: role})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", resp.User.Username, resp.User.Role)
				return nil
			})
		},
	}
	credentialFlags(cmd, &username, &password)
	cmd.Flags().StringVar(&role, "role", "user", "user or admin")
	return cmd
}

// parsePosition accepts a non-negative ledger position that fits the wire type.
func parsePosition(arg string) (int32, error) {
	pos, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("position %s out of range", arg)
		}
		return 0, fmt.Errorf("position must be a number: %w", err)
	}
	if pos < 0 {
		return 0, fmt.Errorf("position %s out of range", arg)
	}
	return int32(pos), nil
}
