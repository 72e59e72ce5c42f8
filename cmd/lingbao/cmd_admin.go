package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lingbao-market/client/internal/model"
)

func newAdminCmd(a *app) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Moderation commands (admin accounts only)",
		Long: `Moderation commands for administrators.

Available subcommands:
  users        - List accounts
  create-user  - Create an account
  ban, unban   - Ban or unban an account
  delete-user  - Delete an account
  delete-price - Remove a code from the feed
  feedback     - List feedback reports
  resolve      - Resolve a feedback report (keep or delete)
  logs         - Show the moderation log`,
	}

	// The session is only known after the root's PersistentPreRunE.
	var run runWrapper = func(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}
			return fn(cmd, args)
		}
	}

	admin.AddCommand(
		&cobra.Command{
			Use:   "users",
			Short: "List accounts",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, args []string) error {
				users, err := a.client.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), users)
			}),
		},
		newCreateUserCmd(a, run),
		newBanCmd(a, run, "ban", true),
		newBanCmd(a, run, "unban", false),
		&cobra.Command{
			Use:   "delete-user <username>",
			Short: "Delete an account",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				if err := a.client.DeleteUser(cmd.Context(), args[0]); err != nil {
					return err
				}
				a.logger.Info("user deleted", "username", args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "delete-price <code>",
			Short: "Remove a code from the feed",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				resp, err := a.client.DeletePrice(cmd.Context(), model.NormalizeCode(args[0]))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			}),
		},
		newListFeedbackCmd(a, run),
		&cobra.Command{
			Use:   "resolve <id> <keep|delete>",
			Short: "Resolve a feedback report",
			Long:  "Resolve a feedback report. delete also removes the reported code from the feed.",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				msg, err := a.client.ResolveFeedback(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), msg)
			}),
		},
		&cobra.Command{
			Use:   "logs",
			Short: "Show the moderation log",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, args []string) error {
				logs, err := a.client.ListLogs(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), logs)
			}),
		},
	)

	return admin
}

type runWrapper func(func(*cobra.Command, []string) error) func(*cobra.Command, []string) error

func newCreateUserCmd(a *app, run runWrapper) *cobra.Command {
	var req model.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account",
		Long:  fmt.Sprintf("Create an account. The password is read from $%s or the first line of stdin.", envPassword),
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			req.Password = password
			user, err := a.client.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		}),
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "Account name")
	cmd.Flags().BoolVar(&req.IsAdmin, "admin", false, "Grant admin rights")
	markRequired(cmd, "username")

	return cmd
}

func newBanCmd(a *app, run runWrapper, use string, banned bool) *cobra.Command {
	short := "Ban an account"
	if !banned {
		short = "Lift a ban"
	}
	return &cobra.Command{
		Use:   use + " <username>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			user, err := a.client.SetUserBan(cmd.Context(), args[0], banned)
			if err != nil {
				return err
			}
			a.logger.Info("ban updated", "username", user.Username, "banned", user.Banned)
			return printJSON(cmd.OutOrStdout(), user)
		}),
	}
}

func newListFeedbackCmd(a *app, run runWrapper) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "List feedback reports",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) error {
			msgs, err := a.client.ListFeedback(cmd.Context(), all)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msgs)
		}),
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include resolved reports")
	return cmd
}
