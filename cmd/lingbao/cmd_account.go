package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lingbao-market/client/internal/auth"
	"github.com/lingbao-market/client/internal/model"
)

// envPassword supplies the password for login and register without a prompt.
const envPassword = "LINGBAO_PASSWORD"

func newCaptchaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "captcha",
		Short: "Request a captcha for login or register",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client.GetCaptcha(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}
}

// authFlags are shared by login and register.
type authFlags struct {
	username    string
	captchaID   string
	captchaCode string
}

func (f *authFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "Account name")
	cmd.Flags().StringVar(&f.captchaID, "captcha-id", "", "Captcha id from the captcha command")
	cmd.Flags().StringVar(&f.captchaCode, "captcha-code", "", "Captcha answer")
	markRequired(cmd, "username", "captcha-id", "captcha-code")
}

func (f *authFlags) request(cmd *cobra.Command) (model.AuthRequest, error) {
	password, err := readPassword(cmd)
	if err != nil {
		return model.AuthRequest{}, err
	}
	return model.AuthRequest{
		Username:    strings.TrimSpace(f.username),
		Password:    password,
		CaptchaID:   f.captchaID,
		CaptchaCode: strings.TrimSpace(f.captchaCode),
	}, nil
}

func newLoginCmd(a *app) *cobra.Command {
	var (
		flags authFlags
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session token",
		Long: fmt.Sprintf(`Log in with a username, password and captcha answer.

The password is read from $%s or the first line of stdin. With --save the
token is written to api.token_file for later commands.`, envPassword),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd)
			if err != nil {
				return err
			}

			resp, err := a.client.Login(cmd.Context(), req)
			if err != nil {
				return err
			}

			session, err := auth.NewSession(resp)
			if err != nil {
				return err
			}
			a.client.SetToken(session.Token)

			if save {
				if a.cfg.API.TokenFile == "" {
					return errors.New("--save needs api.token_file in the config")
				}
				if err := auth.SaveToken(a.cfg.API.TokenFile, session.Token); err != nil {
					return err
				}
				a.logger.Info("token saved", "path", a.cfg.API.TokenFile)
			}

			a.logger.Info("logged in", "username", session.Username, "admin", session.IsAdmin)
			view := sessionView{
				Token:    session.Token,
				UserID:   session.UserID,
				Username: session.Username,
				IsAdmin:  session.IsAdmin,
			}
			if !session.ExpiresAt.IsZero() {
				view.ExpiresAt = session.ExpiresAt.UTC().Format(time.RFC3339)
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "Write the token to api.token_file")

	return cmd
}

type sessionView struct {
	Token     string `json:"token"`
	UserID    string `json:"id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"isAdmin"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

func newRegisterCmd(a *app) *cobra.Command {
	var flags authFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd)
			if err != nil {
				return err
			}
			resp, err := a.client.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	flags.register(cmd)
	return cmd
}

func readPassword(cmd *cobra.Command) (string, error) {
	if p := os.Getenv(envPassword); p != "" {
		return p, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", errors.New("empty password")
	}
	return line, nil
}
