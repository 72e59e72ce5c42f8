package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/lingbao-market/client/internal/api"
	"github.com/lingbao-market/client/internal/auth"
	"github.com/lingbao-market/client/internal/config"
)

const defaultConfigPath = "lingbao.yaml"

// offlineAnnotation marks commands that run without config or network.
const offlineAnnotation = "offline"

// app carries what every subcommand needs once the root has loaded config.
type app struct {
	configPath string
	verbose    bool

	cfg     *config.Config
	logger  *slog.Logger
	client  *api.Client
	session *auth.Session // nil when no token is configured
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "lingbao",
		Short:        "Listing marketplace client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[offlineAnnotation] == "true" {
				return nil
			}
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath, "Path to config file (optional)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newParseCmd(a),
		newSubmitCmd(a),
		newFeedbackCmd(a),
		newFeedCmd(a),
		newCaptchaCmd(a),
		newLoginCmd(a),
		newRegisterCmd(a),
		newAdminCmd(a),
		newVersionCmd(),
	)

	return root
}

// init loads config and builds the logger and API client.
func (a *app) init(cmd *cobra.Command) error {
	// Only the default path may be absent.
	optional := !cmd.Flags().Changed("config")
	cfg, err := config.LoadAndValidate(a.configPath, optional)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	a.logger, err = newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(a.logger)

	token, err := a.resolveToken()
	if err != nil {
		return err
	}

	a.client = api.NewClient(cfg.API.BaseURL, token,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
		api.WithLogger(a.logger),
	)

	if token != "" {
		s, err := auth.SessionFromToken(token)
		if err != nil {
			a.logger.Warn("configured token is not a valid session token", "err", err)
		} else {
			a.session = s
			if s.Expired(time.Now(), auth.DefaultExpirySkew) {
				a.logger.Warn("session token has expired, run login again",
					"username", s.Username,
					"expired_at", s.ExpiresAt,
				)
			}
		}
	}

	a.logger.Debug("configuration loaded",
		"config", a.configPath,
		"api_url", cfg.API.BaseURL,
		"authenticated", token != "",
	)

	return nil
}

// resolveToken prefers an explicit token over the token file. A token file
// that does not exist yet, or is empty, means no session so that login can
// still rewrite it.
func (a *app) resolveToken() (string, error) {
	if a.cfg.API.Token != "" {
		return a.cfg.API.Token, nil
	}
	if a.cfg.API.TokenFile == "" {
		return "", nil
	}
	token, err := auth.LoadToken(a.cfg.API.TokenFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	case errors.Is(err, auth.ErrMalformedToken):
		a.logger.Warn("ignoring token file", "path", a.cfg.API.TokenFile, "err", err)
		return "", nil
	}
	return token, err
}

// markRequired marks flags defined on cmd as required. It only fails for an
// unknown flag name.
func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("mark %s required: %v", name, err))
		}
	}
}

// requireAdmin fails early for admin commands run without an admin session.
func (a *app) requireAdmin() error {
	if a.session == nil {
		return fmt.Errorf("not logged in: set %s, api.token or api.token_file", config.EnvToken)
	}
	if !a.session.IsAdmin {
		return fmt.Errorf("user %q is not an administrator", a.session.Username)
	}
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
