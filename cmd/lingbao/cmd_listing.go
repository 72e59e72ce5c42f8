package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lingbao-market/client/internal/model"
	"github.com/lingbao-market/client/internal/paste"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [text...]",
		Short: "Extract a listing code and price from pasted text",
		Long: `Parse pasted listing text and print the recognized code and price as JSON.

The text is taken from the arguments, or from stdin when none are given.
Unrecognized fields are omitted.`,
		Annotations: map[string]string{offlineAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), paste.Parse(raw))
		},
	}
}

func newSubmitCmd(a *app) *cobra.Command {
	var (
		form     paste.Form
		server   string
		usePaste bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a listing price",
		Long: `Submit a listing to the live feed.

With --paste, text read from stdin is parsed and fills the code and price the
same way pasting into the submit form does: recognized fields replace the
flag values, unrecognized ones keep them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if usePaste {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read paste: %w", err)
				}
				if !form.ApplyPaste(string(raw)) {
					a.logger.Warn("paste not recognized, using flag values")
				}
			}

			if server == "" {
				server = a.cfg.Submit.Server
			}
			req, err := model.NewSubmitRequest(form.Code, form.Price, server)
			if err != nil {
				return err
			}

			if dryRun {
				return printJSON(cmd.OutOrStdout(), req)
			}
			if err := a.client.Submit(cmd.Context(), req); err != nil {
				return err
			}

			a.logger.Info("listing submitted", "code", req.Code, "price", req.Price, "server", req.Server)
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %s at %v\n", req.Code, req.Price)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Code, "code", "", "Listing code")
	cmd.Flags().StringVar(&form.Price, "price", "", "Asking price (1-999)")
	cmd.Flags().StringVar(&server, "server", "", "Game server (default from config)")
	cmd.Flags().BoolVar(&usePaste, "paste", false, "Fill code and price from text on stdin")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the request instead of sending it")

	return cmd
}

func newFeedbackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "feedback <code> <reason...>",
		Short: "Report a listing that looks wrong",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := model.NewFeedbackRequest(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			msg, err := a.client.SubmitFeedback(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
}

// readInput joins args, or reads stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
