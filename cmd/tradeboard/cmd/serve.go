package cmd

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/tradeboard/auth"
	"github.com/rustyeddy/tradeboard/config"
	"github.com/rustyeddy/tradeboard/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve the dashboard, its JSON API and PNG charts. Every page request
re-reads the sheet, so edits show up on reload.

Visitors log in with $TRADEBOARD_PASSPHRASE and get a signed session
cookie; $TRADEBOARD_SESSION_SECRET is required too. Without a passphrase
serve refuses to start unless --insecure is given.

Examples:
  tradeboard serve
  tradeboard serve --addr 127.0.0.1:9090
  tradeboard serve --insecure --addr 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr     string
	serveSecure   bool
	serveInsecure bool
)

// errNoPassphrase stops serve from exposing the journal without a gate.
var errNoPassphrase = errors.New("no dashboard passphrase: set $" + config.EnvPassphrase + " or pass --insecure")

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveSecure, "secure-cookie", false, "mark the session cookie Secure (behind TLS)")
	serveCmd.Flags().BoolVar(&serveInsecure, "insecure", false, "serve without a passphrase")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.Passphrase == "" {
		if !serveInsecure {
			return errNoPassphrase
		}
		a.log.Warn("serving without a passphrase, the dashboard is open to anyone who can reach it")
	}

	log := a.log
	ttl, err := a.cfg.Server.SessionDuration()
	if err != nil {
		return fmt.Errorf("session ttl: %w", err)
	}
	gate := auth.NewGate(a.cfg.Passphrase, auth.NewSessions(ttl))

	var tokens *auth.Tokens
	if a.cfg.SessionSecret != "" {
		tokens = auth.NewTokens(a.cfg.SessionSecret)
	}

	opts := server.OptionsFrom(a.cfg.Server)
	opts.SecureCookie = serveSecure
	srv, err := server.New(a.pipeline, gate, tokens, opts, log)
	if err != nil {
		return err
	}

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	log.Info("serving dashboard",
		zap.String("addr", addr),
		zap.String("source", a.pipeline.Source()),
		zap.Bool("gated", gate.Enabled()))
	return srv.Run(cmd.Context(), addr)
}
