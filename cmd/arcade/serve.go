package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/arcade-portal/internal/api"
	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/portal"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagNoSSH       bool
	flagNoHTTP      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH and HTTP servers",
	Long: `Start an SSH server for terminal play and an HTTP server exposing
leaderboards, score submission and user management.

Each SSH connection gets its own arcade. The SSH user name is the player's
user ID; first-time players get a profile named after it.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # SSH on :23234, HTTP on :8080
  arcade serve --ssh :2222 --http :9000
  arcade serve --no-ssh                  # HTTP API only

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting SSH clients")
	serveCmd.Flags().BoolVar(&flagNoSSH, "no-ssh", false, "Do not start the SSH server")
	serveCmd.Flags().BoolVar(&flagNoHTTP, "no-http", false, "Do not start the HTTP server")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "arcade")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := openPortal(ctx, logger, false)
	if err != nil {
		return err
	}
	defer func() {
		if err := portal.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	srv := portalCfg.Server
	if flagSSHAddr != "" {
		srv.SSHAddr = flagSSHAddr
	}
	if flagHTTPAddr != "" {
		srv.HTTPAddr = flagHTTPAddr
	}
	if flagHostKey != "" {
		srv.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srv.IdleTimeout = flagIdleTimeout
	}
	if flagNoSSH && flagNoHTTP {
		return errors.New("nothing to serve: both --no-ssh and --no-http are set")
	}

	g, ctx := errgroup.WithContext(ctx)

	if !flagNoSSH {
		sshSrv, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     srv.SSHAddr,
			HostKeyPath: srv.HostKeyPath,
			IdleTimeout: srv.IdleTimeout,
			TickRate:    runtimeConfig().TickRate,
		}, p, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "SSH:  ssh localhost -p %s\n", portOf(srv.SSHAddr))
		g.Go(func() error { return sshSrv.ListenAndServe(ctx) })
	}

	if !flagNoHTTP {
		httpSrv := &http.Server{
			Addr:              srv.HTTPAddr,
			Handler:           api.NewServer(p, logger).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		fmt.Fprintf(cmd.OutOrStdout(), "HTTP: http://localhost:%s/api/v1/games\n", portOf(srv.HTTPAddr))
		g.Go(func() error {
			logger.Info("starting HTTP server", "address", srv.HTTPAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("shutting down HTTP server")
			return httpSrv.Shutdown(shutdownCtx)
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
	return g.Wait()
}

// portOf returns the port part of a listen address like ":8080".
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
