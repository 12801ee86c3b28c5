package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
	"github.com/vovakirdan/tui-raycaster/internal/raster"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.raycaster/host_key.
	HostKeyPath string

	// DBPath is the path to the poses database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// App is shared by every session. Its Store is replaced by the
	// server's own store.
	App Options
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.raycaster/raycaster.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server that serves the raycaster app.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64 // open sessions
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "raycaster-ssh",
	})

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open poses database; saving poses is disabled", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.commandMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKey returns the host key path, defaulting to
// ~/.raycaster/host_key, and makes sure its directory exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".raycaster", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler creates a Bubble Tea program for each interactive session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()

	opts := s.config.App
	opts.Store = s.store

	return NewAppModel(opts, core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: opts.TickRate,
	}), []tea.ProgramOption{tea.WithAltScreen()}
}

// commandMiddleware answers exec requests such as
// "ssh -p 23235 host render maze" without starting the UI. Sessions
// without a command need a PTY.
func (s *SSHServer) commandMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		args := sshSession.Command()
		if len(args) == 0 {
			if _, _, ok := sshSession.Pty(); !ok {
				wish.Fatalln(sshSession, "no PTY requested; try: ssh -t, or run 'maps' or 'render <map>'")
				return
			}
			next(sshSession)
			return
		}

		width, height := 80, 24
		if pty, _, ok := sshSession.Pty(); ok {
			width, height = pty.Window.Width, pty.Window.Height
		}
		out, err := s.runCommand(args, width, height)
		if err != nil {
			s.logger.Warn("command failed", "user", sshSession.User(), "command", strings.Join(args, " "), "error", err)
			wish.Fatalln(sshSession, "error:", err)
			return
		}
		wish.Print(sshSession, out)
	}
}

// runCommand executes one exec request and returns its output.
func (s *SSHServer) runCommand(args []string, width, height int) (string, error) {
	switch args[0] {
	case "maps":
		infos, err := maps.ListAll(s.config.App.MapsDir)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, info := range infos {
			fmt.Fprintf(&b, "%-12s %3dx%-3d %s\n", info.ID, info.Width, info.Height, info.Name)
		}
		return b.String(), nil

	case "render":
		if len(args) < 2 {
			return "", errors.New("usage: render <map> [width height]")
		}
		if len(args) == 4 {
			w, werr := strconv.Atoi(args[2])
			h, herr := strconv.Atoi(args[3])
			if werr != nil || herr != nil {
				return "", fmt.Errorf("bad size %q x %q", args[2], args[3])
			}
			width, height = w, h
		}
		m, err := maps.Resolve(args[1], s.config.App.MapsDir)
		if err != nil {
			return "", err
		}
		sess, err := engine.NewSession(m, s.config.App.Config)
		if err != nil {
			return "", err
		}
		if err := sess.Reset(core.RuntimeConfig{ScreenW: width, ScreenH: height}); err != nil {
			return "", err
		}
		f := sess.Frame()
		return raster.ASCII(f.Commands, f.Width, f.Height, raster.GlyphsFor(sess.Projection().Colors)) + "\n", nil

	default:
		return "", fmt.Errorf("unknown command %q (want maps or render)", args[0])
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		started := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"active", s.active.Add(1),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(started).Round(time.Second),
			"active", s.active.Add(-1),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until an interrupt
// or a listen error.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("ssh: %w", err)
	case <-done:
	}
	s.logger.Info("shutting down...", "active", s.active.Load())
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
