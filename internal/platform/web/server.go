// Package web serves the raycaster to browsers: each WebSocket client
// gets its own session and receives the draw commands of every tick as
// JSON, which the bundled page paints on a canvas.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

//go:embed static
var staticFS embed.FS

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	Address  string
	MapID    string // used when the client does not ask for one
	MapsDir  string
	Width    int // canvas size in pixels, one ray per column
	Height   int
	TickRate int
	App      config.RaycasterConfig
	Store    *storage.Store // nil disables save_pose
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	app := config.DefaultConfig()
	app.Projection.WallScale = 200
	app.Minimap.CellChars = 8
	app.Minimap.OriginX = 8
	app.Minimap.OriginY = 8
	return ServerConfig{
		Address:  ":8080",
		MapID:    "arena",
		Width:    320,
		Height:   200,
		TickRate: 20,
		App:      app,
	}
}

// Server streams sessions over WebSockets.
type Server struct {
	config   ServerConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server
}

// NewServer creates a web server.
func NewServer(cfg ServerConfig) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultServerConfig().TickRate
	}
	s := &Server{
		config: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "raycaster-web",
		}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: the page at /, the map list at
// /maps and the WebSocket at /ws?map=<id>.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/maps", s.serveMaps)
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

func (s *Server) serveMaps(w http.ResponseWriter, r *http.Request) {
	infos, err := maps.ListAll(s.config.MapsDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(infos); err != nil {
		s.logger.Warn("encode map list failed", "remote", r.RemoteAddr, "error", err)
	}
}

// newSession resolves the requested map and sizes the session.
func (s *Server) newSession(mapID string) (*engine.Session, error) {
	if mapID == "" {
		mapID = s.config.MapID
	}
	m, err := maps.Resolve(mapID, s.config.MapsDir)
	if err != nil {
		return nil, err
	}
	sess, err := engine.NewSession(m, s.config.App)
	if err != nil {
		return nil, err
	}
	if err := sess.Reset(core.RuntimeConfig{ScreenW: s.config.Width, ScreenH: s.config.Height}); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	sess, err := s.newSession(r.URL.Query().Get("map"))
	switch {
	case errors.Is(err, maps.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	conn := NewConnection(ws, s.logger)
	p := newPlayer(sess, conn, s.config.Store, s.logger)

	s.logger.Info("client connected", "remote", r.RemoteAddr, "map", sess.ID())
	started := time.Now()

	go conn.WritePump()
	go p.run(s.config.TickRate)
	conn.ReadPump(p)
	<-p.finished

	s.logger.Info("client disconnected", "remote", r.RemoteAddr, "frames", sess.State().Frame, "duration", time.Since(started).Round(time.Second))
}

// ListenAndServe starts the web server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("web: %w", err)
	case <-done:
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// player drives one session from one connection. The read pump feeds
// input; run owns the session until finished is closed.
type player struct {
	session  *engine.Session
	conn     *Connection
	store    *storage.Store
	logger   *log.Logger
	finished chan struct{}

	mu      sync.Mutex
	held    map[core.Action]bool
	pending core.InputFrame
}

func newPlayer(s *engine.Session, conn *Connection, store *storage.Store, logger *log.Logger) *player {
	return &player{
		session:  s,
		conn:     conn,
		store:    store,
		logger:   logger,
		finished: make(chan struct{}),
		held:     make(map[core.Action]bool),
		pending:  core.NewInputFrame(),
	}
}

// holdable reports whether an action repeats every tick while held.
func holdable(a core.Action) bool {
	switch a {
	case core.ActionForward, core.ActionBackward,
		core.ActionTurnLeft, core.ActionTurnRight,
		core.ActionStrafeLeft, core.ActionStrafeRight:
		return true
	}
	return false
}

// HandleMessage applies a client message to the input state.
func (p *player) HandleMessage(conn *Connection, message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		conn.SendMessage(NoticeMessage{Type: MessageTypeError, Message: "bad message: " + err.Error()})
		return
	}
	a := core.ParseAction(msg.Action)
	if a == core.ActionNone {
		conn.SendMessage(NoticeMessage{Type: MessageTypeError, Message: fmt.Sprintf("unknown action %q", msg.Action)})
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case msg.Pressed != nil && holdable(a):
		p.held[a] = *msg.Pressed
	case msg.Pressed != nil && !*msg.Pressed:
		// key release of a one-shot action
	default:
		p.pending.Set(a)
	}
}

// input returns the actions for the next tick: everything held plus the
// one-shot actions received since the last tick.
func (p *player) input() core.InputFrame {
	p.mu.Lock()
	defer p.mu.Unlock()

	in := p.pending.Clone()
	p.pending.Clear()
	for a, on := range p.held {
		if on {
			in.Set(a)
		}
	}
	return in
}

// tick steps the session once and returns the frame to send.
func (p *player) tick() FrameMessage {
	in := p.input()
	res := p.session.Step(in)

	if in.Has(core.ActionSavePose) {
		p.savePose()
	}

	return FrameMessage{
		Type:    MessageTypeFrame,
		Frame:   p.session.Frame(),
		Paused:  res.State.Paused,
		Minimap: res.State.ShowMinimap,
	}
}

func (p *player) savePose() {
	if p.store == nil {
		p.conn.SendMessage(NoticeMessage{Type: MessageTypeError, Message: "no database: pose not saved"})
		return
	}
	if _, err := p.store.SavePose(p.session.ID(), "web", p.session.Pose()); err != nil {
		p.logger.Warn("save pose failed", "map", p.session.ID(), "error", err)
		p.conn.SendMessage(NoticeMessage{Type: MessageTypeError, Message: "save failed"})
		return
	}
	p.conn.SendMessage(NoticeMessage{Type: MessageTypeSaved, Message: "pose saved"})
}

// run sends the hello message and then one frame per tick until the
// connection closes.
func (p *player) run(tickRate int) {
	defer close(p.finished)

	proj := p.session.Projection()
	p.conn.SendMessage(HelloMessage{
		Type:   MessageTypeHello,
		Map:    maps.Info{ID: p.session.ID(), Name: p.session.Title(), Width: p.session.Grid().Width(), Height: p.session.Grid().Height()},
		Width:  proj.ScreenWidth,
		Height: proj.ScreenHeight,
		FPS:    tickRate,
	})

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-p.conn.Done():
			return
		case <-ticker.C:
			if err := p.conn.SendMessage(p.tick()); err != nil {
				p.logger.Error("encode frame", "error", err)
				p.conn.Close()
				return
			}
		}
	}
}
