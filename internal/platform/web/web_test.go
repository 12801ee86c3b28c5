package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

func testConfig() ServerConfig {
	cfg := DefaultServerConfig()
	cfg.Width = 64
	cfg.Height = 40
	cfg.TickRate = 50
	return cfg
}

func testServer(t *testing.T, cfg ServerConfig) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, mapID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?map=" + mapID
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

type envelope struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Map     maps.Info       `json:"map"`
	Frame   uint64          `json:"frame"`
	Pose    json.RawMessage `json:"pose"`
	Cmds    []struct {
		Op    string `json:"op"`
		Color string `json:"color"`
	} `json:"commands"`
}

// readUntil reads messages until one has the wanted type.
func readUntil(t *testing.T, ws *websocket.Conn, want string) envelope {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg envelope
		if err := ws.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %q: %v", want, err)
		}
		if msg.Type == want {
			return msg
		}
	}
}

func TestHelloThenFrames(t *testing.T) {
	ts := testServer(t, testConfig())
	ws := dial(t, ts, "arena")

	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	var hello envelope
	if err := ws.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != "hello" {
		t.Fatalf("first message type = %q, want hello", hello.Type)
	}
	if hello.Map.ID != "arena" || hello.Map.Width != 10 || hello.Map.Height != 9 {
		t.Errorf("hello map = %+v", hello.Map)
	}
	if hello.Width != 64 || hello.Height != 40 {
		t.Errorf("hello size = %dx%d, want 64x40", hello.Width, hello.Height)
	}

	frame := readUntil(t, ws, "frame")
	if frame.Width != 64 || frame.Height != 40 {
		t.Errorf("frame size = %dx%d", frame.Width, frame.Height)
	}
	if len(frame.Cmds) == 0 {
		t.Fatal("frame has no commands")
	}
	for _, c := range frame.Cmds {
		if c.Op != "rect" && c.Op != "line" {
			t.Fatalf("unexpected op %q", c.Op)
		}
	}
}

func TestUnknownMapIsNotFound(t *testing.T) {
	ts := testServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/ws?map=nowhere")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestUnknownActionReportsError(t *testing.T) {
	ts := testServer(t, testConfig())
	ws := dial(t, ts, "arena")
	readUntil(t, ws, "hello")

	if err := ws.WriteJSON(ClientMessage{Action: "jump"}); err != nil {
		t.Fatal(err)
	}
	msg := readUntil(t, ws, "error")
	if !strings.Contains(msg.Message, "jump") {
		t.Errorf("error message = %q", msg.Message)
	}
}

func TestSavePoseOverSocket(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "web.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	cfg := testConfig()
	cfg.Store = store
	ts := testServer(t, cfg)
	ws := dial(t, ts, "arena")
	readUntil(t, ws, "hello")

	if err := ws.WriteJSON(ClientMessage{Action: "save_pose"}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, ws, "saved")

	entry, err := store.LastPose("arena")
	if err != nil {
		t.Fatalf("LastPose: %v", err)
	}
	if entry.Label != "web" {
		t.Errorf("label = %q, want web", entry.Label)
	}
	if entry.Pose.X != 4.5*64 || entry.Pose.Y != 4.5*64 {
		t.Errorf("pose = %+v, want arena start", entry.Pose)
	}
}

func TestMapsAndIndex(t *testing.T) {
	ts := testServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/maps")
	if err != nil {
		t.Fatal(err)
	}
	var infos []maps.Info
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	found := false
	for _, info := range infos {
		if info.ID == "arena" {
			found = true
		}
	}
	if !found {
		t.Errorf("/maps = %+v, missing arena", infos)
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<canvas") {
		t.Errorf("index: status %d, body %.80q", resp.StatusCode, body)
	}
}

func newTestPlayer(t *testing.T) *player {
	t.Helper()
	srv := NewServer(testConfig())
	sess, err := srv.newSession("arena")
	if err != nil {
		t.Fatal(err)
	}
	conn := NewConnection(nil, srv.logger)
	return newPlayer(sess, conn, nil, log.New(io.Discard))
}

func handle(p *player, v ClientMessage) {
	data, _ := json.Marshal(v)
	p.HandleMessage(p.conn, data)
}

func TestPlayerHeldAndOneShotInput(t *testing.T) {
	on, off := true, false
	p := newTestPlayer(t)
	start := p.session.Pose()

	handle(p, ClientMessage{Action: "forward", Pressed: &on})
	handle(p, ClientMessage{Action: "minimap"})

	in := p.input()
	if !in.Has(core.ActionForward) || !in.Has(core.ActionToggleMinimap) {
		t.Fatalf("first input missing actions: %+v", in)
	}
	in = p.input()
	if !in.Has(core.ActionForward) {
		t.Error("held action dropped on the next tick")
	}
	if in.Has(core.ActionToggleMinimap) {
		t.Error("one-shot action repeated")
	}

	msg := p.tick()
	if msg.Pose.X <= start.X {
		t.Errorf("pose x = %v, want > %v after walking forward", msg.Pose.X, start.X)
	}

	handle(p, ClientMessage{Action: "forward", Pressed: &off})
	handle(p, ClientMessage{Action: "minimap", Pressed: &off})
	if in := p.input(); !in.Empty() {
		t.Errorf("input after release = %+v, want empty", in)
	}
}

func TestPlayerSaveWithoutStore(t *testing.T) {
	p := newTestPlayer(t)
	handle(p, ClientMessage{Action: "save_pose"})
	p.tick()

	select {
	case data := <-p.conn.send:
		var msg NoticeMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type != MessageTypeError || !strings.Contains(msg.Message, "no database") {
			t.Errorf("notice = %+v", msg)
		}
	default:
		t.Fatal("no notice queued")
	}
}

func TestDisconnectStopsSessionLoop(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = 1000
	srv := NewServer(cfg)
	srv.logger = log.New(io.Discard)

	returned := make(chan struct{}, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.Handler().ServeHTTP(w, r)
		if r.URL.Path == "/ws" {
			returned <- struct{}{}
		}
	}))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?map=arena"
	for i := 0; i < 20; i++ {
		ws, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial %d: %v", i, err)
		}
		readUntil(t, ws, "frame")
		ws.Close()

		select {
		case <-returned:
		case <-time.After(5 * time.Second):
			t.Fatalf("cycle %d: handler did not return after disconnect", i)
		}
	}
}
