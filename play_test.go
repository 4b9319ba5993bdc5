/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Seednode/palettle/game"
	"github.com/Seednode/palettle/palette"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

type wireMessage struct {
	Type       string          `json:"type"`
	Message    string          `json:"message"`
	Players    int             `json:"players"`
	State      json.RawMessage `json:"state"`
	Row        int             `json:"row"`
	Evaluation struct {
		Correct int `json:"correct"`
	} `json:"evaluation"`
	Outcome string `json:"outcome"`
}

type wireState struct {
	Date       string                       `json:"date"`
	CurrentRow int                          `json:"currentRow"`
	Outcome    string                       `json:"outcome"`
	Hidden     *[palette.PaletteSize]string `json:"hiddenPalette"`
	Eliminated []string                     `json:"eliminated"`
}

func dialGame(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/play/" + gameID + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// readUntil reads frames until one of the given type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) wireMessage {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	for {
		var msg wireMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", typ, err)
		}

		if msg.Type == typ {
			return msg
		}
	}
}

func decodeState(t *testing.T, msg wireMessage) wireState {
	t.Helper()

	var st wireState
	if err := json.Unmarshal(msg.State, &st); err != nil {
		t.Fatal(err)
	}

	return st
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()

	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func newTestServer(t *testing.T, cfg *Config) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(newTestRouter(t, cfg))
	t.Cleanup(srv.Close)

	return srv
}

func TestPlayWin(t *testing.T) {
	srv := newTestServer(t, newTestConfig())
	conn := dialGame(t, srv, "win")

	st := decodeState(t, readUntil(t, conn, "state"))
	if st.Date != "2025-01-01" || st.Outcome != "playing" {
		t.Fatalf("initial state = %+v", st)
	}
	if st.Hidden != nil {
		t.Fatal("hidden palette leaked before the game ended")
	}

	for _, c := range testHidden {
		send(t, conn, ClientMessage{Type: "add", Color: strings.ToLower(c)})
		readUntil(t, conn, "state")
	}

	send(t, conn, ClientMessage{Type: "submit"})

	res := readUntil(t, conn, "row_result")
	if res.Row != 0 || res.Outcome != "won" || res.Evaluation.Correct != palette.PaletteSize {
		t.Errorf("row result = %+v", res)
	}

	st = decodeState(t, readUntil(t, conn, "state"))
	if st.Outcome != "won" {
		t.Errorf("outcome = %s, want won", st.Outcome)
	}
	if st.Hidden == nil || *st.Hidden != testHidden {
		t.Errorf("hidden = %v, want %v", st.Hidden, testHidden)
	}

	send(t, conn, ClientMessage{Type: "add", Color: testHidden[0]})
	if msg := readUntil(t, conn, "error"); msg.Message != game.ErrGameOver.Error() {
		t.Errorf("error = %q, want %q", msg.Message, game.ErrGameOver)
	}

	send(t, conn, ClientMessage{Type: "replay"})
	st = decodeState(t, readUntil(t, conn, "state"))
	if st.Outcome != "playing" || st.CurrentRow != 0 || st.Hidden != nil {
		t.Errorf("state after replay = %+v", st)
	}
}

func TestPlayErrorsGoToSender(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	a := dialGame(t, srv, "shared")
	readUntil(t, a, "state")

	b := dialGame(t, srv, "shared")
	if msg := readUntil(t, b, "state"); msg.Players != 2 {
		t.Errorf("players = %d, want 2", msg.Players)
	}
	if msg := readUntil(t, a, "state"); msg.Players != 2 {
		t.Errorf("players seen by first client = %d, want 2", msg.Players)
	}

	send(t, b, ClientMessage{Type: "submit"})
	if msg := readUntil(t, b, "error"); msg.Message != game.ErrRowIncomplete.Error() {
		t.Errorf("error = %q, want %q", msg.Message, game.ErrRowIncomplete)
	}

	send(t, b, ClientMessage{Type: "add", Color: "#000001"})
	if msg := readUntil(t, b, "error"); msg.Message != game.ErrUnknownColor.Error() {
		t.Errorf("error = %q, want %q", msg.Message, game.ErrUnknownColor)
	}

	// The first client only sees the successful add.
	send(t, b, ClientMessage{Type: "add", Color: testHidden[0]})

	_ = a.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wireMessage
	if err := a.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "state" {
		t.Errorf("first client got %s, want state", msg.Type)
	}
}

func TestPlayRateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.guessBurst = 1
	cfg.guessRate = time.Hour

	srv := newTestServer(t, cfg)
	conn := dialGame(t, srv, "limited")
	readUntil(t, conn, "state")

	send(t, conn, ClientMessage{Type: "add", Color: testHidden[0]})
	readUntil(t, conn, "state")

	send(t, conn, ClientMessage{Type: "add", Color: testHidden[1]})
	if msg := readUntil(t, conn, "slow_down"); msg.Message == "" {
		t.Error("slow_down carried no message")
	}
}

func TestHubRollover(t *testing.T) {
	now := testNow

	cfg := newTestConfig()
	cfg.now = func() time.Time { return now }

	h := newHub(cfg, "rollover", newPuzzleCache(2))

	now = now.Add(24 * time.Hour)
	h.rolloverLocked(cfg)

	if got := h.session.Puzzle().Date; got != "2025-01-02" {
		t.Errorf("unfinished session date = %s, want 2025-01-02", got)
	}

	for _, c := range h.session.Puzzle().Hidden {
		if err := h.session.AddColor(c); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := h.session.Submit(); err != nil {
		t.Fatal(err)
	}

	now = now.Add(24 * time.Hour)
	h.rolloverLocked(cfg)

	if got := h.session.Puzzle().Date; got != "2025-01-02" {
		t.Errorf("finished session date = %s, want it kept at 2025-01-02", got)
	}
}

// joinTestClient registers a connectionless client directly with h.
func joinTestClient(h *Hub) *Client {
	c := &Client{
		send:    make(chan any, 16),
		limiter: rate.NewLimiter(rate.Inf, 1),
	}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	return c
}

func TestHubRolloverOnAction(t *testing.T) {
	now := testNow

	cfg := newTestConfig()
	cfg.now = func() time.Time { return now }

	h := newHub(cfg, "stale", newPuzzleCache(2))
	c := joinTestClient(h)

	h.handleAction(cfg, actionRequest{client: c, msg: ClientMessage{Type: "add", Color: testHidden[0]}})
	<-c.send

	now = now.Add(24 * time.Hour)

	h.handleAction(cfg, actionRequest{client: c, msg: ClientMessage{Type: "add", Color: testHidden[1]}})

	if got := h.session.Puzzle().Date; got != "2025-01-02" {
		t.Fatalf("session date = %s, want 2025-01-02", got)
	}

	select {
	case msg := <-c.send:
		st, ok := msg.(StateMessage)
		if !ok {
			t.Fatalf("got %T, want StateMessage", msg)
		}
		if st.State.Date != "2025-01-02" {
			t.Errorf("state date = %s, want 2025-01-02", st.State.Date)
		}
		if st.State.Rows[0][0] != "" {
			t.Errorf("new day's board kept tile %q", st.State.Rows[0][0])
		}
	default:
		t.Fatal("no state sent after the rollover")
	}
}

func TestHubLogsSessionLength(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := newTestConfig()
	cfg.verbose = true

	h := newHub(cfg, "timed", newPuzzleCache(2))
	h.startedAt = time.Now().Add(-(2*time.Hour + 5*time.Minute))
	c := joinTestClient(h)

	for _, color := range testHidden {
		h.handleAction(cfg, actionRequest{client: c, msg: ClientMessage{Type: "add", Color: color}})
	}
	h.handleAction(cfg, actionRequest{client: c, msg: ClientMessage{Type: "submit"}})

	want := "GAMES: Session timed won 2025-01-01 in 1 after 2 hours 5 minutes"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("log does not contain %q:\n%s", want, buf.String())
	}

	h.handleAction(cfg, actionRequest{client: c, msg: ClientMessage{Type: "replay"}})
	if time.Since(h.startedAt) > time.Minute {
		t.Error("replay did not restart the session clock")
	}
}

func TestGameManagerReap(t *testing.T) {
	cfg := newTestConfig()
	gm := newGameManager(0, newPuzzleCache(2))
	defer gm.stop()

	a := gm.getHub(cfg, "a")
	if gm.getHub(cfg, "a") != a {
		t.Fatal("getHub created a second hub for the same id")
	}
	gm.getHub(cfg, "b")

	if n := gm.reap(time.Now().Add(-time.Hour)); n != 0 {
		t.Errorf("reaped %d fresh hubs", n)
	}

	if n := gm.reap(time.Now().Add(time.Hour)); n != 2 {
		t.Errorf("reaped %d, want 2", n)
	}

	if gm.count() != 0 {
		t.Errorf("%d hubs left after reap", gm.count())
	}

	select {
	case <-a.done:
	case <-time.After(5 * time.Second):
		t.Error("reaped hub was not closed")
	}
}

func TestNewGameID(t *testing.T) {
	gm := newGameManager(0, newPuzzleCache(1))
	defer gm.stop()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gm.newGameID()
		if len(id) != 12 {
			t.Fatalf("id %q has length %d", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
