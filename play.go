// Palettle live play
//
// Each game ID under /play is an isolated session of today's puzzle. Any
// number of browsers can join the same ID and solve it together; every
// action is applied in order by the hub and the new state is broadcast.
//
// Features:
// - WebSockets per game ID: /play/:gameid and /play/:gameid/ws
// - Players identified by cookie (playerID)
// - Errors sent only to the offending client
// - Per-client rate limiting of actions
// - Sessions roll over to the new puzzle once the daily reset passes
// - Games auto-reaped after configurable idle timeout
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	_ "embed"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/palettle/game"
	"github.com/Seednode/palettle/palette"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

// Messages coming from clients
type ClientMessage struct {
	Type  string `json:"type"`            // "add", "clear", "submit", "replay"
	Color string `json:"color,omitempty"` // add
	Row   int    `json:"row"`             // clear
	Col   int    `json:"col"`             // clear
}

// StateMessage carries the full session state.
type StateMessage struct {
	Type        string        `json:"type"` // "state"
	GameID      string        `json:"game_id"`
	Players     int           `json:"players"`
	State       game.Snapshot `json:"state"`
	NextReset   time.Time     `json:"next_reset"`
	NextResetIn string        `json:"next_reset_in"`
}

// RowResultMessage is broadcast after every submitted row.
type RowResultMessage struct {
	Type       string          `json:"type"` // "row_result"
	Row        int             `json:"row"`
	Evaluation game.Evaluation `json:"evaluation"`
	Outcome    game.Outcome    `json:"outcome"`
}

// SimpleMessage is for generic notifications ("error", "slow_down", etc.)
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
	limiter  *rate.Limiter
}

type actionRequest struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	id      string
	clients map[*Client]bool
	session *game.Session
	cache   *puzzleCache

	register chan *Client
	unreg    chan *Client
	actions  chan actionRequest
	done     chan struct{}

	mu        sync.RWMutex
	closeOnce sync.Once

	startedAt  time.Time
	lastActive time.Time
}

func newHub(cfg *Config, gameID string, cache *puzzleCache) *Hub {
	now := time.Now()
	return &Hub{
		id:         gameID,
		clients:    make(map[*Client]bool),
		session:    game.NewSession(cache.get(palette.TodaySeed(cfg.clock()), "")),
		cache:      cache,
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		actions:    make(chan actionRequest),
		done:       make(chan struct{}),
		startedAt:  now,
		lastActive: now,
	}
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()
			h.clients[c] = true
			h.rolloverLocked(cfg)
			h.broadcastStateLocked(cfg)
			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.broadcastStateLocked(cfg)
			h.mu.Unlock()

		case ar := <-h.actions:
			h.handleAction(cfg, ar)

		case <-h.done:
			return
		}
	}
}

// rolloverLocked moves an unfinished session of a past day onto today's
// puzzle and reports whether it did. Finished games stay visible until the
// player asks for a replay.
func (h *Hub) rolloverLocked(cfg *Config) bool {
	today := palette.TodaySeed(cfg.clock())
	if h.session.Puzzle().Date == today || h.session.Outcome() != game.Playing {
		return false
	}

	h.session.Reset(h.cache.get(today, ""))
	h.startedAt = time.Now()
	logf(cfg, "GAMES: Session %s rolled over to %s", h.id, today)

	return true
}

// sendLocked queues msg for c, dropping the client if its buffer is full.
func (h *Hub) sendLocked(c *Client, msg any) {
	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		h.sendLocked(client, msg)
	}
}

func (h *Hub) broadcastStateLocked(cfg *Config) {
	now := cfg.clock()
	next := palette.NextReset(now)

	h.broadcastLocked(StateMessage{
		Type:        "state",
		GameID:      h.id,
		Players:     len(h.clients),
		State:       h.session.Snapshot(),
		NextReset:   next,
		NextResetIn: humanReadableDuration(next.Sub(now)),
	})
}

// handleAction applies one player action to the shared session.
func (h *Hub) handleAction(cfg *Config, ar actionRequest) {
	c := ar.client
	msg := ar.msg

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}

	h.lastActive = time.Now()

	// Actions aimed at yesterday's board are dropped; the players get the
	// new puzzle instead.
	if h.rolloverLocked(cfg) {
		h.broadcastStateLocked(cfg)

		return
	}

	if !c.limiter.Allow() {
		h.sendLocked(c, SimpleMessage{
			Type:    "slow_down",
			Message: "Too many actions; please wait a moment.",
		})

		return
	}

	var err error

	switch msg.Type {
	case "add":
		err = h.session.AddColor(strings.ToUpper(msg.Color))
	case "clear":
		err = h.session.ClearTile(msg.Row, msg.Col)
	case "submit":
		row := h.session.CurrentRow()

		var e game.Evaluation
		e, err = h.session.Submit()
		if err == nil {
			h.broadcastLocked(RowResultMessage{
				Type:       "row_result",
				Row:        row,
				Evaluation: e,
				Outcome:    h.session.Outcome(),
			})

			if h.session.Outcome() != game.Playing {
				logf(cfg, "GAMES: Session %s %s %s in %d after %s",
					h.id,
					h.session.Outcome(),
					h.session.Puzzle().Date,
					h.session.Guesses(),
					humanReadableDuration(time.Since(h.startedAt)),
				)
			}
		}
	case "replay":
		h.session.Reset(h.cache.get(palette.TodaySeed(cfg.clock()), ""))
		h.startedAt = time.Now()
	default:
		return
	}

	if err != nil {
		h.sendLocked(c, SimpleMessage{
			Type:    "error",
			Message: err.Error(),
		})

		return
	}

	h.broadcastStateLocked(cfg)
}

// closeAll disconnects all clients of this hub and stops its run loop.
func (h *Hub) closeAll() {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		for c := range h.clients {
			close(c.send)
			_ = c.conn.Close()
			delete(h.clients, c)
		}

		close(h.done)
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const playerCookieName = "palettle_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each /play/:gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	cache       *puzzleCache
	idleTimeout time.Duration
	quit        chan struct{}
	stopOnce    sync.Once
}

func newGameManager(idleTimeout time.Duration, cache *puzzleCache) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		cache:       cache,
		idleTimeout: idleTimeout,
		quit:        make(chan struct{}),
	}

	if idleTimeout > 0 {
		go gm.reaperLoop()
	}

	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(cfg, gameID, gm.cache)
	gm.hubs[gameID] = hub
	go hub.run(cfg)

	return hub
}

func (gm *GameManager) count() int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	return len(gm.hubs)
}

func (gm *GameManager) newGameID() string {
	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reap closes hubs idle since before cutoff.
func (gm *GameManager) reap(cutoff time.Time) int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	reaped := 0
	for id, hub := range gm.hubs {
		hub.mu.RLock()
		last := hub.lastActive
		hub.mu.RUnlock()

		if last.Before(cutoff) {
			delete(gm.hubs, id)
			go hub.closeAll()
			reaped++
		}
	}

	return reaped
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.reap(time.Now().Add(-gm.idleTimeout))
		case <-gm.quit:
			return
		}
	}
}

// stop ends the reaper and every live hub.
func (gm *GameManager) stop() {
	gm.stopOnce.Do(func() {
		close(gm.quit)

		gm.mu.Lock()
		defer gm.mu.Unlock()

		for id, hub := range gm.hubs {
			delete(gm.hubs, id)
			hub.closeAll()
		}
	})
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 16),
			playerID: playerID,
			limiter:  rate.NewLimiter(rate.Every(cfg.guessRate), cfg.guessBurst),
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()
			return
		}

		logf(cfg, "GAMES: Player %s joined %s from %s", playerID, gameID, realIP(r))

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "add", "clear", "submit", "replay":
			select {
			case h.actions <- actionRequest{client: c, msg: msg}:
			case <-h.done:
				return
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:gameid/qr; strip trailing "/qr" to get the game URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")
	url := scheme + "://" + r.Host + path

	const qrSize = 320

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

//go:embed assets/index.html
var indexHTML []byte

func getIndexHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)
		_ = getOrSetPlayerID(w, r)
		_, _ = w.Write(indexHTML)
	}
}

// redirectNewGame handles GET /play by generating a new game ID and
// redirecting to /play/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, cfg.prefix+path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerPlay sets up routes so that:
//   - $path              → redirects to a new game
//   - $path/:gameid      → HTML client
//   - $path/:gameid/ws   → WebSocket for that game
//   - $path/:gameid/qr   → PNG QR code for that game URL
func registerPlay(cfg *Config, path string, cache *puzzleCache, mux *httprouter.Router) *GameManager {
	gm := newGameManager(cfg.sessionTimeout, cache)

	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	mux.GET(cfg.prefix+path+"/:gameid", getIndexHandler(cfg))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)

	return gm
}
