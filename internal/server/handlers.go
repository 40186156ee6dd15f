package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"invaderdeck/internal/config"
	"invaderdeck/internal/engine"
	"invaderdeck/internal/journal"
	"invaderdeck/internal/protocol"
	qr "invaderdeck/internal/qrcode"
	"invaderdeck/internal/table"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	Tables  *table.Manager
	Config  config.Config
	Journal *journal.Writer

	logger *log.Logger
	mu     sync.Mutex
	hubs   map[string]*Hub
}

func NewHandlers(cfg config.Config, j *journal.Writer, logger *log.Logger) *Handlers {
	return &Handlers{
		Tables:  table.NewManager(),
		Config:  cfg,
		Journal: j,
		logger:  logger,
		hubs:    make(map[string]*Hub),
	}
}

// HandleCreateTable deals a new table and starts its hub.
func (h *Handlers) HandleCreateTable(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.gameConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, err := h.Tables.Create(cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hub := NewHub(t, h.Journal, h.logger)
	h.mu.Lock()
	h.hubs[t.ID] = hub
	h.mu.Unlock()
	go hub.Run()

	h.logger.Printf("table %s created for %s", t.ID, cfg)
	writeJSON(w, http.StatusCreated, protocol.TableCreated{
		TableID: t.ID,
		JoinURL: qr.JoinURL(h.baseURL(r), t.ID),
	})
}

// gameConfig reads the optional nation and level query parameters.
func (h *Handlers) gameConfig(r *http.Request) (engine.NationConfig, error) {
	cfg := h.Config.DefaultGame()
	q := r.URL.Query()
	if s := q.Get("nation"); s != "" {
		n, err := engine.ParseNation(s)
		if err != nil {
			return cfg, err
		}
		cfg.Nation = n
	}
	if s := q.Get("level"); s != "" {
		level, err := strconv.Atoi(s)
		if err != nil {
			return cfg, err
		}
		cfg.Level = level
	}
	return cfg, cfg.Validate()
}

// HandleTable returns the current view of a table.
func (h *Handlers) HandleTable(w http.ResponseWriter, r *http.Request) {
	t := h.Tables.Get(r.PathValue("id"))
	if t == nil {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, protocol.TableState{TableID: t.ID, View: t.View()})
}

// HandleQR generates a QR code PNG for joining the table.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	tableID := r.URL.Query().Get("table")
	if tableID == "" {
		http.Error(w, "missing table parameter", http.StatusBadRequest)
		return
	}
	if h.Tables.Get(tableID) == nil {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	png, err := qr.JoinCode(qr.JoinURL(h.baseURL(r), tableID), h.Config.QRSize)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	tableID := r.URL.Query().Get("table")
	clientID := r.URL.Query().Get("client")

	if tableID == "" {
		http.Error(w, "missing table parameter", http.StatusBadRequest)
		return
	}
	hub := h.hub(tableID)
	if hub == nil {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	if clientID == "" {
		clientID = NewClientID()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws upgrade error: %v", err)
		return
	}

	client := NewClient(hub, conn, clientID)
	if !hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump(h.Config.MaxMessageBytes)
}

// HandleClientID returns a new client ID.
func (h *Handlers) HandleClientID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(NewClientID()))
}

func (h *Handlers) hub(tableID string) *Hub {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hubs[tableID]
}

// StopAll stops every hub and disconnects their clients.
func (h *Handlers) StopAll() {
	h.mu.Lock()
	hubs := make([]*Hub, 0, len(h.hubs))
	for _, hub := range h.hubs {
		hubs = append(hubs, hub)
	}
	h.mu.Unlock()

	for _, hub := range hubs {
		hub.Stop()
	}
}

func (h *Handlers) baseURL(r *http.Request) string {
	if h.Config.PublicURL != "" {
		return h.Config.PublicURL
	}
	return "http://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
