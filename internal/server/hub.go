package server

import (
	"encoding/json"
	"log"
	"sync"

	"invaderdeck/internal/engine"
	"invaderdeck/internal/journal"
	"invaderdeck/internal/protocol"
	"invaderdeck/internal/table"
)

// Hub owns the WebSocket clients of one table. Its Run loop is the only
// goroutine that applies actions, so clients see changes in one order.
type Hub struct {
	tableID string
	table   *table.Table
	journal *journal.Writer // nil disables journaling
	logger  *log.Logger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
}

func NewHub(t *table.Table, j *journal.Writer, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		tableID:    t.ID,
		table:      t,
		journal:    j,
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.table.Join(client.ClientID)
			h.logger.Printf("table %s: client %s connected (%d online)", h.tableID, client.ClientID, len(h.clients))
			h.sendState(client, h.table.View())

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.table.Leave(client.ClientID)
				h.logger.Printf("table %s: client %s disconnected", h.tableID, client.ClientID)
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// Stop ends the run loop and disconnects every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
	<-h.done
}

// Register adds a client. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// Incoming queues a client message. It reports false once the hub has
// stopped.
func (h *Hub) Incoming(msg IncomingMessage) bool {
	select {
	case h.incoming <- msg:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	// The sender may have disconnected while the message was queued.
	if !h.clients[msg.Client] {
		return
	}
	if msg.Err != nil {
		h.reject(msg.Client, "malformed message", msg.Err)
		return
	}

	action, err := protocol.Decode(msg.Envelope)
	if err != nil {
		h.reject(msg.Client, err.Error(), err)
		return
	}

	events, view, err := h.table.Apply(action)
	if err != nil {
		h.reject(msg.Client, err.Error(), err)
		return
	}

	if h.journal != nil {
		entry := journal.Entry{TableID: h.tableID, Client: msg.Client.ClientID, Action: action, Events: events}
		if err := h.journal.Write(entry); err != nil {
			h.logger.Printf("table %s: journal write: %v", h.tableID, err)
		}
	}

	h.broadcastEvents(events)
	h.broadcastState(view)
}

func (h *Hub) reject(client *Client, message string, err error) {
	h.logger.Printf("table %s: rejected message from %s: %v", h.tableID, client.ClientID, err)
	h.sendError(client, message)
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		h.broadcastAll(protocol.MustEnvelope(protocol.MsgEvent, ev))
	}
}

func (h *Hub) broadcastState(view engine.View) {
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgTableState, protocol.TableState{
		TableID: h.tableID,
		View:    view,
	}))
}

func (h *Hub) sendState(client *Client, view engine.View) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgTableState, protocol.TableState{
		TableID: h.tableID,
		View:    view,
	}))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Printf("broadcast marshal error: %v", err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.logger.Printf("client %s buffer full", client.ClientID)
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message}))
}
