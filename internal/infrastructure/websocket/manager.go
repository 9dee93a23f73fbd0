package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

// enqueue queues a frame for the write pump without blocking. It reports
// false when the connection is already shut down or the buffer is full.
func (c *Client) enqueue(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

// shutdown closes the send channel exactly once, releasing the write pump.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// MessageHandler receives inbound client frames and disconnect events.
// The gateway handler uses these hooks to open and dispose the Firestore
// listeners owned by each connection.
type MessageHandler interface {
	HandleClientMessage(client *Client, data []byte)
	HandleClientDisconnect(client *Client)
}

// Manager manages all active WebSocket connections
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	handler    MessageHandler
	mutex      sync.RWMutex
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// SetMessageHandler wires the inbound message handler. Must be called before
// Start.
func (m *Manager) SetMessageHandler(handler MessageHandler) {
	m.handler = handler
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if old, ok := m.clients[client.UserID]; ok && old != client {
					// Reconnect: the replaced connection's read pump will
					// unregister it later; release its write pump now.
					old.shutdown()
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				log.Printf("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				// A reconnect may have replaced this user's registry entry
				// already; only the entry's own connection may evict it.
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
				}
				m.mutex.Unlock()
				client.shutdown()
				if m.handler != nil {
					m.handler.HandleClientDisconnect(client)
				}
				log.Printf("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser sends a message to the user's current connection
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok {
		m.SendToClient(client, message)
	}
}

// SendToClient delivers a frame to one specific connection, bypassing the
// user registry. Stream frames belong to the connection that opened the
// stream, which after a reconnect is not necessarily the registry entry.
func (m *Manager) SendToClient(client *Client, message []byte) {
	if !client.enqueue(message) {
		log.Printf("Dropping frame for client %s", client.UserID)
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}

		if m.handler != nil {
			m.handler.HandleClientMessage(c, message)
		}
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		err := c.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			log.Printf("error: %v", err)
			return
		}
	}
}
