package service

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// ErrConnNotAvailable is reported when a send cannot be queued; the message
// is dropped and cleanup is left to the read side of the connection.
var ErrConnNotAvailable = errors.New("connection not available")

// Client is one websocket connection. It implements game.Conn; outbound
// messages go through a buffered channel drained by the write pump so game
// handlers never block on a slow socket.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	// playerID is set once player_connect is handled; it is only touched
	// from the connection's read loop.
	playerID string
}

// Send queues an outbound message. It never blocks: a full queue means the
// client is too slow and the message is dropped.
func (c *Client) Send(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrConnNotAvailable
	case c.send <- b:
		return nil
	default:
		return ErrConnNotAvailable
	}
}

// Hub owns the websocket side of the server: it runs the read and write
// pumps per connection and feeds inbound messages to the game service.
type Hub struct {
	games *GameService
}

func NewHub(games *GameService) *Hub {
	return &Hub{games: games}
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	maxMsgSize = 4096
)

// HandleConnection serves one websocket connection until it closes.
func (h *Hub) HandleConnection(conn *websocket.Conn) {
	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
		done: make(chan struct{}),
	}

	defer func() {
		h.games.DisconnectSession(client)
		close(client.done)
		conn.Close()
	}()

	go h.writePump(client)
	h.readPump(client)
}

func (h *Hub) readPump(client *Client) {
	client.conn.SetReadLimit(maxMsgSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close: %v", err)
			}
			return
		}
		h.games.HandleMessage(client, message)
	}
}

func (h *Hub) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-client.done:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			client.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
