package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readLimit     = 1 << 20
	readDeadline  = 120 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
)

// wsEvent is the frame pushed to connected clients when one of their
// bookings changes. Clients re-fetch their booking view on receipt.
type wsEvent struct {
	Type      string `json:"type"`
	AccountID string `json:"account_id"`
}

type directEvent struct {
	accountID string
	event     wsEvent
}

type unreg struct {
	accountID string
	conn      *websocket.Conn
}

type Client struct {
	ID     string
	Socket *websocket.Conn
}

type WebSocketManager struct {
	clients    map[string]*websocket.Conn
	direct     chan directEvent
	register   chan Client
	unregister chan unreg
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*websocket.Conn),
		direct:     make(chan directEvent, 64),
		register:   make(chan Client),
		unregister: make(chan unreg),
	}
}

// All operations on clients happen only here.
func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			// a newer socket for the same account replaces the old one
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register account=%s", client.ID)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.accountID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.accountID)
				log.Printf("WS unregister account=%s", u.accountID)
			}

		case de := <-ws.direct:
			if conn, ok := ws.clients[de.accountID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(de.event); err != nil {
					log.Printf("direct send error to=%s: %v", de.accountID, err)
					_ = conn.Close()
					delete(ws.clients, de.accountID)
				}
			}
		}
	}
}

// NotifyBookingChanged pushes a refresh event to both parties of a booking.
// Best effort: it runs inside lifecycle mutations while the per-booking lock
// is held, so a full hub queue drops the event rather than back-pressuring
// the booking operation. Offline parties are skipped silently.
func (ws *WebSocketManager) NotifyBookingChanged(modelID, userID string) {
	for _, accountID := range []string{modelID, userID} {
		ev := directEvent{accountID: accountID, event: wsEvent{Type: "booking_update", AccountID: accountID}}
		select {
		case ws.direct <- ev:
		default:
			log.Printf("WS drop booking_update for account=%s: hub queue full", accountID)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// The account id comes from the JWT middleware, no hello frame required.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	id := r.Context().Value("account_id")
	accountID, ok := id.(string)
	if !ok || accountID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	app.wsManager.register <- Client{ID: accountID, Socket: conn}

	go pingLoop(app.wsManager, conn, accountID)
	go readLoop(app.wsManager, conn, accountID)
}

func pingLoop(ws *WebSocketManager, conn *websocket.Conn, accountID string) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			_ = writeClose(conn, websocket.CloseGoingAway, "ping error")
			ws.unregister <- unreg{accountID: accountID, conn: conn}
			return
		}
	}
}

// Clients do not send application frames; the read loop only keeps the
// connection alive and detects disconnects.
func readLoop(ws *WebSocketManager, conn *websocket.Conn, accountID string) {
	defer func() {
		ws.unregister <- unreg{accountID: accountID, conn: conn}
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
