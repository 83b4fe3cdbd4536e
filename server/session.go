// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/SoftbearStudios/fractal/terrain"
	"github.com/SoftbearStudios/fractal/terrain/compressed"
	"github.com/SoftbearStudios/fractal/terrain/navigator"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// Tiles are only sent in reply to inbound messages, so a full buffer
	// means the peer stopped reading.
	socketBufferSize = 16

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   maxMessageSize,
	WriteBufferSize:  4096,
}

// Session is a middleman between a websocket connection and the pyramid.
// Each session has its own navigator, only touched by the read pump.
type Session struct {
	ID        uuid.UUID
	server    *Server
	conn      *websocket.Conn
	navigator *navigator.Navigator
	send      chan outbound
	done      chan struct{}
	once      sync.Once
}

// newSession positions a navigator at (0, 0, 0). conn may be nil when the
// session is driven directly.
func newSession(server *Server, conn *websocket.Conn) *Session {
	return &Session{
		ID:        uuid.New(),
		server:    server,
		conn:      conn,
		navigator: navigator.New(server.pyramid, terrain.Key{}),
		send:      make(chan outbound, socketBufferSize),
		done:      make(chan struct{}),
	}
}

func (session *Session) Init() {
	go session.writePump()
	go session.readPump()
}

func (session *Session) Destroy() {
	session.once.Do(func() {
		close(session.done)
		session.server.unregister(session)

		if session.conn != nil {
			_ = session.conn.Close()
		}
	})
}

func (session *Session) Send(message outbound) {
	select {
	case session.send <- message:
	case <-session.done:
		message.Pool()
	default:
		// Not responsive
		session.server.logger.Warn("session is not responsive", "session", session.ID)
		message.Pool()
		session.Destroy()
	}
}

// sendTile sends the tile under the cursor.
func (session *Session) sendTile() {
	data := compressed.Encode(session.navigator.Position(), session.navigator.Tile())
	session.Send(Tile{Data: data})
}

// receive applies one inbound message and replies with either the new tile
// or an error. A panic while handling the message ends the session only.
func (session *Session) receive(buf []byte) {
	defer func() {
		if r := recover(); r != nil {
			session.server.logger.Warn("inbound panic", "session", session.ID, "err", r)
			session.Send(Error{Message: fmt.Sprint(r)})
			session.Destroy()
		}
	}()

	var message Message
	if err := json.Unmarshal(buf, &message); err != nil {
		inboundMessages.WithLabelValues("malformed").Inc()
		session.server.logger.Warn("unmarshal error", "session", session.ID, "err", err)
		session.Send(Error{Message: err.Error()})
		return
	}

	in, ok := message.Data.(inbound)
	if !ok {
		in = InvalidInbound{}
	}
	if invalid, ok := in.(InvalidInbound); ok {
		inboundMessages.WithLabelValues("invalid").Inc()
		session.server.logger.Warn("invalid message type received", "session", session.ID, "type", invalid.messageType)
	} else {
		inboundMessages.WithLabelValues(string(typeOf(in))).Inc()
	}

	if err := in.Inbound(session); err != nil {
		session.Send(Error{Message: err.Error()})
		return
	}
	session.sendTile()
}

func (session *Session) readPump() {
	defer session.Destroy()
	session.conn.SetReadLimit(maxMessageSize)
	_ = session.conn.SetReadDeadline(time.Now().Add(pongWait))
	session.conn.SetPongHandler(func(string) error {
		_ = session.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, buf, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				session.server.logger.Warn("close error", "session", session.ID, "err", err)
			}
			return
		}
		session.receive(buf)
	}
}

func (session *Session) writePump() {
	pingTicker := time.NewTicker(pingPeriod)

	defer func() {
		pingTicker.Stop()
		session.Destroy()
	}()

	for {
		select {
		case <-session.done:
			_ = session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = session.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		case out := <-session.send:
			if err := session.write(out); err != nil {
				session.server.logger.Warn("send error", "session", session.ID, "err", err)
				return
			}
		case <-pingTicker.C:
			_ = session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := session.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (session *Session) write(out outbound) error {
	defer out.Pool()

	_ = session.conn.SetWriteDeadline(time.Now().Add(writeWait))
	w, err := session.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}

	// Wrap with Message to marshal type
	if err = json.NewEncoder(w).Encode(Message{Data: out}); err != nil {
		return err
	}
	return w.Close()
}
