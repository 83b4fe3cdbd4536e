// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/SoftbearStudios/fractal/terrain"
	"github.com/SoftbearStudios/fractal/terrain/pyramid"
	"github.com/google/uuid"
)

// Server streams tiles of one pyramid to websocket sessions.
type Server struct {
	pyramid *pyramid.Pyramid
	logger  *slog.Logger

	mutex    sync.Mutex
	sessions map[uuid.UUID]*Session
}

type status struct {
	Tiles    int            `json:"tiles"`
	Sessions int            `json:"sessions"`
	Config   terrain.Config `json:"config"`
}

func New(pyramid *pyramid.Pyramid, logger *slog.Logger) *Server {
	return &Server{
		pyramid:  pyramid,
		logger:   logger,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Sessions returns the number of open sessions.
func (s *Server) Sessions() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.sessions)
}

func (s *Server) register(session *Session) {
	s.mutex.Lock()
	s.sessions[session.ID] = session
	s.mutex.Unlock()

	activeSessions.Inc()
	s.logger.Info("session opened", "session", session.ID, "position", session.navigator.Position().String())
}

func (s *Server) unregister(session *Session) {
	s.mutex.Lock()
	_, ok := s.sessions[session.ID]
	delete(s.sessions, session.ID)
	s.mutex.Unlock()

	if ok {
		activeSessions.Dec()
		s.logger.Info("session closed", "session", session.ID)
	}
}

func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	buf, err := json.Marshal(status{
		Tiles:    s.pyramid.Len(),
		Sessions: s.Sessions(),
		Config:   s.pyramid.Config(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(buf)
}

// ServeSocket upgrades to a websocket and sends the start tile right away.
func (s *Server) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade error", "err", err)
		return
	}

	session := newSession(s, conn)
	s.register(session)
	session.sendTile()
	session.Init()
}
