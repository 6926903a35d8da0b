// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspect

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Server is the HTTP handler of the debugging view.
type Server struct {
	hub      *Hub
	log      logr.Logger
	router   *mux.Router
	upgrader websocket.Upgrader
}

func NewServer(hub *Hub, log logr.Logger) *Server {
	s := &Server{
		hub:    hub,
		log:    log,
		router: mux.NewRouter(),
	}
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/caps", s.handleCaps).Methods(http.MethodGet)
	api.HandleFunc("/windows", s.handleWindows).Methods(http.MethodGet)
	api.HandleFunc("/windows/{id:[0-9]+}", s.handleWindow).Methods(http.MethodGet)
	api.HandleFunc("/events", s.handleEvents)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error(err, "writing response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.hub.Snapshot()
	s.writeJSON(w, map[string]any{
		"status":  "ok",
		"windows": len(snap.Windows),
		"dropped": s.hub.Dropped(),
	})
}

func (s *Server) handleCaps(w http.ResponseWriter, r *http.Request) {
	snap := s.hub.Snapshot()
	s.writeJSON(w, map[string]any{
		"backend": snap.Backend,
		"caps":    snap.Caps,
	})
}

func (s *Server) handleWindows(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.hub.Snapshot().Windows)
}

func (s *Server) handleWindow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, info := range s.hub.Snapshot().Windows {
		if info.ID == id {
			s.writeJSON(w, info)
			return
		}
	}
	http.Error(w, fmt.Sprintf("no window %d", id), http.StatusNotFound)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.V(1).Info("websocket upgrade failed", "err", err.Error())
		return
	}
	defer conn.Close()

	ch := s.hub.subscribe()
	defer s.hub.unsubscribe(ch)

	// The reader notices when the client goes away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case rec := <-ch:
			if err := conn.WriteJSON(rec); err != nil {
				s.log.V(1).Info("websocket write failed", "err", err.Error())
				return
			}
		case <-gone:
			return
		case <-r.Context().Done():
			return
		}
	}
}
