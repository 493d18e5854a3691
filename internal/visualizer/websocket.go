// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package visualizer

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WebsocketHub pushes each rendered pose to all connected browsers. It
// is both a Sink and an http.Handler: mount it on the route the 3D view
// connects to.
type WebsocketHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewWebsocketHub returns an empty hub.
func NewWebsocketHub() *WebsocketHub {
	return &WebsocketHub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *WebsocketHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket: upgrade error: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	log.Printf("websocket: client connected (%d total)", n)

	// Drain (and discard) client messages so control frames are
	// processed; the read failing is how we notice a disconnect.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

func (h *WebsocketHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
}

// Render broadcasts the pose as JSON. A conn that fails to accept the
// write is dropped rather than allowed to stall the render tick.
func (h *WebsocketHub) Render(pose RenderPose) error {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(pose); err != nil {
			h.drop(c)
		}
	}
	return nil
}

// Close disconnects all clients.
func (h *WebsocketHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		c.Close()
		delete(h.conns, c)
	}
}
