package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleLive streams the top-N view of a game: one JSON array per change,
// starting with the current view. The subscription is released when the
// client disconnects.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	n, err := s.limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	gameID := chi.URLParam(r, "game")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Only the newest view matters; a slow client skips intermediate ones.
	views := make(chan []leaderboard.Entry, 1)
	proj := s.portal.NewProjection(gameID, func(entries []leaderboard.Entry) {
		select {
		case <-views:
		default:
		}
		select {
		case views <- entries:
		default:
		}
	})
	if err := proj.Subscribe(ctx, n); err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "cannot subscribe"),
			time.Now().Add(writeWait))
		return
	}
	defer proj.Close()
	s.logger.Debug("live leaderboard opened", "game", gameID, "limit", n)

	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("live leaderboard closed", "game", gameID)
			return
		case entries := <-views:
			if entries == nil {
				entries = []leaderboard.Entry{}
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(entries); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
