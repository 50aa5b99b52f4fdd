// Package api exposes leaderboards, score submission and user management
// over HTTP, with a WebSocket feed for live leaderboards.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/arcade-portal/internal/admin"
	"github.com/vovakirdan/arcade-portal/internal/identity"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
	"github.com/vovakirdan/arcade-portal/internal/portal"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// AdminHeader carries the user ID of the administrator performing a user
// management call. The user's stored username must be a configured admin.
const AdminHeader = "X-Arcade-Admin"

// maxLimit caps ?limit on leaderboard queries.
const maxLimit = 100

// Server handles HTTP requests.
type Server struct {
	portal *portal.Portal
	logger *log.Logger
}

// NewServer creates a server over p.
func NewServer(p *portal.Portal, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{portal: p, logger: logger.With("component", "api")}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/games", s.handleListGames)

		r.Route("/leaderboards/{game}", func(r chi.Router) {
			r.Use(s.requireGame)
			r.Get("/", s.handleTopN)
			r.Get("/stats", s.handleStats)
			r.Get("/live", s.handleLive)
			r.Post("/scores", s.handleSubmit)
		})

		r.Get("/community", s.handleCommunity)

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}/scores", s.handleUserScores)
			r.Get("/{id}/profile", s.handleGetProfile)
			r.Put("/{id}/profile", s.handlePutProfile)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/", s.handleListUsers)
				r.Delete("/{id}", s.handleDeleteUser)
			})
		})
	})

	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !registry.Exists(chi.URLParam(r, "game")) {
			writeError(w, http.StatusNotFound, "unknown game")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// actingAdmin reports whether the AdminHeader user has an admin profile.
func (s *Server) actingAdmin(r *http.Request) bool {
	id := strings.TrimSpace(r.Header.Get(AdminHeader))
	if id == "" {
		return false
	}
	p, ok := s.portal.Profiles().Profile(r.Context(), id)
	return ok && s.portal.Admin().IsAdmin(p.Username)
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.actingAdmin(r) {
			writeError(w, http.StatusForbidden, "admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"offline": s.portal.Offline(),
	})
}

type gameResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Cadence string `json:"cadence"`
}

func (s *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	resp := make([]gameResponse, len(games))
	for i, g := range games {
		resp[i] = gameResponse{ID: g.ID, Title: g.Title, Cadence: g.Cadence.Kind.String()}
	}
	writeJSON(w, http.StatusOK, resp)
}

// limitParam parses ?limit, defaulting to the configured top-N.
func (s *Server) limitParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return s.portal.TopN(), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(n, maxLimit), nil
}

func (s *Server) handleTopN(w http.ResponseWriter, r *http.Request) {
	n, err := s.limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	gameID := chi.URLParam(r, "game")
	entries, err := s.portal.Store().TopN(r.Context(), gameID, n)
	if err != nil {
		s.logger.Error("error fetching leaderboard", "game", gameID, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load leaderboard")
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

type statsResponse struct {
	GameID     string    `json:"gameId"`
	Players    int       `json:"players"`
	HighScore  int       `json:"highScore"`
	AvgScore   float64   `json:"avgScore"`
	LastPlayed time.Time `json:"lastPlayed,omitzero"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")
	st, err := s.portal.Store().Stats(r.Context(), gameID)
	if err != nil {
		s.logger.Error("error fetching stats", "game", gameID, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}
	writeJSON(w, http.StatusOK, statsResponse(st))
}

type submitRequest struct {
	UserID string `json:"userId"`
	Score  *int   `json:"score"`
}

type submitResponse struct {
	Outcome string `json:"outcome"`
}

// handleSubmit applies the best-score rule. Storage failures are reported in
// the outcome, not as an HTTP error.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.Score == nil || *req.Score < 0 {
		writeError(w, http.StatusBadRequest, "userId and a non-negative score are required")
		return
	}
	out := s.portal.Submitter().SubmitIfReady(r.Context(), chi.URLParam(r, "game"), req.UserID, *req.Score)
	writeJSON(w, http.StatusOK, submitResponse{Outcome: out.String()})
}

func (s *Server) handleCommunity(w http.ResponseWriter, r *http.Request) {
	members, err := s.portal.Community().Members(r.Context())
	if err != nil {
		s.logger.Error("error listing community", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot list players")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) handleUserScores(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	scores, err := s.portal.Community().Scores(r.Context(), userID)
	if err != nil {
		s.logger.Error("error loading user scores", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.portal.Profiles().Profile(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "no profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p identity.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p.UserID = chi.URLParam(r, "id")
	if s.portal.Admin().IsAdmin(p.Username) && !s.actingAdmin(r) {
		writeError(w, http.StatusForbidden, "username is reserved")
		return
	}
	if err := s.portal.SaveProfile(r.Context(), p); err != nil {
		s.logger.Error("error saving profile", "user", p.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot save profile")
		return
	}
	writeJSON(w, http.StatusOK, p.Normalize())
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.portal.Admin().ListUsers(r.Context())
	if err != nil {
		s.logger.Error("error listing users", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	err := s.portal.Admin().DeleteUser(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, admin.ErrProtectedUser):
		writeError(w, http.StatusForbidden, "cannot delete an admin")
	default:
		s.logger.Error("error deleting user", "user", chi.URLParam(r, "id"), "error", err)
		writeError(w, http.StatusInternalServerError, "cannot delete user")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
