// internal/httpserver/routes_leaderboard.go
//
// GET /leaderboard → best finished runs (fewest moves on the final level).
// Results come from the store.Recorder the server was built with; only
// terminal rounds are ever recorded.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/i-deepakkumar/Minimaze/internal/store"
)

// lbRes is returned by /leaderboard.
type lbRes struct {
	Top []store.Result `json:"top"`
}

func (s *Server) mountLeaderboard(r chi.Router) {
	r.Get("/leaderboard", s.handleLeaderboard)
}

// handleLeaderboard returns up to ?limit= (default 20, max 100) victories.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_limit"}`))
			return
		}
		limit = min(n, 100)
	}
	if s.results == nil {
		_ = json.NewEncoder(w).Encode(lbRes{Top: []store.Result{}})
		return
	}
	top, err := s.results.Top(r.Context(), limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("leaderboard")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"server_error"}`))
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Top: top})
}
