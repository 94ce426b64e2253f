// internal/httpserver/server.go
//
// HTTP server wiring for the MiniMaze frame.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, access logs, panic recovery,
//     timeouts, CORS).
//   - Frame endpoint: GET/POST "/" and "/api/maze".
//   - Diagnostics: "/health", "/debug/levels".
//   - Finished-run leaderboard: "/leaderboard" (routes_leaderboard.go).
//
// Notes:
//   - Every frame request is handled in isolation; all game state comes from
//     the client token.
//   - Bad request bodies and bad tokens restart the game instead of failing.
//   - Anything else that goes wrong is logged and answered with a plain 500.

package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/i-deepakkumar/Minimaze/internal/frame"
	"github.com/i-deepakkumar/Minimaze/internal/game"
	"github.com/i-deepakkumar/Minimaze/internal/render"
	"github.com/i-deepakkumar/Minimaze/internal/store"
)

// Error kinds surfaced by the frame handler.
var (
	ErrMalformedRequest = errors.New("malformed request body")
	ErrRender           = errors.New("render failed")
)

const maxBodyBytes = 64 << 10

// Options configures a Server.
type Options struct {
	Frame        frame.Options
	ClientOrigin string
	Now          func() time.Time // defaults to time.Now
}

// Server bundles the router and the game pipeline.
type Server struct {
	r       *chi.Mux
	engine  *game.Engine
	images  render.Encoder
	results store.Recorder
	frame   frame.Options
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(eng *game.Engine, images render.Encoder, results store.Recorder, opts Options) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		engine:  eng,
		images:  images,
		results: results,
		frame:   opts.Frame,
		now:     opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	origin := opts.ClientOrigin
	if origin == "" {
		origin = "*"
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped zerolog logger
	s.r.Use(requestIDLogger)                 // tag log lines with the request ID
	s.r.Use(accessLog())                     // one line per request
	s.r.Use(recoverPlain)                    // recover from panics with a plain 500
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	// --- frame ---
	for _, p := range []string{"/", "/api/maze"} {
		s.r.Get(p, s.handleMaze)
		s.r.Post(p, s.handleMaze)
	}

	// --- diagnostics ---
	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/levels", s.handleLevels)
		s.mountLeaderboard(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestIDLogger copies chi's request ID into the request logger.
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			l := zerolog.Ctx(r.Context())
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog() func(http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})
}

// recoverPlain turns a panic into a logged, plain-text 500.
func recoverPlain(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				hlog.FromRequest(r).Error().Interface("panic", rec).Msg("handler panic")
				serverError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func serverError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("Server Error"))
}

// ------------------------------- FRAME -------------------------------------

// frameReq is the POST body sent by frame clients.
type frameReq struct {
	UntrustedData *struct {
		ButtonIndex int    `json:"buttonIndex"`
		State       string `json:"state"`
	} `json:"untrustedData"`
}

// decodeFrameRequest reads the button index and state token from a POST body.
func decodeFrameRequest(body io.Reader) (button int, token string, err error) {
	var req frameReq
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if req.UntrustedData == nil {
		return 0, "", fmt.Errorf("%w: missing untrustedData", ErrMalformedRequest)
	}
	return req.UntrustedData.ButtonIndex, req.UntrustedData.State, nil
}

// handleMaze runs one round: decode → transition → render → compose.
func (s *Server) handleMaze(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	logger := hlog.FromRequest(r)

	state, action, resumed := game.State{}, game.ActionNone, false
	if r.Method == http.MethodPost {
		button, token, err := decodeFrameRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		switch {
		case err != nil:
			logger.Debug().Err(err).Msg("starting fresh")
		case token == "":
			// No token: show the start screen and drop the button rather than
			// spending it as a first move.
		default:
			// On error Resume already hands back a fresh state.
			st, err := s.engine.Resume(token, now)
			state, resumed = st, true
			if err != nil {
				logger.Warn().Err(err).Msg("starting fresh")
				break
			}
			action = game.ActionFor(s.engine.Screen(st), button)
		}
	}
	if !resumed {
		state = s.engine.Fresh(now)
	}

	res := s.engine.Transition(state, action, now)
	logger.Debug().
		Str("action", action.String()).
		Str("outcome", string(res.Outcome)).
		Int("level", res.State.Level).
		Int("moves", res.State.Moves).
		Msg("transition")

	img, err := s.images.ImageRef(render.Render(res, s.engine.Levels()))
	if err != nil {
		logger.Error().Err(fmt.Errorf("%w: %v", ErrRender, err)).Msg("frame")
		serverError(w)
		return
	}

	f := frame.Compose(res, img, s.frame)
	if _, done := f.Next.Terminal(); done {
		s.record(r, res, now)
	}

	var buf bytes.Buffer
	if err := f.WriteHTML(&buf); err != nil {
		logger.Error().Err(fmt.Errorf("%w: %v", ErrRender, err)).Msg("frame")
		serverError(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// record stores a finished run (best effort, non-fatal if it fails).
func (s *Server) record(r *http.Request, res game.Result, now time.Time) {
	if s.results == nil {
		return
	}
	out := store.Result{
		RunID:      res.State.RunID,
		Outcome:    string(res.Outcome),
		Level:      res.State.Level + 1,
		Moves:      res.State.Moves,
		FinishedAt: now,
	}
	if res.State.StartedAt > 0 {
		out.ElapsedMs = now.UnixMilli() - res.State.StartedAt
	}
	if err := s.results.Record(r.Context(), out); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("run", out.RunID).Msg("record result")
	}
}

// ---------------------------- diagnostics ----------------------------------

type levelInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// handleLevels lists the loaded levels and the active rules.
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	ls := s.engine.Levels()
	out := make([]levelInfo, 0, len(ls))
	for _, l := range ls {
		out = append(out, levelInfo{Name: l.Name, Width: l.Grid.Width(), Height: l.Grid.Height()})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"levels":          out,
		"timed":           s.engine.Timed(),
		"durationSeconds": int(s.engine.Duration().Seconds()),
	})
}
