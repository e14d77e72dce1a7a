// internal/httpserver/server.go
//
// HTTP server wiring for the guessing game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, rate limit).
//   - Public endpoints: "/", "/health", "/labels", "/debug/dataset".
//   - Session endpoints: POST /session/new, then every player click as one POST.
//
// Notes:
//   - The session id travels in a signed cookie (or Authorization: Bearer).
//   - Every handler that touches a session goes through store.Update, so
//     the view returned always matches the state after the action.

package httpserver

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	mrand "math/rand"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rigaguess/internal/config"
	"github.com/robalobadob/rigaguess/internal/dataset"
	"github.com/robalobadob/rigaguess/internal/labels"
	"github.com/robalobadob/rigaguess/internal/store"
)

// Server bundles router, session store and dataset.
type Server struct {
	r     *chi.Mux
	store store.Store
	data  *dataset.Dataset
	cfg   config.Config
	fmt   *labels.Formatter

	rngMu  sync.Mutex
	master *mrand.Rand // seeds one generator per session
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, data *dataset.Dataset, cfg config.Config) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		data:   data,
		cfg:    cfg,
		fmt:    labels.NewFormatter(cfg.DisplayLocale),
		master: mrand.New(mrand.NewSource(seedOrRandom(cfg.RNGSeed))),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS
	if cfg.RateLimitPerMin > 0 {
		s.r.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
	}

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"service": "rigaguess",
			"endpoints": []string{
				"/health", "/labels", "POST /session/new", "GET /session",
				"POST /session/mode", "POST /session/reset",
				"POST /price/guess", "POST /price/next",
				"POST /compare/choose", "POST /quiz/check", "POST /quiz/advance",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/dataset", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, s.data.Stats())
	})
	s.r.Get("/labels", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, labels.All())
	})

	s.mountGame(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// newRNG returns a generator owned by a single session.
func (s *Server) newRNG() *mrand.Rand {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return mrand.New(mrand.NewSource(s.master.Int63()))
}

// seedOrRandom returns seed, or a crypto-random seed when seed is 0.
func seedOrRandom(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
