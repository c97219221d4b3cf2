package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Ashenafi-pixel/lotto-sphere/config"
	"github.com/Ashenafi-pixel/lotto-sphere/metrics"
	"github.com/Ashenafi-pixel/lotto-sphere/session"

	log "github.com/sirupsen/logrus"
)

type Server struct {
	cfg      *config.Config
	sessions *session.Registry
}

func New(cfg *config.Config, sessions *session.Registry) *Server {
	return &Server{
		cfg:      cfg,
		sessions: sessions,
	}
}

// Handler returns the full route table wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("POST /lotto/sessions", s.createSession)
	mux.HandleFunc("GET /lotto/sessions/{id}", s.getSession)
	mux.HandleFunc("DELETE /lotto/sessions/{id}", s.deleteSession)
	mux.HandleFunc("POST /lotto/sessions/{id}/play", s.play)
	mux.HandleFunc("GET /lotto/sessions/{id}/reference", s.getReference)
	mux.HandleFunc("POST /lotto/sessions/{id}/reference/shuffle", s.shuffleReference)
	mux.HandleFunc("GET /lotto/sessions/{id}/score", s.getScore)
	mux.HandleFunc("POST /lotto/sessions/{id}/score/reset", s.resetScore)
	return cors(requestLogger(mux))
}

func (s *Server) Run() error {
	port := s.cfg.Port
	if port <= 0 {
		port = 8081
	}
	addr := ":" + strconv.Itoa(port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Infof("lotto listening on %s (ledger store: %s)", addr, s.cfg.LedgerStore)
	return srv.ListenAndServe()
}

func cors(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// requestLogger logs method and path for each request (no body or secrets).
func requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path}).Debug("request")
		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "lotto"})
}
