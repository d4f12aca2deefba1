// Package httpapi exposes the ledger node over HTTP: a JSON API for record
// reads and writes, a websocket event feed, and prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/locshare/internal/api"
	"github.com/dmitrijs2005/locshare/internal/logging"
	"github.com/dmitrijs2005/locshare/internal/node/ledger"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the ledger service into an HTTP handler.
type Server struct {
	ledger        *ledger.Service
	hub           *Hub
	log           logging.Logger
	secretKey     []byte
	tokenValidity time.Duration
	limiters      *limiterPool
	addr          string
}

// Options bundles the server's tunables.
type Options struct {
	Addr          string
	SecretKey     []byte
	TokenValidity time.Duration
	WriteRPS      float64
	WriteBurst    int
}

// NewServer constructs the HTTP server. The hub is registered as the ledger's
// event publisher.
func NewServer(svc *ledger.Service, log logging.Logger, opts Options) *Server {
	hub := NewHub(log)
	svc.SetPublisher(hub)
	return &Server{
		ledger:        svc,
		hub:           hub,
		log:           log,
		secretKey:     opts.SecretKey,
		tokenValidity: opts.TokenValidity,
		limiters:      newLimiterPool(opts.WriteRPS, opts.WriteBurst),
		addr:          opts.Addr,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/session", s.handleOpenSession).Methods(http.MethodPost)
	r.HandleFunc("/contract", s.handleContract).Methods(http.MethodGet)

	r.HandleFunc("/records", s.handleListRecordIDs).Methods(http.MethodGet)
	r.HandleFunc("/records", s.requireSession(s.rateLimit(s.handleCreateRecord))).Methods(http.MethodPost)
	r.HandleFunc("/records/{id}", s.handleGetRecord).Methods(http.MethodGet)
	r.HandleFunc("/records/{id}/ciphertext", s.handleGetHandle).Methods(http.MethodGet)
	r.HandleFunc("/records/{id}/verify", s.requireSession(s.rateLimit(s.handleVerifyRecord))).Methods(http.MethodPost)

	r.HandleFunc("/txs/{id}", s.handleTxStatus).Methods(http.MethodGet)

	r.HandleFunc("/events", s.hub.ServeWS)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info(ctx, "node api listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, api.Error{Code: code, Message: message})
}
