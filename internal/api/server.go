// Package api serves the local status page: a small HTTP surface for
// checking that the host is up, plus a WebSocket feed of dispatched
// commands.
package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"pointz/internal/config"
	"pointz/internal/osutils"
	"pointz/internal/protocol"
)

// Status is the /status document clients and the landing page read.
type Status struct {
	Hostname       string  `json:"hostname"`
	IP             *string `json:"ip"`
	DiscoveryPort  int     `json:"discovery_port"`
	CommandPort    int     `json:"command_port"`
	AppDownloadURL string  `json:"app_download_url"`
}

// Server serves the status API. It binds loopback only; the page is for the
// person at the host machine, not the LAN.
type Server struct {
	configMgr *config.Manager
	logger    golog.Logger
	hub       *Hub
	httpSrv   *http.Server
}

// NewServer creates the status server around the shared config manager and
// starts its feed hub.
func NewServer(configMgr *config.Manager, logger golog.Logger) *Server {
	s := &Server{configMgr: configMgr, logger: logger}
	s.hub = newHub(logger)
	s.httpSrv = &http.Server{Handler: s.Handler()}
	utils.PanicCapturingGo(s.hub.run)
	return s
}

// Handler returns the full middleware-wrapped route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.hub.handleWebSocket)
	return s.corsMiddleware(s.recoverMiddleware(mux))
}

// Start serves the status API until Close.
func (s *Server) Start(bind string, port int) error {
	addr := fmt.Sprintf("%s:%d", bind, port)
	// Explicit tcp4 avoids IPv6-only binding issues on Windows.
	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		return errors.Wrapf(err, "binding status server on %s", addr)
	}
	s.logger.Infow("status server listening", "url", "http://"+ln.Addr().String())

	if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close drops all feed clients and stops serving.
func (s *Server) Close() error {
	s.hub.stop()
	return s.httpSrv.Close()
}

// NotifyActivity pushes one dispatched command type to the live feed.
func (s *Server) NotifyActivity(kind protocol.CommandType) {
	s.hub.Broadcast(protocol.Message{
		Type:    protocol.TypeActivity,
		Payload: protocol.ActivityPayload{Command: kind},
	})
}

// recoverMiddleware keeps a panicking handler from taking down the host.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Errorw("status handler panicked", "path", r.URL.Path, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware opens the status surface to any local origin, matching
// what clients polling /status expect.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := s.configMgr.Get()
	status := Status{
		Hostname:       osutils.Hostname(),
		DiscoveryPort:  cfg.Network.DiscoveryPort,
		CommandPort:    cfg.Network.CommandPort,
		AppDownloadURL: cfg.General.AppDownloadURL,
	}
	if ip, ok := osutils.LocalIP(); ok {
		status.IP = &ip
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
