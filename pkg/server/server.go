// Package server exposes the parse and generate pipeline over HTTP so a
// web front end can drive it: upload border configs, request generation,
// and download the results.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sda-fusion/fusiongen/pkg/store"
	"github.com/sda-fusion/fusiongen/pkg/util"
)

// maxUploadBytes caps a single upload request.
const maxUploadBytes = 5 << 20

// Server routes API requests. It holds no parse state between requests;
// generated configs are persisted through the store.
type Server struct {
	store *store.Store
	mux   *http.ServeMux

	// defaultAS fills in fusion routers whose as_number is unset.
	defaultAS int
}

// New builds a server persisting generated configs through st.
func New(st *store.Store) *Server {
	s := &Server{
		store: st,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/upload", s.handleUpload)
	s.mux.HandleFunc("/api/generate", s.handleGenerate)
	s.mux.HandleFunc("/api/download", s.handleDownload)
	s.mux.HandleFunc("/api/configs", s.handleListConfigs)
	return s
}

// SetDefaultAS sets the AS number applied to generate requests whose
// routers omit as_number.
func (s *Server) SetDefaultAS(as int) {
	s.defaultAS = as
}

// ServeHTTP implements http.Handler with request logging.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	util.WithFields(map[string]interface{}{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   rec.status,
		"duration": time.Since(start).String(),
	}).Info("request")
}

// ListenAndServe runs the server on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	util.Infof("listening on %s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		util.Warnf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
