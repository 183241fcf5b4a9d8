/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api exposes the diagnostics over HTTP and websockets.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	httpx "github.com/carverauto/netdiag/pkg/http"
)

const (
	defaultHistoryLimit = 50
	readHeaderTimeout   = 10 * time.Second
)

// Server routes API requests to the diagnostic components.
type Server struct {
	deps   Deps
	router *mux.Router
}

func NewServer(deps Deps) *Server {
	s := &Server{
		deps:   deps,
		router: mux.NewRouter(),
	}

	s.setupRoutes()

	return s
}

// Handler returns the root handler. CORS wraps the router so preflight
// requests are answered before method matching.
func (s *Server) Handler() http.Handler {
	return httpx.RequestLogger(httpx.CommonMiddleware(s.router))
}

// HTTPServer wraps the handler in an http.Server listening on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/health", s.getHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/health/history", s.getHealthHistory).Methods(http.MethodGet)
	s.router.HandleFunc("/api/health/resolvers", s.getResolvers).Methods(http.MethodGet)
	s.router.HandleFunc("/api/mtu", s.getMTU).Methods(http.MethodGet)
	s.router.HandleFunc("/api/wifi", s.getWifi).Methods(http.MethodGet)
	s.router.HandleFunc("/api/publicip", s.getPublicIP).Methods(http.MethodGet)
	s.router.HandleFunc("/api/traffic", s.getTraffic).Methods(http.MethodGet)
	s.router.HandleFunc("/api/trace/{host}", s.streamTrace).Methods(http.MethodGet)
	s.router.HandleFunc("/api/speed/{direction}", s.streamSpeed).Methods(http.MethodGet)

	if s.deps.Metrics != nil {
		s.router.Handle("/metrics", s.deps.Metrics).Methods(http.MethodGet)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.Health == nil {
		writeError(w, http.StatusServiceUnavailable, errNotConfigured)
		return
	}

	report := s.deps.Health.Latest()
	if report == nil || r.URL.Query().Get("refresh") == "true" {
		fresh := s.deps.Health.RunOnce(r.Context())
		report = &fresh
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) getHealthHistory(w http.ResponseWriter, r *http.Request) {
	if s.deps.Health == nil {
		writeError(w, http.StatusServiceUnavailable, errNotConfigured)
		return
	}

	limit := defaultHistoryLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, errInvalidLimit)
			return
		}

		limit = n
	}

	reports, err := s.deps.Health.History(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to load health history: %v", err)
		writeError(w, http.StatusInternalServerError, err)

		return
	}

	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) getResolvers(w http.ResponseWriter, r *http.Request) {
	if s.deps.Resolvers == nil {
		writeError(w, http.StatusServiceUnavailable, errNotConfigured)
		return
	}

	writeJSON(w, http.StatusOK, s.deps.Resolvers.BenchmarkResolvers(r.Context()))
}

func (s *Server) getMTU(w http.ResponseWriter, r *http.Request) {
	if s.deps.MTU == nil {
		writeError(w, http.StatusServiceUnavailable, errNotConfigured)
		return
	}

	writeJSON(w, http.StatusOK, s.deps.MTU.DiscoverTarget(r.Context(), r.URL.Query().Get("target")))
}

func (s *Server) getWifi(w http.ResponseWriter, r *http.Request) {
	if s.deps.Wifi == nil {
		writeError(w, http.StatusServiceUnavailable, errNotConfigured)
		return
	}

	writeJSON(w, http.StatusOK, s.deps.Wifi.Run(r.Context()))
}

func (s *Server) getPublicIP(w http.ResponseWriter, r *http.Request) {
	if s.deps.PublicIP == nil {
		writeError(w, http.StatusServiceUnavailable, errNotConfigured)
		return
	}

	addr, err := s.deps.PublicIP.Detect(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, addr)
}

func (s *Server) getTraffic(w http.ResponseWriter, r *http.Request) {
	if s.deps.Traffic == nil {
		writeError(w, http.StatusServiceUnavailable, errNotConfigured)
		return
	}

	report, err := s.deps.Traffic.Sample(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, r.Context().Err()) {
			status = http.StatusRequestTimeout
		}

		writeError(w, status, err)

		return
	}

	writeJSON(w, http.StatusOK, report)
}
