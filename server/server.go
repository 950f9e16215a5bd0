// Package server exposes workbook generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/orayew2002/acta-excel/domain"
	"github.com/orayew2002/acta-excel/processor"
	"github.com/rs/zerolog"
)

// GeneratePath is the generation endpoint.
const GeneratePath = "/api/excel/generar_excel"

const maxBodySize = 16 << 20

// Generator builds a workbook for a request.
type Generator interface {
	Generate(ctx context.Context, req domain.Request) (processor.Result, error)
}

// Response is the JSON body of every generation reply.
type Response struct {
	Status   string `json:"status"`
	FilePath string `json:"file_path,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Handler serves the HTTP API.
type Handler struct {
	gen    Generator
	logger zerolog.Logger
}

// NewHandler creates a Handler and its routes.
func NewHandler(gen Generator, logger zerolog.Logger) http.Handler {
	h := &Handler{gen: gen, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+GeneratePath, h.HandleGenerate)
	mux.HandleFunc("GET /health", h.HandleHealth)
	return mux
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleGenerate decodes a request, generates its workbook and replies with
// the path of the written file.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.logger.With().Str("remote", r.RemoteAddr).Logger()

	var req domain.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid request body")
		h.sendError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	res, err := h.gen.Generate(r.Context(), req)
	if err != nil {
		status := statusOf(err)
		log.Error().Err(err).Int("status", status).Str("uri", req.URI).Dur("took", time.Since(start)).Msg("generation failed")
		h.sendError(w, status, err.Error())
		return
	}

	log.Info().Str("file", res.FilePath).Dur("took", time.Since(start)).Msg("workbook generated")
	h.writeJSON(w, http.StatusOK, Response{Status: "success", FilePath: res.FilePath})
}

func statusOf(err error) int {
	switch processor.KindOf(err) {
	case processor.KindInvalidInput:
		return http.StatusBadRequest
	case processor.KindNotFound:
		return http.StatusNotFound
	case processor.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) sendError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, Response{Status: "error", Message: message})
}

// writeJSON encodes value as the reply body. Encoding errors mean the client
// went away and are only logged.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		h.logger.Warn().Err(err).Msg("writing JSON response")
	}
}

// Server is the HTTP listener.
type Server struct {
	http   *http.Server
	logger zerolog.Logger
}

// New creates a Server listening on port. writeTimeout should exceed the
// generation timeout so timeouts are reported to the client.
func New(port int, writeTimeout time.Duration, gen Generator, logger zerolog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(port)),
			Handler:           NewHandler(gen, logger),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      writeTimeout,
		},
		logger: logger,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("listening")
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}
