// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mockserver is a local stand-in for the conversion service. It
// speaks the same /upload and /feedback contract but does not generate
// SQL: the package text is echoed back as the result content.
package mockserver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const maxUploadBytes = 32 << 20

type envelope map[string]any

// Server holds the feedback it has received.
type Server struct {
	logger *slog.Logger

	mu       sync.Mutex
	feedback []string
	uploads  int
}

// New returns a Server that logs to logger.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Post("/upload", s.upload)
	r.Post("/feedback", s.submitFeedback)
	return r
}

// Feedback returns the feedback entries received so far.
func (s *Server) Feedback() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.feedback...)
}

// Uploads returns how many upload requests reached the handler.
func (s *Server) Uploads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.uploads++
	s.mu.Unlock()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.errorResponse(w, http.StatusBadRequest, "No file selected")
		return
	}
	if !strings.HasSuffix(header.Filename, ".pkg") {
		s.errorResponse(w, http.StatusBadRequest, "Only .pkg files are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("reading upload", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}
	content := strings.ToValidUTF8(string(data), "�")

	meta := parseHeader(content)
	if meta.caseID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Case ID not found in the input file")
		return
	}
	if meta.createdBy == "" {
		s.errorResponse(w, http.StatusBadRequest, "Created By not found in the input file")
		return
	}

	s.logger.Info("processed package", "created_by", meta.createdBy, "case_id", meta.caseID)
	s.writeJSON(w, http.StatusOK, envelope{
		"success":  true,
		"filename": fmt.Sprintf("Case#%s#Datafix.pkg", meta.caseID),
		"content":  content,
		"case_id":  meta.caseID,
	})
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

func (s *Server) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	text := strings.TrimSpace(req.Feedback)
	if text == "" {
		s.errorResponse(w, http.StatusBadRequest, "Feedback cannot be empty")
		return
	}

	s.mu.Lock()
	s.feedback = append(s.feedback, text)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Thank you for your feedback!"})
}

type packageHeader struct {
	createdBy string
	caseID    string
}

// parseHeader reads the "Created By:" and "Case#:" lines of a package.
// Labels match case-insensitively with optional space before the colon.
func parseHeader(content string) packageHeader {
	var h packageHeader
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), maxUploadBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "created by":
			h.createdBy = strings.TrimSpace(value)
		case "case#", "case #":
			h.caseID = strings.TrimSpace(value)
		}
	}
	return h
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, envelope{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("writing response", "error", err)
	}
}
