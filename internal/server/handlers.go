package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/jd-extractor/internal/db"
	"github.com/jonathan/jd-extractor/internal/pipeline"
)

// ExtractResponse wraps a pipeline result with its storage ID when
// persistence is enabled.
type ExtractResponse struct {
	ID     string           `json:"id,omitempty"`
	Result *pipeline.Result `json:"result"`
}

// handleExtract runs the extraction pipeline for a submitted URL.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	result, err := s.orchestrator.Extract(r.Context(), req.URL, req.Mode)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyURL) || errors.Is(err, pipeline.ErrInvalidMode) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Extraction failed: "+err.Error())
		return
	}

	resp := ExtractResponse{Result: result}

	if s.db != nil {
		record := &db.Extraction{
			URL:         result.URL,
			ResolvedURL: result.ResolvedURL,
			Platform:    string(result.Platform),
			Source:      string(result.Source),
			Text:        result.Text,
			Error:       result.Error,
		}
		if result.Schema != nil {
			if data, err := json.Marshal(result.Schema); err == nil {
				record.SchemaJSON = data
			}
		}
		id, err := s.db.SaveExtraction(r.Context(), record)
		if err != nil {
			// Persistence failures should not hide a successful extraction.
			log.Printf("Failed to persist extraction for %s: %v", result.URL, err)
		} else {
			resp.ID = id.String()
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetExtraction returns a previously stored extraction by ID.
func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotFound, "Persistence is not enabled")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid extraction ID")
		return
	}

	record, err := s.db.GetExtractionByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load extraction")
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Extraction not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleGetExtractionByURL returns the most recent stored extraction for a URL.
func (s *Server) handleGetExtractionByURL(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotFound, "Persistence is not enabled")
		return
	}

	url := r.URL.Query().Get("url")
	if url == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing url query parameter")
		return
	}

	record, err := s.db.GetLatestExtractionByURL(r.Context(), url)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load extraction")
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "No extraction found for URL")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
