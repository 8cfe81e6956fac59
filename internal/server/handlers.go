package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// multipartOverhead is allowed on top of the upload limit for form framing.
const multipartOverhead = 1 << 20

// AnalyzeSourceRequest analyzes a document by reference instead of upload.
type AnalyzeSourceRequest struct {
	Source   string `json:"source" validate:"required"`
	MIMEType string `json:"mime_type,omitempty"`
}

// AnalyzeResponse represents the response for /analyze
type AnalyzeResponse struct {
	RequestID string                  `json:"request_id"`
	Analysis  types.AnalysisResult    `json:"analysis"`
	Profile   *types.CandidateProfile `json:"profile"`
	Cached    bool                    `json:"cached"`
}

// handleAnalyze extracts, profiles and scores an uploaded resume. It accepts
// a multipart "file" field, a raw document body with its Content-Type, or a
// JSON {"source": ...} reference when a fetcher is configured.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.engine.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	doc, err := s.readDocument(r, maxBytes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	requestID := uuid.New().String()
	analysis, err := s.engine.AnalyzeWithID(r.Context(), requestID, doc)
	if err != nil {
		s.logger.Info("analysis rejected",
			zap.String("request_id", requestID),
			zap.String("mime_type", doc.MIMEType),
			zap.Int64("size_bytes", doc.Size()),
			zap.Error(err))
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		RequestID: analysis.RequestID,
		Analysis:  analysis.Analysis,
		Profile:   analysis.Profile,
		Cached:    analysis.Cached,
	})
}

func (s *Server) readDocument(r *http.Request, maxBytes int64) (types.ResumeDocument, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return types.ResumeDocument{}, err
			}
			return types.ResumeDocument{}, &ErrValidation{Field: "file", Message: "multipart field \"file\" is required"}
		}
		defer file.Close() //nolint:errcheck // read-only upload

		data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
		if err != nil {
			return types.ResumeDocument{}, fmt.Errorf("failed to read upload: %w", err)
		}
		return types.ResumeDocument{
			Data:     data,
			MIMEType: ingestion.ResolveMIMEType(header.Header.Get("Content-Type"), header.Filename),
			Filename: header.Filename,
		}, nil

	case "application/json":
		if s.fetcher == nil {
			return types.ResumeDocument{}, &ErrValidation{Field: "source", Message: "document fetching is not enabled"}
		}
		var req AnalyzeSourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return types.ResumeDocument{}, &ErrValidation{Message: "invalid request body: " + err.Error()}
		}
		if err := validate.Struct(&req); err != nil {
			return types.ResumeDocument{}, err
		}
		doc, err := s.fetcher.Fetch(r.Context(), req.Source)
		if err != nil {
			return types.ResumeDocument{}, err
		}
		if req.MIMEType != "" {
			doc.MIMEType = req.MIMEType
		}
		return *doc, nil

	default:
		data, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
		if err != nil {
			return types.ResumeDocument{}, err
		}
		filename := r.URL.Query().Get("filename")
		return types.ResumeDocument{
			Data:     data,
			MIMEType: ingestion.ResolveMIMEType(r.Header.Get("Content-Type"), filename),
			Filename: filename,
		}, nil
	}
}

// decodeJSON decodes a request body and runs struct validation.
func decodeJSON[T interface{ Validate() error }](r *http.Request, req T) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return req.Validate()
}

// handleMatch scores a profile against every posting in the catalog
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := parsing.NormalizeProfile(req.Profile); err != nil {
		s.writeError(w, r, err)
		return
	}

	results, err := s.engine.Match(r.Context(), req.Profile, catalog.Filter{Industry: req.Industry})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": results})
}

// handleRank orders and filters previously computed matches
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req types.RankRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	key, err := types.ParseSortKey(req.SortKey)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "sort_key", Message: err.Error()})
		return
	}

	results, err := s.engine.Rank(r.Context(), req.Results, ranking.Options{
		SortKey:  key,
		Remote:   req.Remote,
		MinScore: req.MinScore,
		Limit:    req.Limit,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"results": results})
}

// handleRecommendations returns the top matches with guidance
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := parsing.NormalizeProfile(req.Profile); err != nil {
		s.writeError(w, r, err)
		return
	}

	recs, err := s.engine.Recommend(r.Context(), req.Profile, catalog.Filter{Industry: req.Industry}, req.Limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"recommendations": recs})
}

// handleListJobs lists catalog postings with optional filters and ordering
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := catalog.Filter{Industry: query.Get("industry")}

	if raw := query.Get("remote"); raw != "" {
		remote, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, &ErrValidation{Field: "remote", Message: "must be true or false"})
			return
		}
		filter.Remote = &remote
	}

	key, err := types.ParseSortKey(query.Get("sort"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "sort", Message: err.Error()})
		return
	}

	jobs, err := s.engine.ListJobs(r.Context(), filter, key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// handleGetJob returns a single posting
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.engine.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleTrends returns catalog-wide market statistics
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := s.engine.Trends(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, trends)
}
