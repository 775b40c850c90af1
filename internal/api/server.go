// Package api exposes the intake pipeline over HTTP: file upload plus
// filtered reads of stored companies.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/company-intake/internal/ingest"
	"github.com/sells-group/company-intake/internal/intake"
	"github.com/sells-group/company-intake/internal/model"
	"github.com/sells-group/company-intake/internal/store"
)

const maxUploadBytes = 32 << 20

// ProcessorFactory returns a processor for the requested mode.
type ProcessorFactory func(mode intake.Mode) (*intake.Processor, error)

// Server holds the HTTP handler dependencies.
type Server struct {
	store        store.Store
	processorFor ProcessorFactory
	defaultMode  intake.Mode
}

// New creates a Server.
func New(st store.Store, factory ProcessorFactory, defaultMode intake.Mode) *Server {
	return &Server{store: st, processorFor: factory, defaultMode: defaultMode}
}

// Routes returns the chi router for the API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Get("/companies", s.handleListCompanies)
		r.Get("/countries", s.handleListCountries)
		r.Get("/employee-sizes", s.handleListEmployeeSizes)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type uploadResponse struct {
	Success       bool                `json:"success"`
	InsertedCount int                 `json:"inserted_count"`
	Stats         model.CleaningStats `json:"stats"`
	// SampleCompanies holds the first few persisted rows so callers can
	// eyeball the cleaning result without a second request.
	SampleCompanies []model.Company `json:"sample_companies"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	var rows []model.RawRow
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		rows, err = ingest.ParseCSV(file)
	case ".xlsx":
		var data []byte
		if data, err = io.ReadAll(file); err == nil {
			rows, err = ingest.ParseXLSX(data)
		}
	default:
		writeError(w, http.StatusBadRequest, "unsupported file type, expected .csv or .xlsx")
		return
	}
	if err != nil {
		zap.L().Warn("upload parse failed", zap.String("file", header.Filename), zap.Error(err))
		writeError(w, http.StatusBadRequest, "could not parse uploaded file")
		return
	}

	mode := s.defaultMode
	if m := r.FormValue("mode"); m != "" {
		if mode, err = intake.ParseMode(m); err != nil {
			writeError(w, http.StatusBadRequest, "unknown mode")
			return
		}
	}

	proc, err := s.processorFor(mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, stats, err := proc.Process(r.Context(), rows)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := s.store.UpsertCompanies(r.Context(), records)
	if err != nil {
		zap.L().Error("upsert failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store companies")
		return
	}

	sample := stored
	if len(sample) > 3 {
		sample = sample[:3]
	}
	writeJSON(w, http.StatusOK, uploadResponse{
		Success:         true,
		InsertedCount:   len(stored),
		Stats:           stats,
		SampleCompanies: sample,
	})
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	filter := store.CompanyFilter{
		Country:      r.URL.Query().Get("country"),
		Domain:       r.URL.Query().Get("domain"),
		EmployeeSize: r.URL.Query().Get("employee_size"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	companies, err := s.store.ListCompanies(r.Context(), filter)
	if err != nil {
		zap.L().Error("list companies failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}
	if companies == nil {
		companies = []model.Company{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"companies": companies,
		"count":     len(companies),
	})
}

func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.store.ListCountries(r.Context())
	if err != nil {
		zap.L().Error("list countries failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list countries")
		return
	}
	if countries == nil {
		countries = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"countries": countries})
}

func (s *Server) handleListEmployeeSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := s.store.ListEmployeeSizes(r.Context())
	if err != nil {
		zap.L().Error("list employee sizes failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list employee sizes")
		return
	}
	if sizes == nil {
		sizes = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"employee_sizes":    sizes,
		"available_buckets": model.EmployeeSizeBuckets,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
