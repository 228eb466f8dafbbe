package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kudastat/kudastat/internal/analysis"
	"github.com/kudastat/kudastat/internal/diaglog"
	"github.com/kudastat/kudastat/internal/export"
	"github.com/kudastat/kudastat/internal/importer"
	"github.com/kudastat/kudastat/internal/statement"
)

const (
	formFile = "file"
	// dateLayout is used by the from and to form fields.
	dateLayout = "2006-01-02"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	log := diaglog.New()
	res, ok := s.analyze(w, r, log)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newAnalysisResponse(res, log, s.cfg.Report.CurrencySymbol))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	log := diaglog.New()
	res, ok := s.analyze(w, r, log)
	if !ok {
		return
	}

	cols, err := export.ParseColumns(r.FormValue("columns"))
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DefaultFilename))
	if err := export.WriteCSV(w, res.Table, cols); err != nil {
		s.loggerFrom(r.Context()).Error("writing export", "error", err)
	}
}

// analyze runs the uploaded file through the analysis service. On failure it
// writes the error response and returns false.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request, log *diaglog.Log) (*analysis.Result, bool) {
	l := s.loggerFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		l.Warn("failed to parse upload", "error", err, "limit", s.cfg.Server.MaxUploadBytes)
		writeError(w, fmt.Sprintf("could not read upload (max %d bytes)", s.cfg.Server.MaxUploadBytes), http.StatusBadRequest)
		return nil, false
	}

	opts, err := s.options(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	file, header, err := r.FormFile(formFile)
	if err != nil {
		writeError(w, "a statement file is required in the 'file' field", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	res, err := s.svc.Analyze(file, opts, log)
	var hnf *statement.HeaderNotFoundError
	switch {
	case err == nil:
		l.Info("analyzed statement", "file", header.Filename, "rows", res.Parsed.Len(), "kept", res.Table.Len(), "plain", res.Plain)
		return res, true
	case errors.As(err, &hnf):
		l.Info("statement header not found", "file", header.Filename)
		writeJSON(w, http.StatusUnprocessableEntity, newHeaderNotFoundResponse(err, hnf, log))
	case errors.Is(err, importer.ErrUnreadableFile):
		l.Info("unreadable upload", "file", header.Filename, "error", err)
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		l.Error("analyzing statement", "file", header.Filename, "error", err)
		writeError(w, "failed to analyze statement", http.StatusInternalServerError)
	}
	return nil, false
}

func (s *Server) options(r *http.Request) (analysis.Options, error) {
	opts := analysis.Options{
		SavingsKeyword: s.cfg.Report.SavingsKeyword,
		Category:       strings.TrimSpace(r.FormValue("category")),
		TopRecipients:  s.cfg.Report.TopRecipients,
	}

	var err error
	if v := r.FormValue("include_savings"); v != "" {
		if opts.IncludeSavings, err = strconv.ParseBool(v); err != nil {
			return opts, fmt.Errorf("invalid include_savings %q", v)
		}
	}
	if opts.From, err = formDate(r, "from"); err != nil {
		return opts, err
	}
	if opts.To, err = formDate(r, "to"); err != nil {
		return opts, err
	}
	if v := r.FormValue("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("invalid top %q", v)
		}
		opts.TopRecipients = n
	}
	return opts, nil
}

func formDate(r *http.Request, field string) (time.Time, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q, want YYYY-MM-DD", field, v)
	}
	return t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
