package http

import (
	"log/slog"
	"net/http"
	"strings"

	"grafica/internal/core"
	"grafica/internal/ledger"
	"grafica/internal/services"
)

type summaryDTO struct {
	TotalIncomeCents  int64  `json:"total_income_cents"`
	TotalExpenseCents int64  `json:"total_expense_cents"`
	NetProfitCents    int64  `json:"net_profit_cents"`
	TotalIncome       string `json:"total_income"`
	TotalExpense      string `json:"total_expense"`
	NetProfit         string `json:"net_profit"`
	SkippedRecords    int    `json:"skipped_records"`
}

type chartDTO struct {
	Source string              `json:"source"`
	Points []ledger.ChartPoint `json:"points"`
}

type exportDTO struct {
	Ref string `json:"ref"`
}

// sourceFromQuery resolves the ?source= parameter, falling back to the
// configured default.
func (s *Server) sourceFromQuery(r *http.Request) (services.Source, error) {
	v := strings.TrimSpace(r.URL.Query().Get("source"))
	if v == "" {
		return s.defaultSource, nil
	}
	return services.ParseSource(v)
}

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	source, err := s.sourceFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.buildResult(r.Context(), source)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard summary error", "error", err, "source", string(source))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, summaryDTO{
		TotalIncomeCents:  res.Summary.TotalIncome.Cents,
		TotalExpenseCents: res.Summary.TotalExpense.Cents,
		NetProfitCents:    res.Summary.NetProfit.Cents,
		TotalIncome:       core.FormatBRL(res.Summary.TotalIncome.Cents),
		TotalExpense:      core.FormatBRL(res.Summary.TotalExpense.Cents),
		NetProfit:         core.FormatBRL(res.Summary.NetProfit.Cents),
		SkippedRecords:    res.Skipped,
	})
}

func (s *Server) handleDashboardChart(w http.ResponseWriter, r *http.Request) {
	source, err := s.sourceFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.buildResult(r.Context(), source)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard chart error", "error", err, "source", string(source))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	points := res.Chart
	if points == nil {
		points = []ledger.ChartPoint{}
	}
	writeJSON(w, http.StatusOK, chartDTO{Source: string(source), Points: points})
}

func (s *Server) handleDashboardReport(w http.ResponseWriter, r *http.Request) {
	source, err := s.sourceFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.buildResult(r.Context(), source)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard report error", "error", err, "source", string(source))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, res.Document)
}

func (s *Server) handleDashboardExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "report export not configured")
		return
	}

	source, err := s.sourceFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Export bypasses the cache so the written report is current.
	res, err := s.reports.Build(r.Context(), source)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report build error", "error", err, "source", string(source))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	ref, err := s.exporter.WriteReport(r.Context(), res.Document)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report export error", "error", err, "source", string(source))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	slog.InfoContext(r.Context(), "Report exported on demand", "ref", ref, "source", string(source))
	writeJSON(w, http.StatusOK, exportDTO{Ref: ref})
}
