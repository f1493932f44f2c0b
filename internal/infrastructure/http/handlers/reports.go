package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/donbacco/pos-service/internal/application/use_cases"
	"github.com/donbacco/pos-service/internal/domain/report"
	"github.com/donbacco/pos-service/internal/infrastructure/http/response"
	"github.com/donbacco/pos-service/internal/pkg/clock"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

type ReportsHandler struct {
	reports *use_cases.ReportUseCase
	clock   clock.Clock
	log     *logger.Logger
}

func NewReportsHandler(reports *use_cases.ReportUseCase, clk clock.Clock, log *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		reports: reports,
		clock:   clk,
		log:     log,
	}
}

type summaryResponse struct {
	Report   report.Report `json:"report"`
	Text     string        `json:"text"`
	Degraded bool          `json:"degraded,omitempty"`
}

// HandleSummary renders a period report. The period comes from RFC 3339
// from/to bounds, or days=N for a rolling window; no bounds means the whole
// ledger.
func (h *ReportsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	period, errs := h.parsePeriod(r)
	if len(errs) > 0 {
		response.WriteValidationError(w, "Validation failed", errs)
		return
	}

	summary, err := h.reports.Summarize(r.Context(), period)
	if err != nil {
		h.log.Error("Report generation failed", "error", err)
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, summaryResponse{
		Report:   summary.Report,
		Text:     summary.Text,
		Degraded: summary.Degraded,
	})
}

func (h *ReportsHandler) parsePeriod(r *http.Request) (report.Period, map[string]string) {
	errs := make(map[string]string)

	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil || days < 1 {
			errs["days"] = "days must be a positive integer"
			return report.Period{}, errs
		}
		return report.LastDays(h.clock.Now(), days), nil
	}

	var period report.Period
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		from, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			errs["from"] = "from must be RFC 3339"
		}
		period.From = from
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		to, err := time.Parse(time.RFC3339, toParam)
		if err != nil {
			errs["to"] = "to must be RFC 3339"
		}
		period.To = to
	}

	if len(errs) > 0 {
		return report.Period{}, errs
	}
	return period, nil
}
