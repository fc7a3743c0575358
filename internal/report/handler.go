package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/allowance-management/internal/transport"
)

type ServiceAPI interface {
	Summary(ctx context.Context, month, year int) (*Summary, error)
	OverUsage(ctx context.Context, month, year int) ([]*OverUsageCase, error)
	OverUsageByGroup(ctx context.Context, month, year int) ([]*GroupOverUsage, error)
	UsageTrend(ctx context.Context, month, year, months int) ([]*TrendPoint, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

// GetSummary handles GET /reports/summary?month=&year=, defaulting to
// the current month.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.period(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.Summary(r.Context(), month, year)
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetOverUsage(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.period(w, r)
	if !ok {
		return
	}

	cases, err := h.Service.OverUsage(r.Context(), month, year)
	if err != nil {
		h.Logger.Error("GetOverUsage: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, OverUsageResponse{Month: month, Year: year, Cases: cases})
}

func (h *Handler) GetOverUsageByGroup(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.period(w, r)
	if !ok {
		return
	}

	groups, err := h.Service.OverUsageByGroup(r.Context(), month, year)
	if err != nil {
		h.Logger.Error("GetOverUsageByGroup: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, GroupOverUsageResponse{Month: month, Year: year, Groups: groups})
}

func (h *Handler) GetUsageTrend(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.period(w, r)
	if !ok {
		return
	}

	months := 6
	if v := r.URL.Query().Get("months"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid months")
			return
		}
		months = m
	}

	points, err := h.Service.UsageTrend(r.Context(), month, year, months)
	if err != nil {
		h.Logger.Error("GetUsageTrend: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, TrendResponse{Months: months, Points: points})
}

// ExportOverUsageCSV handles GET /reports/over-usage/export and
// streams the month's over-usage cases as a CSV download.
func (h *Handler) ExportOverUsageCSV(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.period(w, r)
	if !ok {
		return
	}

	cases, err := h.Service.OverUsage(r.Context(), month, year)
	if err != nil {
		h.Logger.Error("ExportOverUsageCSV: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("over-usage-%d-%02d.csv", year, month)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	header := []string{"employee", "group", "issued", "used", "over"}
	if err := cw.Write(header); err != nil {
		h.Logger.Error("ExportOverUsageCSV: write failed", "error", err)
		return
	}

	for _, c := range cases {
		record := []string{
			c.FullName,
			c.GroupName,
			FormatETB(c.IssuedCents, 2),
			FormatETB(c.UsedCents, 2),
			FormatETB(c.OverCents, 2),
		}
		if err := cw.Write(record); err != nil {
			h.Logger.Error("ExportOverUsageCSV: write failed", "error", err)
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Logger.Error("ExportOverUsageCSV: flush failed", "error", err)
	}
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()

	q := r.URL.Query()
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			h.WriteError(w, http.StatusBadRequest, "invalid month")
			return 0, 0, false
		}
		month = m
	}
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 2000 || y > 2100 {
			h.WriteError(w, http.StatusBadRequest, "invalid year")
			return 0, 0, false
		}
		year = y
	}

	return month, year, true
}
