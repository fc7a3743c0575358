package allowance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/allowance-management/internal/auth"
	"github.com/frahmantamala/allowance-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	IssueMonthly(dto *IssueMonthlyDTO, actorID int64) (*IssueResult, error)
	ListByPeriod(month, year int) ([]*EmployeeAllowance, error)
	ListByUser(userID int64) ([]*EmployeeAllowance, error)
	GetByID(id int64) (*EmployeeAllowance, error)
	AdjustBalance(id int64, dto *AdjustBalanceDTO, actorID int64) (*EmployeeAllowance, error)
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

// IssueMonthly handles POST /allowances/issue. An empty body issues
// for the current month.
func (h *Handler) IssueMonthly(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	now := time.Now()
	dto := IssueMonthlyDTO{Month: int(now.Month()), Year: now.Year()}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.Logger.Error("IssueMonthly: invalid request body", "error", err)
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.Service.IssueMonthly(&dto, actor.ID)
	if err != nil {
		h.Logger.Error("IssueMonthly: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// ListAllowances handles GET /allowances?month=&year= and
// GET /allowances?userId=.
func (h *Handler) ListAllowances(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if v := q.Get("userId"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid userId")
			return
		}

		allowances, err := h.Service.ListByUser(userID)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, AllowancesResponse{Allowances: allowances})
		return
	}

	now := time.Now()
	month, year := int(now.Month()), now.Year()
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = m
	}
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}

	allowances, err := h.Service.ListByPeriod(month, year)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, AllowancesResponse{Allowances: allowances})
}

func (h *Handler) GetAllowance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.allowanceID(w, r)
	if !ok {
		return
	}

	a, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

// AdjustBalance handles POST /allowances/{id}/adjust.
func (h *Handler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.allowanceID(w, r)
	if !ok {
		return
	}

	var dto AdjustBalanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AdjustBalance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.AdjustBalance(id, &dto, actor.ID)
	if err != nil {
		h.Logger.Error("AdjustBalance: service error", "error", err, "allowance_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) allowanceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid allowance ID")
		return 0, false
	}
	return id, true
}
