package order

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
	List(filter *ListFilter) ([]*Order, int64, error)
	GetByID(id int64) (*Order, error)
	Create(dto *CreateOrderDTO, actorID int64) (*Order, error)
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

// ListOrders handles GET /orders with optional employeeId, branchId,
// orderType, startDate, endDate (RFC 3339 dates), page and limit.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		h.Logger.Error("ListOrders: bad filter", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, total, err := h.Service.List(filter)
	if err != nil {
		h.Logger.Error("ListOrders: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, OrdersResponse{
		Orders: orders,
		Page:   filter.Page,
		Limit:  filter.Limit,
		Total:  total,
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	o, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateOrder: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// employees may only order for themselves
	if actor.Role == auth.RoleEmployee && dto.EmployeeID != actor.ID {
		h.WriteError(w, http.StatusForbidden, "employees can only place their own orders")
		return
	}

	o, err := h.Service.Create(&dto, actor.ID)
	if err != nil {
		h.Logger.Error("CreateOrder: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, o)
}

func parseListFilter(r *http.Request) (*ListFilter, error) {
	q := r.URL.Query()
	filter := &ListFilter{}

	if v := q.Get("employeeId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errBadParam("employeeId")
		}
		filter.EmployeeID = id
	}
	if v := q.Get("branchId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errBadParam("branchId")
		}
		filter.BranchID = id
	}
	if v := q.Get("orderType"); v != "" {
		t := OrderType(v)
		if !ValidOrderType(t) {
			return nil, errBadParam("orderType")
		}
		filter.OrderType = t
	}
	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, errBadParam("startDate")
		}
		filter.StartDate = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, errBadParam("endDate")
		}
		filter.EndDate = &t
	}
	if v := q.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, errBadParam("page")
		}
		filter.Page = p
	}
	if v := q.Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return nil, errBadParam("limit")
		}
		filter.Limit = l
	}

	return filter, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

type paramError string

func (e paramError) Error() string { return "invalid " + string(e) }

func errBadParam(name string) error { return paramError(name) }
