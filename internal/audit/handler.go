package audit

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/allowance-management/internal/transport"
)

type ServiceAPI interface {
	List(eventType string, actorID int64, page, limit int) ([]*AuditEntry, int64, error)
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

// ListEntries handles GET /audit with optional eventType, actorId,
// page and limit.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var actorID int64
	if v := q.Get("actorId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid actorId")
			return
		}
		actorID = id
	}

	page := 1
	if v := q.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}

	limit := 50
	if v := q.Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	entries, total, err := h.Service.List(q.Get("eventType"), actorID, page, limit)
	if err != nil {
		h.Logger.Error("ListEntries: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EntriesResponse{
		Entries: entries,
		Page:    page,
		Limit:   limit,
		Total:   total,
	})
}
