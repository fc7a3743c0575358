package group

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/allowance-management/internal/auth"
	"github.com/frahmantamala/allowance-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(query string) ([]*AllowanceGroup, error)
	GetByID(id int64) (*AllowanceGroup, error)
	Create(dto *GroupDTO, actorID int64) (*AllowanceGroup, error)
	Update(id int64, dto *GroupDTO, actorID int64) (*AllowanceGroup, error)
	Delete(id int64, actorID int64) error
	AssignToUser(dto *AssignDTO, actorID int64) error
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

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.List(r.URL.Query().Get("q"))
	if err != nil {
		h.Logger.Error("ListGroups: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, GroupsResponse{Groups: groups})
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	g, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetGroup: service error", "error", err, "group_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto GroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateGroup: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.Service.Create(&dto, user.ID)
	if err != nil {
		h.Logger.Error("CreateGroup: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, g)
}

func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	var dto GroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateGroup: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.Service.Update(id, &dto, user.ID)
	if err != nil {
		h.Logger.Error("UpdateGroup: service error", "error", err, "group_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id, user.ID); err != nil {
		h.Logger.Error("DeleteGroup: service error", "error", err, "group_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssignGroup handles POST /allowance-groups/assign.
func (h *Handler) AssignGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto AssignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AssignGroup: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AssignToUser(&dto, user.ID); err != nil {
		h.Logger.Error("AssignGroup: service error", "error", err,
			"user_id", dto.UserID, "group_id", dto.GroupID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *Handler) groupID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid group ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid group ID")
		return 0, false
	}
	return id, true
}
