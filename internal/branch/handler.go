package branch

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/allowance-management/internal/auth"
	"github.com/frahmantamala/allowance-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(query string) ([]*Branch, error)
	GetByID(id int64) (*Branch, error)
	Create(dto *BranchDTO, actorID int64) (*Branch, error)
	Update(id int64, dto *BranchDTO, actorID int64) (*Branch, error)
	Delete(id int64, actorID int64) error
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

func (h *Handler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Service.List(r.URL.Query().Get("q"))
	if err != nil {
		h.Logger.Error("ListBranches: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, BranchesResponse{Branches: branches})
}

func (h *Handler) GetBranch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.branchID(w, r)
	if !ok {
		return
	}

	b, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetBranch: service error", "error", err, "branch_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto BranchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateBranch: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Service.Create(&dto, user.ID)
	if err != nil {
		h.Logger.Error("CreateBranch: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.branchID(w, r)
	if !ok {
		return
	}

	var dto BranchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateBranch: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Service.Update(id, &dto, user.ID)
	if err != nil {
		h.Logger.Error("UpdateBranch: service error", "error", err, "branch_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.branchID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id, user.ID); err != nil {
		h.Logger.Error("DeleteBranch: service error", "error", err, "branch_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) branchID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid branch ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid branch ID")
		return 0, false
	}
	return id, true
}
