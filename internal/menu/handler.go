package menu

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/allowance-management/internal/auth"
	"github.com/frahmantamala/allowance-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListMenus(branchID int64, query string) ([]*Menu, error)
	GetMenu(id int64) (*Menu, error)
	CreateMenu(dto *MenuDTO, actorID int64) (*Menu, error)
	UpdateMenu(id int64, dto *MenuDTO, actorID int64) (*Menu, error)
	DeleteMenu(id int64, actorID int64) error

	ListItems(menuID int64, query string) ([]*MenuItem, error)
	GetItem(id int64) (*MenuItem, error)
	CreateItem(dto *MenuItemDTO, actorID int64) (*MenuItem, error)
	UpdateItem(id int64, dto *MenuItemDTO, actorID int64) (*MenuItem, error)
	DeleteItem(id int64, actorID int64) error
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

func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request) {
	var branchID int64
	if v := r.URL.Query().Get("branchId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid branchId")
			return
		}
		branchID = id
	}

	menus, err := h.Service.ListMenus(branchID, r.URL.Query().Get("q"))
	if err != nil {
		h.Logger.Error("ListMenus: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MenusResponse{Menus: menus})
}

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "invalid menu ID")
	if !ok {
		return
	}

	m, err := h.Service.GetMenu(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto MenuDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.CreateMenu(&dto, user.ID)
	if err != nil {
		h.Logger.Error("CreateMenu: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.pathID(w, r, "invalid menu ID")
	if !ok {
		return
	}

	var dto MenuDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.UpdateMenu(id, &dto, user.ID)
	if err != nil {
		h.Logger.Error("UpdateMenu: service error", "error", err, "menu_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.pathID(w, r, "invalid menu ID")
	if !ok {
		return
	}

	if err := h.Service.DeleteMenu(id, user.ID); err != nil {
		h.Logger.Error("DeleteMenu: service error", "error", err, "menu_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	var menuID int64
	if v := r.URL.Query().Get("menuId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid menuId")
			return
		}
		menuID = id
	}

	items, err := h.Service.ListItems(menuID, r.URL.Query().Get("q"))
	if err != nil {
		h.Logger.Error("ListItems: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MenuItemsResponse{Items: items})
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "invalid menu item ID")
	if !ok {
		return
	}

	item, err := h.Service.GetItem(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto MenuItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.CreateItem(&dto, user.ID)
	if err != nil {
		h.Logger.Error("CreateItem: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.pathID(w, r, "invalid menu item ID")
	if !ok {
		return
	}

	var dto MenuItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.UpdateItem(id, &dto, user.ID)
	if err != nil {
		h.Logger.Error("UpdateItem: service error", "error", err, "item_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.pathID(w, r, "invalid menu item ID")
	if !ok {
		return
	}

	if err := h.Service.DeleteItem(id, user.ID); err != nil {
		h.Logger.Error("DeleteItem: service error", "error", err, "item_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, msg string) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}
