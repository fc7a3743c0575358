package auth

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/allowance-management/internal/transport"
	"github.com/frahmantamala/allowance-management/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*Session, error)
	RefreshTokens(refreshToken string) (*Session, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolveUser(claims *Claims) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case ErrUserNotVerified:
			h.WriteError(w, http.StatusUnauthorized, "user is not verified")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch err {
		case ErrInvalidToken, ErrTokenExpired:
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, session)
}

// Logout only validates the token; tokens are stateless so the client
// discards its persisted session record.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /session: echoes the resolved session user and
// the home route for its role, so clients route without re-parsing the
// token themselves.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":      user,
		"home_path": HomePathForRole(user.Role),
	})
}

// AuthMiddleware resolves the bearer token into a session user. A
// missing or malformed token is handled the same way: the request is
// rejected and the client is pointed at the login route.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.writeRedirect(w, http.StatusUnauthorized, "missing authorization token", LoginPath)
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.writeRedirect(w, http.StatusUnauthorized, "invalid token", LoginPath)
			return
		}

		user, err := h.Service.ResolveUser(claims)
		if err != nil {
			h.Logger.Warn("session user not resolvable", "user_id", claims.UserID, "error", err)
			h.writeRedirect(w, http.StatusUnauthorized, "user not found", LoginPath)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

func (h *Handler) writeRedirect(w http.ResponseWriter, status int, message, redirectTo string) {
	h.WriteJSON(w, status, map[string]string{
		"message":     message,
		"redirect_to": redirectTo,
	})
}
