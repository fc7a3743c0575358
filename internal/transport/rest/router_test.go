package rest_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/frahmantamala/allowance-management/internal/audit"
	"github.com/frahmantamala/allowance-management/internal/auth"
	"github.com/frahmantamala/allowance-management/internal/transport/rest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRouter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Router Suite")
}

// fakeAuthService resolves every bearer token to a fixed user, so the
// specs can exercise the role tiers without minting real tokens.
type fakeAuthService struct {
	user *auth.User
}

func (f *fakeAuthService) Authenticate(dto auth.LoginDTO) (*auth.Session, error) {
	return nil, auth.ErrInvalidCredentials
}

func (f *fakeAuthService) RefreshTokens(refreshToken string) (*auth.Session, error) {
	return nil, auth.ErrInvalidToken
}

func (f *fakeAuthService) ValidateAccessToken(tokenString string) (*auth.Claims, error) {
	return &auth.Claims{UserID: "1"}, nil
}

func (f *fakeAuthService) ResolveUser(claims *auth.Claims) (*auth.User, error) {
	return f.user, nil
}

type fakeAuditService struct{}

func (f *fakeAuditService) List(eventType string, actorID int64, page, limit int) ([]*audit.AuditEntry, int64, error) {
	return []*audit.AuditEntry{}, 0, nil
}

var _ = Describe("Route role tiers", func() {
	var authSvc *fakeAuthService
	var router *chi.Mux

	BeforeEach(func() {
		authSvc = &fakeAuthService{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Deps{
			Auth:   auth.NewHandler(authSvc),
			Guard:  auth.NewRoleGuard(slogger),
			Audit:  audit.NewHandler(&fakeAuditService{}),
			Logger: slogger,
		})
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer any-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	Describe("GET /api/v1/audit", func() {
		It("is readable by finance", func() {
			authSvc.user = &auth.User{ID: 2, Role: auth.RoleFinance}
			Expect(get("/api/v1/audit").Code).To(Equal(http.StatusOK))
		})

		It("is readable by admin", func() {
			authSvc.user = &auth.User{ID: 1, Role: auth.RoleAdmin}
			Expect(get("/api/v1/audit").Code).To(Equal(http.StatusOK))
		})

		It("is closed to employees", func() {
			authSvc.user = &auth.User{ID: 3, Role: auth.RoleEmployee}
			Expect(get("/api/v1/audit").Code).To(Equal(http.StatusForbidden))
		})
	})
})
