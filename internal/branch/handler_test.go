package branch_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/frahmantamala/allowance-management/internal/auth"
	"github.com/frahmantamala/allowance-management/internal/branch"
	branchPostgres "github.com/frahmantamala/allowance-management/internal/branch/postgres"
	"github.com/frahmantamala/allowance-management/internal/core/events"
	"github.com/frahmantamala/allowance-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestBranch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Branch Suite")
}

var _ = Describe("Branch Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    branch.RepositoryAPI
		service *branch.Service
		handler *branch.Handler
		slogger *slog.Logger
		admin   *auth.User
	)

	withUser := func(req *http.Request) *http.Request {
		return req.WithContext(auth.ContextWithUser(req.Context(), admin))
	}

	withURLParam := func(req *http.Request, key, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&branch.Branch{})
		Expect(err).NotTo(HaveOccurred())

		repo = branchPostgres.NewBranchRepository(db)
		bus := events.NewEventBus(slogger)
		service = branch.NewService(repo, bus, slogger)
		handler = &branch.Handler{
			BaseHandler: &transport.BaseHandler{Logger: slogger},
			Service:     service,
		}
		admin = &auth.User{ID: 1, Email: "admin@example.com", Role: auth.RoleAdmin}

		seed := []*branch.Branch{
			{Name: "Jimma Branch", Location: "Jimma"},
			{Name: "Bole Branch", Location: "Addis Ababa"},
			{Name: "Piazza Branch", Location: "Addis Ababa"},
		}
		for _, b := range seed {
			Expect(repo.Create(b)).To(Succeed())
		}
	})

	It("lists all branches", func() {
		req := httptest.NewRequest(http.MethodGet, "/branches", nil)
		w := httptest.NewRecorder()

		handler.ListBranches(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp branch.BranchesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Branches).To(HaveLen(3))
	})

	It("narrows the list with a case-insensitive query", func() {
		req := httptest.NewRequest(http.MethodGet, "/branches?q=jim", nil)
		w := httptest.NewRecorder()

		handler.ListBranches(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp branch.BranchesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Branches).To(HaveLen(1))
		Expect(resp.Branches[0].Name).To(Equal("Jimma Branch"))
	})

	It("leaves stored rows untouched after filtering", func() {
		req := httptest.NewRequest(http.MethodGet, "/branches?q=jim", nil)
		handler.ListBranches(httptest.NewRecorder(), req)

		all, err := repo.GetAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(3))
	})

	It("creates a branch", func() {
		body, _ := json.Marshal(branch.BranchDTO{Name: "Hawassa Branch", Location: "Hawassa"})
		req := withUser(httptest.NewRequest(http.MethodPost, "/branches", bytes.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreateBranch(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var created branch.Branch
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).NotTo(BeZero())
		Expect(created.Name).To(Equal("Hawassa Branch"))
	})

	It("rejects a branch with an empty name", func() {
		body, _ := json.Marshal(branch.BranchDTO{Name: "   "})
		req := withUser(httptest.NewRequest(http.MethodPost, "/branches", bytes.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreateBranch(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("updates an existing branch", func() {
		body, _ := json.Marshal(branch.BranchDTO{Name: "Jimma Main", Location: "Jimma"})
		req := withUser(httptest.NewRequest(http.MethodPut, "/branches/1", bytes.NewReader(body)))
		req = withURLParam(req, "id", "1")
		w := httptest.NewRecorder()

		handler.UpdateBranch(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		updated, err := repo.GetByID(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Name).To(Equal("Jimma Main"))
	})

	It("returns 404 when updating a missing branch", func() {
		body, _ := json.Marshal(branch.BranchDTO{Name: "Ghost"})
		req := withUser(httptest.NewRequest(http.MethodPut, "/branches/999", bytes.NewReader(body)))
		req = withURLParam(req, "id", "999")
		w := httptest.NewRecorder()

		handler.UpdateBranch(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("deletes a branch", func() {
		req := withUser(httptest.NewRequest(http.MethodDelete, "/branches/2", nil))
		req = withURLParam(req, "id", "2")
		w := httptest.NewRecorder()

		handler.DeleteBranch(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))

		gone, err := repo.GetByID(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(gone).To(BeNil())
	})

	It("rejects a non-numeric branch ID", func() {
		req := withUser(httptest.NewRequest(http.MethodGet, "/branches/abc", nil))
		req = withURLParam(req, "id", "abc")
		w := httptest.NewRecorder()

		handler.GetBranch(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
