package menu_test

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
	"github.com/frahmantamala/allowance-management/internal/core/events"
	"github.com/frahmantamala/allowance-management/internal/menu"
	menuPostgres "github.com/frahmantamala/allowance-management/internal/menu/postgres"
	"github.com/frahmantamala/allowance-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMenu(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Menu Suite")
}

var _ = Describe("Menu Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    menu.RepositoryAPI
		handler *menu.Handler
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
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&menu.Menu{}, &menu.MenuItem{})
		Expect(err).NotTo(HaveOccurred())

		repo = menuPostgres.NewMenuRepository(db)
		bus := events.NewEventBus(slogger)
		service := menu.NewService(repo, bus, slogger)
		handler = &menu.Handler{
			BaseHandler: &transport.BaseHandler{Logger: slogger},
			Service:     service,
		}
		admin = &auth.User{ID: 1, Email: "admin@example.com", Role: auth.RoleAdmin}

		menus := []*menu.Menu{
			{BranchID: 1, Name: "Lunch", Description: "Weekday lunch"},
			{BranchID: 1, Name: "Fasting", Description: "Fasting dishes"},
			{BranchID: 2, Name: "Lunch", Description: "Weekday lunch"},
		}
		for _, m := range menus {
			Expect(repo.CreateMenu(m)).To(Succeed())
		}

		items := []*menu.MenuItem{
			{MenuID: 1, Name: "Doro Wat", PriceCents: 25000},
			{MenuID: 1, Name: "Tibs", PriceCents: 22000},
			{MenuID: 2, Name: "Shiro", PriceCents: 12000},
		}
		for _, it := range items {
			Expect(repo.CreateItem(it)).To(Succeed())
		}
	})

	It("lists all menus without a branch filter", func() {
		req := httptest.NewRequest(http.MethodGet, "/menus", nil)
		w := httptest.NewRecorder()

		handler.ListMenus(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp menu.MenusResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Menus).To(HaveLen(3))
	})

	It("scopes menus to a branch", func() {
		req := httptest.NewRequest(http.MethodGet, "/menus?branchId=2", nil)
		w := httptest.NewRecorder()

		handler.ListMenus(w, req)

		var resp menu.MenusResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Menus).To(HaveLen(1))
		Expect(resp.Menus[0].BranchID).To(Equal(int64(2)))
	})

	It("rejects a malformed branch filter", func() {
		req := httptest.NewRequest(http.MethodGet, "/menus?branchId=xyz", nil)
		w := httptest.NewRecorder()

		handler.ListMenus(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("scopes items to a menu", func() {
		req := httptest.NewRequest(http.MethodGet, "/menu-items?menuId=1", nil)
		w := httptest.NewRecorder()

		handler.ListItems(w, req)

		var resp menu.MenuItemsResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Items).To(HaveLen(2))
	})

	It("creates an item under an existing menu", func() {
		body, _ := json.Marshal(menu.MenuItemDTO{MenuID: 2, Name: "Beyaynetu", PriceCents: 15000})
		req := withUser(httptest.NewRequest(http.MethodPost, "/menu-items", bytes.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreateItem(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
	})

	It("refuses an item for a missing menu", func() {
		body, _ := json.Marshal(menu.MenuItemDTO{MenuID: 99, Name: "Ghost", PriceCents: 100})
		req := withUser(httptest.NewRequest(http.MethodPost, "/menu-items", bytes.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreateItem(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("refuses an item with a non-positive price", func() {
		body, _ := json.Marshal(menu.MenuItemDTO{MenuID: 1, Name: "Free", PriceCents: 0})
		req := withUser(httptest.NewRequest(http.MethodPost, "/menu-items", bytes.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreateItem(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("deletes a menu together with its items", func() {
		req := withUser(httptest.NewRequest(http.MethodDelete, "/menus/1", nil))
		req = withURLParam(req, "id", "1")
		w := httptest.NewRecorder()

		handler.DeleteMenu(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))

		orphans, err := repo.GetItems(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(orphans).To(BeEmpty())
	})
})
