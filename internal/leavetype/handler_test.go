package leavetype_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	leavetypeDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leavetype"
	"github.com/frahmantamala/leave-management/internal/leavetype"
	leavetypePostgres "github.com/frahmantamala/leave-management/internal/leavetype/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var _ = Describe("LeaveType Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    leavetype.RepositoryAPI
		service *leavetype.Service
		handler *leavetype.Handler
		router  *chi.Mux
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&leavetypeDatamodel.LeaveType{})
		Expect(err).NotTo(HaveOccurred())

		repo = leavetypePostgres.NewLeaveTypeRepository(db)
		service = leavetype.NewService(repo, slogger)
		handler = leavetype.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/leave-types", handler.ListActive)
		router.Get("/admin/leave-types", handler.ListAll)
		router.Get("/admin/leave-types/{id}", handler.Get)
		router.Post("/admin/leave-types", handler.Create)

		seeded := []*leavetypeDatamodel.LeaveType{
			{LeaveName: "Annual Leave", Description: "Paid vacation days", MaxDaysPerYear: 20, ColorCode: "#1E88E5", Status: leavetype.StatusActive},
			{LeaveName: "Sick Leave", Description: "Illness and medical appointments", MaxDaysPerYear: 14, ColorCode: "#E53935", Status: leavetype.StatusActive},
			{LeaveName: "Study Leave", Description: "Discontinued allowance", MaxDaysPerYear: 5, ColorCode: "#8E24AA", Status: leavetype.StatusInactive},
		}
		for _, lt := range seeded {
			Expect(repo.Create(lt)).To(Succeed())
		}
	})

	It("should list only active leave types on the picker endpoint", func() {
		req := httptest.NewRequest(http.MethodGet, "/leave-types", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response leavetype.LeaveTypesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.LeaveTypes).To(HaveLen(2))

		names := make([]string, len(response.LeaveTypes))
		for i, lt := range response.LeaveTypes {
			names[i] = lt.LeaveName
		}
		Expect(names).To(ConsistOf("Annual Leave", "Sick Leave"))
	})

	It("should include inactive types on the admin listing", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/leave-types", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response leavetype.LeaveTypesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.LeaveTypes).To(HaveLen(3))
	})

	It("should fetch a leave type by id", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/leave-types/1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var lt leavetype.LeaveType
		Expect(json.NewDecoder(w.Body).Decode(&lt)).To(Succeed())
		Expect(lt.LeaveName).To(Equal("Annual Leave"))
		Expect(lt.MaxDaysPerYear).To(Equal(20))
	})

	It("should return 404 for an unknown leave type", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/leave-types/999", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should return 400 for a non-numeric id", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/leave-types/abc", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should create a leave type and persist it", func() {
		body := `{"leave_name":"Bereavement Leave","description":"Compassionate leave","max_days_per_year":3}`
		req := httptest.NewRequest(http.MethodPost, "/admin/leave-types", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var created leavetype.LeaveType
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).NotTo(BeZero())
		Expect(created.ColorCode).To(Equal("#1E88E5"))

		stored, err := repo.GetByName("Bereavement Leave")
		Expect(err).NotTo(HaveOccurred())
		Expect(stored).NotTo(BeNil())
		Expect(stored.Status).To(Equal(leavetype.StatusActive))
	})

	It("should reject a duplicate leave type name with a conflict", func() {
		body := `{"leave_name":"Annual Leave","max_days_per_year":10}`
		req := httptest.NewRequest(http.MethodPost, "/admin/leave-types", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("should reject a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/admin/leave-types", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
