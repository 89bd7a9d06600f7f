package leavetype_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	leavetypeDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leavetype"
	"github.com/frahmantamala/leave-management/internal/leavetype"
)

func TestLeaveType(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "LeaveType Suite")
}

// Mock repository for testing
type mockLeaveTypeRepository struct {
	rows        map[int64]*leavetypeDatamodel.LeaveType
	createError error
	updateError error
	nextID      int64
}

func newMockLeaveTypeRepository() *mockLeaveTypeRepository {
	return &mockLeaveTypeRepository{
		rows:   make(map[int64]*leavetypeDatamodel.LeaveType),
		nextID: 1,
	}
}

func (m *mockLeaveTypeRepository) GetAll() ([]*leavetypeDatamodel.LeaveType, error) {
	rows := make([]*leavetypeDatamodel.LeaveType, 0, len(m.rows))
	for _, row := range m.rows {
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *mockLeaveTypeRepository) GetByID(id int64) (*leavetypeDatamodel.LeaveType, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (m *mockLeaveTypeRepository) GetByName(name string) (*leavetypeDatamodel.LeaveType, error) {
	for _, row := range m.rows {
		if row.LeaveName == name {
			return row, nil
		}
	}
	return nil, nil
}

func (m *mockLeaveTypeRepository) Create(lt *leavetypeDatamodel.LeaveType) error {
	if m.createError != nil {
		return m.createError
	}
	lt.ID = m.nextID
	m.nextID++
	m.rows[lt.ID] = lt
	return nil
}

func (m *mockLeaveTypeRepository) Update(lt *leavetypeDatamodel.LeaveType) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.rows[lt.ID] = lt
	return nil
}

var _ = Describe("LeaveTypeService", func() {
	var (
		service  *leavetype.Service
		mockRepo *mockLeaveTypeRepository
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockLeaveTypeRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = leavetype.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("creates an active leave type with the default colour", func() {
			lt, err := service.Create(leavetype.CreateLeaveTypeDTO{
				LeaveName:      "Annual Leave",
				MaxDaysPerYear: 20,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(lt.ID).To(BeNumerically(">", 0))
			Expect(lt.Status).To(Equal(leavetype.StatusActive))
			Expect(lt.ColorCode).To(Equal("#1E88E5"))
		})

		It("keeps an explicit colour code", func() {
			lt, err := service.Create(leavetype.CreateLeaveTypeDTO{
				LeaveName:      "Sick Leave",
				MaxDaysPerYear: 14,
				ColorCode:      "#E53935",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(lt.ColorCode).To(Equal("#E53935"))
		})

		It("rejects a duplicate name", func() {
			_, err := service.Create(leavetype.CreateLeaveTypeDTO{
				LeaveName:      "Annual Leave",
				MaxDaysPerYear: 20,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(leavetype.CreateLeaveTypeDTO{
				LeaveName:      "Annual Leave",
				MaxDaysPerYear: 10,
			})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("already in use"))
		})

		It("rejects a missing name", func() {
			_, err := service.Create(leavetype.CreateLeaveTypeDTO{MaxDaysPerYear: 20})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a malformed colour code", func() {
			_, err := service.Create(leavetype.CreateLeaveTypeDTO{
				LeaveName:      "Annual Leave",
				MaxDaysPerYear: 20,
				ColorCode:      "blue",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("listings", func() {
		BeforeEach(func() {
			_, err := service.Create(leavetype.CreateLeaveTypeDTO{LeaveName: "Annual Leave", MaxDaysPerYear: 20})
			Expect(err).NotTo(HaveOccurred())
			lt, err := service.Create(leavetype.CreateLeaveTypeDTO{LeaveName: "Study Leave", MaxDaysPerYear: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.Deactivate(lt.ID)).To(Succeed())
		})

		It("hides inactive types from the active listing", func() {
			types, err := service.ActiveLeaveTypes()
			Expect(err).NotTo(HaveOccurred())
			Expect(types).To(HaveLen(1))
			Expect(types[0].LeaveName).To(Equal("Annual Leave"))
		})

		It("includes inactive types in the admin listing", func() {
			types, err := service.AllLeaveTypes()
			Expect(err).NotTo(HaveOccurred())
			Expect(types).To(HaveLen(2))
		})
	})

	Describe("Update", func() {
		var id int64

		BeforeEach(func() {
			lt, err := service.Create(leavetype.CreateLeaveTypeDTO{LeaveName: "Annual Leave", MaxDaysPerYear: 20})
			Expect(err).NotTo(HaveOccurred())
			id = lt.ID
		})

		It("applies only the provided fields", func() {
			days := 25
			updated, err := service.Update(id, leavetype.UpdateLeaveTypeDTO{MaxDaysPerYear: &days})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.MaxDaysPerYear).To(Equal(25))
			Expect(updated.LeaveName).To(Equal("Annual Leave"))
		})

		It("rejects renaming onto an existing name", func() {
			_, err := service.Create(leavetype.CreateLeaveTypeDTO{LeaveName: "Sick Leave", MaxDaysPerYear: 14})
			Expect(err).NotTo(HaveOccurred())

			name := "Sick Leave"
			_, err = service.Update(id, leavetype.UpdateLeaveTypeDTO{LeaveName: &name})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("already in use"))
		})

		It("returns not found for an unknown id", func() {
			name := "Whatever"
			_, err := service.Update(404, leavetype.UpdateLeaveTypeDTO{LeaveName: &name})
			Expect(err).To(Equal(leavetype.ErrNotFound))
		})
	})

	Describe("Deactivate", func() {
		It("marks the type inactive and is safe to repeat", func() {
			lt, err := service.Create(leavetype.CreateLeaveTypeDTO{LeaveName: "Annual Leave", MaxDaysPerYear: 20})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Deactivate(lt.ID)).To(Succeed())
			Expect(service.Deactivate(lt.ID)).To(Succeed())

			stored, err := service.GetByID(lt.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsActive()).To(BeFalse())
		})
	})
})
