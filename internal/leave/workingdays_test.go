package leave_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/leave-management/internal/leave"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("WorkingDays", func() {
	weekend := map[time.Weekday]bool{time.Saturday: true, time.Sunday: true}

	Context("with a Saturday/Sunday weekend", func() {
		It("counts five working days in a full Monday-to-Sunday week", func() {
			// 2026-01-05 is a Monday
			days := leave.WorkingDays(date(2026, time.January, 5), date(2026, time.January, 11), weekend)
			Expect(days).To(Equal(5))
		})

		It("counts five working days regardless of which weekday the range starts on", func() {
			// Wednesday to Tuesday, still seven calendar days
			days := leave.WorkingDays(date(2026, time.January, 7), date(2026, time.January, 13), weekend)
			Expect(days).To(Equal(5))
		})

		It("returns zero for a weekend-only range", func() {
			// Saturday and Sunday
			days := leave.WorkingDays(date(2026, time.January, 10), date(2026, time.January, 11), weekend)
			Expect(days).To(Equal(0))
		})

		It("counts a single weekday as one working day", func() {
			days := leave.WorkingDays(date(2026, time.January, 7), date(2026, time.January, 7), weekend)
			Expect(days).To(Equal(1))
		})

		It("ignores time-of-day components on the bounds", func() {
			start := time.Date(2026, time.January, 5, 23, 30, 0, 0, time.UTC)
			end := time.Date(2026, time.January, 9, 0, 15, 0, 0, time.UTC)
			Expect(leave.WorkingDays(start, end, weekend)).To(Equal(5))
		})
	})

	Context("with a Friday/Saturday weekend", func() {
		fridaySaturday := map[time.Weekday]bool{time.Friday: true, time.Saturday: true}

		It("excludes Friday and Saturday instead", func() {
			// Thursday 2026-01-08 through Sunday 2026-01-11
			days := leave.WorkingDays(date(2026, time.January, 8), date(2026, time.January, 11), fridaySaturday)
			Expect(days).To(Equal(2)) // Thursday and Sunday
		})
	})
})

var _ = Describe("FinancialYear", func() {
	Context("with a calendar-year boundary", func() {
		It("maps any date to its calendar year", func() {
			Expect(leave.FinancialYear(date(2026, time.June, 15), time.January, 1)).To(Equal(2026))
			Expect(leave.FinancialYear(date(2026, time.January, 1), time.January, 1)).To(Equal(2026))
			Expect(leave.FinancialYear(date(2026, time.December, 31), time.January, 1)).To(Equal(2026))
		})
	})

	Context("with an April the 1st boundary", func() {
		It("assigns dates before the boundary to the previous year", func() {
			Expect(leave.FinancialYear(date(2026, time.March, 31), time.April, 1)).To(Equal(2025))
		})

		It("assigns the boundary date itself to the current year", func() {
			Expect(leave.FinancialYear(date(2026, time.April, 1), time.April, 1)).To(Equal(2026))
		})
	})
})

var _ = Describe("Settings", func() {
	It("defaults to a Saturday/Sunday weekend and calendar financial year", func() {
		s := leave.DefaultSettings()
		Expect(s.Weekend[time.Saturday]).To(BeTrue())
		Expect(s.Weekend[time.Sunday]).To(BeTrue())
		Expect(s.FYStartMonth).To(Equal(time.January))
		Expect(s.FYStartDay).To(Equal(1))
	})

	It("exposes a year range with an inclusive start and exclusive end", func() {
		s := leave.Settings{
			Weekend:      map[time.Weekday]bool{time.Saturday: true, time.Sunday: true},
			FYStartMonth: time.April,
			FYStartDay:   1,
		}
		start, end := s.FinancialYearRange(2026)
		Expect(start.Month()).To(Equal(time.April))
		Expect(start.Day()).To(Equal(1))
		Expect(start.Year()).To(Equal(2026))
		Expect(end.Year()).To(Equal(2027))
		Expect(end.Sub(start) > 0).To(BeTrue())
	})
})
